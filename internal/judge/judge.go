// Package judge grades how close to the beat an action landed.
//
// Grading has two independent scales. Classify buckets an offset into a
// Tier using Thresholds; Score maps the same offset onto a continuous
// [0, 1] value using its own perfect window. The two are configured
// separately and must not be mixed up. Nothing here keeps state.
package judge

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidThresholds = errors.New("invalid thresholds")

type Tier uint8

// Tiers are ordered from tightest to loosest
const (
	Perfect Tier = iota
	Good
	Ok
	Miss
)

var Tiers = [...]Tier{Perfect, Good, Ok, Miss}

var tierNames = [...]string{"Perfect", "Good", "Ok", "Miss"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

func ParseTier(s string) (Tier, error) {
	for i, n := range tierNames {
		if strings.EqualFold(s, n) {
			return Tier(i), nil
		}
	}
	return Miss, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if int(t) >= len(tierNames) {
		return nil, fmt.Errorf("unknown tier %d", uint8(t))
	}
	return []byte(tierNames[t]), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	tier, err := ParseTier(string(b))
	if nil != err {
		return err
	}
	*t = tier
	return nil
}

// Thresholds are the largest offsets still counted as each tier.
// Anything past Ok is a Miss.
type Thresholds struct {
	Perfect time.Duration `koanf:"perfect"`
	Good    time.Duration `koanf:"good"`
	Ok      time.Duration `koanf:"ok"`
}

func (th Thresholds) Validate() error {
	if th.Perfect <= 0 {
		return fmt.Errorf("perfect window %v must be positive: %w", th.Perfect, ErrInvalidThresholds)
	}
	if th.Good <= th.Perfect {
		return fmt.Errorf("good window %v must be wider than perfect %v: %w", th.Good, th.Perfect, ErrInvalidThresholds)
	}
	if th.Ok <= th.Good {
		return fmt.Errorf("ok window %v must be wider than good %v: %w", th.Ok, th.Good, ErrInvalidThresholds)
	}
	return nil
}

// Classify returns the tightest tier whose threshold reaches offset.
// An offset sitting exactly on a threshold belongs to that tier.
func Classify(offset time.Duration, th Thresholds) Tier {
	switch {
	case offset <= th.Perfect:
		return Perfect
	case offset <= th.Good:
		return Good
	case offset <= th.Ok:
		return Ok
	}
	return Miss
}

// Score is 1 on the beat, falling linearly to 0 at perfectWindow.
func Score(offset, perfectWindow time.Duration) float64 {
	if perfectWindow <= 0 {
		if offset <= 0 {
			return 1
		}
		return 0
	}
	s := 1 - float64(offset)/float64(perfectWindow)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
