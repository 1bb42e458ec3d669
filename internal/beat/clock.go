// Package beat keeps the beat grid for a session at a fixed tempo.
package beat

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidArgument = errors.New("invalid argument")

// Clock answers where an instant sits relative to the beat grid.
// It never reads the wall clock itself, callers pass now in.
// A Clock is immutable after New and may be shared between observers.
type Clock struct {
	bpm      float64
	interval time.Duration
	epoch    time.Time // beat 0
}

// Interval returns the time between beats at the given tempo.
func Interval(bpm float64) time.Duration {
	return time.Duration(math.Round(float64(time.Minute) / bpm))
}

func New(bpm float64, epoch time.Time) (*Clock, error) {
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0 {
		return nil, fmt.Errorf("bpm %v must be a positive number: %w", bpm, ErrInvalidArgument)
	}
	interval := Interval(bpm)
	if interval <= 0 {
		return nil, fmt.Errorf("bpm %v is too fast to measure: %w", bpm, ErrInvalidArgument)
	}
	return &Clock{
		bpm:      bpm,
		interval: interval,
		epoch:    epoch,
	}, nil
}

func (c *Clock) BPM() float64            { return c.bpm }
func (c *Clock) Interval() time.Duration { return c.interval }
func (c *Clock) Epoch() time.Time        { return c.epoch }

// Instants before the epoch count as beat 0
func (c *Clock) elapsed(now time.Time) time.Duration {
	e := now.Sub(c.epoch)
	if e < 0 {
		return 0
	}
	return e
}

// phase is always in [0, interval) since elapsed is never negative
func (c *Clock) phase(now time.Time) (time.Duration, time.Duration) {
	e := c.elapsed(now)
	return e, e % c.interval
}

// Distance returns how far now is from the nearest beat, in [0, interval/2].
// Being early or late by the same amount gives the same distance.
func (c *Clock) Distance(now time.Time) time.Duration {
	_, p := c.phase(now)
	if rest := c.interval - p; rest < p {
		return rest
	}
	return p
}

// Offset is Distance with a sign: negative when now is before the
// nearest beat, positive when after. The range is (-interval/2, interval/2].
func (c *Clock) Offset(now time.Time) time.Duration {
	_, p := c.phase(now)
	if rest := c.interval - p; rest < p {
		return -rest
	}
	return p
}

// Nearest returns the index and instant of the beat closest to now.
// A tie at the midpoint goes to the earlier beat.
func (c *Clock) Nearest(now time.Time) (int64, time.Time) {
	e, p := c.phase(now)
	k := int64(e / c.interval)
	if c.interval-p < p {
		k++
	}
	return k, c.epoch.Add(time.Duration(k) * c.interval)
}

// Phase is the progress through the current beat, in [0, 1).
func (c *Clock) Phase(now time.Time) float64 {
	_, p := c.phase(now)
	return float64(p) / float64(c.interval)
}

// Upcoming lists the beats in [now, now+lookahead], earliest first.
// A beat landing exactly on now is included. Nothing is cached, call it
// once per frame and drop the previous result.
func (c *Clock) Upcoming(now time.Time, lookahead time.Duration) []time.Time {
	return c.AppendUpcoming(nil, now, lookahead)
}

// AppendUpcoming appends the Upcoming beats to dst, so a frame loop can
// reuse one buffer with dst[:0].
func (c *Clock) AppendUpcoming(dst []time.Time, now time.Time, lookahead time.Duration) []time.Time {
	if lookahead <= 0 {
		return dst
	}

	// Beats are only defined from the epoch onwards, but the window is
	// still measured from the real now.
	from := now.Sub(c.epoch)
	limit := from + lookahead
	if limit < from {
		limit = math.MaxInt64
	}

	first := time.Duration(0)
	if from > 0 {
		first = from
		if r := from % c.interval; r != 0 {
			first += c.interval - r
		}
		if first < from {
			// overflowed past the end of time
			return dst
		}
	}
	if first > limit {
		return dst
	}

	n := int64((limit-first)/c.interval) + 1
	for i := int64(0); i < n; i++ {
		dst = append(dst, c.epoch.Add(first+time.Duration(i)*c.interval))
	}
	return dst
}
