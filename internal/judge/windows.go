package judge

import (
	"fmt"
	"time"
)

// Windows holds every grading constant in one place, so callers share a
// single value instead of keeping their own literals.
type Windows struct {
	Thresholds    `koanf:",squash"`
	PerfectWindow time.Duration `koanf:"perfect_window"`
}

func DefaultWindows() Windows {
	return Windows{
		Thresholds: Thresholds{
			Perfect: 50 * time.Millisecond,
			Good:    100 * time.Millisecond,
			Ok:      200 * time.Millisecond,
		},
		PerfectWindow: 100 * time.Millisecond,
	}
}

func NewWindows(perfect, good, ok, perfectWindow time.Duration) (Windows, error) {
	w := Windows{
		Thresholds:    Thresholds{Perfect: perfect, Good: good, Ok: ok},
		PerfectWindow: perfectWindow,
	}
	if err := w.Validate(); nil != err {
		return Windows{}, err
	}
	return w, nil
}

func (w Windows) Validate() error {
	if err := w.Thresholds.Validate(); nil != err {
		return err
	}
	if w.PerfectWindow <= 0 {
		return fmt.Errorf("perfect score window %v must be positive: %w", w.PerfectWindow, ErrInvalidThresholds)
	}
	return nil
}

// Judge grades offset on both scales, each with its own window.
func (w Windows) Judge(offset time.Duration) (Tier, float64) {
	return Classify(offset, w.Thresholds), Score(offset, w.PerfectWindow)
}
