package game

import (
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	"git.lost.host/meutraa/pulse/internal/judge"
)

// Popup timings. The text pops up, settles, holds, then fades.
const (
	PopScale = 1.2
	PopUp    = 100 * time.Millisecond
	PopDown  = 200 * time.Millisecond
	PopHold  = 700 * time.Millisecond
	PopFade  = 300 * time.Millisecond

	PopLifetime = PopUp + PopDown + PopHold + PopFade
)

type Popup struct {
	Tier    judge.Tier
	Started time.Time
}

func (p Popup) fraction(age, from, span time.Duration) float64 {
	return float64(age-from) / float64(span)
}

func (p Popup) Scale(now time.Time) float64 {
	age := now.Sub(p.Started)
	switch {
	case age < 0:
		return 1
	case age < PopUp:
		return Lerp(1, PopScale, p.fraction(age, 0, PopUp))
	case age < PopUp+PopDown:
		return Lerp(PopScale, 1, p.fraction(age, PopUp, PopDown))
	}
	return 1
}

func (p Popup) Alpha(now time.Time) float64 {
	fadeAt := PopUp + PopDown + PopHold
	age := now.Sub(p.Started)
	switch {
	case age < fadeAt:
		return 1
	case age >= PopLifetime:
		return 0
	}
	return Lerp(1, 0, p.fraction(age, fadeAt, PopFade))
}

func (p Popup) Done(now time.Time) bool {
	return now.Sub(p.Started) >= PopLifetime
}

// Feedback shows the tier of the latest action. A new action replaces
// whatever popup is still on screen.
type Feedback struct {
	Clock      *beat.Clock
	Thresholds judge.Thresholds

	current *Popup
}

func NewFeedback(c *beat.Clock, th judge.Thresholds) *Feedback {
	return &Feedback{Clock: c, Thresholds: th}
}

func (f *Feedback) Show(now time.Time) Popup {
	p := Popup{
		Tier:    judge.Classify(f.Clock.Distance(now), f.Thresholds),
		Started: now,
	}
	f.current = &p
	return p
}

// Current returns the popup still visible at now, if any
func (f *Feedback) Current(now time.Time) (Popup, bool) {
	if f.current == nil {
		return Popup{}, false
	}
	if f.current.Done(now) {
		f.current = nil
		return Popup{}, false
	}
	return *f.current, true
}
