package game

import (
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	"git.lost.host/meutraa/pulse/internal/judge"
)

const (
	DefaultMinSize = 0.3 // a shot far off the beat
	DefaultMaxSize = 2.0 // a shot right on it
)

type Projectile struct {
	Hit  Hit
	Size float64
}

// Shooter scales projectiles by how close to the beat they were fired.
type Shooter struct {
	Clock   *beat.Clock
	Windows judge.Windows

	MinSize, MaxSize float64
}

func NewShooter(c *beat.Clock, w judge.Windows) *Shooter {
	return &Shooter{
		Clock:   c,
		Windows: w,
		MinSize: DefaultMinSize,
		MaxSize: DefaultMaxSize,
	}
}

func (s *Shooter) Fire(now time.Time) Projectile {
	hit := NewHit(s.Clock, s.Windows, now)
	return Projectile{
		Hit:  hit,
		Size: Lerp(s.MinSize, s.MaxSize, hit.Score),
	}
}

func Lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}
