package game

import (
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	"git.lost.host/meutraa/pulse/internal/judge"
)

// Hit is one graded action
type Hit struct {
	At     time.Time
	Beat   int64         // index of the nearest beat
	Offset time.Duration // distance to the nearest beat
	Signed time.Duration // negative when early
	Tier   judge.Tier
	Score  float64
}

func NewHit(c *beat.Clock, w judge.Windows, now time.Time) Hit {
	k, _ := c.Nearest(now)
	offset := c.Distance(now)
	tier, score := w.Judge(offset)
	return Hit{
		At:     now,
		Beat:   k,
		Offset: offset,
		Signed: c.Offset(now),
		Tier:   tier,
		Score:  score,
	}
}

func (h Hit) Early() bool {
	return h.Signed < 0
}
