package render

import (
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	"git.lost.host/meutraa/pulse/internal/game"
	"git.lost.host/meutraa/pulse/internal/theme"
)

// Marker is one upcoming beat drawn on both sides of the centre line.
// Ratio 0 is on the line, 1 is the far edge of the lookahead.
type Marker struct {
	Beat        time.Time
	Index       int64
	Downbeat    bool
	Ratio       float64
	Left, Right int
}

// Overlay draws upcoming beats closing in on the centre of a row.
type Overlay struct {
	Clock     *beat.Clock
	Lookahead time.Duration
	Width     int // columns, 1-based
	Row       int

	beats   []time.Time
	markers []Marker
}

func (o *Overlay) centre() (int, int) {
	c := (o.Width + 1) / 2
	return c, c - 1
}

// Markers places the beats of the lookahead window at now.
// The returned slice is only valid until the next call.
func (o *Overlay) Markers(now time.Time) []Marker {
	o.beats = o.Clock.AppendUpcoming(o.beats[:0], now, o.Lookahead)
	o.markers = o.markers[:0]
	if o.Lookahead <= 0 {
		return o.markers
	}

	centre, span := o.centre()
	for _, b := range o.beats {
		ratio := float64(b.Sub(now)) / float64(o.Lookahead)
		off := int(math.Round(ratio * float64(span)))
		index := int64(b.Sub(o.Clock.Epoch()) / o.Clock.Interval())
		o.markers = append(o.markers, Marker{
			Beat:     b,
			Index:    index,
			Downbeat: game.Downbeat(index),
			Ratio:    ratio,
			Left:     centre - off,
			Right:    centre + off,
		})
	}
	return o.markers
}

func (o *Overlay) Draw(r Renderer, th theme.Theme, now time.Time) {
	r.ClearRow(o.Row)
	r.Fill(o.Row, 1, strings.Repeat(th.RenderBar(), o.Width))

	// Nearer beats are drawn brighter, the first beat of a bar brightest
	for _, m := range o.Markers(now) {
		alpha := 0.8 - 0.5*m.Ratio
		if m.Downbeat {
			alpha += 0.2
		}
		marker := th.RenderMarker(alpha)
		r.Fill(o.Row, m.Left, marker)
		r.Fill(o.Row, m.Right, marker)
	}

	// The centre flashes on each beat and dims until the next
	centre, _ := o.centre()
	r.Fill(o.Row, centre, th.RenderCentre(1-0.6*o.Clock.Phase(now)))
}
