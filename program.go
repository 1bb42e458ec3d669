package main

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	"git.lost.host/meutraa/pulse/internal/game"
	"git.lost.host/meutraa/pulse/internal/input"
	"git.lost.host/meutraa/pulse/internal/judge"
	"git.lost.host/meutraa/pulse/internal/render"
	"git.lost.host/meutraa/pulse/internal/score"
	"git.lost.host/meutraa/pulse/internal/theme"
)

// Program is the tap trainer. Every observer shares the one clock.
type Program struct {
	Clock    *beat.Clock
	Windows  judge.Windows
	Theme    theme.Theme
	Shooter  *game.Shooter
	Feedback *game.Feedback
	Overlay  *render.Overlay
	Session  *score.Session
	TapKey   rune

	width, height int
	middle        int
	overlayRow    int
	sideCol       int

	last  *game.Projectile
	stats score.Summary
}

// The stats panel sits top left with one count line per tier below it
const (
	statsRow  = 2
	countsRow = statsRow + 7
	countsEnd = countsRow + len(judge.Tiers) - 1
)

func NewProgram(clock *beat.Clock, w judge.Windows, th theme.Theme, lookahead time.Duration, key rune) *Program {
	return &Program{
		Clock:    clock,
		Windows:  w,
		Theme:    th,
		Shooter:  game.NewShooter(clock, w),
		Feedback: game.NewFeedback(clock, w.Thresholds),
		Overlay:  &render.Overlay{Clock: clock, Lookahead: lookahead},
		Session:  score.NewSession(clock.BPM(), clock.Epoch()),
		TapKey:   key,
	}
}

func (p *Program) Resize(columns, rows int) {
	p.width, p.height = columns, rows
	p.middle = (columns + 1) / 2
	// The countdown two rows above the overlay must stay below the counts
	p.overlayRow = rows / 2
	if lowest := countsEnd + 3; p.overlayRow < lowest {
		p.overlayRow = lowest
	}
	p.Overlay.Width = columns
	p.Overlay.Row = p.overlayRow

	p.sideCol = 2
}

// Update drains the keys pressed since the last frame. It returns false
// once the player asks to quit.
func (p *Program) Update(r render.Renderer, events <-chan input.Event) bool {
	for i := len(events); i > 0; i-- {
		ev := <-events
		if ev.Quit() {
			return false
		}
		if ev.Tap(p.TapKey) {
			p.Tap(r, ev.Time)
		}
	}
	return true
}

// Tap grades one key press at the instant it was read
func (p *Program) Tap(r render.Renderer, at time.Time) {
	if at.Before(p.Clock.Epoch()) {
		log.Println("ignoring tap before the first beat")
		return
	}

	shot := p.Shooter.Fire(at)
	p.Feedback.Show(at)
	p.Session.Add(shot.Hit)
	p.last = &shot
	p.stats = score.Summarize(p.Session.Hits)

	// Early taps land left of the centre, late ones right
	span := float64(p.middle - 1)
	half := float64(p.Clock.Interval()) / 2
	off := int(math.Round(float64(shot.Hit.Offset) / half * span))
	col := p.middle + off
	if shot.Hit.Early() {
		col = p.middle - off
	}
	r.AddDecoration(col, p.overlayRow+1, colorize(p.Theme, shot.Hit.Tier, "▲"), 120)
}

func (p *Program) Render(r render.Renderer, now time.Time) {
	p.RenderStatic(r)
	p.RenderCountdown(r, now)
	p.Overlay.Draw(r, p.Theme, now)
	p.RenderFeedback(r, now)
}

func (p *Program) RenderCountdown(r render.Renderer, now time.Time) {
	row := p.overlayRow - 2
	r.ClearRow(row)
	if wait := p.Clock.Epoch().Sub(now); wait > 0 {
		beats := int(math.Ceil(float64(wait) / float64(p.Clock.Interval())))
		msg := fmt.Sprintf("get ready %d", beats)
		r.Fill(row, p.middle-len(msg)/2, msg)
	}
}

func (p *Program) RenderFeedback(r render.Renderer, now time.Time) {
	row := p.overlayRow + 3
	r.ClearRow(row)
	r.ClearRow(row + 1)

	popup, ok := p.Feedback.Current(now)
	if !ok {
		return
	}
	msg := p.Theme.TierMessage(popup.Tier)
	r.Fill(row, p.middle-len(msg)/2, p.Theme.RenderTier(popup.Tier, popup.Alpha(now), popup.Scale(now) > 1.05))

	if p.last != nil {
		// projectile size as a bar, one cell per 0.1
		bar := strings.Repeat("●", int(math.Round(p.last.Size*10)))
		r.Fill(row+1, p.middle-len([]rune(bar))/2, bar)
	}
}

func (p *Program) RenderStatic(r render.Renderer) {
	r.Fill(statsRow, p.sideCol, fmt.Sprintf("      Tempo:  %6.1f bpm", p.Clock.BPM()))
	r.Fill(statsRow+1, p.sideCol, fmt.Sprintf("   Interval:  %6.0f ms", ms(p.Clock.Interval())))
	r.Fill(statsRow+3, p.sideCol, fmt.Sprintf("       Mean:  %+6.1f ms", ms(p.stats.Mean)))
	r.Fill(statsRow+4, p.sideCol, fmt.Sprintf("      Stdev:  %6.1f ms", ms(p.stats.Stdev)))
	r.Fill(statsRow+5, p.sideCol, fmt.Sprintf("   Accuracy:  %6.1f %%", 100*p.stats.Accuracy))
	for i, tier := range judge.Tiers {
		r.FillColor(countsRow+i, p.sideCol, p.Theme.TierColor(tier), fmt.Sprintf("%11s:  %6v", tier, p.stats.Counts[i]))
	}
}

func colorize(th theme.Theme, tier judge.Tier, s string) string {
	c := th.TierColor(tier)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
