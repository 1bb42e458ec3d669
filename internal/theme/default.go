package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/pulse/internal/judge"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) TierColor(tier judge.Tier) color.RGBA {
	if int(tier) < len(tierColors) {
		return tierColors[tier]
	}
	return white
}

func (t *DefaultTheme) TierMessage(tier judge.Tier) string {
	if int(tier) < len(tierMessages) {
		return tierMessages[tier]
	}
	return tier.String()
}

func (t *DefaultTheme) RenderTier(tier judge.Tier, alpha float64, bold bool) string {
	weight := ""
	if bold {
		weight = "\033[1m"
	}
	return weight + colored(Blend(t.TierColor(tier), alpha), t.TierMessage(tier))
}

func (t *DefaultTheme) RenderMarker(alpha float64) string {
	return colored(Blend(markerColor, alpha), markerSym)
}

func (t *DefaultTheme) RenderCentre(alpha float64) string {
	return colored(Blend(white, alpha), centreSym)
}

func (t *DefaultTheme) RenderBar() string {
	return barSym
}

const (
	markerSym = "┃"
	centreSym = "╋"
	barSym    = "─"
)

var (
	white       = color.RGBA{255, 255, 255, 255}
	markerColor = color.RGBA{255, 0, 0, 255}

	tierColors = [...]color.RGBA{
		judge.Perfect: {255, 204, 0, 255}, // gold
		judge.Good:    {0, 204, 0, 255},   // green
		judge.Ok:      {0, 153, 255, 255}, // blue
		judge.Miss:    {255, 77, 77, 255}, // red
	}
	tierMessages = [...]string{
		judge.Perfect: "Perfect!",
		judge.Good:    "Good!",
		judge.Ok:      "OK",
		judge.Miss:    "Miss",
	}
)

// Blend darkens c towards the black background, alpha 0 is invisible
func Blend(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R)*alpha + 0.5),
		G: uint8(float64(c.G)*alpha + 0.5),
		B: uint8(float64(c.B)*alpha + 0.5),
		A: uint8(float64(c.A)*alpha + 0.5),
	}
}

func colored(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}
