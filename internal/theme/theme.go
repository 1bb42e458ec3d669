package theme

import (
	"image/color"

	"git.lost.host/meutraa/pulse/internal/judge"
)

type Theme interface {
	TierColor(tier judge.Tier) color.RGBA
	TierMessage(tier judge.Tier) string
	RenderTier(tier judge.Tier, alpha float64, bold bool) string
	RenderMarker(alpha float64) string
	RenderCentre(alpha float64) string
	RenderBar() string
}
