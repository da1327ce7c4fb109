package render

import "github.com/gdamore/tcell/v2"

// Palette, Tokyo Night inspired
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbFish       = tcell.NewRGBColor(122, 162, 247) // Blue fish body
	RgbFishFollow = tcell.NewRGBColor(255, 165, 0)   // Orange for the followed fish
	RgbGlobe      = tcell.NewRGBColor(65, 72, 104)   // Muted rim of the containment globe
	RgbObstacle   = tcell.NewRGBColor(120, 120, 120) // Gray rock
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusDim  = tcell.NewRGBColor(150, 150, 150) // Secondary status text

	// Debug overlays, one color per force
	RgbAlign        = tcell.NewRGBColor(158, 206, 106) // Green
	RgbCohere       = tcell.NewRGBColor(224, 175, 104) // Amber
	RgbContain      = tcell.NewRGBColor(247, 118, 142) // Red
	RgbSeparate     = tcell.NewRGBColor(187, 154, 247) // Purple
	RgbWander       = tcell.NewRGBColor(125, 207, 255) // Cyan
	RgbVelocity     = tcell.NewRGBColor(255, 255, 255) // White
	RgbAcceleration = tcell.NewRGBColor(255, 158, 100) // Orange
	RgbRange        = tcell.NewRGBColor(52, 59, 88)    // Dark range circles
)

var (
	styleBase      = tcell.StyleDefault.Background(RgbBackground)
	styleFish      = styleBase.Foreground(RgbFish)
	styleFollow    = styleBase.Foreground(RgbFishFollow).Bold(true)
	styleGlobe     = styleBase.Foreground(RgbGlobe)
	styleObstacle  = styleBase.Foreground(RgbObstacle)
	styleStatus    = styleBase.Foreground(RgbStatusBar)
	styleStatusDim = styleBase.Foreground(RgbStatusDim)
)
