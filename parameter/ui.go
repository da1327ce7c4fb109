package parameter

import "time"

// Terminal viewer
const (
	// FrameUpdateInterval is the render frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ViewWorldSpan is the world width visible across the terminal at zoom 1
	ViewWorldSpan = WorldWidth

	// CellAspect is terminal cell height over width; world y is compressed by it
	CellAspect = 2.0

	ZoomMin     = 0.25
	ZoomMax     = 5.0
	ZoomStep    = 0.25
	ZoomDefault = 1.0

	// ForceDrawScale converts force magnitude to drawn world length for debug overlays
	ForceDrawScale = 0.25

	// GlobeSegments is the number of rim samples when drawing the containment circle
	GlobeSegments = 180
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "shoal.log"
)

// Viewer controls
const (
	// ClickObstacleRadius is the radius of an obstacle placed with the mouse
	ClickObstacleRadius = 24.0

	// TimeScaleFactor multiplies or divides the time scale per key press
	TimeScaleFactor = 2.0

	// MessageDuration is how long a status bar notice stays up
	MessageDuration = 2 * time.Second
)
