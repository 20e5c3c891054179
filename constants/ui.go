package constants

// UI Layout Constants
const (
	// CellWidth is the number of terminal columns used per board cell
	CellWidth = 2

	// PanelGap is the horizontal gap between the board frame and the side panel
	PanelGap = 3

	// PanelWidth is the width reserved for the side panel
	PanelWidth = 22

	// ModeIndicatorWidth is the consistent width for all mode indicators
	ModeIndicatorWidth = 10

	// Mode indicator text (all padded to ModeIndicatorWidth)
	ModeTextIdle     = "  IDLE    "
	ModeTextAutoplay = " AUTOPLAY "
	ModeTextGame     = "   GAME   "
)

// Splash Constants
const (
	// SplashTitle is shown before the page is started
	SplashTitle = "Happy Birthday"

	// SplashHint is shown below the splash title
	SplashHint = "press any key"
)

// Color Constants (CSS notation, resolved by render.Theme)
const (
	// BoardBackground is the background of empty cells
	BoardBackground = "#101018"

	// BoardGridShade is blended into alternating empty cells
	BoardGridShade = "#2a2a3a"

	// FrameColor is used for the board border and panel labels
	FrameColor = "#a0a0b0"

	// AutoplayDim is the blend factor towards the board background in autoplay
	AutoplayDim = 0.35
)
