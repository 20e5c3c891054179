package render

import "github.com/gdamore/tcell/v2"

// SystemRenderer is implemented by every layer of the display
type SystemRenderer interface {
	Render(ctx RenderContext, screen tcell.Screen)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible(ctx RenderContext) bool
}
