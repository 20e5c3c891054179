package render

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityBoard RenderPriority = iota
	PriorityFrame
	PriorityPanel
	PrioritySplash
)
