package zen

import "github.com/erisdev/gosu/window"

// Draw options and blend modes for the promoted canvas methods.
var (
	Z            = window.Z
	Mode         = window.Mode
	Color        = window.Color
	VertexColors = window.VertexColors
)

const (
	BlendDefault  = window.BlendDefault
	BlendAdd      = window.BlendAdd
	BlendMultiply = window.BlendMultiply
)
