package zen

import "github.com/erisdev/gosu/button"

// Button resolves anything Registry.Lookup accepts.
func (g *Game) Button(key any) (*button.Descriptor, bool) {
	return g.buttons.Lookup(key)
}

// IsButtonDown reports false for unknown buttons and before the window
// exists.
func (g *Game) IsButtonDown(key any) bool {
	if g.adapter == nil {
		return false
	}
	b, ok := g.buttons.Lookup(key)
	return ok && g.adapter.Host().IsButtonDown(b.ID())
}

func (g *Game) MouseX() float64 {
	x, _ := g.mouse()
	return x
}

func (g *Game) MouseY() float64 {
	_, y := g.mouse()
	return y
}

func (g *Game) SetMouseX(x float64) {
	if g.adapter != nil {
		_, y := g.mouse()
		g.adapter.Host().SetMousePosition(x, y)
	}
}

func (g *Game) SetMouseY(y float64) {
	if g.adapter != nil {
		x, _ := g.mouse()
		g.adapter.Host().SetMousePosition(x, y)
	}
}

func (g *Game) mouse() (float64, float64) {
	if g.adapter == nil {
		return 0, 0
	}
	return g.adapter.Host().MousePosition()
}
