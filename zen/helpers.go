package zen

import "fmt"

// Helper is a named function handlers can share through Call.
type Helper func(g *Game, args ...any) (any, error)

// Helper registers fn under name, replacing any helper already there. A nil
// fn removes it.
func (g *Game) Helper(name string, fn Helper) {
	if fn == nil {
		delete(g.helpers, name)
		return
	}
	g.helpers[name] = fn
}

func (g *Game) Helpers(helpers map[string]Helper) {
	for name, fn := range helpers {
		g.Helper(name, fn)
	}
}

func (g *Game) Call(name string, args ...any) (any, error) {
	fn, ok := g.helpers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHelper, name)
	}
	return fn(g, args...)
}
