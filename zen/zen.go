// Package zen registers a game as a set of plain functions: setup, update,
// draw, teardown and button handlers. The Game owns one window and dispatches
// the host's events to whatever was registered; anything left unregistered is
// simply skipped.
//
//	game, err := zen.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	game.Window(640, 480, zen.Caption("demo"))
//	game.ButtonDown("kb_escape", func(g *zen.Game, _ *button.Descriptor) { g.Close() })
//	game.Draw(func(g *zen.Game) { g.DrawRect(10, 10, 50, 50) })
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
package zen

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/erisdev/gosu/assets"
	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/callback"
	"github.com/erisdev/gosu/util"
	"github.com/erisdev/gosu/window"
)

var (
	ErrWindowExists  = errors.New("zen: window already exists")
	ErrUnknownButton = errors.New("zen: unknown button")
	ErrUnknownHelper = errors.New("zen: unknown helper")
	ErrNoWindow      = errors.New("zen: no window")
)

// Func is a lifecycle handler.
type Func func(g *Game)

// ButtonFunc is a button handler. b is the button that fired it, which lets
// one catch-all handler serve every button.
type ButtonFunc func(g *Game, b *button.Descriptor)

// Game is the context every handler receives. Drawing methods are promoted
// from the window's canvas and are only valid once Window has been called.
type Game struct {
	*window.Canvas

	// State is free for the game's own data.
	State any

	backend  window.Backend
	buttons  *button.Registry
	handlers *callback.Table
	helpers  map[string]Helper
	adapter  *window.Adapter
	closing  bool

	assetRoot string
	assets    *assets.Loader

	start time.Time
}

func New(opts ...Option) (*Game, error) {
	if os.Getenv("ZEN_TRACE") == "1" {
		util.EnableTrace()
	}

	g := &Game{
		handlers: callback.New(),
		helpers:  map[string]Helper{},
		start:    time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.backend == nil {
		g.backend = window.DefaultBackend()
	}

	buttons, err := button.NewRegistry(g.backend.Buttons())
	if err != nil {
		return nil, fmt.Errorf("zen: %s buttons: %w", g.backend.Name(), err)
	}
	g.buttons = buttons
	util.Trace("zen: %s backend, %d buttons", g.backend.Name(), buttons.Len())
	return g, nil
}

// Buttons is the registry of every button the backend knows.
func (g *Game) Buttons() *button.Registry {
	return g.buttons
}

// Window opens the game's one window. A second call returns ErrWindowExists
// and leaves the first window alone.
func (g *Game) Window(width, height int, opts ...WindowOption) error {
	if g.adapter != nil {
		return ErrWindowExists
	}

	cfg := window.DefaultConfig()
	cfg.Width, cfg.Height = width, height
	for _, opt := range opts {
		opt(&cfg)
	}

	host, err := g.backend.Open(cfg)
	if err != nil {
		return fmt.Errorf("zen: opening %dx%d window: %w", width, height, err)
	}
	if g.assetRoot != "" {
		if err := g.openAssets(host); err != nil {
			return err
		}
	}

	g.adapter = window.NewAdapter(host, g.buttons, g.handlers)
	g.adapter.SetCaption(cfg.Caption)
	g.adapter.SetNeedsCursor(cfg.NeedsCursor)
	g.Canvas = g.adapter.Canvas()
	if g.closing {
		g.adapter.Close()
	}
	return nil
}

func (g *Game) Setup(fn Func)    { g.register(callback.Setup, fn) }
func (g *Game) Teardown(fn Func) { g.register(callback.Teardown, fn) }
func (g *Game) Update(fn Func)   { g.register(callback.Update, fn) }
func (g *Game) Draw(fn Func)     { g.register(callback.Draw, fn) }

func (g *Game) register(name callback.Name, fn Func) {
	if fn == nil {
		g.handlers.Register(name, nil)
		return
	}
	g.handlers.Register(name, func(*button.Descriptor) { fn(g) })
}

// ButtonDown registers fn for presses of key, or of every button when key is
// nil. key is anything Registry.Lookup accepts.
func (g *Game) ButtonDown(key any, fn ButtonFunc) error {
	return g.registerButton(key, fn, callback.ButtonDownAny, callback.ButtonDown)
}

// ButtonUp is ButtonDown for releases.
func (g *Game) ButtonUp(key any, fn ButtonFunc) error {
	return g.registerButton(key, fn, callback.ButtonUpAny, callback.ButtonUp)
}

func (g *Game) registerButton(key any, fn ButtonFunc, catchAll callback.Name, specific func(*button.Descriptor) callback.Name) error {
	name := catchAll
	if key != nil {
		b, ok := g.buttons.Lookup(key)
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnknownButton, key)
		}
		name = specific(b)
	}

	if fn == nil {
		g.handlers.Register(name, nil)
		return nil
	}
	g.handlers.Register(name, func(b *button.Descriptor) { fn(g, b) })
	return nil
}

// Run shows the window, opening a default one first if Window was never
// called, and blocks until it closes. Running a game whose window has
// already run returns nil at once.
func (g *Game) Run() error {
	if g.adapter == nil {
		cfg := window.DefaultConfig()
		if err := g.Window(cfg.Width, cfg.Height); err != nil {
			return err
		}
	}
	err := g.adapter.Show()
	if errors.Is(err, window.ErrAlreadyShown) {
		return nil
	}
	return err
}

// Close ends the game after the current tick. Closing before Run makes Run
// skip straight to the teardown handler.
func (g *Game) Close() {
	if g.adapter == nil {
		g.closing = true
		return
	}
	g.adapter.Close()
}

// Milliseconds since New.
func (g *Game) Milliseconds() int64 {
	return time.Since(g.start).Milliseconds()
}

func (g *Game) Phase() window.Phase {
	if g.adapter == nil {
		return window.PhaseSetup
	}
	return g.adapter.Phase()
}

func (g *Game) Caption() string {
	if g.adapter == nil {
		return ""
	}
	return g.adapter.Caption()
}

func (g *Game) SetCaption(caption string) {
	if g.adapter != nil {
		g.adapter.SetCaption(caption)
	}
}

func (g *Game) NeedsCursor() bool {
	return g.adapter != nil && g.adapter.NeedsCursor()
}

func (g *Game) SetNeedsCursor(needsCursor bool) {
	if g.adapter != nil {
		g.adapter.SetNeedsCursor(needsCursor)
	}
}
