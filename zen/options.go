package zen

import (
	"time"

	"github.com/erisdev/gosu/window"
)

type Option func(*Game)

// WithBackend replaces the backend compiled into the window package.
func WithBackend(b window.Backend) Option {
	return func(g *Game) { g.backend = b }
}

type WindowOption func(*window.Config)

func Fullscreen(fullscreen bool) WindowOption {
	return func(c *window.Config) { c.Fullscreen = fullscreen }
}

// UpdateInterval is the time between two updates, 1/60 s by default.
func UpdateInterval(d time.Duration) WindowOption {
	return func(c *window.Config) { c.UpdateInterval = d }
}

func Caption(caption string) WindowOption {
	return func(c *window.Config) { c.Caption = caption }
}

// NeedsCursor shows the system cursor over the window. It is hidden by
// default.
func NeedsCursor(needsCursor bool) WindowOption {
	return func(c *window.Config) { c.NeedsCursor = needsCursor }
}
