// Package window adapts a host multimedia library to the zen callback model.
// The host owns the main loop and calls back into an Adapter, which resolves
// buttons and dispatches to the registered handlers.
//
// Exactly one host backend is compiled in: ebiten by default, SDL2 with the
// sdl2 build tag, raylib with the raylib build tag.
package window

import (
	"image"
	"image/color"
	"time"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/constant"
)

type Config struct {
	Width, Height  int
	Fullscreen     bool
	UpdateInterval time.Duration
	Caption        string
	NeedsCursor    bool
}

func DefaultConfig() Config {
	return Config{
		Width:          constant.DEFAULT_WINDOW_WIDTH,
		Height:         constant.DEFAULT_WINDOW_HEIGHT,
		UpdateInterval: constant.DEFAULT_UPDATE_INTERVAL_US * time.Microsecond,
		Caption:        constant.DEFAULT_CAPTION,
	}
}

// Loop is what a host calls into while Run is blocking.
type Loop interface {
	ButtonDown(id int)
	ButtonUp(id int)
	Update()
	Draw()
}

// Vertex is one corner of a triangle in window coordinates. U and V address
// the source texture in pixels and are ignored for untextured triangles.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Color color.NRGBA
}

type BlendMode int

const (
	BlendDefault BlendMode = iota
	BlendAdd
	BlendMultiply
)

// Image is a rectangular region of a host texture.
type Image interface {
	Bounds() image.Rectangle
	// SubImage returns the region r, given relative to Bounds().Min and
	// clipped to Bounds().
	SubImage(r image.Rectangle) Image
}

type Sample interface {
	Play(volume float64)
}

type Song interface {
	Play(looping bool)
	Pause()
	Stop()
	Playing() bool
	SetVolume(volume float64)
}

type Host interface {
	// Run drives the event loop until the window closes.
	Run(loop Loop) error
	Close()
	Size() (width, height int)
	SetCaption(caption string)
	SetCursorVisible(visible bool)
	IsButtonDown(id int) bool
	MousePosition() (x, y float64)
	SetMousePosition(x, y float64)
	// DrawTriangles draws len(vs)/3 triangles. img is nil for solid fills;
	// clip is nil when drawing is unclipped.
	DrawTriangles(vs []Vertex, img Image, mode BlendMode, clip *image.Rectangle)
	LoadImage(path string) (Image, error)
	LoadSample(path string) (Sample, error)
	LoadSong(path string) (Song, error)
}

// Backend enumerates a host library's input constants and opens hosts.
type Backend interface {
	Name() string
	Buttons() []button.Constant
	Open(cfg Config) (Host, error)
}

// subBounds resolves r relative to the region b.
func subBounds(b, r image.Rectangle) image.Rectangle {
	return r.Add(b.Min).Intersect(b)
}
