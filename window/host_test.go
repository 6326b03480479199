package window

import (
	"image"
	"testing"

	"github.com/erisdev/gosu/button"
)

type drawCall struct {
	vertices []Vertex
	img      Image
	mode     BlendMode
	clip     *image.Rectangle
}

// fakeHost runs a scripted sequence of steps as its main loop.
type fakeHost struct {
	width, height int
	steps         []func(Loop)
	runErr        error
	closed        bool
	runs          int
	reopens       bool // Run clears closed, as the SDL and raylib loops do

	caption       string
	cursorVisible bool
	down          map[int]bool
	mouseX        float64
	mouseY        float64
	draws         []drawCall
}

func newFakeHost(steps ...func(Loop)) *fakeHost {
	return &fakeHost{width: 640, height: 480, steps: steps, down: map[int]bool{}}
}

func (h *fakeHost) Run(loop Loop) error {
	h.runs++
	if h.reopens {
		h.closed = false
	}
	for _, step := range h.steps {
		if h.closed {
			break
		}
		step(loop)
	}
	return h.runErr
}

func (h *fakeHost) Close()                            { h.closed = true }
func (h *fakeHost) Size() (int, int)                  { return h.width, h.height }
func (h *fakeHost) SetCaption(caption string)         { h.caption = caption }
func (h *fakeHost) SetCursorVisible(visible bool)     { h.cursorVisible = visible }
func (h *fakeHost) IsButtonDown(id int) bool          { return h.down[id] }
func (h *fakeHost) MousePosition() (float64, float64) { return h.mouseX, h.mouseY }

func (h *fakeHost) SetMousePosition(x, y float64) {
	h.mouseX, h.mouseY = x, y
}

func (h *fakeHost) DrawTriangles(vs []Vertex, img Image, mode BlendMode, clip *image.Rectangle) {
	h.draws = append(h.draws, drawCall{append([]Vertex(nil), vs...), img, mode, clip})
}

func (h *fakeHost) LoadImage(path string) (Image, error)   { return &fakeImage{image.Rect(0, 0, 32, 16)}, nil }
func (h *fakeHost) LoadSample(path string) (Sample, error) { return nil, nil }
func (h *fakeHost) LoadSong(path string) (Song, error)     { return nil, nil }

type fakeImage struct {
	bounds image.Rectangle
}

func (i *fakeImage) Bounds() image.Rectangle { return i.bounds }

func (i *fakeImage) SubImage(r image.Rectangle) Image {
	return &fakeImage{subBounds(i.bounds, r)}
}

func tick(loop Loop) {
	loop.Update()
	loop.Draw()
}

func press(id int) func(Loop) {
	return func(loop Loop) { loop.ButtonDown(id) }
}

func release(id int) func(Loop) {
	return func(loop Loop) { loop.ButtonUp(id) }
}

func testRegistry(t *testing.T) *button.Registry {
	t.Helper()
	r, err := button.NewRegistry([]button.Constant{
		{Name: "KbEscape", ID: keyID(41)},
		{Name: "KbA", ID: keyID(4)},
		{Name: "MsLeft", ID: mouseID(mouseLeft)},
		{Name: "GpButton0", ID: gamepadID(0)},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}
