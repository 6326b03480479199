//go:build !sdl2 && !raylib

package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/constant"
	"github.com/erisdev/gosu/util"
)

var ebitenMouseButtons = map[int]ebiten.MouseButton{
	mouseLeft:   ebiten.MouseButtonLeft,
	mouseRight:  ebiten.MouseButtonRight,
	mouseMiddle: ebiten.MouseButtonMiddle,
	mouseOther0: ebiten.MouseButton3,
	mouseOther1: ebiten.MouseButton4,
}

var multiplyBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
	BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

type ebitenBackend struct{}

func DefaultBackend() Backend {
	return ebitenBackend{}
}

func (ebitenBackend) Name() string { return "ebiten" }

func (ebitenBackend) Buttons() []button.Constant {
	consts := keyConstants(ebitenKeys())
	consts = append(consts, mouseConstants()...)
	return append(consts, gamepadConstants()...)
}

func (ebitenBackend) Open(cfg Config) (Host, error) {
	return NewEbitenHost(cfg)
}

// ebitenKeys names every ebiten key after its String form, skipping unnamed
// keys, aliases and the virtual modifiers.
func ebitenKeys() []keyCode {
	var keys []keyCode
	seen := map[string]bool{}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		keys = append(keys, keyCode{name, int(k)})
	}
	return physicalKeys(keys)
}

type EbitenHost struct {
	cfg      Config
	loop     Loop
	screen   *ebiten.Image
	white    *ebiten.Image
	audioCtx *audio.Context
	closed   bool

	keys     []ebiten.Key
	gamepads []ebiten.GamepadID
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewEbitenHost(cfg Config) (*EbitenHost, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("window: invalid size %dx%d", cfg.Width, cfg.Height)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Caption)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.UpdateInterval > 0 {
		ebiten.SetTPS(int(math.Round(float64(time.Second) / float64(cfg.UpdateInterval))))
	}

	audioCtx := audio.CurrentContext()
	if audioCtx == nil {
		audioCtx = audio.NewContext(constant.AUDIO_FREQ)
	}

	whole := ebiten.NewImage(3, 3)
	whole.Fill(color.White)

	host := &EbitenHost{
		cfg:      cfg,
		white:    whole.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		audioCtx: audioCtx,
	}
	for _, k := range ebitenKeys() {
		host.keys = append(host.keys, ebiten.Key(k.code))
	}
	host.SetCursorVisible(cfg.NeedsCursor)

	util.Trace("window: ebiten host %dx%d, %d ticks per second", cfg.Width, cfg.Height, ebiten.TPS())
	return host, nil
}

type ebitenGame struct {
	host *EbitenHost
}

func (g *ebitenGame) Update() error {
	h := g.host
	if h.closed {
		return ebiten.Termination
	}
	h.pollButtons()
	h.loop.Update()
	if h.closed {
		return ebiten.Termination
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	h := g.host
	h.screen = screen
	h.loop.Draw()
	h.screen = nil
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.host.cfg.Width, g.host.cfg.Height
}

func (h *EbitenHost) Run(loop Loop) error {
	h.loop = loop
	err := ebiten.RunGame(&ebitenGame{h})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (h *EbitenHost) Close() {
	h.closed = true
}

func (h *EbitenHost) pollButtons() {
	loop := h.loop

	for _, k := range h.keys {
		if inpututil.IsKeyJustPressed(k) {
			loop.ButtonDown(keyID(int(k)))
		}
		if inpututil.IsKeyJustReleased(k) {
			loop.ButtonUp(keyID(int(k)))
		}
	}

	for index, b := range ebitenMouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			loop.ButtonDown(mouseID(index))
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			loop.ButtonUp(mouseID(index))
		}
	}

	dx, dy := ebiten.Wheel()
	wheel := func(index int) {
		loop.ButtonDown(mouseID(index))
		loop.ButtonUp(mouseID(index))
	}
	switch {
	case dy > 0:
		wheel(mouseWheelUp)
	case dy < 0:
		wheel(mouseWheelDown)
	}
	switch {
	case dx < 0:
		wheel(mouseWheelLeft)
	case dx > 0:
		wheel(mouseWheelRight)
	}

	h.gamepads = ebiten.AppendGamepadIDs(h.gamepads[:0])
	for _, id := range h.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				loop.ButtonDown(gamepadID(int(b)))
			}
			if inpututil.IsStandardGamepadButtonJustReleased(id, b) {
				loop.ButtonUp(gamepadID(int(b)))
			}
		}
	}
}

func (h *EbitenHost) IsButtonDown(id int) bool {
	device, index := splitID(id)
	switch device {
	case button.Gamepad:
		if index > int(ebiten.StandardGamepadButtonMax) {
			return false
		}
		for _, g := range h.gamepads {
			if ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButton(index)) {
				return true
			}
		}
		return false
	case button.Mouse:
		b, ok := ebitenMouseButtons[index]
		return ok && ebiten.IsMouseButtonPressed(b)
	}
	if index < 0 || index > int(ebiten.KeyMax) {
		return false
	}
	return ebiten.IsKeyPressed(ebiten.Key(index))
}

func (h *EbitenHost) Size() (int, int) {
	return h.cfg.Width, h.cfg.Height
}

func (h *EbitenHost) SetCaption(caption string) {
	h.cfg.Caption = caption
	ebiten.SetWindowTitle(caption)
}

func (h *EbitenHost) SetCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

func (h *EbitenHost) MousePosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// SetMousePosition is ignored: ebiten cannot warp the cursor.
func (h *EbitenHost) SetMousePosition(x, y float64) {
	util.Trace("window: ebiten cannot move the cursor to (%g, %g)", x, y)
}

func (h *EbitenHost) DrawTriangles(vs []Vertex, img Image, mode BlendMode, clip *image.Rectangle) {
	if h.screen == nil || len(vs) < 3 {
		return
	}

	dst := h.screen
	if clip != nil {
		dst = dst.SubImage(*clip).(*ebiten.Image)
	}

	src := h.white
	if img != nil {
		src = img.(*ebitenImage).texture
	}

	h.vertices = h.vertices[:0]
	h.indices = h.indices[:0]
	for i, v := range vs {
		sx, sy := v.U, v.V
		if img == nil {
			sx, sy = 1, 1
		}
		h.vertices = append(h.vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   sx,
			SrcY:   sy,
			ColorR: float32(v.Color.R) / 0xff,
			ColorG: float32(v.Color.G) / 0xff,
			ColorB: float32(v.Color.B) / 0xff,
			ColorA: float32(v.Color.A) / 0xff,
		})
		h.indices = append(h.indices, uint16(i))
	}

	op := &ebiten.DrawTrianglesOptions{}
	switch mode {
	case BlendAdd:
		op.Blend = ebiten.BlendLighter
	case BlendMultiply:
		op.Blend = multiplyBlend
	default:
		op.Blend = ebiten.BlendSourceOver
	}
	dst.DrawTriangles(h.vertices, h.indices, src, op)
}

type ebitenImage struct {
	texture *ebiten.Image
	bounds  image.Rectangle
}

func (i *ebitenImage) Bounds() image.Rectangle { return i.bounds }

func (i *ebitenImage) SubImage(r image.Rectangle) Image {
	return &ebitenImage{i.texture, subBounds(i.bounds, r)}
}

func (h *EbitenHost) LoadImage(path string) (Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("window: loading image %s: %w", path, err)
	}
	return &ebitenImage{img, img.Bounds()}, nil
}
