//go:build sdl2

package window

import (
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/util"
)

var sdlKeys = append(append(append(append(
	letterKeys(int(sdl.SCANCODE_A)),
	digitKeys("Digit", int(sdl.SCANCODE_0), int(sdl.SCANCODE_1))...),
	digitKeys("Numpad", int(sdl.SCANCODE_KP_0), int(sdl.SCANCODE_KP_1))...),
	functionKeys(int(sdl.SCANCODE_F1), 12)...),
	[]keyCode{
		{"Enter", int(sdl.SCANCODE_RETURN)},
		{"Escape", int(sdl.SCANCODE_ESCAPE)},
		{"Backspace", int(sdl.SCANCODE_BACKSPACE)},
		{"Tab", int(sdl.SCANCODE_TAB)},
		{"Space", int(sdl.SCANCODE_SPACE)},
		{"Minus", int(sdl.SCANCODE_MINUS)},
		{"Equal", int(sdl.SCANCODE_EQUALS)},
		{"BracketLeft", int(sdl.SCANCODE_LEFTBRACKET)},
		{"BracketRight", int(sdl.SCANCODE_RIGHTBRACKET)},
		{"Backslash", int(sdl.SCANCODE_BACKSLASH)},
		{"Semicolon", int(sdl.SCANCODE_SEMICOLON)},
		{"Quote", int(sdl.SCANCODE_APOSTROPHE)},
		{"Backquote", int(sdl.SCANCODE_GRAVE)},
		{"Comma", int(sdl.SCANCODE_COMMA)},
		{"Period", int(sdl.SCANCODE_PERIOD)},
		{"Slash", int(sdl.SCANCODE_SLASH)},
		{"CapsLock", int(sdl.SCANCODE_CAPSLOCK)},
		{"PrintScreen", int(sdl.SCANCODE_PRINTSCREEN)},
		{"ScrollLock", int(sdl.SCANCODE_SCROLLLOCK)},
		{"Pause", int(sdl.SCANCODE_PAUSE)},
		{"Insert", int(sdl.SCANCODE_INSERT)},
		{"Home", int(sdl.SCANCODE_HOME)},
		{"PageUp", int(sdl.SCANCODE_PAGEUP)},
		{"Delete", int(sdl.SCANCODE_DELETE)},
		{"End", int(sdl.SCANCODE_END)},
		{"PageDown", int(sdl.SCANCODE_PAGEDOWN)},
		{"ArrowRight", int(sdl.SCANCODE_RIGHT)},
		{"ArrowLeft", int(sdl.SCANCODE_LEFT)},
		{"ArrowDown", int(sdl.SCANCODE_DOWN)},
		{"ArrowUp", int(sdl.SCANCODE_UP)},
		{"NumLock", int(sdl.SCANCODE_NUMLOCKCLEAR)},
		{"NumpadDivide", int(sdl.SCANCODE_KP_DIVIDE)},
		{"NumpadMultiply", int(sdl.SCANCODE_KP_MULTIPLY)},
		{"NumpadSubtract", int(sdl.SCANCODE_KP_MINUS)},
		{"NumpadAdd", int(sdl.SCANCODE_KP_PLUS)},
		{"NumpadEnter", int(sdl.SCANCODE_KP_ENTER)},
		{"NumpadDecimal", int(sdl.SCANCODE_KP_PERIOD)},
		{"ControlLeft", int(sdl.SCANCODE_LCTRL)},
		{"ShiftLeft", int(sdl.SCANCODE_LSHIFT)},
		{"AltLeft", int(sdl.SCANCODE_LALT)},
		{"MetaLeft", int(sdl.SCANCODE_LGUI)},
		{"ControlRight", int(sdl.SCANCODE_RCTRL)},
		{"ShiftRight", int(sdl.SCANCODE_RSHIFT)},
		{"AltRight", int(sdl.SCANCODE_RALT)},
		{"MetaRight", int(sdl.SCANCODE_RGUI)},
	}...)

var sdlMouseButtons = map[uint8]int{
	sdl.BUTTON_LEFT:   mouseLeft,
	sdl.BUTTON_RIGHT:  mouseRight,
	sdl.BUTTON_MIDDLE: mouseMiddle,
	sdl.BUTTON_X1:     mouseOther0,
	sdl.BUTTON_X2:     mouseOther1,
}

// SDL reports the triggers as axes, so they have no entry here.
var sdlControllerButtons = map[sdl.GameControllerButton]int{
	sdl.CONTROLLER_BUTTON_A:             0,
	sdl.CONTROLLER_BUTTON_B:             1,
	sdl.CONTROLLER_BUTTON_X:             2,
	sdl.CONTROLLER_BUTTON_Y:             3,
	sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  4,
	sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: 5,
	sdl.CONTROLLER_BUTTON_BACK:          8,
	sdl.CONTROLLER_BUTTON_START:         9,
	sdl.CONTROLLER_BUTTON_LEFTSTICK:     10,
	sdl.CONTROLLER_BUTTON_RIGHTSTICK:    11,
	sdl.CONTROLLER_BUTTON_DPAD_UP:       12,
	sdl.CONTROLLER_BUTTON_DPAD_DOWN:     13,
	sdl.CONTROLLER_BUTTON_DPAD_LEFT:     14,
	sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    15,
	sdl.CONTROLLER_BUTTON_GUIDE:         16,
}

type sdlBackend struct{}

func DefaultBackend() Backend {
	return sdlBackend{}
}

func (sdlBackend) Name() string { return "sdl2" }

func (sdlBackend) Buttons() []button.Constant {
	consts := keyConstants(sdlKeys)
	consts = append(consts, mouseConstants()...)
	return append(consts, gamepadConstants()...)
}

func (sdlBackend) Open(cfg Config) (Host, error) {
	return NewSDLHost(cfg)
}

type SDLHost struct {
	cfg         Config
	window      *sdl.Window
	renderer    *sdl.Renderer
	controllers map[sdl.JoystickID]*sdl.GameController
	audio       *sdlAudio
	running     bool

	vertices []sdl.Vertex
}

func NewSDLHost(cfg Config) (*SDLHost, error) {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return nil, err
	}

	var flags uint32 = sdl.WINDOW_SHOWN
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}
	window, err := sdl.CreateWindow(
		cfg.Caption,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	audio, err := openSDLAudio()
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	host := &SDLHost{
		cfg:         cfg,
		window:      window,
		renderer:    renderer,
		controllers: map[sdl.JoystickID]*sdl.GameController{},
		audio:       audio,
	}
	host.SetCursorVisible(cfg.NeedsCursor)

	util.Trace("window: sdl host %dx%d", cfg.Width, cfg.Height)
	return host, nil
}

func (h *SDLHost) getTicks() int64 {
	return int64(sdl.GetTicks()) * 1000
}

func (h *SDLHost) delay(us int64) {
	sdl.Delay(uint32(us / 1000))
}

func (h *SDLHost) Run(loop Loop) error {
	defer h.destroy()

	synchronizer := NewTimeSynchronizer(h, h.cfg.UpdateInterval)
	h.running = true
	for h.running {
		h.handleEvents(loop)
		if !h.running {
			break
		}

		loop.Update()

		h.renderer.SetDrawColor(0, 0, 0, 0xff)
		h.renderer.Clear()
		loop.Draw()
		h.renderer.Present()

		synchronizer.MaySleep()
	}
	return nil
}

func (h *SDLHost) handleEvents(loop Loop) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			h.running = false

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				break
			}
			id := keyID(int(e.Keysym.Scancode))
			if e.Type == sdl.KEYDOWN {
				loop.ButtonDown(id)
			} else {
				loop.ButtonUp(id)
			}

		case *sdl.MouseButtonEvent:
			index, ok := sdlMouseButtons[e.Button]
			if !ok {
				break
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				loop.ButtonDown(mouseID(index))
			} else {
				loop.ButtonUp(mouseID(index))
			}

		case *sdl.MouseWheelEvent:
			wheel := func(index int) {
				loop.ButtonDown(mouseID(index))
				loop.ButtonUp(mouseID(index))
			}
			switch {
			case e.Y > 0:
				wheel(mouseWheelUp)
			case e.Y < 0:
				wheel(mouseWheelDown)
			}
			switch {
			case e.X < 0:
				wheel(mouseWheelLeft)
			case e.X > 0:
				wheel(mouseWheelRight)
			}

		case *sdl.ControllerDeviceEvent:
			switch e.Type {
			case sdl.CONTROLLERDEVICEADDED:
				if ctrl := sdl.GameControllerOpen(int(e.Which)); ctrl != nil {
					h.controllers[ctrl.Joystick().InstanceID()] = ctrl
				}
			case sdl.CONTROLLERDEVICEREMOVED:
				if ctrl, ok := h.controllers[e.Which]; ok {
					ctrl.Close()
					delete(h.controllers, e.Which)
				}
			}

		case *sdl.ControllerButtonEvent:
			index, ok := sdlControllerButtons[sdl.GameControllerButton(e.Button)]
			if !ok {
				break
			}
			if e.Type == sdl.CONTROLLERBUTTONDOWN {
				loop.ButtonDown(gamepadID(index))
			} else {
				loop.ButtonUp(gamepadID(index))
			}
		}
	}
}

func (h *SDLHost) destroy() {
	for id, ctrl := range h.controllers {
		ctrl.Close()
		delete(h.controllers, id)
	}
	h.audio.close()
	h.renderer.Destroy()
	h.window.Destroy()
	sdl.Quit()
}

func (h *SDLHost) Close() {
	h.running = false
}

func (h *SDLHost) IsButtonDown(id int) bool {
	device, index := splitID(id)
	switch device {
	case button.Gamepad:
		for b, i := range sdlControllerButtons {
			if i != index {
				continue
			}
			for _, ctrl := range h.controllers {
				if ctrl.Button(b) != 0 {
					return true
				}
			}
		}
		return false
	case button.Mouse:
		_, _, state := sdl.GetMouseState()
		for b, i := range sdlMouseButtons {
			if i == index {
				return uint32(state)&(1<<(b-1)) != 0
			}
		}
		return false
	}
	keys := sdl.GetKeyboardState()
	return index >= 0 && index < len(keys) && keys[index] != 0
}

func (h *SDLHost) Size() (int, int) {
	return h.cfg.Width, h.cfg.Height
}

func (h *SDLHost) SetCaption(caption string) {
	h.cfg.Caption = caption
	h.window.SetTitle(caption)
}

func (h *SDLHost) SetCursorVisible(visible bool) {
	toggle := sdl.DISABLE
	if visible {
		toggle = sdl.ENABLE
	}
	if _, err := sdl.ShowCursor(toggle); err != nil {
		util.Trace("window: cannot toggle cursor: %v", err)
	}
}

func (h *SDLHost) MousePosition() (float64, float64) {
	x, y, _ := sdl.GetMouseState()
	return float64(x), float64(y)
}

func (h *SDLHost) SetMousePosition(x, y float64) {
	h.window.WarpMouseInWindow(int32(x), int32(y))
}

func sdlBlendMode(mode BlendMode) sdl.BlendMode {
	switch mode {
	case BlendAdd:
		return sdl.BLENDMODE_ADD
	case BlendMultiply:
		return sdl.BLENDMODE_MOD
	}
	return sdl.BLENDMODE_BLEND
}

func (h *SDLHost) DrawTriangles(vs []Vertex, img Image, mode BlendMode, clip *image.Rectangle) {
	if len(vs) < 3 {
		return
	}

	if clip != nil {
		h.renderer.SetClipRect(&sdl.Rect{
			X: int32(clip.Min.X),
			Y: int32(clip.Min.Y),
			W: int32(clip.Dx()),
			H: int32(clip.Dy()),
		})
		defer h.renderer.SetClipRect(nil)
	}

	var texture *sdl.Texture
	var texW, texH float32 = 1, 1
	if img != nil {
		si := img.(*sdlImage)
		texture = si.texture
		texW, texH = float32(si.width), float32(si.height)
		texture.SetBlendMode(sdlBlendMode(mode))
	}
	h.renderer.SetDrawBlendMode(sdlBlendMode(mode))

	h.vertices = h.vertices[:0]
	for _, v := range vs {
		h.vertices = append(h.vertices, sdl.Vertex{
			Position: sdl.FPoint{X: v.X, Y: v.Y},
			Color:    sdl.Color{R: v.Color.R, G: v.Color.G, B: v.Color.B, A: v.Color.A},
			TexCoord: sdl.FPoint{X: v.U / texW, Y: v.V / texH},
		})
	}
	if err := h.renderer.RenderGeometry(texture, h.vertices, nil); err != nil {
		util.Trace("window: RenderGeometry: %v", err)
	}
}

type sdlImage struct {
	texture       *sdl.Texture
	width, height int32
	bounds        image.Rectangle
}

func (i *sdlImage) Bounds() image.Rectangle { return i.bounds }

func (i *sdlImage) SubImage(r image.Rectangle) Image {
	return &sdlImage{i.texture, i.width, i.height, subBounds(i.bounds, r)}
}

func (h *SDLHost) LoadImage(path string) (Image, error) {
	surface, err := img.Load(path)
	if err != nil {
		return nil, fmt.Errorf("window: loading image %s: %w", path, err)
	}
	defer surface.Free()

	texture, err := h.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("window: loading image %s: %w", path, err)
	}
	return &sdlImage{
		texture: texture,
		width:   surface.W,
		height:  surface.H,
		bounds:  image.Rect(0, 0, int(surface.W), int(surface.H)),
	}, nil
}
