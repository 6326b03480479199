//go:build raylib

package window

import (
	"fmt"
	"image"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/util"
)

var raylibKeys = append(append(append(append(
	letterKeys(int(rl.KeyA)),
	digitKeys("Digit", int(rl.KeyZero), int(rl.KeyOne))...),
	digitKeys("Numpad", int(rl.KeyKp0), int(rl.KeyKp1))...),
	functionKeys(int(rl.KeyF1), 12)...),
	[]keyCode{
		{"Enter", int(rl.KeyEnter)},
		{"Escape", int(rl.KeyEscape)},
		{"Backspace", int(rl.KeyBackspace)},
		{"Tab", int(rl.KeyTab)},
		{"Space", int(rl.KeySpace)},
		{"Minus", int(rl.KeyMinus)},
		{"Equal", int(rl.KeyEqual)},
		{"BracketLeft", int(rl.KeyLeftBracket)},
		{"BracketRight", int(rl.KeyRightBracket)},
		{"Backslash", int(rl.KeyBackSlash)},
		{"Semicolon", int(rl.KeySemicolon)},
		{"Quote", int(rl.KeyApostrophe)},
		{"Backquote", int(rl.KeyGrave)},
		{"Comma", int(rl.KeyComma)},
		{"Period", int(rl.KeyPeriod)},
		{"Slash", int(rl.KeySlash)},
		{"CapsLock", int(rl.KeyCapsLock)},
		{"PrintScreen", int(rl.KeyPrintScreen)},
		{"ScrollLock", int(rl.KeyScrollLock)},
		{"Pause", int(rl.KeyPause)},
		{"Insert", int(rl.KeyInsert)},
		{"Home", int(rl.KeyHome)},
		{"PageUp", int(rl.KeyPageUp)},
		{"Delete", int(rl.KeyDelete)},
		{"End", int(rl.KeyEnd)},
		{"PageDown", int(rl.KeyPageDown)},
		{"ArrowRight", int(rl.KeyRight)},
		{"ArrowLeft", int(rl.KeyLeft)},
		{"ArrowDown", int(rl.KeyDown)},
		{"ArrowUp", int(rl.KeyUp)},
		{"NumLock", int(rl.KeyNumLock)},
		{"NumpadDivide", int(rl.KeyKpDivide)},
		{"NumpadMultiply", int(rl.KeyKpMultiply)},
		{"NumpadSubtract", int(rl.KeyKpSubtract)},
		{"NumpadAdd", int(rl.KeyKpAdd)},
		{"NumpadEnter", int(rl.KeyKpEnter)},
		{"NumpadDecimal", int(rl.KeyKpDecimal)},
		{"ControlLeft", int(rl.KeyLeftControl)},
		{"ShiftLeft", int(rl.KeyLeftShift)},
		{"AltLeft", int(rl.KeyLeftAlt)},
		{"MetaLeft", int(rl.KeyLeftSuper)},
		{"ControlRight", int(rl.KeyRightControl)},
		{"ShiftRight", int(rl.KeyRightShift)},
		{"AltRight", int(rl.KeyRightAlt)},
		{"MetaRight", int(rl.KeyRightSuper)},
	}...)

var raylibMouseButtons = map[int]rl.MouseButton{
	mouseLeft:   rl.MouseButtonLeft,
	mouseRight:  rl.MouseButtonRight,
	mouseMiddle: rl.MouseButtonMiddle,
	mouseOther0: rl.MouseButtonBack,
	mouseOther1: rl.MouseButtonForward,
}

// raylib numbers gamepad buttons by position: 1-4 left face, 5-8 right
// face, 9-12 shoulders and triggers, 13-15 middle, 16-17 sticks.
var raylibGamepadButtons = map[int32]int{
	7:  0,
	6:  1,
	8:  2,
	5:  3,
	9:  4,
	11: 5,
	10: 6,
	12: 7,
	13: 8,
	15: 9,
	16: 10,
	17: 11,
	1:  12,
	3:  13,
	4:  14,
	2:  15,
	14: 16,
}

const raylibMaxGamepads = 4

type raylibBackend struct{}

func DefaultBackend() Backend {
	return raylibBackend{}
}

func (raylibBackend) Name() string { return "raylib" }

func (raylibBackend) Buttons() []button.Constant {
	consts := keyConstants(raylibKeys)
	consts = append(consts, mouseConstants()...)
	return append(consts, gamepadConstants()...)
}

func (raylibBackend) Open(cfg Config) (Host, error) {
	return NewRaylibHost(cfg)
}

type RaylibHost struct {
	cfg     Config
	running bool
	songs   []*raylibSong
}

func NewRaylibHost(cfg Config) (*RaylibHost, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("window: invalid size %dx%d", cfg.Width, cfg.Height)
	}

	if cfg.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	}
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Caption)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("window: raylib could not open a window")
	}
	rl.SetExitKey(rl.KeyNull)
	if cfg.UpdateInterval > 0 {
		rl.SetTargetFPS(int32(math.Round(float64(time.Second) / float64(cfg.UpdateInterval))))
	}
	rl.InitAudioDevice()

	host := &RaylibHost{cfg: cfg}
	host.SetCursorVisible(cfg.NeedsCursor)

	util.Trace("window: raylib host %dx%d", cfg.Width, cfg.Height)
	return host, nil
}

func (h *RaylibHost) Run(loop Loop) error {
	defer h.destroy()

	h.running = true
	for h.running && !rl.WindowShouldClose() {
		h.pollButtons(loop)
		if !h.running {
			break
		}

		loop.Update()
		for _, s := range h.songs {
			if s.active {
				rl.UpdateMusicStream(s.music)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		loop.Draw()
		rl.EndDrawing()
	}
	return nil
}

func (h *RaylibHost) pollButtons(loop Loop) {
	for _, k := range raylibKeys {
		if rl.IsKeyPressed(int32(k.code)) {
			loop.ButtonDown(keyID(k.code))
		}
		if rl.IsKeyReleased(int32(k.code)) {
			loop.ButtonUp(keyID(k.code))
		}
	}

	for index, b := range raylibMouseButtons {
		if rl.IsMouseButtonPressed(b) {
			loop.ButtonDown(mouseID(index))
		}
		if rl.IsMouseButtonReleased(b) {
			loop.ButtonUp(mouseID(index))
		}
	}

	wheel := func(index int) {
		loop.ButtonDown(mouseID(index))
		loop.ButtonUp(mouseID(index))
	}
	move := rl.GetMouseWheelMoveV()
	switch {
	case move.Y > 0:
		wheel(mouseWheelUp)
	case move.Y < 0:
		wheel(mouseWheelDown)
	}
	switch {
	case move.X < 0:
		wheel(mouseWheelLeft)
	case move.X > 0:
		wheel(mouseWheelRight)
	}

	for pad := int32(0); pad < raylibMaxGamepads; pad++ {
		if !rl.IsGamepadAvailable(pad) {
			continue
		}
		for b, index := range raylibGamepadButtons {
			if rl.IsGamepadButtonPressed(pad, b) {
				loop.ButtonDown(gamepadID(index))
			}
			if rl.IsGamepadButtonReleased(pad, b) {
				loop.ButtonUp(gamepadID(index))
			}
		}
	}
}

func (h *RaylibHost) destroy() {
	for _, s := range h.songs {
		rl.UnloadMusicStream(s.music)
	}
	h.songs = nil
	rl.CloseAudioDevice()
	rl.CloseWindow()
}

func (h *RaylibHost) Close() {
	h.running = false
}

func (h *RaylibHost) IsButtonDown(id int) bool {
	device, index := splitID(id)
	switch device {
	case button.Gamepad:
		for b, i := range raylibGamepadButtons {
			if i != index {
				continue
			}
			for pad := int32(0); pad < raylibMaxGamepads; pad++ {
				if rl.IsGamepadAvailable(pad) && rl.IsGamepadButtonDown(pad, b) {
					return true
				}
			}
		}
		return false
	case button.Mouse:
		b, ok := raylibMouseButtons[index]
		return ok && rl.IsMouseButtonDown(b)
	}
	return index > 0 && rl.IsKeyDown(int32(index))
}

func (h *RaylibHost) Size() (int, int) {
	return h.cfg.Width, h.cfg.Height
}

func (h *RaylibHost) SetCaption(caption string) {
	h.cfg.Caption = caption
	rl.SetWindowTitle(caption)
}

func (h *RaylibHost) SetCursorVisible(visible bool) {
	if visible {
		rl.ShowCursor()
	} else {
		rl.HideCursor()
	}
}

func (h *RaylibHost) MousePosition() (float64, float64) {
	return float64(rl.GetMouseX()), float64(rl.GetMouseY())
}

func (h *RaylibHost) SetMousePosition(x, y float64) {
	rl.SetMousePosition(int(x), int(y))
}

func raylibBlendMode(mode BlendMode) rl.BlendMode {
	switch mode {
	case BlendAdd:
		return rl.BlendAdditive
	case BlendMultiply:
		return rl.BlendMultiplied
	}
	return rl.BlendAlpha
}

// DrawTriangles goes through rlgl directly; raylib's shape functions cannot
// take per-vertex colors and texture coordinates at once.
func (h *RaylibHost) DrawTriangles(vs []Vertex, img Image, mode BlendMode, clip *image.Rectangle) {
	if len(vs) < 3 {
		return
	}

	if clip != nil {
		rl.BeginScissorMode(int32(clip.Min.X), int32(clip.Min.Y), int32(clip.Dx()), int32(clip.Dy()))
		defer rl.EndScissorMode()
	}
	rl.BeginBlendMode(raylibBlendMode(mode))
	defer rl.EndBlendMode()
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()

	var texW, texH float32 = 1, 1
	if img != nil {
		ri := img.(*raylibImage)
		rl.SetTexture(ri.texture.ID)
		defer rl.SetTexture(0)
		texW, texH = float32(ri.texture.Width), float32(ri.texture.Height)
	}

	rl.Begin(rl.Triangles)
	for _, v := range vs[:len(vs)/3*3] {
		rl.Color4ub(v.Color.R, v.Color.G, v.Color.B, v.Color.A)
		rl.TexCoord2f(v.U/texW, v.V/texH)
		rl.Vertex2f(v.X, v.Y)
	}
	rl.End()
}

type raylibImage struct {
	texture rl.Texture2D
	bounds  image.Rectangle
}

func (i *raylibImage) Bounds() image.Rectangle { return i.bounds }

func (i *raylibImage) SubImage(r image.Rectangle) Image {
	return &raylibImage{i.texture, subBounds(i.bounds, r)}
}

func (h *RaylibHost) LoadImage(path string) (Image, error) {
	texture := rl.LoadTexture(path)
	if texture.ID == 0 {
		return nil, fmt.Errorf("window: loading image %s: raylib could not load texture", path)
	}
	return &raylibImage{texture, image.Rect(0, 0, int(texture.Width), int(texture.Height))}, nil
}

type raylibSample struct {
	sound rl.Sound
}

func (h *RaylibHost) LoadSample(path string) (Sample, error) {
	if _, err := audioFormat(path); err != nil {
		return nil, err
	}
	sound := rl.LoadSound(path)
	if sound.FrameCount == 0 {
		return nil, fmt.Errorf("window: decoding %s: raylib could not load sound", path)
	}
	return &raylibSample{sound}, nil
}

// Play restarts the sound; raylib plays one instance of a Sound at a time.
func (s *raylibSample) Play(volume float64) {
	rl.SetSoundVolume(s.sound, float32(volume))
	rl.PlaySound(s.sound)
}

type raylibSong struct {
	music  rl.Music
	active bool
	paused bool
}

func (h *RaylibHost) LoadSong(path string) (Song, error) {
	if _, err := audioFormat(path); err != nil {
		return nil, err
	}
	music := rl.LoadMusicStream(path)
	if music.FrameCount == 0 {
		return nil, fmt.Errorf("window: decoding %s: raylib could not load music", path)
	}
	s := &raylibSong{music: music}
	h.songs = append(h.songs, s)
	return s, nil
}

// Play resumes a paused song and restarts a finished one.
func (s *raylibSong) Play(looping bool) {
	s.music.Looping = looping
	if s.paused {
		rl.ResumeMusicStream(s.music)
	} else {
		rl.StopMusicStream(s.music)
		rl.PlayMusicStream(s.music)
	}
	s.active = true
	s.paused = false
}

func (s *raylibSong) Pause() {
	if s.active {
		rl.PauseMusicStream(s.music)
		s.paused = true
	}
}

func (s *raylibSong) Stop() {
	rl.StopMusicStream(s.music)
	s.active = false
	s.paused = false
}

func (s *raylibSong) Playing() bool {
	return s.active && !s.paused && rl.IsMusicStreamPlaying(s.music)
}

func (s *raylibSong) SetVolume(volume float64) {
	rl.SetMusicVolume(s.music, float32(volume))
}
