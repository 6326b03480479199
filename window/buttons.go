package window

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/constant"
)

// Mouse buttons, numbered the same on every backend. Wheel motion is reported
// as a press immediately followed by a release.
const (
	mouseLeft = iota
	mouseRight
	mouseMiddle
	mouseOther0
	mouseOther1
)

const (
	mouseWheelUp = 0x10 + iota
	mouseWheelDown
	mouseWheelLeft
	mouseWheelRight
)

var mouseButtonNames = map[int]string{
	mouseLeft:       "MsLeft",
	mouseRight:      "MsRight",
	mouseMiddle:     "MsMiddle",
	mouseOther0:     "MsOther0",
	mouseOther1:     "MsOther1",
	mouseWheelUp:    "MsWheelUp",
	mouseWheelDown:  "MsWheelDown",
	mouseWheelLeft:  "MsWheelLeft",
	mouseWheelRight: "MsWheelRight",
}

// Gamepad buttons in the order of the W3C standard gamepad layout.
var gamepadButtonNames = [...]string{
	"GpButton0",  // bottom face button
	"GpButton1",  // right face button
	"GpButton2",  // left face button
	"GpButton3",  // top face button
	"GpButton4",  // left shoulder
	"GpButton5",  // right shoulder
	"GpButton6",  // left trigger
	"GpButton7",  // right trigger
	"GpButton8",  // back
	"GpButton9",  // start
	"GpButton10", // left stick
	"GpButton11", // right stick
	"GpDpadUp",
	"GpDpadDown",
	"GpDpadLeft",
	"GpDpadRight",
	"GpGuide",
}

func keyID(code int) int      { return constant.KB_RANGE_BEGIN + code }
func mouseID(index int) int   { return constant.MS_RANGE_BEGIN + index }
func gamepadID(index int) int { return constant.GP_RANGE_BEGIN + index }

// splitID is the inverse of keyID, mouseID and gamepadID.
func splitID(id int) (button.Device, int) {
	switch {
	case id >= constant.GP_RANGE_BEGIN && id < constant.GP_RANGE_END:
		return button.Gamepad, id - constant.GP_RANGE_BEGIN
	case id >= constant.MS_RANGE_BEGIN && id < constant.GP_RANGE_BEGIN:
		return button.Mouse, id - constant.MS_RANGE_BEGIN
	}
	return button.Keyboard, id - constant.KB_RANGE_BEGIN
}

func mouseConstants() []button.Constant {
	consts := make([]button.Constant, 0, len(mouseButtonNames))
	for index, name := range mouseButtonNames {
		consts = append(consts, button.Constant{Name: name, ID: mouseID(index)})
	}
	return consts
}

func gamepadConstants() []button.Constant {
	consts := make([]button.Constant, 0, len(gamepadButtonNames))
	for index, name := range gamepadButtonNames {
		consts = append(consts, button.Constant{Name: name, ID: gamepadID(index)})
	}
	return consts
}

// keyCode names one host key code. Names follow the W3C key code names
// without the "Key" prefix, e.g. "ShiftLeft", "Digit0", "Numpad0".
type keyCode struct {
	name string
	code int
}

func letterKeys(a int) []keyCode {
	keys := make([]keyCode, 0, 26)
	for i := 0; i < 26; i++ {
		keys = append(keys, keyCode{string(rune('A' + i)), a + i})
	}
	return keys
}

// digitKeys names ten digit keys whose codes for 1 to 9 are contiguous and
// whose 0 may sit elsewhere, as on both SDL scancodes and GLFW key codes.
func digitKeys(prefix string, zero, one int) []keyCode {
	keys := []keyCode{{prefix + "0", zero}}
	for i := 1; i <= 9; i++ {
		keys = append(keys, keyCode{fmt.Sprintf("%s%d", prefix, i), one + i - 1})
	}
	return keys
}

func functionKeys(f1, count int) []keyCode {
	keys := make([]keyCode, 0, count)
	for i := 0; i < count; i++ {
		keys = append(keys, keyCode{fmt.Sprintf("F%d", i+1), f1 + i})
	}
	return keys
}

// virtualModifiers are the "either side" modifier keys some hosts report
// alongside their Left and Right keys. A press sets both, so only the sided
// keys are registered.
var virtualModifiers = map[string]bool{
	"Shift":   true,
	"Alt":     true,
	"Control": true,
	"Meta":    true,
}

func physicalKeys(keys []keyCode) []keyCode {
	out := keys[:0:0]
	for _, k := range keys {
		if !virtualModifiers[k.name] {
			out = append(out, k)
		}
	}
	return out
}

func keyConstants(keys []keyCode) []button.Constant {
	consts := make([]button.Constant, 0, len(keys))
	for _, k := range keys {
		consts = append(consts, button.Constant{Name: "Kb" + k.name, ID: keyID(k.code)})
	}
	return consts
}

func audioFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".ogg":
		return ext, nil
	}
	return "", fmt.Errorf("window: unsupported audio format %q", path)
}
