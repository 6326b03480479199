// Package button catalogs the input buttons a host exposes. Every button is
// known both by its platform id and by a symbolic name derived from the host's
// constant name, e.g. KbLeftShift becomes kb_left_shift.
package button

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

type Device int

const (
	Gamepad Device = iota
	Keyboard
	Mouse
)

func (d Device) String() string {
	switch d {
	case Gamepad:
		return "gamepad"
	case Keyboard:
		return "keyboard"
	case Mouse:
		return "mouse"
	}
	return fmt.Sprintf("Device(%d)", int(d))
}

var devicePrefixes = map[string]Device{
	"Gp": Gamepad,
	"Kb": Keyboard,
	"Ms": Mouse,
}

// DeviceOf maps the two-letter prefix of a host constant name to its device.
// ok is false when the constant does not name a button.
func DeviceOf(constName string) (Device, bool) {
	if len(constName) < 2 {
		return 0, false
	}
	d, ok := devicePrefixes[constName[:2]]
	return d, ok
}

// nameBoundary matches the empty position before an uppercase letter that
// follows a letter or digit, and before a digit that follows a letter.
var nameBoundary = regexp2.MustCompile(`(?<=[\p{L}\p{Nd}])(?=\p{Lu})|(?<=\p{L})(?=\p{Nd})`, regexp2.None)

// Normalize turns a host constant name into a symbolic button name: an
// underscore at every nameBoundary, then lower case.
func Normalize(constName string) string {
	s, err := nameBoundary.Replace(constName, "_", -1, -1)
	if err != nil {
		// only a match timeout fails, and nameBoundary has none
		panic(err)
	}
	return strings.ToLower(s)
}

// Constant is one input constant as enumerated by a host backend.
type Constant struct {
	Name string
	ID   int
}

// Descriptor identifies one input button. Descriptors are created by
// NewRegistry and never change afterwards.
type Descriptor struct {
	id     int
	name   string
	device Device
	down   string
	up     string
}

func newDescriptor(c Constant, device Device) *Descriptor {
	name := Normalize(c.Name)
	return &Descriptor{
		id:     c.ID,
		name:   name,
		device: device,
		down:   "on_button_down_" + name,
		up:     "on_button_up_" + name,
	}
}

func (d *Descriptor) ID() int        { return d.id }
func (d *Descriptor) Name() string   { return d.name }
func (d *Descriptor) Device() Device { return d.device }

// DownHandler is the handler name fired when this button is pressed.
func (d *Descriptor) DownHandler() string { return d.down }

// UpHandler is the handler name fired when this button is released.
func (d *Descriptor) UpHandler() string { return d.up }

func (d *Descriptor) String() string { return d.name }

// Registry resolves ids and symbolic names to descriptors. It is read-only
// once built and safe to share.
type Registry struct {
	byID   map[int]*Descriptor
	byName map[string]*Descriptor
	all    []*Descriptor
}

// NewRegistry registers every constant with a recognized device prefix and
// skips the rest. Two constants sharing an id, or normalizing to the same
// name, are an error.
func NewRegistry(consts []Constant) (*Registry, error) {
	r := &Registry{
		byID:   make(map[int]*Descriptor, len(consts)),
		byName: make(map[string]*Descriptor, len(consts)),
	}
	for _, c := range consts {
		device, ok := DeviceOf(c.Name)
		if !ok {
			continue
		}
		d := newDescriptor(c, device)
		if other, dup := r.byID[d.id]; dup {
			return nil, fmt.Errorf("button: %s and %s share id %d", other.name, d.name, d.id)
		}
		if other, dup := r.byName[d.name]; dup {
			return nil, fmt.Errorf("button: ids %d and %d both normalize to %s", other.id, d.id, d.name)
		}
		r.byID[d.id] = d
		r.byName[d.name] = d
		r.all = append(r.all, d)
	}
	sort.Slice(r.all, func(i, j int) bool { return r.all[i].id < r.all[j].id })
	return r, nil
}

func (r *Registry) ByID(id int) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

func (r *Registry) ByName(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Lookup resolves a platform id (any integer type), a symbolic name or a
// descriptor. Unknown keys and unsupported key types report ok == false.
func (r *Registry) Lookup(key any) (*Descriptor, bool) {
	switch k := key.(type) {
	case *Descriptor:
		if k == nil {
			return nil, false
		}
		return r.ByID(k.id)
	case string:
		return r.ByName(k)
	case int:
		return r.ByID(k)
	case int8:
		return r.ByID(int(k))
	case int16:
		return r.ByID(int(k))
	case int32:
		return r.ByID(int(k))
	case int64:
		if k < math.MinInt || k > math.MaxInt {
			return nil, false
		}
		return r.ByID(int(k))
	case uint:
		return r.byUint(uint64(k))
	case uint8:
		return r.ByID(int(k))
	case uint16:
		return r.ByID(int(k))
	case uint32:
		return r.byUint(uint64(k))
	case uint64:
		return r.byUint(k)
	case uintptr:
		return r.byUint(uint64(k))
	}
	return nil, false
}

// byUint never wraps an id too large for int onto a negative one.
func (r *Registry) byUint(id uint64) (*Descriptor, bool) {
	if id > math.MaxInt {
		return nil, false
	}
	return r.ByID(int(id))
}

// All returns every descriptor ordered by id.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, len(r.all))
	copy(out, r.all)
	return out
}

func (r *Registry) Len() int {
	return len(r.all)
}
