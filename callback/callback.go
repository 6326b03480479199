// Package callback holds the table of lifecycle and button handlers a game
// registers. Looking up a name nobody registered is not an error; the event is
// simply dropped.
package callback

import "github.com/erisdev/gosu/button"

type Name string

const (
	Setup         Name = "on_setup"
	Teardown      Name = "on_teardown"
	Update        Name = "on_update"
	Draw          Name = "on_draw"
	ButtonDownAny Name = "on_button_down_any"
	ButtonUpAny   Name = "on_button_up_any"
)

// ButtonDown is the name of the handler fired when d is pressed.
func ButtonDown(d *button.Descriptor) Name {
	return Name(d.DownHandler())
}

// ButtonUp is the name of the handler fired when d is released.
func ButtonUp(d *button.Descriptor) Name {
	return Name(d.UpHandler())
}

// Handler receives the button that triggered it, or nil for lifecycle
// events.
type Handler func(b *button.Descriptor)

// Table is not synchronized; the host loop is its only user.
type Table struct {
	handlers map[Name]Handler
}

func New() *Table {
	return &Table{handlers: make(map[Name]Handler)}
}

// Register replaces whatever handler name had. A nil handler unregisters it.
func (t *Table) Register(name Name, h Handler) {
	if h == nil {
		delete(t.handlers, name)
		return
	}
	t.handlers[name] = h
}

func (t *Table) Registered(name Name) bool {
	_, ok := t.handlers[name]
	return ok
}

// Invoke runs the handler registered under name and reports whether there
// was one.
func (t *Table) Invoke(name Name, b *button.Descriptor) bool {
	h, ok := t.handlers[name]
	if !ok {
		return false
	}
	h(b)
	return true
}
