package window

import (
	"errors"
	"fmt"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/callback"
	"github.com/erisdev/gosu/util"
)

var ErrAlreadyShown = errors.New("window: already shown")

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseUpdate
	PhaseTeardown
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseUpdate:
		return "update"
	case PhaseTeardown:
		return "teardown"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Adapter forwards host events to a callback table. Its phase only moves
// forward: setup, update, teardown.
type Adapter struct {
	host     Host
	buttons  *button.Registry
	handlers *callback.Table
	canvas   *Canvas

	phase    Phase
	shown    bool
	tornDown bool

	caption     string
	needsCursor bool
}

func NewAdapter(host Host, buttons *button.Registry, handlers *callback.Table) *Adapter {
	return &Adapter{
		host:     host,
		buttons:  buttons,
		handlers: handlers,
		canvas:   NewCanvas(host),
	}
}

func (a *Adapter) Host() Host        { return a.host }
func (a *Adapter) Canvas() *Canvas   { return a.canvas }
func (a *Adapter) Phase() Phase      { return a.phase }
func (a *Adapter) Caption() string   { return a.caption }
func (a *Adapter) NeedsCursor() bool { return a.needsCursor }

func (a *Adapter) SetCaption(caption string) {
	a.caption = caption
	a.host.SetCaption(caption)
}

func (a *Adapter) SetNeedsCursor(needsCursor bool) {
	a.needsCursor = needsCursor
	a.host.SetCursorVisible(needsCursor)
}

// Show blocks in the host loop until the window closes, then runs the
// teardown handler. A window can only be shown once; a window closed before
// Show only runs the teardown handler.
func (a *Adapter) Show() error {
	if a.shown {
		return ErrAlreadyShown
	}
	a.shown = true

	if a.phase == PhaseTeardown {
		// closed before it was ever shown
		a.teardown()
		return nil
	}

	a.phase = PhaseSetup
	util.Trace("window: showing")
	err := a.host.Run(a)
	a.phase = PhaseTeardown
	a.teardown()
	if err != nil {
		return fmt.Errorf("window: host loop: %w", err)
	}
	return nil
}

// Close asks the host to leave its loop. Update ticks the host still
// delivers afterwards are ignored; teardown runs once Show returns.
func (a *Adapter) Close() {
	a.host.Close()
	a.phase = PhaseTeardown
	util.Trace("window: closing")
}

func (a *Adapter) teardown() {
	if a.tornDown {
		return
	}
	a.tornDown = true
	a.handlers.Invoke(callback.Teardown, nil)
}

func (a *Adapter) ButtonDown(id int) {
	b, ok := a.buttons.ByID(id)
	if !ok {
		util.Trace("window: dropping press of unknown button id %d", id)
		return
	}
	a.handlers.Invoke(callback.ButtonDown(b), b)
	a.handlers.Invoke(callback.ButtonDownAny, b)
}

func (a *Adapter) ButtonUp(id int) {
	b, ok := a.buttons.ByID(id)
	if !ok {
		util.Trace("window: dropping release of unknown button id %d", id)
		return
	}
	a.handlers.Invoke(callback.ButtonUp(b), b)
	a.handlers.Invoke(callback.ButtonUpAny, b)
}

func (a *Adapter) Update() {
	switch a.phase {
	case PhaseSetup:
		a.handlers.Invoke(callback.Setup, nil)
		if a.phase != PhaseSetup {
			// closed from inside the setup handler
			return
		}
		a.phase = PhaseUpdate
		a.handlers.Invoke(callback.Update, nil)
	case PhaseUpdate:
		a.handlers.Invoke(callback.Update, nil)
	}
}

func (a *Adapter) Draw() {
	a.handlers.Invoke(callback.Draw, nil)
	a.canvas.Flush()
}
