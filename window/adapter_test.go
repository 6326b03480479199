package window

import (
	"errors"
	"reflect"
	"testing"

	"github.com/erisdev/gosu/button"
	"github.com/erisdev/gosu/callback"
)

// recorder registers a handler for every name it is given that appends the
// name, plus the button if any, to its log.
type recorder struct {
	log []string
}

func (r *recorder) register(table *callback.Table, names ...callback.Name) {
	for _, name := range names {
		name := name
		table.Register(name, func(b *button.Descriptor) {
			entry := string(name)
			if b != nil {
				entry += "(" + b.Name() + ")"
			}
			r.log = append(r.log, entry)
		})
	}
}

func TestAdapterLifecycleOrder(t *testing.T) {
	host := newFakeHost(tick, tick, tick)
	table := callback.New()
	rec := &recorder{}
	rec.register(table, callback.Setup, callback.Update, callback.Draw, callback.Teardown)

	a := NewAdapter(host, testRegistry(t), table)
	if err := a.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}

	expected := []string{
		"on_setup", "on_update", "on_draw",
		"on_update", "on_draw",
		"on_update", "on_draw",
		"on_teardown",
	}
	if !reflect.DeepEqual(rec.log, expected) {
		t.Fatalf("lifecycle: (got: %v) (expected: %v)", rec.log, expected)
	}
	if a.Phase() != PhaseTeardown {
		t.Fatalf("phase after Show: (got: %v) (expected: %v)", a.Phase(), PhaseTeardown)
	}
}

func TestAdapterButtonDispatch(t *testing.T) {
	table := []struct {
		step     func(Loop)
		expected []string
	}{
		{press(keyID(41)), []string{"on_button_down_kb_escape(kb_escape)", "on_button_down_any(kb_escape)"}},
		{release(keyID(41)), []string{"on_button_up_kb_escape(kb_escape)", "on_button_up_any(kb_escape)"}},
		{press(keyID(4)), []string{"on_button_down_any(kb_a)"}},
		{release(mouseID(mouseLeft)), []string{"on_button_up_any(ms_left)"}},
		{press(gamepadID(0)), []string{"on_button_down_gp_button_0(gp_button_0)", "on_button_down_any(gp_button_0)"}},
		{press(keyID(999)), nil},
		{release(keyID(999)), nil},
	}

	buttons := testRegistry(t)
	escape, _ := buttons.ByName("kb_escape")
	pad, _ := buttons.ByName("gp_button_0")

	for _, entry := range table {
		handlers := callback.New()
		rec := &recorder{}
		rec.register(handlers,
			callback.ButtonDown(escape), callback.ButtonUp(escape), callback.ButtonDown(pad),
			callback.ButtonDownAny, callback.ButtonUpAny,
		)

		a := NewAdapter(newFakeHost(entry.step), buttons, handlers)
		if err := a.Show(); err != nil {
			t.Fatalf("Show: %v", err)
		}
		if !reflect.DeepEqual(rec.log, entry.expected) {
			t.Fatalf("dispatch: (got: %v) (expected: %v)", rec.log, entry.expected)
		}
	}
}

func TestAdapterUnregisteredHandlersAreNoops(t *testing.T) {
	host := newFakeHost(tick, press(keyID(41)), release(keyID(41)), tick)
	a := NewAdapter(host, testRegistry(t), callback.New())
	if err := a.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
}

func TestAdapterCloseDuringSetup(t *testing.T) {
	host := newFakeHost(tick, tick)
	table := callback.New()
	rec := &recorder{}
	rec.register(table, callback.Update, callback.Draw, callback.Teardown)

	var a *Adapter
	table.Register(callback.Setup, func(*button.Descriptor) {
		rec.log = append(rec.log, "on_setup")
		a.Close()
	})

	a = NewAdapter(host, testRegistry(t), table)
	if err := a.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}

	// The draw of the closing tick still happens; the second tick never runs.
	expected := []string{"on_setup", "on_draw", "on_teardown"}
	if !reflect.DeepEqual(rec.log, expected) {
		t.Fatalf("close during setup: (got: %v) (expected: %v)", rec.log, expected)
	}
	if !host.closed {
		t.Fatalf("host was not closed")
	}
}

func TestAdapterCloseBeforeShow(t *testing.T) {
	table := []bool{false, true}

	for _, reopens := range table {
		host := newFakeHost(tick, tick)
		host.reopens = reopens
		handlers := callback.New()
		rec := &recorder{}
		rec.register(handlers, callback.Setup, callback.Update, callback.Draw, callback.Teardown)

		a := NewAdapter(host, testRegistry(t), handlers)
		a.Close()
		if err := a.Show(); err != nil {
			t.Fatalf("Show: %v", err)
		}

		expected := []string{"on_teardown"}
		if !reflect.DeepEqual(rec.log, expected) {
			t.Fatalf("close before show (reopens %v): (got: %v) (expected: %v)", reopens, rec.log, expected)
		}
		if host.runs != 0 {
			t.Fatalf("host runs: (got: %d) (expected: 0)", host.runs)
		}
		if a.Phase() != PhaseTeardown {
			t.Fatalf("phase: (got: %v) (expected: %v)", a.Phase(), PhaseTeardown)
		}
		if err := a.Show(); !errors.Is(err, ErrAlreadyShown) {
			t.Fatalf("second Show: (got: %v) (expected: %v)", err, ErrAlreadyShown)
		}
	}
}

func TestAdapterShowOnce(t *testing.T) {
	host := newFakeHost(tick)
	table := callback.New()
	teardowns := 0
	table.Register(callback.Teardown, func(*button.Descriptor) { teardowns++ })

	a := NewAdapter(host, testRegistry(t), table)
	if err := a.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if err := a.Show(); !errors.Is(err, ErrAlreadyShown) {
		t.Fatalf("second Show: (got: %v) (expected: %v)", err, ErrAlreadyShown)
	}
	a.Close()

	if host.runs != 1 {
		t.Fatalf("host runs: (got: %d) (expected: 1)", host.runs)
	}
	if teardowns != 1 {
		t.Fatalf("teardowns: (got: %d) (expected: 1)", teardowns)
	}
}

func TestAdapterHostErrorStillTearsDown(t *testing.T) {
	hostErr := errors.New("device lost")
	host := newFakeHost(tick)
	host.runErr = hostErr
	table := callback.New()
	tornDown := false
	table.Register(callback.Teardown, func(*button.Descriptor) { tornDown = true })

	a := NewAdapter(host, testRegistry(t), table)
	if err := a.Show(); !errors.Is(err, hostErr) {
		t.Fatalf("Show: (got: %v) (expected: %v)", err, hostErr)
	}
	if !tornDown {
		t.Fatalf("teardown did not run after a host error")
	}
}

func TestAdapterDrawFlushesCanvas(t *testing.T) {
	host := newFakeHost(tick)
	table := callback.New()
	var a *Adapter
	table.Register(callback.Draw, func(*button.Descriptor) {
		a.Canvas().DrawRect(0, 0, 10, 10)
	})

	a = NewAdapter(host, testRegistry(t), table)
	if err := a.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if len(host.draws) != 1 {
		t.Fatalf("draw calls: (got: %d) (expected: 1)", len(host.draws))
	}
}

func TestAdapterWindowSettings(t *testing.T) {
	host := newFakeHost()
	a := NewAdapter(host, testRegistry(t), callback.New())

	a.SetCaption("Zen")
	a.SetNeedsCursor(true)
	if a.Caption() != "Zen" || host.caption != "Zen" {
		t.Fatalf("caption: (got: %q, host %q) (expected: %q)", a.Caption(), host.caption, "Zen")
	}
	if !a.NeedsCursor() || !host.cursorVisible {
		t.Fatalf("needs cursor: (got: %v, host %v) (expected: true)", a.NeedsCursor(), host.cursorVisible)
	}
}
