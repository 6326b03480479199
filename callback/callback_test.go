package callback

import (
	"testing"

	"github.com/erisdev/gosu/button"
)

func escape(t *testing.T) *button.Descriptor {
	r, err := button.NewRegistry([]button.Constant{{Name: "KbEscape", ID: 41}})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := r.ByName("kb_escape")
	if !ok {
		t.Fatalf("kb_escape missing")
	}
	return d
}

func TestInvokeRegistered(t *testing.T) {
	d := escape(t)
	table := New()

	var got []*button.Descriptor
	table.Register(ButtonDown(d), func(b *button.Descriptor) { got = append(got, b) })

	if !table.Invoke(ButtonDown(d), d) {
		t.Fatalf("Invoke reported no handler")
	}
	if len(got) != 1 || got[0] != d {
		t.Fatalf("handler calls: (got: %v) (expected: [%v])", got, d)
	}
}

func TestInvokeUnregisteredIsNoop(t *testing.T) {
	d := escape(t)
	table := New()

	names := []Name{Setup, Teardown, Update, Draw, ButtonDownAny, ButtonUpAny, ButtonDown(d), ButtonUp(d)}
	for _, name := range names {
		if table.Invoke(name, d) {
			t.Fatalf("Invoke(%s) ran a handler on an empty table", name)
		}
		if table.Registered(name) {
			t.Fatalf("Registered(%s) on an empty table", name)
		}
	}
}

func TestRegisterOverwrites(t *testing.T) {
	table := New()
	calls := ""
	table.Register(Update, func(*button.Descriptor) { calls += "a" })
	table.Register(Update, func(*button.Descriptor) { calls += "b" })

	table.Invoke(Update, nil)
	if calls != "b" {
		t.Fatalf("calls: (got: %q) (expected: %q)", calls, "b")
	}

	table.Register(Update, nil)
	if table.Registered(Update) || table.Invoke(Update, nil) {
		t.Fatalf("nil handler did not unregister")
	}
	if calls != "b" {
		t.Fatalf("unregistered handler ran: %q", calls)
	}
}

func TestButtonHandlerNames(t *testing.T) {
	d := escape(t)
	if ButtonDown(d) != "on_button_down_kb_escape" {
		t.Fatalf("ButtonDown: got %s", ButtonDown(d))
	}
	if ButtonUp(d) != "on_button_up_kb_escape" {
		t.Fatalf("ButtonUp: got %s", ButtonUp(d))
	}
}
