package client

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/go-uolib/client/pkg/ui"
)

type stubModule struct {
	name    string
	inits   int
	updates []time.Duration
	cmds    [][]string
	draws   int
	wheel   bool
	wheeled int
}

func (s *stubModule) Name() string               { return s.name }
func (s *stubModule) Init(*Client)               { s.inits++ }
func (s *stubModule) Update(total time.Duration) { s.updates = append(s.updates, total) }
func (s *stubModule) Reset()                     {}
func (s *stubModule) Render(ui.Canvas)           { s.draws++ }

func (s *stubModule) HandleCommand(args []string) (bool, error) {
	s.cmds = append(s.cmds, args)
	switch args[0] {
	case s.name:
		return true, nil
	case "fail":
		return true, errors.New("failed")
	}
	return false, nil
}

func (s *stubModule) HandleWheel(bool, int, int) bool {
	s.wheeled++
	return s.wheel
}

func newQuiet() *Client {
	c := New()
	c.Logger = log.New(io.Discard, "", 0)
	return c
}

func TestRegisterDuplicatePanics(t *testing.T) {
	c := newQuiet()
	a := &stubModule{name: "a"}
	c.Register(a)
	if a.inits != 1 || c.Module("a") != a {
		t.Fatal("module not registered")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("duplicate register did not panic")
		}
	}()
	c.Register(&stubModule{name: "a"})
}

func TestExecDispatch(t *testing.T) {
	c := newQuiet()
	a, b := &stubModule{name: "a"}, &stubModule{name: "b"}
	c.Register(a)
	c.Register(b)

	tests := []struct {
		line    string
		wantErr bool
	}{
		{"", false},
		{"a 1", false},
		{"b", false},
		{"fail", true},
		{"unknown", true},
	}
	for _, tt := range tests {
		if err := c.Exec(tt.line); (err != nil) != tt.wantErr {
			t.Errorf("Exec(%q) err = %v", tt.line, err)
		}
	}
	// "a" stops at the first module, "b" passes through it
	if len(a.cmds) != 4 || len(b.cmds) != 2 {
		t.Errorf("a saw %d, b saw %d", len(a.cmds), len(b.cmds))
	}
}

func TestTickDrainsDoubleClicksFirst(t *testing.T) {
	c := newQuiet()
	m := &stubModule{name: "m"}
	c.Register(m)

	var order []string
	c.OnDoubleClick(func(serial uint32) {
		order = append(order, "click")
		if serial == 1 {
			// queued from a handler, runs next tick
			c.DoubleClickDelayed(2)
		}
	})
	c.DoubleClickDelayed(1)

	c.Tick(time.Second)
	order = append(order, "tick")
	if len(order) != 2 || order[0] != "click" {
		t.Errorf("order = %v", order)
	}
	if len(m.updates) != 1 || c.Elapsed() != time.Second {
		t.Errorf("updates = %v", m.updates)
	}

	c.Tick(2 * time.Second)
	if len(order) != 3 {
		t.Errorf("re-queued click did not run on the next tick: %v", order)
	}
}

func TestWheelStopsAtFirstConsumer(t *testing.T) {
	c := newQuiet()
	a := &stubModule{name: "a", wheel: true}
	b := &stubModule{name: "b", wheel: true}
	c.Register(a)
	c.Register(b)

	c.Wheel(true, 10, 10)
	if a.wheeled != 1 || b.wheeled != 0 {
		t.Errorf("wheel went to a=%d b=%d", a.wheeled, b.wheeled)
	}
	c.Render(nil)
	if a.draws != 1 || b.draws != 1 {
		t.Errorf("render reached a=%d b=%d", a.draws, b.draws)
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	c := newQuiet()
	m := &stubModule{name: "m"}
	c.Register(m)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := c.Run(ctx, 5*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if len(m.updates) == 0 || m.updates[0] != 0 {
		t.Errorf("updates = %v", m.updates)
	}
}
