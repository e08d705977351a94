package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-uolib/client/pkg/ui"
)

func TestCanvasDrawRect(t *testing.T) {
	c := NewCanvas(6, 3)
	c.DrawRect(ui.Rect{X: 0, Y: 0, W: 4 * CellWidth, H: 3 * CellHeight}, ui.ColorGray)

	want := strings.Join([]string{
		"┌──┐  ",
		"│  │  ",
		"└──┘  ",
	}, "\n")
	if got := c.Plain(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestCanvasClip(t *testing.T) {
	c := NewCanvas(10, 2)
	if !c.PushClip(ui.Rect{X: 2 * CellWidth, Y: 0, W: 3 * CellWidth, H: CellHeight}) {
		t.Fatal("clip rejected")
	}
	c.FillRect(ui.Rect{W: 10 * CellWidth, H: 2 * CellHeight}, ui.ColorGray)
	c.PopClip()

	for x := 0; x < 10; x++ {
		set := c.cells[x].set
		if want := x >= 2 && x < 5; set != want {
			t.Errorf("cell %d set = %v, want %v", x, set, want)
		}
		if c.cells[10+x].set {
			t.Errorf("row 1 cell %d drawn outside clip", x)
		}
	}

	if c.PushClip(ui.Rect{X: 1000, Y: 1000, W: 5, H: 5}) {
		t.Errorf("clip outside the canvas accepted")
	}
	// popping an empty stack is harmless
	c.PopClip()
}

func TestCanvasNestedClipIntersects(t *testing.T) {
	c := NewCanvas(10, 1)
	c.PushClip(ui.Rect{X: 0, Y: 0, W: 6 * CellWidth, H: CellHeight})
	c.PushClip(ui.Rect{X: 4 * CellWidth, Y: 0, W: 6 * CellWidth, H: CellHeight})
	c.FillRect(ui.Rect{W: 10 * CellWidth, H: CellHeight}, ui.ColorGray)

	if got := strings.Count(c.Plain(), " "); got != 10 {
		t.Fatalf("unexpected plain output %q", c.Plain())
	}
	var n int
	for _, p := range c.cells {
		if p.set {
			n++
		}
	}
	if n != 2 {
		t.Errorf("drawn cells = %d, want 2", n)
	}
}

func TestCanvasArtLabels(t *testing.T) {
	c := NewCanvas(8, 1)
	c.DrawArt(0x0EED, 0, ui.Rect{W: 5 * CellWidth, H: CellHeight})
	c.DrawArt(0x13F8, 0, ui.Rect{X: 6 * CellWidth, W: 2 * CellWidth, H: CellHeight})
	if got := c.Plain(); got != "0EED  ◆ " {
		t.Errorf("got %q", got)
	}
}

func TestCanvasViewKeepsText(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawGump(0x3C, 0, ui.Rect{W: 4 * CellWidth, H: CellHeight})
	if !strings.Contains(c.View(), "003C") {
		t.Errorf("view lost the label: %q", c.View())
	}
}

type fakeClient struct {
	lines    []string
	ticks    []time.Duration
	wheels   []bool
	pointers [][2]int
	draws    int
}

func (f *fakeClient) GetTitle() string         { return "test" }
func (f *fakeClient) GetMaxLogLines() int      { return 3 }
func (f *fakeClient) Tick(total time.Duration) { f.ticks = append(f.ticks, total) }
func (f *fakeClient) Render(ui.Canvas)         { f.draws++ }
func (f *fakeClient) Wheel(up bool, _, _ int)  { f.wheels = append(f.wheels, up) }
func (f *fakeClient) Pointer(x, y int)         { f.pointers = append(f.pointers, [2]int{x, y}) }

func (f *fakeClient) Exec(line string) error {
	f.lines = append(f.lines, line)
	if line == "bad" {
		return errors.New("nope")
	}
	return nil
}

func TestUpdateRunsCommands(t *testing.T) {
	fc := &fakeClient{}
	tu := New(fc, 10*time.Millisecond)
	tu.Update(tea.WindowSizeMsg{Width: 40, Height: 30})

	for _, line := range []string{"open 1", "bad"} {
		tu.textInput.SetValue(line)
		tu.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	if len(fc.lines) != 2 || fc.lines[1] != "bad" {
		t.Fatalf("exec lines = %v", fc.lines)
	}
	logs := tu.renderLogs()
	if !strings.Contains(logs, "Error: nope") {
		t.Errorf("error not logged: %q", logs)
	}
	// trimmed to GetMaxLogLines
	if n := len(strings.Split(logs, "\n")); n != 3 {
		t.Errorf("log lines = %d", n)
	}
	if tu.textInput.Value() != "" {
		t.Errorf("input not cleared")
	}
}

func TestUpdateTicksAndWheel(t *testing.T) {
	fc := &fakeClient{}
	tu := New(fc, 10*time.Millisecond)
	tu.Init()
	tu.Update(tea.WindowSizeMsg{Width: 40, Height: 30})

	_, cmd := tu.Update(tickMsg(tu.start.Add(time.Second)))
	if cmd == nil {
		t.Errorf("tick did not schedule the next one")
	}
	if len(fc.ticks) != 1 || fc.ticks[0] != time.Second {
		t.Errorf("ticks = %v", fc.ticks)
	}

	tu.Update(tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	tu.Update(tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if len(fc.wheels) != 1 || fc.wheels[0] {
		t.Errorf("wheels = %v", fc.wheels)
	}

	tu.Update(tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionMotion})
	if len(fc.pointers) != 1 || fc.pointers[0] != [2]int{2 * CellWidth, 2 * CellHeight} {
		t.Errorf("pointers = %v", fc.pointers)
	}
	if fc.draws == 0 {
		t.Errorf("never rendered")
	}
}

func TestWriterSplitsLines(t *testing.T) {
	fc := &fakeClient{}
	tu := New(fc, time.Second)
	w := NewWriter(tu)
	if _, err := w.Write([]byte("a\nb\n")); err != nil {
		t.Fatal(err)
	}
	if got := tu.renderLogs(); got != "a\nb" {
		t.Errorf("logs = %q", got)
	}
}
