package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-uolib/client/pkg/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// log pane height in lines
const logLines = 8

// ClientInterface defines the methods required from a client for TUI interaction
type ClientInterface interface {
	GetTitle() string
	GetMaxLogLines() int
	Exec(line string) error
	Tick(total time.Duration)
	Render(c ui.Canvas)
	Wheel(up bool, x, y int)
	Pointer(x, y int)
}

// TUI shows the open windows above a log pane and a command line.
type TUI struct {
	client    ClientInterface
	tickRate  time.Duration
	start     time.Time
	canvas    *Canvas
	viewport  viewport.Model
	textInput textinput.Model

	logs      []string
	logsDirty bool
	logMutex  sync.Mutex

	ready  bool
	width  int
	height int
}

// New creates a new TUI instance
func New(client ClientInterface, tickRate time.Duration) *TUI {
	ti := textinput.New()
	ti.Placeholder = "open <serial> • add <container> <graphic> • grid • scale <pct> • save/restore <path>"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &TUI{
		client:    client,
		tickRate:  tickRate,
		canvas:    NewCanvas(0, 0),
		textInput: ti,
		logs:      []string{},
	}
}

type tickMsg time.Time

func (t *TUI) tick() tea.Cmd {
	return tea.Tick(t.tickRate, func(now time.Time) tea.Msg { return tickMsg(now) })
}

// Init initializes the TUI
func (t *TUI) Init() tea.Cmd {
	t.start = time.Now()
	return tea.Batch(textinput.Blink, t.tick())
}

// Update handles TUI updates
func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return t, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(t.textInput.Value())
			if input != "" {
				t.AddLog(fmt.Sprintf("cmd > %s", input))
				if err := t.client.Exec(input); err != nil {
					t.AddLog(fmt.Sprintf("Error: %v", err))
				}
				t.textInput.SetValue("")
				t.refresh()
			}
			return t, nil
		}

	case tea.MouseMsg:
		// the canvas starts below the title line
		x, y := msg.X*CellWidth, (msg.Y-1)*CellHeight
		if y < 0 {
			return t, nil
		}
		switch {
		case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
			t.client.Wheel(msg.Button == tea.MouseButtonWheelUp, x, y)
			t.refresh()
			return t, nil
		case msg.Action == tea.MouseActionMotion:
			t.client.Pointer(x, y)
			t.refresh()
			return t, nil
		}

	case tickMsg:
		t.client.Tick(time.Time(msg).Sub(t.start))
		t.refresh()
		return t, t.tick()

	case tea.WindowSizeMsg:
		canvasRows := max(msg.Height-logLines-3, 0)
		t.canvas.Resize(msg.Width, canvasRows)
		if !t.ready {
			t.viewport = viewport.New(msg.Width, logLines)
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = logLines
		}
		t.width = msg.Width
		t.height = msg.Height
		t.textInput.Width = msg.Width - 2
		t.refresh()

	case LogMsg:
		t.AddLog(string(msg))
		t.refresh()
		return t, nil
	}

	// update viewport
	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	t.textInput, cmd = t.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return t, tea.Batch(cmds...)
}

// refresh redraws the windows and, if new lines arrived, the log pane.
func (t *TUI) refresh() {
	t.canvas.Clear()
	t.client.Render(t.canvas)

	if !t.ready {
		return
	}
	t.logMutex.Lock()
	dirty := t.logsDirty
	t.logsDirty = false
	t.logMutex.Unlock()
	if dirty {
		// do not scroll if not at bottom, to prevent flickering
		wasAtBottom := t.viewport.AtBottom()
		t.viewport.SetContent(t.renderLogs())
		if wasAtBottom {
			t.viewport.GotoBottom()
		}
	}
}

// View renders the TUI
func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	title := titleStyle.Render(t.client.GetTitle())
	help := helpStyle.Render("Enter: run command • wheel: scroll grid • Ctrl+C/Esc: quit")

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		title,
		t.canvas.View(),
		t.viewport.View(),
		inputStyle.Render("> "+t.textInput.View()),
		help,
	)
}

// AddLog adds a log message to the TUI
func (t *TUI) AddLog(msg string) {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	t.logs = append(t.logs, msg)
	t.logsDirty = true

	// trim logs
	maxLines := t.client.GetMaxLogLines()
	if maxLines > 0 && len(t.logs) > maxLines {
		t.logs = t.logs[len(t.logs)-maxLines:]
	}
}

func (t *TUI) renderLogs() string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging
type LogMsg string

// Writer is an io.Writer that feeds the TUI log pane. Lines written from
// inside Update are buffered and shown on the next refresh.
type Writer struct {
	tui *TUI
}

// NewWriter creates a new TUI Writer
func NewWriter(t *TUI) *Writer {
	return &Writer{tui: t}
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line != "" {
			w.tui.AddLog(line)
		}
	}
	return len(p), nil
}

// Start creates a new TUI program, returning the program and a writer for logging
func Start(client ClientInterface, tickRate time.Duration) (*tea.Program, io.Writer) {
	t := New(client, tickRate)
	p := tea.NewProgram(t, tea.WithAltScreen(), tea.WithMouseAllMotion())
	return p, NewWriter(t)
}
