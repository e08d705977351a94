package client

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-uolib/client/pkg/assets"
	"github.com/go-uolib/client/pkg/audio"
	"github.com/go-uolib/client/pkg/config"
	"github.com/go-uolib/client/pkg/storage"
	"github.com/go-uolib/client/pkg/tui"
	"github.com/go-uolib/client/pkg/ui"
)

const DefaultTickRate = 50 * time.Millisecond

type Client struct {
	Verbose bool
	Title   string

	// TUI
	Interactive bool
	MaxLogLines int

	Logger *log.Logger

	// collaborators; Profile may be nil when no profile is loaded
	Profile    *config.Profile
	Containers *config.ContainerTable
	Art        assets.Art
	Audio      audio.Player
	Positions  storage.PositionCache

	// client window size in pixels
	WindowWidth  int
	WindowHeight int

	// modules
	modules       []Module
	modulesByName map[string]Module

	pendingDoubleClicks []uint32
	onDoubleClick       []func(serial uint32)

	total      time.Duration
	tuiProgram *tea.Program
}

// New creates a client with built-in data tables and no profile.
// Register modules before calling Run.
func New() *Client {
	return &Client{
		Title:         "containers",
		Logger:        log.New(os.Stdout, "", log.LstdFlags),
		Containers:    config.DefaultContainerTable(),
		Art:           assets.DefaultTable(),
		Audio:         audio.Nop{},
		Positions:     storage.NewMemoryStore(),
		WindowWidth:   1024,
		WindowHeight:  768,
		modulesByName: make(map[string]Module),
	}
}

// Register adds a module to the client. Panics on duplicate name.
func (c *Client) Register(m Module) {
	if _, exists := c.modulesByName[m.Name()]; exists {
		panic("module already registered: " + m.Name())
	}
	c.modules = append(c.modules, m)
	c.modulesByName[m.Name()] = m
	m.Init(c)
}

// Module returns a registered module by name, or nil.
func (c *Client) Module(name string) Module {
	return c.modulesByName[name]
}

// Debugf logs only in verbose mode.
func (c *Client) Debugf(format string, args ...any) {
	if c.Verbose {
		c.Logger.Printf(format, args...)
	}
}

// DoubleClickDelayed queues a "use" of serial for the next tick instead of
// acting inline. Window restore relies on this.
func (c *Client) DoubleClickDelayed(serial uint32) {
	c.pendingDoubleClicks = append(c.pendingDoubleClicks, serial)
}

// OnDoubleClick registers a handler for queued double clicks.
func (c *Client) OnDoubleClick(cb func(serial uint32)) {
	c.onDoubleClick = append(c.onDoubleClick, cb)
}

// Elapsed returns the total time passed to the last Tick.
func (c *Client) Elapsed() time.Duration { return c.total }

// Tick advances one frame: queued actions first, then every module's Update.
func (c *Client) Tick(total time.Duration) {
	c.total = total

	pending := c.pendingDoubleClicks
	c.pendingDoubleClicks = nil
	for _, serial := range pending {
		for _, cb := range c.onDoubleClick {
			cb(serial)
		}
	}

	for _, m := range c.modules {
		m.Update(total)
	}
}

// Exec runs a console command line. Satisfies tui.ClientInterface.
func (c *Client) Exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	for _, m := range c.modules {
		h, ok := m.(CommandHandler)
		if !ok {
			continue
		}
		handled, err := h.HandleCommand(args)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// Render draws every renderer module. Satisfies tui.ClientInterface.
func (c *Client) Render(canvas ui.Canvas) {
	for _, m := range c.modules {
		if r, ok := m.(Renderer); ok {
			r.Render(canvas)
		}
	}
}

// Wheel forwards a wheel event to the first module that consumes it.
func (c *Client) Wheel(up bool, x, y int) {
	for _, m := range c.modules {
		if h, ok := m.(WheelHandler); ok && h.HandleWheel(up, x, y) {
			return
		}
	}
}

// Pointer tells every pointer-tracking module where the mouse is.
func (c *Client) Pointer(x, y int) {
	for _, m := range c.modules {
		if h, ok := m.(PointerHandler); ok {
			h.HandlePointer(x, y)
		}
	}
}

// GetTitle returns the window title (satisfies tui.ClientInterface).
func (c *Client) GetTitle() string { return c.Title }

// GetMaxLogLines returns the maximum log lines setting (satisfies tui.ClientInterface).
func (c *Client) GetMaxLogLines() int { return c.MaxLogLines }

// Stop ends an interactive session.
func (c *Client) Stop() {
	if c.tuiProgram != nil {
		c.tuiProgram.Quit()
	}
}

// Run drives the frame loop until ctx is done. In interactive mode the TUI
// owns the loop and the logger is redirected into it.
func (c *Client) Run(ctx context.Context, tickRate time.Duration) error {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	if c.Interactive {
		program, writer := tui.Start(c, tickRate)
		c.tuiProgram = program
		c.Logger.SetOutput(writer)
		defer func() { c.tuiProgram = nil }()

		go func() {
			<-ctx.Done()
			program.Quit()
		}()
		_, err := program.Run()
		return err
	}

	start := time.Now()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	c.Tick(0)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			c.Tick(now.Sub(start))
		}
	}
}
