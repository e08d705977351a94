package gumps

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/go-uolib/client/pkg/assets"
	"github.com/go-uolib/client/pkg/audio"
	"github.com/go-uolib/client/pkg/client"
	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/config"
	"github.com/go-uolib/client/pkg/storage"
	"github.com/go-uolib/client/pkg/ui"
)

const ModuleName = "gumps"

// ErrEntityNotFound is returned when a container serial resolves to nothing
// or to a destroyed item. Callers discard the window.
var ErrEntityNotFound = errors.New("entity not found")

// World is the game state consumed by container windows.
type World interface {
	GetItem(serial world.Serial) *world.Item
	GetMobile(serial world.Serial) *world.Mobile
	Player() *world.Player
	Children(container world.Serial) []world.Serial
	Subscribe(container world.Serial, owner uint64, l world.CollectionListener)
	Unsubscribe(container world.Serial, owner uint64)
}

// Session re-issues actions on the next tick.
type Session interface {
	DoubleClickDelayed(serial uint32)
}

// Env wires a Module to its collaborators.
type Env struct {
	World      World
	Profile    func() *config.Profile
	Containers *config.ContainerTable
	Art        assets.Art
	Audio      audio.Player
	Positions  storage.PositionCache
	Session    Session
	Logger     *log.Logger
	Verbose    bool

	// Viewport returns the client window size in pixels.
	Viewport func() (w, h int)
	Cascade  Cascader
}

// Module owns every open container window, oldest first; the last one is on top.
type Module struct {
	client *client.Client
	env    Env
	placer *Placer

	gumps  []*ContainerGump
	nextID uint64
}

func New() *Module { return &Module{} }

// NewWith builds a module outside of a client.
func NewWith(env Env) *Module {
	m := &Module{}
	m.setEnv(env)
	return m
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) {
	m.client = c
	w := world.From(c)
	if w == nil {
		panic("gumps: world module must be registered first")
	}
	m.setEnv(Env{
		World:      w,
		Profile:    func() *config.Profile { return c.Profile },
		Containers: c.Containers,
		Art:        c.Art,
		Audio:      c.Audio,
		Positions:  c.Positions,
		Session:    c,
		Logger:     c.Logger,
		Verbose:    c.Verbose,
		Viewport:   func() (int, int) { return c.WindowWidth, c.WindowHeight },
	})
	c.OnDoubleClick(m.handleDoubleClick)
}

func (m *Module) setEnv(env Env) {
	if env.Profile == nil {
		env.Profile = func() *config.Profile { return nil }
	}
	if env.Containers == nil {
		env.Containers = config.DefaultContainerTable()
	}
	if env.Art == nil {
		env.Art = assets.NewTable()
	}
	if env.Audio == nil {
		env.Audio = audio.Nop{}
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard, "", 0)
	}
	if env.Viewport == nil {
		env.Viewport = func() (int, int) { return 1024, 768 }
	}
	if env.Cascade == nil {
		profile := env.Profile
		viewport := env.Viewport
		env.Cascade = NewCascade(func() (int, int) {
			if p := profile(); p != nil && p.GameWindowSize.X > 0 && p.GameWindowSize.Y > 0 {
				return p.GameWindowSize.X, p.GameWindowSize.Y
			}
			return viewport()
		})
	}
	m.env = env
	m.placer = &Placer{
		World:   env.World,
		Window:  m.windowPosition,
		Cascade: env.Cascade,
	}
}

func (m *Module) Reset() {
	for _, g := range m.Gumps() {
		g.Close()
	}
	m.gumps = nil
}

func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

func (m *Module) logger() *log.Logger { return m.env.Logger }

func (m *Module) debugf(format string, args ...any) {
	if m.env.Verbose {
		m.env.Logger.Printf(format, args...)
	}
}

// profile returns the active profile, or nil when none is loaded.
func (m *Module) profile() *config.Profile { return m.env.Profile() }

// OpenContainer opens a window for the container serial drawn with graphic.
// An existing window for the same serial hands over its position and closes.
func (m *Module) OpenContainer(serial world.Serial, graphic world.Graphic) (*ContainerGump, error) {
	m.nextID++
	g := newContainerGump(m, m.nextID, serial, graphic)
	if !g.build() {
		g.disposed = true
		return nil, ErrEntityNotFound
	}

	if old := m.ContainerGump(serial); old != nil {
		old.Close()
	}
	m.gumps = append(m.gumps, g)
	g.OnItemsAdded(m.env.World.Children(serial))

	m.debugf("gumps: opened %#08x graphic %#04x at %d,%d", uint32(serial), uint16(graphic), g.x, g.y)
	return g, nil
}

// ContainerGump returns the open window for serial, or nil.
func (m *Module) ContainerGump(serial world.Serial) *ContainerGump {
	for _, g := range m.gumps {
		if g.serial == serial && !g.disposed {
			return g
		}
	}
	return nil
}

// Gumps returns the open windows, bottom first.
func (m *Module) Gumps() []*ContainerGump {
	out := make([]*ContainerGump, 0, len(m.gumps))
	for _, g := range m.gumps {
		if !g.disposed {
			out = append(out, g)
		}
	}
	return out
}

// Top returns the topmost open window, or nil.
func (m *Module) Top() *ContainerGump {
	for i := len(m.gumps) - 1; i >= 0; i-- {
		if !m.gumps[i].disposed {
			return m.gumps[i]
		}
	}
	return nil
}

func (m *Module) Update(total time.Duration) {
	for _, g := range m.Gumps() {
		g.Update(total)
	}
}

func (m *Module) prune() {
	live := m.gumps[:0]
	for _, g := range m.gumps {
		if !g.disposed {
			live = append(live, g)
		}
	}
	clear(m.gumps[len(live):])
	m.gumps = live
}

// Render draws every visible window in z-order.
func (m *Module) Render(c ui.Canvas) {
	for _, g := range m.Gumps() {
		g.Draw(c, g.x, g.y)
	}
}

// HandleWheel scrolls the grid of the topmost window under (x, y).
func (m *Module) HandleWheel(up bool, x, y int) bool {
	for i := len(m.gumps) - 1; i >= 0; i-- {
		g := m.gumps[i]
		if g.disposed || !g.visible || !g.Bounds().Contains(x, y) {
			continue
		}
		if g.grid == nil {
			return false
		}
		g.grid.OnMouseWheel(up)
		return true
	}
	return false
}

// HandlePointer highlights the grid cell under (x, y) in the topmost window
// there and clears the highlight everywhere else.
func (m *Module) HandlePointer(x, y int) {
	covered := false
	for i := len(m.gumps) - 1; i >= 0; i-- {
		g := m.gumps[i]
		if g.disposed {
			continue
		}
		under := !covered && g.visible && g.Bounds().Contains(x, y)
		if under {
			covered = true
		}
		if g.grid == nil {
			continue
		}
		if under {
			g.grid.Hover(x-g.x-g.grid.X, y-g.y-g.grid.Y)
		} else {
			g.grid.Hover(-1, -1)
		}
	}
}

func (m *Module) windowPosition(serial world.Serial) (int, int, bool) {
	g := m.ContainerGump(serial)
	if g == nil {
		return 0, 0, false
	}
	return g.x, g.y, true
}

func (m *Module) cachedPosition(serial world.Serial) (world.Point, bool) {
	if m.env.Positions == nil {
		return world.Point{}, false
	}
	x, y, ok, err := m.env.Positions.Position(uint32(serial))
	if err != nil {
		m.logger().Println("gumps: failed to read cached position:", err)
		return world.Point{}, false
	}
	return world.Point{X: x, Y: y}, ok
}

func (m *Module) savePosition(serial world.Serial, x, y int) {
	if m.env.Positions == nil {
		return
	}
	if err := m.env.Positions.SavePosition(uint32(serial), x, y); err != nil {
		m.logger().Println("gumps: failed to save position:", err)
	}
}

func (m *Module) handleDoubleClick(serial uint32) {
	item := m.env.World.GetItem(world.Serial(serial))
	if item == nil || item.ContainerGraphic == 0 {
		m.debugf("gumps: double click on %#08x opens nothing", serial)
		return
	}
	if _, err := m.OpenContainer(item.Serial, item.ContainerGraphic); err != nil {
		m.logger().Printf("gumps: open %#08x: %v", serial, err)
	}
}
