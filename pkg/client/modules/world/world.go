package world

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-uolib/client/pkg/client"
)

const ModuleName = "world"

// Module is the client-side game state: items, mobiles, the player and the
// child collections of every container.
type Module struct {
	client *client.Client

	mu      sync.RWMutex
	items   map[Serial]*Item
	mobiles map[Serial]*Mobile
	player  *Player

	listeners *listenerTable
	nextItem  Serial
}

func New() *Module {
	return &Module{
		items:     make(map[Serial]*Item),
		mobiles:   make(map[Serial]*Mobile),
		listeners: newListenerTable(),
		nextItem:  0x40000000,
	}
}

func (m *Module) Name() string          { return ModuleName }
func (m *Module) Init(c *client.Client) { m.client = c }
func (m *Module) Update(time.Duration)  {}

func (m *Module) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[Serial]*Item)
	m.mobiles = make(map[Serial]*Mobile)
	m.player = nil
	m.listeners.reset()
}

func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

// GetItem returns the item with the given serial, or nil.
func (m *Module) GetItem(serial Serial) *Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[serial]
}

// GetMobile returns the mobile with the given serial, or nil.
func (m *Module) GetMobile(serial Serial) *Mobile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mobiles[serial]
}

func (m *Module) Player() *Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.player
}

func (m *Module) SetPlayer(p *Player) {
	m.mu.Lock()
	m.player = p
	m.mu.Unlock()
}

func (m *Module) AddMobile(mob *Mobile) {
	m.mu.Lock()
	m.mobiles[mob.Serial] = mob
	m.mu.Unlock()
}

// Children returns a copy of the serials directly inside container.
func (m *Module) Children(container Serial) []Serial {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it := m.items[container]
	if it == nil {
		return nil
	}
	out := make([]Serial, len(it.children))
	copy(out, it.children)
	return out
}

// NextSerial allocates an unused item serial.
func (m *Module) NextSerial() Serial {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		m.nextItem++
		if _, used := m.items[m.nextItem]; !used {
			return m.nextItem
		}
	}
}

// Subscribe registers l for child changes of container on behalf of owner.
// A second call with the same (container, owner) replaces the first.
func (m *Module) Subscribe(container Serial, owner uint64, l CollectionListener) {
	m.mu.Lock()
	m.listeners.subscribe(container, owner, l)
	m.mu.Unlock()
}

func (m *Module) Unsubscribe(container Serial, owner uint64) {
	m.mu.Lock()
	m.listeners.unsubscribe(container, owner)
	m.mu.Unlock()
}

// ListenerCount returns how many registrations container currently has.
func (m *Module) ListenerCount(container Serial) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listeners.count(container)
}

// AddItem inserts or replaces an item. When it lands inside a container the
// container's listeners receive an added delivery.
func (m *Module) AddItem(it *Item) {
	m.mu.Lock()
	var removedFrom Serial
	if old := m.items[it.Serial]; old != nil {
		it.children = old.children
		if old.Container != 0 && old.Container != it.Container {
			m.detachLocked(old)
			removedFrom = old.Container
		}
	}
	m.items[it.Serial] = it
	attached := m.attachLocked(it)
	m.mu.Unlock()

	if removedFrom != 0 {
		m.notifyRemoved(removedFrom, []Serial{it.Serial})
	}
	if attached {
		m.notifyAdded(it.Container, []Serial{it.Serial})
	}
}

// MoveItem relocates an item into container at (x, y). A zero container puts
// the item on the ground.
func (m *Module) MoveItem(serial, container Serial, x, y int) error {
	m.mu.Lock()
	it := m.items[serial]
	if it == nil {
		m.mu.Unlock()
		return fmt.Errorf("move %#08x: item not found", uint32(serial))
	}
	from := it.Container
	if from != 0 {
		m.detachLocked(it)
	}
	it.Container = container
	it.X, it.Y = x, y
	attached := m.attachLocked(it)
	m.mu.Unlock()

	if from != 0 {
		m.notifyRemoved(from, []Serial{serial})
	}
	if attached {
		m.notifyAdded(container, []Serial{serial})
	}
	return nil
}

// RemoveItem destroys an item and everything inside it.
func (m *Module) RemoveItem(serial Serial) {
	m.mu.Lock()
	it := m.items[serial]
	if it == nil {
		m.mu.Unlock()
		return
	}
	parent := it.Container
	if parent != 0 {
		m.detachLocked(it)
	}
	m.destroyLocked(it)
	m.mu.Unlock()

	if parent != 0 {
		m.notifyRemoved(parent, []Serial{serial})
	}
}

// ClearContainer destroys every child of container in one delivery.
func (m *Module) ClearContainer(container Serial) {
	m.mu.Lock()
	it := m.items[container]
	if it == nil || len(it.children) == 0 {
		m.mu.Unlock()
		return
	}
	removed := it.children
	it.children = nil
	for _, s := range removed {
		if child := m.items[s]; child != nil {
			m.destroyLocked(child)
		}
	}
	m.mu.Unlock()

	m.notifyRemoved(container, removed)
}

func (m *Module) attachLocked(it *Item) bool {
	if it.Container == 0 {
		return false
	}
	parent := m.items[it.Container]
	if parent == nil {
		return false
	}
	for _, s := range parent.children {
		if s == it.Serial {
			return true
		}
	}
	parent.children = append(parent.children, it.Serial)
	return true
}

func (m *Module) detachLocked(it *Item) {
	parent := m.items[it.Container]
	if parent == nil {
		return
	}
	for i, s := range parent.children {
		if s == it.Serial {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

func (m *Module) destroyLocked(it *Item) {
	it.Destroyed = true
	delete(m.items, it.Serial)
	for _, s := range it.children {
		if child := m.items[s]; child != nil {
			m.destroyLocked(child)
		}
	}
	it.children = nil
}

func (m *Module) notifyAdded(container Serial, serials []Serial) {
	m.mu.RLock()
	ls := m.listeners.snapshot(container)
	m.mu.RUnlock()
	for _, l := range ls {
		if l.OnAdded != nil {
			l.OnAdded(serials)
		}
	}
}

func (m *Module) notifyRemoved(container Serial, serials []Serial) {
	m.mu.RLock()
	ls := m.listeners.snapshot(container)
	m.mu.RUnlock()
	for _, l := range ls {
		if l.OnRemoved != nil {
			l.OnRemoved(serials)
		}
	}
}

// HandleCommand implements client.CommandHandler for the debug console:
//
//	add <container> <graphic> [x y]
//	rm <serial>
//	clear <container>
func (m *Module) HandleCommand(args []string) (bool, error) {
	switch args[0] {
	case "add":
		if len(args) < 3 {
			return true, fmt.Errorf("usage: add <container> <graphic> [x y]")
		}
		container, err := parseSerial(args[1])
		if err != nil {
			return true, err
		}
		g, err := strconv.ParseUint(args[2], 0, 16)
		if err != nil {
			return true, fmt.Errorf("graphic %q: %w", args[2], err)
		}
		var x, y int
		if len(args) >= 5 {
			if x, err = strconv.Atoi(args[3]); err != nil {
				return true, err
			}
			if y, err = strconv.Atoi(args[4]); err != nil {
				return true, err
			}
		}
		if m.GetItem(container) == nil {
			return true, fmt.Errorf("container %#08x not found", uint32(container))
		}
		serial := m.NextSerial()
		m.AddItem(&Item{Serial: serial, Graphic: Graphic(g), X: x, Y: y, Container: container, Lootable: true})
		if m.client != nil {
			m.client.Logger.Printf("world: added %#08x (graphic %#04x) to %#08x", uint32(serial), g, uint32(container))
		}
		return true, nil

	case "rm":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: rm <serial>")
		}
		serial, err := parseSerial(args[1])
		if err != nil {
			return true, err
		}
		if m.GetItem(serial) == nil {
			return true, fmt.Errorf("item %#08x not found", uint32(serial))
		}
		m.RemoveItem(serial)
		return true, nil

	case "clear":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: clear <container>")
		}
		serial, err := parseSerial(args[1])
		if err != nil {
			return true, err
		}
		m.ClearContainer(serial)
		return true, nil
	}
	return false, nil
}

func parseSerial(s string) (Serial, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("serial %q: %w", s, err)
	}
	return Serial(v), nil
}

// ParseSerial parses a decimal or 0x-prefixed serial.
func ParseSerial(s string) (Serial, error) { return parseSerial(s) }
