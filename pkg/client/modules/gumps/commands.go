package gumps

import (
	"fmt"
	"strconv"

	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/config"
)

// HandleCommand implements client.CommandHandler for the debug console.
// Commands without a serial act on the topmost window.
//
//	open <serial>
//	close [serial]
//	rebuild [serial]
//	move <x> <y>      then drag-end
//	grid              toggle grid mode
//	scale <percent>
//	place <0|1|2|off> placement override
//	save <path>       layout file
//	restore <path>
//	list
func (m *Module) HandleCommand(args []string) (bool, error) {
	switch args[0] {
	case "open":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: open <serial>")
		}
		serial, err := world.ParseSerial(args[1])
		if err != nil {
			return true, err
		}
		item := m.env.World.GetItem(serial)
		if item == nil {
			return true, fmt.Errorf("open %#08x: %w", uint32(serial), ErrEntityNotFound)
		}
		graphic := item.ContainerGraphic
		if graphic == 0 {
			graphic = config.DefaultContainerGraphic
		}
		_, err = m.OpenContainer(serial, graphic)
		return true, err

	case "close":
		g, err := m.target(args[1:])
		if err != nil {
			return true, err
		}
		g.Close()
		return true, nil

	case "rebuild":
		g, err := m.target(args[1:])
		if err != nil {
			return true, err
		}
		g.Rebuild()
		return true, nil

	case "move":
		if len(args) < 3 {
			return true, fmt.Errorf("usage: move <x> <y>")
		}
		x, err := strconv.Atoi(args[1])
		if err != nil {
			return true, err
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return true, err
		}
		g, err := m.target(nil)
		if err != nil {
			return true, err
		}
		g.Move(x, y)
		g.OnDragEnd()
		return true, nil

	case "grid":
		prof, err := m.editableProfile()
		if err != nil {
			return true, err
		}
		prof.UseGridContainers = !prof.UseGridContainers
		m.rebuildAll()
		m.logger().Printf("gumps: grid mode %v", prof.UseGridContainers)
		return true, nil

	case "scale":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: scale <percent>")
		}
		pct, err := strconv.Atoi(args[1])
		if err != nil {
			return true, err
		}
		if pct < 50 || pct > 200 {
			return true, fmt.Errorf("scale %d out of range 50-200", pct)
		}
		prof, err := m.editableProfile()
		if err != nil {
			return true, err
		}
		prof.ContainersScale = pct
		m.rebuildAll()
		return true, nil

	case "place":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: place <0|1|2|off>")
		}
		prof, err := m.editableProfile()
		if err != nil {
			return true, err
		}
		if args[1] == "off" {
			prof.OverrideContainerLocation = false
			return true, nil
		}
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 || v > 2 {
			return true, fmt.Errorf("placement %q: want 0, 1, 2 or off", args[1])
		}
		prof.OverrideContainerLocation = true
		prof.OverrideContainerLocationSetting = config.PlacementPolicy(v)
		m.logger().Printf("gumps: placement %s", prof.OverrideContainerLocationSetting)
		return true, nil

	case "save":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: save <path>")
		}
		n, err := m.SaveLayout(args[1])
		if err != nil {
			return true, err
		}
		m.logger().Printf("gumps: saved %d windows to %s", n, args[1])
		return true, nil

	case "restore":
		if len(args) < 2 {
			return true, fmt.Errorf("usage: restore <path>")
		}
		serials, err := m.RestoreLayout(args[1])
		if err != nil {
			return true, err
		}
		m.logger().Printf("gumps: reopening %d windows", len(serials))
		return true, nil

	case "list":
		for _, g := range m.Gumps() {
			w, h := g.Size()
			m.logger().Printf("gumps: %#08x graphic %#04x at %d,%d size %dx%d items %d visible %v",
				uint32(g.serial), uint16(g.graphic), g.x, g.y, w, h, len(g.items), g.Visible())
		}
		return true, nil
	}
	return false, nil
}

func (m *Module) target(args []string) (*ContainerGump, error) {
	if len(args) == 0 {
		if g := m.Top(); g != nil {
			return g, nil
		}
		return nil, fmt.Errorf("no open container")
	}
	serial, err := world.ParseSerial(args[0])
	if err != nil {
		return nil, err
	}
	if g := m.ContainerGump(serial); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("no window for %#08x", uint32(serial))
}

func (m *Module) editableProfile() (*config.Profile, error) {
	prof := m.profile()
	if prof == nil {
		return nil, fmt.Errorf("no profile loaded")
	}
	return prof, nil
}

func (m *Module) rebuildAll() {
	for _, g := range m.Gumps() {
		g.Rebuild()
	}
}
