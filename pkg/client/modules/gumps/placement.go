package gumps

import (
	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/config"
)

const (
	cascadeStart = 40
	cascadeStep  = 20

	// nearObjectOffset is the horizontal gap between an object and its window.
	nearObjectOffset = 40
)

// Cascader hands out default positions for windows that have no better place.
type Cascader interface {
	Next(width, height int) (x, y int)
}

// Cascade steps each new window diagonally from the top-left of the game
// window and wraps back when a window would no longer fit.
type Cascade struct {
	area func() (w, h int)
	x, y int
}

func NewCascade(area func() (w, h int)) *Cascade {
	return &Cascade{area: area, x: cascadeStart, y: cascadeStart}
}

func (c *Cascade) Next(width, height int) (int, int) {
	x, y := c.x, c.y
	if c.area != nil {
		w, h := c.area()
		if x+width+cascadeStep > w || y+height+cascadeStep > h {
			x, y = cascadeStart, cascadeStart
		}
	}
	c.x, c.y = x+cascadeStep, y+cascadeStep
	return x, y
}

// Placer picks the initial position of a container window from the override
// policy in the profile. It holds collaborators only.
type Placer struct {
	World World

	// Window returns the position of an open window for a container serial.
	Window func(serial world.Serial) (x, y int, ok bool)

	Cascade Cascader
}

// PlacementRequest describes the window being placed.
type PlacementRequest struct {
	Item           *world.Item
	Width, Height  int
	Profile        *config.Profile
	ViewportWidth  int
	ViewportHeight int
}

// Place returns the window's top-left corner. Without a profile or with the
// override disabled the cascade decides.
func (p *Placer) Place(req PlacementRequest) world.Point {
	prof := req.Profile
	if prof == nil || !prof.OverrideContainerLocation {
		return p.cascade(req)
	}

	var pos world.Point
	switch prof.OverrideContainerLocationSetting {
	case config.PlacementNearObject:
		pos = p.nearObject(req)
	case config.PlacementTopRight:
		pos = world.Point{X: req.ViewportWidth - req.Width, Y: 0}
	case config.PlacementLastDragged:
		c := prof.OverrideContainerLocationPosition
		pos = world.Point{X: c.X - (req.Width >> 1), Y: c.Y - (req.Height >> 1)}
	default:
		pos = p.cascade(req)
	}

	if pos.X+req.Width > req.ViewportWidth {
		pos.X -= req.Width
	}
	if pos.Y+req.Height > req.ViewportHeight {
		pos.Y -= req.Height
	}
	return pos
}

func (p *Placer) nearObject(req PlacementRequest) world.Point {
	item := req.Item
	gw := req.Profile.GameWindowPosition
	near := func(screen world.Point) world.Point {
		return world.Point{
			X: screen.X + gw.X + nearObjectOffset,
			Y: screen.Y + gw.Y - (req.Height >> 1),
		}
	}

	if player := p.World.Player(); player != nil && player.Bank() != 0 && item.Serial == player.Bank() {
		return near(player.Screen)
	}
	if item.OnGround() {
		return near(item.Screen)
	}
	if item.Container.IsMobile() {
		// pack animal, vendor, snooped player
		if mob := p.World.GetMobile(item.Container); mob != nil {
			return near(mob.Screen)
		}
		return p.cascade(req)
	}
	if p.Window != nil {
		if x, y, ok := p.Window(item.Container); ok {
			return world.Point{X: x + (req.Width >> 1), Y: y}
		}
	}
	return p.cascade(req)
}

func (p *Placer) cascade(req PlacementRequest) world.Point {
	if p.Cascade == nil {
		return world.Point{X: cascadeStart, Y: cascadeStart}
	}
	x, y := p.Cascade.Next(req.Width, req.Height)
	return world.Point{X: x, Y: y}
}
