package gumps

import (
	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/ui"
)

// ItemWidget shows one child item in freeform mode. Serial is a lookup key
// into the world, not an owning reference.
type ItemWidget struct {
	ui.Box
	Serial  world.Serial
	Graphic world.Graphic
	Hue     uint16
}

func newItemWidget(it *world.Item) *ItemWidget {
	return &ItemWidget{
		Box:     ui.Box{X: it.X, Y: it.Y},
		Serial:  it.Serial,
		Graphic: it.Graphic,
		Hue:     it.Hue,
	}
}

func (w *ItemWidget) Draw(c ui.Canvas, x, y int) bool {
	if !w.Visible() {
		return false
	}
	c.DrawArt(uint16(w.Graphic), w.Hue, ui.Rect{X: x, Y: y, W: w.Width, H: w.Height})
	return true
}
