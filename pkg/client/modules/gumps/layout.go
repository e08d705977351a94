package gumps

import (
	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/ui"
)

// LayoutParams is the read-only input of one freeform layout pass.
type LayoutParams struct {
	// Bounds uses the container table convention: W and H are far-edge
	// coordinates, not spans.
	Bounds     ui.Rect
	Scale      float64
	ScaleItems bool
}

// ResolveItemPosition clamps an item's stored offset into a container's item
// area. The left/top edge is clamped to the scaled bound origin and the
// right/bottom edge to the scaled W/H, which are treated as far edges without
// subtracting the origin. Without a texture the item goes to the bound origin.
// The result is never negative.
func ResolveItemPosition(stored world.Point, texW, texH int, hasTexture bool, p LayoutParams) world.Point {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}

	x := int(float64(stored.X) * scale)
	y := int(float64(stored.Y) * scale)

	boundX := int(float64(p.Bounds.X) * scale)
	boundY := int(float64(p.Bounds.Y) * scale)

	if hasTexture {
		boundW := int(float64(p.Bounds.W) * scale)
		boundH := int(float64(p.Bounds.H) * scale)

		w, h := texW, texH
		if p.ScaleItems {
			w = int(float64(texW) * scale)
			h = int(float64(texH) * scale)
		}

		if x < boundX {
			x = boundX
		}
		if y < boundY {
			y = boundY
		}
		if x+w > boundW {
			x = boundW - w
		}
		if y+h > boundH {
			y = boundH - h
		}
	} else {
		x, y = boundX, boundY
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return world.Point{X: x, Y: y}
}
