package gumps

import (
	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/ui"
)

const (
	ScrollBarWidth    = 14
	DefaultScrollStep = 5

	// gridCellInset leaves room for the cell border.
	gridCellInset = 2
)

// ScrollBar keeps its value inside [MinValue, MaxValue].
type ScrollBar struct {
	ui.Box
	Value      int
	MinValue   int
	MaxValue   int
	ScrollStep int
}

func (s *ScrollBar) SetValue(v int) {
	if v > s.MaxValue {
		v = s.MaxValue
	}
	if v < s.MinValue {
		v = s.MinValue
	}
	s.Value = v
}

func (s *ScrollBar) Draw(c ui.Canvas, x, y int) bool {
	if !s.Visible() {
		return false
	}
	track := ui.Rect{X: x, Y: y, W: s.Width, H: s.Height}
	c.DrawRect(track, ui.ColorGray)

	span := s.MaxValue - s.MinValue
	if span <= 0 || s.Height <= 0 {
		return true
	}
	thumbH := max(s.Height/4, 1)
	thumbY := y + (s.Height-thumbH)*(s.Value-s.MinValue)/span
	c.FillRect(ui.Rect{X: x, Y: thumbY, W: s.Width, H: thumbH}, ui.ColorGray)
	return true
}

type gridCell struct {
	ui.Box
	graphic world.Graphic
	hovered bool
}

// Grid is the scrollable fixed-slot item view used in grid mode. rows is the
// number of cells per visual line and columns the number of lines; a line is
// itemSize pixels tall and the view scrolls vertically over the lines.
type Grid struct {
	ui.Box

	slots    *SlotMap
	cells    []gridCell
	itemSize int
	rows     int
	columns  int

	scroll          ScrollBar
	scrollbarHeight int
}

func NewGrid(x, y, width, height, itemSize, rows, columns int) *Grid {
	itemSize = max(itemSize, 1)
	g := &Grid{
		Box:             ui.Box{X: x, Y: y},
		slots:           NewSlotMap(rows, columns),
		itemSize:        itemSize,
		rows:            max(rows, 0),
		columns:         max(columns, 0),
		scrollbarHeight: -1,
	}
	g.cells = make([]gridCell, g.slots.Cap())

	// truncate to whole cells; the scrollbar takes the rest of the width
	visibleW := (width / itemSize) * itemSize
	visibleH := (height / itemSize) * itemSize
	g.Width, g.Height = visibleW, visibleH

	for i := range g.cells {
		row, col := g.slots.Cell(i)
		g.cells[i].Box = ui.Box{
			X:      row * itemSize,
			Y:      col * itemSize,
			Width:  itemSize - gridCellInset,
			Height: itemSize - gridCellInset,
		}
	}

	g.scroll = ScrollBar{
		Box:        ui.Box{X: visibleW, Y: 0, Width: ScrollBarWidth, Height: height},
		MinValue:   0,
		MaxValue:   height,
		ScrollStep: DefaultScrollStep,
	}
	g.Width += ScrollBarWidth
	g.RecomputeScrollRange()
	return g
}

func (g *Grid) Slots() *SlotMap { return g.slots }
func (g *Grid) ItemSize() int   { return g.itemSize }

// ViewportWidth is the width of the cell area, excluding the scrollbar.
func (g *Grid) ViewportWidth() int  { return g.Width - ScrollBarWidth }
func (g *Grid) ViewportHeight() int { return g.Height }

func (g *Grid) ScrollOffset() int      { return g.scroll.Value }
func (g *Grid) MaxScrollOffset() int   { return g.scroll.MaxValue }
func (g *Grid) ScrollBarVisible() bool { return g.scroll.MaxValue > g.scroll.MinValue }

// SetScrollOffset moves the view, clamped to the current range.
func (g *Grid) SetScrollOffset(v int) { g.scroll.SetValue(v) }

// SetItem binds serial to the first free slot. ok is false when the grid is
// full; the item simply is not shown.
func (g *Grid) SetItem(serial world.Serial, graphic world.Graphic) (int, bool) {
	pos, ok := g.slots.Bind(serial)
	if ok {
		g.cells[pos].graphic = graphic
	}
	return pos, ok
}

// SetItemAt binds serial to pos. An invalid serial clears the slot.
func (g *Grid) SetItemAt(pos int, serial world.Serial, graphic world.Graphic) bool {
	if pos < 0 || pos >= len(g.cells) {
		return false
	}
	if !serial.IsValid() {
		if _, ok := g.slots.UnbindAt(pos); ok {
			g.cells[pos].graphic = 0
		}
		return true
	}
	if prev, ok := g.slots.IndexOf(serial); ok {
		g.cells[prev].graphic = 0
	}
	g.slots.BindAt(pos, serial)
	g.cells[pos].graphic = graphic
	return true
}

func (g *Grid) UnsetItem(serial world.Serial) bool {
	pos, ok := g.slots.IndexOf(serial)
	if !ok {
		return false
	}
	g.slots.Unbind(serial)
	g.cells[pos].graphic = 0
	return true
}

// UnsetItems unbinds every serial in set.
func (g *Grid) UnsetItems(set map[world.Serial]struct{}) {
	for s := range set {
		g.UnsetItem(s)
	}
}

// Update prunes slots whose items are gone and refreshes the scroll range.
func (g *Grid) Update(alive func(world.Serial) bool) {
	if alive != nil && len(g.slots.Prune(alive)) > 0 {
		for i := range g.cells {
			if g.slots.At(i) == 0 {
				g.cells[i].graphic = 0
			}
		}
	}
	g.RecomputeScrollRange()
	g.scroll.Hidden = !g.ScrollBarVisible()
}

// RecomputeScrollRange sets the maximum offset to columns*itemSize minus the
// viewport height. A view pinned to the bottom stays pinned.
func (g *Grid) RecomputeScrollRange() {
	if g.scrollbarHeight >= 0 {
		g.scroll.Height = g.scrollbarHeight
	} else {
		g.scroll.Height = g.Height
	}
	pinned := g.scroll.Value == g.scroll.MaxValue && g.scroll.MaxValue != 0

	h := g.columns*g.itemSize - g.scroll.Height
	if h > 0 {
		g.scroll.MaxValue = h
		if pinned {
			g.scroll.Value = h
		}
	} else {
		g.scroll.MaxValue = 0
		g.scroll.Value = 0
	}
	g.scroll.SetValue(g.scroll.Value)
}

// OnMouseWheel scrolls one step up or down.
func (g *Grid) OnMouseWheel(up bool) {
	if up {
		g.scroll.SetValue(g.scroll.Value - g.scroll.ScrollStep)
	} else {
		g.scroll.SetValue(g.scroll.Value + g.scroll.ScrollStep)
	}
}

// skipped reports whether slot pos lies fully above the viewport.
func (g *Grid) skipped(pos int) bool {
	_, col := g.slots.Cell(pos)
	return col*g.itemSize+g.cells[pos].Height <= g.scroll.Value
}

// VisibleSlots lists the slots that intersect the viewport.
func (g *Grid) VisibleSlots() []int {
	var out []int
	for col := 0; col < g.columns; col++ {
		for row := 0; row < g.rows; row++ {
			pos := col*g.rows + row
			if !g.skipped(pos) && col*g.itemSize-g.scroll.Value < g.Height {
				out = append(out, pos)
			}
		}
	}
	return out
}

// SlotAt returns the slot under the grid-local point, or -1.
func (g *Grid) SlotAt(x, y int) int {
	if x < 0 || y < 0 || x >= g.ViewportWidth() || y >= g.Height {
		return -1
	}
	row := x / g.itemSize
	col := (y + g.scroll.Value) / g.itemSize
	if row >= g.rows || col >= g.columns {
		return -1
	}
	return col*g.rows + row
}

// Hover marks the slot under the grid-local point.
func (g *Grid) Hover(x, y int) {
	pos := g.SlotAt(x, y)
	for i := range g.cells {
		g.cells[i].hovered = i == pos
	}
}

func (g *Grid) Draw(c ui.Canvas, x, y int) bool {
	if !g.Visible() {
		return false
	}
	c.FillRect(ui.Rect{X: x, Y: y, W: g.Width, H: g.Height}, ui.ColorBlack)
	g.scroll.Draw(c, x+g.scroll.X, y+g.scroll.Y)

	if !c.PushClip(ui.Rect{X: x, Y: y, W: g.ViewportWidth(), H: g.Height}) {
		return true
	}
	height := 0
	for col := 0; col < g.columns; col++ {
		for row := 0; row < g.rows; row++ {
			pos := col*g.rows + row
			cell := &g.cells[pos]
			cell.Y = height - g.scroll.Value
			if height+cell.Height <= g.scroll.Value {
				continue
			}
			g.drawCell(c, pos, x+cell.X, y+cell.Y)
		}
		height += g.itemSize
	}
	c.PopClip()
	return true
}

func (g *Grid) drawCell(c ui.Canvas, pos, x, y int) {
	cell := &g.cells[pos]
	r := ui.Rect{X: x, Y: y, W: cell.Width, H: cell.Height}
	if g.slots.At(pos) != 0 {
		c.DrawArt(uint16(cell.graphic), 0, r)
	}
	border := ui.ColorGray
	if cell.hovered {
		border = ui.ColorLimeGreen
	}
	c.DrawRect(r, border)
}
