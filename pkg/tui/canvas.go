package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-uolib/client/pkg/ui"
)

// One terminal cell covers CellWidth x CellHeight pixels.
const (
	CellWidth  = 6
	CellHeight = 12
)

var (
	gumpColor = ui.Color(0x8B6B3D)
	artColor  = ui.Color(0xE0C060)
)

type cell struct {
	ch rune
	fg ui.Color
	bg ui.Color
	// set marks cells that were drawn this frame
	set bool
}

// Canvas rasterises widget draw calls into terminal cells.
type Canvas struct {
	cols, rows int
	cells      []cell
	clips      []ui.Rect
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
	c.clips = c.clips[:0]
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) Clear() {
	clear(c.cells)
	c.clips = c.clips[:0]
}

// bounds is the current clip in pixels.
func (c *Canvas) bounds() ui.Rect {
	r := ui.Rect{W: c.cols * CellWidth, H: c.rows * CellHeight}
	if n := len(c.clips); n > 0 {
		r = r.Intersect(c.clips[n-1])
	}
	return r
}

// cellsOf converts a pixel rectangle to the inclusive cell range it touches,
// restricted to the clip. ok is false when nothing is left.
func (c *Canvas) cellsOf(r ui.Rect) (x0, y0, x1, y1 int, ok bool) {
	r = r.Intersect(c.bounds())
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	return r.X / CellWidth, r.Y / CellHeight, (r.Right() - 1) / CellWidth, (r.Bottom() - 1) / CellHeight, true
}

func (c *Canvas) put(x, y int, ch rune, fg, bg ui.Color, keepBg bool) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	p := &c.cells[y*c.cols+x]
	if keepBg && p.set {
		bg = p.bg
	}
	*p = cell{ch: ch, fg: fg, bg: bg, set: true}
}

func (c *Canvas) FillRect(r ui.Rect, col ui.Color) {
	x0, y0, x1, y1, ok := c.cellsOf(r)
	if !ok {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.put(x, y, ' ', col, col, false)
		}
	}
}

func (c *Canvas) DrawRect(r ui.Rect, col ui.Color) {
	x0, y0, x1, y1, ok := c.cellsOf(r)
	if !ok {
		return
	}
	// edges come from the unclipped rect so a clipped border stays open
	left, top := r.X/CellWidth, r.Y/CellHeight
	right, bottom := (r.Right()-1)/CellWidth, (r.Bottom()-1)/CellHeight
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var ch rune
			switch {
			case (x == left || x == right) && (y == top || y == bottom):
				ch = corner(x == left, y == top)
			case y == top || y == bottom:
				ch = '─'
			case x == left || x == right:
				ch = '│'
			default:
				continue
			}
			c.put(x, y, ch, col, 0, true)
		}
	}
}

func corner(left, top bool) rune {
	switch {
	case left && top:
		return '┌'
	case top:
		return '┐'
	case left:
		return '└'
	}
	return '┘'
}

// DrawGump shades the area and prints the graphic id in its top-left cell.
func (c *Canvas) DrawGump(graphic, _ uint16, r ui.Rect) {
	x0, y0, x1, y1, ok := c.cellsOf(r)
	if !ok {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.put(x, y, '░', gumpColor, 0, false)
		}
	}
	c.label(x0, y0, x1, fmt.Sprintf("%04X", graphic), gumpColor)
}

// DrawArt marks an item with a diamond, or its id when there is room.
func (c *Canvas) DrawArt(graphic, _ uint16, r ui.Rect) {
	x0, y0, x1, _, ok := c.cellsOf(r)
	if !ok {
		return
	}
	if x1-x0+1 >= 4 {
		c.label(x0, y0, x1, fmt.Sprintf("%04X", graphic), artColor)
		return
	}
	c.put(x0, y0, '◆', artColor, 0, true)
}

func (c *Canvas) label(x0, y, x1 int, s string, col ui.Color) {
	for i, ch := range []rune(s) {
		if x0+i > x1 {
			return
		}
		c.put(x0+i, y, ch, col, 0, true)
	}
}

func (c *Canvas) PushClip(r ui.Rect) bool {
	clip := r.Intersect(c.bounds())
	if clip.Empty() {
		return false
	}
	c.clips = append(c.clips, clip)
	return true
}

func (c *Canvas) PopClip() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
	}
}

// Rune returns the character at a cell, or a space.
func (c *Canvas) Rune(x, y int) rune {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return ' '
	}
	if p := c.cells[y*c.cols+x]; p.set {
		return p.ch
	}
	return ' '
}

// Plain returns the canvas without colours.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.cols; x++ {
			b.WriteRune(c.Rune(x, y))
		}
	}
	return b.String()
}

func hex(col ui.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06X", uint32(col)))
}

// View renders the canvas with lipgloss styles, one style run per colour change.
func (c *Canvas) View() string {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if !cur.set {
				b.WriteString(run.String())
			} else {
				st := lipgloss.NewStyle().Foreground(hex(cur.fg))
				if cur.bg != 0 {
					st = st.Background(hex(cur.bg))
				}
				b.WriteString(st.Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.cols; x++ {
			p := c.cells[y*c.cols+x]
			if p.set != cur.set || p.fg != cur.fg || p.bg != cur.bg {
				flush()
				cur = p
			}
			if p.set {
				run.WriteRune(p.ch)
			} else {
				run.WriteByte(' ')
			}
		}
		flush()
	}
	return b.String()
}
