package ui

type Positionable interface {
	Position() (x, y int)
	SetPosition(x, y int)
}

type Drawable interface {
	Draw(c Canvas, x, y int) bool
}

type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// Widget is the capability set every child of a window provides.
type Widget interface {
	Positionable
	Drawable
	Disposable
	Bounds() Rect
	Visible() bool
}

// Box carries the position, size and lifecycle flags shared by all widgets.
type Box struct {
	X, Y          int
	Width, Height int
	Hidden        bool
	disposed      bool
}

func (b *Box) Position() (int, int) { return b.X, b.Y }
func (b *Box) SetPosition(x, y int) { b.X, b.Y = x, y }
func (b *Box) Bounds() Rect         { return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height} }
func (b *Box) Visible() bool        { return !b.Hidden && !b.disposed }
func (b *Box) Dispose()             { b.disposed = true }
func (b *Box) IsDisposed() bool     { return b.disposed }

func (b *Box) SetSize(width, height int) { b.Width, b.Height = width, height }

// Picture draws a single gump graphic.
type Picture struct {
	Box
	Graphic uint16
	Hue     uint16
}

func NewPicture(x, y int, graphic uint16, hue uint16) *Picture {
	return &Picture{Box: Box{X: x, Y: y}, Graphic: graphic, Hue: hue}
}

func (p *Picture) Draw(c Canvas, x, y int) bool {
	if !p.Visible() {
		return false
	}
	c.DrawGump(p.Graphic, p.Hue, Rect{X: x, Y: y, W: p.Width, H: p.Height})
	return true
}

// HitBox is an invisible interactive area.
type HitBox struct {
	Box
}

func NewHitBox(x, y, width, height int) *HitBox {
	return &HitBox{Box: Box{X: x, Y: y, Width: width, Height: height}}
}

func (h *HitBox) Draw(Canvas, int, int) bool { return false }

// Contains reports whether the window-local point (x, y) is inside the hit box.
func (h *HitBox) Contains(x, y int) bool {
	return !h.IsDisposed() && h.Bounds().Contains(x, y)
}
