package ui

// Color is a packed 0xRRGGBB value.
type Color uint32

const (
	ColorBlack     Color = 0x000000
	ColorGray      Color = 0x808080
	ColorLimeGreen Color = 0x32CD32
)

// Canvas is the draw target handed to widgets. Coordinates are absolute pixels.
type Canvas interface {
	DrawGump(graphic uint16, hue uint16, r Rect)
	DrawArt(graphic uint16, hue uint16, r Rect)
	FillRect(r Rect, c Color)
	DrawRect(r Rect, c Color)

	// PushClip narrows drawing to r. It returns false when nothing would be visible,
	// in which case PopClip must not be called.
	PushClip(r Rect) bool
	PopClip()
}
