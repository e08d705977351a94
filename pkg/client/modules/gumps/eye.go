package gumps

import (
	"time"

	"github.com/go-uolib/client/pkg/ui"
)

const (
	CorpseGraphic = 0x0009

	corpseEyeGraphic  = 0x0045
	corpseEyeInterval = 750 * time.Millisecond
)

type eyeFrame uint8

const (
	eyeFrameA eyeFrame = iota
	eyeFrameB
)

// corpseEye alternates between two frames every corpseEyeInterval.
type corpseEye struct {
	pic   *ui.Picture
	frame eyeFrame
	next  time.Duration
}

func newCorpseEye(x, y int) *corpseEye {
	return &corpseEye{pic: ui.NewPicture(x, y, corpseEyeGraphic, 0)}
}

// advance flips the frame once the switch time has passed and reports whether
// it did.
func (e *corpseEye) advance(total time.Duration) bool {
	if e.next >= total {
		return false
	}
	if e.frame == eyeFrameA {
		e.frame = eyeFrameB
	} else {
		e.frame = eyeFrameA
	}
	e.next = total + corpseEyeInterval
	e.pic.Graphic = corpseEyeGraphic + uint16(e.frame)
	return true
}
