package audio

import "log"

// Player plays a sound effect by id.
type Player interface {
	PlaySound(id uint16)
}

// Nop discards every sound.
type Nop struct{}

func (Nop) PlaySound(uint16) {}

// LogPlayer records sounds to a logger instead of a sound device. Used by the
// terminal viewer and headless runs.
type LogPlayer struct {
	Logger *log.Logger
}

func (p LogPlayer) PlaySound(id uint16) {
	if p.Logger != nil {
		p.Logger.Printf("audio: play sound %#04x", id)
	}
}

// Recorder keeps every played id, in order.
type Recorder struct {
	Played []uint16
}

func (r *Recorder) PlaySound(id uint16) { r.Played = append(r.Played, id) }
