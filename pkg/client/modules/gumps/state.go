package gumps

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-uolib/client/pkg/client/modules/world"
)

var errNoSession = errors.New("gumps: no session to reopen windows")

// WindowState is the persisted form of a container window: a little-endian
// uint32 serial followed by a uint16 graphic.
type WindowState struct {
	Serial  uint32
	Graphic uint16
}

func (s WindowState) Encode(w io.Writer) error {
	var buf [6]byte
	binary.LittleEndian.PutUint32(buf[0:4], s.Serial)
	binary.LittleEndian.PutUint16(buf[4:6], s.Graphic)
	_, err := w.Write(buf[:])
	return err
}

// ReadWindowState reads one record and returns its serial. The trailing
// 16-bit field is read and ignored; the window is reopened from the world,
// which knows the container's current graphic.
func ReadWindowState(r io.Reader) (uint32, error) {
	var buf [6]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read window state: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[0:4]), nil
}

// Save writes the state of the window for serial.
func (m *Module) Save(w io.Writer, serial world.Serial) error {
	g := m.ContainerGump(serial)
	if g == nil {
		return fmt.Errorf("save %#08x: %w", uint32(serial), ErrEntityNotFound)
	}
	return g.State().Encode(w)
}

// Restore reads one window record and asks the session to double-click its
// serial on the next tick. Nothing is opened inline.
func (m *Module) Restore(r io.Reader) (world.Serial, error) {
	serial, err := ReadWindowState(r)
	if err != nil {
		return 0, err
	}
	if m.env.Session == nil {
		return 0, errNoSession
	}
	m.env.Session.DoubleClickDelayed(serial)
	return world.Serial(serial), nil
}
