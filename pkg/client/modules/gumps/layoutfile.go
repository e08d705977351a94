package gumps

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/go-uolib/client/pkg/client/modules/world"
)

var layoutMagic = [4]byte{'C', 'G', 'L', '1'}

// SaveLayout writes the state of every open container window, bottom first,
// as a zstd stream: magic, uint16 count, then one WindowState per window.
func (m *Module) SaveLayout(path string) (int, error) {
	states := make([]WindowState, 0, len(m.gumps))
	for _, g := range m.Gumps() {
		states = append(states, g.State())
	}
	if err := WriteLayout(path, states); err != nil {
		return 0, err
	}
	return len(states), nil
}

// RestoreLayout schedules a delayed double-click for every window in the file.
func (m *Module) RestoreLayout(path string) ([]world.Serial, error) {
	if m.env.Session == nil {
		return nil, errNoSession
	}
	serials, err := ReadLayout(path)
	if err != nil {
		return nil, err
	}
	out := make([]world.Serial, 0, len(serials))
	for _, s := range serials {
		m.env.Session.DoubleClickDelayed(s)
		out = append(out, world.Serial(s))
	}
	return out, nil
}

func WriteLayout(path string, states []WindowState) error {
	if len(states) > 0xFFFF {
		return fmt.Errorf("layout: %d windows do not fit", len(states))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	var head [6]byte
	copy(head[:4], layoutMagic[:])
	binary.LittleEndian.PutUint16(head[4:], uint16(len(states)))
	if _, err := bw.Write(head[:]); err != nil {
		enc.Close()
		return err
	}
	for _, s := range states {
		if err := s.Encode(bw); err != nil {
			enc.Close()
			return fmt.Errorf("layout: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return f.Close()
}

// ReadLayout returns the serials stored in a layout file.
func ReadLayout(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var head [6]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return nil, fmt.Errorf("layout header: %w", err)
	}
	if [4]byte(head[:4]) != layoutMagic {
		return nil, fmt.Errorf("layout: bad magic %q", head[:4])
	}
	n := int(binary.LittleEndian.Uint16(head[4:]))
	serials := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		s, err := ReadWindowState(br)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		serials = append(serials, s)
	}
	return serials, nil
}
