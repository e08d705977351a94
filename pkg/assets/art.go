package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Art answers texture sizes for item art and gump graphics. ok is false when the
// asset does not exist.
type Art interface {
	ArtSize(graphic uint16) (w, h int, ok bool)
	GumpSize(graphic uint16) (w, h int, ok bool)
}

type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Table is an in-memory Art backed by size tables.
type Table struct {
	art   map[uint16]Size
	gumps map[uint16]Size
}

func NewTable() *Table {
	return &Table{
		art:   make(map[uint16]Size),
		gumps: make(map[uint16]Size),
	}
}

var defaultGumps = map[uint16]Size{
	0x0009: {W: 165, H: 230}, // corpse
	0x003C: {W: 230, H: 204}, // backpack
	0x003D: {W: 180, H: 160}, // leather bag
	0x003E: {W: 178, H: 178}, // wooden box
	0x003F: {W: 198, H: 180},
	0x0042: {W: 178, H: 250}, // chest
	0x0049: {W: 178, H: 250},
	0x004A: {W: 178, H: 250}, // bank box
	0x0045: {W: 14, H: 12},   // corpse eye frames
	0x0046: {W: 14, H: 12},
	0x0050: {W: 48, H: 30}, // iconized backpack
}

var defaultArt = map[uint16]Size{
	0x0E75: {W: 32, H: 36}, // backpack
	0x0E76: {W: 28, H: 26}, // bag
	0x0EED: {W: 20, H: 14}, // gold
	0x0F0E: {W: 14, H: 22}, // empty bottle
	0x0F7A: {W: 15, H: 14}, // black pearl
	0x13F8: {W: 44, H: 44}, // staff
	0x1F4C: {W: 21, H: 24}, // scroll
}

// DefaultTable returns the built-in sizes for the stock containers and a few items.
func DefaultTable() *Table {
	t := NewTable()
	for g, s := range defaultGumps {
		t.gumps[g] = s
	}
	for g, s := range defaultArt {
		t.art[g] = s
	}
	return t
}

func (t *Table) SetArt(graphic uint16, w, h int)  { t.art[graphic] = Size{W: w, H: h} }
func (t *Table) SetGump(graphic uint16, w, h int) { t.gumps[graphic] = Size{W: w, H: h} }

func (t *Table) ArtSize(graphic uint16) (int, int, bool) {
	s, ok := t.art[graphic]
	return s.W, s.H, ok
}

func (t *Table) GumpSize(graphic uint16) (int, int, bool) {
	s, ok := t.gumps[graphic]
	return s.W, s.H, ok
}

type tableFile struct {
	Art   map[uint16]Size `yaml:"art"`
	Gumps map[uint16]Size `yaml:"gumps"`
}

// LoadTable reads a YAML size table and layers it over the defaults.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("art table: %w", err)
	}
	t := DefaultTable()
	for g, s := range f.Art {
		t.art[g] = s
	}
	for g, s := range f.Gumps {
		t.gumps[g] = s
	}
	return t, nil
}
