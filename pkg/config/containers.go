package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rect mirrors ui.Rect for YAML tables; W and H of container bounds are far-edge
// coordinates in the original data, not spans.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rect) Empty() bool { return r.W == 0 && r.H == 0 }

// ContainerData describes how a container gump graphic is laid out.
type ContainerData struct {
	Graphic         uint16 `yaml:"graphic"`
	Gump            uint16 `yaml:"gump"`
	OpenSound       uint16 `yaml:"open_sound"`
	ClosedSound     uint16 `yaml:"closed_sound"`
	Bounds          Rect   `yaml:"bounds"`
	IconizedGraphic uint16 `yaml:"iconized_graphic"`
	MinimizerArea   Rect   `yaml:"minimizer_area"`
}

// DefaultContainerGraphic is the backpack, used for unknown graphics.
const DefaultContainerGraphic = 0x003C

var defaultContainers = []ContainerData{
	{Graphic: 0x0009, Gump: 0x0009, Bounds: Rect{X: 20, Y: 85, W: 124, H: 196}},
	{Graphic: 0x003C, Gump: 0x003C, OpenSound: 0x0048, ClosedSound: 0x0058, Bounds: Rect{X: 44, Y: 65, W: 186, H: 159}, IconizedGraphic: 0x0050, MinimizerArea: Rect{X: 105, Y: 162, W: 44, H: 29}},
	{Graphic: 0x003D, Gump: 0x003D, OpenSound: 0x0048, ClosedSound: 0x0058, Bounds: Rect{X: 29, Y: 34, W: 137, H: 128}},
	{Graphic: 0x003E, Gump: 0x003E, OpenSound: 0x002F, ClosedSound: 0x002E, Bounds: Rect{X: 33, Y: 36, W: 142, H: 148}},
	{Graphic: 0x003F, Gump: 0x003F, OpenSound: 0x004F, ClosedSound: 0x0058, Bounds: Rect{X: 19, Y: 47, W: 182, H: 123}},
	{Graphic: 0x0042, Gump: 0x0042, OpenSound: 0x002D, ClosedSound: 0x002C, Bounds: Rect{X: 18, Y: 105, W: 162, H: 178}},
	{Graphic: 0x0049, Gump: 0x0049, OpenSound: 0x002D, ClosedSound: 0x002C, Bounds: Rect{X: 18, Y: 105, W: 162, H: 178}},
	{Graphic: 0x004A, Gump: 0x004A, OpenSound: 0x002D, ClosedSound: 0x002C, Bounds: Rect{X: 18, Y: 105, W: 162, H: 178}},
}

// ContainerTable maps container gump graphics to their layout data.
type ContainerTable struct {
	entries map[uint16]ContainerData
}

func DefaultContainerTable() *ContainerTable {
	t := &ContainerTable{entries: make(map[uint16]ContainerData, len(defaultContainers))}
	for _, d := range defaultContainers {
		t.entries[d.Graphic] = d
	}
	return t
}

// Get returns the data for graphic, falling back to the backpack entry.
func (t *ContainerTable) Get(graphic uint16) ContainerData {
	if t != nil {
		if d, ok := t.entries[graphic]; ok {
			return d
		}
		if d, ok := t.entries[DefaultContainerGraphic]; ok {
			d.Graphic = graphic
			return d
		}
	}
	return ContainerData{Graphic: graphic, Gump: DefaultContainerGraphic, Bounds: Rect{X: 44, Y: 65, W: 186, H: 159}}
}

func (t *ContainerTable) Set(d ContainerData) {
	t.entries[d.Graphic] = d
}

func (t *ContainerTable) Len() int { return len(t.entries) }

type containerFile struct {
	Containers []ContainerData `yaml:"containers"`
}

// LoadContainerTable reads a YAML table and layers it over the built-in entries.
func LoadContainerTable(path string) (*ContainerTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f containerFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("containers: %w", err)
	}
	t := DefaultContainerTable()
	for _, d := range f.Containers {
		if d.Graphic == 0 {
			return nil, fmt.Errorf("containers: entry with zero graphic")
		}
		if d.Gump == 0 {
			d.Gump = d.Graphic
		}
		t.Set(d)
	}
	return t, nil
}
