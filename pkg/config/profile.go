package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PlacementPolicy selects where a newly opened container window appears when
// OverrideContainerLocation is set.
type PlacementPolicy int

const (
	PlacementNearObject PlacementPolicy = iota
	PlacementTopRight
	PlacementLastDragged
)

func (p PlacementPolicy) String() string {
	switch p {
	case PlacementNearObject:
		return "near_object"
	case PlacementTopRight:
		return "top_right"
	case PlacementLastDragged:
		return "last_dragged"
	}
	return fmt.Sprintf("PlacementPolicy(%d)", int(p))
}

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Profile holds the per-character settings that affect container windows.
type Profile struct {
	// ContainersScale is a percentage; 100 draws containers at native size.
	ContainersScale            int  `yaml:"containers_scale"`
	ScaleItemsInsideContainers bool `yaml:"scale_items_inside_containers"`

	UseGridContainers bool `yaml:"use_grid_containers"`
	GridRows          int  `yaml:"grid_rows"`
	GridColumns       int  `yaml:"grid_columns"`

	SkipEmptyCorpse bool `yaml:"skip_empty_corpse"`

	OverrideContainerLocation         bool            `yaml:"override_container_location"`
	OverrideContainerLocationSetting  PlacementPolicy `yaml:"override_container_location_setting"`
	OverrideContainerLocationPosition Point           `yaml:"override_container_location_position"`

	GameWindowPosition Point `yaml:"game_window_position"`
	GameWindowSize     Point `yaml:"game_window_size"`
}

const (
	DefaultGridRows    = 6
	DefaultGridColumns = 10
)

func DefaultProfile() *Profile {
	return &Profile{
		ContainersScale:    100,
		GridRows:           DefaultGridRows,
		GridColumns:        DefaultGridColumns,
		GameWindowPosition: Point{X: 20, Y: 20},
		GameWindowSize:     Point{X: 800, Y: 600},
	}
}

// ContainerScale returns the scale factor applied to container windows.
// A nil profile yields 1.
func (p *Profile) ContainerScale() float64 {
	if p == nil || p.ContainersScale <= 0 {
		return 1
	}
	return float64(p.ContainersScale) / 100
}

// Grid returns the configured grid shape, falling back to the defaults.
func (p *Profile) Grid() (rows, columns int) {
	rows, columns = DefaultGridRows, DefaultGridColumns
	if p == nil {
		return
	}
	if p.GridRows > 0 {
		rows = p.GridRows
	}
	if p.GridColumns > 0 {
		columns = p.GridColumns
	}
	return
}

// LoadProfile reads and validates a YAML profile. Missing keys keep their defaults.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateProfile(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// SaveProfile writes p as YAML, creating parent directories as needed.
func SaveProfile(path string, p *Profile) error {
	if p == nil {
		return fmt.Errorf("nil profile")
	}
	raw, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
