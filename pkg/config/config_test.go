package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadProfileKeepsDefaults(t *testing.T) {
	p, err := LoadProfile(writeFile(t, "profile.yaml", "use_grid_containers: true\n"))
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if !p.UseGridContainers {
		t.Errorf("UseGridContainers = false, want true")
	}
	if p.ContainersScale != 100 {
		t.Errorf("ContainersScale = %d, want 100", p.ContainersScale)
	}
	if rows, cols := p.Grid(); rows != DefaultGridRows || cols != DefaultGridColumns {
		t.Errorf("Grid() = %d,%d, want %d,%d", rows, cols, DefaultGridRows, DefaultGridColumns)
	}
}

func TestLoadProfileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "containers_scal: 120\n"},
		{"scale too small", "containers_scale: 10\n"},
		{"bad policy", "override_container_location_setting: 7\n"},
		{"wrong type", "skip_empty_corpse: maybe\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadProfile(writeFile(t, "profile.yaml", tt.body)); err == nil {
				t.Errorf("LoadProfile(%q) succeeded, want error", tt.body)
			}
		})
	}
}

func TestEmptyProfileIsValid(t *testing.T) {
	if err := ValidateProfile(nil); err != nil {
		t.Fatalf("ValidateProfile(nil) = %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	in := DefaultProfile()
	in.ContainersScale = 150
	in.OverrideContainerLocation = true
	in.OverrideContainerLocationSetting = PlacementLastDragged
	in.OverrideContainerLocationPosition = Point{X: 300, Y: 200}

	if err := SaveProfile(path, in); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	out, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *out, *in)
	}
}

func TestNilProfileGuards(t *testing.T) {
	var p *Profile
	if s := p.ContainerScale(); s != 1 {
		t.Errorf("nil ContainerScale() = %v, want 1", s)
	}
	if rows, cols := p.Grid(); rows != DefaultGridRows || cols != DefaultGridColumns {
		t.Errorf("nil Grid() = %d,%d", rows, cols)
	}
}

func TestContainerTableFallback(t *testing.T) {
	tbl := DefaultContainerTable()
	d := tbl.Get(0x1234)
	if d.Graphic != 0x1234 {
		t.Errorf("Graphic = %#x, want 0x1234", d.Graphic)
	}
	if d.Gump != DefaultContainerGraphic {
		t.Errorf("Gump = %#x, want backpack", d.Gump)
	}
	if corpse := tbl.Get(0x0009); corpse.Bounds != (Rect{X: 20, Y: 85, W: 124, H: 196}) {
		t.Errorf("corpse bounds = %+v", corpse.Bounds)
	}
}

func TestLoadContainerTableOverrides(t *testing.T) {
	body := strings.Join([]string{
		"containers:",
		"  - graphic: 0x3c",
		"    bounds: {x: 10, y: 10, w: 100, h: 100}",
		"  - graphic: 0x777",
		"    open_sound: 0x48",
	}, "\n")
	tbl, err := LoadContainerTable(writeFile(t, "containers.yaml", body))
	if err != nil {
		t.Fatalf("LoadContainerTable: %v", err)
	}
	if got := tbl.Get(0x3c).Bounds; got != (Rect{X: 10, Y: 10, W: 100, H: 100}) {
		t.Errorf("backpack bounds = %+v", got)
	}
	if got := tbl.Get(0x777); got.Gump != 0x777 || got.OpenSound != 0x48 {
		t.Errorf("custom entry = %+v", got)
	}
}

func TestLoadContainerTableRejectsZeroGraphic(t *testing.T) {
	if _, err := LoadContainerTable(writeFile(t, "c.yaml", "containers:\n  - gump: 5\n")); err == nil {
		t.Fatal("expected error for zero graphic")
	}
}
