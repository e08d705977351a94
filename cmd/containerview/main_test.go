package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-uolib/client/pkg/client/modules/gumps"
	"github.com/go-uolib/client/pkg/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := layoutCmd()
	switch args[0] {
	case "validate":
		cmd = validateCmd()
	case "positions":
		cmd = positionsCmd()
	}
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args[1:])
	err := cmd.Execute()
	return out.String(), err
}

func TestLayoutCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.zst")
	states := []gumps.WindowState{{Serial: 0x40000001, Graphic: 0x3C}, {Serial: 0x40000002, Graphic: 0x3D}}
	if err := gumps.WriteLayout(path, states); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "layout", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2 window(s)") || !strings.Contains(out, "0x40000002") {
		t.Errorf("output %q", out)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(good, []byte("containers_scale: 120\nuse_grid_containers: true\n"), 0o644)
	os.WriteFile(bad, []byte("grid_rows: 0\n"), 0o644)

	if _, err := execute(t, "validate", good); err != nil {
		t.Errorf("good profile: %v", err)
	}
	out, err := execute(t, "validate", good, bad)
	if err == nil {
		t.Errorf("bad profile passed")
	}
	if !strings.Contains(out, "good.yaml: ok") {
		t.Errorf("output %q", out)
	}
}

func TestPositionsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pos.db")
	s, err := storage.OpenSQLite(db)
	if err != nil {
		t.Fatal(err)
	}
	s.SavePosition(0x40000001, 120, 80)
	s.Close()

	out, err := execute(t, "positions", "list", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0x40000001") || !strings.Contains(out, "120") {
		t.Errorf("list output %q", out)
	}

	out, err = execute(t, "positions", "clear", "--db", db)
	if err != nil || !strings.Contains(out, "Removed 1") {
		t.Errorf("clear: %q, %v", out, err)
	}
	out, _ = execute(t, "positions", "list", "--db", db)
	if !strings.Contains(out, "No positions") {
		t.Errorf("after clear %q", out)
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("open 0x40000001\n\n# comment\n  grid  \n")
	if len(got) != 2 || got[0] != "open 0x40000001" || got[1] != "grid" {
		t.Errorf("got %q", got)
	}
}
