package helpers

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/go-uolib/client/pkg/assets"
	"github.com/go-uolib/client/pkg/audio"
	"github.com/go-uolib/client/pkg/client"
	"github.com/go-uolib/client/pkg/client/modules/gumps"
	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/config"
	"github.com/go-uolib/client/pkg/storage"
)

// Options holds the common CLI flags for the viewer.
type Options struct {
	ProfilePath    string
	ContainersPath string
	ArtPath        string
	PositionsPath  string
	Verbose        bool
	Interactive    bool
	Sound          bool
	MaxLogLines    int
	Demo           bool
}

// RegisterFlags registers the standard flags on fs.
func RegisterFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.ProfilePath, "profile", "p", "", "profile YAML (defaults when empty)")
	fs.StringVar(&o.ContainersPath, "containers", "", "container table YAML (built-in table when empty)")
	fs.StringVar(&o.ArtPath, "art", "", "art size table YAML (built-in table when empty)")
	fs.StringVar(&o.PositionsPath, "db", "", "SQLite file for remembered window positions (memory when empty)")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&o.Sound, "sound", true, "log container sounds")
	fs.IntVar(&o.MaxLogLines, "log-lines", 200, "max lines kept in the log pane")
	fs.BoolVar(&o.Demo, "demo", true, "populate a demo world")
}

// NewClient creates a client from options with the default modules (world, gumps).
// The returned closer releases the position store.
func NewClient(o Options) (*client.Client, io.Closer, error) {
	c := client.New()
	c.Verbose = o.Verbose
	c.Interactive = o.Interactive
	c.MaxLogLines = o.MaxLogLines

	c.Profile = config.DefaultProfile()
	if o.ProfilePath != "" {
		p, err := config.LoadProfile(o.ProfilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("load profile: %w", err)
		}
		c.Profile = p
	}
	if o.ContainersPath != "" {
		t, err := config.LoadContainerTable(o.ContainersPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load containers: %w", err)
		}
		c.Containers = t
	}
	if o.ArtPath != "" {
		t, err := assets.LoadTable(o.ArtPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load art: %w", err)
		}
		c.Art = t
	}
	if o.Sound {
		c.Audio = audio.LogPlayer{Logger: c.Logger}
	}

	var closer io.Closer = nopCloser{}
	if o.PositionsPath != "" {
		db, err := storage.OpenSQLite(o.PositionsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open positions: %w", err)
		}
		c.Positions = db
		closer = db
	}

	w := world.New()
	c.Register(w)
	c.Register(gumps.New())

	if o.Demo {
		SeedDemo(w)
	}
	return c, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Serials used by the demo world.
const (
	DemoPlayer   world.Serial = 0x00000100
	DemoBackpack world.Serial = 0x40000001
	DemoBank     world.Serial = 0x40000002
	DemoPouch    world.Serial = 0x40000003
	DemoCorpse   world.Serial = 0x40000004
)

// SeedDemo fills w with a player carrying a stocked backpack and a bank box,
// plus a looted corpse on the ground.
func SeedDemo(w *world.Module) {
	p := world.NewPlayer(DemoPlayer)
	p.Screen = world.Point{X: 400, Y: 300}
	p.Equipment[world.LayerBackpack] = DemoBackpack
	p.Equipment[world.LayerBank] = DemoBank
	w.SetPlayer(p)

	w.AddItem(&world.Item{Serial: DemoBackpack, Graphic: 0x0E75, Container: DemoPlayer, ContainerGraphic: 0x003C})
	w.AddItem(&world.Item{Serial: DemoBank, Graphic: 0x0E7C, Container: DemoPlayer, ContainerGraphic: 0x004A})
	w.AddItem(&world.Item{Serial: DemoPouch, Graphic: 0x0E76, Container: DemoBackpack, ContainerGraphic: 0x003D, X: 90, Y: 70, Lootable: true})
	w.AddItem(&world.Item{Serial: DemoCorpse, Graphic: 0x2006, ContainerGraphic: gumps.CorpseGraphic, Screen: world.Point{X: 520, Y: 340}})

	loot := []struct {
		container world.Serial
		graphic   world.Graphic
		x, y      int
	}{
		{DemoBackpack, 0x0EED, 50, 80},
		{DemoBackpack, 0x0F0E, 120, 95},
		{DemoBackpack, 0x13F8, 70, 120},
		{DemoBackpack, 0x1F4C, 150, 70},
		{DemoPouch, 0x0F7A, 40, 50},
		{DemoPouch, 0x0EED, 60, 70},
		{DemoBank, 0x0EED, 80, 110},
		{DemoCorpse, 0x0EED, 60, 100},
		{DemoCorpse, 0x1F4C, 90, 130},
	}
	for _, l := range loot {
		w.AddItem(&world.Item{
			Serial:    w.NextSerial(),
			Graphic:   l.graphic,
			X:         l.x,
			Y:         l.y,
			Container: l.container,
			Lootable:  true,
		})
	}
}

// Run drives the client until ctx is done, logging errors.
func Run(ctx context.Context, c *client.Client) {
	if err := c.Run(ctx, client.DefaultTickRate); err != nil {
		c.Logger.Println(err)
	}
}
