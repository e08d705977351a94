package gumps

import (
	"testing"

	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/config"
)

type fixedCascade struct {
	x, y  int
	calls int
}

func (c *fixedCascade) Next(int, int) (int, int) {
	c.calls++
	return c.x, c.y
}

func placementWorld() *world.Module {
	w := world.New()
	p := world.NewPlayer(0x00000100)
	p.Screen = world.Point{X: 300, Y: 200}
	p.Equipment[world.LayerBank] = 0x40000050
	w.SetPlayer(p)
	w.AddMobile(&world.Mobile{Serial: 0x00000200, Screen: world.Point{X: 120, Y: 140}})
	return w
}

func overrideProfile(policy config.PlacementPolicy) *config.Profile {
	p := config.DefaultProfile()
	p.OverrideContainerLocation = true
	p.OverrideContainerLocationSetting = policy
	p.OverrideContainerLocationPosition = config.Point{X: 400, Y: 300}
	return p
}

func TestPlacerPolicies(t *testing.T) {
	w := placementWorld()
	parentWindow := func(s world.Serial) (int, int, bool) {
		if s == 0x40000060 {
			return 500, 50, true
		}
		return 0, 0, false
	}

	tests := []struct {
		name    string
		item    *world.Item
		profile *config.Profile
		want    world.Point
		cascade bool
	}{
		{
			name:    "no profile cascades",
			item:    &world.Item{Serial: 0x40000001},
			want:    world.Point{X: 11, Y: 22},
			cascade: true,
		},
		{
			name:    "override disabled cascades",
			item:    &world.Item{Serial: 0x40000001},
			profile: config.DefaultProfile(),
			want:    world.Point{X: 11, Y: 22},
			cascade: true,
		},
		{
			name:    "bank near player",
			item:    &world.Item{Serial: 0x40000050, Container: 0x00000100},
			profile: overrideProfile(config.PlacementNearObject),
			want:    world.Point{X: 300 + 20 + 40, Y: 200 + 20 - 50},
		},
		{
			name:    "ground item",
			item:    &world.Item{Serial: 0x40000001, Screen: world.Point{X: 100, Y: 100}},
			profile: overrideProfile(config.PlacementNearObject),
			want:    world.Point{X: 160, Y: 70},
		},
		{
			name:    "inside a mobile",
			item:    &world.Item{Serial: 0x40000001, Container: 0x00000200},
			profile: overrideProfile(config.PlacementNearObject),
			want:    world.Point{X: 180, Y: 110},
		},
		{
			name:    "inside a missing mobile",
			item:    &world.Item{Serial: 0x40000001, Container: 0x00000300},
			profile: overrideProfile(config.PlacementNearObject),
			want:    world.Point{X: 11, Y: 22},
			cascade: true,
		},
		{
			name:    "inside an open window",
			item:    &world.Item{Serial: 0x40000001, Container: 0x40000060},
			profile: overrideProfile(config.PlacementNearObject),
			want:    world.Point{X: 500 + 100, Y: 50},
		},
		{
			name:    "inside a closed container",
			item:    &world.Item{Serial: 0x40000001, Container: 0x40000061},
			profile: overrideProfile(config.PlacementNearObject),
			want:    world.Point{X: 11, Y: 22},
			cascade: true,
		},
		{
			name:    "top right",
			item:    &world.Item{Serial: 0x40000001},
			profile: overrideProfile(config.PlacementTopRight),
			want:    world.Point{X: 1024 - 200, Y: 0},
		},
		{
			name:    "last dragged",
			item:    &world.Item{Serial: 0x40000001},
			profile: overrideProfile(config.PlacementLastDragged),
			want:    world.Point{X: 300, Y: 250},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fixedCascade{x: 11, y: 22}
			p := &Placer{World: w, Window: parentWindow, Cascade: c}
			got := p.Place(PlacementRequest{
				Item:           tt.item,
				Width:          200,
				Height:         100,
				Profile:        tt.profile,
				ViewportWidth:  1024,
				ViewportHeight: 768,
			})
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if (c.calls > 0) != tt.cascade {
				t.Errorf("cascade calls = %d", c.calls)
			}
		})
	}
}

func TestPlacerNudgesOnScreen(t *testing.T) {
	w := placementWorld()
	prof := overrideProfile(config.PlacementLastDragged)
	prof.OverrideContainerLocationPosition = config.Point{X: 1000, Y: 740}

	p := &Placer{World: w, Cascade: &fixedCascade{}}
	got := p.Place(PlacementRequest{
		Item:           &world.Item{Serial: 0x40000001},
		Width:          200,
		Height:         100,
		Profile:        prof,
		ViewportWidth:  1024,
		ViewportHeight: 768,
	})
	// centre at 1000,740 puts the corner at 900,690; both edges overflow
	if want := (world.Point{X: 700, Y: 590}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCascadeWraps(t *testing.T) {
	c := NewCascade(func() (int, int) { return 200, 200 })

	var got []world.Point
	for i := 0; i < 5; i++ {
		x, y := c.Next(100, 100)
		got = append(got, world.Point{X: x, Y: y})
	}
	want := []world.Point{{X: 40, Y: 40}, {X: 60, Y: 60}, {X: 80, Y: 80}, {X: 40, Y: 40}, {X: 60, Y: 60}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
