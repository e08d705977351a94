package gumps

import (
	"time"

	"github.com/go-uolib/client/pkg/client/modules/world"
	"github.com/go-uolib/client/pkg/config"
	"github.com/go-uolib/client/pkg/ui"
)

// ContainerGump is one open container window. It mirrors the lootable
// children of its container as item widgets, or as grid slots in grid mode,
// and follows the container's add/remove notifications.
type ContainerGump struct {
	mod     *Module
	id      uint64
	serial  world.Serial
	graphic world.Graphic

	x, y          int
	width, height int
	visible       bool
	disposed      bool
	hideIfEmpty   bool

	data  config.ContainerData
	scale float64

	background   *ui.Picture
	iconizerArea *ui.HitBox
	iconized     *ui.Picture
	eye          *corpseEye
	grid         *Grid
	items        []*ItemWidget
}

func newContainerGump(m *Module, id uint64, serial world.Serial, graphic world.Graphic) *ContainerGump {
	return &ContainerGump{
		mod:     m,
		id:      id,
		serial:  serial,
		graphic: graphic,
		visible: true,
		scale:   1,
	}
}

func uiRect(r config.Rect) ui.Rect { return ui.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

// build creates the window chrome, subscribes to the container and places
// the window. It reports false when the container is gone.
func (g *ContainerGump) build() bool {
	env := &g.mod.env
	item := env.World.GetItem(g.serial)
	if item == nil || item.Destroyed {
		return false
	}

	env.World.Subscribe(g.serial, g.id, world.CollectionListener{
		OnAdded:   g.OnItemsAdded,
		OnRemoved: g.OnItemsRemoved,
	})

	prof := g.mod.profile()
	g.scale = prof.ContainerScale()
	g.data = env.Containers.Get(uint16(g.graphic))

	if !g.data.MinimizerArea.Empty() && g.data.IconizedGraphic != 0 {
		a := uiRect(g.data.MinimizerArea).Scale(g.scale)
		g.iconizerArea = ui.NewHitBox(a.X, a.Y, a.W, a.H)
		g.iconized = ui.NewPicture(0, 0, g.data.IconizedGraphic, 0)
		if w, h, ok := env.Art.GumpSize(g.data.IconizedGraphic); ok {
			g.iconized.SetSize(w, h)
		}
	}

	g.background = ui.NewPicture(0, 0, g.data.Gump, 0)
	bw, bh, _ := env.Art.GumpSize(g.data.Gump)

	if g.graphic == CorpseGraphic {
		g.applyCorpsePolicy(prof)
		g.eye = newCorpseEye(int(45*g.scale), int(30*g.scale))
		g.resizeEye()
	}

	g.width = int(float64(bw) * g.scale)
	g.height = int(float64(bh) * g.scale)
	g.background.SetSize(g.width, g.height)

	if prof != nil && prof.UseGridContainers {
		rows, columns := prof.Grid()
		b := uiRect(g.data.Bounds).Scale(g.scale)
		itemSize := (b.W - b.X - ScrollBarWidth) / rows
		g.grid = NewGrid(b.X, b.Y, b.W-b.X, b.H-b.Y, itemSize, rows, columns)
	}

	g.place(item, prof)

	if g.data.OpenSound != 0 {
		env.Audio.PlaySound(g.data.OpenSound)
	}
	return true
}

// applyCorpsePolicy hides corpses the client opened on its own when the
// profile skips empty ones. A corpse the player opened by hand is shown and
// loses its manual mark.
func (g *ContainerGump) applyCorpsePolicy(prof *config.Profile) {
	player := g.mod.env.World.Player()
	if player == nil {
		return
	}
	if _, ok := player.ManualOpenedCorpses[g.serial]; ok {
		delete(player.ManualOpenedCorpses, g.serial)
		return
	}
	if _, ok := player.AutoOpenedCorpses[g.serial]; ok && prof != nil && prof.SkipEmptyCorpse {
		g.visible = false
		g.hideIfEmpty = true
	}
}

func (g *ContainerGump) resizeEye() {
	if g.eye == nil {
		return
	}
	w, h, _ := g.mod.env.Art.GumpSize(g.eye.pic.Graphic)
	g.eye.pic.SetSize(int(float64(w)*g.scale), int(float64(h)*g.scale))
}

func (g *ContainerGump) place(item *world.Item, prof *config.Profile) {
	if other := g.mod.ContainerGump(g.serial); other != nil {
		if other != g {
			g.x, g.y = other.x, other.y
		}
		return
	}

	if player := g.mod.env.World.Player(); player != nil && item.Serial == player.Backpack() {
		if pos, ok := g.mod.cachedPosition(g.serial); ok {
			g.x, g.y = pos.X, pos.Y
			return
		}
	}

	vw, vh := g.mod.env.Viewport()
	pos := g.mod.placer.Place(PlacementRequest{
		Item:           item,
		Width:          g.width,
		Height:         g.height,
		Profile:        prof,
		ViewportWidth:  vw,
		ViewportHeight: vh,
	})
	g.x, g.y = pos.X, pos.Y
}

func (g *ContainerGump) layoutParams(prof *config.Profile) LayoutParams {
	return LayoutParams{
		Bounds:     uiRect(g.data.Bounds),
		Scale:      g.scale,
		ScaleItems: prof != nil && prof.ScaleItemsInsideContainers,
	}
}

// OnItemsAdded creates a widget for every lootable item among serials.
// Widgets already present for those serials are dropped first.
func (g *ContainerGump) OnItemsAdded(serials []world.Serial) {
	if g.disposed {
		return
	}
	g.removeItemsInside(serials)

	env := &g.mod.env
	prof := g.mod.profile()
	params := g.layoutParams(prof)

	for _, s := range serials {
		it := env.World.GetItem(s)
		if it == nil || it.Destroyed || !it.Lootable || it.Container != g.serial {
			continue
		}

		w := newItemWidget(it)
		texW, texH, hasTexture := env.Art.ArtSize(uint16(it.Graphic))
		w.SetSize(texW, texH)

		if pos := ResolveItemPosition(world.Point{X: it.X, Y: it.Y}, texW, texH, hasTexture, params); pos.X != w.X || pos.Y != w.Y {
			w.SetPosition(pos.X, pos.Y)
		}
		if params.ScaleItems {
			w.SetSize(int(float64(w.Width)*g.scale), int(float64(w.Height)*g.scale))
		}
		g.items = append(g.items, w)

		if g.grid != nil {
			if _, ok := g.grid.SetItem(it.Serial, it.Graphic); !ok {
				g.mod.debugf("gumps: grid of %#08x is full, %#08x not shown", uint32(g.serial), uint32(it.Serial))
			}
			w.Hidden = true
		}

		if g.hideIfEmpty && !g.visible {
			g.visible = true
		}
	}
}

// OnItemsRemoved destroys the widgets and grid bindings of serials.
func (g *ContainerGump) OnItemsRemoved(serials []world.Serial) {
	if g.disposed {
		return
	}
	g.removeItemsInside(serials)
}

func (g *ContainerGump) removeItemsInside(serials []world.Serial) {
	if len(serials) == 0 {
		return
	}
	set := make(map[world.Serial]struct{}, len(serials))
	for _, s := range serials {
		set[s] = struct{}{}
	}

	if g.grid != nil {
		g.grid.UnsetItems(set)
	}

	kept := g.items[:0]
	for _, w := range g.items {
		if _, ok := set[w.Serial]; ok {
			w.Dispose()
			continue
		}
		kept = append(kept, w)
	}
	clear(g.items[len(kept):])
	g.items = kept
}

// alive reports whether s is still a live child of this container.
func (g *ContainerGump) alive(s world.Serial) bool {
	it := g.mod.env.World.GetItem(s)
	return it != nil && !it.Destroyed && it.Container == g.serial
}

// Update closes the window once its container is gone and advances the
// corpse eye.
func (g *ContainerGump) Update(total time.Duration) {
	if g.disposed {
		return
	}
	item := g.mod.env.World.GetItem(g.serial)
	if item == nil || item.Destroyed {
		g.mod.debugf("gumps: container %#08x is gone, closing", uint32(g.serial))
		g.Close()
		return
	}

	if g.eye != nil && g.eye.advance(total) {
		g.resizeEye()
	}
	if g.iconized != nil {
		g.iconized.Hue = item.Hue
	}
	if g.grid != nil {
		g.grid.Update(g.alive)
	}
}

// Rebuild throws away the chrome and all widgets, builds the window again and
// re-adds the container's current children.
func (g *ContainerGump) Rebuild() {
	if g.disposed {
		return
	}
	g.disposeChrome()
	for _, w := range g.items {
		w.Dispose()
	}
	g.items = nil

	if !g.build() {
		g.Close()
		return
	}
	g.OnItemsAdded(g.mod.env.World.Children(g.serial))
}

func (g *ContainerGump) disposeChrome() {
	if g.background != nil {
		g.background.Dispose()
		g.background = nil
	}
	if g.iconizerArea != nil {
		g.iconizerArea.Dispose()
		g.iconizerArea = nil
	}
	if g.iconized != nil {
		g.iconized.Dispose()
		g.iconized = nil
	}
	if g.grid != nil {
		g.grid.Dispose()
		g.grid = nil
	}
	if g.eye != nil {
		g.eye.pic.Dispose()
		g.eye = nil
	}
}

// Close unsubscribes, remembers the backpack position and closes the
// windows of containers directly inside this one.
func (g *ContainerGump) Close() {
	if g.disposed {
		return
	}
	g.disposed = true

	env := &g.mod.env
	env.World.Unsubscribe(g.serial, g.id)

	if item := env.World.GetItem(g.serial); item != nil {
		if player := env.World.Player(); player != nil && item.Serial == player.Backpack() {
			g.mod.savePosition(g.serial, g.x, g.y)
		}

		for _, s := range env.World.Children(g.serial) {
			child := env.World.GetItem(s)
			if child == nil || child.Container != g.serial {
				continue
			}
			if w := g.mod.ContainerGump(s); w != nil {
				w.Close()
			}
		}

		if g.data.ClosedSound != 0 {
			env.Audio.PlaySound(g.data.ClosedSound)
		}
	}

	g.disposeChrome()
	for _, w := range g.items {
		w.Dispose()
	}
	g.items = nil
	g.mod.prune()
	g.mod.debugf("gumps: closed %#08x", uint32(g.serial))
}

// OnDragEnd records the window centre as the last dragged point when the
// profile places windows there.
func (g *ContainerGump) OnDragEnd() {
	prof := g.mod.profile()
	if prof == nil || !prof.OverrideContainerLocation || prof.OverrideContainerLocationSetting != config.PlacementLastDragged {
		return
	}
	prof.OverrideContainerLocationPosition = config.Point{
		X: g.x + (g.width >> 1),
		Y: g.y + (g.height >> 1),
	}
}

func (g *ContainerGump) Move(x, y int) { g.x, g.y = x, y }

func (g *ContainerGump) Draw(c ui.Canvas, x, y int) bool {
	if !g.Visible() {
		return false
	}
	if g.background != nil {
		g.background.Draw(c, x+g.background.X, y+g.background.Y)
	}
	if g.eye != nil {
		g.eye.pic.Draw(c, x+g.eye.pic.X, y+g.eye.pic.Y)
	}
	for _, w := range g.items {
		w.Draw(c, x+w.X, y+w.Y)
	}
	if g.grid != nil {
		g.grid.Draw(c, x+g.grid.X, y+g.grid.Y)
	}
	return true
}

func (g *ContainerGump) Serial() world.Serial   { return g.serial }
func (g *ContainerGump) Graphic() world.Graphic { return g.graphic }
func (g *ContainerGump) Position() (int, int)   { return g.x, g.y }
func (g *ContainerGump) Size() (int, int)       { return g.width, g.height }
func (g *ContainerGump) Visible() bool          { return g.visible && !g.disposed }
func (g *ContainerGump) IsDisposed() bool       { return g.disposed }
func (g *ContainerGump) Grid() *Grid            { return g.grid }
func (g *ContainerGump) Data() config.ContainerData {
	return g.data
}

func (g *ContainerGump) Bounds() ui.Rect {
	return ui.Rect{X: g.x, Y: g.y, W: g.width, H: g.height}
}

// IconizerArea is the hot-zone that minimizes the window, nil when the
// container has no minimized form.
func (g *ContainerGump) IconizerArea() *ui.HitBox { return g.iconizerArea }

// Iconized is the picture shown while minimized, nil when there is none.
func (g *ContainerGump) Iconized() *ui.Picture { return g.iconized }

// EyeGraphic returns the current corpse eye frame.
func (g *ContainerGump) EyeGraphic() (uint16, bool) {
	if g.eye == nil {
		return 0, false
	}
	return g.eye.pic.Graphic, true
}

// Items returns the live item widgets.
func (g *ContainerGump) Items() []*ItemWidget {
	out := make([]*ItemWidget, len(g.items))
	copy(out, g.items)
	return out
}

// Item returns the widget for serial, or nil.
func (g *ContainerGump) Item(serial world.Serial) *ItemWidget {
	for _, w := range g.items {
		if w.Serial == serial {
			return w
		}
	}
	return nil
}

// State is what gets persisted for this window.
func (g *ContainerGump) State() WindowState {
	return WindowState{Serial: uint32(g.serial), Graphic: uint16(g.graphic)}
}
