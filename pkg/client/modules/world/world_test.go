package world

import (
	"reflect"
	"testing"
)

type recorder struct {
	added   [][]Serial
	removed [][]Serial
}

func (r *recorder) listener() CollectionListener {
	return CollectionListener{
		OnAdded:   func(s []Serial) { r.added = append(r.added, s) },
		OnRemoved: func(s []Serial) { r.removed = append(r.removed, s) },
	}
}

func newBag(m *Module, serial Serial) *Item {
	bag := &Item{Serial: serial, Graphic: 0x0E76, ContainerGraphic: 0x003C}
	m.AddItem(bag)
	return bag
}

func TestSubscribeReplacesSameOwner(t *testing.T) {
	m := New()
	newBag(m, 0x40000001)

	var first, second recorder
	m.Subscribe(0x40000001, 7, first.listener())
	m.Subscribe(0x40000001, 7, second.listener())

	if n := m.ListenerCount(0x40000001); n != 1 {
		t.Fatalf("ListenerCount = %d, want 1", n)
	}

	m.AddItem(&Item{Serial: 0x40000002, Container: 0x40000001, Lootable: true})

	if len(first.added) != 0 {
		t.Errorf("replaced listener received %d deliveries", len(first.added))
	}
	if len(second.added) != 1 {
		t.Fatalf("active listener received %d deliveries, want 1", len(second.added))
	}
}

func TestSubscribeDistinctOwners(t *testing.T) {
	m := New()
	newBag(m, 0x40000001)

	var a, b recorder
	m.Subscribe(0x40000001, 1, a.listener())
	m.Subscribe(0x40000001, 2, b.listener())
	m.AddItem(&Item{Serial: 0x40000002, Container: 0x40000001})

	if len(a.added) != 1 || len(b.added) != 1 {
		t.Fatalf("deliveries a=%d b=%d, want 1 each", len(a.added), len(b.added))
	}

	m.Unsubscribe(0x40000001, 1)
	m.RemoveItem(0x40000002)
	if len(a.removed) != 0 {
		t.Errorf("unsubscribed listener still notified")
	}
	if len(b.removed) != 1 {
		t.Errorf("remaining listener removed deliveries = %d, want 1", len(b.removed))
	}
}

func TestListenerSlotReuse(t *testing.T) {
	tbl := newListenerTable()
	tbl.subscribe(1, 1, CollectionListener{})
	tbl.subscribe(1, 2, CollectionListener{})
	tbl.unsubscribe(1, 1)
	tbl.subscribe(2, 3, CollectionListener{})

	if len(tbl.entries) != 2 {
		t.Errorf("entries = %d, want freed slot reused", len(tbl.entries))
	}
	if tbl.count(1) != 1 || tbl.count(2) != 1 {
		t.Errorf("counts = %d/%d, want 1/1", tbl.count(1), tbl.count(2))
	}
	if tbl.unsubscribe(9, 9) {
		t.Errorf("unsubscribe of unknown key reported true")
	}
}

func TestMoveItemNotifiesBothContainers(t *testing.T) {
	m := New()
	newBag(m, 0x40000001)
	newBag(m, 0x40000002)
	m.AddItem(&Item{Serial: 0x40000010, Container: 0x40000001})

	var from, to recorder
	m.Subscribe(0x40000001, 1, from.listener())
	m.Subscribe(0x40000002, 1, to.listener())

	if err := m.MoveItem(0x40000010, 0x40000002, 5, 6); err != nil {
		t.Fatalf("MoveItem: %v", err)
	}
	if !reflect.DeepEqual(from.removed, [][]Serial{{0x40000010}}) {
		t.Errorf("from.removed = %v", from.removed)
	}
	if !reflect.DeepEqual(to.added, [][]Serial{{0x40000010}}) {
		t.Errorf("to.added = %v", to.added)
	}
	if got := m.Children(0x40000001); len(got) != 0 {
		t.Errorf("old parent children = %v", got)
	}
	if it := m.GetItem(0x40000010); it.X != 5 || it.Y != 6 {
		t.Errorf("position = %d,%d", it.X, it.Y)
	}
	if err := m.MoveItem(0x4FFFFFFF, 0x40000002, 0, 0); err == nil {
		t.Errorf("MoveItem of unknown serial succeeded")
	}
}

func TestRemoveItemDestroysSubtree(t *testing.T) {
	m := New()
	newBag(m, 0x40000001)
	inner := newBag(m, 0x40000002)
	if err := m.MoveItem(inner.Serial, 0x40000001, 0, 0); err != nil {
		t.Fatal(err)
	}
	deep := &Item{Serial: 0x40000003, Container: 0x40000002}
	m.AddItem(deep)

	m.RemoveItem(0x40000001)

	for _, s := range []Serial{0x40000001, 0x40000002, 0x40000003} {
		if m.GetItem(s) != nil {
			t.Errorf("%#x still present", s)
		}
	}
	if !deep.Destroyed || !inner.Destroyed {
		t.Errorf("destroyed flags not set")
	}
}

func TestClearContainerSingleDelivery(t *testing.T) {
	m := New()
	newBag(m, 0x40000001)
	for s := Serial(0x40000010); s < 0x40000015; s++ {
		m.AddItem(&Item{Serial: s, Container: 0x40000001})
	}
	var r recorder
	m.Subscribe(0x40000001, 1, r.listener())

	m.ClearContainer(0x40000001)

	if len(r.removed) != 1 || len(r.removed[0]) != 5 {
		t.Fatalf("removed deliveries = %v", r.removed)
	}
	if len(m.Children(0x40000001)) != 0 {
		t.Errorf("children left after clear")
	}
}

func TestSerialKinds(t *testing.T) {
	tests := []struct {
		s              Serial
		valid, mob, it bool
	}{
		{0, false, false, false},
		{1, true, true, false},
		{0x40000000, true, false, true},
		{0x7FFFFFFF, true, false, true},
		{0x80000000, false, false, false},
	}
	for _, tt := range tests {
		if tt.s.IsValid() != tt.valid || tt.s.IsMobile() != tt.mob || tt.s.IsItem() != tt.it {
			t.Errorf("%#x: valid=%v mobile=%v item=%v", uint32(tt.s), tt.s.IsValid(), tt.s.IsMobile(), tt.s.IsItem())
		}
	}
}

func TestHandleCommand(t *testing.T) {
	m := New()
	newBag(m, 0x40000001)

	if ok, err := m.HandleCommand([]string{"add", "0x40000001", "0x0EED", "50", "60"}); !ok || err != nil {
		t.Fatalf("add: ok=%v err=%v", ok, err)
	}
	children := m.Children(0x40000001)
	if len(children) != 1 {
		t.Fatalf("children = %v", children)
	}
	if it := m.GetItem(children[0]); it.Graphic != 0x0EED || it.X != 50 || !it.Lootable {
		t.Errorf("added item = %+v", it)
	}

	if ok, err := m.HandleCommand([]string{"rm", "0x12345678"}); !ok || err == nil {
		t.Errorf("rm unknown: ok=%v err=%v", ok, err)
	}
	if ok, _ := m.HandleCommand([]string{"grid"}); ok {
		t.Errorf("foreign command consumed")
	}
}
