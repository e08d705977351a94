package world

// CollectionListener receives add/remove deliveries for one container's children.
type CollectionListener struct {
	OnAdded   func(serials []Serial)
	OnRemoved func(serials []Serial)
}

type listenerKey struct {
	container Serial
	owner     uint64
}

type listenerEntry struct {
	key      listenerKey
	listener CollectionListener
	live     bool
}

// listenerTable is an arena of registrations indexed by container serial.
// A (container, owner) pair holds at most one registration; subscribing again
// replaces it in place so a window never receives the same event twice.
type listenerTable struct {
	entries     []listenerEntry
	free        []int
	byKey       map[listenerKey]int
	byContainer map[Serial][]int
}

func newListenerTable() *listenerTable {
	return &listenerTable{
		byKey:       make(map[listenerKey]int),
		byContainer: make(map[Serial][]int),
	}
}

func (t *listenerTable) subscribe(container Serial, owner uint64, l CollectionListener) {
	key := listenerKey{container, owner}
	if idx, ok := t.byKey[key]; ok {
		t.entries[idx].listener = l
		return
	}

	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[idx] = listenerEntry{key: key, listener: l, live: true}
	} else {
		idx = len(t.entries)
		t.entries = append(t.entries, listenerEntry{key: key, listener: l, live: true})
	}
	t.byKey[key] = idx
	t.byContainer[container] = append(t.byContainer[container], idx)
}

func (t *listenerTable) unsubscribe(container Serial, owner uint64) bool {
	key := listenerKey{container, owner}
	idx, ok := t.byKey[key]
	if !ok {
		return false
	}
	delete(t.byKey, key)
	t.entries[idx] = listenerEntry{}
	t.free = append(t.free, idx)

	list := t.byContainer[container]
	for i, v := range list {
		if v == idx {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(t.byContainer, container)
	} else {
		t.byContainer[container] = list
	}
	return true
}

// snapshot copies the listeners of a container so callbacks may (un)subscribe
// while a delivery is in progress.
func (t *listenerTable) snapshot(container Serial) []CollectionListener {
	list := t.byContainer[container]
	if len(list) == 0 {
		return nil
	}
	out := make([]CollectionListener, 0, len(list))
	for _, idx := range list {
		if e := t.entries[idx]; e.live {
			out = append(out, e.listener)
		}
	}
	return out
}

func (t *listenerTable) count(container Serial) int {
	return len(t.byContainer[container])
}

func (t *listenerTable) reset() {
	t.entries = nil
	t.free = nil
	t.byKey = make(map[listenerKey]int)
	t.byContainer = make(map[Serial][]int)
}
