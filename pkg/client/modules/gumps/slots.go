package gumps

import "github.com/go-uolib/client/pkg/client/modules/world"

// SlotMap is a fixed-capacity set of grid slots. Slot i sits at row i%rows of
// column i/rows, so the first-free scan fills left to right, then top to
// bottom. A serial is bound to at most one slot.
type SlotMap struct {
	rows, columns int
	slots         []world.Serial
	index         map[world.Serial]int
}

func NewSlotMap(rows, columns int) *SlotMap {
	rows, columns = max(rows, 0), max(columns, 0)
	return &SlotMap{
		rows:    rows,
		columns: columns,
		slots:   make([]world.Serial, rows*columns),
		index:   make(map[world.Serial]int),
	}
}

func (m *SlotMap) Rows() int    { return m.rows }
func (m *SlotMap) Columns() int { return m.columns }
func (m *SlotMap) Cap() int     { return len(m.slots) }

// Len returns the number of bound slots.
func (m *SlotMap) Len() int { return len(m.index) }

// Cell returns the row and column of slot pos.
func (m *SlotMap) Cell(pos int) (row, column int) {
	if m.rows == 0 {
		return 0, 0
	}
	return pos % m.rows, pos / m.rows
}

// At returns the serial bound to pos, or 0.
func (m *SlotMap) At(pos int) world.Serial {
	if pos < 0 || pos >= len(m.slots) {
		return 0
	}
	return m.slots[pos]
}

func (m *SlotMap) IndexOf(serial world.Serial) (int, bool) {
	pos, ok := m.index[serial]
	return pos, ok
}

// Bind puts serial into the first unbound slot. An already bound serial keeps
// its slot. ok is false when every slot is taken.
func (m *SlotMap) Bind(serial world.Serial) (int, bool) {
	if serial == 0 {
		return -1, false
	}
	if pos, ok := m.index[serial]; ok {
		return pos, true
	}
	for i, s := range m.slots {
		if s == 0 {
			m.slots[i] = serial
			m.index[serial] = i
			return i, true
		}
	}
	return -1, false
}

// BindAt binds serial to pos, evicting whatever was there and moving serial
// out of any previous slot. Out of range positions are ignored.
func (m *SlotMap) BindAt(pos int, serial world.Serial) bool {
	if pos < 0 || pos >= len(m.slots) {
		return false
	}
	if serial == 0 {
		m.UnbindAt(pos)
		return true
	}
	if prev, ok := m.index[serial]; ok {
		m.slots[prev] = 0
	}
	if old := m.slots[pos]; old != 0 {
		delete(m.index, old)
	}
	m.slots[pos] = serial
	m.index[serial] = pos
	return true
}

func (m *SlotMap) Unbind(serial world.Serial) bool {
	pos, ok := m.index[serial]
	if !ok {
		return false
	}
	m.slots[pos] = 0
	delete(m.index, serial)
	return true
}

func (m *SlotMap) UnbindAt(pos int) (world.Serial, bool) {
	s := m.At(pos)
	if s == 0 {
		return 0, false
	}
	m.slots[pos] = 0
	delete(m.index, s)
	return s, true
}

// Prune unbinds every serial for which alive reports false.
func (m *SlotMap) Prune(alive func(world.Serial) bool) []world.Serial {
	var dropped []world.Serial
	for i, s := range m.slots {
		if s != 0 && !alive(s) {
			m.slots[i] = 0
			delete(m.index, s)
			dropped = append(dropped, s)
		}
	}
	return dropped
}

func (m *SlotMap) Reset() {
	clear(m.slots)
	clear(m.index)
}
