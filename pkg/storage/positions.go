package storage

import (
	"sort"
	"sync"
	"time"
)

// PositionCache remembers window positions keyed by container serial.
type PositionCache interface {
	Position(serial uint32) (x, y int, ok bool, err error)
	SavePosition(serial uint32, x, y int) error
}

// Record is one cached window position.
type Record struct {
	Serial    uint32
	X, Y      int
	UpdatedAt time.Time
}

// MemoryStore is a PositionCache that lives for one process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uint32]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uint32]Record), now: time.Now}
}

func (m *MemoryStore) Position(serial uint32) (int, int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[serial]
	return r.X, r.Y, ok, nil
}

func (m *MemoryStore) SavePosition(serial uint32, x, y int) error {
	m.mu.Lock()
	m.records[serial] = Record{Serial: serial, X: x, Y: y, UpdatedAt: m.now()}
	m.mu.Unlock()
	return nil
}

// Records returns all cached positions ordered by serial.
func (m *MemoryStore) Records() []Record {
	m.mu.RLock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Serial < out[j].Serial })
	return out
}
