package history

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory, thread-safe record store. Records are copied on the
// way in and out, so callers never share state with the store. When a limit
// is set the oldest records are evicted first.
type Memory struct {
	mux     sync.RWMutex
	records map[string]*Record
	order   []string
	limit   int
}

var _ Service = (*Memory)(nil)

// MemoryOption configures the memory store.
type MemoryOption func(*Memory)

// WithLimit caps the number of retained records; zero keeps everything.
func WithLimit(limit int) MemoryOption {
	return func(m *Memory) {
		m.limit = limit
	}
}

// NewMemory creates an empty store.
func NewMemory(options ...MemoryOption) *Memory {
	m := &Memory{records: map[string]*Record{}}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Memory) Save(_ context.Context, record *Record) error {
	if record == nil {
		return ErrNilRecord
	}
	if record.ID == "" {
		return ErrInvalidID
	}
	clone := *record

	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		m.order = append(m.order, record.ID)
	}
	m.records[record.ID] = &clone
	for m.limit > 0 && len(m.order) > m.limit {
		delete(m.records, m.order[0])
		m.order = m.order[1:]
	}
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	m.mux.RLock()
	record, ok := m.records[id]
	m.mux.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	for i, candidate := range m.order {
		if candidate == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) List(_ context.Context, states ...string) ([]*Record, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	out := make([]*Record, 0, len(m.records))
	for _, id := range m.order {
		record := m.records[id]
		if !matchesState(record.State, states) {
			continue
		}
		clone := *record
		out = append(out, &clone)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}
