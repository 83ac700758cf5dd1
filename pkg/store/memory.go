package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/brainboard/pkg/layer"
)

// Memory keeps documents in a map. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	boards map[string]layer.Snapshot
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{boards: map[string]layer.Snapshot{}}
}

func (m *Memory) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return layer.Snapshot{}, ErrClosed
	}
	snap, ok := m.boards[boardID]
	if !ok {
		return layer.Snapshot{}, ErrNotFound
	}
	return snap.Clone(), nil
}

func (m *Memory) Save(ctx context.Context, boardID string, snap layer.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.boards[boardID] = snap.Clone()
	return nil
}

func (m *Memory) Delete(ctx context.Context, boardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.boards, boardID)
	return nil
}

func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	ids := make([]string, 0, len(m.boards))
	for id := range m.boards {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Store = (*Memory)(nil)
