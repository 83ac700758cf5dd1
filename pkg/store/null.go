package store

import (
	"context"

	"github.com/matzehuels/brainboard/pkg/layer"
)

// Null is a store that never keeps anything. Boards served with it live only
// as long as the process.
type Null struct{}

// NewNull creates a null store.
func NewNull() Store {
	return Null{}
}

// Load always reports ErrNotFound.
func (Null) Load(context.Context, string) (layer.Snapshot, error) {
	return layer.Snapshot{}, ErrNotFound
}

// Save does nothing.
func (Null) Save(context.Context, string, layer.Snapshot) error { return nil }

// Delete does nothing.
func (Null) Delete(context.Context, string) error { return nil }

// List returns no boards.
func (Null) List(context.Context) ([]string, error) { return nil, nil }

// Close does nothing.
func (Null) Close() error { return nil }

var _ Store = Null{}
