package store

import (
	"context"
	"time"

	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/observability"
)

// Instrumented reports loads and saves of the wrapped store to the
// registered observability.StoreHooks under the given backend name.
type Instrumented struct {
	Store
	backend string
}

// Instrument wraps s so its loads and saves are observed.
func Instrument(backend string, s Store) *Instrumented {
	return &Instrumented{Store: s, backend: backend}
}

// Backend returns the backend name reported to the hooks.
func (i *Instrumented) Backend() string { return i.backend }

func (i *Instrumented) Load(ctx context.Context, boardID string) (layer.Snapshot, error) {
	start := time.Now()
	snap, err := i.Store.Load(ctx, boardID)
	observability.Store().OnLoad(ctx, i.backend, time.Since(start), err)
	return snap, err
}

func (i *Instrumented) Save(ctx context.Context, boardID string, snap layer.Snapshot) error {
	start := time.Now()
	err := i.Store.Save(ctx, boardID, snap)
	observability.Store().OnSave(ctx, i.backend, snap.Len(), time.Since(start), err)
	return err
}

var _ Store = (*Instrumented)(nil)
