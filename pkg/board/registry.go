package board

import (
	"context"
	stderrors "errors"
	"regexp"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateID rejects ids that cannot be used as file names or keys.
func ValidateID(id string) error {
	if !validID.MatchString(id) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid board id %q", id)
	}
	return nil
}

// Registry keeps open boards in memory and backs them with a store.
type Registry struct {
	store  store.Store
	opts   []Option
	logger *log.Logger

	mu     sync.Mutex
	boards map[string]*Board
}

// NewRegistry returns a registry over st. opts are applied to every board
// it opens, after the store persister.
func NewRegistry(st store.Store, logger *log.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		store:  st,
		opts:   opts,
		logger: logger,
		boards: map[string]*Board{},
	}
}

// Get returns an existing board, loading it from the store when it is not
// open yet.
func (r *Registry) Get(ctx context.Context, id string) (*Board, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.boards[id]; ok {
		return b, nil
	}
	snap, err := r.store.Load(ctx, id)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeBoardNotFound, "board %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return r.open(id, snap), nil
}

// Open returns the board, creating an empty one when it does not exist.
func (r *Registry) Open(ctx context.Context, id string) (*Board, error) {
	b, err := r.Get(ctx, id)
	if errors.Is(err, errors.ErrCodeBoardNotFound) {
		return r.Create(ctx, id)
	}
	return b, err
}

// Create saves an empty document under id and opens it. An existing board is
// returned unchanged.
func (r *Registry) Create(ctx context.Context, id string) (*Board, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.boards[id]; ok {
		return b, nil
	}
	snap, err := r.store.Load(ctx, id)
	switch {
	case err == nil:
		return r.open(id, snap), nil
	case !stderrors.Is(err, store.ErrNotFound):
		return nil, err
	}
	snap = layer.New()
	if err := r.store.Save(ctx, id, snap); err != nil {
		return nil, err
	}
	r.logger.Info("created board", "board", id)
	return r.open(id, snap), nil
}

func (r *Registry) open(id string, snap layer.Snapshot) *Board {
	opts := append([]Option{WithPersister(r.store), WithLogger(r.logger)}, r.opts...)
	b := New(id, snap, opts...)
	r.boards[id] = b
	r.logger.Debug("opened board", "board", id, "layers", snap.Len())
	return b
}

// Delete closes the board and removes it from the store.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	delete(r.boards, id)
	r.logger.Info("deleted board", "board", id)
	return nil
}

// List returns the ids of saved and open boards.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	ids, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	for id := range r.boards {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	r.mu.Unlock()
	slices.Sort(ids)
	return ids, nil
}

// Close closes the underlying store.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = map[string]*Board{}
	return r.store.Close()
}
