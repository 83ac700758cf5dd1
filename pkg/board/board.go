// Package board is the in-process shared store a brainboard is edited
// through.
//
// A [Board] owns the layer document, the presence of every connected user
// (selection and cursor), one undo history per user and the last colour
// used. All mutations go through [Board.Mutate], which applies a batch
// atomically under the board lock, records its inverse for undo and
// persists the new document. Readers never observe a partially applied
// batch.
//
// A [Registry] opens boards from a [store.Store] and keeps them in memory
// for the HTTP API.
package board

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/history"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/observability"
	"github.com/matzehuels/brainboard/pkg/template"
)

// DefaultSize is the width and height of layers inserted with the pointer.
const DefaultSize = 100

// Persister saves a board's document after every committed change.
type Persister interface {
	Save(ctx context.Context, boardID string, snap layer.Snapshot) error
}

// Presence is what other users see of a user.
type Presence struct {
	Selection []string        `json:"selection"`
	Cursor    *geometry.Point `json:"cursor"`
}

type session struct {
	presence Presence
	history  *history.Log
}

// Board is a shared layer document. It is safe for concurrent use.
type Board struct {
	id string

	mu       sync.Mutex
	snap     layer.Snapshot
	sessions map[string]*session
	lastFill layer.Color

	persister    Persister
	engine       *template.Engine
	logger       *log.Logger
	historyLimit int
}

// Option configures a Board.
type Option func(*Board)

// WithPersister saves the document after every change.
func WithPersister(p Persister) Option {
	return func(b *Board) { b.persister = p }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithEngine sets the template engine.
func WithEngine(e *template.Engine) Option {
	return func(b *Board) {
		if e != nil {
			b.engine = e
		}
	}
}

// WithHistoryLimit sets the per-user undo depth.
func WithHistoryLimit(n int) Option {
	return func(b *Board) { b.historyLimit = n }
}

// WithLastFill sets the initial colour for inserted layers.
func WithLastFill(c layer.Color) Option {
	return func(b *Board) { b.lastFill = c }
}

// New returns a board holding snap.
func New(id string, snap layer.Snapshot, opts ...Option) *Board {
	b := &Board{
		id:           id,
		snap:         snap.Clone(),
		sessions:     map[string]*session{},
		lastFill:     layer.White,
		engine:       template.New(),
		logger:       log.Default(),
		historyLimit: history.DefaultLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID returns the board id.
func (b *Board) ID() string { return b.id }

// Snapshot returns a copy of the current document.
func (b *Board) Snapshot() layer.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap.Clone()
}

func (b *Board) session(user string) *session {
	s, ok := b.sessions[user]
	if !ok {
		s = &session{history: history.New(b.historyLimit)}
		b.sessions[user] = s
	}
	return s
}

// Users returns the ids of users that have touched the board.
func (b *Board) Users() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	users := make([]string, 0, len(b.sessions))
	for u := range b.sessions {
		users = append(users, u)
	}
	slices.Sort(users)
	return users
}

// Presence returns a copy of a user's presence.
func (b *Board) Presence(user string) Presence {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.session(user).presence
	p.Selection = slices.Clone(p.Selection)
	if p.Cursor != nil {
		c := *p.Cursor
		p.Cursor = &c
	}
	return p
}

// Selection returns a copy of a user's selection. It may name layers that
// have since been deleted.
func (b *Board) Selection(user string) []string {
	return b.Presence(user).Selection
}

// SetCursor publishes a user's cursor. nil hides it.
func (b *Board) SetCursor(user string, p *geometry.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p != nil {
		c := *p
		p = &c
	}
	b.session(user).presence.Cursor = p
}

// SetSelection replaces a user's selection. When record is true the change
// is one undo step.
func (b *Board) SetSelection(ctx context.Context, user string, ids []string, record bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.session(user)
	if slices.Equal(s.presence.Selection, ids) {
		return nil
	}
	if record {
		s.history.Record(history.Entry{Selection: map[string][]string{user: s.presence.Selection}})
	}
	s.presence.Selection = slices.Clone(ids)
	return nil
}

// LastFill returns the colour most recently picked on the board.
func (b *Board) LastFill() layer.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastFill
}

// SetLastFill remembers c for later inserts.
func (b *Board) SetLastFill(c layer.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastFill = c
}

// Pause starts grouping a user's changes into one undo step.
func (b *Board) Pause(user string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session(user).history.Pause()
}

// Resume ends grouping and commits the grouped step.
func (b *Board) Resume(user string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session(user).history.Resume()
}

// CanUndo reports whether the user has a step to undo.
func (b *Board) CanUndo(user string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session(user).history.CanUndo()
}

// CanRedo reports whether the user has a step to redo.
func (b *Board) CanRedo(user string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session(user).history.CanRedo()
}

// Mutate runs fn against the current document and commits the batch it
// returns as one undo step for user. The returned batch is the one fn built.
func (b *Board) Mutate(ctx context.Context, user string, fn func(layer.Snapshot) (layer.Batch, error)) (layer.Batch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch, err := fn(b.snap.Clone())
	if err != nil {
		return nil, err
	}
	return batch, b.commit(ctx, user, batch, nil, false)
}

// Apply commits batch as one undo step for user.
func (b *Board) Apply(ctx context.Context, user string, batch layer.Batch) (layer.Batch, error) {
	return b.Mutate(ctx, user, func(layer.Snapshot) (layer.Batch, error) { return batch, nil })
}

// commit applies batch, optionally replaces the user's selection and
// records both as one history entry. The caller holds b.mu.
func (b *Board) commit(ctx context.Context, user string, batch layer.Batch, sel []string, setSel bool) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	start := time.Now()
	s := b.session(user)

	next, inverse := b.snap.Apply(batch)
	entry := history.Entry{Ops: inverse}
	if setSel && !slices.Equal(s.presence.Selection, sel) {
		entry.Selection = map[string][]string{user: s.presence.Selection}
	}
	if entry.Empty() {
		return nil
	}

	if len(inverse) > 0 {
		if err := b.persist(ctx, next); err != nil {
			return err
		}
		b.snap = next
	}
	if entry.Selection != nil {
		s.presence.Selection = slices.Clone(sel)
	}
	s.history.Record(entry)

	observability.Board().OnApply(ctx, b.id, len(inverse), time.Since(start))
	b.logger.Debug("applied batch", "board", b.id, "user", user, "ops", len(inverse))
	return nil
}

func (b *Board) persist(ctx context.Context, snap layer.Snapshot) error {
	if b.persister == nil {
		return nil
	}
	if err := b.persister.Save(ctx, b.id, snap.Clone()); err != nil {
		b.logger.Error("save failed", "board", b.id, "err", err)
		return err
	}
	return nil
}

// Undo reverts the user's latest step. It reports false when there was
// nothing to undo or the save failed; a failed step stays undoable.
func (b *Board) Undo(ctx context.Context, user string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ok, err := b.session(user).history.Undo(func(e history.Entry) (history.Entry, error) {
		return b.revert(ctx, e)
	})
	observability.Board().OnUndo(ctx, b.id, ok)
	return ok, err
}

// Redo re-applies the user's latest undone step.
func (b *Board) Redo(ctx context.Context, user string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ok, err := b.session(user).history.Redo(func(e history.Entry) (history.Entry, error) {
		return b.revert(ctx, e)
	})
	observability.Board().OnRedo(ctx, b.id, ok)
	return ok, err
}

// revert performs a history entry and returns the entry that reverses it.
func (b *Board) revert(ctx context.Context, e history.Entry) (history.Entry, error) {
	next, inverse := b.snap.Apply(e.Ops)
	if len(inverse) > 0 {
		if err := b.persist(ctx, next); err != nil {
			return history.Entry{}, err
		}
		b.snap = next
	}
	r := history.Entry{Ops: inverse}
	for user, sel := range e.Selection {
		if r.Selection == nil {
			r.Selection = map[string][]string{}
		}
		s := b.session(user)
		r.Selection[user] = s.presence.Selection
		s.presence.Selection = slices.Clone(sel)
	}
	b.logger.Debug("reverted step", "board", b.id, "ops", len(inverse))
	return r, nil
}

// Insert creates a DefaultSize layer of role at p, filled with the last used
// colour, and selects it. It returns "" without error when the board is
// full.
func (b *Board) Insert(ctx context.Context, user string, role layer.Role, p geometry.Point) (string, error) {
	if !role.Valid() {
		return "", errors.New(errors.ErrCodeInvalidRole, "unknown role %d", role)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.snap.Len() >= layer.MaxLayers {
		return "", nil
	}
	l := layer.Spec{
		Type:   role,
		Bounds: geometry.Bounds{X: p.X, Y: p.Y, Width: DefaultSize, Height: DefaultSize},
		Fill:   b.lastFill,
	}.Build(layer.NewID())
	if err := b.commit(ctx, user, layer.Batch{layer.Create(l)}, []string{l.ID}, true); err != nil {
		return "", err
	}
	return l.ID, nil
}

// Generate creates the named template on the board and selects its last
// shape.
func (b *Board) Generate(ctx context.Context, user, name string) (layer.Batch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := time.Now()
	batch, err := b.engine.Generate(b.snap, name, b.lastFill)
	observability.Template().OnGenerate(ctx, name, len(batch.Creates()), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return batch, b.commitCreates(ctx, user, batch)
}

// AddRow extends the named template by one row and selects the last new
// shape.
func (b *Board) AddRow(ctx context.Context, user, name string) (layer.Batch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := time.Now()
	batch, err := b.engine.AddRow(b.snap, name)
	observability.Template().OnGenerate(ctx, name, len(batch.Creates()), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return batch, b.commitCreates(ctx, user, batch)
}

// Reflow re-packs the named template.
func (b *Board) Reflow(ctx context.Context, user, name string) (layer.Batch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := time.Now()
	batch, err := template.Reflow(b.snap, name)
	observability.Template().OnReflow(ctx, name, len(batch), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return batch, b.commit(ctx, user, batch, nil, false)
}

func (b *Board) commitCreates(ctx context.Context, user string, batch layer.Batch) error {
	ids := batch.Creates()
	if len(ids) == 0 {
		return b.commit(ctx, user, batch, nil, false)
	}
	return b.commit(ctx, user, batch, ids[len(ids)-1:], true)
}
