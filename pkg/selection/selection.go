// Package selection edits the layers a user has selected.
//
// The pure builders [Translate] and [Resize] turn a selection into a
// [layer.Batch]. Locked, hidden and missing layers are skipped, so a
// selection that references a layer deleted by another user is harmless.
// [Manager] applies the builders for one user against a [Board].
package selection

import (
	"context"
	"slices"

	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

// Translate moves every selected layer by delta.
func Translate(snap layer.Snapshot, ids []string, delta geometry.Point) layer.Batch {
	var b layer.Batch
	for _, id := range ids {
		l, ok := snap.Get(id)
		if !ok || !l.Editable() {
			continue
		}
		b = append(b, layer.Update(id, layer.PositionPatch(l.X+delta.X, l.Y+delta.Y)))
	}
	return b
}

// Resize sets the bounds of the first selected layer. Other selected layers
// are left alone.
func Resize(snap layer.Snapshot, ids []string, bounds geometry.Bounds) layer.Batch {
	if len(ids) == 0 {
		return nil
	}
	l, ok := snap.Get(ids[0])
	if !ok || !l.Editable() {
		return nil
	}
	return layer.Batch{layer.Update(l.ID, layer.BoundsPatch(bounds))}
}

// Patch applies p to every selected layer that exists.
func Patch(snap layer.Snapshot, ids []string, p layer.Patch) layer.Batch {
	var b layer.Batch
	for _, id := range ids {
		if _, ok := snap.Get(id); ok {
			b = append(b, layer.Update(id, p))
		}
	}
	return b
}

// Remove deletes every selected layer that exists.
func Remove(snap layer.Snapshot, ids []string) layer.Batch {
	var b layer.Batch
	for _, id := range ids {
		if _, ok := snap.Get(id); ok {
			b = append(b, layer.Delete(id))
		}
	}
	return b
}

// Raise returns the reorder op moving the selected layers to the front, or
// to the back when front is false. Relative order is kept on both sides.
func Raise(snap layer.Snapshot, ids []string, front bool) (layer.Op, bool) {
	picked := make(map[string]bool, len(ids))
	for _, id := range ids {
		picked[id] = true
	}
	var moved, rest []string
	for _, id := range snap.LayerIDs {
		if picked[id] {
			moved = append(moved, id)
		} else {
			rest = append(rest, id)
		}
	}
	var order []string
	if front {
		order = append(rest, moved...)
	} else {
		order = append(moved, rest...)
	}
	if len(moved) == 0 || slices.Equal(order, snap.LayerIDs) {
		return layer.Op{}, false
	}
	return layer.Reorder(order), true
}

// Board is the shared store a Manager edits.
type Board interface {
	// Mutate runs fn against the current document and applies the batch it
	// returns as one undo step.
	Mutate(ctx context.Context, user string, fn func(layer.Snapshot) (layer.Batch, error)) (layer.Batch, error)
	Selection(user string) []string
	SetSelection(ctx context.Context, user string, ids []string, record bool) error
	SetLastFill(c layer.Color)
}

// Manager edits the selection of one user.
type Manager struct {
	board Board
	user  string
}

// NewManager returns a manager acting for user on board.
func NewManager(board Board, user string) *Manager {
	return &Manager{board: board, user: user}
}

// User returns the id of the user the manager acts for.
func (m *Manager) User() string { return m.user }

// Selected returns the current selection.
func (m *Manager) Selected() []string { return m.board.Selection(m.user) }

// Select replaces the selection. record controls whether the change is an
// undo step.
func (m *Manager) Select(ctx context.Context, ids []string, record bool) error {
	return m.board.SetSelection(ctx, m.user, ids, record)
}

// Unselect clears a non-empty selection as one undo step.
func (m *Manager) Unselect(ctx context.Context) error {
	if len(m.Selected()) == 0 {
		return nil
	}
	return m.board.SetSelection(ctx, m.user, nil, true)
}

// Translate moves the selection by delta.
func (m *Manager) Translate(ctx context.Context, delta geometry.Point) error {
	return m.mutate(ctx, func(s layer.Snapshot, ids []string) layer.Batch {
		return Translate(s, ids, delta)
	})
}

// Resize sets the bounds of the first selected layer.
func (m *Manager) Resize(ctx context.Context, bounds geometry.Bounds) error {
	return m.mutate(ctx, func(s layer.Snapshot, ids []string) layer.Batch {
		return Resize(s, ids, bounds)
	})
}

// SetFill colours the selection and remembers c as the last used colour.
func (m *Manager) SetFill(ctx context.Context, c layer.Color) error {
	m.board.SetLastFill(c)
	return m.patch(ctx, layer.Patch{Fill: &c})
}

// SetLock locks or unlocks the selection.
func (m *Manager) SetLock(ctx context.Context, lock bool) error {
	return m.patch(ctx, layer.Patch{Lock: &lock})
}

// SetHide hides or shows the selection.
func (m *Manager) SetHide(ctx context.Context, hide bool) error {
	return m.patch(ctx, layer.Patch{Hide: &hide})
}

// SetValue sets the text of the selected layers.
func (m *Manager) SetValue(ctx context.Context, v string) error {
	return m.patch(ctx, layer.Patch{Value: &v})
}

// Delete removes the selected layers and clears the selection.
func (m *Manager) Delete(ctx context.Context) error {
	if err := m.mutate(ctx, Remove); err != nil {
		return err
	}
	return m.board.SetSelection(ctx, m.user, nil, false)
}

// BringToFront moves the selection to the top of the z-order.
func (m *Manager) BringToFront(ctx context.Context) error { return m.raise(ctx, true) }

// SendToBack moves the selection to the bottom of the z-order.
func (m *Manager) SendToBack(ctx context.Context) error { return m.raise(ctx, false) }

func (m *Manager) raise(ctx context.Context, front bool) error {
	return m.mutate(ctx, func(s layer.Snapshot, ids []string) layer.Batch {
		if op, ok := Raise(s, ids, front); ok {
			return layer.Batch{op}
		}
		return nil
	})
}

func (m *Manager) patch(ctx context.Context, p layer.Patch) error {
	return m.mutate(ctx, func(s layer.Snapshot, ids []string) layer.Batch {
		return Patch(s, ids, p)
	})
}

func (m *Manager) mutate(ctx context.Context, build func(layer.Snapshot, []string) layer.Batch) error {
	ids := m.Selected()
	if len(ids) == 0 {
		return nil
	}
	_, err := m.board.Mutate(ctx, m.user, func(s layer.Snapshot) (layer.Batch, error) {
		return build(s, ids), nil
	})
	return err
}
