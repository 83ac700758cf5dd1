package layer

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/brainboard/pkg/errors"
)

// Snapshot is the board document: layers keyed by id plus their z-order.
type Snapshot struct {
	Layers   map[string]Layer `json:"layers"`
	LayerIDs []string         `json:"layerIds"`
}

// New returns an empty snapshot.
func New() Snapshot {
	return Snapshot{Layers: map[string]Layer{}, LayerIDs: []string{}}
}

// FromLayers builds a snapshot whose z-order follows ls.
func FromLayers(ls ...Layer) Snapshot {
	s := New()
	for _, l := range ls {
		s.Layers[l.ID] = l
		s.LayerIDs = append(s.LayerIDs, l.ID)
	}
	return s
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Layers:   make(map[string]Layer, len(s.Layers)),
		LayerIDs: slices.Clone(s.LayerIDs),
	}
	if c.LayerIDs == nil {
		c.LayerIDs = []string{}
	}
	for id, l := range s.Layers {
		c.Layers[id] = l
	}
	return c
}

// Len returns the number of layers.
func (s Snapshot) Len() int { return len(s.Layers) }

// Get returns the layer with the given id.
func (s Snapshot) Get(id string) (Layer, bool) {
	l, ok := s.Layers[id]
	return l, ok
}

// Ordered returns the layers in z-order, skipping ids without an entry.
func (s Snapshot) Ordered() []Layer {
	out := make([]Layer, 0, len(s.LayerIDs))
	for _, id := range s.LayerIDs {
		if l, ok := s.Layers[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// OfRole returns the layers with the given role in z-order.
func (s Snapshot) OfRole(r Role) []Layer {
	var out []Layer
	for _, l := range s.Ordered() {
		if l.Type == r {
			out = append(out, l)
		}
	}
	return out
}

// Count returns how many layers have the given role.
func (s Snapshot) Count(r Role) int { return len(s.OfRole(r)) }

// Frontmost returns the topmost layer with the given role.
func (s Snapshot) Frontmost(r Role) (Layer, bool) {
	for i := len(s.LayerIDs) - 1; i >= 0; i-- {
		if l, ok := s.Layers[s.LayerIDs[i]]; ok && l.Type == r {
			return l, true
		}
	}
	return Layer{}, false
}

// Validate checks the document invariants.
func (s Snapshot) Validate() error {
	if len(s.LayerIDs) > MaxLayers {
		return errors.New(errors.ErrCodeInvalidDocument, "%d layers exceeds the limit of %d", len(s.LayerIDs), MaxLayers)
	}
	if len(s.LayerIDs) != len(s.Layers) {
		return errors.New(errors.ErrCodeInvalidDocument, "%d ordered ids for %d layers", len(s.LayerIDs), len(s.Layers))
	}
	seen := make(map[string]bool, len(s.LayerIDs))
	for _, id := range s.LayerIDs {
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate layer id %q", id)
		}
		seen[id] = true
		l, ok := s.Layers[id]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "layer %q has no entry", id)
		}
		if l.ID != id {
			return errors.New(errors.ErrCodeInvalidDocument, "layer %q stored under id %q", l.ID, id)
		}
		if !l.Type.Valid() {
			return errors.New(errors.ErrCodeInvalidRole, "layer %q has unknown role %d", id, l.Type)
		}
	}
	return nil
}

// UnmarshalJSON fills missing layer ids from the map keys so documents
// written without an "id" field still load.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type raw Snapshot
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Layers == nil {
		r.Layers = map[string]Layer{}
	}
	if r.LayerIDs == nil {
		r.LayerIDs = []string{}
	}
	for id, l := range r.Layers {
		if l.ID == "" {
			l.ID = id
			r.Layers[id] = l
		}
	}
	*s = Snapshot(r)
	return nil
}

// Apply returns the snapshot produced by running b in order, together with
// the inverse batch that undoes exactly the operations that took effect.
// Operations that cannot apply are skipped.
func (s Snapshot) Apply(b Batch) (Snapshot, Batch) {
	next := s.Clone()
	var inverse Batch
	for _, op := range b {
		if inv, ok := next.apply(op); ok {
			inverse = append(inverse, inv)
		}
	}
	slices.Reverse(inverse)
	return next, inverse
}

// apply mutates s in place. s must own its map and slice.
func (s *Snapshot) apply(op Op) (Op, bool) {
	switch op.Kind {
	case OpCreate:
		if op.Layer == nil || len(s.Layers) >= MaxLayers {
			return Op{}, false
		}
		if _, exists := s.Layers[op.ID]; exists {
			return Op{}, false
		}
		l := *op.Layer
		l.ID = op.ID
		s.Layers[op.ID] = l
		idx := len(s.LayerIDs)
		if op.Index != nil && *op.Index >= 0 && *op.Index < idx {
			idx = *op.Index
		}
		s.LayerIDs = slices.Insert(s.LayerIDs, idx, op.ID)
		return Delete(op.ID), true

	case OpUpdate:
		l, ok := s.Layers[op.ID]
		if !ok || op.Patch == nil {
			return Op{}, false
		}
		s.Layers[op.ID] = op.Patch.ApplyTo(l)
		return Update(op.ID, op.Patch.Revert(l)), true

	case OpDelete:
		l, ok := s.Layers[op.ID]
		if !ok {
			return Op{}, false
		}
		idx := slices.Index(s.LayerIDs, op.ID)
		delete(s.Layers, op.ID)
		if idx >= 0 {
			s.LayerIDs = slices.Delete(s.LayerIDs, idx, idx+1)
		}
		return CreateAt(l, idx), true

	case OpReorder:
		if !isPermutation(s.LayerIDs, op.Order) {
			return Op{}, false
		}
		prev := s.LayerIDs
		s.LayerIDs = slices.Clone(op.Order)
		return Reorder(prev), true
	}
	return Op{}, false
}

// Diff returns update operations that turn s into next for every layer
// present in both. Creations, deletions and z-order changes are not diffed.
func (s Snapshot) Diff(next Snapshot) Batch {
	var b Batch
	for _, id := range s.LayerIDs {
		a, ok := s.Layers[id]
		if !ok {
			continue
		}
		n, ok := next.Layers[id]
		if !ok {
			continue
		}
		if p := diffPatch(a, n); !p.Empty() {
			b = append(b, Update(id, p))
		}
	}
	return b
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}
