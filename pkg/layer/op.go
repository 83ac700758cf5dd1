package layer

import "github.com/matzehuels/brainboard/pkg/errors"

// OpKind names a store mutation.
type OpKind string

const (
	OpCreate  OpKind = "create"
	OpUpdate  OpKind = "update"
	OpDelete  OpKind = "delete"
	OpReorder OpKind = "reorder"
)

// Op is a single mutation of a snapshot.
type Op struct {
	Kind  OpKind   `json:"op"`
	ID    string   `json:"id,omitempty"`
	Layer *Layer   `json:"layer,omitempty"` // create
	Index *int     `json:"index,omitempty"` // create: z-position, appended when nil
	Patch *Patch   `json:"patch,omitempty"` // update
	Order []string `json:"order,omitempty"` // reorder
}

// Create appends l to the top of the z-order.
func Create(l Layer) Op {
	return Op{Kind: OpCreate, ID: l.ID, Layer: &l}
}

// CreateAt inserts l at z-position index.
func CreateAt(l Layer, index int) Op {
	op := Create(l)
	op.Index = Ptr(index)
	return op
}

// Update patches the layer with the given id.
func Update(id string, p Patch) Op {
	return Op{Kind: OpUpdate, ID: id, Patch: &p}
}

// Delete removes the layer with the given id.
func Delete(id string) Op {
	return Op{Kind: OpDelete, ID: id}
}

// Reorder replaces the z-order. order must be a permutation of the ids.
func Reorder(order []string) Op {
	return Op{Kind: OpReorder, Order: append([]string(nil), order...)}
}

// Batch is an ordered list of operations applied atomically.
type Batch []Op

// Creates returns the ids created by the batch, in order.
func (b Batch) Creates() []string {
	var ids []string
	for _, op := range b {
		if op.Kind == OpCreate {
			ids = append(ids, op.ID)
		}
	}
	return ids
}

// Validate checks that every operation is well formed. It does not check the
// operations against a snapshot; that is Apply's job.
func (b Batch) Validate() error {
	for i, op := range b {
		switch op.Kind {
		case OpCreate:
			if op.Layer == nil || op.ID == "" || op.Layer.ID != op.ID {
				return errors.New(errors.ErrCodeInvalidInput, "op %d: create needs a layer with a matching id", i)
			}
			if !op.Layer.Type.Valid() {
				return errors.New(errors.ErrCodeInvalidRole, "op %d: unknown role %d", i, op.Layer.Type)
			}
			if op.Layer.Width < 0 || op.Layer.Height < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "op %d: negative size", i)
			}
		case OpUpdate:
			if op.ID == "" || op.Patch == nil {
				return errors.New(errors.ErrCodeInvalidInput, "op %d: update needs an id and a patch", i)
			}
			if (op.Patch.Width != nil && *op.Patch.Width < 0) || (op.Patch.Height != nil && *op.Patch.Height < 0) {
				return errors.New(errors.ErrCodeInvalidInput, "op %d: negative size", i)
			}
		case OpDelete:
			if op.ID == "" {
				return errors.New(errors.ErrCodeInvalidInput, "op %d: delete needs an id", i)
			}
		case OpReorder:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "op %d: unknown kind %q", i, op.Kind)
		}
	}
	return nil
}
