package template

import (
	"slices"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/layer"
)

// IDFunc returns a fresh layer id.
type IDFunc func() string

// family pairs a template's generator with its reflow.
type family struct {
	anchor   layer.Role
	scaffold func(fill layer.Color) []layer.Spec
	reflow   func(draft *layer.Snapshot)
	addRow   func(snap layer.Snapshot) []layer.Spec
}

var families = map[string]family{
	layer.TemplateCombinaison: {
		anchor:   layer.CombinaisonBank,
		scaffold: combinaisonScaffold,
		reflow:   reflowCombinaison,
		addRow:   combinaisonRow,
	},
	layer.TemplateRaffinement: {
		anchor:   layer.RaffinementBank,
		scaffold: raffinementScaffold,
		reflow:   reflowRaffinement,
		addRow:   raffinementRow,
	},
	layer.TemplateMoscow: {
		anchor:   layer.MoscowLabel,
		scaffold: moscowScaffold,
		reflow:   reflowMoscow,
	},
}

// Names returns the supported template names.
func Names() []string {
	return []string{layer.TemplateCombinaison, layer.TemplateRaffinement, layer.TemplateMoscow}
}

func lookup(name string) (family, error) {
	f, ok := families[name]
	if !ok {
		return family{}, errors.New(errors.ErrCodeInvalidTemplate, "unknown template %q", name)
	}
	return f, nil
}

// Engine builds template batches. It is safe for concurrent use if its
// IDFunc is.
type Engine struct {
	newID IDFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDFunc sets the id generator. Tests use it for stable ids.
func WithIDFunc(f IDFunc) Option {
	return func(e *Engine) {
		if f != nil {
			e.newID = f
		}
	}
}

// New returns an engine generating ids with layer.NewID.
func New(opts ...Option) *Engine {
	e := &Engine{newID: layer.NewID}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate returns the batch that creates the named template's scaffold,
// reflows the board and brings idea cards to the front. fill colours the
// shapes whose colour is chosen by the user.
func (e *Engine) Generate(snap layer.Snapshot, name string, fill layer.Color) (layer.Batch, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return e.build(snap, f.scaffold(fill), f.reflow), nil
}

// AddRow appends one more unit to a template: a panel for Combinaison, a
// row of column headers for Raffinement.
func (e *Engine) AddRow(snap layer.Snapshot, name string) (layer.Batch, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if f.addRow == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "template %q has no rows to add", name)
	}
	return e.build(snap, f.addRow(snap), f.reflow), nil
}

// InsertCombin adds a combinaison panel offset by the number of panels
// already on the board, then reflows.
func (e *Engine) InsertCombin(snap layer.Snapshot) layer.Batch {
	return e.build(snap, combinaisonRow(snap), reflowCombinaison)
}

// InsertRaffin adds a row of nine column headers below the existing ones,
// then reflows.
func (e *Engine) InsertRaffin(snap layer.Snapshot) layer.Batch {
	return e.build(snap, raffinementRow(snap), reflowRaffinement)
}

// Reflow returns the updates that re-pack the named template and the
// z-order fix. It returns an empty batch when the template's anchor shape is
// not on the board.
func Reflow(snap layer.Snapshot, name string) (layer.Batch, error) {
	f, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if _, ok := snap.Frontmost(f.anchor); !ok {
		return nil, nil
	}
	return New().build(snap, nil, f.reflow), nil
}

// build creates specs on a draft, reflows it and returns the combined batch.
// Creates dropped by the layer limit are left out.
func (e *Engine) build(snap layer.Snapshot, specs []layer.Spec, reflow func(*layer.Snapshot)) layer.Batch {
	creates := make(layer.Batch, 0, len(specs))
	for _, s := range specs {
		creates = append(creates, layer.Create(s.Build(e.newID())))
	}
	draft, _ := snap.Apply(creates)
	creates = slices.DeleteFunc(creates, func(op layer.Op) bool {
		_, ok := draft.Get(op.ID)
		return !ok
	})

	reflowed := draft.Clone()
	reflow(&reflowed)

	batch := append(creates, draft.Diff(reflowed)...)
	if op, ok := ZOrder(reflowed); ok {
		batch = append(batch, op)
	}
	return batch
}

// CardsToFront returns the z-order with every idea card moved to the front,
// keeping the relative order within cards and within the other shapes.
func CardsToFront(snap layer.Snapshot) []string {
	rest := make([]string, 0, len(snap.LayerIDs))
	var cards []string
	for _, id := range snap.LayerIDs {
		if l, ok := snap.Layers[id]; ok && l.Type == layer.IdeaCard {
			cards = append(cards, id)
			continue
		}
		rest = append(rest, id)
	}
	return append(rest, cards...)
}

// ZOrder returns the reorder op bringing idea cards to the front, or false
// if they already are.
func ZOrder(snap layer.Snapshot) (layer.Op, bool) {
	order := CardsToFront(snap)
	if slices.Equal(order, snap.LayerIDs) {
		return layer.Op{}, false
	}
	return layer.Reorder(order), true
}
