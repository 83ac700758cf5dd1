package template

import (
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

const (
	moscowCard = 70
	// Cards are collected from the bottom 30% of a quadrant.
	bandStart = 0.7
)

func moscowScaffold(fill layer.Color) []layer.Spec {
	return []layer.Spec{
		{Type: layer.MoscowLabel, Bounds: geometry.Bounds{X: 1100, Y: 80, Width: 280, Height: 130}, Fill: layer.Color{R: 236, G: 246, B: 255}},
		{Type: layer.MoscowQuadrants, Bounds: geometry.Bounds{X: 60, Y: 100, Width: 1000, Height: 500}, Fill: fill},
	}
}

// inBand reports whether card sits in the bottom band of quadrant q.
func inBand(card, q geometry.Bounds) bool {
	return card.X > q.X && card.X < q.Right() &&
		card.Y >= q.Y+bandStart*q.Height && card.Y <= q.Bottom()
}

// quadrantOf returns the index of the first quadrant whose band holds card.
func quadrantOf(card layer.Layer, quads []layer.Layer) (int, bool) {
	for i, q := range quads {
		if inBand(card.Bounds(), q.Bounds()) {
			return i, true
		}
	}
	return 0, false
}

// Assignments maps each idea card lying in a quadrant's bottom band to that
// quadrant's id. Cards outside every band are absent.
func Assignments(snap layer.Snapshot) map[string]string {
	quads := snap.OfRole(layer.CombinaisonPanel)
	out := map[string]string{}
	for _, c := range snap.OfRole(layer.IdeaCard) {
		if i, ok := quadrantOf(c, quads); ok {
			out[c.ID] = quads[i].ID
		}
	}
	return out
}

func reflowMoscow(s *layer.Snapshot) {
	label, ok := s.Frontmost(layer.MoscowLabel)
	if !ok {
		return
	}
	quads := s.OfRole(layer.CombinaisonPanel)
	stash(s, layer.CombinaisonPanel, layer.RaffinementBank, layer.RaffinementHeader,
		layer.ColumnHeader, layer.CombinaisonBank)

	groups := make([][]layer.Layer, len(quads))
	for _, c := range s.OfRole(layer.IdeaCard) {
		if i, ok := quadrantOf(c, quads); ok {
			groups[i] = append(groups[i], c)
		}
	}
	// Each quadrant's group starts a new row of the label grid.
	pack(s, label, moscowCard, groups...)
}
