package template

import (
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

const (
	combinaisonCard = 70
	// Cards left of the raffinement header's right edge by more than this
	// belong to the raffinement board and are not packed.
	eligibilityMargin = 250

	panelWidth  = 350
	panelHeight = 305
	panelX      = 55
	panelY      = 350
	panelStep   = 20
)

var panelFill = layer.Color{R: 200, G: 233, B: 251}

func combinaisonScaffold(layer.Color) []layer.Spec {
	return []layer.Spec{
		{Type: layer.CombinaisonPanel, Bounds: geometry.Bounds{X: 60, Y: 20, Width: panelWidth, Height: panelHeight}, Fill: layer.Color{R: 255, G: 208, B: 72}},
		{Type: layer.CombinaisonPanel, Bounds: geometry.Bounds{X: 60, Y: 330, Width: panelWidth, Height: panelHeight}, Fill: layer.Color{R: 155, G: 163, B: 235}},
		{Type: layer.CombinaisonBank, Bounds: geometry.Bounds{X: 700, Y: 100, Width: 700, Height: 150}, Fill: layer.Color{R: 236, G: 246, B: 255}},
	}
}

// combinaisonRow offsets the new panel diagonally by the number of panels
// already present.
func combinaisonRow(snap layer.Snapshot) []layer.Spec {
	n := float64(snap.Count(layer.CombinaisonPanel))
	return []layer.Spec{{
		Type:   layer.CombinaisonPanel,
		Bounds: geometry.Bounds{X: panelX + n*panelStep, Y: panelY + n*panelStep, Width: panelWidth, Height: panelHeight},
		Fill:   panelFill,
	}}
}

func reflowCombinaison(s *layer.Snapshot) {
	bank, ok := s.Frontmost(layer.CombinaisonBank)
	if !ok {
		return
	}
	threshold := -float64(eligibilityMargin)
	if hdr, ok := s.Frontmost(layer.RaffinementHeader); ok {
		threshold = hdr.Bounds().Right() - eligibilityMargin
	}
	stash(s, layer.RaffinementBank, layer.RaffinementHeader, layer.ColumnHeader)

	var cards []layer.Layer
	for _, c := range s.OfRole(layer.IdeaCard) {
		if c.X > threshold {
			cards = append(cards, c)
		}
	}
	pack(s, bank, combinaisonCard, cards)
}
