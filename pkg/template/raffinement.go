package template

import (
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

const (
	raffinementCard = 80

	columns      = 9
	headerY      = 190
	headerHeight = 100
	headerRowGap = 120 // vertical offset between header rows

	bandHeight  = 110 // header band height for one row of headers
	bandRowStep = 130 // band growth per extra header row
	bankDrop    = 110 // how far the bank and its cards move per extra row
)

// column is one entry of the nine-column categorisation table.
type column struct {
	x, width float64
	fill     layer.Color
}

var columnTable = [columns]column{
	{60, 155, layer.Color{R: 255, G: 243, B: 209}},
	{230, 135, layer.Color{R: 200, G: 233, B: 251}},
	{375, 140, layer.Color{R: 252, G: 228, B: 200}},
	{525, 140, layer.Color{R: 200, G: 233, B: 251}},
	{680, 135, layer.Color{R: 255, G: 198, B: 242}},
	{825, 140, layer.Color{R: 202, G: 252, B: 234}},
	{975, 140, layer.Color{R: 238, G: 227, B: 219}},
	{1123, 143, layer.Color{R: 202, G: 252, B: 234}},
	{1280, 150, layer.Color{R: 255, G: 243, B: 209}},
}

func headerRow(y float64) []layer.Spec {
	specs := make([]layer.Spec, 0, columns)
	for _, c := range columnTable {
		specs = append(specs, layer.Spec{
			Type:   layer.ColumnHeader,
			Bounds: geometry.Bounds{X: c.x, Y: y, Width: c.width, Height: headerHeight},
			Fill:   c.fill,
		})
	}
	return specs
}

func raffinementScaffold(layer.Color) []layer.Spec {
	specs := []layer.Spec{
		{Type: layer.RaffinementBank, Bounds: geometry.Bounds{X: 100, Y: 450, Width: 1300, Height: 150}, Fill: layer.Color{R: 236, G: 246, B: 255}},
		{Type: layer.RaffinementHeader, Bounds: geometry.Bounds{X: 50, Y: headerY, Width: 1380, Height: bandHeight}, Fill: layer.White},
	}
	return append(specs, headerRow(headerY)...)
}

// raffinementRow stacks a new header row under the existing ones. Partial
// rows round down.
func raffinementRow(snap layer.Snapshot) []layer.Spec {
	rows := snap.Count(layer.ColumnHeader) / columns
	return headerRow(headerY + float64(rows*headerRowGap))
}

func reflowRaffinement(s *layer.Snapshot) {
	bank, ok := s.Frontmost(layer.RaffinementBank)
	if !ok {
		return
	}
	if band, ok := s.Frontmost(layer.RaffinementHeader); ok {
		bank = makeRoom(s, band, bank)
	}
	pack(s, bank, raffinementCard, s.OfRole(layer.IdeaCard))
}

// makeRoom grows the header band until it fits every header row, pushing
// the bank and the cards at or below it down for each added row.
func makeRoom(s *layer.Snapshot, band, bank layer.Layer) layer.Layer {
	rows := max((s.Count(layer.ColumnHeader)+columns-1)/columns, 1)
	need := float64(bandHeight + (rows-1)*bandRowStep)
	for band.Height < need {
		band.Height += bandRowStep
		for _, c := range s.OfRole(layer.IdeaCard) {
			if c.Y >= bank.Y {
				c.Y += bankDrop
				s.Layers[c.ID] = c
			}
		}
		bank.Y += bankDrop
	}
	s.Layers[band.ID] = band
	s.Layers[bank.ID] = bank
	return bank
}
