package template

import (
	"slices"

	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

const (
	gridInset  = 30  // cursor offset from the anchor's top-left corner
	gridStep   = 130 // horizontal advance per card
	rowStep    = 100 // vertical advance per row
	wrapMargin = 100 // wrap once the cursor is this close to the right edge
	growMargin = 50  // grow once a new row is this close to the bottom edge
	growStep   = 120 // anchor height added per growth

	bankShift = 1500
)

// Grid packs square cards into an anchor rectangle. The zero value is not
// usable; create grids with NewGrid.
type Grid struct {
	anchor   geometry.Bounds
	size     float64
	cursor   geometry.Point
	rowStart bool
}

// NewGrid returns a grid packing cards of the given size into anchor.
func NewGrid(anchor geometry.Bounds, size float64) *Grid {
	return &Grid{
		anchor:   anchor,
		size:     size,
		cursor:   geometry.Point{X: anchor.X + gridInset, Y: anchor.Y + gridInset},
		rowStart: true,
	}
}

// Place returns the bounds of the next card.
func (g *Grid) Place() geometry.Bounds {
	if !g.rowStart && g.cursor.X >= g.anchor.Right()-wrapMargin {
		g.wrap()
	}
	b := geometry.Bounds{X: g.cursor.X, Y: g.cursor.Y, Width: g.size, Height: g.size}
	g.cursor.X += gridStep
	g.rowStart = false
	return b
}

// NewRow moves the cursor to the start of the next row unless it is already
// at the start of one.
func (g *Grid) NewRow() {
	if !g.rowStart {
		g.wrap()
	}
}

// Anchor returns the anchor bounds including any growth.
func (g *Grid) Anchor() geometry.Bounds { return g.anchor }

func (g *Grid) wrap() {
	g.cursor.X = g.anchor.X + gridInset
	g.cursor.Y += rowStep
	if g.cursor.Y > g.anchor.Bottom()-growMargin {
		g.anchor.Height += growStep
	}
	g.rowStart = true
}

// pack places cards in order and writes the grown anchor back.
func pack(s *layer.Snapshot, anchor layer.Layer, size float64, groups ...[]layer.Layer) {
	g := NewGrid(anchor.Bounds(), size)
	for _, cards := range groups {
		if len(cards) == 0 {
			continue
		}
		g.NewRow()
		for _, c := range cards {
			b := g.Place()
			c.X, c.Y, c.Width, c.Height = b.X, b.Y, b.Width, b.Height
			s.Layers[c.ID] = c
		}
	}
	anchor.Height = g.Anchor().Height
	s.Layers[anchor.ID] = anchor
}

// stash moves every shape with one of the given roles into the bank area.
func stash(s *layer.Snapshot, roles ...layer.Role) {
	for _, l := range s.Ordered() {
		if !slices.Contains(roles, l.Type) || l.Bounds().Right() <= 0 {
			continue
		}
		l.X -= bankShift
		s.Layers[l.ID] = l
	}
}
