package layer

import (
	"github.com/google/uuid"

	"github.com/matzehuels/brainboard/pkg/geometry"
)

// MaxLayers caps the number of layers on a board.
const MaxLayers = 100

// Color is an RGB fill.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// White is the default fill for new layers.
var White = Color{R: 255, G: 255, B: 255}

// Layer is a positioned, sized, typed rectangle.
type Layer struct {
	ID     string  `json:"id"`
	Type   Role    `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   Color   `json:"fill"`
	Lock   bool    `json:"lock"`
	Hide   bool    `json:"hide"`
	Value  string  `json:"value,omitempty"`
}

// Bounds returns the layer's rectangle.
func (l Layer) Bounds() geometry.Bounds {
	return geometry.Bounds{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}
}

// Editable reports whether translate and resize may touch the layer.
func (l Layer) Editable() bool { return !l.Lock && !l.Hide }

// NewID returns a fresh layer id.
func NewID() string { return uuid.NewString() }

// Spec describes a layer to create. It is what generators emit before ids
// are assigned.
type Spec struct {
	Type   Role
	Bounds geometry.Bounds
	Fill   Color
}

// Build turns the spec into a layer with the given id.
func (s Spec) Build(id string) Layer {
	return Layer{
		ID:     id,
		Type:   s.Type,
		X:      s.Bounds.X,
		Y:      s.Bounds.Y,
		Width:  s.Bounds.Width,
		Height: s.Bounds.Height,
		Fill:   s.Fill,
	}
}
