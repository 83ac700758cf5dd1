package interaction

import (
	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

// Mode is the pointer gesture in progress.
type Mode int

const (
	// None means no gesture is in progress.
	None Mode = iota
	// Pressing means the pointer went down on the canvas and has not moved far.
	Pressing
	// SelectionNet means a rubber-band selection is being dragged.
	SelectionNet
	// Translating means the selection is being dragged.
	Translating
	// Resizing means a resize handle is being dragged.
	Resizing
	// Inserting means the next pointer-up creates a layer.
	Inserting
)

var modeNames = [...]string{"none", "pressing", "selection-net", "translating", "resizing", "inserting"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown mode %q", text)
}

// State is the machine's current mode and the data that mode carries.
// Fields a mode does not use are zero.
type State struct {
	Mode    Mode            `json:"mode"`
	Origin  geometry.Point  `json:"origin"`           // Pressing, SelectionNet
	Current geometry.Point  `json:"current"`          // SelectionNet, Translating
	Initial geometry.Bounds `json:"initial"`          // Resizing
	Corner  geometry.Side   `json:"corner,omitempty"` // Resizing
	Role    layer.Role      `json:"role,omitempty"`   // Inserting
}

// EventKind identifies a pointer event.
type EventKind string

const (
	EventDown       EventKind = "down"
	EventMove       EventKind = "move"
	EventUp         EventKind = "up"
	EventLeave      EventKind = "leave"
	EventWheel      EventKind = "wheel"
	EventLayerDown  EventKind = "layer-down"
	EventResizeDown EventKind = "resize-down"
	EventInsert     EventKind = "insert"
)

// PointerEvent is one input from a user's pointer. X and Y are screen
// coordinates; the machine's camera converts them to canvas space.
type PointerEvent struct {
	Kind   EventKind `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	DeltaX float64   `json:"deltaX,omitempty"`
	DeltaY float64   `json:"deltaY,omitempty"`

	LayerID string        `json:"layerId,omitempty"` // layer-down
	Corner  geometry.Side `json:"corner,omitempty"`  // resize-down
	Role    layer.Role    `json:"role,omitempty"`    // insert
}

func (e PointerEvent) point() geometry.Point { return geometry.Point{X: e.X, Y: e.Y} }
