package layer

import "github.com/matzehuels/brainboard/pkg/geometry"

// Patch is a partial layer update. Nil fields are left unchanged.
type Patch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Fill   *Color   `json:"fill,omitempty"`
	Lock   *bool    `json:"lock,omitempty"`
	Hide   *bool    `json:"hide,omitempty"`
	Value  *string  `json:"value,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// PositionPatch sets x and y.
func PositionPatch(x, y float64) Patch {
	return Patch{X: Ptr(x), Y: Ptr(y)}
}

// BoundsPatch sets position and size.
func BoundsPatch(b geometry.Bounds) Patch {
	return Patch{X: Ptr(b.X), Y: Ptr(b.Y), Width: Ptr(b.Width), Height: Ptr(b.Height)}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Fill == nil && p.Lock == nil && p.Hide == nil && p.Value == nil
}

// ApplyTo returns l with the patch's fields written.
func (p Patch) ApplyTo(l Layer) Layer {
	if p.X != nil {
		l.X = *p.X
	}
	if p.Y != nil {
		l.Y = *p.Y
	}
	if p.Width != nil {
		l.Width = *p.Width
	}
	if p.Height != nil {
		l.Height = *p.Height
	}
	if p.Fill != nil {
		l.Fill = *p.Fill
	}
	if p.Lock != nil {
		l.Lock = *p.Lock
	}
	if p.Hide != nil {
		l.Hide = *p.Hide
	}
	if p.Value != nil {
		l.Value = *p.Value
	}
	return l
}

// Revert returns the patch that restores the fields p touches to their
// values in l.
func (p Patch) Revert(l Layer) Patch {
	var r Patch
	if p.X != nil {
		r.X = Ptr(l.X)
	}
	if p.Y != nil {
		r.Y = Ptr(l.Y)
	}
	if p.Width != nil {
		r.Width = Ptr(l.Width)
	}
	if p.Height != nil {
		r.Height = Ptr(l.Height)
	}
	if p.Fill != nil {
		r.Fill = Ptr(l.Fill)
	}
	if p.Lock != nil {
		r.Lock = Ptr(l.Lock)
	}
	if p.Hide != nil {
		r.Hide = Ptr(l.Hide)
	}
	if p.Value != nil {
		r.Value = Ptr(l.Value)
	}
	return r
}

// diffPatch returns the patch turning a into b.
func diffPatch(a, b Layer) Patch {
	var p Patch
	if a.X != b.X {
		p.X = Ptr(b.X)
	}
	if a.Y != b.Y {
		p.Y = Ptr(b.Y)
	}
	if a.Width != b.Width {
		p.Width = Ptr(b.Width)
	}
	if a.Height != b.Height {
		p.Height = Ptr(b.Height)
	}
	if a.Fill != b.Fill {
		p.Fill = Ptr(b.Fill)
	}
	if a.Lock != b.Lock {
		p.Lock = Ptr(b.Lock)
	}
	if a.Hide != b.Hide {
		p.Hide = Ptr(b.Hide)
	}
	if a.Value != b.Value {
		p.Value = Ptr(b.Value)
	}
	return p
}
