package geometry

import "math"

// Point is a position in screen or canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Manhattan returns the taxicab distance between p and q.
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Bounds is an axis-aligned rectangle. X, Y is the top-left corner.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.Height }

// Translate returns b moved by d.
func (b Bounds) Translate(d Point) Bounds {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}

// Side identifies the edges being dragged during a resize. Corners are the
// bitwise union of two sides.
type Side uint8

const (
	Top    Side = 1
	Bottom Side = 2
	Left   Side = 4
	Right  Side = 8

	TopLeft     = Top | Left
	TopRight    = Top | Right
	BottomLeft  = Bottom | Left
	BottomRight = Bottom | Right
)

// Opposite returns the side combination diagonally opposite to s.
func (s Side) Opposite() Side {
	var o Side
	if s&Top != 0 {
		o |= Bottom
	}
	if s&Bottom != 0 {
		o |= Top
	}
	if s&Left != 0 {
		o |= Right
	}
	if s&Right != 0 {
		o |= Left
	}
	return o
}

// Corner returns the point of b touched by the sides in s. For a single edge
// the missing axis uses the origin coordinate.
func (s Side) Corner(b Bounds) Point {
	p := Point{X: b.X, Y: b.Y}
	if s&Right != 0 {
		p.X = b.Right()
	}
	if s&Bottom != 0 {
		p.Y = b.Bottom()
	}
	return p
}

// ToCanvasPoint converts a screen position into canvas space by removing the
// camera offset. Zoom is applied by the presentation layer only.
func ToCanvasPoint(screen Point, cam Camera) Point {
	return Point{X: screen.X - cam.X, Y: screen.Y - cam.Y}
}

// ResizeBounds returns the bounds produced by dragging the sides in corner of
// initial to p. Sides not in corner keep their initial position. When p
// crosses the fixed side the rectangle mirrors, so Width and Height are never
// negative.
func ResizeBounds(initial Bounds, corner Side, p Point) Bounds {
	out := initial
	if corner&Left != 0 {
		out.X = math.Min(p.X, initial.Right())
		out.Width = math.Abs(initial.Right() - p.X)
	}
	if corner&Right != 0 {
		out.X = math.Min(p.X, initial.X)
		out.Width = math.Abs(p.X - initial.X)
	}
	if corner&Top != 0 {
		out.Y = math.Min(p.Y, initial.Bottom())
		out.Height = math.Abs(initial.Bottom() - p.Y)
	}
	if corner&Bottom != 0 {
		out.Y = math.Min(p.Y, initial.Y)
		out.Height = math.Abs(p.Y - initial.Y)
	}
	return out
}

// RectFromPoints returns the normalized rectangle spanned by a and b.
func RectFromPoints(a, b Point) Bounds {
	return Bounds{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Intersects reports whether a and b overlap. Shared edges count as overlap.
func Intersects(a, b Bounds) bool {
	return a.X <= b.Right() && b.X <= a.Right() &&
		a.Y <= b.Bottom() && b.Y <= a.Bottom()
}

// Boxed is implemented by anything with rectangular bounds.
type Boxed interface {
	Bounds() Bounds
}

// FindInRect returns the ids whose item overlaps the rectangle spanned by
// origin and current. Results keep the order of ids; ids without an entry in
// items are skipped.
func FindInRect[T Boxed](ids []string, items map[string]T, origin, current Point) []string {
	net := RectFromPoints(origin, current)
	var found []string
	for _, id := range ids {
		item, ok := items[id]
		if !ok {
			continue
		}
		if Intersects(net, item.Bounds()) {
			found = append(found, id)
		}
	}
	return found
}
