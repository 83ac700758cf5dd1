package geometry

const (
	zoomStep = 0.2
	minScale = 0.2
)

// Camera is the viewport offset and zoom owned by the surrounding UI.
type Camera struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// NewCamera returns a camera at the origin with unit scale.
func NewCamera() Camera { return Camera{Scale: 1} }

// Pan moves the camera against a wheel delta.
func (c Camera) Pan(dx, dy float64) Camera {
	c.X -= dx
	c.Y -= dy
	return c
}

// ZoomIn increases the scale by one step.
func (c Camera) ZoomIn() Camera {
	c.Scale += zoomStep
	return c
}

// ZoomOut decreases the scale by one step, never below the minimum scale.
func (c Camera) ZoomOut() Camera {
	c.Scale -= zoomStep
	if c.Scale < minScale {
		c.Scale = minScale
	}
	return c
}
