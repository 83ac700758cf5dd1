// Package interaction turns a user's pointer events into board edits.
//
// A [Machine] tracks one user's gesture as a [State] and decides, event by
// event, whether to start a rubber-band selection, drag the selection,
// resize a layer or insert a new one. It brackets drags and resizes with
// the user's history so that a whole gesture is one undo step:
//
//	down on layer → pause history, Translating
//	move          → translate selection by the pointer delta
//	up            → resume history, None
//
// Coordinates in events are screen coordinates. The machine owns the
// user's [geometry.Camera] and converts them to canvas space.
package interaction

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/selection"
)

// pressThreshold is the Manhattan distance a press must travel before it
// becomes a selection net.
const pressThreshold = 5

// Surface is the shared board a machine edits.
type Surface interface {
	selection.Board
	Snapshot() layer.Snapshot
	SetCursor(user string, p *geometry.Point)
	Pause(user string)
	Resume(user string)
	Insert(ctx context.Context, user string, role layer.Role, p geometry.Point) (string, error)
}

// Machine is one user's pointer state machine. It is safe for concurrent
// use, but events are expected in order.
type Machine struct {
	surface Surface
	sel     *selection.Manager
	user    string

	mu     sync.Mutex
	state  State
	camera geometry.Camera
}

// New returns a machine for user on surface, idle and with a unit camera.
func New(surface Surface, user string) *Machine {
	return &Machine{
		surface: surface,
		sel:     selection.NewManager(surface, user),
		user:    user,
		camera:  geometry.NewCamera(),
	}
}

// User returns the user the machine acts for.
func (m *Machine) User() string { return m.user }

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Camera returns the current camera.
func (m *Machine) Camera() geometry.Camera {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.camera
}

// ZoomIn zooms the camera in one step.
func (m *Machine) ZoomIn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera = m.camera.ZoomIn()
}

// ZoomOut zooms the camera out one step.
func (m *Machine) ZoomOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera = m.camera.ZoomOut()
}

// Handle dispatches ev to the matching pointer handler.
func (m *Machine) Handle(ctx context.Context, ev PointerEvent) error {
	switch ev.Kind {
	case EventDown:
		m.PointerDown(ev.point())
	case EventMove:
		return m.PointerMove(ctx, ev.point())
	case EventUp:
		return m.PointerUp(ctx, ev.point())
	case EventLeave:
		m.PointerLeave()
	case EventWheel:
		m.Wheel(ev.DeltaX, ev.DeltaY)
	case EventLayerDown:
		return m.LayerPointerDown(ctx, ev.LayerID, ev.point())
	case EventResizeDown:
		return m.resizeSelected(ev.Corner)
	case EventInsert:
		return m.StartInserting(ev.Role)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown event kind %q", ev.Kind)
	}
	return nil
}

// StartInserting arms the machine to create a layer of role on the next
// pointer-up.
func (m *Machine) StartInserting(role layer.Role) error {
	if !role.Valid() {
		return errors.New(errors.ErrCodeInvalidRole, "unknown role %d", role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Mode: Inserting, Role: role}
	return nil
}

// PointerDown handles a press on empty canvas.
func (m *Machine) PointerDown(screen geometry.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Mode == Inserting {
		return
	}
	m.state = State{Mode: Pressing, Origin: geometry.ToCanvasPoint(screen, m.camera)}
}

// LayerPointerDown handles a press on a layer: the layer joins the
// selection if it is not already in it and dragging starts.
func (m *Machine) LayerPointerDown(ctx context.Context, id string, screen geometry.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Mode == Inserting {
		return nil
	}
	m.surface.Pause(m.user)
	if !slices.Contains(m.sel.Selected(), id) {
		if err := m.sel.Select(ctx, []string{id}, true); err != nil {
			return err
		}
	}
	m.state = State{Mode: Translating, Current: geometry.ToCanvasPoint(screen, m.camera)}
	return nil
}

// ResizeHandlePointerDown starts resizing from initial by dragging corner.
// It is ignored while inserting.
func (m *Machine) ResizeHandlePointerDown(corner geometry.Side, initial geometry.Bounds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Mode == Inserting {
		return
	}
	m.surface.Pause(m.user)
	m.state = State{Mode: Resizing, Initial: initial, Corner: corner}
}

// resizeSelected starts a resize of the first selected layer.
func (m *Machine) resizeSelected(corner geometry.Side) error {
	ids := m.sel.Selected()
	if len(ids) == 0 {
		return nil
	}
	l, ok := m.surface.Snapshot().Get(ids[0])
	if !ok {
		return nil
	}
	if corner == 0 || corner&^(geometry.TopLeft|geometry.BottomRight) != 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid resize corner %d", corner)
	}
	m.ResizeHandlePointerDown(corner, l.Bounds())
	return nil
}

// PointerMove advances the current gesture and publishes the cursor.
func (m *Machine) PointerMove(ctx context.Context, screen geometry.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := geometry.ToCanvasPoint(screen, m.camera)
	err := m.move(ctx, p)
	m.surface.SetCursor(m.user, &p)
	return err
}

func (m *Machine) move(ctx context.Context, p geometry.Point) error {
	switch m.state.Mode {
	case Pressing:
		if p.Manhattan(m.state.Origin) > pressThreshold {
			m.state = State{Mode: SelectionNet, Origin: m.state.Origin, Current: p}
		}
	case SelectionNet:
		m.state.Current = p
		snap := m.surface.Snapshot()
		ids := geometry.FindInRect(snap.LayerIDs, snap.Layers, m.state.Origin, p)
		return m.sel.Select(ctx, ids, false)
	case Translating:
		delta := p.Sub(m.state.Current)
		m.state.Current = p
		return m.sel.Translate(ctx, delta)
	case Resizing:
		return m.sel.Resize(ctx, geometry.ResizeBounds(m.state.Initial, m.state.Corner, p))
	}
	return nil
}

// PointerUp ends the current gesture and resumes history.
func (m *Machine) PointerUp(ctx context.Context, screen geometry.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.surface.Resume(m.user)

	p := geometry.ToCanvasPoint(screen, m.camera)
	prev := m.state
	m.state = State{Mode: None}
	switch prev.Mode {
	case None, Pressing:
		return m.sel.Unselect(ctx)
	case Inserting:
		_, err := m.surface.Insert(ctx, m.user, prev.Role, p)
		return err
	}
	return nil
}

// PointerLeave hides the user's cursor.
func (m *Machine) PointerLeave() {
	m.surface.SetCursor(m.user, nil)
}

// Wheel pans the camera against the wheel delta.
func (m *Machine) Wheel(dx, dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera = m.camera.Pan(dx, dy)
}
