package interaction_test

import (
	"context"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brainboard/pkg/board"
	"github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/interaction"
	"github.com/matzehuels/brainboard/pkg/layer"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

var ctx = context.Background()

func pt(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

func setup() (*board.Board, *interaction.Machine) {
	snap := layer.FromLayers(
		layer.Layer{ID: "a", Type: layer.IdeaCard, X: 0, Y: 0, Width: 100, Height: 100},
		layer.Layer{ID: "b", Type: layer.IdeaCard, X: 200, Y: 0, Width: 100, Height: 100},
		layer.Layer{ID: "locked", Type: layer.IdeaCard, X: 0, Y: 300, Width: 100, Height: 100, Lock: true},
	)
	b := board.New("test", snap, board.WithLogger(log.New(discard{})))
	return b, interaction.New(b, "ana")
}

func mustLayer(t *testing.T, b *board.Board, id string) layer.Layer {
	t.Helper()
	l, ok := b.Snapshot().Get(id)
	if !ok {
		t.Fatalf("layer %q missing", id)
	}
	return l
}

func TestPressBecomesSelectionNet(t *testing.T) {
	b, m := setup()
	m.PointerDown(pt(0, 0))
	if got := m.State(); got.Mode != interaction.Pressing || got.Origin != pt(0, 0) {
		t.Fatalf("state = %+v, want Pressing at origin", got)
	}

	if err := m.PointerMove(ctx, pt(3, 2)); err != nil {
		t.Fatal(err)
	}
	if m.State().Mode != interaction.Pressing {
		t.Fatalf("moved 5, state = %v, want pressing", m.State().Mode)
	}

	if err := m.PointerMove(ctx, pt(4, 2)); err != nil {
		t.Fatal(err)
	}
	if m.State().Mode != interaction.SelectionNet {
		t.Fatalf("moved 6, state = %v, want selection-net", m.State().Mode)
	}

	if err := m.PointerMove(ctx, pt(150, 50)); err != nil {
		t.Fatal(err)
	}
	if got := b.Selection("ana"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("selection = %v, want [a]", got)
	}
	if err := m.PointerMove(ctx, pt(250, 350)); err != nil {
		t.Fatal(err)
	}
	if got := b.Selection("ana"); !slices.Equal(got, []string{"a", "b", "locked"}) {
		t.Errorf("selection = %v, want all", got)
	}
	if b.CanUndo("ana") {
		t.Error("selection net recorded history")
	}

	if err := m.PointerUp(ctx, pt(250, 350)); err != nil {
		t.Fatal(err)
	}
	if m.State().Mode != interaction.None {
		t.Errorf("state after up = %v", m.State().Mode)
	}
	if len(b.Selection("ana")) != 3 {
		t.Error("pointer-up after a net cleared the selection")
	}
}

func TestClickClearsSelection(t *testing.T) {
	b, m := setup()
	if err := b.SetSelection(ctx, "ana", []string{"a"}, false); err != nil {
		t.Fatal(err)
	}
	m.PointerDown(pt(500, 500))
	if err := m.PointerUp(ctx, pt(500, 500)); err != nil {
		t.Fatal(err)
	}
	if len(b.Selection("ana")) != 0 {
		t.Errorf("selection = %v, want empty", b.Selection("ana"))
	}
	if _, err := b.Undo(ctx, "ana"); err != nil {
		t.Fatal(err)
	}
	if got := b.Selection("ana"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("undo restored %v, want [a]", got)
	}
}

func TestDragIsOneUndoStep(t *testing.T) {
	b, m := setup()
	if err := m.LayerPointerDown(ctx, "a", pt(10, 10)); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got.Mode != interaction.Translating || got.Current != pt(10, 10) {
		t.Fatalf("state = %+v", got)
	}
	if got := b.Selection("ana"); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("selection = %v", got)
	}

	for _, p := range []geometry.Point{pt(20, 10), pt(25, 12), pt(30, 15)} {
		if err := m.PointerMove(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	if l := mustLayer(t, b, "a"); l.X != 20 || l.Y != 5 {
		t.Errorf("a at (%v,%v), want (20,5)", l.X, l.Y)
	}
	if err := m.PointerUp(ctx, pt(30, 15)); err != nil {
		t.Fatal(err)
	}

	if ok, err := b.Undo(ctx, "ana"); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if l := mustLayer(t, b, "a"); l.X != 0 || l.Y != 0 {
		t.Errorf("after undo a at (%v,%v), want (0,0)", l.X, l.Y)
	}
	if len(b.Selection("ana")) != 0 {
		t.Errorf("after undo selection = %v, want empty", b.Selection("ana"))
	}
	if b.CanUndo("ana") {
		t.Error("drag left more than one undo step")
	}
}

func TestDragSkipsLockedLayers(t *testing.T) {
	b, m := setup()
	if err := m.LayerPointerDown(ctx, "locked", pt(50, 350)); err != nil {
		t.Fatal(err)
	}
	if err := m.PointerMove(ctx, pt(90, 390)); err != nil {
		t.Fatal(err)
	}
	if l := mustLayer(t, b, "locked"); l.X != 0 || l.Y != 300 {
		t.Errorf("locked layer moved to (%v,%v)", l.X, l.Y)
	}
}

func TestResize(t *testing.T) {
	b, m := setup()
	if err := b.SetSelection(ctx, "ana", []string{"a", "b"}, false); err != nil {
		t.Fatal(err)
	}
	m.ResizeHandlePointerDown(geometry.BottomRight, mustLayer(t, b, "a").Bounds())

	if err := m.PointerMove(ctx, pt(150, 170)); err != nil {
		t.Fatal(err)
	}
	if got := mustLayer(t, b, "a").Bounds(); got != (geometry.Bounds{X: 0, Y: 0, Width: 150, Height: 170}) {
		t.Errorf("bounds = %+v", got)
	}
	if err := m.PointerMove(ctx, pt(-50, 50)); err != nil {
		t.Fatal(err)
	}
	if got := mustLayer(t, b, "a").Bounds(); got != (geometry.Bounds{X: -50, Y: 0, Width: 50, Height: 50}) {
		t.Errorf("mirrored bounds = %+v", got)
	}
	if got := mustLayer(t, b, "b").Bounds(); got != (geometry.Bounds{X: 200, Y: 0, Width: 100, Height: 100}) {
		t.Errorf("second selected layer resized to %+v", got)
	}

	if err := m.PointerUp(ctx, pt(-50, 50)); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Undo(ctx, "ana"); err != nil {
		t.Fatal(err)
	}
	if got := mustLayer(t, b, "a").Bounds(); got != (geometry.Bounds{X: 0, Y: 0, Width: 100, Height: 100}) {
		t.Errorf("after undo bounds = %+v", got)
	}
}

func TestInserting(t *testing.T) {
	b, m := setup()
	green := layer.Color{G: 200}
	b.SetLastFill(green)

	if err := m.StartInserting(layer.IdeaCard); err != nil {
		t.Fatal(err)
	}
	m.PointerDown(pt(50, 60))
	if err := m.LayerPointerDown(ctx, "a", pt(50, 60)); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got.Mode != interaction.Inserting || got.Role != layer.IdeaCard {
		t.Fatalf("state = %+v, want still inserting", got)
	}

	if err := b.SetSelection(ctx, "ana", []string{"a"}, false); err != nil {
		t.Fatal(err)
	}
	if err := m.Handle(ctx, interaction.PointerEvent{Kind: interaction.EventResizeDown, Corner: geometry.BottomRight}); err != nil {
		t.Fatal(err)
	}
	m.ResizeHandlePointerDown(geometry.TopLeft, mustLayer(t, b, "a").Bounds())
	if got := m.State(); got.Mode != interaction.Inserting || got.Role != layer.IdeaCard {
		t.Fatalf("state after resize-down = %+v, want still inserting", got)
	}
	if err := m.PointerMove(ctx, pt(300, 300)); err != nil {
		t.Fatal(err)
	}
	if got := mustLayer(t, b, "a").Bounds(); got != (geometry.Bounds{Width: 100, Height: 100}) {
		t.Errorf("layer a resized while inserting: %+v", got)
	}

	if err := m.PointerUp(ctx, pt(500, 600)); err != nil {
		t.Fatal(err)
	}
	if m.State().Mode != interaction.None {
		t.Errorf("state after insert = %v", m.State().Mode)
	}
	sel := b.Selection("ana")
	if len(sel) != 1 {
		t.Fatalf("selection = %v, want the new layer", sel)
	}
	l := mustLayer(t, b, sel[0])
	want := geometry.Bounds{X: 500, Y: 600, Width: 100, Height: 100}
	if l.Bounds() != want || l.Fill != green || l.Type != layer.IdeaCard {
		t.Errorf("inserted %+v", l)
	}

	if err := m.StartInserting(layer.Role(2)); !errors.Is(err, errors.ErrCodeInvalidRole) {
		t.Errorf("StartInserting(2) error = %v", err)
	}
}

func TestCameraAndCursor(t *testing.T) {
	b, m := setup()
	m.Wheel(10, 20)
	if got := m.Camera(); got.X != -10 || got.Y != -20 {
		t.Fatalf("camera = %+v, want (-10,-20)", got)
	}
	m.PointerDown(pt(0, 0))
	if got := m.State().Origin; got != pt(10, 20) {
		t.Errorf("origin = %+v, want (10,20)", got)
	}

	if err := m.PointerMove(ctx, pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	if c := b.Presence("ana").Cursor; c == nil || *c != pt(11, 21) {
		t.Errorf("cursor = %v, want (11,21)", c)
	}
	m.PointerLeave()
	if b.Presence("ana").Cursor != nil {
		t.Error("cursor not cleared on leave")
	}

	m.ZoomOut()
	m.ZoomOut()
	m.ZoomOut()
	m.ZoomOut()
	m.ZoomOut()
	if s := m.Camera().Scale; s < 0.2 || s > 0.2000001 {
		t.Errorf("scale = %v, want clamped at 0.2", s)
	}
}

func TestHandle(t *testing.T) {
	b, m := setup()
	events := []interaction.PointerEvent{
		{Kind: interaction.EventLayerDown, LayerID: "b", X: 210, Y: 10},
		{Kind: interaction.EventUp, X: 210, Y: 10},
		{Kind: interaction.EventResizeDown, Corner: geometry.TopLeft},
		{Kind: interaction.EventMove, X: 180, Y: -20},
		{Kind: interaction.EventUp, X: 180, Y: -20},
	}
	for _, ev := range events {
		if err := m.Handle(ctx, ev); err != nil {
			t.Fatalf("Handle(%+v): %v", ev, err)
		}
	}
	want := geometry.Bounds{X: 180, Y: -20, Width: 120, Height: 120}
	if got := mustLayer(t, b, "b").Bounds(); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}

	tests := []struct {
		name string
		ev   interaction.PointerEvent
		code errors.Code
	}{
		{"unknown kind", interaction.PointerEvent{Kind: "tap"}, errors.ErrCodeInvalidInput},
		{"bad corner", interaction.PointerEvent{Kind: interaction.EventResizeDown, Corner: 64}, errors.ErrCodeInvalidInput},
		{"bad role", interaction.PointerEvent{Kind: interaction.EventInsert, Role: 7}, errors.ErrCodeInvalidRole},
	}
	if err := b.SetSelection(ctx, "ana", []string{"b"}, false); err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := m.Handle(ctx, tt.ev); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	tests := map[interaction.Mode]string{
		interaction.None:         "none",
		interaction.SelectionNet: "selection-net",
		interaction.Inserting:    "inserting",
		interaction.Mode(42):     "unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(m), got, want)
		}
	}
}
