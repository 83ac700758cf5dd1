package selection

import (
	"slices"
	"testing"

	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
)

func board() layer.Snapshot {
	return layer.FromLayers(
		layer.Layer{ID: "a", Type: layer.IdeaCard, X: 10, Y: 20, Width: 100, Height: 100},
		layer.Layer{ID: "b", Type: layer.IdeaCard, X: 300, Y: 20, Width: 100, Height: 100},
		layer.Layer{ID: "locked", Type: layer.IdeaCard, X: 0, Y: 400, Width: 100, Height: 100, Lock: true},
		layer.Layer{ID: "hidden", Type: layer.CombinaisonPanel, X: 500, Y: 400, Width: 350, Height: 305, Hide: true},
		layer.Layer{ID: "c", Type: layer.IdeaCard, X: -50, Y: -50, Width: 10, Height: 10},
	)
}

func TestTranslate(t *testing.T) {
	deltas := []geometry.Point{{X: 0, Y: 0}, {X: 15, Y: -7}, {X: -300.5, Y: 12.25}}
	selections := [][]string{
		nil,
		{"a"},
		{"b", "a"},
		{"a", "gone", "c"},
		{"locked", "hidden", "b"},
	}

	for _, d := range deltas {
		for _, sel := range selections {
			s := board()
			next, _ := s.Apply(Translate(s, sel, d))
			for _, before := range s.Ordered() {
				after, _ := next.Get(before.ID)
				moved := slices.Contains(sel, before.ID) && before.Editable()
				want := before
				if moved {
					want.X += d.X
					want.Y += d.Y
				}
				if after != want {
					t.Errorf("delta %v selection %v: %s = %+v, want %+v", d, sel, before.ID, after, want)
				}
			}
		}
	}
}

func TestResize(t *testing.T) {
	target := geometry.Bounds{X: 1, Y: 2, Width: 30, Height: 40}

	tests := []struct {
		name    string
		sel     []string
		changed string
	}{
		{"first only", []string{"b", "a"}, "b"},
		{"single", []string{"a"}, "a"},
		{"empty", nil, ""},
		{"first missing", []string{"gone", "a"}, ""},
		{"first locked", []string{"locked", "a"}, ""},
		{"first hidden", []string{"hidden"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := board()
			next, _ := s.Apply(Resize(s, tt.sel, target))
			for _, before := range s.Ordered() {
				after, _ := next.Get(before.ID)
				if before.ID == tt.changed {
					if after.Bounds() != target {
						t.Errorf("%s bounds = %+v, want %+v", before.ID, after.Bounds(), target)
					}
					continue
				}
				if after != before {
					t.Errorf("%s changed: %+v", before.ID, after)
				}
			}
		})
	}
}

func TestPatchAndRemove(t *testing.T) {
	s := board()
	fill := layer.Color{R: 1, G: 2, B: 3}

	next, _ := s.Apply(Patch(s, []string{"a", "gone", "locked"}, layer.Patch{Fill: &fill}))
	for _, id := range []string{"a", "locked"} {
		if l, _ := next.Get(id); l.Fill != fill {
			t.Errorf("%s fill = %v", id, l.Fill)
		}
	}

	next, _ = s.Apply(Remove(s, []string{"gone", "b"}))
	if _, ok := next.Get("b"); ok || next.Len() != s.Len()-1 {
		t.Errorf("Remove left %d layers", next.Len())
	}
}

func TestRaise(t *testing.T) {
	s := board()
	tests := []struct {
		name  string
		ids   []string
		front bool
		want  []string
		ok    bool
	}{
		{"to front", []string{"b", "a"}, true, []string{"locked", "hidden", "c", "a", "b"}, true},
		{"to back", []string{"c"}, false, []string{"c", "a", "b", "locked", "hidden"}, true},
		{"already front", []string{"c"}, true, nil, false},
		{"nothing", []string{"gone"}, true, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Raise(s, tt.ids, tt.front)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !slices.Equal(op.Order, tt.want) {
				t.Errorf("order = %v, want %v", op.Order, tt.want)
			}
		})
	}
}
