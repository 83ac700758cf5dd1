package layer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/brainboard/pkg/errors"
)

func card(id string, x, y float64) Layer {
	return Layer{ID: id, Type: IdeaCard, X: x, Y: y, Width: 100, Height: 100, Fill: White}
}

func fullSnapshot() Snapshot {
	s := New()
	for i := range MaxLayers {
		l := card(fmt.Sprintf("l%03d", i), float64(i), 0)
		s.Layers[l.ID] = l
		s.LayerIDs = append(s.LayerIDs, l.ID)
	}
	return s
}

func TestApplyCreateRespectsMaxLayers(t *testing.T) {
	s := fullSnapshot()
	next, inverse := s.Apply(Batch{Create(card("extra", 0, 0))})

	if next.Len() != MaxLayers {
		t.Errorf("Len() = %d, want %d", next.Len(), MaxLayers)
	}
	if _, ok := next.Get("extra"); ok {
		t.Error("layer past the limit should not be created")
	}
	if len(inverse) != 0 {
		t.Errorf("inverse = %v, want empty", inverse)
	}
}

func TestApplySkipsMissingIDs(t *testing.T) {
	s := FromLayers(card("a", 0, 0))
	next, inverse := s.Apply(Batch{
		Update("ghost", PositionPatch(1, 1)),
		Delete("ghost"),
		Update("a", PositionPatch(5, 6)),
	})

	a, _ := next.Get("a")
	if a.X != 5 || a.Y != 6 {
		t.Errorf("a = (%v,%v), want (5,6)", a.X, a.Y)
	}
	if len(inverse) != 1 {
		t.Errorf("inverse has %d ops, want 1", len(inverse))
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s := FromLayers(card("a", 0, 0), card("b", 10, 0))
	before := s.Clone()

	s.Apply(Batch{
		Update("a", PositionPatch(99, 99)),
		Delete("b"),
		Create(card("c", 0, 0)),
	})

	if !reflect.DeepEqual(s, before) {
		t.Errorf("Apply mutated its receiver: %+v", s)
	}
}

func TestApplyInverseRestores(t *testing.T) {
	s := FromLayers(card("a", 0, 0), card("b", 10, 0), card("c", 20, 0))

	batch := Batch{
		Update("a", Patch{X: Ptr(50.0), Fill: &Color{R: 1}}),
		Delete("b"),
		Create(card("d", 1, 1)),
		Reorder([]string{"d", "c", "a"}),
		Update("c", Patch{Lock: Ptr(true), Value: Ptr("note")}),
	}

	next, inverse := s.Apply(batch)
	if got := next.LayerIDs; !slices.Equal(got, []string{"d", "c", "a"}) {
		t.Fatalf("LayerIDs = %v", got)
	}

	restored, redo := next.Apply(inverse)
	if !reflect.DeepEqual(restored, s) {
		t.Errorf("restored = %+v\nwant %+v", restored, s)
	}

	again, _ := restored.Apply(redo)
	if !reflect.DeepEqual(again, next) {
		t.Errorf("redo = %+v\nwant %+v", again, next)
	}
}

func TestApplyReorderRejectsNonPermutation(t *testing.T) {
	s := FromLayers(card("a", 0, 0), card("b", 0, 0))

	tests := []struct {
		name  string
		order []string
	}{
		{"missing id", []string{"a"}},
		{"unknown id", []string{"a", "x"}},
		{"duplicate", []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, inverse := s.Apply(Batch{Reorder(tt.order)})
			if !slices.Equal(next.LayerIDs, s.LayerIDs) {
				t.Errorf("LayerIDs = %v, want %v", next.LayerIDs, s.LayerIDs)
			}
			if len(inverse) != 0 {
				t.Errorf("inverse = %v, want empty", inverse)
			}
		})
	}
}

func TestApplyCreateDuplicateID(t *testing.T) {
	s := FromLayers(card("a", 0, 0))
	next, _ := s.Apply(Batch{Create(card("a", 50, 50))})
	if a, _ := next.Get("a"); a.X != 0 {
		t.Errorf("existing layer overwritten: %+v", a)
	}
}

func TestDiff(t *testing.T) {
	s := FromLayers(card("a", 0, 0), card("b", 10, 0))
	next := s.Clone()
	b := next.Layers["b"]
	b.Y = 42
	b.Width = 70
	next.Layers["b"] = b

	diff := s.Diff(next)
	if len(diff) != 1 || diff[0].ID != "b" {
		t.Fatalf("Diff() = %+v, want one update for b", diff)
	}
	p := diff[0].Patch
	if p.X != nil || p.Y == nil || *p.Y != 42 || p.Width == nil || *p.Width != 70 {
		t.Errorf("patch = %+v", p)
	}

	applied, _ := s.Apply(diff)
	if !reflect.DeepEqual(applied, next) {
		t.Errorf("applying the diff = %+v, want %+v", applied, next)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		snap func() Snapshot
		code errors.Code
	}{
		{"valid", func() Snapshot { return FromLayers(card("a", 0, 0)) }, ""},
		{"empty", New, ""},
		{"duplicate id", func() Snapshot {
			s := FromLayers(card("a", 0, 0), card("b", 0, 0))
			s.LayerIDs[1] = "a"
			return s
		}, errors.ErrCodeInvalidDocument},
		{"missing entry", func() Snapshot {
			s := FromLayers(card("a", 0, 0))
			s.LayerIDs = append(s.LayerIDs, "b")
			s.Layers["c"] = card("c", 0, 0)
			return s
		}, errors.ErrCodeInvalidDocument},
		{"too many", func() Snapshot {
			s := fullSnapshot()
			l := card("extra", 0, 0)
			s.Layers[l.ID] = l
			s.LayerIDs = append(s.LayerIDs, l.ID)
			return s
		}, errors.ErrCodeInvalidDocument},
		{"bad role", func() Snapshot {
			l := card("a", 0, 0)
			l.Type = 7
			return FromLayers(l)
		}, errors.ErrCodeInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap().Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSnapshotJSON(t *testing.T) {
	doc := `{
		"layers": {
			"a": {"type": 1, "x": 1, "y": 2, "width": 3, "height": 4, "fill": {"r": 1, "g": 2, "b": 3}, "lock": false, "hide": false},
			"b": {"type": 19, "x": 0, "y": 0, "width": 700, "height": 150, "fill": {"r": 0, "g": 0, "b": 0}, "lock": true, "hide": false, "value": "ideas"}
		},
		"layerIds": ["b", "a"]
	}`

	var s Snapshot
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a := s.Layers["a"]; a.ID != "a" || a.Fill != (Color{R: 1, G: 2, B: 3}) {
		t.Errorf("a = %+v", a)
	}
	if b := s.Layers["b"]; b.Type != CombinaisonBank || !b.Lock || b.Value != "ideas" {
		t.Errorf("b = %+v", b)
	}

	bad := `{"layers": {"a": {"type": 3}}, "layerIds": ["a"]}`
	var s2 Snapshot
	err := json.Unmarshal([]byte(bad), &s2)
	if !errors.Is(err, errors.ErrCodeInvalidRole) {
		t.Errorf("Unmarshal(bad role) = %v, want INVALID_ROLE", err)
	}
}

func TestFrontmostAndCount(t *testing.T) {
	bank1 := Layer{ID: "bank1", Type: CombinaisonBank}
	bank2 := Layer{ID: "bank2", Type: CombinaisonBank}
	s := FromLayers(bank1, card("a", 0, 0), bank2)

	got, ok := s.Frontmost(CombinaisonBank)
	if !ok || got.ID != "bank2" {
		t.Errorf("Frontmost() = %v, %v; want bank2", got.ID, ok)
	}
	if _, ok := s.Frontmost(MoscowLabel); ok {
		t.Error("Frontmost(MoscowLabel) found a layer in a board without one")
	}
	if n := s.Count(CombinaisonBank); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}

	delete(s.Layers, "bank2")
	if got, _ := s.Frontmost(CombinaisonBank); got.ID != "bank1" {
		t.Errorf("Frontmost() with dangling id = %v, want bank1", got.ID)
	}
}
