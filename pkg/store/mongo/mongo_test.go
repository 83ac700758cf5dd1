package mongo

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"

	brainerrors "github.com/matzehuels/brainboard/pkg/errors"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/store"
)

func sample() layer.Snapshot {
	return layer.FromLayers(
		layer.Layer{ID: "q", Type: layer.MoscowQuadrants, X: 60, Y: 100, Width: 1000, Height: 500, Fill: layer.Color{R: 9, G: 8, B: 7}},
		layer.Layer{ID: "a", Type: layer.IdeaCard, X: 1, Y: 2, Width: 70, Height: 70, Lock: true, Value: "ship it"},
	)
}

func TestDocumentRoundTrip(t *testing.T) {
	snap := sample()
	got, err := toDocument("b1", snap).snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("got %+v\nwant %+v", got, snap)
	}
}

func TestDocumentValidation(t *testing.T) {
	doc := toDocument("b1", sample())
	r := doc.Layers["a"]
	r.Type = 3
	doc.Layers["a"] = r
	if _, err := doc.snapshot(); !brainerrors.Is(err, brainerrors.ErrCodeInvalidRole) {
		t.Errorf("snapshot() = %v, want INVALID_ROLE", err)
	}
}

// Set BRAINBOARD_MONGO_URI (e.g. mongodb://localhost:27017) to run against a server.
func TestStore(t *testing.T) {
	uri := os.Getenv("BRAINBOARD_MONGO_URI")
	if uri == "" {
		t.Skip("BRAINBOARD_MONGO_URI not set")
	}
	ctx := context.Background()
	db := "brainboard_test_" + uuid.NewString()[:8]
	s, err := New(ctx, Config{URI: uri, Database: db})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = s.coll.Database().Drop(context.Background())
		_ = s.Close()
	})

	if _, err := s.Load(ctx, "b1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Load(missing) = %v", err)
	}
	if err := s.Save(ctx, "b1", sample()); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, sample()) {
		t.Errorf("loaded %+v", got)
	}
	ids, _ := s.List(ctx)
	if len(ids) != 1 || ids[0] != "b1" {
		t.Errorf("List() = %v", ids)
	}
	if err := s.Delete(ctx, "b1"); err != nil {
		t.Fatal(err)
	}
}
