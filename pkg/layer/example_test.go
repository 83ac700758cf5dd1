package layer_test

import (
	"fmt"

	"github.com/matzehuels/brainboard/pkg/layer"
)

func ExampleSnapshot_Apply() {
	s := layer.FromLayers(layer.Layer{ID: "a", Type: layer.IdeaCard, Width: 100, Height: 100})

	next, undo := s.Apply(layer.Batch{layer.Update("a", layer.PositionPatch(40, 25))})
	a, _ := next.Get("a")
	fmt.Printf("moved: (%.0f,%.0f)\n", a.X, a.Y)

	// The inverse batch restores the previous document
	restored, _ := next.Apply(undo)
	a, _ = restored.Get("a")
	fmt.Printf("undone: (%.0f,%.0f)\n", a.X, a.Y)
	// Output:
	// moved: (40,25)
	// undone: (0,0)
}

func ExampleParseRole() {
	r, _ := layer.ParseRole("19")
	fmt.Println(r, r.Template(), r.Scaffold())
	// Output: combinaison-bank combinaison true
}
