// Package pkg provides the core libraries for Brainboard collaborative
// brainstorming boards.
//
// # Overview
//
// A board is a document of rectangular layers (idea cards and template
// scaffold shapes) that several users edit at once. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [layer], [geometry], [selection], [interaction],
//     [template] and [history]
//  2. Shared state: [board] applies batches atomically and keeps presence
//     and undo history per user
//  3. Infrastructure: [store] backends, [observability] hooks, [api] and
//     [errors]
//
// # Architecture
//
// The flow of a pointer gesture:
//
//	PointerEvent
//	     ↓
//	[interaction] Machine (decide the action)
//	     ↓
//	[geometry] (hit-test, resize bounds)
//	     ↓
//	[selection] / [template] (build a layer.Batch)
//	     ↓
//	[board] (apply, record undo, persist to [store])
//
// # Quick Start
//
//	st := store.NewMemory()
//	reg := board.NewRegistry(st, log.Default())
//	defer reg.Close()
//
//	b, _ := reg.Open(ctx, "workshop")
//	b.Generate(ctx, "alice", "combinaison")
//
//	m := interaction.New(b, "alice")
//	m.Handle(ctx, interaction.PointerEvent{Kind: interaction.EventDown, X: 10, Y: 10})
//	m.Handle(ctx, interaction.PointerEvent{Kind: interaction.EventMove, X: 400, Y: 300})
//	m.Handle(ctx, interaction.PointerEvent{Kind: interaction.EventUp, X: 400, Y: 300})
//
//	b.Undo(ctx, "alice")
//
// # Testing
//
//	go test ./pkg/...
//	BRAINBOARD_REDIS_ADDR=localhost:6379 go test ./pkg/store/redis
//
// [layer]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/layer
// [geometry]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/geometry
// [selection]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/selection
// [interaction]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/interaction
// [template]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/template
// [history]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/history
// [board]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/board
// [store]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/observability
// [api]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/brainboard/pkg/errors
package pkg
