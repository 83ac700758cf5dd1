// Package layer defines the board's data model: typed rectangular shapes
// ("layers"), their z-ordered collection and the batches of operations that
// mutate it.
//
// # Roles
//
// Every [Layer] carries a [Role]. Roles are a closed set and carry layout
// meaning: idea cards are packed by the template reflows, the other roles are
// scaffold shapes owned by one of the three templates. [Role.Template] and
// [Role.Scaffold] answer the dispatch questions from a single table.
//
// # Snapshots
//
// A [Snapshot] is the persisted document: an id→layer map plus the ordered
// id list (paint order, last id is frontmost). Snapshots are values; all
// mutation goes through [Snapshot.Apply], which returns a new snapshot and
// the inverse [Batch] used by the undo log:
//
//	next, inverse := snap.Apply(layer.Batch{
//	    layer.Update(id, layer.PositionPatch(10, 20)),
//	})
//	prev, _ := next.Apply(inverse) // back to snap
//
// Apply never fails. Operations that cannot be honored are skipped silently:
// creating past [MaxLayers], updating or deleting an id that no longer
// exists, or reordering with a list that is not a permutation of the current
// ids. This keeps batch application tolerant of concurrent deletions.
package layer
