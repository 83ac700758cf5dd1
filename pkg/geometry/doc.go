// Package geometry provides the coordinate and bounds math used by the board.
//
// # Coordinates
//
// Screen coordinates come from pointer events. Canvas coordinates are screen
// coordinates with the camera offset removed (see [ToCanvasPoint]). The Y axis
// grows downward, so a [Bounds] origin is its top-left corner.
//
// # Resizing
//
// [ResizeBounds] recomputes a rectangle while one [Side] combination is being
// dragged. The opposite side stays fixed. Dragging past the fixed side mirrors
// the rectangle instead of producing a negative width or height:
//
//	b := geometry.Bounds{X: 0, Y: 0, Width: 100, Height: 100}
//	geometry.ResizeBounds(b, geometry.Right, geometry.Point{X: -20, Y: 50})
//	// => {X: -20, Y: 0, Width: 20, Height: 100}
//
// # Hit testing
//
// [Intersects] is an inclusive axis-aligned overlap test: rectangles that
// only touch on an edge intersect. [FindInRect] applies it to the rectangle
// spanned by a selection net.
package geometry
