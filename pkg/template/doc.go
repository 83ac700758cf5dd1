// Package template generates and reflows the structured template boards.
//
// Three templates are supported, each pairing a generator that creates the
// fixed scaffold shapes with a reflow that packs idea cards into the
// template's grid:
//
//   - Combinaison: two stacked panels and an idea bank
//   - Raffinement: an idea bank, a header band and nine column headers
//   - Moscow: a quadrant container and a label collecting prioritised ideas
//
// Every operation is a pure function of a [layer.Snapshot] returning a
// [layer.Batch]. Generators compute all shape specs up front, apply them to a
// draft copy, reflow the draft and return creates, updates and the z-order
// fix as one batch, so applying the result is a single atomic step.
//
// # Grid packing
//
// Cards are packed left to right, top to bottom inside an anchor shape by a
// [Grid]. The cursor starts 30 units inside the anchor, advances 130 per
// card and wraps 100 down once it reaches within 100 of the anchor's right
// edge. A wrap that lands within 50 of the anchor's bottom grows the anchor
// by 120; anchors never shrink.
//
// # Bank area
//
// Scaffold shapes of inactive templates are stashed 1500 units to the left.
// A shape whose right edge is already at or left of x=0 counts as stashed,
// so reflowing twice gives the same result as reflowing once. The test is
// positional only: a scaffold shape a user drags to negative x on the
// canvas is taken as stashed and is never moved into the bank.
//
// A reflow whose anchor shape is missing returns an empty batch.
package template
