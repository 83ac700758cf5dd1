// Package history records undoable board changes.
//
// A [Log] stores entries made of the inverse document batch and the
// selections to restore. Gestures that span many mutations, such as a drag
// or a resize, are bracketed with [Log.Pause] and [Log.Resume]: every entry
// recorded in between is merged into one, so the whole gesture is undone in
// a single step.
package history

import (
	"maps"
	"slices"

	"github.com/matzehuels/brainboard/pkg/layer"
)

// DefaultLimit is the undo depth used when New is given a non-positive limit.
const DefaultLimit = 100

// Entry is one undo step.
type Entry struct {
	// Ops undoes the recorded change when applied to the document.
	Ops layer.Batch
	// Selection maps user ids to the selection to restore. Users absent
	// from the map keep their current selection.
	Selection map[string][]string
}

// Empty reports whether the entry would change nothing.
func (e Entry) Empty() bool { return len(e.Ops) == 0 && len(e.Selection) == 0 }

// merge folds a later entry into e. Later inverses run first and the
// earliest selection recorded for a user wins.
func (e *Entry) merge(later Entry) {
	e.Ops = append(slices.Clone(later.Ops), e.Ops...)
	for user, sel := range later.Selection {
		if e.Selection == nil {
			e.Selection = map[string][]string{}
		}
		if _, ok := e.Selection[user]; !ok {
			e.Selection[user] = sel
		}
	}
}

// Log is a bounded undo/redo stack. It is not safe for concurrent use; the
// board that owns it serialises access.
type Log struct {
	limit   int
	undo    []Entry
	redo    []Entry
	paused  bool
	pending Entry
}

// New returns an empty log keeping at most limit undo steps.
func New(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Record adds an entry. While paused it is merged into the pending entry.
// Recording a change clears the redo stack.
func (l *Log) Record(e Entry) {
	if e.Empty() {
		return
	}
	l.redo = nil
	if l.paused {
		l.pending.merge(e)
		return
	}
	l.push(e)
}

// Pause starts grouping recorded entries into one step.
func (l *Log) Pause() { l.paused = true }

// Resume ends grouping and commits the pending entry, if any.
func (l *Log) Resume() {
	if !l.paused {
		return
	}
	l.paused = false
	if !l.pending.Empty() {
		l.push(l.pending)
	}
	l.pending = Entry{}
}

// Paused reports whether entries are currently being grouped.
func (l *Log) Paused() bool { return l.paused }

// CanUndo reports whether there is a step to undo.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 || !l.pending.Empty() }

// CanRedo reports whether there is a step to redo.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// Len returns the number of committed undo steps.
func (l *Log) Len() int { return len(l.undo) }

// Undo pops the latest step and hands it to apply, which performs it and
// returns the entry that reverses it. That entry is pushed on the redo
// stack. A pending gesture is committed first. When apply fails the step
// goes back on the undo stack and Undo reports false.
func (l *Log) Undo(apply func(Entry) (Entry, error)) (bool, error) {
	l.Resume()
	return l.step(&l.undo, &l.redo, apply)
}

// Redo pops the latest undone step and hands it to apply. The reversing
// entry goes back on the undo stack without clearing the redo stack.
func (l *Log) Redo(apply func(Entry) (Entry, error)) (bool, error) {
	l.Resume()
	return l.step(&l.redo, &l.undo, apply)
}

func (l *Log) step(from, to *[]Entry, apply func(Entry) (Entry, error)) (bool, error) {
	e, ok := pop(from)
	if !ok {
		return false, nil
	}
	r, err := apply(e)
	if err != nil {
		*from = append(*from, e)
		return false, err
	}
	if r.Empty() {
		return true, nil
	}
	if to == &l.undo {
		l.push(r)
	} else {
		*to = append(*to, r)
	}
	return true, nil
}

// Clear drops all steps.
func (l *Log) Clear() {
	l.undo, l.redo = nil, nil
	l.pending = Entry{}
	l.paused = false
}

func (l *Log) push(e Entry) {
	e.Selection = maps.Clone(e.Selection)
	l.undo = append(l.undo, e)
	if over := len(l.undo) - l.limit; over > 0 {
		l.undo = slices.Delete(l.undo, 0, over)
	}
}

func pop(stack *[]Entry) (Entry, bool) {
	s := *stack
	if len(s) == 0 {
		return Entry{}, false
	}
	e := s[len(s)-1]
	*stack = s[:len(s)-1]
	return e, true
}
