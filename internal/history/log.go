// Package history keeps a linear undo/redo history per notebook.
package history

import (
	"github.com/AndrivA89/brain-dump/internal/domain"
)

// DefaultMaxDepth bounds each stack unless configured otherwise.
const DefaultMaxDepth = 100

// ApplyFunc replays one action against the store. It must not record.
type ApplyFunc func(domain.Action) error

type Log struct {
	maxDepth int
	undo     map[string][]domain.Action
	redo     map[string][]domain.Action
}

// New returns a log whose stacks hold at most maxDepth items each.
// Zero or less means unbounded.
func New(maxDepth int) *Log {
	return &Log{
		maxDepth: maxDepth,
		undo:     make(map[string][]domain.Action),
		redo:     make(map[string][]domain.Action),
	}
}

// Record pushes a new forward action and drops the redo branch.
func (l *Log) Record(notebookID string, a domain.Action) {
	l.undo[notebookID] = l.push(l.undo[notebookID], a)
	delete(l.redo, notebookID)
}

// Undo reverts the most recent action. It reports false when there was nothing
// to undo. If revert fails both stacks are left as they were.
func (l *Log) Undo(notebookID string, revert ApplyFunc) (bool, error) {
	return l.move(notebookID, l.undo, l.redo, revert)
}

// Redo re-applies the most recently undone action.
func (l *Log) Redo(notebookID string, reapply ApplyFunc) (bool, error) {
	return l.move(notebookID, l.redo, l.undo, reapply)
}

func (l *Log) move(notebookID string, from, to map[string][]domain.Action, apply ApplyFunc) (bool, error) {
	stack := from[notebookID]
	if len(stack) == 0 {
		return false, nil
	}

	top := stack[len(stack)-1]
	if err := apply(top); err != nil {
		return false, err
	}

	if len(stack) == 1 {
		delete(from, notebookID)
	} else {
		from[notebookID] = stack[:len(stack)-1]
	}
	to[notebookID] = l.push(to[notebookID], top)
	return true, nil
}

func (l *Log) push(stack []domain.Action, a domain.Action) []domain.Action {
	stack = append(stack, a)
	if l.maxDepth > 0 && len(stack) > l.maxDepth {
		trimmed := make([]domain.Action, l.maxDepth)
		copy(trimmed, stack[len(stack)-l.maxDepth:])
		stack = trimmed
	}
	return stack
}

// Depths reports how many steps can be undone and redone.
func (l *Log) Depths(notebookID string) (undo, redo int) {
	return len(l.undo[notebookID]), len(l.redo[notebookID])
}

func (l *Log) Clear(notebookID string) {
	delete(l.undo, notebookID)
	delete(l.redo, notebookID)
}

// Stacks returns copies of every non-empty stack.
func (l *Log) Stacks() (undo, redo map[string][]domain.Action) {
	return copyStacks(l.undo), copyStacks(l.redo)
}

// Restore replaces the history, trimming stacks that exceed the bound.
func (l *Log) Restore(undo, redo map[string][]domain.Action) {
	l.undo = make(map[string][]domain.Action, len(undo))
	l.redo = make(map[string][]domain.Action, len(redo))
	for id, stack := range undo {
		for _, a := range stack {
			l.undo[id] = l.push(l.undo[id], a)
		}
	}
	for id, stack := range redo {
		for _, a := range stack {
			l.redo[id] = l.push(l.redo[id], a)
		}
	}
}

func copyStacks(in map[string][]domain.Action) map[string][]domain.Action {
	out := make(map[string][]domain.Action, len(in))
	for id, stack := range in {
		if len(stack) == 0 {
			continue
		}
		out[id] = append([]domain.Action(nil), stack...)
	}
	return out
}
