package session

import "github.com/piwi3910/SlabQuote/internal/model"

const defaultMaxDepth = 50

// Snapshot is a frozen copy of the order and layer stack. Label names the
// edit that the snapshot precedes, e.g. "Edit line".
type Snapshot struct {
	Order model.Order
	Stack model.LayerStack
	Label string
}

// MakeSnapshot deep-copies the order and stack into a labelled snapshot.
func MakeSnapshot(o model.Order, s model.LayerStack, label string) Snapshot {
	return Snapshot{Order: o.Clone(), Stack: s.Clone(), Label: label}
}

// snapshots is a LIFO of session states.
type snapshots []Snapshot

func (s *snapshots) push(snap Snapshot) { *s = append(*s, snap) }

func (s *snapshots) pop() (Snapshot, bool) {
	n := len(*s)
	if n == 0 {
		return Snapshot{}, false
	}
	top := (*s)[n-1]
	*s = (*s)[:n-1]
	return top, true
}

func (s snapshots) top() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Label
}

// History keeps the undo and redo stacks of a session. The undo stack holds
// at most maxDepth entries; the oldest are dropped first.
type History struct {
	undoStack snapshots
	redoStack snapshots
	maxDepth  int
}

// NewHistory returns an empty History bounded to 50 undo steps.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push records the state from before an edit. Any redo steps are discarded.
func (h *History) Push(s Snapshot) {
	h.undoStack.push(s)
	if over := len(h.undoStack) - h.maxDepth; h.maxDepth > 0 && over > 0 {
		h.undoStack = append(snapshots(nil), h.undoStack[over:]...)
	}
	h.redoStack = nil
}

// Undo swaps current for the latest undo snapshot. current goes onto the
// redo stack under the undone edit's label.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	prev, ok := h.undoStack.pop()
	if !ok {
		return Snapshot{}, false
	}
	current.Label = prev.Label
	h.redoStack.push(current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	next, ok := h.redoStack.pop()
	if !ok {
		return Snapshot{}, false
	}
	current.Label = next.Label
	h.undoStack.push(current)
	return next, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoLabel names the edit Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string { return h.undoStack.top() }

// RedoLabel names the edit Redo would re-apply.
func (h *History) RedoLabel() string { return h.redoStack.top() }

// Clear drops both stacks.
func (h *History) Clear() {
	h.undoStack, h.redoStack = nil, nil
}
