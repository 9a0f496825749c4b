package session

import (
	"testing"

	"github.com/piwi3910/SlabQuote/internal/model"
)

func orderWith(refs ...string) model.Order {
	o := model.Order{Reference: "test"}
	for _, r := range refs {
		l := model.NewCuttingLine()
		l.Reference = r
		o.Lines = append(o.Lines, l)
	}
	return o
}

func snap(label string, refs ...string) Snapshot {
	return MakeSnapshot(orderWith(refs...), model.LayerStack{}, label)
}

func TestHistoryStartsEmpty(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("maxDepth = %d, want %d", h.maxDepth, defaultMaxDepth)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history should have nothing to undo or redo")
	}
	if _, ok := h.Undo(snap("current")); ok {
		t.Error("Undo on empty history returned ok")
	}
	if _, ok := h.Redo(snap("current")); ok {
		t.Error("Redo on empty history returned ok")
	}
	if h.UndoLabel() != "" || h.RedoLabel() != "" {
		t.Error("labels of an empty history should be blank")
	}
}

func TestHistoryWalkBackAndForth(t *testing.T) {
	h := NewHistory()
	h.Push(snap("Add line"))
	h.Push(snap("Add line 2", "A"))
	state := snap("current", "A", "B")

	steps := []struct {
		undo      bool
		wantLines int
		wantUndo  string
		wantRedo  string
	}{
		{undo: true, wantLines: 1, wantUndo: "Add line", wantRedo: "Add line 2"},
		{undo: true, wantLines: 0, wantUndo: "", wantRedo: "Add line"},
		{undo: false, wantLines: 1, wantUndo: "Add line", wantRedo: "Add line 2"},
		{undo: false, wantLines: 2, wantUndo: "Add line 2", wantRedo: ""},
	}
	for i, step := range steps {
		var ok bool
		if step.undo {
			state, ok = h.Undo(state)
		} else {
			state, ok = h.Redo(state)
		}
		if !ok {
			t.Fatalf("step %d: expected ok", i)
		}
		if got := len(state.Order.Lines); got != step.wantLines {
			t.Errorf("step %d: %d lines, want %d", i, got, step.wantLines)
		}
		if got := h.UndoLabel(); got != step.wantUndo {
			t.Errorf("step %d: undo label %q, want %q", i, got, step.wantUndo)
		}
		if got := h.RedoLabel(); got != step.wantRedo {
			t.Errorf("step %d: redo label %q, want %q", i, got, step.wantRedo)
		}
	}
}

func TestPushDiscardsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(snap("Add line"))
	if _, ok := h.Undo(snap("current", "A")); !ok {
		t.Fatal("undo failed")
	}
	if !h.CanRedo() {
		t.Fatal("expected a redo step")
	}

	h.Push(snap("Rename order"))
	if h.CanRedo() {
		t.Error("a new edit should discard redo steps")
	}
}

func TestHistoryDropsOldestBeyondDepth(t *testing.T) {
	h := &History{maxDepth: 3}
	for _, label := range []string{"1", "2", "3", "4", "5"} {
		h.Push(snap(label))
	}
	if len(h.undoStack) != 3 {
		t.Fatalf("undo stack holds %d, want 3", len(h.undoStack))
	}
	if h.undoStack[0].Label != "3" {
		t.Errorf("oldest kept = %q, want %q", h.undoStack[0].Label, "3")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(snap("a"))
	h.Push(snap("b"))
	h.Undo(snap("current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	o := orderWith("Door")
	st := model.NewLayerStack()
	m := model.NewPanelMaterial("MDF18", "MDF", 2800, 2070, 18, 14.5)
	st = st.WithMaterial(0, &m)

	s := MakeSnapshot(o, st, "test")

	o.Lines[0].Reference = "Modified"
	st.Layers[0].Material.Code = "CHANGED"

	if s.Order.Lines[0].Reference != "Door" {
		t.Error("snapshot lines should be independent of the original order")
	}
	if s.Stack.Layers[0].Material.Code != "MDF18" {
		t.Error("snapshot layers should be independent of the original stack")
	}
}
