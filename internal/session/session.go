// Package session holds one customer's working state: the order being
// configured, the layer stack and the sampled colors. Every edit replaces
// the stored values with recomputed ones and records an undo snapshot.
package session

import (
	"github.com/piwi3910/SlabQuote/internal/color"
	"github.com/piwi3910/SlabQuote/internal/engine"
	"github.com/piwi3910/SlabQuote/internal/model"
)

// Session is single-user state and is not safe for concurrent use.
type Session struct {
	engine  *engine.Engine
	history *History

	order       model.Order
	stack       model.LayerStack
	composition engine.Composition
	offcuts     []model.Offcut

	Favorites color.Favorites
}

// New starts a session with a blank order and a default three-layer stack.
func New(eng *engine.Engine, reference string) *Session {
	s := &Session{
		engine:  eng,
		history: NewHistory(),
	}
	s.set(model.NewOrder(reference), model.NewLayerStack())
	return s
}

// Order returns the current, fully computed order.
func (s *Session) Order() model.Order { return s.order.Clone() }

// Stack returns the current layer stack.
func (s *Session) Stack() model.LayerStack { return s.stack.Clone() }

// Composition returns the resolved geometry and cost of the layer stack.
func (s *Session) Composition() engine.Composition { return s.composition }

// Offcuts returns the leftover material of the layer stack.
func (s *Session) Offcuts() []model.Offcut {
	out := make([]model.Offcut, len(s.offcuts))
	copy(out, s.offcuts)
	return out
}

// History exposes the undo/redo stacks.
func (s *Session) History() *History { return s.history }

func (s *Session) set(o model.Order, st model.LayerStack) {
	s.order = s.engine.Recompute(o)
	s.stack = st
	s.composition = s.engine.Compose(st)
	s.offcuts = s.engine.EstimateOffcuts(st)
}

func (s *Session) apply(label string, o model.Order, st model.LayerStack) {
	s.history.Push(MakeSnapshot(s.order, s.stack, label))
	s.set(o, st)
}

// SetReference renames the order.
func (s *Session) SetReference(ref string) {
	o := s.order.Clone()
	o.Reference = ref
	s.apply("Rename order", o, s.stack)
}

// ReplaceLines swaps every line of the order, e.g. after an import. An
// empty slice leaves one blank line.
func (s *Session) ReplaceLines(lines []model.CuttingLine) {
	o := s.order.Clone()
	o.Lines = make([]model.CuttingLine, len(lines))
	for i, l := range lines {
		o.Lines[i] = l.Clone()
	}
	s.apply("Replace lines", o, s.stack)
}

// AddLine appends a blank line and returns its ID.
func (s *Session) AddLine() string {
	l := model.NewCuttingLine()
	s.apply("Add line", s.order.WithLine(l), s.stack)
	return l.ID
}

// EditLine applies edit to the line with the given ID and recomputes the
// order. It returns false if no line matched.
func (s *Session) EditLine(id string, edit func(*model.CuttingLine)) bool {
	o, ok := s.order.WithLineEdited(id, edit)
	if !ok {
		return false
	}
	s.apply("Edit line", o, s.stack)
	return true
}

// RemoveLine deletes a line. Deleting the last line leaves a blank one.
func (s *Session) RemoveLine(id string) bool {
	o, ok := s.order.WithoutLine(id)
	if !ok {
		return false
	}
	s.apply("Remove line", o, s.stack)
	return true
}

// AddLayer appends an unassigned layer. It returns false at the maximum
// layer count.
func (s *Session) AddLayer(role model.LayerRole) bool {
	st := s.engine.AddLayer(s.stack, role)
	if len(st.Layers) == len(s.stack.Layers) {
		return false
	}
	s.apply("Add layer", s.order, st)
	return true
}

// RemoveLayer drops the layer at idx. It returns false at the minimum layer
// count or for an unknown index.
func (s *Session) RemoveLayer(idx int) bool {
	st := s.engine.RemoveLayer(s.stack, idx)
	if len(st.Layers) == len(s.stack.Layers) {
		return false
	}
	s.apply("Remove layer", s.order, st)
	return true
}

// SetLayerMaterial assigns m to the layer at idx; nil clears it.
func (s *Session) SetLayerMaterial(idx int, m *model.Material) bool {
	if idx < 0 || idx >= len(s.stack.Layers) {
		return false
	}
	s.apply("Set layer material", s.order, s.stack.WithMaterial(idx, m))
	return true
}

// SetGlue switches the stack's gluing mode.
func (s *Session) SetGlue(g model.GlueMode) {
	s.apply("Set gluing", s.order, s.stack.WithGlue(g))
}

// Undo restores the state from before the last edit.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo(MakeSnapshot(s.order, s.stack, "current"))
	if !ok {
		return false
	}
	s.set(snap.Order, snap.Stack)
	return true
}

// Redo re-applies the last undone edit.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo(MakeSnapshot(s.order, s.stack, "current"))
	if !ok {
		return false
	}
	s.set(snap.Order, snap.Stack)
	return true
}

// SampleColor resolves hex against m and keeps it as a favorite. The second
// result is false when the favorites list is full.
func (s *Session) SampleColor(m *color.Matcher, hex string) (color.Sample, bool) {
	sample := m.Sample(hex)
	return sample, s.Favorites.Add(sample)
}
