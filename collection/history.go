package collection

// History keeps past, present and future snapshots of a value.
//
// Snapshots are stored as given; callers must treat them as immutable.
type History[T any] struct {
	past    []T
	present T
	future  []T
	limit   int
}

// NewHistory returns a history whose present is initial. A limit > 0 caps
// the number of undo steps kept.
func NewHistory[T any](initial T, limit int) *History[T] {
	return &History[T]{present: initial, limit: limit}
}

// Present returns the current snapshot.
func (h *History[T]) Present() T { return h.present }

// Push records next as the present, moving the old present to the past and
// discarding any redo steps.
func (h *History[T]) Push(next T) {
	h.past = append(h.past, h.present)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = next
	h.future = nil
}

// CanUndo reports whether Undo has an effect.
func (h *History[T]) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether Redo has an effect.
func (h *History[T]) CanRedo() bool { return len(h.future) > 0 }

// Undo restores the previous snapshot. It reports false if there is none.
func (h *History[T]) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	last := len(h.past) - 1
	h.future = append([]T{h.present}, h.future...)
	h.present = h.past[last]
	h.past = h.past[:last]
	return true
}

// Redo re-applies the next snapshot. It reports false if there is none.
func (h *History[T]) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.past = append(h.past, h.present)
	h.present = h.future[0]
	h.future = h.future[1:]
	return true
}
