package drag

// AddToDragSelection adds elements that move with whichever element is grasped.
// Adding an element twice has no effect.
func (h *ElementDragHandler) AddToDragSelection(ids ...string) {
	for _, id := range ids {
		if h.selection.Add(id) {
			h.instance.AddMarker(id, MarkerDragSelected)
		}
	}
}

// RemoveFromDragSelection removes elements from the drag selection
func (h *ElementDragHandler) RemoveFromDragSelection(ids ...string) {
	for _, id := range ids {
		if h.selection.Remove(id) {
			h.instance.RemoveMarker(id, MarkerDragSelected)
		}
	}
}

// ToggleDragSelection flips the selection state of each element
func (h *ElementDragHandler) ToggleDragSelection(ids ...string) {
	for _, id := range ids {
		if h.selection.Has(id) {
			h.RemoveFromDragSelection(id)
		} else {
			h.AddToDragSelection(id)
		}
	}
}

// ClearDragSelection empties the drag selection
func (h *ElementDragHandler) ClearDragSelection() {
	for _, id := range h.selection.Values() {
		h.instance.RemoveMarker(id, MarkerDragSelected)
	}
	h.selection.Clear()
}

// DragSelection returns the selected element ids in insertion order
func (h *ElementDragHandler) DragSelection() []string {
	return h.selection.Values()
}

// IsDragSelected reports whether id is in the drag selection
func (h *ElementDragHandler) IsDragSelected(id string) bool {
	return h.selection.Has(id)
}
