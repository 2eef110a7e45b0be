package drag

import (
	"github.com/yourusername/dragcore/internal/mouse"
	"github.com/yourusername/dragcore/internal/types"
)

// Events fired through Instance.Fire
const (
	EventDragStart = "drag:start"
	EventDragMove  = "drag:move"
	EventDragStop  = "drag:stop"
)

// Markers toggled on elements and connections
const (
	MarkerDragActive            = "drag-active"   // group is a candidate drop target
	MarkerDragHover             = "drag-hover"    // group is under a dragged element
	MarkerDragged               = "dragged"       // element is moving
	MarkerDragSelected          = "drag-selected" // element is in the drag selection
	MarkerElementDragging       = "element-dragging"
	MarkerSourceElementDragging = "source-element-dragging"
	MarkerTargetElementDragging = "target-element-dragging"
)

// AttrNotDraggable disables dragging for an element unless its value is "false"
const AttrNotDraggable = "data-not-draggable"

// DragStartPayload accompanies EventDragStart. Listeners returning false
// veto the whole gesture.
type DragStartPayload struct {
	Element string
	Event   mouse.Event
}

// DragMovePayload accompanies EventDragMove
type DragMovePayload struct {
	Element string
	Event   mouse.Event
	Pos     types.Point
}

// DragStopPayload accompanies EventDragStop
type DragStopPayload struct {
	Element string
	Event   mouse.Event
	Pos     types.Point
	Redraw  types.RedrawResult
}
