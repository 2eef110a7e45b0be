// Package mouse translates raw pointer presses, moves and releases into
// drag lifecycle callbacks.
package mouse

import (
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/types"
)

// Button identifies the pointer button of an event
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// String returns the string representation of a Button
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// Event is the originating input event for a lifecycle callback
type Event struct {
	X      float64 // Pointer position in canvas pixels
	Y      float64
	Button Button
	Shift  bool
}

// Point returns the pointer position
func (e Event) Point() types.Point {
	return types.Point{X: e.X, Y: e.Y}
}

// Params is passed to every Handler callback
type Params struct {
	Element  string      // Element being dragged
	Event    Event       // Event that triggered the callback
	Pos      types.Point // Position relative to the element's container
	FinalPos types.Point // Pos after engine-side adjustments
}

// Handler receives the drag lifecycle
type Handler interface {
	// OnStart returns false to refuse the gesture
	OnStart(p Params) bool
	OnDrag(p Params)
	OnStop(p Params)
	OnDragAbort(elementID string)
}

// Positioner reports where an element currently sits relative to its container
type Positioner interface {
	Position(elementID string) types.Point
}

// DragState represents the current state of the engine
type DragState int

const (
	DragStateIdle DragState = iota
	DragStateDragging
)

// Engine owns pointer capture for one gesture at a time
type Engine struct {
	handler    Handler
	positioner Positioner

	state    DragState
	element  string
	startPos types.Point // element position at press
	press    types.Point // pointer position at press
	last     types.Point // last reported element position
}

// NewEngine creates an idle engine
func NewEngine(h Handler, p Positioner) *Engine {
	return &Engine{
		handler:    h,
		positioner: p,
		state:      DragStateIdle,
	}
}

// Press begins a gesture on elementID. Returns false when the handler
// refused it or another gesture is already in progress.
func (e *Engine) Press(elementID string, ev Event) bool {
	if e.state == DragStateDragging {
		logging.Debug().
			Str("element", elementID).
			Str("active", e.element).
			Msg("press ignored, gesture in progress")
		return false
	}

	pos := e.positioner.Position(elementID)
	params := Params{Element: elementID, Event: ev, Pos: pos, FinalPos: pos}
	if !e.handler.OnStart(params) {
		e.handler.OnDragAbort(elementID)
		return false
	}

	e.state = DragStateDragging
	e.element = elementID
	e.startPos = pos
	e.press = ev.Point()
	e.last = pos
	return true
}

// Move reports pointer motion; ignored unless a gesture is active
func (e *Engine) Move(ev Event) {
	if e.state != DragStateDragging {
		return
	}
	e.last = e.positionFor(ev)
	e.handler.OnDrag(Params{Element: e.element, Event: ev, Pos: e.last, FinalPos: e.last})
}

// Release ends the active gesture
func (e *Engine) Release(ev Event) {
	if e.state != DragStateDragging {
		return
	}
	e.last = e.positionFor(ev)
	params := Params{Element: e.element, Event: ev, Pos: e.last, FinalPos: e.last}
	e.stop()
	e.handler.OnStop(params)
}

// Dragging reports whether a gesture is active
func (e *Engine) Dragging() bool {
	return e.state == DragStateDragging
}

// Element returns the element of the active gesture, or ""
func (e *Engine) Element() string {
	return e.element
}

// Delta returns the cumulative pointer delta of the active gesture
func (e *Engine) Delta() types.Point {
	return e.last.Sub(e.startPos)
}

func (e *Engine) positionFor(ev Event) types.Point {
	return e.startPos.Add(ev.Point().Sub(e.press))
}

func (e *Engine) stop() {
	e.state = DragStateIdle
	e.element = ""
}
