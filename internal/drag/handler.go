// Package drag implements element drag and drop: co-dragging of selected and
// grouped elements, drop-target hit testing against groups, and the drag
// lifecycle events.
package drag

import (
	"sort"

	"github.com/yourusername/dragcore/internal/groups"
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/mouse"
	"github.com/yourusername/dragcore/internal/types"
)

// ElementDragHandler implements mouse.Handler for managed elements.
// It is not safe for concurrent use; callbacks arrive on the event thread.
type ElementDragHandler struct {
	instance Instance
	groups   GroupManager
	opts     Options

	selection          *orderedSet
	dragGroups         map[string]*DragGroup
	dragGroupByElement map[string]*DragGroup

	gesture *gesture // nil while idle
}

var _ mouse.Handler = (*ElementDragHandler)(nil)

// NewElementDragHandler creates a handler bound to an element facility and group registry
func NewElementDragHandler(instance Instance, gm GroupManager, opts Options) *ElementDragHandler {
	if opts.Intersects == nil {
		opts.Intersects = types.Intersects
	}
	return &ElementDragHandler{
		instance:           instance,
		groups:             gm,
		opts:               opts,
		selection:          newOrderedSet(),
		dragGroups:         make(map[string]*DragGroup),
		dragGroupByElement: make(map[string]*DragGroup),
	}
}

// SetElementsDraggable toggles dragging globally
func (h *ElementDragHandler) SetElementsDraggable(enabled bool) {
	h.opts.ElementsDraggable = enabled
}

// ElementsDraggable reports the global dragging switch
func (h *ElementDragHandler) ElementsDraggable() bool {
	return h.opts.ElementsDraggable
}

// InProgress reports whether a gesture is active
func (h *ElementDragHandler) InProgress() bool {
	return h.gesture != nil
}

// GroupLocations returns the candidate drop targets of the active gesture
func (h *ElementDragHandler) GroupLocations() []GroupLocation {
	if h.gesture == nil {
		return nil
	}
	out := make([]GroupLocation, len(h.gesture.locations))
	copy(out, h.gesture.locations)
	return out
}

// IntersectingGroups returns the groups hit by the most recent move
func (h *ElementDragHandler) IntersectingGroups() []IntersectingGroup {
	if h.gesture == nil {
		return nil
	}
	out := make([]IntersectingGroup, len(h.gesture.intersecting))
	copy(out, h.gesture.intersecting)
	return out
}

// OnStart prepares a gesture. Returns false when the element may not be
// dragged or a drag-start listener refused.
func (h *ElementDragHandler) OnStart(p mouse.Params) bool {
	el := p.Element
	if !h.opts.ElementsDraggable || h.notDraggable(el) {
		logging.Debug().Str("element", el).Msg("drag refused")
		return false
	}

	g := newGesture(el, p.Event)
	if parent := h.groups.ParentGroup(el); parent != nil {
		g.parentGroup = parent
		g.dragOffset = h.instance.Offset(parent.ElementID)
	}
	h.gesture = g
	h.instance.SetHoverSuspended(true)

	elOffset := h.instance.Offset(el)
	for _, id := range h.selection.Values() {
		if id == el {
			continue
		}
		g.selection = append(g.selection, h.snapshot(id, elOffset))
	}

	dragGroup := h.activeDragGroup(el)

	if !h.startParticipant(el) {
		h.abort("grasped element")
		return false
	}

	if dragGroup != nil {
		g.dragGroup = dragGroup
		for _, m := range dragGroup.members {
			if m.ElementID == el {
				continue
			}
			if !g.inSelection(m.ElementID) {
				g.groupMembers = append(g.groupMembers, h.snapshot(m.ElementID, elOffset))
			}
			if !h.startParticipant(m.ElementID) {
				h.abort(m.ElementID)
				return false
			}
		}
	}

	logging.Info().
		Str("gesture", g.id).
		Str("element", el).
		Int("selection", len(g.selection)).
		Int("dragGroupMembers", len(g.groupMembers)).
		Int("candidates", len(g.locations)).
		Msg("drag started")
	return true
}

// OnDrag repositions every participant and recomputes intersecting groups
func (h *ElementDragHandler) OnDrag(p mouse.Params) {
	g := h.gesture
	if g == nil {
		return
	}
	g.event = p.Event
	g.intersecting = nil

	excluded := make(map[string]bool)
	primary := types.NewRect(p.FinalPos.Add(g.dragOffset), h.instance.Size(g.element))
	h.moveParticipant(g.element, primary, excluded)

	for _, part := range g.selection {
		h.moveParticipant(part.id, types.NewRect(primary.Origin().Add(part.offset), part.size), excluded)
	}
	for _, part := range g.groupMembers {
		h.moveParticipant(part.id, types.NewRect(primary.Origin().Add(part.offset), part.size), excluded)
	}

	for _, loc := range g.locations {
		if g.isIntersecting(loc.Group) && loc.Group != g.parentGroup {
			h.instance.AddMarker(loc.ElementID, MarkerDragHover)
		} else {
			h.instance.RemoveMarker(loc.ElementID, MarkerDragHover)
		}
	}
}

// OnStop commits final positions, resolves the drop and ends the gesture
func (h *ElementDragHandler) OnStop(p mouse.Params) {
	g := h.gesture
	if g == nil {
		return
	}
	g.event = p.Event

	final := p.FinalPos.Add(g.dragOffset)
	h.stopParticipant(g.element, final)
	for _, part := range g.selection {
		h.stopParticipant(part.id, final.Add(part.offset))
	}

	h.resolveDrop()

	logging.Info().
		Str("gesture", g.id).
		Str("element", g.element).
		Float64("x", final.X).
		Float64("y", final.Y).
		Msg("drag stopped")
	h.cleanup()
}

// OnDragAbort is called by the engine after a refused start
func (h *ElementDragHandler) OnDragAbort(elementID string) {
	logging.Debug().Str("element", elementID).Msg("drag aborted")
	h.cleanup()
}

func (h *ElementDragHandler) notDraggable(el string) bool {
	v, ok := h.instance.Attribute(el, AttrNotDraggable)
	return ok && v != "false"
}

func (h *ElementDragHandler) snapshot(id string, origin types.Point) participant {
	return participant{
		id:     id,
		offset: h.instance.Offset(id).Sub(origin),
		size:   h.instance.Size(id),
	}
}

// activeDragGroup returns el's drag group only if el may instigate a group drag
func (h *ElementDragHandler) activeDragGroup(el string) *DragGroup {
	dg := h.dragGroupByElement[el]
	if dg == nil {
		return nil
	}
	if m := dg.member(el); m == nil || !m.Active {
		return nil
	}
	return dg
}

// canLeaveParent reports whether el may be dropped on groups other than its own
func (h *ElementDragHandler) canLeaveParent(el string) bool {
	parent := h.groups.ParentGroup(el)
	if parent == nil {
		return true
	}
	return !parent.DropOverride && (parent.Ghost || !parent.Constrain)
}

// startParticipant records drop candidates for el, marks it as dragging and
// fires drag start. Returns the listeners' verdict.
func (h *ElementDragHandler) startParticipant(el string) bool {
	g := h.gesture
	own := h.groups.GroupForElement(el)

	if (own == nil || h.opts.AllowNestedGroups) && h.canLeaveParent(el) {
		h.groups.ForEach(func(group *groups.Group) {
			if !group.Droppable || !group.Enabled || group == own || h.groups.IsDescendant(group, own) {
				return
			}
			if g.located[group.ID] {
				return
			}
			g.located[group.ID] = true
			g.locations = append(g.locations, GroupLocation{
				ElementID: group.ElementID,
				Bounds:    types.NewRect(h.instance.Offset(group.ElementID), h.instance.Size(group.ElementID)),
				Group:     group,
				Depth:     h.groups.Depth(group),
			})
			if group != g.parentGroup {
				h.instance.AddMarker(group.ElementID, MarkerDragActive)
			}
		})
		// nested groups first, so the innermost hit wins
		sort.SliceStable(g.locations, func(i, j int) bool {
			return g.locations[i].Depth > g.locations[j].Depth
		})
	}

	h.markDragging(el)
	return h.instance.Fire(EventDragStart, DragStartPayload{Element: el, Event: g.event})
}

func (h *ElementDragHandler) moveParticipant(el string, bounds types.Rect, excluded map[string]bool) {
	g := h.gesture
	for _, loc := range g.locations {
		if excluded[loc.Group.ID] || !h.opts.Intersects(bounds, loc.Bounds) {
			continue
		}
		if !g.isIntersecting(loc.Group) {
			g.intersecting = append(g.intersecting, IntersectingGroup{Group: loc.Group, ElementID: el})
		}
		for _, a := range h.groups.Ancestors(loc.Group) {
			excluded[a.ID] = true
		}
	}

	pos := bounds.Origin()
	h.instance.Draw(el, pos)
	h.instance.Fire(EventDragMove, DragMovePayload{Element: el, Event: g.event, Pos: pos})
}

func (h *ElementDragHandler) stopParticipant(el string, pos types.Point) {
	g := h.gesture
	redraw := h.instance.Draw(el, pos)
	h.instance.Fire(EventDragStop, DragStopPayload{
		Element: el,
		Event:   g.event,
		Pos:     pos,
		Redraw:  redraw,
	})
	h.unmarkDragging(el)
}

// resolveDrop honours only the first intersecting group
func (h *ElementDragHandler) resolveDrop() {
	g := h.gesture
	if len(g.intersecting) == 0 {
		return
	}
	hit := g.intersecting[0]
	current := h.groups.ParentGroup(hit.ElementID)
	if current == hit.Group {
		return
	}
	if current != nil && current.OverrideDrop(hit.ElementID, hit.Group) {
		logging.Info().
			Str("element", hit.ElementID).
			Str("group", current.ID).
			Str("target", hit.Group.ID).
			Msg("drop overridden by current group")
		return
	}
	if err := h.groups.AddToGroup(hit.Group, hit.ElementID); err != nil {
		logging.Warn().Err(err).Str("element", hit.ElementID).Str("target", hit.Group.ID).Msg("drop rejected")
		return
	}
	logging.Info().Str("element", hit.ElementID).Str("group", hit.Group.ID).Msg("element dropped on group")
}

func (h *ElementDragHandler) markDragging(el string) {
	h.instance.AddMarker(el, MarkerDragged)
	h.instance.MarkConnections(el, types.ConnectionSource, true, MarkerElementDragging, MarkerSourceElementDragging)
	h.instance.MarkConnections(el, types.ConnectionTarget, true, MarkerElementDragging, MarkerTargetElementDragging)
	h.gesture.marked.Add(el)
}

func (h *ElementDragHandler) unmarkDragging(el string) {
	h.instance.RemoveMarker(el, MarkerDragged)
	h.instance.MarkConnections(el, types.ConnectionSource, false, MarkerElementDragging, MarkerSourceElementDragging)
	h.instance.MarkConnections(el, types.ConnectionTarget, false, MarkerElementDragging, MarkerTargetElementDragging)
	h.gesture.marked.Remove(el)
}

func (h *ElementDragHandler) abort(el string) {
	logging.Info().Str("gesture", h.gesture.id).Str("element", el).Msg("drag vetoed by listener")
	h.cleanup()
}

// cleanup discards the gesture and every marker it left behind
func (h *ElementDragHandler) cleanup() {
	g := h.gesture
	if g == nil {
		return
	}
	for _, loc := range g.locations {
		h.instance.RemoveMarker(loc.ElementID, MarkerDragActive, MarkerDragHover)
	}
	for _, el := range g.marked.Values() {
		h.unmarkDragging(el)
	}
	h.instance.SetHoverSuspended(false)
	h.gesture = nil
}
