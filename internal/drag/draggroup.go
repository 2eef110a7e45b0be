package drag

import (
	"slices"

	"github.com/yourusername/dragcore/internal/logging"
)

// DragGroupSpec names a drag group and the active state given to elements
// added through it
type DragGroupSpec struct {
	Name   string
	Active bool
}

// DragGroupName is the bare-name form of a spec; members are active
func DragGroupName(name string) DragGroupSpec {
	return DragGroupSpec{Name: name, Active: true}
}

// DragGroupMember is one element of a drag group. Active members drag the
// whole group; inactive members move alone.
type DragGroupMember struct {
	ElementID string
	Active    bool
}

// DragGroup is a named set of elements that move together
type DragGroup struct {
	ID      string
	members []*DragGroupMember
}

// Members returns a copy of the members in insertion order
func (dg *DragGroup) Members() []DragGroupMember {
	out := make([]DragGroupMember, len(dg.members))
	for i, m := range dg.members {
		out[i] = *m
	}
	return out
}

func (dg *DragGroup) member(id string) *DragGroupMember {
	for _, m := range dg.members {
		if m.ElementID == id {
			return m
		}
	}
	return nil
}

func (dg *DragGroup) remove(id string) {
	dg.members = slices.DeleteFunc(dg.members, func(m *DragGroupMember) bool {
		return m.ElementID == id
	})
}

// AddToDragGroup adds elements to the named drag group, creating it on first
// use. Elements leave any drag group they were in before.
func (h *ElementDragHandler) AddToDragGroup(spec DragGroupSpec, ids ...string) {
	dg := h.dragGroups[spec.Name]
	if dg == nil {
		dg = &DragGroup{ID: spec.Name}
		h.dragGroups[spec.Name] = dg
	}

	h.RemoveFromDragGroup(ids...)

	for _, id := range ids {
		dg.members = append(dg.members, &DragGroupMember{ElementID: id, Active: spec.Active})
		h.dragGroupByElement[id] = dg
	}
	logging.Debug().Str("dragGroup", spec.Name).Strs("elements", ids).Bool("active", spec.Active).Msg("added to drag group")
}

// RemoveFromDragGroup removes elements from whichever drag group holds them.
// Elements in no drag group are ignored.
func (h *ElementDragHandler) RemoveFromDragGroup(ids ...string) {
	for _, id := range ids {
		dg := h.dragGroupByElement[id]
		if dg == nil {
			continue
		}
		dg.remove(id)
		delete(h.dragGroupByElement, id)
	}
}

// SetDragGroupState sets whether each element may instigate a group drag
func (h *ElementDragHandler) SetDragGroupState(active bool, ids ...string) {
	for _, id := range ids {
		dg := h.dragGroupByElement[id]
		if dg == nil {
			continue
		}
		if m := dg.member(id); m != nil {
			m.Active = active
		}
	}
}

// IsActiveDragGroupMember reports whether grasping id drags its whole group
func (h *ElementDragHandler) IsActiveDragGroupMember(id string) bool {
	return h.activeDragGroup(id) != nil
}

// DragGroupOf returns the name of the drag group holding id
func (h *ElementDragHandler) DragGroupOf(id string) (string, bool) {
	dg := h.dragGroupByElement[id]
	if dg == nil {
		return "", false
	}
	return dg.ID, true
}

// DragGroupMembers returns the members of a named drag group
func (h *ElementDragHandler) DragGroupMembers(name string) []DragGroupMember {
	dg := h.dragGroups[name]
	if dg == nil {
		return nil
	}
	return dg.Members()
}

// DragGroupNames returns every drag group name, sorted
func (h *ElementDragHandler) DragGroupNames() []string {
	names := make([]string, 0, len(h.dragGroups))
	for name := range h.dragGroups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
