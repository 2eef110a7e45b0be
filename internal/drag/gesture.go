package drag

import (
	"github.com/google/uuid"

	"github.com/yourusername/dragcore/internal/groups"
	"github.com/yourusername/dragcore/internal/mouse"
	"github.com/yourusername/dragcore/internal/types"
)

// GroupLocation is a candidate drop target captured when a gesture starts
type GroupLocation struct {
	ElementID string       // Group container element
	Bounds    types.Rect   // Container bounds at gesture start
	Group     *groups.Group
	Depth     int // Nesting level, used for descendant-first ordering
}

// IntersectingGroup is a group currently under a participant
type IntersectingGroup struct {
	Group     *groups.Group
	ElementID string // Participant whose bounds hit the group
}

// participant is a co-dragged element positioned relative to the grasped one
type participant struct {
	id     string
	offset types.Point
	size   types.Size
}

// gesture holds everything that lives for exactly one drag
type gesture struct {
	id          string
	element     string
	event       mouse.Event
	parentGroup *groups.Group // parent of the grasped element at start
	dragOffset  types.Point   // absolute offset of the parent container

	locations    []GroupLocation
	located      map[string]bool
	intersecting []IntersectingGroup

	dragGroup    *DragGroup
	selection    []participant // drag selection members
	groupMembers []participant // active drag group members

	marked *orderedSet // participants carrying dragging markers
}

func newGesture(element string, ev mouse.Event) *gesture {
	return &gesture{
		id:      uuid.NewString(),
		element: element,
		event:   ev,
		located: make(map[string]bool),
		marked:  newOrderedSet(),
	}
}

func (g *gesture) inSelection(id string) bool {
	for _, p := range g.selection {
		if p.id == id {
			return true
		}
	}
	return false
}

func (g *gesture) isIntersecting(group *groups.Group) bool {
	for _, ig := range g.intersecting {
		if ig.Group == group {
			return true
		}
	}
	return false
}
