package drag

import (
	"github.com/yourusername/dragcore/internal/groups"
	"github.com/yourusername/dragcore/internal/types"
)

// Instance is the element and event facility the handler drives
type Instance interface {
	// Offset returns the element's absolute canvas position
	Offset(elementID string) types.Point
	Size(elementID string) types.Size
	Attribute(elementID, name string) (string, bool)

	AddMarker(elementID string, markers ...string)
	RemoveMarker(elementID string, markers ...string)
	// MarkConnections toggles markers on every connection attached to
	// elementID at the given end.
	MarkConnections(elementID string, end types.ConnectionEnd, add bool, markers ...string)

	// Draw moves the element to an absolute position and repaints what is attached to it
	Draw(elementID string, pos types.Point) types.RedrawResult
	// Fire delivers payload to every listener of event; false if any listener refused
	Fire(event string, payload any) bool
	SetHoverSuspended(suspended bool)
}

// GroupManager is the group hierarchy the handler queries and updates
type GroupManager interface {
	ForEach(fn func(g *groups.Group))
	GroupForElement(elementID string) *groups.Group
	ParentGroup(elementID string) *groups.Group
	Ancestors(g *groups.Group) []*groups.Group
	IsDescendant(g, of *groups.Group) bool
	Depth(g *groups.Group) int
	AddToGroup(g *groups.Group, elementID string) error
}

// Options configures an ElementDragHandler
type Options struct {
	ElementsDraggable bool // Global switch for element dragging
	AllowNestedGroups bool // Group containers may be dropped onto other groups
	// Intersects is the hit test between a dragged element and a group
	Intersects func(a, b types.Rect) bool
}

// DefaultOptions enables dragging and nested groups
func DefaultOptions() Options {
	return Options{
		ElementsDraggable: true,
		AllowNestedGroups: true,
		Intersects:        types.Intersects,
	}
}
