package groups

import (
	"fmt"
	"sort"
)

// Group is a container element that other elements can be dropped into
type Group struct {
	ID        string // Unique group identifier
	ElementID string // Container element for the group

	Droppable    bool // Accepts elements dropped onto it
	Enabled      bool // Disabled groups are ignored as drop targets
	Constrain    bool // Members may not be dragged outside the group
	Ghost        bool // Members leave the container via a ghost proxy while dragging
	DropOverride bool // The group may veto its members being dropped elsewhere

	// DropVeto refines DropOverride. When nil, DropOverride alone decides.
	DropVeto func(elementID string, target *Group) bool
}

// NewGroup returns a droppable, enabled group
func NewGroup(id, elementID string) *Group {
	return &Group{
		ID:        id,
		ElementID: elementID,
		Droppable: true,
		Enabled:   true,
	}
}

// OverrideDrop reports whether this group keeps elementID when it is
// released over target.
func (g *Group) OverrideDrop(elementID string, target *Group) bool {
	if !g.DropOverride {
		return false
	}
	if g.DropVeto == nil {
		return true
	}
	return g.DropVeto(elementID, target)
}

// Registry owns the group hierarchy and element membership.
// Parent associations live here, keyed by element id, rather than on elements.
type Registry struct {
	groups    []*Group          // registration order
	byID      map[string]*Group // group id -> group
	byElement map[string]*Group // container element id -> group
	parentOf  map[string]string // member element id -> group id
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byID:      make(map[string]*Group),
		byElement: make(map[string]*Group),
		parentOf:  make(map[string]string),
	}
}

// Add registers a group
func (r *Registry) Add(g *Group) error {
	if g == nil || g.ID == "" {
		return fmt.Errorf("group missing ID")
	}
	if _, ok := r.byID[g.ID]; ok {
		return fmt.Errorf("duplicate group ID: %s", g.ID)
	}
	if g.ElementID == "" {
		g.ElementID = g.ID
	}
	if other, ok := r.byElement[g.ElementID]; ok {
		return fmt.Errorf("element %s is already the container of group %s", g.ElementID, other.ID)
	}

	r.groups = append(r.groups, g)
	r.byID[g.ID] = g
	r.byElement[g.ElementID] = g
	return nil
}

// Get returns a group by ID, or nil
func (r *Registry) Get(id string) *Group {
	return r.byID[id]
}

// Len returns the number of registered groups
func (r *Registry) Len() int {
	return len(r.groups)
}

// ForEach visits every group in registration order
func (r *Registry) ForEach(fn func(g *Group)) {
	for _, g := range r.groups {
		fn(g)
	}
}

// GroupForElement returns the group whose container is elementID, or nil
func (r *Registry) GroupForElement(elementID string) *Group {
	return r.byElement[elementID]
}

// ParentGroup returns the group elementID is a member of, or nil
func (r *Registry) ParentGroup(elementID string) *Group {
	id, ok := r.parentOf[elementID]
	if !ok {
		return nil
	}
	return r.byID[id]
}

// Parent returns the group that g is nested in, or nil
func (r *Registry) Parent(g *Group) *Group {
	if g == nil {
		return nil
	}
	return r.ParentGroup(g.ElementID)
}

// Members returns the element ids directly inside g, sorted
func (r *Registry) Members(g *Group) []string {
	var members []string
	for elID, gid := range r.parentOf {
		if gid == g.ID {
			members = append(members, elID)
		}
	}
	sort.Strings(members)
	return members
}

// Ancestors returns the groups enclosing g, nearest first
func (r *Registry) Ancestors(g *Group) []*Group {
	var out []*Group
	for p := r.Parent(g); p != nil; p = r.Parent(p) {
		out = append(out, p)
		if len(out) > len(r.groups) {
			break
		}
	}
	return out
}

// Descendants returns every group nested (at any depth) inside g
func (r *Registry) Descendants(g *Group) []*Group {
	var out []*Group
	for _, candidate := range r.groups {
		if candidate != g && r.IsDescendant(candidate, g) {
			out = append(out, candidate)
		}
	}
	return out
}

// IsDescendant reports whether g is nested (at any depth) inside of
func (r *Registry) IsDescendant(g, of *Group) bool {
	if g == nil || of == nil {
		return false
	}
	for _, a := range r.Ancestors(g) {
		if a == of {
			return true
		}
	}
	return false
}

// IsAncestor reports whether g encloses (at any depth) of
func (r *Registry) IsAncestor(g, of *Group) bool {
	return r.IsDescendant(of, g)
}

// Depth returns the nesting level of g; top-level groups are 0
func (r *Registry) Depth(g *Group) int {
	return len(r.Ancestors(g))
}

// AddToGroup makes elementID a member of g, leaving any previous group.
// Adding a group container into itself or one of its descendants is rejected.
func (r *Registry) AddToGroup(g *Group, elementID string) error {
	if g == nil {
		return fmt.Errorf("nil group")
	}
	if _, ok := r.byID[g.ID]; !ok {
		return fmt.Errorf("group not registered: %s", g.ID)
	}
	if own := r.byElement[elementID]; own != nil {
		if own == g || r.IsDescendant(g, own) {
			return fmt.Errorf("cannot add group %s into %s: would create a cycle", own.ID, g.ID)
		}
	}
	r.parentOf[elementID] = g.ID
	return nil
}

// RemoveFromGroup clears the membership of elementID. Returns the group it
// left, or nil when it was not a member of any group.
func (r *Registry) RemoveFromGroup(elementID string) *Group {
	g := r.ParentGroup(elementID)
	delete(r.parentOf, elementID)
	return g
}
