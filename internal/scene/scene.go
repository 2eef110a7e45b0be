// Package scene is an in-memory element store and event bus that backs the
// drag handler: element bounds, attributes, markers, connections and
// listeners.
package scene

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/yourusername/dragcore/internal/groups"
	"github.com/yourusername/dragcore/internal/types"
)

// Element is a positioned, identifiable box on the canvas
type Element struct {
	ID         string
	Bounds     types.Rect // Absolute canvas bounds
	Attributes map[string]string

	markers map[string]bool
}

// Connection joins two elements
type Connection struct {
	ID     string
	Source string
	Target string

	markers map[string]bool
}

// Listener receives a fired event payload. Returning false refuses the
// action for events that can be vetoed.
type Listener func(payload any) bool

// Scene holds every element, connection and listener of a diagram
type Scene struct {
	elements    map[string]*Element
	order       []string // insertion order, later elements paint on top
	connections []*Connection
	registry    *groups.Registry
	listeners   map[string][]Listener

	hoverSuspended bool
}

// New creates an empty scene. The registry provides group nesting for
// relative positions and container moves.
func New(registry *groups.Registry) *Scene {
	if registry == nil {
		registry = groups.NewRegistry()
	}
	return &Scene{
		elements:  make(map[string]*Element),
		registry:  registry,
		listeners: make(map[string][]Listener),
	}
}

// Registry returns the group registry backing the scene
func (s *Scene) Registry() *groups.Registry {
	return s.registry
}

// AddElement stores an element. An empty ID is replaced with a generated one.
// Returns the element ID.
func (s *Scene) AddElement(id string, bounds types.Rect) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, ok := s.elements[id]; ok {
		return "", fmt.Errorf("duplicate element ID: %s", id)
	}
	if bounds.Width < 0 || bounds.Height < 0 {
		return "", fmt.Errorf("element %s: negative size", id)
	}
	s.elements[id] = &Element{
		ID:         id,
		Bounds:     bounds,
		Attributes: make(map[string]string),
		markers:    make(map[string]bool),
	}
	s.order = append(s.order, id)
	return id, nil
}

// Element returns an element by ID, or nil
func (s *Scene) Element(id string) *Element {
	return s.elements[id]
}

// Elements returns all elements in insertion order
func (s *Scene) Elements() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// Connect joins source and target
func (s *Scene) Connect(source, target string) (*Connection, error) {
	if s.elements[source] == nil {
		return nil, fmt.Errorf("unknown connection source: %s", source)
	}
	if s.elements[target] == nil {
		return nil, fmt.Errorf("unknown connection target: %s", target)
	}
	c := &Connection{
		ID:      uuid.NewString(),
		Source:  source,
		Target:  target,
		markers: make(map[string]bool),
	}
	s.connections = append(s.connections, c)
	return c, nil
}

// Connections returns every connection in creation order
func (s *Scene) Connections() []*Connection {
	out := make([]*Connection, len(s.connections))
	copy(out, s.connections)
	return out
}

// Offset returns the absolute position of an element
func (s *Scene) Offset(id string) types.Point {
	if el := s.elements[id]; el != nil {
		return el.Bounds.Origin()
	}
	return types.Point{}
}

// Size returns the size of an element
func (s *Scene) Size(id string) types.Size {
	if el := s.elements[id]; el != nil {
		return el.Bounds.Size()
	}
	return types.Size{}
}

// Bounds returns the absolute bounds of an element
func (s *Scene) Bounds(id string) types.Rect {
	if el := s.elements[id]; el != nil {
		return el.Bounds
	}
	return types.Rect{}
}

// Position returns an element's position relative to its parent group container
func (s *Scene) Position(id string) types.Point {
	pos := s.Offset(id)
	if parent := s.registry.ParentGroup(id); parent != nil {
		pos = pos.Sub(s.Offset(parent.ElementID))
	}
	return pos
}

// Attribute returns an element attribute
func (s *Scene) Attribute(id, name string) (string, bool) {
	el := s.elements[id]
	if el == nil {
		return "", false
	}
	v, ok := el.Attributes[name]
	return v, ok
}

// SetAttribute sets an element attribute
func (s *Scene) SetAttribute(id, name, value string) {
	if el := s.elements[id]; el != nil {
		el.Attributes[name] = value
	}
}

// AddMarker adds markers to an element
func (s *Scene) AddMarker(id string, markers ...string) {
	el := s.elements[id]
	if el == nil {
		return
	}
	for _, m := range markers {
		el.markers[m] = true
	}
}

// RemoveMarker removes markers from an element
func (s *Scene) RemoveMarker(id string, markers ...string) {
	el := s.elements[id]
	if el == nil {
		return
	}
	for _, m := range markers {
		delete(el.markers, m)
	}
}

// HasMarker reports whether an element carries a marker
func (s *Scene) HasMarker(id, marker string) bool {
	el := s.elements[id]
	return el != nil && el.markers[marker]
}

// Markers returns an element's markers, sorted
func (s *Scene) Markers(id string) []string {
	el := s.elements[id]
	if el == nil {
		return nil
	}
	return sortedKeys(el.markers)
}

// MarkConnections toggles markers on connections attached to id at end
func (s *Scene) MarkConnections(id string, end types.ConnectionEnd, add bool, markers ...string) {
	for _, c := range s.connections {
		attached := (end == types.ConnectionSource && c.Source == id) ||
			(end == types.ConnectionTarget && c.Target == id)
		if !attached {
			continue
		}
		for _, m := range markers {
			if add {
				c.markers[m] = true
			} else {
				delete(c.markers, m)
			}
		}
	}
}

// ConnectionMarkers returns the markers of a connection, sorted
func (s *Scene) ConnectionMarkers(connectionID string) []string {
	for _, c := range s.connections {
		if c.ID == connectionID {
			return sortedKeys(c.markers)
		}
	}
	return nil
}

// Draw moves an element to an absolute position. Moving a group container
// carries its members along.
func (s *Scene) Draw(id string, pos types.Point) types.RedrawResult {
	result := types.RedrawResult{Element: id}
	el := s.elements[id]
	if el == nil {
		return result
	}

	delta := pos.Sub(el.Bounds.Origin())
	el.Bounds.X, el.Bounds.Y = pos.X, pos.Y
	result.Moved = append(result.Moved, id)

	if g := s.registry.GroupForElement(id); g != nil && delta != (types.Point{}) {
		result.Moved = append(result.Moved, s.translateMembers(g, delta)...)
	}

	moved := make(map[string]bool, len(result.Moved))
	for _, m := range result.Moved {
		moved[m] = true
	}
	for _, c := range s.connections {
		if moved[c.Source] || moved[c.Target] {
			result.Connections = append(result.Connections, c.ID)
		}
	}
	return result
}

func (s *Scene) translateMembers(g *groups.Group, delta types.Point) []string {
	var moved []string
	for _, member := range s.registry.Members(g) {
		el := s.elements[member]
		if el == nil {
			continue
		}
		el.Bounds = el.Bounds.Translate(delta)
		moved = append(moved, member)
		if nested := s.registry.GroupForElement(member); nested != nil {
			moved = append(moved, s.translateMembers(nested, delta)...)
		}
	}
	return moved
}

// Bind registers a listener for an event
func (s *Scene) Bind(event string, l Listener) {
	s.listeners[event] = append(s.listeners[event], l)
}

// Fire delivers payload to every listener of event. Every listener runs;
// the result is false if any of them returned false.
func (s *Scene) Fire(event string, payload any) bool {
	result := true
	for _, l := range s.listeners[event] {
		if !l(payload) {
			result = false
		}
	}
	return result
}

// SetHoverSuspended toggles hover detection while a drag is in progress
func (s *Scene) SetHoverSuspended(suspended bool) {
	s.hoverSuspended = suspended
}

// HoverSuspended reports whether hover detection is suspended
func (s *Scene) HoverSuspended() bool {
	return s.hoverSuspended
}

// ElementAt returns the element under p. Plain elements win over group
// containers (topmost first); among containers the most deeply nested wins.
func (s *Scene) ElementAt(p types.Point) (string, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		el := s.elements[s.order[i]]
		if s.registry.GroupForElement(el.ID) == nil && el.Bounds.Contains(p) {
			return el.ID, true
		}
	}

	best, bestDepth := "", -1
	for _, id := range s.order {
		g := s.registry.GroupForElement(id)
		if g == nil || !s.elements[id].Bounds.Contains(p) {
			continue
		}
		if d := s.registry.Depth(g); d > bestDepth {
			best, bestDepth = id, d
		}
	}
	return best, bestDepth >= 0
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
