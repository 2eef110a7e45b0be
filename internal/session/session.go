// Package session assembles a scene description into a working drag setup:
// scene, group registry, drag handler, drag engine, event trace and optional
// Lua listeners.
package session

import (
	"fmt"

	"github.com/yourusername/dragcore/internal/config"
	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/groups"
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/mouse"
	"github.com/yourusername/dragcore/internal/scene"
	"github.com/yourusername/dragcore/internal/script"
	"github.com/yourusername/dragcore/internal/trace"
	"github.com/yourusername/dragcore/internal/types"
)

// Session is one loaded scene ready to be dragged
type Session struct {
	Config   *config.Config
	Scene    *scene.Scene
	Registry *groups.Registry
	Handler  *drag.ElementDragHandler
	Engine   *mouse.Engine
	Trace    *trace.Recorder
	Script   *script.Listeners // nil without settings.script
}

// Result describes one completed gesture
type Result struct {
	Element   string
	Accepted  bool
	Start     types.Rect
	Bounds    types.Rect
	OldParent string
	NewParent string
	Events    []string // trace entries of this gesture
}

// Dropped reports whether the gesture changed the element's group
func (r *Result) Dropped() bool {
	return r.OldParent != r.NewParent
}

// New builds a session from a validated config
func New(cfg *config.Config) (*Session, error) {
	reg := groups.NewRegistry()
	sc := scene.New(reg)

	s := &Session{
		Config:   cfg,
		Scene:    sc,
		Registry: reg,
		Trace:    trace.NewRecorder(),
	}

	if err := s.loadGroups(); err != nil {
		return nil, err
	}
	if err := s.loadElements(); err != nil {
		return nil, err
	}
	for i, c := range cfg.Connections {
		if _, err := sc.Connect(c.Source, c.Target); err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
	}

	opts := drag.DefaultOptions()
	opts.ElementsDraggable = cfg.Settings.ElementsDraggable()
	opts.AllowNestedGroups = cfg.Settings.NestedGroupsAllowed()
	s.Handler = drag.NewElementDragHandler(sc, reg, opts)

	for _, dg := range cfg.DragGroups {
		for _, m := range dg.Members {
			s.Handler.AddToDragGroup(drag.DragGroupSpec{Name: dg.Name, Active: m.IsActive()}, m.ID)
		}
	}
	s.Handler.AddToDragSelection(cfg.Selection...)

	s.Trace.Bind(sc)

	if path := cfg.Settings.Script; path != "" {
		l, err := script.Load(path)
		if err != nil {
			return nil, err
		}
		l.Bind(sc)
		s.Script = l
	}

	s.Engine = mouse.NewEngine(s.Handler, sc)

	logging.Info().
		Int("groups", reg.Len()).
		Int("elements", len(cfg.Elements)).
		Int("dragGroups", len(cfg.DragGroups)).
		Bool("script", s.Script != nil).
		Msg("session ready")
	return s, nil
}

func (s *Session) loadGroups() error {
	ordered := s.Config.GroupsInNestingOrder()
	if len(ordered) != len(s.Config.Groups) {
		return fmt.Errorf("unresolved group nesting")
	}

	for _, gc := range ordered {
		r, err := gc.ToRect()
		if err != nil {
			return fmt.Errorf("group %s: %w", gc.ID, err)
		}
		if _, err := s.Scene.AddElement(gc.ID, r); err != nil {
			return fmt.Errorf("group %s: %w", gc.ID, err)
		}

		g := groups.NewGroup(gc.ID, gc.ID)
		g.Droppable = gc.IsDroppable()
		g.Enabled = gc.IsEnabled()
		g.Constrain = gc.Constrain
		g.Ghost = gc.Ghost
		g.DropOverride = gc.DropOverride
		if err := s.Registry.Add(g); err != nil {
			return err
		}

		if gc.Parent != "" {
			if err := s.Registry.AddToGroup(s.Registry.Get(gc.Parent), gc.ID); err != nil {
				return fmt.Errorf("group %s: %w", gc.ID, err)
			}
		}
	}
	return nil
}

func (s *Session) loadElements() error {
	for _, ec := range s.Config.Elements {
		r, err := ec.ToRect()
		if err != nil {
			return fmt.Errorf("element %s: %w", ec.ID, err)
		}
		if _, err := s.Scene.AddElement(ec.ID, r); err != nil {
			return fmt.Errorf("element %s: %w", ec.ID, err)
		}
		for k, v := range ec.Attributes {
			s.Scene.SetAttribute(ec.ID, k, v)
		}
		if ec.NotDraggable {
			s.Scene.SetAttribute(ec.ID, drag.AttrNotDraggable, "true")
		}
		if ec.Group != "" {
			if err := s.Registry.AddToGroup(s.Registry.Get(ec.Group), ec.ID); err != nil {
				return fmt.Errorf("element %s: %w", ec.ID, err)
			}
		}
	}
	return nil
}

// Close releases the script state
func (s *Session) Close() {
	if s.Script != nil {
		s.Script.Close()
	}
}

// Drag runs one whole gesture: press at the element's center, steps moves
// along delta, release at the end
func (s *Session) Drag(elementID string, delta types.Point, steps int) (*Result, error) {
	el := s.Scene.Element(elementID)
	if el == nil {
		return nil, fmt.Errorf("element not found: %s", elementID)
	}
	if steps < 1 {
		steps = 1
	}

	res := &Result{
		Element:   elementID,
		Start:     el.Bounds,
		OldParent: s.parentID(elementID),
	}
	first := s.Trace.Len()

	press := el.Bounds.Center()
	res.Accepted = s.Engine.Press(elementID, pointerEvent(press))
	if res.Accepted {
		for i := 1; i <= steps; i++ {
			f := float64(i) / float64(steps)
			s.Engine.Move(pointerEvent(press.Add(types.Point{X: delta.X * f, Y: delta.Y * f})))
		}
		s.Engine.Release(pointerEvent(press.Add(delta)))
	}

	res.Bounds = s.Scene.Bounds(elementID)
	res.NewParent = s.parentID(elementID)
	res.Events = s.Trace.Lines()[first:]

	logging.Info().
		Str("element", elementID).
		Bool("accepted", res.Accepted).
		Str("from", res.OldParent).
		Str("to", res.NewParent).
		Msg("drag finished")
	return res, nil
}

// PressAt begins a gesture on whatever element is under p
func (s *Session) PressAt(p types.Point) (string, bool) {
	id, ok := s.Scene.ElementAt(p)
	if !ok {
		return "", false
	}
	return id, s.Engine.Press(id, pointerEvent(p))
}

// MoveTo reports pointer motion to the active gesture
func (s *Session) MoveTo(p types.Point) {
	s.Engine.Move(pointerEvent(p))
}

// ReleaseAt ends the active gesture
func (s *Session) ReleaseAt(p types.Point) {
	s.Engine.Release(pointerEvent(p))
}

// ToggleSelectionAt flips drag selection for the element under p
func (s *Session) ToggleSelectionAt(p types.Point) (string, bool) {
	id, ok := s.Scene.ElementAt(p)
	if !ok {
		return "", false
	}
	s.Handler.ToggleDragSelection(id)
	return id, true
}

func (s *Session) parentID(elementID string) string {
	if g := s.Registry.ParentGroup(elementID); g != nil {
		return g.ID
	}
	return ""
}

func pointerEvent(p types.Point) mouse.Event {
	return mouse.Event{X: p.X, Y: p.Y, Button: mouse.ButtonPrimary}
}
