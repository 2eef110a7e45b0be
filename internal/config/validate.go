package config

import (
	"fmt"
)

// Validate checks the scene for errors
func (c *Config) Validate() error {
	// Groups and elements share one ID space: a group ID is its container element ID
	ids := make(map[string]bool)
	groupIDs := make(map[string]bool)

	for i, g := range c.Groups {
		if g.ID == "" {
			return fmt.Errorf("group %d: missing ID", i)
		}
		if ids[g.ID] {
			return fmt.Errorf("duplicate ID: %s", g.ID)
		}
		ids[g.ID] = true
		groupIDs[g.ID] = true

		if _, err := g.ToRect(); err != nil {
			return fmt.Errorf("group %s: %w", g.ID, err)
		}
	}

	for i, el := range c.Elements {
		if el.ID == "" {
			return fmt.Errorf("element %d: missing ID", i)
		}
		if ids[el.ID] {
			return fmt.Errorf("duplicate ID: %s", el.ID)
		}
		ids[el.ID] = true

		if _, err := el.ToRect(); err != nil {
			return fmt.Errorf("element %s: %w", el.ID, err)
		}
		if el.Group != "" && !groupIDs[el.Group] {
			return fmt.Errorf("element %s references unknown group: %s", el.ID, el.Group)
		}
	}

	for _, g := range c.Groups {
		if g.Parent == "" {
			continue
		}
		if !groupIDs[g.Parent] {
			return fmt.Errorf("group %s references unknown parent: %s", g.ID, g.Parent)
		}
	}
	if err := c.validateNesting(); err != nil {
		return err
	}

	for i, conn := range c.Connections {
		if !ids[conn.Source] {
			return fmt.Errorf("connection %d: unknown source: %s", i, conn.Source)
		}
		if !ids[conn.Target] {
			return fmt.Errorf("connection %d: unknown target: %s", i, conn.Target)
		}
	}

	if err := c.validateDragGroups(ids); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, id := range c.Selection {
		if !ids[id] {
			return fmt.Errorf("selection references unknown element: %s", id)
		}
		if seen[id] {
			return fmt.Errorf("selection lists %s twice", id)
		}
		seen[id] = true
	}

	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}

// validateNesting rejects groups that are (transitively) their own parent
func (c *Config) validateNesting() error {
	parent := make(map[string]string, len(c.Groups))
	for _, g := range c.Groups {
		parent[g.ID] = g.Parent
	}
	for _, g := range c.Groups {
		visited := map[string]bool{g.ID: true}
		for p := g.Parent; p != ""; p = parent[p] {
			if visited[p] {
				return fmt.Errorf("group %s: nesting cycle through %s", g.ID, p)
			}
			visited[p] = true
		}
	}
	return nil
}

func (c *Config) validateDragGroups(ids map[string]bool) error {
	names := make(map[string]bool)
	memberOf := make(map[string]string)

	for i, dg := range c.DragGroups {
		if dg.Name == "" {
			return fmt.Errorf("dragGroup %d: missing name", i)
		}
		if names[dg.Name] {
			return fmt.Errorf("duplicate dragGroup name: %s", dg.Name)
		}
		names[dg.Name] = true

		for _, m := range dg.Members {
			if !ids[m.ID] {
				return fmt.Errorf("dragGroup %s references unknown element: %s", dg.Name, m.ID)
			}
			// an element belongs to at most one drag group
			if other, ok := memberOf[m.ID]; ok {
				return fmt.Errorf("element %s is in dragGroups %s and %s", m.ID, other, dg.Name)
			}
			memberOf[m.ID] = dg.Name
		}
	}
	return nil
}

func validateSettings(s *Settings) error {
	if s.Canvas != "" {
		if _, err := ParseCanvas(s.Canvas); err != nil {
			return err
		}
	}
	return nil
}
