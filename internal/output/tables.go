package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/dragcore/internal/config"
	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/groups"
	"github.com/yourusername/dragcore/internal/scene"
	"github.com/yourusername/dragcore/internal/session"
)

// PrintElementsTable prints every element of the scene
func PrintElementsTable(w io.Writer, s *scene.Scene) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Kind", "Bounds", "Parent", "Markers")

	reg := s.Registry()
	for _, el := range s.Elements() {
		kind := "element"
		if reg.GroupForElement(el.ID) != nil {
			kind = "group"
		}
		parent := "-"
		if g := reg.ParentGroup(el.ID); g != nil {
			parent = g.ID
		}

		table.Append(
			truncate(ElementLabel(s, el.ID), 24),
			kind,
			config.FormatBounds(el.Bounds),
			parent,
			joinOrDash(s.Markers(el.ID)),
		)
	}

	table.Render()
}

// PrintGroupsTable prints group properties and members
func PrintGroupsTable(w io.Writer, reg *groups.Registry) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Parent", "Droppable", "Enabled", "Constrain", "Ghost", "Override", "Members")

	reg.ForEach(func(g *groups.Group) {
		parent := "-"
		if p := reg.Parent(g); p != nil {
			parent = p.ID
		}
		table.Append(
			g.ID,
			parent,
			check(g.Droppable),
			check(g.Enabled),
			check(g.Constrain),
			check(g.Ghost),
			check(g.DropOverride),
			joinOrDash(reg.Members(g)),
		)
	})

	table.Render()
}

// PrintDragGroupsTable prints drag groups and the drag selection
func PrintDragGroupsTable(w io.Writer, h *drag.ElementDragHandler) {
	table := tablewriter.NewWriter(w)
	table.Header("Drag Group", "Members")

	for _, name := range h.DragGroupNames() {
		var members []string
		for _, m := range h.DragGroupMembers(name) {
			if m.Active {
				members = append(members, m.ElementID)
			} else {
				members = append(members, m.ElementID+" (inactive)")
			}
		}
		table.Append(name, joinOrDash(members))
	}
	table.Append("(selection)", joinOrDash(h.DragSelection()))

	table.Render()
}

// PrintResult prints the outcome of one gesture
func PrintResult(w io.Writer, res *session.Result) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if !res.Accepted {
		red.Fprintf(w, "✗ drag of %s refused\n", res.Element)
		return
	}
	green.Fprintf(w, "✓ dragged %s\n", res.Element)
	fmt.Fprintf(w, "  From:   %s\n", config.FormatBounds(res.Start))
	fmt.Fprintf(w, "  To:     %s\n", config.FormatBounds(res.Bounds))
	if res.Dropped() {
		green.Fprintf(w, "  Group:  %s → %s\n", orDash(res.OldParent), orDash(res.NewParent))
	} else {
		fmt.Fprintf(w, "  Group:  %s (unchanged)\n", orDash(res.NewParent))
	}
	fmt.Fprintf(w, "  Events: %d\n", len(res.Events))
}

// Helper functions

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

func check(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
