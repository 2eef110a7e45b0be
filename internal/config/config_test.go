package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/dragcore/internal/types"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Rect
		hasError bool
	}{
		{"0,0,60,40", types.Rect{Width: 60, Height: 40}, false},
		{"80, 30, 200, 200", types.Rect{X: 80, Y: 30, Width: 200, Height: 200}, false},
		{"-10,-5.5,1.5,2", types.Rect{X: -10, Y: -5.5, Width: 1.5, Height: 2}, false},
		{"  1,2,3,4  ", types.Rect{X: 1, Y: 2, Width: 3, Height: 4}, false}, // whitespace
		{"1,2,-3,4", types.Rect{}, true},
		{"1,2,3", types.Rect{}, true},
		{"a,b,c,d", types.Rect{}, true},
		{"", types.Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBounds(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseBounds(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseBounds(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseBounds(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Point
		hasError bool
	}{
		{"100,50", types.Point{X: 100, Y: 50}, false},
		{"-20, 0.5", types.Point{X: -20, Y: 0.5}, false},
		{"100", types.Point{}, true},
		{"x,y", types.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePoint(tt.input)
			if (err != nil) != tt.hasError {
				t.Fatalf("ParsePoint(%q) error = %v, wantErr %v", tt.input, err, tt.hasError)
			}
			if got != tt.expected {
				t.Errorf("ParsePoint(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseCanvas(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Size
		hasError bool
	}{
		{"800x600", types.Size{Width: 800, Height: 600}, false},
		{"120 x 40", types.Size{Width: 120, Height: 40}, false},
		{"0x600", types.Size{}, true},
		{"800", types.Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCanvas(tt.input)
			if (err != nil) != tt.hasError {
				t.Fatalf("ParseCanvas(%q) error = %v, wantErr %v", tt.input, err, tt.hasError)
			}
			if got != tt.expected {
				t.Errorf("ParseCanvas(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatBounds(t *testing.T) {
	tests := []struct {
		input    types.Rect
		expected string
	}{
		{types.Rect{X: 80, Y: 30, Width: 200, Height: 200}, "80,30,200,200"},
		{types.Rect{X: 1.5, Y: -2, Width: 3, Height: 4.25}, "1.50,-2,3,4.25"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatBounds(tt.input); got != tt.expected {
				t.Errorf("FormatBounds(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

const validYAML = `
settings:
  allowNestedGroups: false
  canvas: 400x300
groups:
  - id: outer
    bounds: 0,0,300,300
  - id: inner
    bounds: 50,50,100,100
    parent: outer
    constrain: true
  - id: bin
    bounds: 320,0,50,50
    droppable: false
elements:
  - id: x
    bounds: 60,60,20,20
    group: inner
  - id: y
    bounds: 0,0,10,10
    notDraggable: true
connections:
  - source: x
    target: y
dragGroups:
  - name: pair
    members:
      - id: x
      - id: y
        active: false
selection: [y]
`

func TestLoadConfigFromBytes_YAML(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(validYAML), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error = %v", err)
	}

	if len(cfg.Groups) != 3 || len(cfg.Elements) != 2 {
		t.Fatalf("got %d groups and %d elements", len(cfg.Groups), len(cfg.Elements))
	}
	if !cfg.Settings.ElementsDraggable() {
		t.Error("elementsDraggable should default to true")
	}
	if cfg.Settings.NestedGroupsAllowed() {
		t.Error("allowNestedGroups should be false")
	}
	if got := cfg.Settings.CanvasSize(); got != (types.Size{Width: 400, Height: 300}) {
		t.Errorf("CanvasSize() = %v", got)
	}

	bin, err := cfg.GetGroup("bin")
	if err != nil {
		t.Fatal(err)
	}
	if bin.IsDroppable() || !bin.IsEnabled() {
		t.Error("bin should be enabled and not droppable")
	}

	inner, _ := cfg.GetGroup("inner")
	if !inner.Constrain || inner.Parent != "outer" {
		t.Errorf("inner = %+v", inner)
	}

	members := cfg.DragGroups[0].Members
	if !members[0].IsActive() || members[1].IsActive() {
		t.Error("drag group member active flags not applied")
	}
}

func TestLoadConfigFromBytes_JSON(t *testing.T) {
	data := `{
		"groups": [{"id": "g", "bounds": "80,30,200,200"}],
		"elements": [{"id": "x", "bounds": "0,0,60,40"}]
	}`
	cfg, err := LoadConfigFromBytes([]byte(data), "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error = %v", err)
	}
	el, err := cfg.GetElement("x")
	if err != nil {
		t.Fatal(err)
	}
	r, _ := el.ToRect()
	if r != (types.Rect{Width: 60, Height: 40}) {
		t.Errorf("x bounds = %v", r)
	}
	if cfg.Settings.CanvasSize() != DefaultCanvas {
		t.Error("canvas should fall back to the default")
	}
}

func TestLoadConfigFromBytes_UnsupportedFormat(t *testing.T) {
	if _, err := LoadConfigFromBytes([]byte("{}"), "toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "duplicate ID across groups and elements",
			yaml: `
groups: [{id: a, bounds: "0,0,10,10"}]
elements: [{id: a, bounds: "0,0,10,10"}]`,
			wantErr: "duplicate ID",
		},
		{
			name:    "missing element ID",
			yaml:    `elements: [{bounds: "0,0,10,10"}]`,
			wantErr: "missing ID",
		},
		{
			name:    "bad bounds",
			yaml:    `elements: [{id: a, bounds: "0,0"}]`,
			wantErr: "invalid bounds",
		},
		{
			name:    "unknown element group",
			yaml:    `elements: [{id: a, bounds: "0,0,1,1", group: nope}]`,
			wantErr: "unknown group",
		},
		{
			name:    "unknown parent",
			yaml:    `groups: [{id: a, bounds: "0,0,1,1", parent: nope}]`,
			wantErr: "unknown parent",
		},
		{
			name: "nesting cycle",
			yaml: `
groups:
  - {id: a, bounds: "0,0,1,1", parent: b}
  - {id: b, bounds: "0,0,1,1", parent: a}`,
			wantErr: "nesting cycle",
		},
		{
			name: "unknown connection endpoint",
			yaml: `
elements: [{id: a, bounds: "0,0,1,1"}]
connections: [{source: a, target: b}]`,
			wantErr: "unknown target",
		},
		{
			name: "element in two drag groups",
			yaml: `
elements: [{id: a, bounds: "0,0,1,1"}]
dragGroups:
  - {name: one, members: [{id: a}]}
  - {name: two, members: [{id: a}]}`,
			wantErr: "is in dragGroups",
		},
		{
			name: "duplicate drag group",
			yaml: `
dragGroups:
  - {name: one}
  - {name: one}`,
			wantErr: "duplicate dragGroup",
		},
		{
			name:    "unknown selection",
			yaml:    `selection: [ghost]`,
			wantErr: "selection references unknown element",
		},
		{
			name:    "bad canvas",
			yaml:    `settings: {canvas: big}`,
			wantErr: "settings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromBytes([]byte(tt.yaml), "yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestGroupsInNestingOrder(t *testing.T) {
	cfg := &Config{Groups: []GroupConfig{
		{ID: "c", Parent: "b"},
		{ID: "b", Parent: "a"},
		{ID: "a"},
		{ID: "d"},
	}}

	order := cfg.GroupsInNestingOrder()
	pos := make(map[string]int)
	for i, g := range order {
		pos[g.ID] = i
	}
	if len(order) != 4 {
		t.Fatalf("got %d groups, want 4", len(order))
	}
	if pos["a"] > pos["b"] || pos["b"] > pos["c"] {
		t.Errorf("parents must come first, got %v", order)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	data := validYAML + "\n"
	data = strings.Replace(data, "canvas: 400x300", "canvas: 400x300\n  script: listeners.lua", 1)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if want := filepath.Join(dir, "listeners.lua"); cfg.Settings.Script != want {
		t.Errorf("script = %q, want %q", cfg.Settings.Script, want)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
