package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/dragcore/internal/types"
)

const (
	DefaultConfigDir  = ".config/dragcore"
	DefaultConfigFile = "scene.yaml"
)

// DefaultCanvas is used when settings.canvas is not set
var DefaultCanvas = types.Size{Width: 800, Height: 600}

// LoadConfig loads a scene from the specified path or default location
// If path is empty, uses ~/.config/dragcore/scene.yaml
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		yamlPath := filepath.Join(home, DefaultConfigDir, "scene.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "scene.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return nil, fmt.Errorf("no scene file found at %s or %s", yamlPath, jsonPath)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := LoadConfigFromBytes(data, ext)
	if err != nil {
		return nil, err
	}

	// script paths are relative to the scene file
	if cfg.Settings.Script != "" && !filepath.IsAbs(cfg.Settings.Script) {
		cfg.Settings.Script = filepath.Join(filepath.Dir(path), cfg.Settings.Script)
	}
	return cfg, nil
}

// LoadConfigFromBytes loads a scene from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default scene file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// ElementsDraggable returns the global dragging switch, true unless disabled
func (s *Settings) ElementsDraggable() bool {
	return boolOr(s.ElementsDraggableSetting, true)
}

// NestedGroupsAllowed reports whether group containers may be dropped into other groups
func (s *Settings) NestedGroupsAllowed() bool {
	return boolOr(s.AllowNestedGroups, true)
}

// CanvasSize returns the configured canvas or DefaultCanvas
func (s *Settings) CanvasSize() types.Size {
	if s.Canvas == "" {
		return DefaultCanvas
	}
	size, err := ParseCanvas(s.Canvas)
	if err != nil {
		return DefaultCanvas
	}
	return size
}

// GetGroup returns a group definition by ID
func (c *Config) GetGroup(id string) (*GroupConfig, error) {
	for i := range c.Groups {
		if c.Groups[i].ID == id {
			return &c.Groups[i], nil
		}
	}
	return nil, fmt.Errorf("group not found: %s", id)
}

// GetElement returns an element definition by ID
func (c *Config) GetElement(id string) (*ElementConfig, error) {
	for i := range c.Elements {
		if c.Elements[i].ID == id {
			return &c.Elements[i], nil
		}
	}
	return nil, fmt.Errorf("element not found: %s", id)
}

// GroupsInNestingOrder returns groups with every parent before its children
func (c *Config) GroupsInNestingOrder() []GroupConfig {
	placed := make(map[string]bool, len(c.Groups))
	out := make([]GroupConfig, 0, len(c.Groups))
	for len(out) < len(c.Groups) {
		progress := false
		for _, g := range c.Groups {
			if placed[g.ID] || (g.Parent != "" && !placed[g.Parent]) {
				continue
			}
			placed[g.ID] = true
			out = append(out, g)
			progress = true
		}
		if !progress {
			// unresolved parents; Validate reports these
			break
		}
	}
	return out
}

// ToRect parses the group bounds
func (gc *GroupConfig) ToRect() (types.Rect, error) {
	return ParseBounds(gc.Bounds)
}

// IsDroppable returns the droppable flag, true unless disabled
func (gc *GroupConfig) IsDroppable() bool {
	return boolOr(gc.Droppable, true)
}

// IsEnabled returns the enabled flag, true unless disabled
func (gc *GroupConfig) IsEnabled() bool {
	return boolOr(gc.Enabled, true)
}

// ToRect parses the element bounds
func (ec *ElementConfig) ToRect() (types.Rect, error) {
	return ParseBounds(ec.Bounds)
}

// IsActive returns the member's active flag, true unless disabled
func (m *DragGroupMemberConfig) IsActive() bool {
	return boolOr(m.Active, true)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
