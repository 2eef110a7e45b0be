package config

// Config is the root scene description
type Config struct {
	Settings    Settings           `yaml:"settings" json:"settings"`
	Groups      []GroupConfig      `yaml:"groups" json:"groups"`
	Elements    []ElementConfig    `yaml:"elements" json:"elements"`
	Connections []ConnectionConfig `yaml:"connections,omitempty" json:"connections,omitempty"`
	DragGroups  []DragGroupConfig  `yaml:"dragGroups,omitempty" json:"dragGroups,omitempty"`
	Selection   []string           `yaml:"selection,omitempty" json:"selection,omitempty"` // Initial drag selection
}

// Settings contains global drag settings
type Settings struct {
	ElementsDraggableSetting *bool  `yaml:"elementsDraggable,omitempty" json:"elementsDraggable,omitempty"` // Default true
	AllowNestedGroups        *bool  `yaml:"allowNestedGroups,omitempty" json:"allowNestedGroups,omitempty"` // Default true
	Canvas                   string `yaml:"canvas,omitempty" json:"canvas,omitempty"`                       // "WIDTHxHEIGHT", e.g. "800x600"
	Script                   string `yaml:"script,omitempty" json:"script,omitempty"`                       // Lua listener file
}

// GroupConfig describes a group and its container element
type GroupConfig struct {
	ID           string `yaml:"id" json:"id"`
	Bounds       string `yaml:"bounds" json:"bounds"`                     // "x,y,w,h" absolute
	Parent       string `yaml:"parent,omitempty" json:"parent,omitempty"` // Enclosing group ID
	Droppable    *bool  `yaml:"droppable,omitempty" json:"droppable,omitempty"`
	Enabled      *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Constrain    bool   `yaml:"constrain,omitempty" json:"constrain,omitempty"`
	Ghost        bool   `yaml:"ghost,omitempty" json:"ghost,omitempty"`
	DropOverride bool   `yaml:"dropOverride,omitempty" json:"dropOverride,omitempty"`
}

// ElementConfig describes a plain element
type ElementConfig struct {
	ID           string            `yaml:"id" json:"id"`
	Bounds       string            `yaml:"bounds" json:"bounds"`
	Group        string            `yaml:"group,omitempty" json:"group,omitempty"`
	NotDraggable bool              `yaml:"notDraggable,omitempty" json:"notDraggable,omitempty"`
	Attributes   map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ConnectionConfig joins two elements or group containers
type ConnectionConfig struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// DragGroupConfig names a set of elements that move together
type DragGroupConfig struct {
	Name    string                  `yaml:"name" json:"name"`
	Members []DragGroupMemberConfig `yaml:"members" json:"members"`
}

// DragGroupMemberConfig is one drag group member. Active defaults to true.
type DragGroupMemberConfig struct {
	ID     string `yaml:"id" json:"id"`
	Active *bool  `yaml:"active,omitempty" json:"active,omitempty"`
}
