package main

import (
	"testing"

	"github.com/yourusername/dragcore/internal/config"
	"github.com/yourusername/dragcore/internal/session"
	"github.com/yourusername/dragcore/internal/types"
)

func TestDefaultScene(t *testing.T) {
	cfg, err := config.LoadConfigFromBytes([]byte(defaultScene), "yaml")
	if err != nil {
		t.Fatalf("example scene does not load: %v", err)
	}
	sess, err := session.New(cfg)
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	defer sess.Close()

	tests := []struct {
		name       string
		element    string
		delta      types.Point
		wantAccept bool
		wantParent string
	}{
		{"into the inner lane", "card", types.Point{X: -400, Y: -200}, true, "lane"},
		{"fixed element refuses", "fixed", types.Point{X: 10, Y: 10}, false, ""},
		{"locked group keeps its pin", "pin", types.Point{X: -400, Y: 100}, true, "locked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := sess.Drag(tt.element, tt.delta, 4)
			if err != nil {
				t.Fatalf("Drag() error = %v", err)
			}
			if res.Accepted != tt.wantAccept {
				t.Errorf("Accepted = %v, want %v", res.Accepted, tt.wantAccept)
			}
			if res.NewParent != tt.wantParent {
				t.Errorf("NewParent = %q, want %q", res.NewParent, tt.wantParent)
			}
		})
	}
}
