package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/mouse"
	"github.com/yourusername/dragcore/internal/scene"
	"github.com/yourusername/dragcore/internal/types"
)

const vetoScript = `
moves = 0
stopped = ""

function on_drag_start(ev)
  if ev.element == "locked" then
    return false
  end
  return true
end

function on_drag_move(ev)
  moves = moves + 1
end

function on_drag_stop(ev)
  stopped = ev.element .. "@" .. ev.x .. "," .. ev.y
end
`

func mustLoad(t *testing.T, code string) *Listeners {
	t.Helper()
	l, err := LoadString("test", code)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	t.Cleanup(l.Close)
	return l
}

func TestStartVeto(t *testing.T) {
	l := mustLoad(t, vetoScript)

	tests := []struct {
		element string
		want    bool
	}{
		{"locked", false},
		{"free", true},
	}
	for _, tt := range tests {
		t.Run(tt.element, func(t *testing.T) {
			got := l.onStart(drag.DragStartPayload{Element: tt.element, Event: mouse.Event{X: 1, Y: 2, Button: mouse.ButtonPrimary}})
			if got != tt.want {
				t.Errorf("onStart(%s) = %v, want %v", tt.element, got, tt.want)
			}
		})
	}
}

func TestOnlyExplicitFalseVetoes(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"no return", `function on_drag_start(ev) end`, true},
		{"nil", `function on_drag_start(ev) return nil end`, true},
		{"zero", `function on_drag_start(ev) return 0 end`, true},
		{"false", `function on_drag_start(ev) return false end`, false},
		{"runtime error", `function on_drag_start(ev) error("boom") end`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLoad(t, tt.code)
			if got := l.onStart(drag.DragStartPayload{Element: "x"}); got != tt.want {
				t.Errorf("onStart() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBindOnScene(t *testing.T) {
	l := mustLoad(t, vetoScript)
	s := scene.New(nil)
	l.Bind(s)

	if s.Fire(drag.EventDragStart, drag.DragStartPayload{Element: "locked"}) {
		t.Error("scene should report the script's veto")
	}
	s.Fire(drag.EventDragMove, drag.DragMovePayload{Element: "x", Pos: types.Point{X: 1, Y: 1}})
	s.Fire(drag.EventDragMove, drag.DragMovePayload{Element: "x", Pos: types.Point{X: 2, Y: 2}})
	s.Fire(drag.EventDragStop, drag.DragStopPayload{Element: "x", Pos: types.Point{X: 100, Y: 50}})

	if got := l.L.GetGlobal("moves"); got != lua.LNumber(2) {
		t.Errorf("moves = %v, want 2", got)
	}
	if got := l.L.GetGlobal("stopped").String(); got != "x@100,50" {
		t.Errorf("stopped = %q, want x@100,50", got)
	}
}

func TestBindSkipsMissingHandlers(t *testing.T) {
	l := mustLoad(t, `function on_drag_stop(ev) end`)
	if l.Has(FuncDragStart) || !l.Has(FuncDragStop) {
		t.Error("Has() does not match the script")
	}
}

func TestSandbox(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"dofile", `dofile("x.lua")`},
		{"load", `load("return 1")`},
		{"require", `require("os")`},
		{"os", `os.exit(1)`},
		{"io", `io.open("x")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadString(tt.name, tt.code); err == nil {
				t.Errorf("expected %s to be unavailable", tt.name)
			}
		})
	}
}

func TestCallTimeout(t *testing.T) {
	l := mustLoad(t, `function on_drag_move(ev) while true do end end`)
	l.SetTimeout(20 * time.Millisecond)

	if _, err := l.Call(FuncDragMove, "x", types.Point{}, mouse.ButtonPrimary); err == nil {
		t.Fatal("expected runaway listener to be cancelled")
	}
	// state stays usable after a cancelled call
	if !l.Has(FuncDragMove) {
		t.Error("listener should still be defined")
	}
}

func TestCallAfterClose(t *testing.T) {
	l, err := LoadString("closed", `function on_drag_start(ev) end`)
	if err != nil {
		t.Fatal(err)
	}
	l.Close()
	l.Close()
	if _, err := l.Call(FuncDragStart, "x", types.Point{}, mouse.ButtonNone); err != ErrClosed {
		t.Errorf("Call() error = %v, want ErrClosed", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listeners.lua")
	if err := os.WriteFile(path, []byte(vetoScript), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer l.Close()

	if !l.Has(FuncDragStart) {
		t.Error("on_drag_start should be defined")
	}

	if _, err := Load(filepath.Join(dir, "missing.lua")); err == nil || !strings.Contains(err.Error(), "missing.lua") {
		t.Errorf("Load() error = %v, want mention of the missing file", err)
	}
}
