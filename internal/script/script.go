// Package script runs drag listeners written in Lua.
//
// A script may define any of these globals:
//
//	function on_drag_start(ev) ... end  -- return false to veto the gesture
//	function on_drag_move(ev) ... end
//	function on_drag_stop(ev) ... end
//
// ev is a table with fields element, x, y and button. For drag start x and y
// are the pointer position; for move and stop they are the element position.
// A global log(msg) function writes to the application log.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/mouse"
	"github.com/yourusername/dragcore/internal/scene"
	"github.com/yourusername/dragcore/internal/types"
)

// Global function names looked up in a script
const (
	FuncDragStart = "on_drag_start"
	FuncDragMove  = "on_drag_move"
	FuncDragStop  = "on_drag_stop"
)

// DefaultTimeout bounds a single listener call
const DefaultTimeout = 250 * time.Millisecond

// ErrClosed is returned when calling into a closed script
var ErrClosed = errors.New("script is closed")

// Binder is the event bus listeners are registered on
type Binder interface {
	Bind(event string, l scene.Listener)
}

// Listeners holds one sandboxed Lua state.
// gopher-lua states are not goroutine-safe; calls are serialized.
type Listeners struct {
	L       *lua.LState
	mu      sync.Mutex
	timeout time.Duration
	name    string
	closed  bool
}

// Load runs a Lua file and returns its listeners
func Load(path string) (*Listeners, error) {
	l := newListeners(path)
	if err := l.do(func() error { return l.L.DoFile(path) }); err != nil {
		l.Close()
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}
	return l, nil
}

// LoadString runs Lua source and returns its listeners
func LoadString(name, code string) (*Listeners, error) {
	l := newListeners(name)
	if err := l.do(func() error { return l.L.DoString(code) }); err != nil {
		l.Close()
		return nil, fmt.Errorf("failed to load script %s: %w", name, err)
	}
	return l, nil
}

func newListeners(name string) *Listeners {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, fn := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(fn, lua.LNil)
	}

	l := &Listeners{L: L, timeout: DefaultTimeout, name: name}
	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		logging.Info().Str("script", l.name).Msg(L.CheckString(1))
		return 0
	}))
	return l
}

// SetTimeout changes the per-call time limit
func (l *Listeners) SetTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timeout = d
}

// Has reports whether the script defines the global function fn
func (l *Listeners) Has(fn string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	return l.L.GetGlobal(fn).Type() == lua.LTFunction
}

// Bind registers a bus listener for every drag event the script handles
func (l *Listeners) Bind(b Binder) {
	if l.Has(FuncDragStart) {
		b.Bind(drag.EventDragStart, l.onStart)
	}
	if l.Has(FuncDragMove) {
		b.Bind(drag.EventDragMove, l.onMove)
	}
	if l.Has(FuncDragStop) {
		b.Bind(drag.EventDragStop, l.onStop)
	}
}

func (l *Listeners) onStart(payload any) bool {
	p, ok := payload.(drag.DragStartPayload)
	if !ok {
		return true
	}
	ret, err := l.Call(FuncDragStart, p.Element, p.Event.Point(), p.Event.Button)
	if err != nil {
		logging.Warn().Err(err).Str("script", l.name).Str("element", p.Element).Msg("drag start listener failed")
		return true
	}
	// only an explicit false vetoes
	return ret != lua.LFalse
}

func (l *Listeners) onMove(payload any) bool {
	if p, ok := payload.(drag.DragMovePayload); ok {
		if _, err := l.Call(FuncDragMove, p.Element, p.Pos, p.Event.Button); err != nil {
			logging.Warn().Err(err).Str("script", l.name).Str("element", p.Element).Msg("drag move listener failed")
		}
	}
	return true
}

func (l *Listeners) onStop(payload any) bool {
	if p, ok := payload.(drag.DragStopPayload); ok {
		if _, err := l.Call(FuncDragStop, p.Element, p.Pos, p.Event.Button); err != nil {
			logging.Warn().Err(err).Str("script", l.name).Str("element", p.Element).Msg("drag stop listener failed")
		}
	}
	return true
}

// Call invokes fn with an event table and returns its first result
// (lua.LNil when it returns nothing)
func (l *Listeners) Call(fn, element string, pos types.Point, button mouse.Button) (lua.LValue, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return lua.LNil, ErrClosed
	}

	fnVal := l.L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return lua.LNil, fmt.Errorf("%q is not a function (got %s)", fn, fnVal.Type())
	}

	ev := l.L.NewTable()
	ev.RawSetString("element", lua.LString(element))
	ev.RawSetString("x", lua.LNumber(pos.X))
	ev.RawSetString("y", lua.LNumber(pos.Y))
	ev.RawSetString("button", lua.LString(button.String()))

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	l.L.SetContext(ctx)
	defer l.L.RemoveContext()

	top := l.L.GetTop()
	err := l.protect(func() error {
		return l.L.CallByParam(lua.P{Fn: fnVal, NRet: 1, Protect: true}, ev)
	})
	if err != nil {
		l.L.SetTop(top)
		return lua.LNil, err
	}
	ret := l.L.Get(-1)
	l.L.Pop(1)
	return ret, nil
}

// Close releases the Lua state
func (l *Listeners) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.L.Close()
}

func (l *Listeners) do(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.protect(fn)
}

func (l *Listeners) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
