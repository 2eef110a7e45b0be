package mouse

import (
	"testing"

	"github.com/yourusername/dragcore/internal/types"
)

type recordingHandler struct {
	refuse bool
	calls  []string
	params []Params
}

func (h *recordingHandler) OnStart(p Params) bool {
	h.calls = append(h.calls, "start")
	h.params = append(h.params, p)
	return !h.refuse
}

func (h *recordingHandler) OnDrag(p Params) {
	h.calls = append(h.calls, "drag")
	h.params = append(h.params, p)
}

func (h *recordingHandler) OnStop(p Params) {
	h.calls = append(h.calls, "stop")
	h.params = append(h.params, p)
}

func (h *recordingHandler) OnDragAbort(string) {
	h.calls = append(h.calls, "abort")
}

type fixedPositions map[string]types.Point

func (f fixedPositions) Position(id string) types.Point { return f[id] }

func TestEngine_FullGesture(t *testing.T) {
	h := &recordingHandler{}
	e := NewEngine(h, fixedPositions{"x": {X: 10, Y: 20}})

	if !e.Press("x", Event{X: 15, Y: 25, Button: ButtonPrimary}) {
		t.Fatal("Press() should be accepted")
	}
	if !e.Dragging() || e.Element() != "x" {
		t.Fatal("engine should be dragging x")
	}

	e.Move(Event{X: 65, Y: 50})
	e.Move(Event{X: 115, Y: 75})
	e.Release(Event{X: 115, Y: 75})

	want := []string{"start", "drag", "drag", "stop"}
	if len(h.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", h.calls, want)
	}
	for i := range want {
		if h.calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, h.calls[i], want[i])
		}
	}

	last := h.params[len(h.params)-1]
	if last.FinalPos != (types.Point{X: 110, Y: 70}) {
		t.Errorf("final position = %v, want (110,70)", last.FinalPos)
	}
	if e.Dragging() {
		t.Error("engine should be idle after release")
	}
}

func TestEngine_RefusedStartAborts(t *testing.T) {
	h := &recordingHandler{refuse: true}
	e := NewEngine(h, fixedPositions{})

	if e.Press("x", Event{}) {
		t.Fatal("Press() should report refusal")
	}
	e.Move(Event{X: 10})
	e.Release(Event{X: 10})

	if len(h.calls) != 2 || h.calls[0] != "start" || h.calls[1] != "abort" {
		t.Errorf("calls = %v, want [start abort]", h.calls)
	}
}

func TestEngine_IgnoresWithoutPress(t *testing.T) {
	h := &recordingHandler{}
	e := NewEngine(h, fixedPositions{})

	e.Move(Event{X: 1})
	e.Release(Event{X: 1})
	if len(h.calls) != 0 {
		t.Errorf("calls = %v, want none", h.calls)
	}
}

func TestEngine_SerializesGestures(t *testing.T) {
	h := &recordingHandler{}
	e := NewEngine(h, fixedPositions{})

	e.Press("a", Event{})
	if e.Press("b", Event{}) {
		t.Error("second press during a gesture must be rejected")
	}
	if e.Element() != "a" {
		t.Errorf("Element() = %q, want a", e.Element())
	}
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		b    Button
		want string
	}{
		{ButtonPrimary, "primary"},
		{ButtonSecondary, "secondary"},
		{ButtonMiddle, "middle"},
		{Button(42), "none"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
