// Package trace records drag lifecycle events as JSON lines.
package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/logging"
	"github.com/yourusername/dragcore/internal/scene"
	"github.com/yourusername/dragcore/internal/types"
)

// Binder is the event bus the recorder listens on
type Binder interface {
	Bind(event string, l scene.Listener)
}

// Recorder keeps one JSON object per fired event:
//
//	{"seq":1,"event":"drag:move","element":"x","x":10,"y":20,"button":"primary"}
//
// Stop events also carry "connections" and "moved" from the redraw.
type Recorder struct {
	mu    sync.Mutex
	lines []string
	seq   int
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Bind records every drag event fired on b. The recorder never vetoes.
func (r *Recorder) Bind(b Binder) {
	for _, event := range []string{drag.EventDragStart, drag.EventDragMove, drag.EventDragStop} {
		name := event
		b.Bind(name, func(payload any) bool {
			r.Record(name, payload)
			return true
		})
	}
}

// Record appends one event. Unknown payloads are recorded with the event name only.
func (r *Recorder) Record(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	line, err := encode(r.seq, event, payload)
	if err != nil {
		logging.Warn().Err(err).Str("event", event).Msg("failed to encode trace entry")
		return
	}
	r.lines = append(r.lines, line)
}

type field struct {
	path  string
	value any
}

func encode(seq int, event string, payload any) (string, error) {
	fields := []field{{"seq", seq}, {"event", event}}
	withPos := func(el string, pos types.Point, button string) {
		fields = append(fields,
			field{"element", el},
			field{"x", pos.X},
			field{"y", pos.Y},
			field{"button", button},
		)
	}

	switch p := payload.(type) {
	case drag.DragStartPayload:
		withPos(p.Element, p.Event.Point(), p.Event.Button.String())
	case drag.DragMovePayload:
		withPos(p.Element, p.Pos, p.Event.Button.String())
	case drag.DragStopPayload:
		withPos(p.Element, p.Pos, p.Event.Button.String())
		fields = append(fields,
			field{"connections", nonNil(p.Redraw.Connections)},
			field{"moved", nonNil(p.Redraw.Moved)},
		)
	}

	line := "{}"
	for _, f := range fields {
		var err error
		if line, err = sjson.Set(line, f.path, f.value); err != nil {
			return "", fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	return line, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Lines returns every recorded entry in order
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of recorded entries
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

// JSON returns all entries as one JSON array
func (r *Recorder) JSON() string {
	return "[" + strings.Join(r.Lines(), ",") + "]"
}

// Filter returns the entries of one event type
func (r *Recorder) Filter(event string) []string {
	var out []string
	for _, line := range r.Lines() {
		if gjson.Get(line, "event").String() == event {
			out = append(out, line)
		}
	}
	return out
}

// Count returns how many times event was recorded
func (r *Recorder) Count(event string) int {
	return len(r.Filter(event))
}

// Elements returns the element of every entry of event, in order
func (r *Recorder) Elements(event string) []string {
	var out []string
	for _, v := range gjson.Get(r.JSON(), fmt.Sprintf(`#(event==%q)#.element`, event)).Array() {
		out = append(out, v.String())
	}
	return out
}

// Last queries path on the most recent entry of event. The result does not
// exist when nothing matches.
func (r *Recorder) Last(event, path string) gjson.Result {
	lines := r.Filter(event)
	if len(lines) == 0 {
		return gjson.Result{}
	}
	return gjson.Get(lines[len(lines)-1], path)
}

// Reset discards every entry and restarts the sequence
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
	r.seq = 0
}

// WriteTo writes the entries as JSON lines
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range r.Lines() {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
