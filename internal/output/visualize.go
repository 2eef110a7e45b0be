package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/dragcore/internal/drag"
	"github.com/yourusername/dragcore/internal/scene"
	"github.com/yourusername/dragcore/internal/types"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		MaxWidth:   width,
		MaxHeight:  height - 2, // room for the legend
	}
}

// VisualizeScene renders the scene's groups and elements on a character canvas
func VisualizeScene(s *scene.Scene, canvasSize types.Size, opts VisualizationOptions) string {
	sc := NewScalingContext(canvasSize, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)
	RenderScene(s, sc, canvas, opts.ShowIDs)
	return canvas.String()
}

// RenderScene draws s onto canvas: the canvas border, group containers
// outermost first, then plain elements in paint order
func RenderScene(s *scene.Scene, sc *ScalingContext, canvas *Canvas, showIDs bool) {
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	reg := s.Registry()
	var containers, plain []*scene.Element
	for _, el := range s.Elements() {
		if reg.GroupForElement(el.ID) != nil {
			containers = append(containers, el)
		} else {
			plain = append(plain, el)
		}
	}
	sort.SliceStable(containers, func(i, j int) bool {
		return reg.Depth(reg.GroupForElement(containers[i].ID)) < reg.Depth(reg.GroupForElement(containers[j].ID))
	})

	for _, el := range containers {
		kind := BoxGroup
		if s.HasMarker(el.ID, drag.MarkerDragHover) || s.HasMarker(el.ID, drag.MarkerDragged) {
			kind = BoxHighlight
		}
		drawElement(s, sc, canvas, el, kind, showIDs)
	}
	for _, el := range plain {
		kind := BoxPlain
		if s.HasMarker(el.ID, drag.MarkerDragged) {
			kind = BoxHighlight
		}
		drawElement(s, sc, canvas, el, kind, showIDs)
	}
}

func drawElement(s *scene.Scene, sc *ScalingContext, canvas *Canvas, el *scene.Element, kind BoxKind, showIDs bool) {
	x, y, w, h := sc.RectToTerminal(el.Bounds)
	if w < 3 || h < 2 {
		return
	}
	canvas.DrawStyledBox(x, y, w, h, canvas.Style(kind))

	if !showIDs || h < 3 {
		return
	}
	label := ElementLabel(s, el.ID)
	canvas.DrawText(x+1, y+1, truncate(label, w-2))
}

// ElementLabel is an element's ID decorated with its drag state:
// "+" drag selected, "*" candidate drop target, "!" not draggable
func ElementLabel(s *scene.Scene, id string) string {
	var b strings.Builder
	if s.HasMarker(id, drag.MarkerDragSelected) {
		b.WriteByte('+')
	}
	b.WriteString(id)
	if s.HasMarker(id, drag.MarkerDragActive) {
		b.WriteByte('*')
	}
	if v, ok := s.Attribute(id, drag.AttrNotDraggable); ok && v != "false" {
		b.WriteByte('!')
	}
	return b.String()
}

// Legend explains the label decorations
func Legend() string {
	return "+ selected   * drop target   ! not draggable   double border: dragged / hovered"
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintVisualization prints a colored visualization to w
func PrintVisualization(w io.Writer, s *scene.Scene, canvasSize types.Size, opts VisualizationOptions) {
	result := VisualizeScene(s, canvasSize, opts)

	if color.NoColor {
		fmt.Fprintln(w, result)
	} else {
		color.New(color.FgCyan).Fprintln(w, result)
	}
	fmt.Fprintln(w, Legend())
}
