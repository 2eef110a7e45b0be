package output

import (
	"math"

	"github.com/yourusername/dragcore/internal/types"
)

// ScalingContext handles coordinate transformation from canvas pixel space
// to terminal character space and back
type ScalingContext struct {
	// Canvas bounds in pixels
	MinX, MinY float64
	MaxX, MaxY float64

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64

	// Aspect ratio correction (terminal characters are typically 2:1 height:width)
	AspectRatio float64
}

// border is the number of terminal cells reserved on each side
const border = 1

// NewScalingContext maps a canvas of the given size onto a terminal area
func NewScalingContext(canvas types.Size, termWidth, termHeight int) *ScalingContext {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = types.Size{Width: 800, Height: 600}
	}

	availWidth := termWidth - 2*border
	availHeight := termHeight - 2*border
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	return &ScalingContext{
		MaxX:        canvas.Width,
		MaxY:        canvas.Height,
		TermWidth:   termWidth,
		TermHeight:  termHeight,
		ScaleX:      float64(availWidth) / canvas.Width,
		ScaleY:      float64(availHeight) * 2.0 / canvas.Height,
		AspectRatio: 2.0,
	}
}

// PixelToTerminal converts canvas coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(x, y float64) (int, int) {
	termX := int(math.Round((x - sc.MinX) * sc.ScaleX))
	termY := int(math.Round((y - sc.MinY) * sc.ScaleY / sc.AspectRatio))
	return termX + border, termY + border
}

// TerminalToPixel converts a terminal cell back to canvas coordinates
func (sc *ScalingContext) TerminalToPixel(col, row int) types.Point {
	return types.Point{
		X: float64(col-border)/sc.ScaleX + sc.MinX,
		Y: float64(row-border)*sc.AspectRatio/sc.ScaleY + sc.MinY,
	}
}

// ScaleSize converts pixel dimensions to terminal character dimensions
func (sc *ScalingContext) ScaleSize(w, h float64) (int, int) {
	termW := int(math.Round(w * sc.ScaleX))
	termH := int(math.Round(h * sc.ScaleY / sc.AspectRatio))

	// Minimum size of 3x2 for visibility
	if termW < 3 {
		termW = 3
	}
	if termH < 2 {
		termH = 2
	}

	return termW, termH
}

// RectToTerminal converts a canvas rectangle to a terminal box
func (sc *ScalingContext) RectToTerminal(r types.Rect) (x, y, w, h int) {
	x, y = sc.PixelToTerminal(r.X, r.Y)
	w, h = sc.ScaleSize(r.Width, r.Height)
	return sc.ClampToCanvas(x, y, w, h)
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}

	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return x, y, w, h
}
