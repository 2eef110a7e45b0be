package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/dragcore/internal/types"
)

const number = `(-?\d+(?:\.\d+)?)`

var (
	boundsPattern = regexp.MustCompile(`^` + number + `\s*,\s*` + number + `\s*,\s*` + number + `\s*,\s*` + number + `$`)
	pointPattern  = regexp.MustCompile(`^` + number + `\s*,\s*` + number + `$`)
	sizePattern   = regexp.MustCompile(`^(\d+)\s*x\s*(\d+)$`)
)

// ParseBounds parses "x,y,w,h" into a rectangle.
// Negative positions are allowed, negative sizes are not.
func ParseBounds(s string) (types.Rect, error) {
	s = strings.TrimSpace(s)
	matches := boundsPattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Rect{}, fmt.Errorf("invalid bounds format %q, expected x,y,w,h", s)
	}

	var v [4]float64
	for i := range v {
		v[i], _ = strconv.ParseFloat(matches[i+1], 64)
	}
	if v[2] < 0 || v[3] < 0 {
		return types.Rect{}, fmt.Errorf("invalid bounds %q: negative size", s)
	}
	return types.NewRect(types.Point{X: v[0], Y: v[1]}, types.Size{Width: v[2], Height: v[3]}), nil
}

// ParsePoint parses "x,y", e.g. a drag delta "100,-20"
func ParsePoint(s string) (types.Point, error) {
	s = strings.TrimSpace(s)
	matches := pointPattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Point{}, fmt.Errorf("invalid point format %q, expected x,y", s)
	}
	x, _ := strconv.ParseFloat(matches[1], 64)
	y, _ := strconv.ParseFloat(matches[2], 64)
	return types.Point{X: x, Y: y}, nil
}

// ParseCanvas parses "WIDTHxHEIGHT"
func ParseCanvas(s string) (types.Size, error) {
	s = strings.TrimSpace(s)
	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return types.Size{}, fmt.Errorf("invalid canvas format %q, expected WIDTHxHEIGHT", s)
	}
	w, _ := strconv.Atoi(matches[1])
	h, _ := strconv.Atoi(matches[2])
	if w == 0 || h == 0 {
		return types.Size{}, fmt.Errorf("invalid canvas %q: zero dimension", s)
	}
	return types.Size{Width: float64(w), Height: float64(h)}, nil
}

// FormatBounds converts a rectangle back to its "x,y,w,h" form
func FormatBounds(r types.Rect) string {
	return strings.Join([]string{
		formatNumber(r.X), formatNumber(r.Y), formatNumber(r.Width), formatNumber(r.Height),
	}, ",")
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
