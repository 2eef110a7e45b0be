package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
	}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
	}

	// HighlightASCIIStyle marks hovered groups and dragged elements
	HighlightASCIIStyle = BoxStyle{
		TopLeft:     '#',
		TopRight:    '#',
		BottomLeft:  '#',
		BottomRight: '#',
		Horizontal:  '=',
		Vertical:    '#',
	}

	// HighlightUnicodeStyle marks hovered groups and dragged elements
	HighlightUnicodeStyle = BoxStyle{
		TopLeft:     '╔',
		TopRight:    '╗',
		BottomLeft:  '╚',
		BottomRight: '╝',
		Horizontal:  '═',
		Vertical:    '║',
	}

	// GroupASCIIStyle draws group containers
	GroupASCIIStyle = BoxStyle{
		TopLeft:     '.',
		TopRight:    '.',
		BottomLeft:  '\'',
		BottomRight: '\'',
		Horizontal:  '.',
		Vertical:    ':',
	}

	// GroupUnicodeStyle draws group containers
	GroupUnicodeStyle = BoxStyle{
		TopLeft:     '╭',
		TopRight:    '╮',
		BottomLeft:  '╰',
		BottomRight: '╯',
		Horizontal:  '┄',
		Vertical:    '┆',
	}
)

// Canvas represents a 2D character buffer for drawing
type Canvas struct {
	Width      int
	Height     int
	buffer     [][]rune
	style      BoxStyle
	useUnicode bool
}

// NewCanvas creates a new canvas with the specified dimensions
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
		for j := range buffer[i] {
			buffer[i][j] = ' '
		}
	}

	style := ASCIIStyle
	if useUnicode {
		style = UnicodeStyle
	}

	return &Canvas{
		Width:      width,
		Height:     height,
		buffer:     buffer,
		style:      style,
		useUnicode: useUnicode,
	}
}

// Style returns the plain, group or highlight style matching the canvas charset
func (c *Canvas) Style(kind BoxKind) BoxStyle {
	switch kind {
	case BoxGroup:
		if c.useUnicode {
			return GroupUnicodeStyle
		}
		return GroupASCIIStyle
	case BoxHighlight:
		if c.useUnicode {
			return HighlightUnicodeStyle
		}
		return HighlightASCIIStyle
	default:
		return c.style
	}
}

// BoxKind selects a box style
type BoxKind int

const (
	BoxPlain BoxKind = iota
	BoxGroup
	BoxHighlight
)

// Clear resets the canvas to empty spaces
func (c *Canvas) Clear() {
	for i := range c.buffer {
		for j := range c.buffer[i] {
			c.buffer[i][j] = ' '
		}
	}
}

// SetCell sets a character at the specified position
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at the specified position
func (c *Canvas) GetCell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.buffer[y][x]
	}
	return ' '
}

// DrawBox draws a box in the canvas' default style
func (c *Canvas) DrawBox(x, y, width, height int) {
	c.DrawStyledBox(x, y, width, height, c.style)
}

// DrawStyledBox draws a box with the given style
func (c *Canvas) DrawStyledBox(x, y, width, height int, style BoxStyle) {
	if width < 2 || height < 2 {
		return
	}

	c.SetCell(x, y, style.TopLeft)
	c.SetCell(x+width-1, y, style.TopRight)
	c.SetCell(x, y+height-1, style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, style.Horizontal)
		c.SetCell(x+i, y+height-1, style.Horizontal)
	}

	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, style.Vertical)
		c.SetCell(x+width-1, y+i, style.Vertical)
	}
}

// DrawText writes text at the specified position
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r)
		i++
	}
}

// DrawTextCentered writes text centered within a width
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) >= width {
		c.DrawText(x, y, string(runes[:max(width, 0)]))
		return
	}
	c.DrawText(x+(width-len(runes))/2, y, text)
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, r rune) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.SetCell(x+dx, y+dy, r)
		}
	}
}

// Lines returns the canvas rows
func (c *Canvas) Lines() []string {
	out := make([]string, len(c.buffer))
	for i, row := range c.buffer {
		out[i] = string(row)
	}
	return out
}

// String renders the canvas to a string
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}
