package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Layer decides a cell's colour. When several layers touch a cell the
// highest one wins.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerLine
	LayerPoint
	LayerPreview
	LayerCursor

	// Text layers replace the cell's rune instead of adding dots.
	LayerText
	LayerMuted
	LayerHighlight
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Layers        [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.Layers = make([][]Layer, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Layers[i] = make([]Layer, w)
	}
	c.Clear()
	return c
}

// DotsWide and DotsHigh give the canvas size in sub-pixel dots.
func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// Set lights the dot at (x, y) in sub-pixel coordinates. Text cells are left
// alone.
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	if c.Layers[row][col] >= LayerText {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if l > c.Layers[row][col] {
		c.Layers[row][col] = l
	}
}

// Unset clears a dot.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height || c.Layers[row][col] >= LayerText {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
	if c.Grid[row][col] == blank {
		c.Layers[row][col] = LayerNone
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Layers[i][j] = LayerNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, l Layer) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, l)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Text writes s in cell coordinates, clipped to the canvas. l should be one
// of the text layers.
func (c *Canvas) Text(col, row int, s string, l Layer) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.Grid[row][col] = r
			c.Layers[row][col] = l
		}
		col++
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the canvas with the theme's colour per layer, batching runs
// of equal layers into one styled span.
func (c *Canvas) Render(t Theme) string {
	styles := map[Layer]lipgloss.Style{
		LayerNone:      lipgloss.NewStyle(),
		LayerLine:      lipgloss.NewStyle().Foreground(t.Lines),
		LayerPoint:     lipgloss.NewStyle().Foreground(t.Points),
		LayerPreview:   lipgloss.NewStyle().Foreground(t.Preview).Bold(true),
		LayerCursor:    lipgloss.NewStyle().Foreground(t.Cursor).Bold(true),
		LayerText:      lipgloss.NewStyle().Foreground(t.Text),
		LayerMuted:     lipgloss.NewStyle().Foreground(t.Muted),
		LayerHighlight: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}

	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Layers[i][j] == c.Layers[i][start] {
				continue
			}
			b.WriteString(styles[c.Layers[i][start]].Render(string(row[start:j])))
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
