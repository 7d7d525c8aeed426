// Package export writes canvases and recorded preview paths as SVG.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/neonfield/internal/metrics"
	"github.com/san-kum/neonfield/internal/viz"
)

const background = "#0a0a0a"

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func layerColor(t viz.Theme, l viz.Layer) string {
	switch l {
	case viz.LayerLine:
		return string(t.Lines)
	case viz.LayerPreview:
		return string(t.Preview)
	case viz.LayerCursor:
		return string(t.Cursor)
	case viz.LayerMuted:
		return string(t.Muted)
	case viz.LayerHighlight:
		return string(t.Accent)
	case viz.LayerText:
		return string(t.Text)
	default:
		return string(t.Points)
	}
}

// CanvasToSVG converts a Braille canvas to SVG. Dots take their layer's
// colour from t and text cells become <text> runs. scale is the size of one
// dot in SVG units.
func CanvasToSVG(canvas *viz.Canvas, t viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			l := canvas.Layers[row][col]
			if l >= viz.LayerText {
				continue
			}
			r := canvas.Grid[row][col]
			if r <= 0x2800 || r > 0x28ff {
				continue
			}
			pattern := int(r - 0x2800)
			fill := layerColor(t, l)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	writeText(&sb, canvas, t, scale)
	sb.WriteString("</svg>")
	return sb.String()
}

// writeText emits each horizontal run of same-layer text cells as one
// <text> element.
func writeText(sb *strings.Builder, canvas *viz.Canvas, t viz.Theme, scale float64) {
	size := scale * 3.2
	for row := 0; row < canvas.Height; row++ {
		col := 0
		for col < canvas.Width {
			l := canvas.Layers[row][col]
			if l < viz.LayerText {
				col++
				continue
			}
			start := col
			for col < canvas.Width && canvas.Layers[row][col] == l {
				col++
			}
			s := strings.TrimRight(string(canvas.Grid[row][start:col]), " ")
			if s == "" {
				continue
			}
			x := float64(start) * scale * 2
			y := float64(row)*scale*4 + size
			fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" font-family=\"monospace\" font-size=\"%.1f\" fill=\"%s\" xml:space=\"preserve\">%s</text>\n",
				x, y, size, layerColor(t, l), html.EscapeString(s))
		}
	}
}

// TrajectoryToSVG draws the preview's recorded path in screen coordinates
// (y grows downward). Only frames where the preview was active count; each
// shown stretch becomes its own subpath.
func TrajectoryToSVG(samples []metrics.Sample, width, height int, strokeColor string) string {
	var pts []metrics.Sample
	for _, s := range samples {
		if s.Active {
			pts = append(pts, s)
		}
	}
	if len(pts) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, background, strokeColor)

	prev := -1
	for _, p := range pts {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		cmd := " L"
		if prev < 0 {
			cmd = "M"
		} else if p.Frame != prev+1 {
			cmd = " M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, x, y)
		prev = p.Frame
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
