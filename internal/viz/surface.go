package viz

import (
	"math"

	"github.com/san-kum/neonfield/internal/cursor"
	"github.com/san-kum/neonfield/internal/field"
	"github.com/san-kum/neonfield/internal/follower"
)

// Pointer coordinates are in virtual pixels. A terminal cell is CellWidth x
// CellHeight pixels and a braille dot covers DotSize x DotSize of them.
const (
	CellWidth  = 8
	CellHeight = 16
	DotSize    = 4

	PreviewWidth  = 240.0
	PreviewHeight = 144.0
)

// CellToPixel returns the virtual pixel at the centre of a cell.
func CellToPixel(col, row int) (float64, float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}

// Surface is the terminal's Renderer and Compositor. It keeps the latest
// state it was handed and paints it onto a Canvas on demand.
type Surface struct {
	Camera *Camera
	Label  string

	points     []float64
	lines      []float64
	rotX, rotY float64
	transform  follower.Transform
	visible    bool
	closed     bool
}

func NewSurface() *Surface {
	return &Surface{Camera: NewCamera()}
}

func (s *Surface) SetPoints(points []float64) { s.points = append(s.points[:0], points...) }
func (s *Surface) SetEdges(lines []float64)   { s.lines = append(s.lines[:0], lines...) }

func (s *Surface) SetGroupRotation(rotX, rotY float64) { s.rotX, s.rotY = rotX, rotY }

func (s *Surface) SetTransform(t follower.Transform) {
	s.transform = t
	s.visible = true
}

func (s *Surface) Hide() { s.visible = false }

func (s *Surface) Close() error {
	s.closed = true
	s.points, s.lines = nil, nil
	s.visible = false
	return nil
}

func (s *Surface) Visible() bool                 { return s.visible }
func (s *Surface) Transform() follower.Transform { return s.transform }
func (s *Surface) Closed() bool                  { return s.closed }

// Draw paints the field, the preview and the cursor, in that order.
func (s *Surface) Draw(c *Canvas, cur *cursor.Cursor) {
	if s.closed {
		return
	}
	s.drawField(c)
	if s.visible {
		s.drawPreview(c)
	}
	if cur != nil {
		drawCursor(c, cur)
	}
}

func (s *Surface) project(i int, buf []float64, c *Canvas) (int, int, bool) {
	p := field.Vec3{X: buf[i], Y: buf[i+1], Z: buf[i+2]}
	return s.Camera.Project(Rotate(p, s.rotX, s.rotY), c.DotsWide(), c.DotsHigh())
}

func (s *Surface) drawField(c *Canvas) {
	for i := 0; i+5 < len(s.lines); i += 6 {
		x0, y0, ok0 := s.project(i, s.lines, c)
		x1, y1, ok1 := s.project(i+3, s.lines, c)
		if ok0 && ok1 {
			c.DrawLine(x0, y0, x1, y1, LayerLine)
		}
	}
	for i := 0; i+2 < len(s.points); i += 3 {
		if x, y, ok := s.project(i, s.points, c); ok {
			c.Set(x, y, LayerPoint)
		}
	}
}

// PreviewCorners returns the preview's corners in virtual pixels. The
// transform places the top-left corner and the tilt pivots on the centre.
func PreviewCorners(t follower.Transform) [4][2]float64 {
	hw, hh := PreviewWidth/2, PreviewHeight/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float64
	for i, p := range local {
		x, y := t.Apply(p[0], p[1])
		out[i] = [2]float64{x + hw, y + hh}
	}
	return out
}

func (s *Surface) drawPreview(c *Canvas) {
	q := PreviewCorners(s.transform)
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		c.DrawLine(toDot(a[0]), toDot(a[1]), toDot(b[0]), toDot(b[1]), LayerPreview)
	}
	if s.Label == "" {
		return
	}
	cx := s.transform.X + PreviewWidth/2
	cy := s.transform.Y + PreviewHeight/2
	col := int(cx)/CellWidth - len([]rune(s.Label))/2
	c.Text(col, int(cy)/CellHeight, s.Label, LayerHighlight)
}

func drawCursor(c *Canvas, cur *cursor.Cursor) {
	x, y := toDot(cur.X), toDot(cur.Y)
	c.Set(x, y, LayerCursor)
	c.Set(x+1, y, LayerCursor)
	c.Set(x, y+1, LayerCursor)
	c.Set(x+1, y+1, LayerCursor)

	r := cur.Radius()
	if cur.Hovering() {
		r *= 1.5
	}
	tx, ty := cur.TrailerCenter()
	const segments = 24
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		c.Set(toDot(tx+r*math.Cos(a)), toDot(ty+r*math.Sin(a)), LayerCursor)
	}
}

func toDot(px float64) int { return int(math.Floor(px / DotSize)) }
