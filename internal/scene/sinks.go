package scene

import "github.com/san-kum/neonfield/internal/follower"

// Capture is a Renderer and Compositor that keeps the last values it was
// given. Headless runs and tests draw into it.
type Capture struct {
	Points     []float64
	Lines      []float64
	RotX, RotY float64
	Transform  follower.Transform
	Visible    bool
	Frames     int
	Closed     int
}

func (c *Capture) SetPoints(points []float64) {
	c.Points = append(c.Points[:0], points...)
	c.Frames++
}

func (c *Capture) SetEdges(lines []float64) {
	c.Lines = append(c.Lines[:0], lines...)
}

func (c *Capture) SetGroupRotation(rotX, rotY float64) { c.RotX, c.RotY = rotX, rotY }

func (c *Capture) SetTransform(t follower.Transform) {
	c.Transform = t
	c.Visible = true
}

func (c *Capture) Hide() { c.Visible = false }

func (c *Capture) Close() error {
	c.Closed++
	return nil
}
