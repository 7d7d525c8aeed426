package viz

import (
	"math"

	"github.com/san-kum/neonfield/internal/field"
)

// Camera projects field space onto the canvas. It sits on the +Z axis
// looking at the origin.
type Camera struct {
	Distance float64
	FOV      float64 // vertical, radians
	Near     float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, FOV: 75 * math.Pi / 180, Near: 0.1}
}

// Rotate applies the group rotation: X first, then Y.
func Rotate(p field.Vec3, rotX, rotY float64) field.Vec3 {
	cx, sx := math.Cos(rotX), math.Sin(rotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(rotY), math.Sin(rotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps p to dot coordinates on a sw x sh dot surface with the origin
// at its centre. Braille dots are square in a 1:2 cell so no aspect fix is
// needed. ok is false for points behind the near plane; points off the
// surface still project and are clipped when drawn.
func (c *Camera) Project(p field.Vec3, sw, sh int) (x, y int, ok bool) {
	depth := c.Distance - p.Z
	if depth <= c.Near {
		return 0, 0, false
	}
	f := float64(sh) / 2 / math.Tan(c.FOV/2)
	x = int(math.Round(p.X*f/depth)) + sw/2
	y = int(math.Round(-p.Y*f/depth)) + sh/2
	return x, y, true
}
