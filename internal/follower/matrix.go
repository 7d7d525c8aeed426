package follower

import "math"

// Matrix returns translate(X, Y, 0) * rotateX(RotX) * rotateY(RotY) as a
// column-major 4x4, the layout CSS matrix3d and most GPU APIs expect.
func (t Transform) Matrix() [16]float64 {
	ax := t.RotX * math.Pi / 180
	ay := t.RotY * math.Pi / 180
	cx, sx := math.Cos(ax), math.Sin(ax)
	cy, sy := math.Cos(ay), math.Sin(ay)

	// Rx * Ry, row-major:
	// | cy      0    sy    |
	// | sx*sy   cx  -sx*cy |
	// | -cx*sy  sx   cx*cy |
	return [16]float64{
		cy, sx * sy, -cx * sy, 0,
		0, cx, sx, 0,
		sy, -sx * cy, cx * cy, 0,
		t.X, t.Y, 0, 1,
	}
}

// Apply maps a point in the preview's local plane through the transform,
// dropping depth.
func (t Transform) Apply(x, y float64) (float64, float64) {
	m := t.Matrix()
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
