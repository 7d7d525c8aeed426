// Package follower implements the floating preview that chases the pointer.
//
// The follower keeps a smoothed 2D position and a smoothed pitch/yaw. Each
// tick the position eases toward the target, and the distance still left to
// cover drives a target tilt that the rotation eases toward at its own rate,
// so rotation lags position. The emitted tilt is clamped to MaxTilt degrees;
// the internal rotation is left unclamped.
package follower

import "math"

const (
	DefaultPositionEase    = 0.10
	DefaultRotationEase    = 0.12
	DefaultTiltSensitivity = 0.35
	DefaultMaxTilt         = 25.0
)

type Params struct {
	PositionEase    float64 `yaml:"position_ease"`
	RotationEase    float64 `yaml:"rotation_ease"`
	TiltSensitivity float64 `yaml:"tilt_sensitivity"`
	MaxTilt         float64 `yaml:"max_tilt"`
}

func DefaultParams() Params {
	return Params{
		PositionEase:    DefaultPositionEase,
		RotationEase:    DefaultRotationEase,
		TiltSensitivity: DefaultTiltSensitivity,
		MaxTilt:         DefaultMaxTilt,
	}
}

// Transform is what a compositor needs to place the preview: a screen
// translation and two tilt angles in degrees.
type Transform struct {
	X, Y       float64
	RotX, RotY float64
}

type Follower struct {
	params           Params
	posX, posY       float64
	rotX, rotY       float64
	targetX, targetY float64
	active           bool
}

func New(p Params) *Follower {
	return &Follower{params: p}
}

func (f *Follower) Params() Params { return f.params }

// SetTarget records where the follower should head. Last write wins.
func (f *Follower) SetTarget(x, y float64) {
	f.targetX, f.targetY = x, y
}

func (f *Follower) Target() (x, y float64) { return f.targetX, f.targetY }

// Activate enables the follower. Only an inactive to active transition snaps
// the position to the target and zeroes the rotation.
func (f *Follower) Activate() {
	if f.active {
		return
	}
	f.active = true
	f.posX, f.posY = f.targetX, f.targetY
	f.rotX, f.rotY = 0, 0
}

// Deactivate freezes the follower where it is.
func (f *Follower) Deactivate() { f.active = false }

func (f *Follower) Active() bool { return f.active }

// Tick advances one frame. It reports false and does nothing while inactive.
func (f *Follower) Tick() (Transform, bool) {
	if !f.active {
		return Transform{}, false
	}
	p := f.params

	dx := f.targetX - f.posX
	dy := f.targetY - f.posY

	f.posX += dx * p.PositionEase
	f.posY += dy * p.PositionEase

	targetRotY := dx * p.TiltSensitivity
	targetRotX := -dy * p.TiltSensitivity

	f.rotX += (targetRotX - f.rotX) * p.RotationEase
	f.rotY += (targetRotY - f.rotY) * p.RotationEase

	return f.Current(), true
}

// Current returns the clamped transform without advancing.
func (f *Follower) Current() Transform {
	return Transform{
		X:    f.posX,
		Y:    f.posY,
		RotX: clamp(f.rotX, f.params.MaxTilt),
		RotY: clamp(f.rotY, f.params.MaxTilt),
	}
}

// Raw returns the unclamped internal rotation.
func (f *Follower) Raw() (rotX, rotY float64) { return f.rotX, f.rotY }

func clamp(v, limit float64) float64 {
	return math.Max(math.Min(v, limit), -limit)
}
