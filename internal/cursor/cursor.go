// Package cursor implements the custom pointer: a dot that sits exactly on
// the pointer and a larger trailer ring that springs after it.
package cursor

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	DefaultTrailerOffset = -20.0
	DefaultFrequency     = 6.0
	DefaultDamping       = 1.0
)

// Config tunes the trailer spring. FPS is the frame rate the spring steps
// at; it follows the scheduler and is not read from files.
type Config struct {
	FPS           int     `yaml:"-"`
	Frequency     float64 `yaml:"frequency"`
	Damping       float64 `yaml:"damping"`
	TrailerOffset float64 `yaml:"trailer_offset"`
}

func DefaultConfig(fps int) Config {
	return Config{
		FPS:           fps,
		Frequency:     DefaultFrequency,
		Damping:       DefaultDamping,
		TrailerOffset: DefaultTrailerOffset,
	}
}

// Trailer chases a target on both axes with a harmonica spring. A damping
// ratio of 1 gives the critically damped chase.
type Trailer struct {
	spring     harmonica.Spring
	X, Y       float64
	vx, vy     float64
	tx, ty     float64
	positioned bool
}

// NewTrailer builds the spring for fps frames per second; fps <= 0 falls
// back to 60.
func NewTrailer(fps int, frequency, damping float64) *Trailer {
	if fps <= 0 {
		fps = 60
	}
	return &Trailer{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// SetTarget moves the goal. The first target also places the trailer.
func (t *Trailer) SetTarget(x, y float64) {
	t.tx, t.ty = x, y
	if !t.positioned {
		t.X, t.Y = x, y
		t.positioned = true
	}
}

func (t *Trailer) Tick() {
	t.X, t.vx = t.spring.Update(t.X, t.vx, t.tx)
	t.Y, t.vy = t.spring.Update(t.Y, t.vy, t.ty)
}

// Settled reports whether the trailer is within eps of its target.
func (t *Trailer) Settled(eps float64) bool {
	dx, dy := t.tx-t.X, t.ty-t.Y
	return dx*dx+dy*dy <= eps*eps
}

type Cursor struct {
	cfg      Config
	X, Y     float64
	Trailer  *Trailer
	hovering bool
}

func New(cfg Config) *Cursor {
	return &Cursor{
		cfg:     cfg,
		Trailer: NewTrailer(cfg.FPS, cfg.Frequency, cfg.Damping),
	}
}

// Move places the dot on the pointer and retargets the trailer.
func (c *Cursor) Move(x, y float64) {
	c.X, c.Y = x, y
	c.Trailer.SetTarget(x+c.cfg.TrailerOffset, y+c.cfg.TrailerOffset)
}

func (c *Cursor) Tick() { c.Trailer.Tick() }

// TrailerCenter is the middle of the trailer ring. The trailer position is
// the ring's corner, TrailerOffset away from its centre.
func (c *Cursor) TrailerCenter() (float64, float64) {
	return c.Trailer.X - c.cfg.TrailerOffset, c.Trailer.Y - c.cfg.TrailerOffset
}

// Radius is the ring radius implied by the trailer offset.
func (c *Cursor) Radius() float64 { return math.Abs(c.cfg.TrailerOffset) }

// SetHover toggles the bloom state used while over an interactive element.
func (c *Cursor) SetHover(on bool) { c.hovering = on }
func (c *Cursor) Hovering() bool   { return c.hovering }
