package field

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultCount           = 150
	DefaultBounds          = 50.0
	DefaultSpeed           = 0.05
	DefaultConnectDistance = 15.0
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

type Particle struct {
	Pos Vec3
	Vel Vec3
}

// Edge connects two particles by index, always with I < J.
type Edge struct {
	I, J int
}

type Config struct {
	Count           int     `yaml:"count"`
	Bounds          float64 `yaml:"bounds"`
	Speed           float64 `yaml:"speed"`
	ConnectDistance float64 `yaml:"connect_distance"`
	// Workers splits the edge pass across goroutines. 0 or 1 runs it
	// serially; the edge order is the same either way.
	Workers int `yaml:"workers,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Count:           DefaultCount,
		Bounds:          DefaultBounds,
		Speed:           DefaultSpeed,
		ConnectDistance: DefaultConnectDistance,
	}
}

func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidConfig, c.Count)
	}
	if c.Bounds <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %f", ErrInvalidConfig, c.Bounds)
	}
	if c.Speed < 0 {
		return fmt.Errorf("%w: speed must be non-negative, got %f", ErrInvalidConfig, c.Speed)
	}
	if c.ConnectDistance <= 0 {
		return fmt.Errorf("%w: connect distance must be positive, got %f", ErrInvalidConfig, c.ConnectDistance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Frame is the output of one tick. Points holds 3N coordinates, Lines holds
// 6E coordinates (both endpoints of every edge). The slices belong to the
// field and are overwritten by the next Tick.
type Frame struct {
	Points []float64
	Lines  []float64
	Edges  []Edge
}

type Field struct {
	cfg       Config
	particles []Particle
	points    []float64
	lines     []float64
	edges     []Edge
	chunks    []edgeChunk
	torn      bool
}

// New creates cfg.Count particles with positions uniform in the bounding cube
// and velocities uniform in [-Speed, Speed] on each axis. A nil rng is seeded
// from the clock.
func New(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	uniform := func(r float64) float64 { return (rng.Float64()*2 - 1) * r }

	particles := make([]Particle, cfg.Count)
	for i := range particles {
		particles[i] = Particle{
			Pos: Vec3{uniform(cfg.Bounds), uniform(cfg.Bounds), uniform(cfg.Bounds)},
			Vel: Vec3{uniform(cfg.Speed), uniform(cfg.Speed), uniform(cfg.Speed)},
		}
	}
	return FromParticles(cfg, particles)
}

// FromParticles builds a field around an explicit particle set. cfg.Count is
// replaced by len(particles).
func FromParticles(cfg Config, particles []Particle) (*Field, error) {
	cfg.Count = len(particles)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ps := make([]Particle, len(particles))
	copy(ps, particles)
	return &Field{
		cfg:       cfg,
		particles: ps,
		points:    make([]float64, 3*len(ps)),
		lines:     make([]float64, 0, 6*len(ps)),
		edges:     make([]Edge, 0, len(ps)),
	}, nil
}

func (f *Field) Config() Config { return f.cfg }
func (f *Field) Len() int       { return len(f.particles) }

// Particles returns a copy of the current particle state.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Tick advances the field by one step and returns the updated buffers.
func (f *Field) Tick() Frame {
	if f.torn {
		return Frame{}
	}
	b := f.cfg.Bounds

	for i := range f.particles {
		p := &f.particles[i]
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Pos.Z += p.Vel.Z

		if p.Pos.X > b || p.Pos.X < -b {
			p.Vel.X = -p.Vel.X
		}
		if p.Pos.Y > b || p.Pos.Y < -b {
			p.Vel.Y = -p.Vel.Y
		}
		if p.Pos.Z > b || p.Pos.Z < -b {
			p.Vel.Z = -p.Vel.Z
		}

		f.points[i*3] = p.Pos.X
		f.points[i*3+1] = p.Pos.Y
		f.points[i*3+2] = p.Pos.Z
	}

	f.connect()

	return Frame{Points: f.points, Lines: f.lines, Edges: f.edges}
}

func (f *Field) connect() {
	if f.cfg.Workers > 1 {
		f.connectParallel(f.cfg.Workers)
		return
	}
	f.edges, f.lines = f.scanRows(0, len(f.particles), f.edges[:0], f.lines[:0])
}

// scanRows appends every edge (i, j) with start <= i < end and i < j.
func (f *Field) scanRows(start, end int, edges []Edge, lines []float64) ([]Edge, []float64) {
	d := f.cfg.ConnectDistance
	n := len(f.particles)

	for i := start; i < end; i++ {
		a := f.particles[i].Pos
		for j := i + 1; j < n; j++ {
			c := f.particles[j].Pos
			if a.Sub(c).Length() < d {
				edges = append(edges, Edge{I: i, J: j})
				lines = append(lines, a.X, a.Y, a.Z, c.X, c.Y, c.Z)
			}
		}
	}
	return edges, lines
}

// Teardown drops the particle set and buffers. Safe to call more than once.
func (f *Field) Teardown() {
	if f.torn {
		return
	}
	f.torn = true
	f.particles = nil
	f.points = nil
	f.lines = nil
	f.edges = nil
	f.chunks = nil
}

func (f *Field) Closed() bool { return f.torn }
