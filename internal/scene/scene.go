package scene

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/cursor"
	"github.com/san-kum/neonfield/internal/field"
	"github.com/san-kum/neonfield/internal/follower"
	"github.com/san-kum/neonfield/internal/frame"
	"github.com/san-kum/neonfield/internal/metrics"
	"github.com/san-kum/neonfield/internal/pointer"
)

var (
	ErrNotSetup     = errors.New("scene: not set up")
	ErrAlreadySetup = errors.New("scene: already set up")
	ErrTornDown     = errors.New("scene: torn down")
)

// Renderer receives the particle field every frame.
type Renderer interface {
	SetPoints(points []float64)
	SetEdges(lines []float64)
	SetGroupRotation(rotX, rotY float64)
}

// Compositor places the preview overlay.
type Compositor interface {
	SetTransform(t follower.Transform)
	Hide()
}

type Scene struct {
	cfg *config.Config
	rng *rand.Rand

	field   *field.Field
	sway    *field.Sway
	preview *follower.Follower
	cursor  *cursor.Cursor

	renderer   Renderer
	compositor Compositor

	bgIn, previewIn pointer.Latch
	bgSeq           uint64
	width, height   float64
	image           string

	last    field.Frame
	metrics []metrics.Metric
	samples []metrics.Sample
	record  bool
	release []func()
	setup   bool
	torn    bool
}

func New(cfg *config.Config) *Scene {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Scene{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		width:  1,
		height: 1,
	}
}

// AddMetric attaches m; it observes every frame after Setup.
func (s *Scene) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }

// Record keeps a Sample per frame for later retrieval with Samples.
func (s *Scene) Record(on bool) { s.record = on }

func (s *Scene) Samples() []metrics.Sample { return s.samples }

// Setup acquires everything the scene needs. On error the scene keeps what
// it already acquired; Teardown releases it.
func (s *Scene) Setup(sched *frame.Scheduler, src *pointer.Source, r Renderer, c Compositor) error {
	if s.torn {
		return ErrTornDown
	}
	if s.setup {
		return ErrAlreadySetup
	}
	if sched == nil || src == nil || r == nil || c == nil {
		return fmt.Errorf("scene: setup needs a scheduler, pointer source, renderer and compositor")
	}
	s.renderer, s.compositor = r, c

	f, err := field.New(s.cfg.Field, s.rng)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.field = f
	s.sway = field.NewSway(s.cfg.Sway)
	s.release = append(s.release, f.Teardown)
	s.release = append(s.release, src.Subscribe(func(x, y float64) { s.bgIn.Store(x, y) }))
	s.release = append(s.release, sched.Register(frame.TickFunc(s.tickBackground)))

	s.preview = follower.New(s.cfg.Preview.Params)
	cc := s.cfg.Cursor
	cc.FPS = sched.FPS()
	s.cursor = cursor.New(cc)
	s.release = append(s.release, src.Subscribe(func(x, y float64) { s.previewIn.Store(x, y) }))
	s.release = append(s.release, sched.Register(frame.TickFunc(s.tickPreview)))

	s.release = append(s.release, sched.AddObserver(s))
	s.setup = true
	return nil
}

// SetViewport sets the size the sway measures pointer offsets against.
func (s *Scene) SetViewport(width, height float64) {
	s.width, s.height = width, height
}

// ShowPreview shows the preview for image. The preview appears at the entry
// offset from the pointer and then chases the track offset.
func (s *Scene) ShowPreview(image string) error {
	if !s.setup {
		return ErrNotSetup
	}
	if s.torn {
		return ErrTornDown
	}
	s.image = image
	x, y, _ := s.previewIn.Load()
	entry, track := s.cfg.Preview.Entry, s.cfg.Preview.Track
	s.preview.SetTarget(x+entry.X, y+entry.Y)
	s.preview.Activate()
	s.preview.SetTarget(x+track.X, y+track.Y)
	s.cursor.SetHover(true)
	return nil
}

func (s *Scene) HidePreview() {
	if !s.setup || s.torn {
		return
	}
	s.image = ""
	s.preview.Deactivate()
	s.cursor.SetHover(false)
	s.compositor.Hide()
}

// Image is the image currently previewed, or "".
func (s *Scene) Image() string { return s.image }

func (s *Scene) Field() *field.Field         { return s.field }
func (s *Scene) Sway() *field.Sway           { return s.sway }
func (s *Scene) Preview() *follower.Follower { return s.preview }
func (s *Scene) Cursor() *cursor.Cursor      { return s.cursor }
func (s *Scene) LastFrame() field.Frame      { return s.last }
func (s *Scene) Config() *config.Config      { return s.cfg }

func (s *Scene) tickBackground() {
	if x, y, seq := s.bgIn.Load(); seq != s.bgSeq {
		s.bgSeq = seq
		s.sway.Point(x, y, s.width/2, s.height/2)
	}
	rx, ry := s.sway.Tick()
	s.last = s.field.Tick()

	s.renderer.SetGroupRotation(rx, ry)
	s.renderer.SetPoints(s.last.Points)
	s.renderer.SetEdges(s.last.Lines)
}

func (s *Scene) tickPreview() {
	x, y, _ := s.previewIn.Load()
	s.cursor.Move(x, y)
	s.cursor.Tick()

	if !s.preview.Active() {
		return
	}
	track := s.cfg.Preview.Track
	s.preview.SetTarget(x+track.X, y+track.Y)
	if t, ok := s.preview.Tick(); ok {
		s.compositor.SetTransform(t)
	}
}

// OnFrame samples the scene after every scheduler step.
func (s *Scene) OnFrame(n int) {
	if s.torn || (!s.record && len(s.metrics) == 0) {
		return
	}
	sample := s.sample(n)
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	if s.record {
		s.samples = append(s.samples, sample)
	}
}

func (s *Scene) sample(n int) metrics.Sample {
	b := s.cfg.Field.Bounds
	over := 0.0
	for _, v := range s.last.Points {
		over = math.Max(over, math.Abs(v)-b)
	}

	cur := s.preview.Current()
	tx, ty := s.preview.Target()
	rawX, rawY := s.preview.Raw()

	return metrics.Sample{
		Frame:     n,
		Edges:     len(s.last.Edges),
		Overshoot: over,
		SwayX:     s.sway.RotX,
		SwayY:     s.sway.RotY,
		Active:    s.preview.Active(),
		X:         cur.X,
		Y:         cur.Y,
		Lag:       math.Hypot(tx-cur.X, ty-cur.Y),
		RotX:      cur.RotX,
		RotY:      cur.RotY,
		RawX:      rawX,
		RawY:      rawY,
		MaxTilt:   s.preview.Params().MaxTilt,
	}
}

// Teardown stops the scene's frame callbacks, drops its pointer
// subscriptions and releases the field and any renderer or compositor that
// implements io.Closer. It is safe after a failed Setup and safe to repeat.
func (s *Scene) Teardown() error {
	if s.torn {
		return nil
	}
	s.torn = true

	for i := len(s.release) - 1; i >= 0; i-- {
		s.release[i]()
	}
	s.release = nil

	var errs []error
	if s.compositor != nil {
		s.compositor.Hide()
		if c, ok := s.compositor.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	if s.renderer != nil {
		if c, ok := s.renderer.(io.Closer); ok && any(s.renderer) != any(s.compositor) {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

func (s *Scene) TornDown() bool { return s.torn }
