package scene

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/frame"
	"github.com/san-kum/neonfield/internal/metrics"
	"github.com/san-kum/neonfield/internal/pointer"
)

// Step is one frame of scripted input. An empty Image hides the preview.
type Step struct {
	X, Y  float64
	Image string
}

type Script func(frame int) Step

type Result struct {
	Frames  int
	Samples []metrics.Sample
	Metrics map[string]float64
}

// Orbit circles the pointer around the viewport centre and shows image for
// the second half of every period.
func Orbit(width, height float64, period int, image string) Script {
	if period <= 0 {
		period = 120
	}
	return func(n int) Step {
		a := 2 * math.Pi * float64(n%period) / float64(period)
		r := math.Min(width, height) / 3
		st := Step{X: width/2 + r*math.Cos(a), Y: height/2 + r*math.Sin(a)}
		if n%period >= period/2 {
			st.Image = image
		}
		return st
	}
}

// Sweep drags the pointer left to right across the viewport with the
// preview shown the whole time.
func Sweep(width, height float64, period int, image string) Script {
	if period <= 0 {
		period = 120
	}
	return func(n int) Step {
		return Step{
			X:     width * float64(n%period) / float64(period),
			Y:     height / 2,
			Image: image,
		}
	}
}

// Teleport jumps the pointer between opposite corners every frame, which
// keeps the preview tilt pinned at the clamp.
func Teleport(width, height float64, image string) Script {
	return func(n int) Step {
		if n%2 == 0 {
			return Step{X: 0, Y: 0, Image: image}
		}
		return Step{X: width, Y: height, Image: image}
	}
}

// Run drives a headless scene for the given number of frames, feeding script
// through a pointer source the way a window would.
func Run(ctx context.Context, cfg *config.Config, frames int, width, height float64, script Script) (*Result, error) {
	sched := frame.NewScheduler(cfg.FPS)
	src := pointer.NewSource()
	sink := &Capture{}

	s := New(cfg)
	defer s.Teardown()

	if err := s.Setup(sched, src, sink, sink); err != nil {
		return nil, err
	}
	s.SetViewport(width, height)
	s.Record(true)
	ms := metrics.Defaults()
	for _, m := range ms {
		s.AddMetric(m)
	}

	result := &Result{Metrics: make(map[string]float64)}
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		st := script(i)
		src.Publish(st.X, st.Y)
		switch {
		case st.Image == "" && s.Image() != "":
			s.HidePreview()
		case st.Image != "" && st.Image != s.Image():
			if err := s.ShowPreview(st.Image); err != nil {
				return result, err
			}
		}

		sched.Step()
		result.Frames++
	}

	result.Samples = s.Samples()
	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunEnsemble runs the same script over runs consecutive seeds in parallel.
func RunEnsemble(ctx context.Context, cfg *config.Config, runs int, seedStart int64, frames int, width, height float64, script Script) ([]*Result, error) {
	results := make([]*Result, runs)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < runs; i++ {
		i := i
		c := *cfg
		c.Seed = seedStart + int64(i)
		g.Go(func() error {
			r, err := Run(ctx, &c, frames, width, height, script)
			results[i] = r
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
