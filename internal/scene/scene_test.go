package scene_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/field"
	"github.com/san-kum/neonfield/internal/frame"
	"github.com/san-kum/neonfield/internal/pointer"
	"github.com/san-kum/neonfield/internal/scene"
)

var _ = Describe("Scene", func() {
	var (
		cfg   *config.Config
		sched *frame.Scheduler
		src   *pointer.Source
		sink  *scene.Capture
		s     *scene.Scene
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Seed = 11
		cfg.Field.Count = 40
		sched = frame.NewScheduler(cfg.FPS)
		src = pointer.NewSource()
		sink = &scene.Capture{}
		s = scene.New(cfg)
	})

	Describe("Setup", func() {
		It("rejects missing collaborators", func() {
			Expect(s.Setup(sched, src, nil, sink)).To(HaveOccurred())
			Expect(s.Teardown()).To(Succeed())
		})

		It("leaves nothing registered when the field config is invalid", func() {
			cfg.Field.Bounds = 0
			err := s.Setup(sched, src, sink, sink)
			Expect(err).To(MatchError(field.ErrInvalidConfig))

			Expect(s.Teardown()).To(Succeed())
			Expect(sched.Len()).To(Equal(0))
			Expect(src.Subscribers()).To(Equal(0))
		})

		It("registers both simulations independently", func() {
			Expect(s.Setup(sched, src, sink, sink)).To(Succeed())
			Expect(sched.Len()).To(Equal(2))
			Expect(sched.Observers()).To(Equal(1))
			Expect(src.Subscribers()).To(Equal(2))
			Expect(s.Setup(sched, src, sink, sink)).To(MatchError(scene.ErrAlreadySetup))
		})
	})

	Describe("ticking", func() {
		BeforeEach(func() {
			Expect(s.Setup(sched, src, sink, sink)).To(Succeed())
			s.SetViewport(800, 600)
		})

		It("feeds the renderer every frame", func() {
			sched.Step()
			Expect(sink.Frames).To(Equal(1))
			Expect(sink.Points).To(HaveLen(3 * cfg.Field.Count))
			Expect(len(sink.Lines)).To(Equal(6 * len(s.LastFrame().Edges)))
			Expect(sink.Visible).To(BeFalse())
		})

		It("sways the field toward the pointer", func() {
			src.Publish(800, 0)
			sched.Step()
			Expect(sink.RotY).To(BeNumerically(">", 0))
			Expect(sink.RotX).To(BeNumerically("<", 0))
		})

		It("refuses to preview before setup", func() {
			Expect(scene.New(cfg).ShowPreview("a.png")).To(MatchError(scene.ErrNotSetup))
		})

		It("shows the preview at the entry offset and chases the track offset", func() {
			src.Publish(100, 100)
			Expect(s.ShowPreview("a.png")).To(Succeed())

			cur := s.Preview().Current()
			Expect(cur.X).To(Equal(100.0))
			Expect(cur.Y).To(Equal(160.0))
			Expect(cur.RotX).To(Equal(0.0))
			Expect(cur.RotY).To(Equal(0.0))

			sched.Step()
			Expect(sink.Visible).To(BeTrue())
			Expect(sink.Transform.X).To(BeNumerically("~", 103, 1e-9))
			Expect(sink.Transform.Y).To(BeNumerically("~", 161, 1e-9))
			Expect(s.Cursor().Hovering()).To(BeTrue())
		})

		It("hides and freezes the preview", func() {
			src.Publish(100, 100)
			Expect(s.ShowPreview("a.png")).To(Succeed())
			sched.Step()
			frozen := sink.Transform

			s.HidePreview()
			src.Publish(700, 500)
			sched.Step()

			Expect(sink.Visible).To(BeFalse())
			Expect(sink.Transform).To(Equal(frozen))
			Expect(s.Image()).To(BeEmpty())
		})
	})

	Describe("Teardown", func() {
		It("unregisters, releases and is idempotent", func() {
			Expect(s.Setup(sched, src, sink, sink)).To(Succeed())
			sched.Step()

			Expect(s.Teardown()).To(Succeed())
			Expect(s.Teardown()).To(Succeed())

			Expect(sched.Len()).To(Equal(0))
			Expect(sched.Observers()).To(Equal(0))
			Expect(src.Subscribers()).To(Equal(0))
			Expect(sink.Closed).To(Equal(1))
			Expect(s.Field().Closed()).To(BeTrue())
			Expect(s.Setup(sched, src, sink, sink)).To(MatchError(scene.ErrTornDown))
		})
	})
})

var _ = Describe("Run", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Seed = 5
		cfg.Field.Count = 50
	})

	It("samples every frame and reports the default metrics", func() {
		res, err := scene.Run(context.Background(), cfg, 240, 1000, 800, scene.Orbit(1000, 800, 120, "x.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(240))
		Expect(res.Samples).To(HaveLen(240))
		Expect(res.Metrics).To(HaveKey("edge_density"))
		Expect(res.Metrics).To(HaveKey("follower_lag"))
		Expect(res.Metrics["overshoot"]).To(BeNumerically("<=", cfg.Field.Speed))
	})

	It("is deterministic for a fixed seed", func() {
		script := scene.Orbit(1000, 800, 60, "x.png")
		a, err := scene.Run(context.Background(), cfg, 90, 1000, 800, script)
		Expect(err).NotTo(HaveOccurred())
		b, err := scene.Run(context.Background(), cfg, 90, 1000, 800, script)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Samples).To(Equal(b.Samples))
	})

	It("never emits tilt past the clamp", func() {
		res, err := scene.Run(context.Background(), cfg, 240, 1000, 800, scene.Sweep(1000, 800, 60, "x.png"))
		Expect(err).NotTo(HaveOccurred())
		for _, smp := range res.Samples {
			Expect(math.Abs(smp.RotX)).To(BeNumerically("<=", cfg.Preview.MaxTilt))
			Expect(math.Abs(smp.RotY)).To(BeNumerically("<=", cfg.Preview.MaxTilt))
		}
		Expect(res.Metrics["tilt_saturation"]).To(BeNumerically(">", 0))
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := scene.Run(ctx, cfg, 100, 1000, 800, scene.Teleport(1000, 800, "x.png"))
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Frames).To(Equal(0))
	})

	It("steps the cursor at the scheduler rate whatever the cursor config says", func() {
		cfg.FPS = 30
		cfg.Cursor.FPS = 0
		res, err := scene.Run(context.Background(), cfg, 2, 100, 100, scene.Orbit(100, 100, 10, "x.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(2))
	})

	It("runs an ensemble across seeds", func() {
		res, err := scene.RunEnsemble(context.Background(), cfg, 3, 1, 30, 1000, 800, scene.Teleport(1000, 800, "x.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveLen(3))
		for _, r := range res {
			Expect(r.Frames).To(Equal(30))
		}
	})
})
