package follower_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/neonfield/internal/follower"
)

var _ = Describe("Follower", func() {
	var f *follower.Follower

	BeforeEach(func() {
		f = follower.New(follower.DefaultParams())
	})

	Context("while inactive", func() {
		It("emits nothing and keeps its state", func() {
			f.SetTarget(100, 0)
			_, ok := f.Tick()
			Expect(ok).To(BeFalse())
			Expect(f.Current()).To(Equal(follower.Transform{}))
		})
	})

	Context("on activation", func() {
		It("snaps to the target with zero rotation", func() {
			f.SetTarget(42, -7)
			f.Activate()

			tr, ok := f.Tick()
			Expect(ok).To(BeTrue())
			Expect(tr).To(Equal(follower.Transform{X: 42, Y: -7}))
		})

		It("resets after a deactivate/activate cycle", func() {
			f.Activate()
			f.SetTarget(300, 300)
			for i := 0; i < 5; i++ {
				f.Tick()
			}
			f.Deactivate()

			f.SetTarget(10, 20)
			f.Activate()
			Expect(f.Current()).To(Equal(follower.Transform{X: 10, Y: 20}))
		})

		It("does not reset when already active", func() {
			f.Activate()
			f.SetTarget(100, 0)
			f.Tick()
			f.Activate()
			Expect(f.Current().X).To(BeNumerically("~", 10, 1e-9))
		})
	})

	Context("while deactivated", func() {
		It("freezes position and rotation", func() {
			f.Activate()
			f.SetTarget(100, 50)
			f.Tick()
			before := f.Current()

			f.Deactivate()
			f.SetTarget(-500, -500)
			f.Tick()
			Expect(f.Current()).To(Equal(before))
		})
	})

	Context("chasing a fixed target", func() {
		BeforeEach(func() {
			f.Activate()
			f.SetTarget(100, 0)
		})

		It("follows the ease sequence", func() {
			tr, _ := f.Tick()
			Expect(tr.X).To(BeNumerically("~", 10, 1e-9))
			Expect(tr.Y).To(BeNumerically("~", 0, 1e-9))

			tr, _ = f.Tick()
			Expect(tr.X).To(BeNumerically("~", 19, 1e-9))
		})

		It("converges geometrically", func() {
			prev := 100.0
			for i := 0; i < 60; i++ {
				tr, _ := f.Tick()
				gap := 100 - tr.X
				Expect(gap).To(BeNumerically(">=", 0))
				Expect(gap).To(BeNumerically("<", prev))
				Expect(gap).To(BeNumerically("~", prev*(1-follower.DefaultPositionEase), 1e-9))
				prev = gap
			}
		})

		It("tilts toward the motion and then settles", func() {
			tr, _ := f.Tick()
			// dx = 100 on the first tick: target yaw 35, eased by 0.12.
			Expect(tr.RotY).To(BeNumerically("~", 100*0.35*0.12, 1e-9))
			Expect(tr.RotX).To(BeNumerically("~", 0, 1e-9))

			for i := 0; i < 400; i++ {
				tr, _ = f.Tick()
			}
			Expect(math.Abs(tr.RotY)).To(BeNumerically("<", 1e-6))
		})
	})

	Context("under extreme input", func() {
		It("clamps the emitted tilt but not the internal rotation", func() {
			f.Activate()
			f.SetTarget(0, 10000)
			var tr follower.Transform
			for i := 0; i < 3; i++ {
				tr, _ = f.Tick()
				Expect(tr.RotX).To(BeNumerically(">=", -follower.DefaultMaxTilt))
				Expect(tr.RotX).To(BeNumerically("<=", follower.DefaultMaxTilt))
			}
			Expect(tr.RotX).To(Equal(-follower.DefaultMaxTilt))

			rawX, _ := f.Raw()
			Expect(rawX).To(BeNumerically("<", -follower.DefaultMaxTilt))
		})

		It("keeps every emitted angle inside the clamp for an oscillating target", func() {
			f.Activate()
			for i := 0; i < 500; i++ {
				if i%2 == 0 {
					f.SetTarget(5000, -5000)
				} else {
					f.SetTarget(-5000, 5000)
				}
				tr, _ := f.Tick()
				Expect(math.Abs(tr.RotX)).To(BeNumerically("<=", follower.DefaultMaxTilt))
				Expect(math.Abs(tr.RotY)).To(BeNumerically("<=", follower.DefaultMaxTilt))
			}
		})
	})
})

var _ = Describe("Transform", func() {
	It("is a pure translation with no tilt", func() {
		m := follower.Transform{X: 3, Y: 4}.Matrix()
		Expect(m).To(Equal([16]float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			3, 4, 0, 1,
		}))
	})

	It("foreshortens the local x axis under yaw", func() {
		x, y := follower.Transform{RotY: 60}.Apply(10, 0)
		Expect(x).To(BeNumerically("~", 5, 1e-9))
		Expect(y).To(BeNumerically("~", 0, 1e-9))
	})
})
