package metrics

import "math"

// Sample is what one frame of a scene exposes to metrics.
type Sample struct {
	Frame        int
	Edges        int
	Overshoot    float64
	SwayX, SwayY float64

	Active     bool
	X, Y       float64
	Lag        float64
	RotX, RotY float64
	RawX, RawY float64
	MaxTilt    float64
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

func Defaults() []Metric {
	return []Metric{
		NewEdgeDensity(),
		NewOvershoot(),
		NewFollowerLag(),
		NewTiltSaturation(),
	}
}

type EdgeDensity struct {
	sum     float64
	samples int
}

func NewEdgeDensity() *EdgeDensity { return &EdgeDensity{} }

func (e *EdgeDensity) Name() string { return "edge_density" }

func (e *EdgeDensity) Observe(s Sample) {
	e.sum += float64(s.Edges)
	e.samples++
}

func (e *EdgeDensity) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *EdgeDensity) Reset() {
	e.sum = 0
	e.samples = 0
}

// Overshoot tracks the furthest any particle got past the bounds.
type Overshoot struct {
	max float64
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s Sample) { o.max = math.Max(o.max, s.Overshoot) }

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() { o.max = 0 }

// FollowerLag is the mean distance between preview and target over active
// frames.
type FollowerLag struct {
	sum     float64
	samples int
}

func NewFollowerLag() *FollowerLag { return &FollowerLag{} }

func (f *FollowerLag) Name() string { return "follower_lag" }

func (f *FollowerLag) Observe(s Sample) {
	if !s.Active {
		return
	}
	f.sum += s.Lag
	f.samples++
}

func (f *FollowerLag) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return f.sum / float64(f.samples)
}

func (f *FollowerLag) Reset() {
	f.sum = 0
	f.samples = 0
}

// TiltSaturation is the fraction of active frames where the raw rotation was
// past the clamp on either axis.
type TiltSaturation struct {
	clamped int
	samples int
}

func NewTiltSaturation() *TiltSaturation { return &TiltSaturation{} }

func (t *TiltSaturation) Name() string { return "tilt_saturation" }

func (t *TiltSaturation) Observe(s Sample) {
	if !s.Active {
		return
	}
	t.samples++
	if math.Abs(s.RawX) > s.MaxTilt || math.Abs(s.RawY) > s.MaxTilt {
		t.clamped++
	}
}

func (t *TiltSaturation) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.clamped) / float64(t.samples)
}

func (t *TiltSaturation) Reset() {
	t.clamped = 0
	t.samples = 0
}
