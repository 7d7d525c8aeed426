package field

const (
	DefaultSwayEase          = 0.05
	DefaultSwayPointerScale  = 0.05
	DefaultSwayRotationScale = 0.001
)

type SwayConfig struct {
	Ease          float64 `yaml:"ease"`
	PointerScale  float64 `yaml:"pointer_scale"`
	RotationScale float64 `yaml:"rotation_scale"`
}

func DefaultSwayConfig() SwayConfig {
	return SwayConfig{
		Ease:          DefaultSwayEase,
		PointerScale:  DefaultSwayPointerScale,
		RotationScale: DefaultSwayRotationScale,
	}
}

// Sway eases the whole point cloud toward a rotation derived from the pointer
// offset from the centre of the view. RotY follows horizontal movement and
// RotX follows vertical movement, both in radians.
type Sway struct {
	cfg              SwayConfig
	offsetX, offsetY float64
	RotX, RotY       float64
}

func NewSway(cfg SwayConfig) *Sway {
	return &Sway{cfg: cfg}
}

// Point records the latest pointer position for a view of the given half
// extents. Only the last call before a Tick matters.
func (s *Sway) Point(px, py, halfW, halfH float64) {
	s.offsetX = (px - halfW) * s.cfg.PointerScale
	s.offsetY = (py - halfH) * s.cfg.PointerScale
}

// Tick moves the rotation one ease step toward the target.
func (s *Sway) Tick() (rotX, rotY float64) {
	tx := s.offsetX * s.cfg.RotationScale
	ty := s.offsetY * s.cfg.RotationScale
	s.RotY += s.cfg.Ease * (tx - s.RotY)
	s.RotX += s.cfg.Ease * (ty - s.RotX)
	return s.RotX, s.RotY
}

// Target is the rotation the sway converges to for the current pointer.
func (s *Sway) Target() (rotX, rotY float64) {
	return s.offsetY * s.cfg.RotationScale, s.offsetX * s.cfg.RotationScale
}
