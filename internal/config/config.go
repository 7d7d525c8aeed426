package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neonfield/internal/cursor"
	"github.com/san-kum/neonfield/internal/field"
	"github.com/san-kum/neonfield/internal/follower"
)

const (
	DefaultFPS   = 60
	DefaultTheme = "neon"
)

// Offset is a screen-space displacement from the pointer.
type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PreviewConfig struct {
	follower.Params `yaml:",inline"`
	// Entry is where the preview appears relative to the pointer when it is
	// first shown; Track is where it chases afterwards.
	Entry Offset `yaml:"entry"`
	Track Offset `yaml:"track"`
}

// ErrInvalidConfig wraps every validation failure outside the field section,
// which reports field.ErrInvalidConfig.
var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	FPS     int              `yaml:"fps"`
	Seed    int64            `yaml:"seed"`
	Theme   string           `yaml:"theme"`
	Field   field.Config     `yaml:"field"`
	Sway    field.SwayConfig `yaml:"sway"`
	Preview PreviewConfig    `yaml:"preview"`
	Cursor  cursor.Config    `yaml:"cursor"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Field: field.DefaultConfig(),
		Sway:  field.DefaultSwayConfig(),
		Preview: PreviewConfig{
			Params: follower.DefaultParams(),
			Entry:  Offset{X: 0, Y: 60},
			Track:  Offset{X: 30, Y: 70},
		},
		Cursor: cursor.DefaultConfig(DefaultFPS),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Cursor.FPS = cfg.FPS
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if err := c.Field.Validate(); err != nil {
		return err
	}
	p := c.Preview.Params
	if p.PositionEase <= 0 || p.PositionEase > 1 {
		return fmt.Errorf("%w: preview position_ease must be in (0, 1], got %f", ErrInvalidConfig, p.PositionEase)
	}
	if p.RotationEase <= 0 || p.RotationEase > 1 {
		return fmt.Errorf("%w: preview rotation_ease must be in (0, 1], got %f", ErrInvalidConfig, p.RotationEase)
	}
	if p.MaxTilt < 0 {
		return fmt.Errorf("%w: preview max_tilt must be non-negative, got %f", ErrInvalidConfig, p.MaxTilt)
	}
	if c.Sway.Ease < 0 || c.Sway.Ease > 1 {
		return fmt.Errorf("%w: sway ease must be in [0, 1], got %f", ErrInvalidConfig, c.Sway.Ease)
	}
	if c.Cursor.FPS <= 0 {
		return fmt.Errorf("%w: cursor fps must be positive, got %d", ErrInvalidConfig, c.Cursor.FPS)
	}
	if c.Cursor.Frequency < 0 {
		return fmt.Errorf("%w: cursor frequency must be non-negative, got %f", ErrInvalidConfig, c.Cursor.Frequency)
	}
	if c.Cursor.Damping < 0 {
		return fmt.Errorf("%w: cursor damping must be non-negative, got %f", ErrInvalidConfig, c.Cursor.Damping)
	}
	return nil
}
