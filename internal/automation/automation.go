// Package automation drives headless sessions from YAML pointer scenarios
// and sweeps a single tuning parameter across a range.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neonfield/internal/config"
	"github.com/san-kum/neonfield/internal/scene"
)

var ErrEmptyScenario = errors.New("automation: scenario has no waypoints")

// Scenario is a scripted pointer path: the pointer glides from one waypoint
// to the next over each waypoint's frame count.
type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	Loop        bool       `yaml:"loop"`
	Waypoints   []Waypoint `yaml:"waypoints"`
}

// Waypoint is reached Frames frames after the previous one. Image is the
// project previewed while heading here; empty hides the preview.
type Waypoint struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Frames int     `yaml:"frames"`
	Image  string  `yaml:"image"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	if len(s.Waypoints) == 0 {
		return nil, ErrEmptyScenario
	}
	if s.Width <= 0 {
		s.Width = 1280
	}
	if s.Height <= 0 {
		s.Height = 720
	}
	for i := range s.Waypoints {
		if s.Waypoints[i].Frames < 1 {
			s.Waypoints[i].Frames = 1
		}
	}
	return &s, nil
}

// Length is the number of frames one pass takes.
func (s *Scenario) Length() int {
	n := 0
	for _, w := range s.Waypoints {
		n += w.Frames
	}
	return n
}

// Script turns the waypoints into a per-frame pointer script. The first
// waypoint is approached from itself, so the path starts there. Past the
// end the pointer rests on the last waypoint unless Loop is set.
func (s *Scenario) Script() scene.Script {
	total := s.Length()
	return func(n int) scene.Step {
		if total == 0 {
			first := s.Waypoints[0]
			return scene.Step{X: first.X, Y: first.Y, Image: first.Image}
		}
		if s.Loop {
			n %= total
		} else if n >= total {
			last := s.Waypoints[len(s.Waypoints)-1]
			return scene.Step{X: last.X, Y: last.Y, Image: last.Image}
		}

		prev := s.Waypoints[0]
		for _, w := range s.Waypoints {
			if n < w.Frames {
				t := float64(n+1) / float64(w.Frames)
				return scene.Step{
					X:     prev.X + (w.X-prev.X)*t,
					Y:     prev.Y + (w.Y-prev.Y)*t,
					Image: w.Image,
				}
			}
			n -= w.Frames
			prev = w
		}
		return scene.Step{X: prev.X, Y: prev.Y, Image: prev.Image}
	}
}

// RunScenario plays the scenario once (or frames frames when frames > 0).
func RunScenario(ctx context.Context, s *Scenario, cfg *config.Config, frames int) (*scene.Result, error) {
	if frames <= 0 {
		frames = s.Length()
	}
	return scene.Run(ctx, cfg, frames, s.Width, s.Height, s.Script())
}

// ParameterSweep runs the same script across evenly spaced values of one
// parameter.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	NumSteps int
	Frames   int
	Width    float64
	Height   float64
	Script   scene.Script
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// SweepParams lists the names SetParam understands.
var SweepParams = []string{
	"count", "speed", "connect_distance", "sway_ease",
	"position_ease", "rotation_ease", "tilt_sensitivity", "max_tilt",
}

// SetParam writes a named tuning parameter into cfg.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "count":
		cfg.Field.Count = int(v)
	case "speed":
		cfg.Field.Speed = v
	case "connect_distance":
		cfg.Field.ConnectDistance = v
	case "sway_ease":
		cfg.Sway.Ease = v
	case "position_ease":
		cfg.Preview.PositionEase = v
	case "rotation_ease":
		cfg.Preview.RotationEase = v
	case "tilt_sensitivity":
		cfg.Preview.TiltSensitivity = v
	case "max_tilt":
		cfg.Preview.MaxTilt = v
	default:
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, SweepParams)
	}
	return nil
}

// RunSweep executes a parameter sweep. Every step starts from a copy of base
// with the same seed, so only the swept parameter differs.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := *base
		if err := SetParam(&cfg, sweep.Param, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, paramVal, err)
		}

		result, err := scene.Run(ctx, &cfg, sweep.Frames, sweep.Width, sweep.Height, sweep.Script)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
		})
	}

	return results, nil
}
