package config

import "sort"

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"dense": func() *Config {
		c := DefaultConfig()
		c.Field.Count = 300
		c.Field.ConnectDistance = 12
		c.Field.Workers = 4
		return c
	},
	"calm": func() *Config {
		c := DefaultConfig()
		c.Field.Speed = 0.025
		c.Sway.Ease = 0.02
		c.Preview.PositionEase = 0.06
		c.Preview.RotationEase = 0.08
		return c
	},
	"sparse": func() *Config {
		c := DefaultConfig()
		c.Field.Count = 60
		c.Field.ConnectDistance = 25
		return c
	},
	"jittery": func() *Config {
		c := DefaultConfig()
		c.Field.Speed = 0.4
		c.Preview.TiltSensitivity = 0.8
		c.Preview.MaxTilt = 40
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
