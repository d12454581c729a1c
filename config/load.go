package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ducksouplab/motion/helpers"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

const (
	KindAnimation     = "animation"
	KindInterpolation = "interpolation"
)

var (
	ErrUnknownUnit = errors.New("unknown time unit")
	ErrUnknownKind = errors.New("unknown preset kind")
)

type Config struct {
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Animation     AnimationConfig     `yaml:"animation"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Presets       []Preset            `yaml:"presets"`
}

type SchedulerConfig struct {
	Workers int `yaml:"workers"`
}

// AnimationConfig holds defaults applied to animation presets
type AnimationConfig struct {
	Speed    float64 `yaml:"speed"`
	TimeUnit string  `yaml:"timeUnit"`
}

// InterpolationConfig holds defaults applied to interpolation presets,
// Period is in milliseconds
type InterpolationConfig struct {
	Ratio  float64 `yaml:"ratio"`
	Period int     `yaml:"period"`
}

// Preset describes an engine created at startup. Animation presets use
// Start, End, Duration (in TimeUnit), Speed, Looping and Sensitive, while
// interpolation presets use Initial, Target and Ratio.
type Preset struct {
	Name      string  `yaml:"name"`
	Kind      string  `yaml:"kind"`
	Start     float64 `yaml:"start"`
	End       float64 `yaml:"end"`
	Duration  int     `yaml:"duration"`
	TimeUnit  string  `yaml:"timeUnit"`
	Speed     float64 `yaml:"speed"`
	Looping   bool    `yaml:"looping"`
	Sensitive bool    `yaml:"sensitive"`
	Initial   float64 `yaml:"initial"`
	Target    float64 `yaml:"target"`
	Ratio     float64 `yaml:"ratio"`
	Autoplay  bool    `yaml:"autoplay"`
}

func Default() *Config {
	return &Config{
		Scheduler:     SchedulerConfig{Workers: 4},
		Animation:     AnimationConfig{Speed: 1, TimeUnit: "millisecond"},
		Interpolation: InterpolationConfig{Ratio: 0.1, Period: 1},
	}
}

// ParseUnit converts a unit name (singular or plural, case insensitive)
// to a duration. Empty names default to a millisecond.
func ParseUnit(name string) (time.Duration, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "ms" {
		return time.Millisecond, nil
	}
	switch strings.TrimSuffix(n, "s") {
	case "", "millisecond":
		return time.Millisecond, nil
	case "second":
		return time.Second, nil
	case "minute":
		return time.Minute, nil
	case "hour":
		return time.Hour, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// Unit returns the preset time unit, falling back to the animation default
func (c *Config) Unit(p Preset) (time.Duration, error) {
	if len(p.TimeUnit) > 0 {
		return ParseUnit(p.TimeUnit)
	}
	return ParseUnit(c.Animation.TimeUnit)
}

func (c *Config) validate() error {
	if _, err := ParseUnit(c.Animation.TimeUnit); err != nil {
		return err
	}
	names := make(map[string]bool)
	for _, p := range c.Presets {
		if names[p.Name] {
			return fmt.Errorf("duplicate preset name %q", p.Name)
		}
		names[p.Name] = true
		switch p.Kind {
		case KindAnimation:
			if _, err := c.Unit(p); err != nil {
				return fmt.Errorf("preset %q: %w", p.Name, err)
			}
		case KindInterpolation:
		default:
			return fmt.Errorf("preset %q: %w: %q", p.Name, ErrUnknownKind, p.Kind)
		}
	}
	return nil
}

// Parse decodes YAML on top of Default values
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	if err := yaml.NewDecoder(r).Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	if c.Animation.Speed == 0 {
		c.Animation.Speed = 1
	}
	if c.Interpolation.Period <= 0 {
		c.Interpolation.Period = 1
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Config, error) {
	f, err := helpers.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, err
	}
	log.Info().Str("context", "init").Str("path", path).Int("presets", len(c.Presets)).Msg("config_loaded")
	return c, nil
}
