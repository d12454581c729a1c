// Package engine builds animation and interpolation engines from
// configuration presets.
package engine

import (
	"fmt"
	"time"

	"github.com/ducksouplab/motion/config"
	"github.com/ducksouplab/motion/events"
	"github.com/ducksouplab/motion/helpers"
	"github.com/ducksouplab/motion/plot"
	"github.com/ducksouplab/motion/sequencing"
	"github.com/ducksouplab/motion/types"
	"github.com/rs/zerolog/log"
)

// Instance is an engine built from a preset
type Instance struct {
	Name   string
	Kind   string
	Engine types.Engine
	// Value samples the current value
	Value func() float64
	start func()
	// subscribes to the event ending a run (termination or completion)
	onEnd  func(func()) *events.Subscription
	frames plot.FrameSource
}

// Start plays an animation or sets the target of an interpolation
func (i *Instance) Start() {
	i.start()
}

// Trace records every frame and saves the chart when the run ends
func (i *Instance) Trace(folder string) *plot.Trace {
	trace := plot.NewTrace(i.Name, folder)
	trace.Follow(i.frames, "value", i.Value)
	i.onEnd(func() {
		if _, err := trace.Save(); err != nil {
			log.Error().Str("context", "engine").Str("preset", i.Name).Err(err).Msg("trace_failed")
		}
	})
	return trace
}

func buildAnimation(c *config.Config, p config.Preset, s sequencing.Scheduler, bus *events.Bus) (*Instance, error) {
	unit, err := c.Unit(p)
	if err != nil {
		return nil, err
	}
	speed := p.Speed
	if speed == 0 {
		speed = c.Animation.Speed
	}
	a, err := sequencing.Float64.Use(sequencing.AnimationConfig[float64]{
		Start:     p.Start,
		End:       p.End,
		Speed:     speed,
		Duration:  time.Duration(p.Duration) * unit,
		TimeUnit:  unit,
		Sensitive: p.Sensitive,
		Looping:   p.Looping,
		Scheduler: s,
		Bus:       bus,
	})
	if err != nil {
		return nil, err
	}
	return &Instance{
		Name:   p.Name,
		Kind:   p.Kind,
		Engine: a,
		Value:  a.ValueClamped,
		start:  a.Play,
		onEnd:  a.OnTermination,
		frames: a,
	}, nil
}

func buildInterpolation(c *config.Config, p config.Preset, s sequencing.Scheduler, bus *events.Bus) (*Instance, error) {
	ratio := p.Ratio
	if ratio == 0 {
		ratio = c.Interpolation.Ratio
	}
	i, err := sequencing.NewInterpolation(sequencing.InterpolationConfig[float64]{
		Initial:   p.Initial,
		Ratio:     ratio,
		Blend:     sequencing.LinearBlend,
		Equal:     helpers.LooseEquals,
		Period:    time.Duration(c.Interpolation.Period) * time.Millisecond,
		Scheduler: s,
		Bus:       bus,
	})
	if err != nil {
		return nil, err
	}
	target := p.Target
	return &Instance{
		Name:   p.Name,
		Kind:   p.Kind,
		Engine: i,
		Value:  i.Value,
		start:  func() { i.SetTarget(target) },
		onEnd:  i.OnCompletion,
		frames: i,
	}, nil
}

// API

// Build creates the engine described by p, a nil bus means events.Default
func Build(c *config.Config, p config.Preset, s sequencing.Scheduler, bus *events.Bus) (*Instance, error) {
	var (
		instance *Instance
		err      error
	)
	switch p.Kind {
	case config.KindAnimation:
		instance, err = buildAnimation(c, p, s, bus)
	case config.KindInterpolation:
		instance, err = buildInterpolation(c, p, s, bus)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownKind, p.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	log.Info().Str("context", "engine").Str("preset", p.Name).Str("kind", p.Kind).Str("engine", instance.Engine.ID()).Msg("engine_built")
	return instance, nil
}

// BuildAll builds every preset of c, in order
func BuildAll(c *config.Config, s sequencing.Scheduler, bus *events.Bus) ([]*Instance, error) {
	instances := make([]*Instance, 0, len(c.Presets))
	for _, p := range c.Presets {
		instance, err := Build(c, p, s, bus)
		if err != nil {
			for _, built := range instances {
				built.Engine.Terminate()
			}
			return nil, err
		}
		instances = append(instances, instance)
	}
	return instances, nil
}
