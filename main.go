package main

import (
	"github.com/ducksouplab/motion/config"
	"github.com/ducksouplab/motion/engine"
	"github.com/ducksouplab/motion/env"
	"github.com/ducksouplab/motion/scheduler"
	"github.com/ducksouplab/motion/sequencing"
	"github.com/ducksouplab/motion/server"
	"github.com/ducksouplab/motion/store"
	"github.com/rs/zerolog/log"
)

const (
	plotFolder = "data/plots"
)

func main() {
	c, err := config.Load(env.ConfigFile)
	if err != nil {
		log.Fatal().Str("context", "init").Err(err).Msg("app_crashed")
	}

	var s sequencing.Scheduler = scheduler.Shared()
	if c.Scheduler.Workers > 0 && c.Scheduler.Workers != env.Workers {
		s = scheduler.NewPool(c.Scheduler.Workers)
	}

	instances, err := engine.BuildAll(c, s, nil)
	if err != nil {
		log.Fatal().Str("context", "init").Err(err).Msg("app_crashed")
	}
	for _, instance := range instances {
		if err := store.Track(instance.Name, instance.Engine); err != nil {
			log.Fatal().Str("context", "init").Err(err).Msg("app_crashed")
		}
		if env.GeneratePlots {
			instance.Trace(plotFolder)
		}
	}
	for i, p := range c.Presets {
		if p.Autoplay {
			instances[i].Start()
		}
	}

	log.Info().Str("context", "init").Str("mode", env.Mode).Int("engines", len(instances)).Msg("app_started")
	server.ListenAndServe() // blocking
}
