package plot

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ducksouplab/motion/env"
	"github.com/ducksouplab/motion/events"
	"github.com/ducksouplab/motion/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// samples beyond this count are dropped
	MaxSamples = 20000
)

var ErrEmptyTrace = errors.New("empty trace")

// FrameSource is implemented by engines publishing FrameEnd events
type FrameSource interface {
	OnFrameEnd(listener func()) *events.Subscription
}

// Trace records (elapsed seconds, value) samples for one or more labelled
// lines and saves them as a PNG chart
type Trace struct {
	sync.Mutex
	name      string
	folder    string
	lines     map[string]plotter.XYs
	started   bool
	startedAt time.Time
	logger    zerolog.Logger
}

func NewTrace(name, folder string) *Trace {
	return &Trace{
		name:   name,
		folder: folder,
		lines:  make(map[string]plotter.XYs),
		logger: log.With().Str("context", "plot").Str("trace", name).Logger(),
	}
}

// private

// seconds (float64)
func (t *Trace) elapsed() float64 {
	if !t.started {
		t.started = true
		t.startedAt = time.Now()
		return 0
	}
	return float64(time.Since(t.startedAt).Microseconds()) / 1e6
}

// API

// Add records value for label at the current elapsed time
func (t *Trace) Add(label string, value float64) {
	t.Lock()
	defer t.Unlock()

	t.addAtLocked(label, t.elapsed(), value)
}

// AddAt records value for label at x seconds
func (t *Trace) AddAt(label string, x, value float64) {
	t.Lock()
	defer t.Unlock()

	t.addAtLocked(label, x, value)
}

func (t *Trace) addAtLocked(label string, x, value float64) {
	if len(t.lines[label]) >= MaxSamples {
		return
	}
	t.lines[label] = append(t.lines[label], plotter.XY{X: x, Y: value})
}

func (t *Trace) Len(label string) int {
	t.Lock()
	defer t.Unlock()

	return len(t.lines[label])
}

// Follow samples the source after every frame under label
func (t *Trace) Follow(source FrameSource, label string, sample func() float64) *events.Subscription {
	return source.OnFrameEnd(func() {
		t.Add(label, sample())
	})
}

// Save writes the chart in folder and returns its path
func (t *Trace) Save() (string, error) {
	t.Lock()
	defer t.Unlock()

	if len(t.lines) == 0 {
		return "", ErrEmptyTrace
	}
	if err := helpers.EnsureDir(t.folder); err != nil {
		return "", err
	}

	p := newPlot("Values of "+t.name, "seconds", "value")
	labels := make([]string, 0, len(t.lines))
	for label := range t.lines {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for i, label := range labels {
		if err := addLinePoints(p, label, t.lines[label], 1, 0, colorAt(i), draw.CircleGlyph{}, smallGlyph); err != nil {
			return "", err
		}
	}

	path := filepath.Join(t.folder, fmt.Sprintf("%s-%s.png", t.name, time.Now().Format(env.TimeFormat)))
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		t.logger.Error().Err(err).Msg("plot_save_failed")
		return "", err
	}
	t.logger.Info().Str("path", path).Msg("plot_saved")
	return path, nil
}
