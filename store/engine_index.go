package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/ducksouplab/motion/types"
	"github.com/rs/zerolog/log"
)

var (
	ErrDuplicate = errors.New("duplicate")

	engineIndexSingleton *engineIndex
)

type tracked struct {
	name   string
	engine types.Engine
}

type engineIndex struct {
	sync.Mutex
	index map[string]*tracked
}

func init() {
	engineIndexSingleton = newEngineIndex()
}

func newEngineIndex() *engineIndex {
	return &engineIndex{sync.Mutex{}, make(map[string]*tracked)}
}

func (ei *engineIndex) track(name string, e types.Engine) error {
	ei.Lock()
	defer ei.Unlock()

	id := e.ID()
	if _, ok := ei.index[id]; ok {
		log.Error().Str("context", "store").Str("engine", id).Str("name", name).Msg("engine_track_failed")
		return ErrDuplicate
	}
	ei.index[id] = &tracked{name, e}
	log.Debug().Str("context", "store").Str("engine", id).Str("name", name).Msg("engine_tracked")
	return nil
}

func (ei *engineIndex) untrack(id string) bool {
	ei.Lock()
	defer ei.Unlock()

	_, ok := ei.index[id]
	delete(ei.index, id)
	return ok
}

func (ei *engineIndex) get(id string) (types.Engine, bool) {
	ei.Lock()
	defer ei.Unlock()

	if t, ok := ei.index[id]; ok {
		return t.engine, true
	}
	return nil, false
}

func (ei *engineIndex) inspect() []types.Snapshot {
	ei.Lock()
	all := make([]*tracked, 0, len(ei.index))
	for _, t := range ei.index {
		all = append(all, t)
	}
	ei.Unlock()

	// engines are inspected without holding the index lock
	snapshots := make([]types.Snapshot, 0, len(all))
	for _, t := range all {
		s := t.engine.Inspect()
		s.Name = t.name
		snapshots = append(snapshots, s)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].Name == snapshots[j].Name {
			return snapshots[i].ID < snapshots[j].ID
		}
		return snapshots[i].Name < snapshots[j].Name
	})
	return snapshots
}

// API

// Track adds e under a display name, an engine can only be tracked once
func Track(name string, e types.Engine) error {
	return engineIndexSingleton.track(name, e)
}

// Untrack removes an engine without terminating it
func Untrack(id string) bool {
	return engineIndexSingleton.untrack(id)
}

func Get(id string) (types.Engine, bool) {
	return engineIndexSingleton.get(id)
}

// Inspect returns snapshots of all tracked engines sorted by name
func Inspect() []types.Snapshot {
	return engineIndexSingleton.inspect()
}
