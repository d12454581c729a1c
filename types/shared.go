package types

// Terminable is implemented by engines that hold a scheduler registration
type Terminable interface {
	Terminate()
}

// Controllable exposes the playback controls shared by engines
type Controllable interface {
	Terminable
	Pause()
	Resume()
	IsPlaying() bool
	IsPaused() bool
}

// Inspectable engines can be listed by the stats and API servers
type Inspectable interface {
	ID() string
	Inspect() Snapshot
}

// Snapshot is a JSON friendly view of an engine state
type Snapshot struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Kind      string  `json:"kind"`
	Playing   bool    `json:"playing"`
	Paused    bool    `json:"paused"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
	Value     string  `json:"value"`
	Target    string  `json:"target,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	Ratio     float64 `json:"ratio,omitempty"`
	Looping   bool    `json:"looping"`
}

// Engine is what the store tracks and the API server controls
type Engine interface {
	Inspectable
	Controllable
}
