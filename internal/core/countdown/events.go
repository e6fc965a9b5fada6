package countdown

import "time"

// State represents the current Countdown mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateFired   State = "fired"
)

// EventType defines the type of Countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventFired       EventType = "fired"
)

// Event represents a Countdown update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining time.Duration
	Total     time.Duration
	Progress  float64
	At        time.Time
}
