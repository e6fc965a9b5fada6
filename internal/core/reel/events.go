package reel

import "time"

// EventType defines the type of Reel event.
type EventType string

const (
	EventFrame     EventType = "frame"
	EventSettled   EventType = "settled"
	EventHighlight EventType = "highlight"
)

// Event represents a Reel update for observers.
type Event struct {
	Type         EventType
	Reel         string
	Offset       float64
	Speed        float64
	RestingIndex int
	Highlighted  []int
}

// Handler receives Reel events. Handlers run on the goroutine that stepped
// the reel and must not block.
type Handler func(Event)

// Scheduler runs fn once after delay. A reel schedules its next step only
// after the current one returned, so steps of one reel never overlap.
type Scheduler interface {
	After(delay time.Duration, fn func())
}
