package reel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"fitslots/internal/core/model"
)

// copies is the number of times the item list is repeated on the drum.
const copies = 3

var (
	// ErrEmptyReel indicates a reel built over zero items.
	ErrEmptyReel = errors.New("reel needs at least one item")
	// ErrInvalidConfig indicates unusable geometry or deceleration values.
	ErrInvalidConfig = errors.New("invalid reel config")
)

// State is a point-in-time view of a reel.
type State struct {
	Offset       float64
	Speed        float64
	Running      bool
	RestingIndex int
	Highlighted  bool
}

// Settled reports whether the reel has come to rest at least once and is
// not spinning now.
func (state State) Settled() bool {
	return !state.Running && state.RestingIndex >= 0
}

// Reel is a decelerating selector over one category's items.
type Reel struct {
	mu           sync.Mutex
	name         string
	items        []model.Item
	config       model.ReelConfig
	scheduler    Scheduler
	offset       float64
	speed        float64
	running      bool
	restingIndex int
	highlighted  bool
	handlers     []Handler
}

// New creates a reel. A nil scheduler leaves stepping to the caller.
func New(name string, items []model.Item, config model.ReelConfig, scheduler Scheduler) (*Reel, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("new reel %q: %w", name, ErrEmptyReel)
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("new reel %q: %w", name, err)
	}
	return &Reel{
		name:         name,
		items:        append([]model.Item(nil), items...),
		config:       config,
		scheduler:    scheduler,
		restingIndex: -1,
	}, nil
}

func validateConfig(config model.ReelConfig) error {
	switch {
	case !(config.ItemHeight > 0):
		return fmt.Errorf("%w: item height %v", ErrInvalidConfig, config.ItemHeight)
	case !(config.VisibleHeight > 0):
		return fmt.Errorf("%w: visible height %v", ErrInvalidConfig, config.VisibleHeight)
	case !(config.Decay > 0 && config.Decay < 1):
		return fmt.Errorf("%w: decay %v", ErrInvalidConfig, config.Decay)
	case !(config.SettleFloor > 0):
		return fmt.Errorf("%w: settle floor %v", ErrInvalidConfig, config.SettleFloor)
	case config.StepInterval <= 0:
		return fmt.Errorf("%w: step interval %v", ErrInvalidConfig, config.StepInterval)
	}
	return nil
}

// Name returns the category name of the reel.
func (reel *Reel) Name() string {
	return reel.name
}

// Len returns the number of distinct items.
func (reel *Reel) Len() int {
	return len(reel.items)
}

// Item returns the item at index within one copy of the list.
func (reel *Reel) Item(index int) model.Item {
	return reel.items[positiveMod(index, len(reel.items))]
}

// DisplayItems returns the repeated item list as drawn on the drum.
func (reel *Reel) DisplayItems() []model.Item {
	display := make([]model.Item, 0, copies*len(reel.items))
	for i := 0; i < copies; i++ {
		display = append(display, reel.items...)
	}
	return display
}

// Config returns the reel configuration.
func (reel *Reel) Config() model.ReelConfig {
	return reel.config
}

// LoopHeight is the height of one copy of the item list.
func (reel *Reel) LoopHeight() float64 {
	return float64(len(reel.items)) * reel.config.ItemHeight
}

// TotalHeight is the height of the repeated list.
func (reel *Reel) TotalHeight() float64 {
	return copies * reel.LoopHeight()
}

// Subscribe registers an event handler.
func (reel *Reel) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	reel.mu.Lock()
	reel.handlers = append(reel.handlers, handler)
	reel.mu.Unlock()
}

// State returns the current reel state.
func (reel *Reel) State() State {
	reel.mu.Lock()
	defer reel.mu.Unlock()
	return State{
		Offset:       reel.offset,
		Speed:        reel.speed,
		Running:      reel.running,
		RestingIndex: reel.restingIndex,
		Highlighted:  reel.highlighted,
	}
}

// Spin starts the reel with the given speed. It returns false and changes
// nothing when the reel is already running.
func (reel *Reel) Spin(initialSpeed float64) bool {
	reel.mu.Lock()
	if reel.running {
		reel.mu.Unlock()
		return false
	}
	if math.IsNaN(initialSpeed) || math.IsInf(initialSpeed, 0) || initialSpeed < 0 {
		initialSpeed = 0
	}
	reel.speed = initialSpeed
	reel.running = true
	reel.restingIndex = -1
	reel.highlighted = false
	event := reel.eventLocked(EventHighlight)
	handlers := reel.handlersLocked()
	reel.mu.Unlock()

	dispatch(handlers, event)
	if reel.scheduler != nil {
		reel.scheduler.After(0, reel.run)
	}
	return true
}

// Step advances the animation by one frame. It returns true while the reel
// still needs further steps.
func (reel *Reel) Step() bool {
	reel.mu.Lock()
	if !reel.running {
		reel.mu.Unlock()
		return false
	}

	if reel.speed <= reel.config.SettleFloor {
		reel.speed = 0
		reel.running = false
		reel.snapLocked()
		event := reel.eventLocked(EventSettled)
		handlers := reel.handlersLocked()
		reel.mu.Unlock()
		dispatch(handlers, event)
		return false
	}

	reel.offset += reel.speed
	for loop := reel.LoopHeight(); reel.offset >= loop; {
		reel.offset -= loop
	}
	reel.speed *= reel.config.Decay
	event := reel.eventLocked(EventFrame)
	handlers := reel.handlersLocked()
	reel.mu.Unlock()

	dispatch(handlers, event)
	return true
}

// Highlight marks the resting item and its repeated copies as selected.
func (reel *Reel) Highlight() {
	reel.mu.Lock()
	if reel.restingIndex < 0 {
		reel.mu.Unlock()
		return
	}
	reel.highlighted = true
	event := reel.eventLocked(EventHighlight)
	handlers := reel.handlersLocked()
	reel.mu.Unlock()

	dispatch(handlers, event)
}

// HighlightedRows returns the display rows currently marked as selected.
func (reel *Reel) HighlightedRows() []int {
	reel.mu.Lock()
	defer reel.mu.Unlock()
	return reel.highlightedRowsLocked()
}

func (reel *Reel) run() {
	if reel.Step() {
		reel.scheduler.After(reel.config.StepInterval, reel.run)
	}
}

// snapLocked centres the row whose middle is nearest to the viewport centre.
// The offset moves by at most half a row.
func (reel *Reel) snapLocked() {
	height := reel.config.ItemHeight
	half := reel.config.VisibleHeight / 2
	index := int(math.RoundToEven((reel.offset + half - height/2) / height))
	reel.offset = float64(index)*height + height/2 - half
	reel.restingIndex = positiveMod(index, len(reel.items))
}

func (reel *Reel) highlightedRowsLocked() []int {
	if !reel.highlighted || reel.restingIndex < 0 {
		return nil
	}
	rows := make([]int, 0, copies)
	for i := 0; i < copies; i++ {
		rows = append(rows, reel.restingIndex+i*len(reel.items))
	}
	return rows
}

func (reel *Reel) eventLocked(eventType EventType) Event {
	return Event{
		Type:         eventType,
		Reel:         reel.name,
		Offset:       reel.offset,
		Speed:        reel.speed,
		RestingIndex: reel.restingIndex,
		Highlighted:  reel.highlightedRowsLocked(),
	}
}

func (reel *Reel) handlersLocked() []Handler {
	return append([]Handler(nil), reel.handlers...)
}

func dispatch(handlers []Handler, event Event) {
	for _, handler := range handlers {
		handler(event)
	}
}

// StepsToSettle returns how many Step calls a reel spun at initialSpeed
// needs before it stops, the terminal step included.
func StepsToSettle(initialSpeed float64, config model.ReelConfig) int {
	if !(initialSpeed > config.SettleFloor) {
		return 1
	}
	moving := math.Ceil(math.Log(config.SettleFloor/initialSpeed) / math.Log(config.Decay))
	return int(moving) + 1
}

func positiveMod(value, modulus int) int {
	result := value % modulus
	if result < 0 {
		result += modulus
	}
	return result
}
