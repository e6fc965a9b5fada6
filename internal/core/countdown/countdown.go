package countdown

import (
	"errors"
	"sync"
	"time"
)

// ErrZeroDuration indicates a countdown started without any time on it.
var ErrZeroDuration = errors.New("countdown duration must be positive")

// Config contains runtime options for Countdown.
type Config struct {
	TickInterval time.Duration
}

// Countdown is a one-shot workout reminder timer with pause support.
type Countdown struct {
	mu            sync.Mutex
	options       Config
	state         State
	previousState State
	total         time.Duration
	remaining     time.Duration
	events        []chan Event
	stopCh        chan struct{}
	looping       bool
	closed        bool
}

// New creates an idle Countdown.
func New(options Config) *Countdown {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Countdown{
		options:       options,
		state:         StateIdle,
		previousState: StateIdle,
		stopCh:        make(chan struct{}),
	}
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	countdown.mu.Lock()
	if countdown.closed {
		close(ch)
	} else {
		countdown.events = append(countdown.events, ch)
	}
	countdown.mu.Unlock()
	return ch
}

// Start arms the countdown, replacing any countdown already running.
func (countdown *Countdown) Start(duration time.Duration) error {
	if duration <= 0 {
		return ErrZeroDuration
	}

	countdown.mu.Lock()
	if countdown.closed {
		countdown.mu.Unlock()
		return errors.New("countdown closed")
	}
	countdown.total = duration
	countdown.remaining = duration
	countdown.state = StateRunning
	countdown.previousState = StateRunning
	startLoop := !countdown.looping
	countdown.looping = true
	countdown.emitLocked(countdown.eventLocked(EventStateChange, time.Now()))
	countdown.mu.Unlock()

	if startLoop {
		go countdown.run()
	}
	return nil
}

// Cancel disarms the countdown.
func (countdown *Countdown) Cancel() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state == StateIdle {
		return
	}
	countdown.state = StateIdle
	countdown.previousState = StateIdle
	countdown.remaining = 0
	countdown.emitLocked(countdown.eventLocked(EventStateChange, time.Now()))
}

// Pause freezes a running countdown.
func (countdown *Countdown) Pause() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state != StateRunning {
		return
	}
	countdown.previousState = countdown.state
	countdown.state = StatePaused
	countdown.emitLocked(countdown.eventLocked(EventStateChange, time.Now()))
}

// Resume unfreezes a paused countdown.
func (countdown *Countdown) Resume() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state != StatePaused {
		return
	}
	countdown.state = countdown.previousState
	countdown.emitLocked(countdown.eventLocked(EventStateChange, time.Now()))
}

// Close terminates the ticking loop and closes observers.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	if countdown.closed {
		countdown.mu.Unlock()
		return
	}
	countdown.closed = true
	close(countdown.stopCh)
	events := countdown.events
	countdown.events = nil
	countdown.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns the current mode.
func (countdown *Countdown) State() State {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.state
}

// Remaining returns the time left before the countdown fires.
func (countdown *Countdown) Remaining() time.Duration {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.remaining
}

func (countdown *Countdown) run() {
	ticker := time.NewTicker(countdown.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-countdown.stopCh:
			return
		case tickTime := <-ticker.C:
			countdown.tick(tickTime)
		}
	}
}

func (countdown *Countdown) tick(tickTime time.Time) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.closed || countdown.state != StateRunning {
		return
	}

	countdown.remaining -= countdown.options.TickInterval
	if countdown.remaining > 0 {
		countdown.emitLocked(countdown.eventLocked(EventProgress, tickTime))
		return
	}

	countdown.remaining = 0
	countdown.state = StateFired
	countdown.previousState = StateFired
	countdown.emitLocked(countdown.eventLocked(EventFired, tickTime))
}

func (countdown *Countdown) eventLocked(eventType EventType, at time.Time) Event {
	return Event{
		Type:      eventType,
		State:     countdown.state,
		Remaining: countdown.remaining,
		Total:     countdown.total,
		Progress:  countdown.progressLocked(),
		At:        at,
	}
}

func (countdown *Countdown) progressLocked() float64 {
	if countdown.total <= 0 {
		return 0
	}
	progress := float64(countdown.total-countdown.remaining) / float64(countdown.total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// emitLocked delivers without blocking; a full observer loses its oldest event.
func (countdown *Countdown) emitLocked(event Event) {
	for _, ch := range countdown.events {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}
