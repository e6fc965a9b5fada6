package spin

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"fitslots/internal/core/model"
	"fitslots/internal/core/reel"
)

var (
	// ErrNoReels indicates a coordinator without reels.
	ErrNoReels = errors.New("coordinator needs at least one reel")
	// ErrInvalidRange indicates a speed range that cannot start a reel.
	ErrInvalidRange = errors.New("invalid speed range")
	// ErrSpinInProgress indicates StartSpin was called before the previous spin resolved.
	ErrSpinInProgress = errors.New("spin in progress")
	// ErrSettleOverflow indicates more settle notifications than reels within one spin.
	ErrSettleOverflow = errors.New("settle notification overflow")
)

// Outcome is the combined result of one spin.
type Outcome struct {
	Ready   bool
	Indices []int
	Items   []model.Item
}

// Coordinator waits for every reel to settle and exposes the combined result.
type Coordinator struct {
	mu         sync.Mutex
	reels      []*reel.Reel
	ranges     []model.SpeedRange
	rng        *rand.Rand
	settled    int
	inProgress bool
	outcome    Outcome
	handlers   []func(Outcome)
}

// NewCoordinator subscribes to the settle events of every reel.
// Reel i draws its initial speed from ranges[i % len(ranges)].
func NewCoordinator(reels []*reel.Reel, ranges []model.SpeedRange, rng *rand.Rand) (*Coordinator, error) {
	if len(reels) == 0 {
		return nil, ErrNoReels
	}
	if len(ranges) == 0 {
		ranges = model.DefaultSpeedRanges()
	}
	for i, speedRange := range ranges {
		if !(speedRange.Min > 0) || speedRange.Max < speedRange.Min {
			return nil, fmt.Errorf("%w: range %d is [%v, %v]", ErrInvalidRange, i, speedRange.Min, speedRange.Max)
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	coordinator := &Coordinator{
		reels:  append([]*reel.Reel(nil), reels...),
		ranges: append([]model.SpeedRange(nil), ranges...),
		rng:    rng,
	}
	for _, current := range coordinator.reels {
		current.Subscribe(coordinator.handleReelEvent)
	}
	return coordinator, nil
}

// Reels returns the coordinated reels in order.
func (coordinator *Coordinator) Reels() []*reel.Reel {
	return append([]*reel.Reel(nil), coordinator.reels...)
}

// OnReady registers a handler fired once per resolved spin.
func (coordinator *Coordinator) OnReady(handler func(Outcome)) {
	if handler == nil {
		return
	}
	coordinator.mu.Lock()
	coordinator.handlers = append(coordinator.handlers, handler)
	coordinator.mu.Unlock()
}

// StartSpin resets the settle count and spins every reel with an
// independently drawn speed. The drawn speeds are returned in reel order.
//
// A call made before the current spin resolves returns ErrSpinInProgress
// and leaves the running spin alone. Resetting the count mid-spin instead
// would let reels from the old spin satisfy the new one, or leave the new
// spin waiting for reels that Reel.Spin refused to restart, so the outcome
// would never fire.
func (coordinator *Coordinator) StartSpin() ([]float64, error) {
	coordinator.mu.Lock()
	if coordinator.inProgress {
		coordinator.mu.Unlock()
		return nil, ErrSpinInProgress
	}
	coordinator.settled = 0
	coordinator.inProgress = true
	coordinator.outcome = Outcome{}
	speeds := make([]float64, len(coordinator.reels))
	for i := range coordinator.reels {
		speedRange := coordinator.ranges[i%len(coordinator.ranges)]
		speeds[i] = speedRange.Min + coordinator.rng.Float64()*(speedRange.Max-speedRange.Min)
	}
	coordinator.mu.Unlock()

	for i, current := range coordinator.reels {
		current.Spin(speeds[i])
	}
	return speeds, nil
}

// InProgress reports whether a spin was started and has not resolved yet.
func (coordinator *Coordinator) InProgress() bool {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return coordinator.inProgress
}

// Settled returns how many reels have settled in the current spin.
func (coordinator *Coordinator) Settled() int {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return coordinator.settled
}

// Outcome returns the result of the last spin.
func (coordinator *Coordinator) Outcome() Outcome {
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	return Outcome{
		Ready:   coordinator.outcome.Ready,
		Indices: append([]int(nil), coordinator.outcome.Indices...),
		Items:   append([]model.Item(nil), coordinator.outcome.Items...),
	}
}

func (coordinator *Coordinator) handleReelEvent(event reel.Event) {
	if event.Type != reel.EventSettled {
		return
	}
	if err := coordinator.reelSettled(); err != nil {
		panic(err)
	}
}

func (coordinator *Coordinator) reelSettled() error {
	coordinator.mu.Lock()
	coordinator.settled++
	total := len(coordinator.reels)
	if coordinator.settled > total {
		settled := coordinator.settled
		coordinator.mu.Unlock()
		return fmt.Errorf("%w: %d notifications for %d reels", ErrSettleOverflow, settled, total)
	}
	if coordinator.settled < total {
		coordinator.mu.Unlock()
		return nil
	}
	coordinator.mu.Unlock()

	outcome := Outcome{
		Ready:   true,
		Indices: make([]int, 0, total),
		Items:   make([]model.Item, 0, total),
	}
	for _, current := range coordinator.reels {
		current.Highlight()
		index := current.State().RestingIndex
		outcome.Indices = append(outcome.Indices, index)
		outcome.Items = append(outcome.Items, current.Item(index))
	}

	coordinator.mu.Lock()
	coordinator.inProgress = false
	coordinator.outcome = outcome
	handlers := append(([]func(Outcome))(nil), coordinator.handlers...)
	coordinator.mu.Unlock()

	for _, handler := range handlers {
		handler(outcome)
	}
	return nil
}
