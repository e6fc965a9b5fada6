package animation

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs delayed reel steps on timer goroutines until stopped.
type Scheduler struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

// NewScheduler creates a scheduler bound to parent.
func NewScheduler(parent context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// After runs fn once delay has passed, unless the scheduler stops first.
func (scheduler *Scheduler) After(delay time.Duration, fn func()) {
	scheduler.mu.Lock()
	ctx := scheduler.ctx
	if ctx.Err() != nil {
		scheduler.mu.Unlock()
		return
	}
	scheduler.pending.Add(1)
	scheduler.mu.Unlock()

	go func() {
		defer scheduler.pending.Done()
		if !sleepWithContext(ctx, delay) {
			return
		}
		fn()
	}()
}

// Stop cancels every pending step. Steps already running finish normally.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.cancel()
}

// Wait blocks until no step is pending or running.
func (scheduler *Scheduler) Wait() {
	scheduler.pending.Wait()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
