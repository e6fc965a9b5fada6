package animation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"fitslots/internal/core/model"
	"fitslots/internal/core/reel"
)

func TestSchedulerRunsReelToRest(t *testing.T) {
	scheduler := NewScheduler(context.Background())
	defer scheduler.Stop()

	config := model.DefaultReelConfig()
	config.StepInterval = time.Millisecond
	current, err := reel.New("drum", []model.Item{{Name: "A", Reps: "1"}, {Name: "B", Reps: "2"}}, config, scheduler)
	if err != nil {
		t.Fatalf("reel.New: %v", err)
	}

	settled := make(chan reel.Event, 1)
	current.Subscribe(func(event reel.Event) {
		if event.Type == reel.EventSettled {
			settled <- event
		}
	})
	current.Spin(25)

	select {
	case event := <-settled:
		if event.Speed != 0 || event.RestingIndex < 0 || event.RestingIndex >= 2 {
			t.Fatalf("unexpected settle event %+v", event)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("reel did not settle")
	}
	scheduler.Wait()
}

func TestStopCancelsPendingSteps(t *testing.T) {
	scheduler := NewScheduler(context.Background())
	var calls atomic.Int32
	scheduler.After(time.Hour, func() { calls.Add(1) })
	scheduler.Stop()
	scheduler.Wait()

	scheduler.After(0, func() { calls.Add(1) })
	scheduler.Wait()
	if got := calls.Load(); got != 0 {
		t.Fatalf("stopped scheduler ran %d callbacks", got)
	}
}

func TestSleepWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if !sleepWithContext(ctx, 0) {
		t.Fatal("zero sleep on live context reported cancellation")
	}
	cancel()
	if sleepWithContext(ctx, time.Hour) {
		t.Fatal("sleep on cancelled context reported completion")
	}
}
