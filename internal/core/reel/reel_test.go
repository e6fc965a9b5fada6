package reel

import (
	"errors"
	"math"
	"testing"
	"time"

	"fitslots/internal/core/model"

	"github.com/google/go-cmp/cmp"
)

func threeItems() []model.Item {
	return []model.Item{
		{Name: "A", Reps: "1"},
		{Name: "B", Reps: "2"},
		{Name: "C", Reps: "3"},
	}
}

func newTestReel(t *testing.T, items []model.Item) *Reel {
	t.Helper()
	reel, err := New("test", items, model.DefaultReelConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return reel
}

func runToRest(t *testing.T, reel *Reel) int {
	t.Helper()
	steps := 0
	for {
		steps++
		if steps > 10000 {
			t.Fatalf("reel did not settle after %d steps", steps)
		}
		if !reel.Step() {
			return steps
		}
	}
}

type queueScheduler struct {
	pending []func()
	delays  []time.Duration
}

func (scheduler *queueScheduler) After(delay time.Duration, fn func()) {
	scheduler.pending = append(scheduler.pending, fn)
	scheduler.delays = append(scheduler.delays, delay)
}

func (scheduler *queueScheduler) drain() int {
	calls := 0
	for len(scheduler.pending) > 0 {
		next := scheduler.pending[0]
		scheduler.pending = scheduler.pending[1:]
		next()
		calls++
	}
	return calls
}

func TestNewRejectsEmptyItems(t *testing.T) {
	_, err := New("empty", nil, model.DefaultReelConfig(), nil)
	if !errors.Is(err, ErrEmptyReel) {
		t.Fatalf("expected ErrEmptyReel, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ReelConfig)
	}{
		{"zero item height", func(config *model.ReelConfig) { config.ItemHeight = 0 }},
		{"negative visible height", func(config *model.ReelConfig) { config.VisibleHeight = -1 }},
		{"decay of one never stops", func(config *model.ReelConfig) { config.Decay = 1 }},
		{"zero floor", func(config *model.ReelConfig) { config.SettleFloor = 0 }},
		{"zero interval", func(config *model.ReelConfig) { config.StepInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := model.DefaultReelConfig()
			tt.mutate(&config)
			if _, err := New("bad", threeItems(), config, nil); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSpinTerminatesWithZeroSpeed(t *testing.T) {
	config := model.DefaultReelConfig()
	for _, speed := range []float64{0.6, 1, 7.5, 20, 33, 45, 120, 5000} {
		reel := newTestReel(t, threeItems())
		reel.Spin(speed)
		steps := runToRest(t, reel)

		if want := StepsToSettle(speed, config); steps != want {
			t.Errorf("speed %v: took %d steps, want %d", speed, steps, want)
		}
		state := reel.State()
		if state.Speed != 0 {
			t.Errorf("speed %v: final speed %v, want exactly 0", speed, state.Speed)
		}
		if state.Running || !state.Settled() {
			t.Errorf("speed %v: reel not settled: %+v", speed, state)
		}
	}
}

func TestRestingIndexAlwaysInRange(t *testing.T) {
	for n := 1; n <= 7; n++ {
		items := make([]model.Item, n)
		for i := range items {
			items[i] = model.Item{Name: string(rune('A' + i)), Reps: "x"}
		}
		for speed := 0.1; speed < 300; speed += 3.7 {
			reel := newTestReel(t, items)
			reel.Spin(speed)
			runToRest(t, reel)
			state := reel.State()
			if state.RestingIndex < 0 || state.RestingIndex >= n {
				t.Fatalf("n=%d speed=%v: resting index %d out of range", n, speed, state.RestingIndex)
			}
			if state.Offset < 0 || state.Offset >= reel.TotalHeight() {
				t.Fatalf("n=%d speed=%v: offset %v outside drum", n, speed, state.Offset)
			}
		}
	}
}

func TestSpinWhileRunningIsNoop(t *testing.T) {
	reel := newTestReel(t, threeItems())
	reference := newTestReel(t, threeItems())

	if !reel.Spin(30) || !reference.Spin(30) {
		t.Fatal("initial spin was rejected")
	}
	for i := 0; i < 10; i++ {
		reel.Step()
		reference.Step()
	}

	before := reel.State()
	if reel.Spin(44) {
		t.Fatal("Spin on a running reel reported a restart")
	}
	if diff := cmp.Diff(before, reel.State()); diff != "" {
		t.Fatalf("state changed by ignored Spin (-before +after):\n%s", diff)
	}

	for reference.Step() {
		reel.Step()
	}
	reel.Step()
	if diff := cmp.Diff(reference.State(), reel.State()); diff != "" {
		t.Fatalf("trajectory diverged (-reference +reel):\n%s", diff)
	}
}

func TestDeterministicScenario(t *testing.T) {
	run := func() State {
		reel := newTestReel(t, threeItems())
		reel.Spin(20)
		runToRest(t, reel)
		return reel.State()
	}

	first := run()
	want := State{Offset: 100, Speed: 0, RestingIndex: 0}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("unexpected rest state (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, run()); diff != "" {
		t.Fatalf("second run differs (-first +second):\n%s", diff)
	}
}

func TestSnapCentresRestingRow(t *testing.T) {
	config := model.DefaultReelConfig()
	reel := newTestReel(t, threeItems())
	reel.Spin(45)
	runToRest(t, reel)

	state := reel.State()
	centre := state.Offset + config.VisibleHeight/2
	row := (centre - config.ItemHeight/2) / config.ItemHeight
	if row != math.Trunc(row) {
		t.Fatalf("viewport centre %v is not the middle of a row", centre)
	}
	if int(row)%reel.Len() != state.RestingIndex {
		t.Fatalf("centred row %v does not match resting index %d", row, state.RestingIndex)
	}
}

func TestSnapKeepsRowUnderFrame(t *testing.T) {
	config := model.DefaultReelConfig()
	for _, speed := range []float64{0.6, 1, 2.5, 7.5, 20, 27.3, 33, 45} {
		reel := newTestReel(t, threeItems())
		reel.Spin(speed)

		before := reel.State()
		for reel.Step() {
			before = reel.State()
		}
		after := reel.State()

		if shift := math.Abs(after.Offset - before.Offset); shift > config.ItemHeight/2 {
			t.Errorf("speed %v: snap moved %v from %v, more than half a row", speed, shift, before.Offset)
		}
		framed := int(math.Floor((before.Offset + config.VisibleHeight/2) / config.ItemHeight))
		if framed%reel.Len() != after.RestingIndex {
			t.Errorf("speed %v: row %d was under the frame, rested on %d", speed, framed%reel.Len(), after.RestingIndex)
		}
	}
}

func TestWrapSubtractsOneLoop(t *testing.T) {
	reel := newTestReel(t, threeItems())
	loop := reel.LoopHeight()
	reel.Spin(45)

	wrapped := 0
	for {
		before := reel.State()
		if !reel.Step() {
			break
		}
		want := before.Offset + before.Speed
		if want >= loop {
			want -= loop
			wrapped++
		}
		if got := reel.State().Offset; got != want {
			t.Fatalf("offset %v after step from %v at speed %v, want %v", got, before.Offset, before.Speed, want)
		}
	}
	if wrapped == 0 {
		t.Fatal("spin never wrapped")
	}
}

func TestFastSpinStaysInsideLoop(t *testing.T) {
	config := model.DefaultReelConfig()
	config.ItemHeight = 5
	reel, err := New("fast", threeItems(), config, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reel.Spin(300)
	for reel.Step() {
		if offset := reel.State().Offset; offset < 0 || offset >= reel.LoopHeight() {
			t.Fatalf("offset %v outside [0, %v)", offset, reel.LoopHeight())
		}
	}
}

func TestSingleItemAlwaysRestsOnZero(t *testing.T) {
	reel := newTestReel(t, []model.Item{{Name: "Solo", Reps: "1"}})
	for speed := 0.2; speed < 90; speed += 1.3 {
		reel.Spin(speed)
		runToRest(t, reel)
		if got := reel.State().RestingIndex; got != 0 {
			t.Fatalf("speed %v: resting index %d, want 0", speed, got)
		}
	}
}

func TestSlowSpinSettlesOnFirstStep(t *testing.T) {
	for _, speed := range []float64{0.5, 0.1, 0, -4, math.NaN(), math.Inf(1)} {
		reel := newTestReel(t, threeItems())
		reel.Spin(speed)
		if reel.Step() {
			t.Errorf("speed %v: expected terminal first step", speed)
		}
		state := reel.State()
		if state.RestingIndex != 1 || state.Offset != 0 {
			t.Errorf("speed %v: rest at row %d offset %v, want row 1 offset 0", speed, state.RestingIndex, state.Offset)
		}
	}
}

func TestStepWhenIdleDoesNothing(t *testing.T) {
	reel := newTestReel(t, threeItems())
	if reel.Step() {
		t.Fatal("idle reel asked for another step")
	}
	if reel.State().Settled() {
		t.Fatal("idle reel reports settled before any spin")
	}
}

func TestHighlightMarksEveryCopy(t *testing.T) {
	reel := newTestReel(t, threeItems())
	reel.Highlight()
	if rows := reel.HighlightedRows(); rows != nil {
		t.Fatalf("highlight before settling marked %v", rows)
	}

	reel.Spin(20)
	runToRest(t, reel)
	reel.Highlight()
	if diff := cmp.Diff([]int{0, 3, 6}, reel.HighlightedRows()); diff != "" {
		t.Fatalf("highlighted rows (-want +got):\n%s", diff)
	}

	reel.Spin(20)
	if rows := reel.HighlightedRows(); rows != nil {
		t.Fatalf("new spin kept highlight %v", rows)
	}
}

func TestEventsReachSubscribers(t *testing.T) {
	reel := newTestReel(t, threeItems())
	var frames, settled int
	var last Event
	reel.Subscribe(func(event Event) {
		switch event.Type {
		case EventFrame:
			frames++
		case EventSettled:
			settled++
			last = event
		}
	})

	reel.Spin(20)
	steps := runToRest(t, reel)

	if frames != steps-1 {
		t.Errorf("got %d frame events, want %d", frames, steps-1)
	}
	if settled != 1 {
		t.Errorf("got %d settle events, want 1", settled)
	}
	if last.Reel != "test" || last.RestingIndex != 0 || last.Speed != 0 {
		t.Errorf("unexpected settle event %+v", last)
	}
}

func TestSchedulerDrivesReelToRest(t *testing.T) {
	scheduler := &queueScheduler{}
	reel, err := New("scheduled", threeItems(), model.DefaultReelConfig(), scheduler)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	reel.Spin(20)
	calls := scheduler.drain()

	if want := StepsToSettle(20, reel.Config()); calls != want {
		t.Fatalf("scheduler ran %d steps, want %d", calls, want)
	}
	if scheduler.delays[0] != 0 {
		t.Errorf("first step delayed by %v", scheduler.delays[0])
	}
	for _, delay := range scheduler.delays[1:] {
		if delay != reel.Config().StepInterval {
			t.Fatalf("step scheduled with delay %v, want %v", delay, reel.Config().StepInterval)
		}
	}
	if !reel.State().Settled() {
		t.Fatal("reel not settled after draining scheduler")
	}
}

func TestStepsToSettle(t *testing.T) {
	config := model.DefaultReelConfig()
	tests := []struct {
		speed float64
		want  int
	}{
		{speed: 0.3, want: 1},
		{speed: 20, want: 73},
		{speed: 33, want: 83},
		{speed: 45, want: 89},
	}
	for _, tt := range tests {
		if got := StepsToSettle(tt.speed, config); got != tt.want {
			t.Errorf("StepsToSettle(%v) = %d, want %d", tt.speed, got, tt.want)
		}
	}
}
