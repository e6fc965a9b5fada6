package model

import "time"

// ReelConfig defines the geometry and deceleration of a reel.
type ReelConfig struct {
	ItemHeight    float64
	VisibleHeight float64
	// Decay is the multiplicative speed factor applied after each step.
	Decay float64
	// SettleFloor is the speed at or below which the reel stops.
	SettleFloor  float64
	StepInterval time.Duration
}

// DefaultReelConfig returns the classic slot-drum tuning.
func DefaultReelConfig() ReelConfig {
	return ReelConfig{
		ItemHeight:    50,
		VisibleHeight: 150,
		Decay:         0.95,
		SettleFloor:   0.5,
		StepInterval:  20 * time.Millisecond,
	}
}

// SpeedRange is an inclusive range of initial reel speeds.
type SpeedRange struct {
	Min float64
	Max float64
}

// DefaultSpeedRanges returns one range per default category, staggered so
// reels settle at different times.
func DefaultSpeedRanges() []SpeedRange {
	return []SpeedRange{
		{Min: 20, Max: 35},
		{Min: 25, Max: 40},
		{Min: 30, Max: 45},
	}
}
