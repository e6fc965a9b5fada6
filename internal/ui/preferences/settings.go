package preferences

import (
	"time"

	"fitslots/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Decay         float64
	SettleFloor   float64
	StepInterval  time.Duration
	ItemHeight    float64
	VisibleHeight float64
	SpeedRanges   []model.SpeedRange

	HistoryLimit int
	SpinDelay    time.Duration

	SoundEnabled bool
	SoundVolume  float64
	Autostart    bool
}

// DefaultSettings returns default settings for FitSlots.
func DefaultSettings() Settings {
	reel := model.DefaultReelConfig()
	return Settings{
		Decay:         reel.Decay,
		SettleFloor:   reel.SettleFloor,
		StepInterval:  reel.StepInterval,
		ItemHeight:    reel.ItemHeight,
		VisibleHeight: reel.VisibleHeight,
		SpeedRanges:   model.DefaultSpeedRanges(),
		HistoryLimit:  model.HistoryDisplayLimit,
		SpinDelay:     time.Second,
		SoundEnabled:  true,
		SoundVolume:   0.6,
		Autostart:     false,
	}
}

// ReelConfig converts settings to the reel configuration.
func (settings Settings) ReelConfig() model.ReelConfig {
	return model.ReelConfig{
		ItemHeight:    settings.ItemHeight,
		VisibleHeight: settings.VisibleHeight,
		Decay:         settings.Decay,
		SettleFloor:   settings.SettleFloor,
		StepInterval:  settings.StepInterval,
	}
}

// Clone returns a copy that does not share the speed range slice.
func (settings Settings) Clone() Settings {
	settings.SpeedRanges = append([]model.SpeedRange(nil), settings.SpeedRanges...)
	return settings
}
