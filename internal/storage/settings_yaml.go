package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fitslots/internal/core/model"
	"fitslots/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSpeedRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type yamlSettings struct {
	Decay          float64          `yaml:"decay"`
	SettleFloor    float64          `yaml:"settle_floor"`
	StepIntervalMs int              `yaml:"step_interval_ms"`
	ItemHeight     float64          `yaml:"item_height"`
	VisibleHeight  float64          `yaml:"visible_height"`
	SpeedRanges    []yamlSpeedRange `yaml:"speed_ranges"`
	HistoryLimit   int              `yaml:"history_limit"`
	SpinDelayMs    int              `yaml:"spin_delay_ms"`
	SoundEnabled   *bool            `yaml:"sound_enabled"`
	SoundVolume    *float64         `yaml:"sound_volume"`
	Autostart      bool             `yaml:"autostart"`
}

// SettingsPath returns the settings file location inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the settings file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	soundEnabled := settings.SoundEnabled
	soundVolume := settings.SoundVolume
	fileData := yamlSettings{
		Decay:          settings.Decay,
		SettleFloor:    settings.SettleFloor,
		StepIntervalMs: int(settings.StepInterval / time.Millisecond),
		ItemHeight:     settings.ItemHeight,
		VisibleHeight:  settings.VisibleHeight,
		HistoryLimit:   settings.HistoryLimit,
		SpinDelayMs:    int(settings.SpinDelay / time.Millisecond),
		SoundEnabled:   &soundEnabled,
		SoundVolume:    &soundVolume,
		Autostart:      settings.Autostart,
	}
	for _, speedRange := range settings.SpeedRanges {
		fileData.SpeedRanges = append(fileData.SpeedRanges, yamlSpeedRange{Min: speedRange.Min, Max: speedRange.Max})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(path, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Decay > 0 && fileData.Decay < 1 {
		settings.Decay = fileData.Decay
	}
	if fileData.SettleFloor > 0 {
		settings.SettleFloor = fileData.SettleFloor
	}
	if fileData.StepIntervalMs > 0 {
		settings.StepInterval = time.Duration(fileData.StepIntervalMs) * time.Millisecond
	}
	if fileData.ItemHeight > 0 {
		settings.ItemHeight = fileData.ItemHeight
	}
	if fileData.VisibleHeight >= settings.ItemHeight {
		settings.VisibleHeight = fileData.VisibleHeight
	}
	if ranges, ok := convertRanges(fileData.SpeedRanges); ok {
		settings.SpeedRanges = ranges
	}
	if fileData.HistoryLimit > 0 {
		settings.HistoryLimit = fileData.HistoryLimit
	}
	if fileData.SpinDelayMs > 0 {
		settings.SpinDelay = time.Duration(fileData.SpinDelayMs) * time.Millisecond
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.SoundVolume != nil && *fileData.SoundVolume >= 0 && *fileData.SoundVolume <= 1 {
		settings.SoundVolume = *fileData.SoundVolume
	}

	settings.Autostart = fileData.Autostart
}

func convertRanges(ranges []yamlSpeedRange) ([]model.SpeedRange, bool) {
	if len(ranges) == 0 {
		return nil, false
	}
	converted := make([]model.SpeedRange, 0, len(ranges))
	for _, speedRange := range ranges {
		if speedRange.Min <= 0 || speedRange.Max < speedRange.Min {
			return nil, false
		}
		converted = append(converted, model.SpeedRange{Min: speedRange.Min, Max: speedRange.Max})
	}
	return converted, true
}
