package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fitslots/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	decay        *widget.Entry
	settleFloor  *widget.Entry
	stepInterval *widget.Entry
	ranges       []*rangeEntries
	historyLimit *widget.Entry
	spinDelay    *widget.Entry
	sound        *widget.Check
	volume       *widget.Slider
	autostart    *widget.Check
}

type rangeEntries struct {
	min *widget.Entry
	max *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Настройки")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		decay:        widget.NewEntry(),
		settleFloor:  widget.NewEntry(),
		stepInterval: widget.NewEntry(),
		historyLimit: widget.NewEntry(),
		spinDelay:    widget.NewEntry(),
		sound:        widget.NewCheck("Звуки", nil),
		volume:       widget.NewSlider(0, 1),
		autostart:    widget.NewCheck("Запускать при входе в систему", nil),
	}
	prefs.volume.Step = 0.05

	rangeRows := make([]fyne.CanvasObject, 0, len(settings.SpeedRanges))
	for i := range settings.SpeedRanges {
		entries := &rangeEntries{min: widget.NewEntry(), max: widget.NewEntry()}
		prefs.ranges = append(prefs.ranges, entries)
		rangeRows = append(rangeRows, container.NewHBox(
			widget.NewLabel(fmt.Sprintf("Барабан %d", i+1)), entries.min, widget.NewLabel("–"), entries.max,
		))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Барабаны", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Замедление"), prefs.decay),
		container.NewHBox(widget.NewLabel("Порог остановки"), prefs.settleFloor),
		container.NewHBox(widget.NewLabel("Шаг анимации"), prefs.stepInterval, widget.NewLabel("мс")),
		widget.NewLabel("Начальная скорость"),
		container.NewVBox(rangeRows...),
		widget.NewLabelWithStyle("Общие", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Записей в истории"), prefs.historyLimit),
		container.NewHBox(widget.NewLabel("Пауза перед вращением"), prefs.spinDelay, widget.NewLabel("мс")),
		prefs.sound,
		widget.NewLabel("Громкость"),
		prefs.volume,
		prefs.autostart,
	)

	saveButton := widget.NewButton("Сохранить", prefs.handleSave)
	cancelButton := widget.NewButton("Отмена", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings.Clone()
	prefs.decay.SetText(formatFloat(settings.Decay))
	prefs.settleFloor.SetText(formatFloat(settings.SettleFloor))
	prefs.stepInterval.SetText(strconv.FormatInt(settings.StepInterval.Milliseconds(), 10))
	for i, entries := range prefs.ranges {
		if i >= len(settings.SpeedRanges) {
			break
		}
		entries.min.SetText(formatFloat(settings.SpeedRanges[i].Min))
		entries.max.SetText(formatFloat(settings.SpeedRanges[i].Max))
	}
	prefs.historyLimit.SetText(strconv.Itoa(settings.HistoryLimit))
	prefs.spinDelay.SetText(strconv.FormatInt(settings.SpinDelay.Milliseconds(), 10))
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.Value = settings.SoundVolume
	prefs.volume.Refresh()
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// collect reads the form. Unparsable or out-of-range fields keep their
// previous values.
func (prefs *Window) collect() Settings {
	settings := prefs.settings.Clone()

	if decay, ok := parseFloat(prefs.decay.Text); ok && decay > 0 && decay < 1 {
		settings.Decay = decay
	}
	if floor, ok := parseFloat(prefs.settleFloor.Text); ok && floor > 0 {
		settings.SettleFloor = floor
	}
	if millis, ok := parsePositiveInt(prefs.stepInterval.Text); ok {
		settings.StepInterval = time.Duration(millis) * time.Millisecond
	}
	for i, entries := range prefs.ranges {
		if i >= len(settings.SpeedRanges) {
			break
		}
		low, okLow := parseFloat(entries.min.Text)
		high, okHigh := parseFloat(entries.max.Text)
		if okLow && okHigh && low > 0 && high >= low {
			settings.SpeedRanges[i] = model.SpeedRange{Min: low, Max: high}
		}
	}
	if limit, ok := parsePositiveInt(prefs.historyLimit.Text); ok {
		settings.HistoryLimit = limit
	}
	if millis, err := strconv.Atoi(strings.TrimSpace(prefs.spinDelay.Text)); err == nil && millis >= 0 {
		settings.SpinDelay = time.Duration(millis) * time.Millisecond
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.SoundVolume = prefs.volume.Value
	settings.Autostart = prefs.autostart.Checked
	return settings
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func parseFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(value), ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
