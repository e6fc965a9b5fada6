package mainwindow

import (
	"fitslots/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type timerPanel struct {
	fields  countdown.Fields
	entries map[countdown.Unit]*widget.Entry
	object  fyne.CanvasObject
}

func newTimerPanel(onStart func(countdown.Fields)) *timerPanel {
	panel := &timerPanel{
		fields:  countdown.Fields{Minutes: 30},
		entries: make(map[countdown.Unit]*widget.Entry, len(countdown.Units)),
	}

	columns := make([]fyne.CanvasObject, 0, len(countdown.Units))
	for _, unit := range countdown.Units {
		unit := unit
		entry := widget.NewEntry()
		entry.SetText(countdown.Format(panel.fields.Get(unit)))
		entry.OnChanged = func(text string) {
			panel.fields.Set(unit, countdown.ParseField(text))
		}
		entry.OnSubmitted = func(string) {
			entry.SetText(countdown.Format(panel.fields.Get(unit)))
		}
		panel.entries[unit] = entry

		up := widget.NewButton("▲", func() { panel.step(unit, 1) })
		down := widget.NewButton("▼", func() { panel.step(unit, -1) })
		columns = append(columns, container.NewVBox(up, entry, down))
	}

	start := widget.NewButton("ЗАПУСТИТЬ ТАЙМЕР", func() {
		panel.normalize()
		onStart(panel.fields)
	})

	panel.object = container.NewVBox(
		widget.NewLabelWithStyle("Следующая тренировка через", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewCenter(container.NewGridWithColumns(len(columns), columns...)),
		start,
	)
	return panel
}

func (panel *timerPanel) step(unit countdown.Unit, delta int) {
	panel.fields.Step(unit, delta)
	panel.entries[unit].SetText(countdown.Format(panel.fields.Get(unit)))
}

func (panel *timerPanel) normalize() {
	for unit, entry := range panel.entries {
		entry.SetText(countdown.Format(panel.fields.Get(unit)))
	}
}
