package mainwindow

import (
	"image/color"

	"fitslots/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const sidebarWidth = float32(260)

var (
	completedColor = color.NRGBA{R: 40, G: 167, B: 69, A: 255}
	skippedColor   = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	cardText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type historyPanel struct {
	list   *fyne.Container
	object fyne.CanvasObject
}

func newHistoryPanel() *historyPanel {
	list := container.NewVBox()
	scroll := container.NewVScroll(list)
	scroll.SetMinSize(fyne.NewSize(sidebarWidth, 0))

	header := widget.NewLabelWithStyle("ИСТОРИЯ", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return &historyPanel{
		list:   list,
		object: container.NewBorder(header, nil, nil, nil, scroll),
	}
}

func (panel *historyPanel) set(entries []model.HistoryEntry) {
	cards := make([]fyne.CanvasObject, 0, len(entries))
	for _, entry := range entries {
		cards = append(cards, historyCard(entry))
	}
	panel.list.Objects = cards
	panel.list.Refresh()
}

func historyCard(entry model.HistoryEntry) fyne.CanvasObject {
	fill := skippedColor
	if entry.Completed() {
		fill = completedColor
	}
	background := canvas.NewRectangle(fill)
	background.CornerRadius = 6

	heading := canvas.NewText(entry.Time+"  "+string(entry.Status), cardText)
	heading.TextStyle = fyne.TextStyle{Bold: true}

	lines := []fyne.CanvasObject{heading}
	for _, exercise := range entry.Exercises {
		line := canvas.NewText("• "+exercise, cardText)
		line.TextSize = 11
		lines = append(lines, line)
	}
	return container.NewStack(background, container.NewPadded(container.NewVBox(lines...)))
}
