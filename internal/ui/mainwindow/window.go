package mainwindow

import (
	"errors"
	"image/color"

	"fitslots/internal/core/countdown"
	"fitslots/internal/core/model"
	"fitslots/internal/core/reel"
	"fitslots/internal/core/spin"
	"fitslots/internal/logger"
	"fitslots/internal/ui/drum"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Title is the main window caption.
const Title = "ФИТНЕС-РУЛЕТКА"

var titleColor = color.NRGBA{R: 0, G: 255, B: 153, A: 255}

// Actions are the user operations the window triggers.
type Actions interface {
	Spin() error
	Confirm(status model.Status) error
	StartTimer(fields countdown.Fields) error
}

// Window is the application's main window.
type Window struct {
	window      fyne.Window
	actions     Actions
	drums       []*drum.Drum
	drumRow     *fyne.Container
	spinButton  *widget.Button
	resultRow   *fyne.Container
	timer       *timerPanel
	statusLabel *widget.Label
	history     *historyPanel
	sidebar     *fyne.Container
	toggle      *widget.Button
	onEditor    func()
}

// New creates the main window. onEditor opens the exercise editor.
func New(app fyne.App, actions Actions, onEditor func()) *Window {
	window := app.NewWindow(Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	mainWindow := &Window{
		window:   window,
		actions:  actions,
		drumRow:  container.NewHBox(),
		history:  newHistoryPanel(),
		onEditor: onEditor,
	}

	title := canvas.NewText(Title, titleColor)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 24
	title.Alignment = fyne.TextAlignCenter

	mainWindow.toggle = widget.NewButton("☰", mainWindow.toggleHistory)
	header := container.NewBorder(nil, nil, nil, mainWindow.toggle, title)

	mainWindow.spinButton = widget.NewButton("КРУТИТЬ!", mainWindow.handleSpin)
	mainWindow.spinButton.Importance = widget.HighImportance

	completed := widget.NewButton("ВЫПОЛНИЛ", func() { mainWindow.handleConfirm(model.StatusCompleted) })
	completed.Importance = widget.SuccessImportance
	skipped := widget.NewButton("ПРОПУСТИЛ", func() { mainWindow.handleConfirm(model.StatusSkipped) })
	skipped.Importance = widget.DangerImportance
	mainWindow.resultRow = container.NewGridWithColumns(2, completed, skipped)
	mainWindow.resultRow.Hide()

	mainWindow.timer = newTimerPanel(mainWindow.handleStartTimer)
	mainWindow.statusLabel = widget.NewLabel("")
	mainWindow.statusLabel.Alignment = fyne.TextAlignCenter

	editorButton := widget.NewButton("УПРАЖНЕНИЯ", func() {
		if mainWindow.onEditor != nil {
			mainWindow.onEditor()
		}
	})

	body := container.NewVBox(
		header,
		container.NewCenter(mainWindow.drumRow),
		mainWindow.spinButton,
		mainWindow.resultRow,
		widget.NewSeparator(),
		mainWindow.timer.object,
		mainWindow.statusLabel,
		layout.NewSpacer(),
		editorButton,
	)

	mainWindow.sidebar = container.NewStack(mainWindow.history.object)
	mainWindow.sidebar.Hide()
	window.SetContent(container.NewBorder(nil, nil, nil, mainWindow.sidebar, container.NewPadded(body)))
	window.Resize(fyne.NewSize(640, 560))
	window.SetCloseIntercept(window.Hide)
	return mainWindow
}

// Window returns the underlying fyne window.
func (mainWindow *Window) Window() fyne.Window {
	return mainWindow.window
}

// SetReels replaces the drums with views of the given reels.
func (mainWindow *Window) SetReels(reels []*reel.Reel) {
	fyne.Do(func() {
		mainWindow.drums = mainWindow.drums[:0]
		objects := make([]fyne.CanvasObject, 0, len(reels))
		for _, current := range reels {
			view := drum.New(current)
			mainWindow.drums = append(mainWindow.drums, view)
			objects = append(objects, view.CanvasObject())
		}
		mainWindow.drumRow.Objects = objects
		mainWindow.drumRow.Refresh()
	})
}

// SetSpinning toggles the spin button while the reels run.
func (mainWindow *Window) SetSpinning(spinning bool) {
	fyne.Do(func() {
		if spinning {
			mainWindow.spinButton.Disable()
		} else {
			mainWindow.spinButton.Enable()
		}
	})
}

// ShowResult reveals the confirmation buttons.
func (mainWindow *Window) ShowResult(spin.Outcome) {
	fyne.Do(mainWindow.resultRow.Show)
}

// HideResult hides the confirmation buttons.
func (mainWindow *Window) HideResult() {
	fyne.Do(mainWindow.resultRow.Hide)
}

// SetHistory re-renders the history sidebar.
func (mainWindow *Window) SetHistory(entries []model.HistoryEntry) {
	fyne.Do(func() {
		mainWindow.history.set(entries)
	})
}

// SetTimerStatus updates the timer status line.
func (mainWindow *Window) SetTimerStatus(status string) {
	fyne.Do(func() {
		mainWindow.statusLabel.SetText(status)
	})
}

// ShowWindow brings the window to the front.
func (mainWindow *Window) ShowWindow() {
	fyne.Do(func() {
		mainWindow.window.Show()
		mainWindow.window.RequestFocus()
	})
}

// HideWindow hides the window to the tray.
func (mainWindow *Window) HideWindow() {
	fyne.Do(mainWindow.window.Hide)
}

func (mainWindow *Window) toggleHistory() {
	if mainWindow.sidebar.Visible() {
		mainWindow.sidebar.Hide()
		mainWindow.toggle.SetText("☰")
	} else {
		mainWindow.sidebar.Show()
		mainWindow.toggle.SetText("✕")
	}
}

func (mainWindow *Window) handleSpin() {
	if err := mainWindow.actions.Spin(); err != nil {
		if errors.Is(err, spin.ErrSpinInProgress) {
			return
		}
		logger.Error("spin", "err", err)
		dialog.ShowError(err, mainWindow.window)
	}
}

func (mainWindow *Window) handleConfirm(status model.Status) {
	if err := mainWindow.actions.Confirm(status); err != nil {
		logger.Warn("confirm result", "err", err)
	}
}

func (mainWindow *Window) handleStartTimer(fields countdown.Fields) {
	if err := mainWindow.actions.StartTimer(fields); err != nil {
		dialog.ShowError(err, mainWindow.window)
	}
}
