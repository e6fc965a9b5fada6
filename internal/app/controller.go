package app

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"fitslots/internal/core/countdown"
	"fitslots/internal/core/model"
	"fitslots/internal/core/reel"
	"fitslots/internal/core/spin"
	"fitslots/internal/logger"
	"fitslots/internal/sound"
	"fitslots/internal/storage"
	"fitslots/internal/ui/preferences"
)

// ErrNoResult indicates a confirmation without a resolved spin to confirm.
var ErrNoResult = errors.New("no spin result to confirm")

const (
	notifyTitle   = "Пора!"
	notifyMessage = "Время тренировки!"
)

// Options wires the Controller's collaborators.
type Options struct {
	AppName      string
	ExecPath     string
	SettingsPath string
	Settings     preferences.Settings
	Catalog      *storage.CatalogStore
	History      *storage.HistoryStore
	Scheduler    reel.Scheduler
	Sound        sound.Player
	Notifier     Notifier
	Autostart    Autostarter
	TimerTick    time.Duration
	Rand         *rand.Rand
	Now          func() time.Time
}

// Controller owns the reels, the spin coordinator, the countdown and the
// persisted data, and drives a View.
type Controller struct {
	mu             sync.Mutex
	options        Options
	settings       preferences.Settings
	catalog        model.Catalog
	view           View
	reels          []*reel.Reel
	coordinator    *spin.Coordinator
	pending        *spin.Outcome
	rebuildPending bool
	countdown      *countdown.Countdown
	spinTimer      *time.Timer
	closed         bool
}

// New loads the catalog and history and builds the reels.
func New(options Options) (*Controller, error) {
	if options.Catalog == nil || options.History == nil {
		return nil, errors.New("new controller: catalog and history stores are required")
	}
	if options.Sound == nil {
		options.Sound = sound.Silent{}
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.TimerTick <= 0 {
		options.TimerTick = time.Second
	}

	catalog, err := options.Catalog.Load()
	if err != nil {
		logger.Error("load catalog", "path", options.Catalog.Path(), "err", err)
		if catalog.Validate() != nil {
			catalog = model.DefaultCatalog()
		}
	}
	if err := options.History.Load(); err != nil {
		logger.Error("load history", "path", options.History.Path(), "err", err)
	}

	controller := &Controller{
		options:   options,
		settings:  options.Settings.Clone(),
		catalog:   catalog,
		countdown: countdown.New(countdown.Config{TickInterval: options.TimerTick}),
	}
	if err := controller.rebuildLocked(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}

	go controller.watchCountdown(controller.countdown.Subscribe(8))
	return controller, nil
}

// Attach connects the view and pushes the current state to it.
func (controller *Controller) Attach(view View) {
	controller.mu.Lock()
	controller.view = view
	reels := append([]*reel.Reel(nil), controller.reels...)
	limit := controller.settings.HistoryLimit
	controller.mu.Unlock()

	view.SetReels(reels)
	view.SetHistory(controller.options.History.Recent(limit))
	view.SetTimerStatus(timerStatus(countdown.StateIdle, 0))
}

// Reels returns the current reels in catalog order.
func (controller *Controller) Reels() []*reel.Reel {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return append([]*reel.Reel(nil), controller.reels...)
}

// Catalog returns a copy of the current catalog.
func (controller *Controller) Catalog() model.Catalog {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.catalog.Clone()
}

// Settings returns the active settings.
func (controller *Controller) Settings() preferences.Settings {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.settings.Clone()
}

// Spin starts a new spin of every reel.
func (controller *Controller) Spin() error {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return errors.New("controller closed")
	}
	if controller.rebuildPending && !controller.coordinator.InProgress() {
		if err := controller.rebuildLocked(); err != nil {
			controller.mu.Unlock()
			return err
		}
		controller.pushReels()
	}
	coordinator := controller.coordinator
	if coordinator.InProgress() {
		controller.mu.Unlock()
		return spin.ErrSpinInProgress
	}
	// The outcome may resolve inside StartSpin, so the previous one goes first.
	controller.pending = nil
	view := controller.view
	controller.mu.Unlock()

	if view != nil {
		view.HideResult()
		view.SetSpinning(true)
	}
	controller.options.Sound.Play(sound.CueSpin)

	speeds, err := coordinator.StartSpin()
	if err != nil {
		return err
	}
	logger.Debug("spin started", "speeds", speeds)
	return nil
}

// PendingOutcome returns the resolved spin awaiting confirmation.
func (controller *Controller) PendingOutcome() (spin.Outcome, bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.pending == nil {
		return spin.Outcome{}, false
	}
	return *controller.pending, true
}

// Confirm records the pending outcome in the history with status.
// A failed write is logged; the entry still shows in the sidebar.
func (controller *Controller) Confirm(status model.Status) error {
	controller.mu.Lock()
	if controller.pending == nil {
		controller.mu.Unlock()
		return ErrNoResult
	}
	outcome := *controller.pending
	controller.pending = nil
	view := controller.view
	limit := controller.settings.HistoryLimit
	controller.mu.Unlock()

	if status == model.StatusCompleted {
		controller.options.Sound.Play(sound.CueSuccess)
	} else {
		controller.options.Sound.Play(sound.CueFail)
	}

	entry := model.NewHistoryEntry(controller.options.Now(), status, outcome.Items)
	if err := controller.options.History.Add(entry); err != nil {
		logger.Error("save history", "err", err)
	}
	logger.Info("spin confirmed", "status", status, "exercises", entry.Exercises)

	if view != nil {
		view.HideResult()
		view.SetHistory(controller.options.History.Recent(limit))
	}
	return nil
}

// History returns the entries shown in the sidebar.
func (controller *Controller) History() []model.HistoryEntry {
	controller.mu.Lock()
	limit := controller.settings.HistoryLimit
	controller.mu.Unlock()
	return controller.options.History.Recent(limit)
}

// AddItem appends a new exercise to a category and saves the catalog.
func (controller *Controller) AddItem(categoryName, name, reps string) error {
	item, err := model.NewItem(name, reps)
	if err != nil {
		return err
	}
	return controller.editCatalog(func(catalog *model.Catalog) error {
		category, err := catalog.Category(categoryName)
		if err != nil {
			return err
		}
		return category.Add(item)
	})
}

// RemoveItem deletes an exercise from a category and saves the catalog.
// The last exercise of a category cannot be removed.
func (controller *Controller) RemoveItem(categoryName string, item model.Item) error {
	return controller.editCatalog(func(catalog *model.Catalog) error {
		category, err := catalog.Category(categoryName)
		if err != nil {
			return err
		}
		return category.Remove(item)
	})
}

func (controller *Controller) editCatalog(edit func(*model.Catalog) error) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	updated := controller.catalog.Clone()
	if err := edit(&updated); err != nil {
		return err
	}
	if err := controller.options.Catalog.Save(updated); err != nil {
		return err
	}
	controller.catalog = updated
	controller.scheduleRebuildLocked()
	return nil
}

// ApplySettings saves new settings and applies them to sound, autostart and reels.
func (controller *Controller) ApplySettings(settings preferences.Settings) error {
	controller.mu.Lock()
	previous := controller.settings
	controller.settings = settings.Clone()
	controller.scheduleRebuildLocked()
	view := controller.view
	limit := settings.HistoryLimit
	controller.mu.Unlock()

	var errs []error
	if controller.options.SettingsPath != "" {
		if err := storage.SaveSettings(controller.options.SettingsPath, settings); err != nil {
			errs = append(errs, err)
		}
	}
	if configurable, ok := controller.options.Sound.(interface{ Configure(float64, bool) }); ok {
		configurable.Configure(settings.SoundVolume, settings.SoundEnabled)
	}
	if controller.options.Autostart != nil && settings.Autostart != previous.Autostart {
		var err error
		if settings.Autostart {
			err = controller.options.Autostart.EnableAutostart(controller.options.AppName, controller.options.ExecPath)
		} else {
			err = controller.options.Autostart.DisableAutostart(controller.options.AppName)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if view != nil {
		view.SetHistory(controller.options.History.Recent(limit))
	}
	return errors.Join(errs...)
}

// StartTimer arms the workout reminder and hides the window to the tray.
func (controller *Controller) StartTimer(fields countdown.Fields) error {
	if err := controller.countdown.Start(fields.Duration()); err != nil {
		return err
	}
	controller.options.Sound.Play(sound.CueClick)
	logger.Info("timer started", "duration", fields.Duration())

	controller.mu.Lock()
	view := controller.view
	controller.mu.Unlock()
	if view != nil {
		view.HideWindow()
	}
	return nil
}

// CancelTimer disarms the workout reminder.
func (controller *Controller) CancelTimer() {
	controller.countdown.Cancel()
}

// TimerState returns the countdown mode.
func (controller *Controller) TimerState() countdown.State {
	return controller.countdown.State()
}

// Close stops the countdown and any delayed spin.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	if controller.spinTimer != nil {
		controller.spinTimer.Stop()
	}
	controller.mu.Unlock()

	controller.countdown.Close()
}

func (controller *Controller) scheduleRebuildLocked() {
	if controller.coordinator != nil && controller.coordinator.InProgress() {
		controller.rebuildPending = true
		return
	}
	if err := controller.rebuildLocked(); err != nil {
		logger.Error("rebuild reels", "err", err)
		controller.rebuildPending = true
		return
	}
	controller.pushReels()
}

func (controller *Controller) rebuildLocked() error {
	config := controller.settings.ReelConfig()
	reels := make([]*reel.Reel, 0, len(controller.catalog.Categories))
	for _, category := range controller.catalog.Categories {
		current, err := reel.New(category.Name, category.Items, config, controller.options.Scheduler)
		if err != nil {
			return err
		}
		reels = append(reels, current)
	}

	coordinator, err := spin.NewCoordinator(reels, controller.settings.SpeedRanges, controller.options.Rand)
	if err != nil {
		return err
	}
	coordinator.OnReady(controller.handleOutcome)

	controller.reels = reels
	controller.coordinator = coordinator
	controller.pending = nil
	controller.rebuildPending = false
	return nil
}

func (controller *Controller) pushReels() {
	if controller.view == nil {
		return
	}
	controller.view.SetReels(append([]*reel.Reel(nil), controller.reels...))
	controller.view.HideResult()
}

func (controller *Controller) handleOutcome(outcome spin.Outcome) {
	controller.mu.Lock()
	controller.pending = &outcome
	view := controller.view
	controller.mu.Unlock()

	logger.Debug("spin resolved", "indices", outcome.Indices)
	if view != nil {
		view.SetSpinning(false)
		view.ShowResult(outcome)
	}
}

func (controller *Controller) watchCountdown(events <-chan countdown.Event) {
	for event := range events {
		controller.mu.Lock()
		view := controller.view
		controller.mu.Unlock()

		if view != nil {
			view.SetTimerStatus(timerStatus(event.State, event.Remaining))
		}
		if event.Type == countdown.EventFired {
			controller.handleTimerFired(view)
		}
	}
}

func (controller *Controller) handleTimerFired(view View) {
	logger.Info("timer fired")
	if controller.options.Notifier != nil {
		controller.options.Notifier.Notify(notifyTitle, notifyMessage)
	}
	if view != nil {
		view.ShowWindow()
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return
	}
	controller.spinTimer = time.AfterFunc(controller.settings.SpinDelay, func() {
		if err := controller.Spin(); err != nil {
			logger.Warn("spin after timer", "err", err)
		}
	})
}

func timerStatus(state countdown.State, remaining time.Duration) string {
	switch state {
	case countdown.StateRunning:
		return "тренировка через " + formatRemaining(remaining)
	case countdown.StatePaused:
		return "таймер на паузе (" + formatRemaining(remaining) + ")"
	case countdown.StateFired:
		return "пора тренироваться"
	default:
		return "таймер не запущен"
	}
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
