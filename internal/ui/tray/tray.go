package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "FitSlots"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen        func()
	OnSpin        func()
	OnCancelTimer func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	cancelItem  *fyne.MenuItem
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("таймер не запущен", nil)
	manager.statusItem.Disabled = true

	manager.cancelItem = fyne.NewMenuItem("Отменить таймер", func() {
		if manager.callbacks.OnCancelTimer != nil {
			manager.callbacks.OnCancelTimer()
		}
	})
	manager.cancelItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Открыть", func() {
			if manager.callbacks.OnOpen != nil {
				manager.callbacks.OnOpen()
			}
		}),
		fyne.NewMenuItem("Крутить сейчас", func() {
			if manager.callbacks.OnSpin != nil {
				manager.callbacks.OnSpin()
			}
		}),
		manager.cancelItem,
		fyne.NewMenuItem("Настройки", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Выход", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// SetTimerActive enables the cancel item while a countdown is armed.
func (manager *Manager) SetTimerActive(active bool) {
	if manager.cancelItem.Disabled == !active {
		return
	}
	manager.cancelItem.Disabled = !active
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
