package tray

import (
	"testing"

	"fyne.io/fyne/v2"
)

type fakeDesktop struct {
	menus []*fyne.Menu
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *fakeDesktop) SetSystemTrayIcon(fyne.Resource) {}

func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window) {}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestManagerMenuActions(t *testing.T) {
	desktopApp := &fakeDesktop{}
	var opened, spun, cancelled, quit int
	manager := New(desktopApp, Callbacks{
		OnOpen:        func() { opened++ },
		OnSpin:        func() { spun++ },
		OnCancelTimer: func() { cancelled++ },
		OnQuit:        func() { quit++ },
	})

	if len(desktopApp.menus) != 1 {
		t.Fatalf("menus set = %d, want 1", len(desktopApp.menus))
	}
	menu := manager.Menu()
	findItem(t, menu, "Открыть").Action()
	findItem(t, menu, "Крутить сейчас").Action()
	findItem(t, menu, "Отменить таймер").Action()
	findItem(t, menu, "Настройки").Action()
	findItem(t, menu, "Выход").Action()
	if opened != 1 || spun != 1 || cancelled != 1 || quit != 1 {
		t.Fatalf("callbacks = %d/%d/%d/%d, want 1 each", opened, spun, cancelled, quit)
	}
}

func TestManagerStatusAndTimer(t *testing.T) {
	desktopApp := &fakeDesktop{}
	manager := New(desktopApp, Callbacks{})

	manager.SetStatus("тренировка через 00:10:00")
	manager.SetStatus("тренировка через 00:10:00")
	if len(desktopApp.menus) != 2 {
		t.Fatalf("menus set = %d, want 2", len(desktopApp.menus))
	}
	if got := desktopApp.menus[1].Items[0].Label; got != "тренировка через 00:10:00" {
		t.Fatalf("status label = %q", got)
	}

	if !findItem(t, manager.Menu(), "Отменить таймер").Disabled {
		t.Fatal("cancel item enabled without timer")
	}
	manager.SetTimerActive(true)
	if findItem(t, manager.Menu(), "Отменить таймер").Disabled {
		t.Fatal("cancel item disabled with running timer")
	}
}
