package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fitslots/internal/app"
	"fitslots/internal/core/countdown"
	"fitslots/internal/logger"
	"fitslots/internal/platform"
	"fitslots/internal/sound"
	"fitslots/internal/storage"
	"fitslots/internal/ui/animation"
	"fitslots/internal/ui/editor"
	"fitslots/internal/ui/mainwindow"
	"fitslots/internal/ui/preferences"
	"fitslots/internal/ui/tray"
	"fitslots/resources"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "FitSlots"
	appID   = "com.fitslots.app"
)

type options struct {
	dataDir   string
	soundDir  string
	debug     bool
	noTray    bool
	minimized bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding exercises.json, history.json and settings.yaml")
	flags.StringVar(&opts.soundDir, "sound-dir", "", "directory holding spin/success/fail/click sound files")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")
	flags.BoolVar(&opts.noTray, "no-tray", false, "run without a system tray icon")
	flags.BoolVar(&opts.minimized, "minimized", false, "start hidden in the system tray")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	service := platform.NewService()
	if opts.dataDir == "" {
		opts.dataDir, err = service.DataDir(appName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve data dir: %v\n", err)
			os.Exit(1)
		}
	}

	if err := logger.Init(logger.Config{Debug: opts.debug, LogDir: filepath.Join(opts.dataDir, "logs"), AppName: "fitslots"}); err != nil {
		logger.UseWriter(os.Stderr, log.InfoLevel)
		logger.Warn("file logging disabled", "err", err)
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Info("single instance", "err", err)
		if err := platform.ActivateRunning(appName, time.Second); err != nil {
			logger.Warn("activate running instance", "err", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	if err := run(opts, service, guard); err != nil {
		logger.Error("fitslots stopped", "err", err)
		os.Exit(1)
	}
}

func run(opts options, service platform.Service, guard *platform.InstanceGuard) error {
	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("resolve executable", "err", err)
	}
	if opts.soundDir == "" && execPath != "" {
		opts.soundDir = filepath.Join(filepath.Dir(execPath), "sounds")
	}

	settingsPath := storage.SettingsPath(opts.dataDir)
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Error("load settings", "path", settingsPath, "err", err)
		settings = preferences.DefaultSettings()
	}
	if enabled, err := service.AutostartEnabled(appName); err == nil {
		settings.Autostart = enabled
	}

	scheduler := animation.NewScheduler(context.Background())
	defer scheduler.Wait()
	defer scheduler.Stop()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustAppIcon())

	controller, err := app.New(app.Options{
		AppName:      appName,
		ExecPath:     execPath,
		SettingsPath: settingsPath,
		Settings:     settings,
		Catalog:      storage.NewCatalogStore(opts.dataDir),
		History:      storage.NewHistoryStore(opts.dataDir),
		Scheduler:    scheduler,
		Sound:        sound.NewCuePlayer(opts.soundDir, settings.SoundVolume, settings.SoundEnabled),
		Notifier:     notifier{app: fyneApp},
		Autostart:    service,
	})
	if err != nil {
		return err
	}
	defer controller.Close()

	editorWindow := editor.New(fyneApp, controller)
	mainWindow := mainwindow.New(fyneApp, controller, editorWindow.Show)
	prefsWindow := preferences.New(fyneApp, controller.Settings(), func(updated preferences.Settings) {
		if err := controller.ApplySettings(updated); err != nil {
			logger.Error("apply settings", "err", err)
			dialog.ShowError(err, mainWindow.Window())
		}
	})

	view := &desktopView{Window: mainWindow, timerState: controller.TimerState}
	desktopApp, ok := fyneApp.(desktop.App)
	if ok && !opts.noTray {
		view.desktop = desktopApp
		view.tray = tray.New(desktopApp, tray.Callbacks{
			OnOpen: mainWindow.ShowWindow,
			OnSpin: func() {
				mainWindow.ShowWindow()
				if err := controller.Spin(); err != nil {
					logger.Debug("spin from tray", "err", err)
				}
			},
			OnCancelTimer: controller.CancelTimer,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustAppIcon())
	} else {
		if !ok {
			logger.Warn("system tray unsupported on this platform")
		}
		opts.minimized = false
		mainWindow.Window().SetCloseIntercept(fyneApp.Quit)
	}

	controller.Attach(view)
	guard.Serve(view.ShowWindow)

	if !opts.minimized {
		mainWindow.Window().Show()
	}
	logger.Info("fitslots started", "data_dir", opts.dataDir, "tray", view.tray != nil)
	fyneApp.Run()
	return nil
}

type notifier struct {
	app fyne.App
}

func (notifier notifier) Notify(title, message string) {
	fyne.Do(func() {
		notifier.app.SendNotification(fyne.NewNotification(title, message))
	})
}

// desktopView mirrors timer state into the tray.
type desktopView struct {
	*mainwindow.Window
	tray       *tray.Manager
	desktop    desktop.App
	timerState func() countdown.State
	timerIcon  bool
}

func (view *desktopView) SetTimerStatus(status string) {
	view.Window.SetTimerStatus(status)
	if view.tray == nil {
		return
	}
	state := view.timerState()
	active := state == countdown.StateRunning || state == countdown.StatePaused
	fyne.Do(func() {
		view.tray.SetStatus(status)
		view.tray.SetTimerActive(active)
		if active == view.timerIcon {
			return
		}
		view.timerIcon = active
		if active {
			view.desktop.SetSystemTrayIcon(resources.MustTimerIcon())
		} else {
			view.desktop.SetSystemTrayIcon(resources.MustAppIcon())
		}
	})
}

func (view *desktopView) HideWindow() {
	if view.tray == nil {
		return
	}
	view.Window.HideWindow()
}
