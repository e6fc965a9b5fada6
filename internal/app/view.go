package app

import (
	"fitslots/internal/core/model"
	"fitslots/internal/core/reel"
	"fitslots/internal/core/spin"
)

// View is the presentation surface driven by the Controller. Methods may be
// called from any goroutine.
type View interface {
	SetReels(reels []*reel.Reel)
	SetSpinning(spinning bool)
	ShowResult(outcome spin.Outcome)
	HideResult()
	SetHistory(entries []model.HistoryEntry)
	SetTimerStatus(status string)
	ShowWindow()
	HideWindow()
}

// Notifier delivers desktop notifications.
type Notifier interface {
	Notify(title, message string)
}

// Autostarter registers the application to start at login.
type Autostarter interface {
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}
