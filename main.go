package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/notify"
	"github.com/borgmon/weekday-alarm/pkg/platform"
	"github.com/borgmon/weekday-alarm/pkg/scheduler"
	"github.com/borgmon/weekday-alarm/pkg/store"
)

type WeekdayAlarm struct {
	app           fyne.App
	settingsStore *store.SettingsStore
	settings      *store.Settings
	notifier      *notify.DesktopService
	controller    *scheduler.Controller

	listWindow     *AlarmListWindow
	settingsWindow *SettingsWindow
}

func main() {
	wa := &WeekdayAlarm{
		app: app.NewWithID("com.borgmon.weekday-alarm"),
	}

	if err := wa.initialize(); err != nil {
		log.Fatal(err)
	}

	wa.run()
}

func (wa *WeekdayAlarm) initialize() error {
	wa.settingsStore = store.NewSettingsStore(wa.app)
	wa.settings = wa.settingsStore.Load()

	// Sync autostart state with settings on startup
	if err := setupAutostart(wa.settings.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	repo := store.NewPreferencesRepository(wa.app)
	wa.notifier = notify.NewDesktopService(wa.app, wa.showRing)
	wa.notifier.SetTimeLayout(wa.settings.TimeFormat())
	wa.controller = scheduler.NewController(repo, wa.notifier, scheduler.SystemClock())
	wa.controller.OnAdvisory = wa.showAdvisory
	wa.controller.OnChange = wa.refreshUI

	// Load the saved list and expire anything that fired while we were down.
	wa.controller.Resume()

	// In-process timers do not survive a restart, so every enabled alarm has
	// to be re-armed. The first launch asks for permission instead.
	wa.controller.RequestPermissionIfNeeded()

	wa.setupSystemTray()

	return nil
}

func (wa *WeekdayAlarm) run() {
	wa.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
	})
	wa.app.Lifecycle().SetOnEnteredForeground(func() {
		wa.controller.Resume()
	})
	wa.app.Run()
}

func (wa *WeekdayAlarm) showRing(alarm models.Alarm) {
	ringWindow := NewRingWindow(wa.app, alarm, wa.settings.HoldToDismissSecs, wa.settings.TimeFormat(), func() {
		wa.controller.Reconcile()
	})
	ringWindow.Show()
}

func (wa *WeekdayAlarm) refreshUI() {
	wa.updateSystemTrayMenu()
	if wa.listWindow != nil {
		wa.listWindow.Refresh()
	}
	if wa.settingsWindow != nil {
		wa.settingsWindow.RefreshStatus()
	}
}

func (wa *WeekdayAlarm) showListWindow() {
	if wa.listWindow != nil && wa.listWindow.window != nil {
		wa.listWindow.window.RequestFocus()
		wa.listWindow.window.Show()
		return
	}

	wa.listWindow = NewAlarmListWindow(wa.app, wa.controller, wa.settings)
	wa.listWindow.window.SetOnClosed(func() {
		wa.listWindow = nil
	})
	wa.listWindow.Show()
}

func (wa *WeekdayAlarm) showSettingsWindow() {
	if wa.settingsWindow != nil && wa.settingsWindow.window != nil {
		wa.settingsWindow.window.RequestFocus()
		wa.settingsWindow.window.Show()
		return
	}

	wa.settingsWindow = NewSettingsWindow(wa.app, wa.settingsStore, wa.controller, func(newSettings *store.Settings) {
		wa.settings = newSettings
		wa.notifier.SetTimeLayout(newSettings.TimeFormat())
		wa.refreshUI()
	})
	wa.settingsWindow.window.SetOnClosed(func() {
		wa.settingsWindow = nil
	})
	wa.settingsWindow.Show()
}

func (wa *WeekdayAlarm) quit() {
	wa.controller.Wait()
	wa.app.Quit()
}
