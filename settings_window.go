package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/scheduler"
	"github.com/borgmon/weekday-alarm/pkg/store"
)

type SettingsWindow struct {
	window        fyne.Window
	app           fyne.App
	settingsStore *store.SettingsStore
	settings      *store.Settings
	controller    *scheduler.Controller
	onSave        func(*store.Settings)

	autoStartCheck   *widget.Check
	defaultSoundSel  *widget.Select
	holdSecondsSel   *widget.Select
	use24HourCheck   *widget.Check
	permissionLabel  *widget.Label
	permissionButton *widget.Button

	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewSettingsWindow(app fyne.App, settingsStore *store.SettingsStore, controller *scheduler.Controller, onSave func(*store.Settings)) *SettingsWindow {
	sw := &SettingsWindow{
		app:           app,
		settingsStore: settingsStore,
		settings:      settingsStore.Load(),
		controller:    controller,
		onSave:        onSave,
	}

	sw.window = app.NewWindow("Weekday Alarm - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	sw.autoStartCheck = widget.NewCheck("Launch at login", func(bool) {
		sw.markChanged()
	})
	sw.autoStartCheck.SetChecked(sw.settings.AutoStart)

	soundNames := []string{}
	for _, s := range models.Sounds() {
		soundNames = append(soundNames, s.DisplayName())
	}
	sw.defaultSoundSel = widget.NewSelect(soundNames, func(string) {
		sw.markChanged()
	})
	sw.defaultSoundSel.SetSelected(sw.settings.DefaultSound.DisplayName())

	sw.holdSecondsSel = widget.NewSelect([]string{"1 s", "2 s", "3 s", "5 s"}, func(string) {
		sw.markChanged()
	})
	sw.holdSecondsSel.SetSelected(fmt.Sprintf("%d s", sw.settings.HoldToDismissSecs))

	sw.use24HourCheck = widget.NewCheck("Use 24-hour clock", func(bool) {
		sw.markChanged()
	})
	sw.use24HourCheck.SetChecked(sw.settings.Use24HourClock)

	sw.permissionLabel = widget.NewLabel(sw.controller.Status().String())
	sw.permissionButton = widget.NewButton("Enable Notifications", func() {
		sw.controller.RequestPermissionIfNeeded()
	})
	sw.updatePermissionRow()

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Startup:"), sw.autoStartCheck,
		widget.NewLabel("Default sound:"), sw.defaultSoundSel,
		widget.NewLabel("Hold to dismiss:"), sw.holdSecondsSel,
		widget.NewLabel("Clock:"), sw.use24HourCheck,
		widget.NewLabel("Notifications:"), container.NewHBox(sw.permissionLabel, sw.permissionButton),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", func() {
		sw.save()
	})
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable() // Enabled once something changes

	closeButton := widget.NewButton("Close", func() {
		sw.handleClose()
	})

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	content := container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		container.NewVBox(
			widget.NewLabel("Settings"),
			widget.NewSeparator(),
			form,
		),
	)

	sw.window.SetContent(container.NewPadded(content))
	sw.window.Resize(fyne.NewSize(480, 360))
	sw.window.CenterOnScreen()

	sw.window.SetCloseIntercept(func() {
		sw.handleClose()
	})
}

func (sw *SettingsWindow) save() {
	sw.saveButton.Disable()
	sw.saveStatusLabel.SetText("Saving...")
	sw.saveStatusLabel.Importance = widget.MediumImportance
	sw.saveStatusLabel.Refresh()

	newSettings := sw.settingsFromUI()
	go func() {
		if err := setupAutostart(newSettings.AutoStart); err != nil {
			log.Printf("Error setting autostart: %v", err)
			fyne.Do(func() {
				sw.saveStatusLabel.SetText("Error: Failed to set autostart")
				sw.saveStatusLabel.Importance = widget.DangerImportance
				sw.saveStatusLabel.Refresh()
				sw.updateSaveButtonState()
			})
			return
		}

		sw.settingsStore.Save(newSettings)
		if sw.onSave != nil {
			sw.onSave(newSettings)
		}

		fyne.Do(func() {
			sw.settings = newSettings
			sw.hasUnsavedChanges = false
			sw.saveStatusLabel.SetText("Settings saved successfully")
			sw.saveStatusLabel.Importance = widget.SuccessImportance
			sw.saveStatusLabel.Refresh()
			sw.updateSaveButtonState()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == "Settings saved successfully" {
						sw.saveStatusLabel.SetText("")
						sw.saveStatusLabel.Refresh()
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) settingsFromUI() *store.Settings {
	holdSecs := sw.settings.HoldToDismissSecs
	if sw.holdSecondsSel.Selected != "" {
		fmt.Sscanf(sw.holdSecondsSel.Selected, "%d s", &holdSecs)
	}

	defaultSound := sw.settings.DefaultSound
	for _, s := range models.Sounds() {
		if s.DisplayName() == sw.defaultSoundSel.Selected {
			defaultSound = s
			break
		}
	}

	return &store.Settings{
		AutoStart:         sw.autoStartCheck.Checked,
		DefaultSound:      defaultSound,
		HoldToDismissSecs: holdSecs,
		Use24HourClock:    sw.use24HourCheck.Checked,
	}
}

func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *SettingsWindow) updatePermissionRow() {
	status := sw.controller.Status()
	sw.permissionLabel.SetText(status.String())
	if status.Granted() {
		sw.permissionButton.Hide()
	} else {
		sw.permissionButton.Show()
	}
}

// RefreshStatus re-reads the permission status. Safe to call from any
// goroutine.
func (sw *SettingsWindow) RefreshStatus() {
	fyne.Do(func() {
		if sw.permissionLabel != nil {
			sw.updatePermissionRow()
		}
	})
}

func (sw *SettingsWindow) handleClose() {
	if sw.hasUnsavedChanges {
		dialog.ShowConfirm("Unsaved Changes",
			"You have unsaved changes. Are you sure you want to close?",
			func(confirmed bool) {
				if confirmed {
					sw.window.Close()
				}
			}, sw.window)
		return
	}
	sw.window.Close()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}
