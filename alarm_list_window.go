package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/scheduler"
	"github.com/borgmon/weekday-alarm/pkg/store"
)

var weekdayNames = [8]string{
	1: "Sunday", 2: "Monday", 3: "Tuesday", 4: "Wednesday",
	5: "Thursday", 6: "Friday", 7: "Saturday",
}

func weekdayName(weekday int) string {
	if weekday < 1 || weekday > 7 {
		return "?"
	}
	return weekdayNames[weekday]
}

type AlarmListWindow struct {
	window     fyne.Window
	app        fyne.App
	controller *scheduler.Controller
	settings   *store.Settings

	list        *widget.List
	alarmsData  []models.Alarm
	selectedRow int
}

func NewAlarmListWindow(app fyne.App, controller *scheduler.Controller, settings *store.Settings) *AlarmListWindow {
	lw := &AlarmListWindow{
		app:         app,
		controller:  controller,
		settings:    settings,
		selectedRow: -1,
	}

	lw.window = app.NewWindow("Weekday Alarm - Alarms")
	lw.alarmsData = controller.Alarms()
	lw.buildUI()

	return lw
}

func (lw *AlarmListWindow) buildUI() {
	lw.list = widget.NewList(
		func() int {
			return len(lw.alarmsData)
		},
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			label := widget.NewLabel("Template")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, check, nil, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(lw.alarmsData) {
				return
			}
			a := lw.alarmsData[id]

			row := obj.(*fyne.Container)
			// Border containers keep center objects first, edges after.
			label := row.Objects[0].(*widget.Label)
			check := row.Objects[1].(*widget.Check)

			// Detach the callback before syncing state, so a programmatic
			// SetChecked never reads as a user toggle.
			check.OnChanged = nil
			check.SetChecked(a.IsEnabled)
			alarmID := a.ID
			check.OnChanged = func(checked bool) {
				lw.controller.Toggle(alarmID, checked)
			}

			repeat := weekdayName(a.Weekday)
			if !a.RepeatsWeekly {
				repeat = "Once, " + repeat
			}
			label.SetText(fmt.Sprintf("%s  %s  %s",
				a.Time.Format(lw.settings.TimeFormat()), repeat, a.Label))

			if a.IsEnabled {
				label.Importance = widget.MediumImportance
			} else {
				label.Importance = widget.LowImportance
			}
			label.Refresh()
		},
	)

	lw.list.OnSelected = func(id widget.ListItemID) {
		lw.selectedRow = id
	}
	lw.list.OnUnselected = func(widget.ListItemID) {
		lw.selectedRow = -1
	}

	addButton := widget.NewButton("Add Alarm", func() {
		lw.showAlarmForm(nil)
	})
	addButton.Icon = theme.ContentAddIcon()

	editButton := widget.NewButton("Edit", func() {
		if lw.selectedRow < 0 || lw.selectedRow >= len(lw.alarmsData) {
			dialog.ShowInformation("No Selection", "Please select an alarm to edit.", lw.window)
			return
		}
		selected := lw.alarmsData[lw.selectedRow]
		lw.showAlarmForm(&selected)
	})
	editButton.Icon = theme.DocumentCreateIcon()

	deleteButton := widget.NewButton("Delete", func() {
		lw.showDeleteDialog()
	})
	deleteButton.Icon = theme.DeleteIcon()

	buttonRow := container.NewHBox(addButton, editButton, deleteButton)

	header := container.NewVBox(
		widget.NewLabel("Alarms"),
		widget.NewSeparator(),
		buttonRow,
	)

	content := container.NewBorder(header, nil, nil, nil, lw.list)

	lw.window.SetContent(container.NewPadded(content))
	lw.window.Resize(fyne.NewSize(520, 600))
	lw.window.CenterOnScreen()
}

func (lw *AlarmListWindow) showDeleteDialog() {
	if len(lw.alarmsData) == 0 {
		dialog.ShowInformation("No Alarms", "There are no alarms to delete.", lw.window)
		return
	}
	if lw.selectedRow < 0 || lw.selectedRow >= len(lw.alarmsData) {
		dialog.ShowInformation("No Selection", "Please select an alarm to delete.", lw.window)
		return
	}

	selected := lw.alarmsData[lw.selectedRow]
	row := lw.selectedRow
	dialog.ShowConfirm("Delete Alarm",
		fmt.Sprintf("Delete \"%s\" at %s?", selected.Label, selected.Time.Format(lw.settings.TimeFormat())),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			lw.controller.DeleteAt([]int{row})
			lw.selectedRow = -1
		}, lw.window)
}

// Refresh reloads the list from the controller. Safe to call from any
// goroutine.
func (lw *AlarmListWindow) Refresh() {
	fyne.Do(func() {
		lw.alarmsData = lw.controller.Alarms()
		if lw.list != nil {
			lw.list.Refresh()
		}
	})
}

func (lw *AlarmListWindow) Show() {
	lw.window.Show()
}
