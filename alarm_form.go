package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/weekday-alarm/pkg/audio"
	"github.com/borgmon/weekday-alarm/pkg/models"
)

// showAlarmForm opens the add/edit dialog. Passing nil creates a new alarm,
// otherwise the form is pre-filled and saves back to the same alarm.
func (lw *AlarmListWindow) showAlarmForm(existing *models.Alarm) {
	hourEntry := widget.NewEntry()
	hourEntry.SetPlaceHolder("7")
	minEntry := widget.NewEntry()
	minEntry.SetPlaceHolder("30")
	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("Alarm")

	weekdaySelect := widget.NewSelect(weekdayNames[1:], nil)
	weekdaySelect.SetSelectedIndex(1) // Monday

	soundNames := []string{}
	for _, s := range models.Sounds() {
		soundNames = append(soundNames, s.DisplayName())
	}
	soundSelect := widget.NewSelect(soundNames, nil)
	soundSelect.SetSelected(lw.settings.DefaultSound.DisplayName())

	var previewPlayer *audio.Player
	var previewButton *widget.Button
	previewButton = widget.NewButton("Preview", func() {
		if previewPlayer != nil {
			previewPlayer.Stop()
		}
		sound := selectedSound(soundSelect, lw.settings.DefaultSound)
		previewPlayer = audio.PlayPreview(audio.Data(sound), func() {
			previewPlayer = nil
		})
	})

	repeatsCheck := widget.NewCheck("Repeats every week", nil)
	repeatsCheck.SetChecked(true)

	title := "Add Alarm"
	confirm := "Create"
	if existing != nil {
		title = "Edit Alarm"
		confirm = "Save"

		hourEntry.SetText(fmt.Sprintf("%d", existing.Time.Hour()))
		minEntry.SetText(fmt.Sprintf("%d", existing.Time.Minute()))
		labelEntry.SetText(existing.Label)
		weekdaySelect.SetSelectedIndex(existing.Weekday - 1)
		soundSelect.SetSelected(existing.Sound.DisplayName())
		repeatsCheck.SetChecked(existing.RepeatsWeekly)
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Hour (0-23)", hourEntry),
		widget.NewFormItem("Minute (0-59)", minEntry),
		widget.NewFormItem("Label", labelEntry),
		widget.NewFormItem("Weekday", weekdaySelect),
		widget.NewFormItem("Sound", container.NewBorder(nil, nil, nil, previewButton, soundSelect)),
		widget.NewFormItem("Repeat", repeatsCheck),
	}

	dialog.ShowForm(title, confirm, "Cancel", items, func(confirmed bool) {
		if previewPlayer != nil {
			previewPlayer.Stop()
		}
		if !confirmed {
			return
		}

		hours := -1
		mins := -1
		if hourEntry.Text != "" {
			fmt.Sscanf(hourEntry.Text, "%d", &hours)
		}
		if minEntry.Text != "" {
			fmt.Sscanf(minEntry.Text, "%d", &mins)
		}

		if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
			dialog.ShowError(fmt.Errorf("please enter an hour between 0-23 and a minute between 0-59"), lw.window)
			return
		}

		weekday := weekdaySelect.SelectedIndex() + 1
		sound := selectedSound(soundSelect, lw.settings.DefaultSound)
		alarmTime := timeOfDay(hours, mins)

		if existing == nil {
			lw.controller.Add(alarmTime, labelEntry.Text, weekday, sound, repeatsCheck.Checked)
		} else {
			lw.controller.Update(existing.ID, alarmTime, labelEntry.Text, weekday, sound, repeatsCheck.Checked)
		}
	}, lw.window)
}

func selectedSound(sel *widget.Select, fallback models.Sound) models.Sound {
	for _, s := range models.Sounds() {
		if s.DisplayName() == sel.Selected {
			return s
		}
	}
	return fallback
}

// timeOfDay builds today's date at the given wall-clock time. Only the
// hour/minute component matters for scheduling.
func timeOfDay(hours, mins int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hours, mins, 0, 0, now.Location())
}
