package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// showAdvisory surfaces a non-fatal status message. When the alarm list is on
// screen the message appears as a dialog there, otherwise it falls back to a
// desktop notification so it is not lost.
func (wa *WeekdayAlarm) showAdvisory(msg string) {
	fyne.Do(func() {
		if wa.listWindow != nil && wa.listWindow.window != nil {
			dialog.ShowInformation("Weekday Alarm", msg, wa.listWindow.window)
			return
		}
		wa.app.SendNotification(fyne.NewNotification("Weekday Alarm", msg))
	})
}
