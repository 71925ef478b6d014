package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/borgmon/weekday-alarm/pkg/calendar"
)

var icsFilter = storage.NewExtensionFileFilter([]string{".ics"})

// exportAlarms writes the current list to an iCalendar file the user picks.
func (wa *WeekdayAlarm) exportAlarms() {
	wa.showListWindow()
	parent := wa.listWindow.window

	fyne.Do(func() {
		fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, parent)
				return
			}
			if writer == nil {
				return
			}
			defer writer.Close()

			alarms := wa.controller.Alarms()
			if err := calendar.Export(writer, alarms, time.Now()); err != nil {
				dialog.ShowError(err, parent)
				return
			}
			log.Printf("Exported %d alarms to %s", len(alarms), writer.URI())
		}, parent)
		fileDialog.SetFileName("alarms.ics")
		fileDialog.SetFilter(icsFilter)
		fileDialog.Show()
	})
}

// importAlarms reads alarms from an iCalendar file, skipping any whose ID is
// already present.
func (wa *WeekdayAlarm) importAlarms() {
	wa.showListWindow()
	parent := wa.listWindow.window

	fyne.Do(func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, parent)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()

			existing := map[string]bool{}
			for _, a := range wa.controller.Alarms() {
				existing[a.ID] = true
			}

			imported, err := calendar.Import(reader, existing)
			if err != nil {
				dialog.ShowError(err, parent)
				return
			}

			for _, a := range imported {
				wa.controller.Insert(a)
			}
			dialog.ShowInformation("Import Complete",
				fmt.Sprintf("Imported %d alarm(s).", len(imported)), parent)
		}, parent)
		fileDialog.SetFilter(icsFilter)
		fileDialog.Show()
	})
}
