package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func (wa *WeekdayAlarm) setupSystemTray() {
	wa.updateSystemTrayMenu()
}

func (wa *WeekdayAlarm) updateSystemTrayMenu() {
	desk, ok := wa.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Upcoming armed alarms at the top, soonest first
	upcoming := wa.upcomingAlarmItems(5)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)
		menuItems = append(menuItems, upcoming...)
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Alarms", func() {
			wa.showListWindow()
		}),
		fyne.NewMenuItem("Settings", func() {
			wa.showSettingsWindow()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Alarms...", func() {
			wa.exportAlarms()
		}),
		fyne.NewMenuItem("Import Alarms...", func() {
			wa.importAlarms()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			wa.quit()
		}),
	)

	menu := fyne.NewMenu("Weekday Alarm", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

// upcomingAlarmItems returns disabled menu entries for the next armed alarms,
// limited to the given count.
func (wa *WeekdayAlarm) upcomingAlarmItems(limit int) []*fyne.MenuItem {
	byID := map[string]string{}
	for _, a := range wa.controller.Alarms() {
		byID[a.ID] = a.Label
	}

	items := []*fyne.MenuItem{}
	for _, id := range wa.notifier.Pending() {
		fireTime, ok := wa.notifier.NextFireTime(id)
		if !ok {
			continue
		}

		text := fmt.Sprintf("  %s %s - %s",
			fireTime.Format(wa.settings.TimeFormat()),
			fireTime.Format("Mon"),
			truncateString(byID[id], 35))

		item := fyne.NewMenuItem(text, nil)
		item.Disabled = true
		items = append(items, item)

		if len(items) >= limit {
			break
		}
	}
	return items
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
