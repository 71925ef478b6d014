package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/weekday-alarm/pkg/models"
)

// Settings holds application configuration outside the alarm list itself.
type Settings struct {
	AutoStart         bool         `json:"auto_start"`
	DefaultSound      models.Sound `json:"default_sound"`
	HoldToDismissSecs int          `json:"hold_to_dismiss_seconds"`
	Use24HourClock    bool         `json:"use_24_hour_clock"`
}

// SettingsStore handles settings persistence using Fyne preferences.
type SettingsStore struct {
	app fyne.App
}

func NewSettingsStore(app fyne.App) *SettingsStore {
	return &SettingsStore{app: app}
}

// Load loads settings from preferences, applying defaults for unset keys.
func (ss *SettingsStore) Load() *Settings {
	prefs := ss.app.Preferences()

	return &Settings{
		AutoStart:         prefs.BoolWithFallback("auto_start", false),
		DefaultSound:      models.ParseSound(prefs.StringWithFallback("default_sound", string(models.DefaultSound))),
		HoldToDismissSecs: prefs.IntWithFallback("hold_to_dismiss_seconds", 3),
		Use24HourClock:    prefs.BoolWithFallback("use_24_hour_clock", false),
	}
}

// Save saves settings to preferences.
func (ss *SettingsStore) Save(s *Settings) {
	prefs := ss.app.Preferences()

	prefs.SetBool("auto_start", s.AutoStart)
	prefs.SetString("default_sound", string(s.DefaultSound))
	prefs.SetInt("hold_to_dismiss_seconds", s.HoldToDismissSecs)
	prefs.SetBool("use_24_hour_clock", s.Use24HourClock)
}

// TimeFormat returns the clock layout matching the 12/24 hour preference.
func (s *Settings) TimeFormat() string {
	if s.Use24HourClock {
		return "15:04"
	}
	return "3:04 PM"
}
