package store

import (
	"encoding/json"
	"log"

	"fyne.io/fyne/v2"
	"github.com/borgmon/weekday-alarm/pkg/models"
)

// Storage key kept from the first release so existing alarm lists load.
const alarmsKey = "saved_alarms_v1"

// Repository is the durable home of the alarm list. Load never fails:
// missing or corrupt data yields an empty list. Save failures are reported
// so the caller can log them; the in-memory list stays authoritative.
type Repository interface {
	Load() []*models.Alarm
	Save(alarms []*models.Alarm) error
}

// PreferencesRepository persists the alarm list as a JSON blob in the
// application preferences.
type PreferencesRepository struct {
	app fyne.App
}

func NewPreferencesRepository(app fyne.App) *PreferencesRepository {
	return &PreferencesRepository{app: app}
}

func (r *PreferencesRepository) Load() []*models.Alarm {
	raw := r.app.Preferences().String(alarmsKey)
	if raw == "" {
		return nil
	}

	var alarms []*models.Alarm
	if err := json.Unmarshal([]byte(raw), &alarms); err != nil {
		log.Printf("Failed to decode alarms: %v", err)
		return nil
	}

	// Field-level repair happens during decoding; drop null entries that a
	// hand-edited preferences file could contain.
	kept := alarms[:0]
	for _, a := range alarms {
		if a != nil {
			kept = append(kept, a)
		}
	}
	return kept
}

func (r *PreferencesRepository) Save(alarms []*models.Alarm) error {
	data, err := json.Marshal(alarms)
	if err != nil {
		return err
	}
	r.app.Preferences().SetString(alarmsKey, string(data))
	return nil
}
