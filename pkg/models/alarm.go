package models

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultLabel replaces empty alarm labels.
const DefaultLabel = "Alarm"

// Weekday numbering follows the calendar convention: 1 = Sunday .. 7 = Saturday.

// Alarm is a user-defined schedule entry. Weekly alarms ring every week on
// Weekday at Time's hour/minute; one-shot alarms ring once at ScheduledDate
// and are then disabled by reconciliation.
type Alarm struct {
	ID            string     `json:"id"`
	Time          time.Time  `json:"time"`
	Label         string     `json:"label"`
	IsEnabled     bool       `json:"is_enabled"`
	Weekday       int        `json:"weekday"`
	Sound         Sound      `json:"sound"`
	RepeatsWeekly bool       `json:"repeats_weekly"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

// NewAlarm creates an enabled alarm with a fresh ID and normalized fields.
func NewAlarm(t time.Time, label string, weekday int, sound Sound, repeatsWeekly bool) *Alarm {
	a := &Alarm{
		ID:            uuid.New().String(),
		Time:          t,
		Label:         label,
		IsEnabled:     true,
		Weekday:       weekday,
		Sound:         sound,
		RepeatsWeekly: repeatsWeekly,
	}
	a.Normalize()
	return a
}

// Normalize repairs invalid fields instead of rejecting them, so corrupted or
// legacy persisted alarms always load:
//   - empty labels become DefaultLabel
//   - an out-of-range weekday is recomputed from Time's weekday
//   - weekly alarms never carry a cached scheduled date
//   - unknown sounds collapse to DefaultSound
func (a *Alarm) Normalize() {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Label == "" {
		a.Label = DefaultLabel
	}
	if a.Weekday < 1 || a.Weekday > 7 {
		a.Weekday = int(a.Time.Weekday()) + 1
	}
	if !a.Sound.Valid() {
		a.Sound = DefaultSound
	}
	if a.RepeatsWeekly {
		a.ScheduledDate = nil
	}
}

// MinutesOfDay returns the alarm's wall-clock time as minutes since midnight.
func (a *Alarm) MinutesOfDay() int {
	return a.Time.Hour()*60 + a.Time.Minute()
}

func (a *Alarm) UnmarshalJSON(data []byte) error {
	type alias Alarm
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Alarm(raw)
	a.Normalize()
	return nil
}

// SortAlarms orders alarms by weekday, then by minutes since midnight.
// The sort is stable, so repeated sorting is a no-op.
func SortAlarms(alarms []*Alarm) {
	sort.SliceStable(alarms, func(i, j int) bool {
		if alarms[i].Weekday != alarms[j].Weekday {
			return alarms[i].Weekday < alarms[j].Weekday
		}
		return alarms[i].MinutesOfDay() < alarms[j].MinutesOfDay()
	})
}
