// Package scheduler keeps the persisted alarm list, the armed timers, and
// elapsed time in agreement, and owns every mutation of the list.
package scheduler

import (
	"log"
	"time"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/notify"
	"github.com/borgmon/weekday-alarm/pkg/trigger"
)

// Engine reconciles the alarm list against the external timer service.
type Engine struct {
	notifier notify.Service
}

func NewEngine(notifier notify.Service) *Engine {
	return &Engine{notifier: notifier}
}

// ReconcileOneShots walks the list and fixes up one-shot alarms:
//
//   - an enabled one-shot whose scheduled instant has passed already fired
//     (or expired while the app was gone); it is disabled and its timer
//     cancelled
//   - an enabled one-shot missing its scheduled instant (transient state
//     between creation and the first pass) gets one computed
//
// Returns true if any alarm changed, so the caller can re-sort and persist
// once for the whole pass.
func (e *Engine) ReconcileOneShots(alarms []*models.Alarm, now time.Time) bool {
	changed := false

	for _, a := range alarms {
		if a.RepeatsWeekly || !a.IsEnabled {
			continue
		}

		if a.ScheduledDate != nil && !a.ScheduledDate.After(now) {
			a.IsEnabled = false
			e.notifier.Cancel(a.ID)
			changed = true
			log.Printf("One-shot %q expired at %s, disabled", a.Label, a.ScheduledDate.Format(time.RFC3339))
		} else if a.ScheduledDate == nil {
			next, err := trigger.Next(a.Time, a.Weekday, now)
			if err != nil {
				log.Printf("No trigger date for %q: %v", a.Label, err)
				continue
			}
			a.ScheduledDate = &next
			changed = true
		}
	}

	return changed
}

// RearmAll re-issues an arm request for every enabled alarm and returns the
// IDs whose requests failed. The caller demotes those alarms.
func (e *Engine) RearmAll(alarms []*models.Alarm) []string {
	var failed []string

	for _, a := range alarms {
		if !a.IsEnabled {
			continue
		}
		if err := e.notifier.Schedule(a); err != nil {
			log.Printf("Failed to arm %q: %v", a.Label, err)
			failed = append(failed, a.ID)
		}
	}

	return failed
}
