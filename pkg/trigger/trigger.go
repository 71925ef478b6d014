// Package trigger computes the concrete instant an alarm should next fire.
package trigger

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrNoOccurrence is returned when no valid next occurrence can be derived.
var ErrNoOccurrence = errors.New("trigger: no next occurrence")

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Next returns the first instant strictly after ref at which timeOfDay's
// hour/minute occurs on weekday (1 = Sunday .. 7 = Saturday), evaluated in
// ref's location with seconds zeroed. A reference falling exactly on the
// target yields the following week's occurrence, never a past instant.
func Next(timeOfDay time.Time, weekday int, ref time.Time) (time.Time, error) {
	if weekday < 1 || weekday > 7 {
		return time.Time{}, ErrNoOccurrence
	}

	// Seed the rule a week back so the first candidate can be earlier today.
	loc := ref.Location()
	seed := time.Date(ref.Year(), ref.Month(), ref.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, loc).AddDate(0, 0, -7)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday-1]},
		Dtstart:   seed,
	})
	if err != nil {
		return time.Time{}, err
	}

	next := rule.After(ref, false)
	if next.IsZero() {
		return time.Time{}, ErrNoOccurrence
	}
	return next, nil
}
