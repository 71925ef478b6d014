package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/trigger"
)

// PropAlarmSound carries the sound name through an iCalendar round trip.
const PropAlarmSound = "X-ALARM-SOUND"

// byDayCodes maps the 1-based weekday (1 = Sunday) to its iCalendar BYDAY code.
var byDayCodes = [8]string{1: "SU", 2: "MO", 3: "TU", 4: "WE", 5: "TH", 6: "FR", 7: "SA"}

// Export writes the alarm list as a VCALENDAR stream. Weekly alarms become
// recurring events with an RRULE, one-shot alarms become single events at
// their scheduled date. Disabled alarms are marked CANCELLED so they survive
// a round trip without silently re-enabling.
func Export(w io.Writer, alarms []models.Alarm, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//borgmon//weekday-alarm//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")

	for _, a := range alarms {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, a.ID)
		event.Props.SetText(ical.PropSummary, a.Label)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, exportStart(a, now))

		if a.RepeatsWeekly {
			event.Props.SetText(ical.PropRecurrenceRule,
				fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", byDayCodes[a.Weekday]))
		}

		status := "CONFIRMED"
		if !a.IsEnabled {
			status = "CANCELLED"
		}
		event.Props.SetText(ical.PropStatus, status)
		event.Props.SetText(PropAlarmSound, string(a.Sound))

		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}

func exportStart(a models.Alarm, now time.Time) time.Time {
	if !a.RepeatsWeekly && a.ScheduledDate != nil {
		return *a.ScheduledDate
	}
	if next, err := trigger.Next(a.Time, a.Weekday, now); err == nil {
		return next
	}
	return a.Time
}
