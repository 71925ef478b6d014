package calendar

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/borgmon/weekday-alarm/pkg/models"
)

// byDayWeekdays is the reverse of byDayCodes.
var byDayWeekdays = map[string]int{
	"SU": 1, "MO": 2, "TU": 3, "WE": 4, "TH": 5, "FR": 6, "SA": 7,
}

// Import reads a VCALENDAR stream and returns the alarms it describes.
// Events whose UID is already present in existing are skipped, as are
// duplicate UIDs within the stream itself, so importing the same file twice
// is harmless.
func Import(r io.Reader, existing map[string]bool) ([]*models.Alarm, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar data: %w", err)
	}
	bodyStr := string(body)

	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))
	var alarms []*models.Alarm
	seen := make(map[string]bool)
	skipped := 0

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			a, err := parseAlarmEvent(comp)
			if err != nil {
				log.Printf("Skipping event: %v", err)
				skipped++
				continue
			}
			if seen[a.ID] || existing[a.ID] {
				skipped++
				continue
			}
			seen[a.ID] = true
			alarms = append(alarms, a)
		}
	}

	if skipped > 0 {
		log.Printf("Import skipped %d event(s) (duplicates or unparseable)", skipped)
	}

	return alarms, nil
}

func parseAlarmEvent(comp *ical.Component) (*models.Alarm, error) {
	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return nil, fmt.Errorf("event has no DTSTART")
	}
	start, err := parseDateTimeProperty(startProp)
	if err != nil {
		return nil, err
	}

	a := &models.Alarm{
		Time:      start,
		IsEnabled: true,
		Weekday:   int(start.Weekday()) + 1,
		Sound:     models.DefaultSound,
	}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		a.ID = uidProp.Value
	}
	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		a.Label = summaryProp.Value
	}
	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil && statusProp.Value == "CANCELLED" {
		a.IsEnabled = false
	}
	if soundProp := comp.Props.Get(PropAlarmSound); soundProp != nil {
		a.Sound = models.ParseSound(soundProp.Value)
	}

	if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
		a.RepeatsWeekly = true
		if wd, ok := parseByDay(rruleProp.Value); ok {
			a.Weekday = wd
		}
	} else {
		scheduled := start
		a.ScheduledDate = &scheduled
	}

	a.Normalize()
	return a, nil
}

// parseByDay extracts the first BYDAY weekday from a weekly RRULE.
func parseByDay(rule string) (int, bool) {
	for _, part := range strings.Split(rule, ";") {
		if !strings.HasPrefix(part, "BYDAY=") {
			continue
		}
		days := strings.Split(strings.TrimPrefix(part, "BYDAY="), ",")
		if len(days) == 0 {
			return 0, false
		}
		wd, ok := byDayWeekdays[strings.TrimSpace(days[0])]
		return wd, ok
	}
	return 0, false
}

func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), nil
	}

	value := prop.Value
	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}

func validateICalFormat(bodyStr string) error {
	upperBody := strings.ToUpper(strings.TrimSpace(bodyStr))
	if strings.HasPrefix(upperBody, "<!DOCTYPE") || strings.HasPrefix(upperBody, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data")
	}

	if !strings.HasPrefix(strings.TrimSpace(bodyStr), "BEGIN:VCALENDAR") {
		previewLen := 100
		if len(bodyStr) < previewLen {
			previewLen = len(bodyStr)
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s",
			strings.TrimSpace(bodyStr[:previewLen]))
	}

	return nil
}
