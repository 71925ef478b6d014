package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/weekday-alarm/pkg/models"
)

// 2026-03-02 12:00 is a Monday.
var calNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

func TestExportWeeklyAlarm(t *testing.T) {
	a := models.NewAlarm(time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local), "Workday", 2, models.SoundChimes, true)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []models.Alarm{*a}, calNow))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "UID:"+a.ID)
	assert.Contains(t, out, "SUMMARY:Workday")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=MO")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.Contains(t, out, "X-ALARM-SOUND:chimes")
}

func TestExportDisabledAlarmIsCancelled(t *testing.T) {
	a := models.NewAlarm(time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local), "Off", 2, models.SoundAlarm, true)
	a.IsEnabled = false

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []models.Alarm{*a}, calNow))

	assert.Contains(t, buf.String(), "STATUS:CANCELLED")
}

func TestRoundTrip(t *testing.T) {
	weekly := models.NewAlarm(time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local), "Workday", 6, models.SoundBell, true)
	scheduled := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	oneShot := models.NewAlarm(time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local), "Once", 4, models.SoundSoft, false)
	oneShot.ScheduledDate = &scheduled

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []models.Alarm{*weekly, *oneShot}, calNow))

	imported, err := Import(&buf, nil)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	byID := map[string]*models.Alarm{}
	for _, a := range imported {
		byID[a.ID] = a
	}

	w := byID[weekly.ID]
	require.NotNil(t, w)
	assert.Equal(t, "Workday", w.Label)
	assert.True(t, w.RepeatsWeekly)
	assert.Equal(t, 6, w.Weekday)
	assert.Equal(t, models.SoundBell, w.Sound)
	assert.Nil(t, w.ScheduledDate)

	o := byID[oneShot.ID]
	require.NotNil(t, o)
	assert.False(t, o.RepeatsWeekly)
	assert.Equal(t, 4, o.Weekday)
	require.NotNil(t, o.ScheduledDate)
	assert.Equal(t, scheduled, *o.ScheduledDate)
}

func TestImportSkipsExistingUIDs(t *testing.T) {
	a := models.NewAlarm(time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local), "Workday", 2, models.SoundAlarm, true)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []models.Alarm{*a}, calNow))

	imported, err := Import(&buf, map[string]bool{a.ID: true})
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestImportRejectsHTML(t *testing.T) {
	_, err := Import(strings.NewReader("<!DOCTYPE html><html></html>"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML")
}

func TestImportRejectsNonCalendarText(t *testing.T) {
	_, err := Import(strings.NewReader("hello world"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BEGIN:VCALENDAR")
}
