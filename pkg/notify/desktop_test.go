package notify

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/weekday-alarm/pkg/models"
)

// 2026-03-02 12:00 is a Monday.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

func newTestService(t *testing.T) *DesktopService {
	t.Helper()
	s := NewDesktopService(test.NewApp(), nil)
	s.now = func() time.Time { return testNow }
	return s
}

func weeklyAlarm(weekday int) *models.Alarm {
	return models.NewAlarm(time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local),
		"Morning", weekday, models.SoundAlarm, true)
}

func TestScheduleRequiresAuthorization(t *testing.T) {
	s := newTestService(t)

	assert.Equal(t, StatusNotDetermined, s.AuthorizationStatus())
	assert.ErrorIs(t, s.Schedule(weeklyAlarm(2)), ErrNotAuthorized)
	assert.Empty(t, s.Pending())
}

func TestRequestAuthorizationGrantsAndPersists(t *testing.T) {
	s := newTestService(t)

	granted, err := s.RequestAuthorization()
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, StatusAuthorized, s.AuthorizationStatus())
	assert.True(t, s.AuthorizationStatus().Granted())
}

func TestScheduleRegistersSingleTimerPerAlarm(t *testing.T) {
	s := newTestService(t)
	_, err := s.RequestAuthorization()
	require.NoError(t, err)

	a := weeklyAlarm(4)
	require.NoError(t, s.Schedule(a))
	require.NoError(t, s.Schedule(a), "re-scheduling replaces, never duplicates")

	assert.Equal(t, []string{a.ID}, s.Pending())

	at, ok := s.NextFireTime(a.ID)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 4, 7, 30, 0, 0, time.Local), at)
}

func TestScheduleOneShotUsesCachedDate(t *testing.T) {
	s := newTestService(t)
	_, err := s.RequestAuthorization()
	require.NoError(t, err)

	a := weeklyAlarm(2)
	a.RepeatsWeekly = false
	date := testNow.Add(30 * time.Hour)
	a.ScheduledDate = &date

	require.NoError(t, s.Schedule(a))
	at, ok := s.NextFireTime(a.ID)
	require.True(t, ok)
	assert.Equal(t, date, at)
}

func TestScheduleExpiredOneShotFails(t *testing.T) {
	s := newTestService(t)
	_, err := s.RequestAuthorization()
	require.NoError(t, err)

	a := weeklyAlarm(2)
	a.RepeatsWeekly = false
	stale := testNow.Add(-time.Hour)
	a.ScheduledDate = &stale

	assert.ErrorIs(t, s.Schedule(a), ErrInvalidTriggerDate)
	assert.Empty(t, s.Pending())
}

func TestCancelIsIdempotent(t *testing.T) {
	s := newTestService(t)
	_, err := s.RequestAuthorization()
	require.NoError(t, err)

	a := weeklyAlarm(5)
	require.NoError(t, s.Schedule(a))

	s.Cancel(a.ID)
	s.Cancel(a.ID)
	s.Cancel("no-such-id")
	s.CancelAll([]string{a.ID, "also-unknown"})

	assert.Empty(t, s.Pending())
	_, ok := s.NextFireTime(a.ID)
	assert.False(t, ok)
}

func TestFireMessageFollowsTimeLayout(t *testing.T) {
	s := newTestService(t)
	a := weeklyAlarm(2)

	assert.Equal(t, "It's 7:30 AM", fireMessage(*a, s.timeLayout))

	s.SetTimeLayout("15:04")
	assert.Equal(t, "It's 07:30", fireMessage(*a, s.timeLayout))
}

func TestPendingOrderedByFireTime(t *testing.T) {
	s := newTestService(t)
	_, err := s.RequestAuthorization()
	require.NoError(t, err)

	later := weeklyAlarm(1)  // next Sunday
	sooner := weeklyAlarm(3) // tomorrow
	require.NoError(t, s.Schedule(later))
	require.NoError(t, s.Schedule(sooner))

	assert.Equal(t, []string{sooner.ID, later.ID}, s.Pending())
}
