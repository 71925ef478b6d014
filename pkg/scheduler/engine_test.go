package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/notify"
)

// fakeNotifier records every call so tests can assert on the exact traffic
// the engine and controller produce.
type fakeNotifier struct {
	mu           sync.Mutex
	status       notify.AuthorizationStatus
	requestErr   error
	denyRequests bool
	scheduleErr  error
	scheduled    []string
	cancelled    []string
	batchCancels [][]string
}

func (f *fakeNotifier) AuthorizationStatus() notify.AuthorizationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeNotifier) RequestAuthorization() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requestErr != nil {
		return false, f.requestErr
	}
	if f.denyRequests {
		f.status = notify.StatusDenied
		return false, nil
	}
	f.status = notify.StatusAuthorized
	return true, nil
}

func (f *fakeNotifier) Schedule(a *models.Alarm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.status.Granted() {
		return notify.ErrNotAuthorized
	}
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.scheduled = append(f.scheduled, a.ID)
	return nil
}

func (f *fakeNotifier) Cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
}

func (f *fakeNotifier) CancelAll(ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCancels = append(f.batchCancels, ids)
}

func (f *fakeNotifier) scheduledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scheduled...)
}

func (f *fakeNotifier) cancelledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cancelled...)
}

// 2026-03-02 12:00 is a Monday.
var engineNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

func oneShot(label string, scheduled *time.Time, enabled bool) *models.Alarm {
	a := models.NewAlarm(time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local), label, 3, models.SoundAlarm, false)
	a.IsEnabled = enabled
	a.ScheduledDate = scheduled
	return a
}

func TestReconcileExpiresFiredOneShot(t *testing.T) {
	notifier := &fakeNotifier{status: notify.StatusAuthorized}
	engine := NewEngine(notifier)

	past := engineNow.Add(-time.Hour)
	a := oneShot("Expired", &past, true)

	changed := engine.ReconcileOneShots([]*models.Alarm{a}, engineNow)

	assert.True(t, changed)
	assert.False(t, a.IsEnabled)
	assert.Equal(t, []string{a.ID}, notifier.cancelledIDs())
}

func TestReconcileFillsMissingScheduledDate(t *testing.T) {
	notifier := &fakeNotifier{status: notify.StatusAuthorized}
	engine := NewEngine(notifier)

	a := oneShot("Fresh", nil, true)
	changed := engine.ReconcileOneShots([]*models.Alarm{a}, engineNow)

	assert.True(t, changed)
	assert.True(t, a.IsEnabled)
	if assert.NotNil(t, a.ScheduledDate) {
		// Next Tuesday 07:00 after Monday noon.
		assert.Equal(t, time.Date(2026, 3, 3, 7, 0, 0, 0, time.Local), *a.ScheduledDate)
	}
	assert.Empty(t, notifier.cancelledIDs())
}

func TestReconcileLeavesOthersAlone(t *testing.T) {
	notifier := &fakeNotifier{status: notify.StatusAuthorized}
	engine := NewEngine(notifier)

	weekly := models.NewAlarm(time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local), "Weekly", 2, models.SoundBell, true)
	past := engineNow.Add(-time.Hour)
	disabled := oneShot("Off", &past, false)
	future := engineNow.Add(48 * time.Hour)
	pending := oneShot("Pending", &future, true)

	changed := engine.ReconcileOneShots([]*models.Alarm{weekly, disabled, pending}, engineNow)

	assert.False(t, changed)
	assert.True(t, weekly.IsEnabled)
	assert.True(t, pending.IsEnabled)
	assert.Equal(t, future, *pending.ScheduledDate)
	assert.Empty(t, notifier.cancelledIDs())
}

func TestRearmAllReportsFailures(t *testing.T) {
	notifier := &fakeNotifier{status: notify.StatusAuthorized, scheduleErr: notify.ErrInvalidTriggerDate}
	engine := NewEngine(notifier)

	a := models.NewAlarm(time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local), "A", 2, models.SoundAlarm, true)
	off := models.NewAlarm(time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local), "B", 3, models.SoundAlarm, true)
	off.IsEnabled = false

	failed := engine.RearmAll([]*models.Alarm{a, off})

	assert.Equal(t, []string{a.ID}, failed)
}
