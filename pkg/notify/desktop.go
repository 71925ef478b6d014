package notify

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/trigger"
)

const authorizationKey = "notification_authorization"

// FireHandler is invoked when an armed alarm reaches its trigger instant.
type FireHandler func(alarm models.Alarm)

// DesktopService keeps one in-process timer per scheduled alarm and delivers
// a system notification plus the fire callback when a timer expires.
// Recurring alarms re-arm themselves for the following week after firing.
type DesktopService struct {
	app    fyne.App
	onFire FireHandler
	now    func() time.Time

	mu         sync.Mutex
	timers     map[string]*armedTimer
	timeLayout string
}

type armedTimer struct {
	timer *time.Timer
	alarm models.Alarm
	at    time.Time
}

func NewDesktopService(app fyne.App, onFire FireHandler) *DesktopService {
	return &DesktopService{
		app:        app,
		onFire:     onFire,
		now:        time.Now,
		timers:     make(map[string]*armedTimer),
		timeLayout: "3:04 PM",
	}
}

func (s *DesktopService) AuthorizationStatus() AuthorizationStatus {
	switch s.app.Preferences().String(authorizationKey) {
	case "authorized":
		return StatusAuthorized
	case "provisional":
		return StatusProvisional
	case "denied":
		return StatusDenied
	default:
		return StatusNotDetermined
	}
}

// RequestAuthorization records consent. Desktop sessions have no OS prompt,
// so the first request grants; the recorded status keeps the permission flow
// identical to platforms that do prompt.
func (s *DesktopService) RequestAuthorization() (bool, error) {
	if s.AuthorizationStatus() == StatusDenied {
		return false, nil
	}
	s.app.Preferences().SetString(authorizationKey, "authorized")
	return true, nil
}

func (s *DesktopService) Schedule(a *models.Alarm) error {
	if !s.AuthorizationStatus().Granted() {
		return ErrNotAuthorized
	}

	now := s.now()
	at, err := s.triggerTime(a, now)
	if err != nil {
		return err
	}

	alarm := *a
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(alarm.ID)
	s.timers[alarm.ID] = &armedTimer{
		alarm: alarm,
		at:    at,
		timer: time.AfterFunc(at.Sub(now), func() { s.fire(alarm.ID) }),
	}
	log.Printf("Armed %q (%s) for %s", alarm.Label, alarm.ID, at.Format(time.RFC3339))
	return nil
}

func (s *DesktopService) triggerTime(a *models.Alarm, now time.Time) (time.Time, error) {
	if !a.RepeatsWeekly && a.ScheduledDate != nil {
		// The cached one-shot instant is authoritative; a stale one means the
		// alarm already fired and should have been disabled by reconciliation.
		if a.ScheduledDate.After(now) {
			return *a.ScheduledDate, nil
		}
		return time.Time{}, ErrInvalidTriggerDate
	}

	at, err := trigger.Next(a.Time, a.Weekday, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTriggerDate, err)
	}
	return at, nil
}

func (s *DesktopService) fire(id string) {
	s.mu.Lock()
	armed, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	alarm := armed.alarm

	if alarm.RepeatsWeekly {
		now := s.now()
		if next, err := trigger.Next(alarm.Time, alarm.Weekday, now); err == nil {
			armed.at = next
			armed.timer = time.AfterFunc(next.Sub(now), func() { s.fire(id) })
		} else {
			log.Printf("Failed to re-arm %q: %v", alarm.Label, err)
			delete(s.timers, id)
		}
	} else {
		delete(s.timers, id)
	}
	layout := s.timeLayout
	s.mu.Unlock()

	s.app.SendNotification(fyne.NewNotification(alarm.Label, fireMessage(alarm, layout)))

	if s.onFire != nil {
		s.onFire(alarm)
	}
}

func fireMessage(alarm models.Alarm, layout string) string {
	return "It's " + alarm.Time.Format(layout)
}

// SetTimeLayout sets the clock layout used in fire notifications, so they
// follow the 12/24-hour preference.
func (s *DesktopService) SetTimeLayout(layout string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeLayout = layout
}

func (s *DesktopService) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

func (s *DesktopService) CancelAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.cancelLocked(id)
	}
}

func (s *DesktopService) cancelLocked(id string) {
	if armed, ok := s.timers[id]; ok {
		armed.timer.Stop()
		delete(s.timers, id)
	}
}

// Pending returns the IDs of all currently armed alarms, ordered by fire time.
func (s *DesktopService) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.timers[ids[i]].at.Before(s.timers[ids[j]].at)
	})
	return ids
}

// NextFireTime reports when the given alarm will ring, if it is armed.
func (s *DesktopService) NextFireTime(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	armed, ok := s.timers[id]
	if !ok {
		return time.Time{}, false
	}
	return armed.at, true
}
