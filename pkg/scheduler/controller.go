package scheduler

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/borgmon/weekday-alarm/pkg/models"
	"github.com/borgmon/weekday-alarm/pkg/notify"
	"github.com/borgmon/weekday-alarm/pkg/store"
	"github.com/borgmon/weekday-alarm/pkg/trigger"
)

// Controller is the single writer of the alarm list. Every mutation is
// serialized through its mutex; arm requests run asynchronously and the list
// is persisted optimistically before their outcome is known. A failed arm
// request triggers a compensating demote (disable + persist + advisory), so
// the durable state can briefly diverge from the truly-armed state for one
// async round trip.
type Controller struct {
	repo     store.Repository
	notifier notify.Service
	engine   *Engine
	clock    Clock

	// OnAdvisory receives non-fatal, user-visible status messages.
	OnAdvisory func(msg string)
	// OnChange fires after any visible change to the list or permission status.
	OnChange func()

	mu     sync.Mutex
	alarms []*models.Alarm
	status notify.AuthorizationStatus

	arming sync.WaitGroup
}

func NewController(repo store.Repository, notifier notify.Service, clock Clock) *Controller {
	return &Controller{
		repo:     repo,
		notifier: notifier,
		engine:   NewEngine(notifier),
		clock:    clock,
	}
}

// Alarms returns a snapshot of the current list in display order.
func (c *Controller) Alarms() []models.Alarm {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Alarm, len(c.alarms))
	for i, a := range c.alarms {
		out[i] = *a
	}
	return out
}

// Status returns the last observed permission status.
func (c *Controller) Status() notify.AuthorizationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Resume reloads the persisted list, expires stale one-shot alarms, and
// refreshes the permission status. Called on startup and whenever the app
// returns to the foreground.
func (c *Controller) Resume() {
	c.mu.Lock()
	c.alarms = c.repo.Load()
	models.SortAlarms(c.alarms)

	if c.engine.ReconcileOneShots(c.alarms, c.clock.Now()) {
		models.SortAlarms(c.alarms)
		c.persistLocked()
	}
	c.status = c.notifier.AuthorizationStatus()
	c.mu.Unlock()

	c.notifyChange()
}

// Reconcile runs the one-shot expiry pass over the in-memory list, without
// reloading from storage. Called after an alarm rings.
func (c *Controller) Reconcile() {
	c.mu.Lock()
	changed := c.engine.ReconcileOneShots(c.alarms, c.clock.Now())
	if changed {
		models.SortAlarms(c.alarms)
		c.persistLocked()
	}
	c.mu.Unlock()

	if changed {
		c.notifyChange()
	}
}

// RequestPermissionIfNeeded asks for notification permission when it has not
// been decided yet, then re-arms every enabled alarm on grant.
func (c *Controller) RequestPermissionIfNeeded() {
	if c.Status().Granted() {
		c.RearmEnabled()
		return
	}

	c.arming.Add(1)
	go func() {
		defer c.arming.Done()

		granted, err := c.notifier.RequestAuthorization()
		c.mu.Lock()
		c.status = c.notifier.AuthorizationStatus()
		c.mu.Unlock()

		switch {
		case err != nil:
			c.advise(fmt.Sprintf("Failed to request notification permission: %v", err))
		case !granted:
			c.advise("Notifications were not allowed. You can still save alarms, but they won't ring until notifications are enabled.")
		default:
			c.RearmEnabled()
		}
		c.notifyChange()
	}()
}

// RearmEnabled re-issues arm requests for all enabled alarms and demotes the
// ones whose requests fail. Called after a permission grant and on startup
// when permission is already held, since in-process timers do not survive a
// restart.
func (c *Controller) RearmEnabled() {
	c.mu.Lock()
	failed := c.engine.RearmAll(c.alarms)
	for _, id := range failed {
		c.demoteLocked(id)
	}
	if len(failed) > 0 {
		c.persistLocked()
	}
	c.mu.Unlock()

	if len(failed) > 0 {
		c.advise(fmt.Sprintf("Couldn't schedule %d alarm(s); they have been turned off.", len(failed)))
		c.notifyChange()
	}
}

// Add creates a new alarm. Without notification permission the alarm is
// still saved, but disabled and announced with an advisory.
func (c *Controller) Add(t time.Time, label string, weekday int, sound models.Sound, repeatsWeekly bool) {
	c.Insert(models.NewAlarm(t, label, weekday, sound, repeatsWeekly))
}

// Insert adds a prepared alarm, keeping its identity and any cached one-shot
// instant. The import path relies on this: a re-imported alarm carries its
// original ID, so the duplicate guard recognizes it next time, and an
// exported one-shot rings at its exported instant rather than a recomputed
// one. The permission and demotion policy is the same as Add's.
func (c *Controller) Insert(a *models.Alarm) {
	a.Normalize()

	c.mu.Lock()
	if !a.RepeatsWeekly && a.ScheduledDate == nil {
		if next, err := trigger.Next(a.Time, a.Weekday, c.clock.Now()); err == nil {
			a.ScheduledDate = &next
		}
	}

	var advisory string
	if a.IsEnabled && !c.status.Granted() {
		a.IsEnabled = false
		advisory = "Alarm saved, but notifications are not enabled. Turn them on in Settings to activate alarms."
	}

	c.alarms = append(c.alarms, a)
	models.SortAlarms(c.alarms)
	c.persistLocked()
	enabled := a.IsEnabled
	armed := *a
	c.mu.Unlock()

	if advisory != "" {
		c.advise(advisory)
	}
	c.notifyChange()

	if enabled {
		c.armAsync(armed)
	}
}

// Update applies field changes to an existing alarm. The previous timer is
// cancelled unconditionally before re-arming under the new schedule.
func (c *Controller) Update(id string, t time.Time, label string, weekday int, sound models.Sound, repeatsWeekly bool) {
	c.notifier.Cancel(id)

	c.mu.Lock()
	a := c.findLocked(id)
	if a == nil {
		c.mu.Unlock()
		return
	}

	a.Time = t
	a.Label = label
	a.Weekday = weekday
	a.Sound = sound
	a.RepeatsWeekly = repeatsWeekly
	a.ScheduledDate = nil
	a.Normalize()
	if !repeatsWeekly {
		if next, err := trigger.Next(a.Time, a.Weekday, c.clock.Now()); err == nil {
			a.ScheduledDate = &next
		}
	}

	models.SortAlarms(c.alarms)
	c.persistLocked()
	enabled := a.IsEnabled
	armed := *a
	c.mu.Unlock()

	c.notifyChange()

	if enabled {
		c.armAsync(armed)
	}
}

// Toggle flips an alarm's enabled flag. Re-enabling a one-shot always
// schedules fresh from now; a stale cached date is never reused.
func (c *Controller) Toggle(id string, isEnabled bool) {
	c.mu.Lock()
	a := c.findLocked(id)
	if a == nil {
		c.mu.Unlock()
		return
	}

	a.IsEnabled = isEnabled
	if isEnabled && !a.RepeatsWeekly {
		a.ScheduledDate = nil
		if next, err := trigger.Next(a.Time, a.Weekday, c.clock.Now()); err == nil {
			a.ScheduledDate = &next
		}
	}

	c.persistLocked()
	armed := *a
	c.mu.Unlock()

	c.notifyChange()

	if isEnabled {
		c.armAsync(armed)
	} else {
		c.notifier.Cancel(id)
	}
}

// DeleteAt removes the alarms at the given display indices, cancelling their
// timers in one batched call. Indices are processed in descending order so
// earlier removals cannot invalidate later ones.
func (c *Controller) DeleteAt(indices []int) {
	c.mu.Lock()
	ids := make([]string, 0, len(indices))
	valid := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(c.alarms) {
			ids = append(ids, c.alarms[i].ID)
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		c.mu.Unlock()
		return
	}

	c.notifier.CancelAll(ids)

	sort.Sort(sort.Reverse(sort.IntSlice(valid)))
	for _, i := range valid {
		c.alarms = append(c.alarms[:i], c.alarms[i+1:]...)
	}
	c.persistLocked()
	c.mu.Unlock()

	c.notifyChange()
}

// Wait blocks until all in-flight arm requests have settled. Used on
// shutdown and by tests.
func (c *Controller) Wait() {
	c.arming.Wait()
}

func (c *Controller) armAsync(a models.Alarm) {
	c.arming.Add(1)
	go func() {
		defer c.arming.Done()
		if err := c.notifier.Schedule(&a); err != nil {
			c.handleSchedulingError(a.ID, err)
		}
	}()
}

// handleSchedulingError is the compensating step of the optimistic arm
// protocol: the alarm was already saved as enabled, so a failed arm request
// demotes it and persists again.
func (c *Controller) handleSchedulingError(id string, err error) {
	c.mu.Lock()
	demoted := c.demoteLocked(id)
	if demoted {
		c.persistLocked()
	}
	c.mu.Unlock()

	c.advise(fmt.Sprintf("Couldn't schedule alarm: %v", err))
	if demoted {
		c.notifyChange()
	}
}

func (c *Controller) demoteLocked(id string) bool {
	if a := c.findLocked(id); a != nil && a.IsEnabled {
		a.IsEnabled = false
		return true
	}
	return false
}

func (c *Controller) findLocked(id string) *models.Alarm {
	for _, a := range c.alarms {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (c *Controller) persistLocked() {
	if err := c.repo.Save(c.alarms); err != nil {
		// Persistence is best effort; the in-memory list stays authoritative
		// until the next successful save.
		log.Printf("Failed to save alarms: %v", err)
	}
}

func (c *Controller) advise(msg string) {
	log.Print(msg)
	if c.OnAdvisory != nil {
		c.OnAdvisory(msg)
	}
}

func (c *Controller) notifyChange() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
