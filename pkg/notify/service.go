// Package notify arms and cancels the platform timers that make alarms ring.
package notify

import (
	"errors"

	"github.com/borgmon/weekday-alarm/pkg/models"
)

// AuthorizationStatus mirrors the notification permission model: alarms can
// be saved in any state, but only ring once the user has granted permission.
type AuthorizationStatus int

const (
	StatusNotDetermined AuthorizationStatus = iota
	StatusDenied
	StatusAuthorized
	StatusProvisional
)

// Granted reports whether scheduling is currently allowed.
func (s AuthorizationStatus) Granted() bool {
	return s == StatusAuthorized || s == StatusProvisional
}

func (s AuthorizationStatus) String() string {
	switch s {
	case StatusDenied:
		return "denied"
	case StatusAuthorized:
		return "authorized"
	case StatusProvisional:
		return "provisional"
	default:
		return "not determined"
	}
}

var (
	// ErrNotAuthorized is returned by Schedule when notifications are not allowed.
	ErrNotAuthorized = errors.New("notifications are not authorized")

	// ErrInvalidTriggerDate is returned when no valid trigger instant exists
	// for the alarm.
	ErrInvalidTriggerDate = errors.New("no valid trigger date for alarm")
)

// Service is the external timer subsystem contract. Cancel and CancelAll are
// idempotent no-ops for unknown IDs. Exactly one registration exists per
// scheduled alarm ID; re-scheduling replaces the previous registration.
type Service interface {
	AuthorizationStatus() AuthorizationStatus
	RequestAuthorization() (bool, error)
	Schedule(a *models.Alarm) error
	Cancel(id string)
	CancelAll(ids []string)
}
