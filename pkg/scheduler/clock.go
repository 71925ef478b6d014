package scheduler

import "time"

// Clock supplies the current instant. Injected so rollover and expiry
// behavior is deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
