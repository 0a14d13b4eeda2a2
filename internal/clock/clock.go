package clock

import "time"

// Clock is the time capability injected into every service so that "today"
// is an explicit input to renewal arithmetic rather than an ambient read of
// the wall clock. Tests pin it; New returns the system clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// New returns a Clock backed by the system clock, in UTC.
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}
