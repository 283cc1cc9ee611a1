package clock

import "time"

// Clock abstracts the passage of time so retry waits can be faked in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type SystemClock struct{}

func NewSystemClock() Clock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

func (c *SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
