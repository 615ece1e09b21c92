package ratelimit

import "time"

// Clock abstracts time so limiter tests can advance it manually.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
