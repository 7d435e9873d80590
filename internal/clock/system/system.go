// Package system is the wall-clock implementation of crawler.Clock.
package system

import "time"

// Clock reads the real time, always in UTC.
type Clock struct{}

// New returns a real Clock.
func New() *Clock {
	return &Clock{}
}

// Now reports the current UTC time.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
