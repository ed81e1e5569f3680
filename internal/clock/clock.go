// Package clock abstracts time so window and attempt logic can be
// tested deterministically.
package clock

import "time"

// Clock supplies the current instant. Implementations must return UTC.
type Clock interface {
	Now() time.Time
}

// System is the production clock.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a clock frozen at a single instant, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the frozen instant in UTC.
func (f Fixed) Now() time.Time {
	return f.T.UTC()
}
