// Package clock abstracts time retrieval so time-dependent logic is
// deterministic in tests.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real returns the actual current time.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }
