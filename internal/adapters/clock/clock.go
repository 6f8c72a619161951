// Package clock provides the current time behind a test seam
package clock

import (
	"time"

	"todoapi/internal/platform/seam"
)

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// Func adapts a function to Clock
type Func func() time.Time

// Now calls f
func (f Func) Now() time.Time { return f() }

// System reads the wall clock
var System Clock = Func(time.Now)

// Fixed is a Clock stuck at one instant
type Fixed time.Time

// Now returns the fixed instant
func (f Fixed) Now() time.Time { return time.Time(f) }

// NewDependency registers the "date" seam on env backed by System
func NewDependency(env *seam.Env) *seam.Dependency[Clock] {
	return seam.New(env, "date", System)
}
