package testkit

import (
	"sync"
	"testing"
)

// serial is held by tests that touch process-wide state: package-level
// function seams, a shared seam.Env or a live listener
var serial sync.Mutex

// Swap points target at replacement until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial blocks until no other Serial test is running
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
