// Package seam provides substitutable collaborators ("test seams")
//
// A Dependency wraps the real implementation of a collaborator interface.
// Outside of tests (ModeUnset) calls go straight to the real implementation.
// Under ModeUnit or ModeIntegration every Dependency must be told how to
// behave for the current test, via ReplaceWith or PermitUse, otherwise calls
// fail with a misuse error. Env.Setup resets every Dependency between tests
package seam

import (
	"strings"
	"sync"

	perr "todoapi/internal/platform/errors"
)

// Mode is the declared test mode of an Env
type Mode uint8

const (
	// ModeUnset means tests are not running, real implementations are used
	ModeUnset Mode = iota
	// ModeUnit swaps in stand-ins given to ReplaceWith
	ModeUnit
	// ModeIntegration keeps real implementations unless a replacement is forced
	ModeIntegration
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeUnit:
		return "unit"
	case ModeIntegration:
		return "integration"
	default:
		return "unset"
	}
}

// ParseMode maps "", "unit" and "integration" to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset":
		return ModeUnset, nil
	case "unit":
		return ModeUnit, nil
	case "integration":
		return ModeIntegration, nil
	default:
		return ModeUnset, perr.Misusef("unknown test mode %q", s)
	}
}

type resetter interface{ Reset() }

// Env is the execution context shared by a set of dependencies
// A nil *Env behaves as ModeUnset
type Env struct {
	mu   sync.RWMutex
	mode Mode
	deps []resetter
}

// NewEnv returns an Env in the given mode
func NewEnv(mode Mode) *Env { return &Env{mode: mode} }

// Mode returns the current test mode
func (e *Env) Mode() Mode {
	if e == nil {
		return ModeUnset
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// SetMode declares the test mode, only unit or integration are accepted
func (e *Env) SetMode(m Mode) error {
	if m != ModeUnit && m != ModeIntegration {
		return perr.Misusef("test mode must be unit or integration, got %s", m)
	}
	e.mu.Lock()
	e.mode = m
	e.mu.Unlock()
	return nil
}

// Setup resets every dependency registered on e, call it before each test
func (e *Env) Setup() {
	if e == nil {
		return
	}
	e.mu.RLock()
	deps := append([]resetter(nil), e.deps...)
	e.mu.RUnlock()
	for _, d := range deps {
		d.Reset()
	}
}

func (e *Env) register(d resetter) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.deps = append(e.deps, d)
	e.mu.Unlock()
}
