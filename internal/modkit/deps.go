// Package modkit provides module wiring and core deps
package modkit

import (
	"todoapi/internal/platform/config"
	"todoapi/internal/platform/seam"
	"todoapi/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Cfg config.Conf
	PG  store.TxRunner
	// Env carries the test mode every seam.Dependency of the module registers on
	Env *seam.Env
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
