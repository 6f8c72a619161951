package modkit

import "context"

// Module is the common surface for API modules as seen by a binary
// keep this tiny so modules stay decoupled
type Module interface {
	// Name returns the module name
	Name() string
	// Patterns lists the registered routes as "METHOD /pattern"
	Patterns() []string

	// StartListening serves the module routes on addr in the background
	StartListening(addr string) error
	// StopListening shuts the listener down gracefully
	StopListening(ctx context.Context) error
	// Addr returns the bound address, or "" when not listening
	Addr() string
}

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) and may delegate to this pattern
type Builder func(Deps, ...Option) (Module, error)
