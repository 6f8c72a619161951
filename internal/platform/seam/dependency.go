package seam

import (
	"context"
	"sync"

	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Hook runs before a real implementation is exercised under test
type Hook func(ctx context.Context) error

// behavior is the per-test decision, nil means default
type behavior[T any] struct {
	standIn    T
	hasStandIn bool
	useReal    bool
}

// Dependency routes calls on a collaborator T through the active behavior
type Dependency[T any] struct {
	env  *Env
	name string
	real T

	mu    sync.RWMutex
	cur   *behavior[T]
	hooks []Hook
}

// ReplaceOption tweaks ReplaceWith
type ReplaceOption func(*replaceOptions)

type replaceOptions struct{ force bool }

// WithForce makes the stand-in take effect in integration mode too
func WithForce() ReplaceOption { return func(o *replaceOptions) { o.force = true } }

// New registers a dependency named name on env with its real implementation
func New[T any](env *Env, name string, real T) *Dependency[T] {
	d := &Dependency[T]{env: env, name: name, real: real}
	env.register(d)
	return d
}

// Name returns the dependency name
func (d *Dependency[T]) Name() string { return d.name }

// BeforeUsedInTests registers a hook that runs before the real
// implementation is used by a test. Hooks run concurrently and are all awaited
func (d *Dependency[T]) BeforeUsedInTests(h Hook) {
	d.mu.Lock()
	d.hooks = append(d.hooks, h)
	d.mu.Unlock()
}

// Impl returns the implementation a call should go through right now
func (d *Dependency[T]) Impl() (T, error) {
	d.mu.RLock()
	b := d.cur
	d.mu.RUnlock()

	switch {
	case b == nil:
		if d.env.Mode() != ModeUnset {
			var zero T
			return zero, perr.Misusef(
				"No behavior was associated with the dependency %q. Please use <dependency>.replaceWith() or <dependency>.permitUse().",
				d.name,
			)
		}
		return d.real, nil
	case b.useReal:
		return d.real, nil
	default:
		return b.standIn, nil
	}
}

// MustImpl is Impl for synchronous call sites that cannot return an error
// It panics with the misuse error
func (d *Dependency[T]) MustImpl() T {
	impl, err := d.Impl()
	if err != nil {
		panic(err)
	}
	return impl
}

// ReplaceWith installs standIn for the current test. In unit mode, or when
// forced, calls go to standIn. In integration mode calls keep going to the
// real implementation after the before-used hooks have run
func (d *Dependency[T]) ReplaceWith(ctx context.Context, standIn T, opts ...ReplaceOption) error {
	var o replaceOptions
	for _, fn := range opts {
		fn(&o)
	}

	mode := d.env.Mode()
	if mode != ModeUnit && mode != ModeIntegration {
		return perr.Misusef("dependency %q: replaceWith() requires unit or integration test mode", d.name)
	}
	if err := d.guardUnset(); err != nil {
		return err
	}

	useReal := mode == ModeIntegration && !o.force
	if useReal {
		if err := d.runHooks(ctx); err != nil {
			return err
		}
	}
	if err := d.set(&behavior[T]{standIn: standIn, hasStandIn: true, useReal: useReal}); err != nil {
		return err
	}
	logger.Named("seam").Debug().
		Str("dependency", d.name).
		Bool("real", useReal).
		Msg("replacement installed")
	return nil
}

// PermitUse runs the before-used hooks then lets calls reach the real implementation
func (d *Dependency[T]) PermitUse(ctx context.Context) error {
	if err := d.guardUnset(); err != nil {
		return err
	}
	if err := d.runHooks(ctx); err != nil {
		return err
	}
	if err := d.set(&behavior[T]{useReal: true}); err != nil {
		return err
	}
	logger.Named("seam").Debug().Str("dependency", d.name).Msg("real use permitted")
	return nil
}

// Reset restores the default behavior
func (d *Dependency[T]) Reset() {
	d.mu.Lock()
	d.cur = nil
	d.mu.Unlock()
}

// GetReplacement returns the stand-in given to ReplaceWith, if any
func (d *Dependency[T]) GetReplacement() (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.cur == nil || !d.cur.hasStandIn {
		var zero T
		return zero, false
	}
	return d.cur.standIn, true
}

func (d *Dependency[T]) guardUnset() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.cur != nil {
		return d.doubleSet()
	}
	return nil
}

func (d *Dependency[T]) set(b *behavior[T]) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cur != nil {
		return d.doubleSet()
	}
	d.cur = b
	return nil
}

func (d *Dependency[T]) doubleSet() error {
	return perr.Misusef(
		"The dependency %q already has behavior associated with it for this test. (Maybe you forgot to call reset() between tests?)",
		d.name,
	)
}

// runHooks spawns every hook and waits for all of them
func (d *Dependency[T]) runHooks(ctx context.Context) error {
	d.mu.RLock()
	hooks := append([]Hook(nil), d.hooks...)
	d.mu.RUnlock()
	if len(hooks) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, h := range hooks {
		g.Go(func() error { return h(gctx) })
	}
	if err := g.Wait(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "dependency %q: before-used hook failed", d.name)
	}
	return nil
}
