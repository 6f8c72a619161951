package repokit

import (
	"context"
	"time"

	perr "todoapi/internal/platform/errors"
)

// Guarder reports whether a backend is ready, *store.Store is one
type Guarder interface {
	Guard(context.Context) error
}

// defaultGuardTimeout bounds the check when the caller's ctx has no deadline
const defaultGuardTimeout = 5 * time.Second

// MustGuard checks g at startup and panics when it is missing or not ready
func MustGuard(ctx context.Context, name string, g Guarder) {
	if g == nil {
		panic(perr.Misusef("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultGuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s is not ready", name))
	}
}
