// Package audit records who changed what, one line per event
package audit

import (
	"context"
	"fmt"

	"todoapi/internal/adapters/auditfile"
	"todoapi/internal/adapters/clock"
	"todoapi/internal/platform/logger"
	"todoapi/internal/platform/seam"
	ptime "todoapi/internal/platform/time"
)

// Logger is what route handlers write audit events to
type Logger interface {
	Log(ctx context.Context, message string) error
}

// Deps are the seams an AuditLog writes through
type Deps struct {
	Clock *seam.Dependency[clock.Clock]
	File  *seam.Dependency[auditfile.File]
}

// AuditLog writes "<timestamp> <source ip>: <message>" lines
type AuditLog struct {
	sourceIP string
	deps     Deps
}

// New returns an AuditLog attributing events to sourceIP
func New(sourceIP string, deps Deps) *AuditLog {
	return &AuditLog{sourceIP: sourceIP, deps: deps}
}

// Log appends one line to the audit file
func (a *AuditLog) Log(ctx context.Context, message string) error {
	c, err := a.deps.Clock.Impl()
	if err != nil {
		return err
	}
	f, err := a.deps.File.Impl()
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s %s: %s\n", ptime.ISO(c.Now()), a.sourceIP, message)
	if err := f.Append(ctx, line); err != nil {
		return err
	}
	logger.C(ctx).Debug().Str("source_ip", a.sourceIP).Str("message", message).Msg("audit")
	return nil
}
