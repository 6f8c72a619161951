package http

import (
	"context"
	stdhttp "net/http"

	"todoapi/internal/modkit/httpkit"
	perr "todoapi/internal/platform/errors"
	pnet "todoapi/internal/platform/net"
	"todoapi/internal/platform/seam"
	"todoapi/internal/services/audit"
)

// Tools is the per-request bundle handlers receive
type Tools struct {
	AuditLog audit.Logger
}

// ToolsFactory builds Tools. Emulated requests pass a nil *http.Request
type ToolsFactory interface {
	InitTools(r *stdhttp.Request) (Tools, error)
}

// LiveTools attributes audit events to the caller's address
type LiveTools struct {
	Audit audit.Deps
}

// InitTools builds an audit log for r. There is no real caller behind an
// emulated request, so tests must substitute the factory
func (l LiveTools) InitTools(r *stdhttp.Request) (Tools, error) {
	if r == nil {
		return Tools{}, perr.Misusef("An emulated request was made without substitute tools being defined.")
	}
	return Tools{AuditLog: audit.New(pnet.ClientIP(r), l.Audit)}, nil
}

// NewToolsDependency registers the "routeTools" seam on env
func NewToolsDependency(env *seam.Env, real ToolsFactory) *seam.Dependency[ToolsFactory] {
	return seam.New(env, "routeTools", real)
}

// RouterOptions derives live tools from the request and emulated tools from
// the seam alone
func RouterOptions(tools *seam.Dependency[ToolsFactory], base httpkit.Options[Tools]) httpkit.Options[Tools] {
	base.DeriveTools = func(r *stdhttp.Request) (Tools, error) {
		f, err := tools.Impl()
		if err != nil {
			return Tools{}, err
		}
		return f.InitTools(r)
	}
	base.ProvideTools = func(context.Context) (Tools, error) {
		f, err := tools.Impl()
		if err != nil {
			return Tools{}, err
		}
		return f.InitTools(nil)
	}
	return base
}

// ToolsFake hands every request the same in-memory audit log
type ToolsFake struct {
	AuditLog *audit.Fake
}

// NewToolsFake returns a ToolsFake with an empty audit log
func NewToolsFake() *ToolsFake { return &ToolsFake{AuditLog: &audit.Fake{}} }

// InitTools ignores the request
func (f *ToolsFake) InitTools(*stdhttp.Request) (Tools, error) {
	return Tools{AuditLog: f.AuditLog}, nil
}

// AuditLogContents reads the fake audit log of the active stand-in
func AuditLogContents(tools *seam.Dependency[ToolsFactory]) (string, error) {
	f, ok := tools.GetReplacement()
	if !ok {
		return "", perr.Misusef("routeTools has no stand-in")
	}
	fake, ok := f.(*ToolsFake)
	if !ok {
		return "", perr.Misusef("routeTools stand-in is %T, not *ToolsFake", f)
	}
	return fake.AuditLog.Contents(), nil
}
