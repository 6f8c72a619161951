// Package module wires todo items into HTTP via modkit
package module

import (
	"context"

	"todoapi/internal/adapters/auditfile"
	"todoapi/internal/adapters/clock"
	"todoapi/internal/modkit"
	"todoapi/internal/modkit/httpkit"
	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"
	"todoapi/internal/platform/seam"
	"todoapi/internal/platform/strings"
	"todoapi/internal/services/audit"
	"todoapi/internal/services/todos/domain"
	todoshttp "todoapi/internal/services/todos/http"
	"todoapi/internal/services/todos/repo"
	"todoapi/internal/services/todos/service"
)

// Seams are the module's swappable collaborators
type Seams struct {
	Clock     *seam.Dependency[clock.Clock]
	AuditFile *seam.Dependency[auditfile.File]
	Repos     *seam.Dependency[domain.Repository]
	Tools     *seam.Dependency[todoshttp.ToolsFactory]
}

// Module implements the todos module
type Module struct {
	name  string
	seams Seams

	router *httpkit.Router[todoshttp.Tools]
}

var _ modkit.Module = (*Module)(nil)

// New constructs the todos module and registers its routes
func New(deps modkit.Deps, opts ...Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("todos")}, opts...)...)

	if deps.PG == nil && deps.Env.Mode() != seam.ModeUnit {
		return nil, perr.Misusef("todos: postgres is required outside unit tests")
	}

	path := deps.Cfg.Prefix("TODO_API_").MayString("AUDIT_LOG_PATH", auditfile.DefaultPath)
	s := Seams{
		Clock:     clock.NewDependency(deps.Env),
		AuditFile: auditfile.NewDependency(deps.Env, auditfile.NewDisk(path)),
		Repos:     repo.NewDependency(deps.Env, deps.PG),
	}
	s.Tools = todoshttp.NewToolsDependency(deps.Env, todoshttp.LiveTools{
		Audit: audit.Deps{Clock: s.Clock, File: s.AuditFile},
	})

	r := httpkit.NewRouter(todoshttp.RouterOptions(s.Tools, modkit.RouterOptions[todoshttp.Tools](b)))
	if err := todoshttp.Register(r, service.New(s.Repos)); err != nil {
		return nil, err
	}

	m := &Module{name: b.Name, seams: s, router: r}
	logger.Named("todos").Debug().Strs("routes", r.Patterns()).Msg("module ready")
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Seams returns the module's test seams
func (m *Module) Seams() Seams { return m.seams }

// Router returns the module router, tests emulate requests against it
func (m *Module) Router() *httpkit.Router[todoshttp.Tools] { return m.router }

// Patterns lists the registered routes
func (m *Module) Patterns() []string { return m.router.Patterns() }

// StartListening serves the todo routes on addr
func (m *Module) StartListening(addr string) error { return m.router.StartListening(addr) }

// StopListening shuts the listener down
func (m *Module) StopListening(ctx context.Context) error { return m.router.StopListening(ctx) }

// Addr returns the bound address
func (m *Module) Addr() string { return m.router.Addr() }
