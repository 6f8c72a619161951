package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todoapi/internal/adapters/auditfile"
	"todoapi/internal/adapters/clock"
	"todoapi/internal/modkit/httpkit"
	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/seam"
	"todoapi/internal/services/audit"
	"todoapi/internal/services/todos/domain"
)

// brokenService fails every call the way a lost database would
type brokenService struct{}

var errDown = errors.New("database is down")

func (brokenService) List(context.Context) ([]domain.Todo, error) { return nil, errDown }
func (brokenService) Find(context.Context, int64) (domain.Details, bool, error) {
	return domain.Details{}, false, errDown
}
func (brokenService) Add(context.Context, audit.Logger, string) (int64, error) { return 0, errDown }
func (brokenService) Update(context.Context, audit.Logger, int64, string) (domain.Result, error) {
	return domain.ResultNotFound, errDown
}
func (brokenService) Delete(context.Context, audit.Logger, int64) (domain.Result, error) {
	return domain.ResultNotFound, errDown
}

func newRouter(t *testing.T, env *seam.Env) (*httpkit.Router[Tools], *seam.Dependency[ToolsFactory]) {
	t.Helper()
	tools := NewToolsDependency(env, LiveTools{})
	r := httpkit.NewRouter(RouterOptions(tools, httpkit.Options[Tools]{}))
	if err := Register(r, brokenService{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return r, tools
}

func TestHandlers_ServiceFailuresAreUnhandled(t *testing.T) {
	env := seam.NewEnv(seam.ModeUnit)
	r, tools := newRouter(t, env)
	if err := tools.ReplaceWith(context.Background(), NewToolsFake()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	reqs := []httpkit.EmulatedRequest{
		{Method: "GET", Path: "/todos"},
		{Method: "GET", Path: "/todos/1"},
		{Method: "POST", Path: "/todos", Body: `{"text":"x"}`, Headers: stdhttp.Header{"Content-Type": {"application/json"}}},
		{Method: "PUT", Path: "/todos/1", Body: `{"text":"x"}`, Headers: stdhttp.Header{"Content-Type": {"application/json"}}},
		{Method: "DELETE", Path: "/todos/1"},
	}
	for _, req := range reqs {
		_, err := r.EmulateRequest(context.Background(), req)
		if !errors.Is(err, errDown) {
			t.Fatalf("%s %s: want service error, got %v", req.Method, req.Path, err)
		}
		if _, ok := httpkit.AsHTTPError(err); ok {
			t.Fatalf("%s %s: unhandled failure surfaced as a response", req.Method, req.Path)
		}
	}
}

func TestHandlers_LiveFailureIs500(t *testing.T) {
	r, _ := newRouter(t, nil)
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := stdhttp.Get(srv.URL + "/todos")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != 500 {
		t.Fatalf("status = %d", res.StatusCode)
	}
}

func TestHandlers_ValidationBeforeService(t *testing.T) {
	env := seam.NewEnv(seam.ModeUnit)
	r, tools := newRouter(t, env)
	if err := tools.ReplaceWith(context.Background(), NewToolsFake()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	_, err := r.EmulateRequest(context.Background(), httpkit.EmulatedRequest{Method: "DELETE", Path: "/todos/abc"})
	he, ok := httpkit.AsHTTPError(err)
	if !ok || he.Response.StatusCode != 400 || he.Response.Body != msgBadID {
		t.Fatalf("want 400 bad id, got %v", err)
	}

	// text/plain bodies reach the handler as a raw string
	_, err = r.EmulateRequest(context.Background(), httpkit.EmulatedRequest{
		Method: "POST", Path: "/todos", Body: `{"text":"x"}`, Headers: stdhttp.Header{"Content-Type": {"text/plain"}},
	})
	he, ok = httpkit.AsHTTPError(err)
	if !ok || he.Response.StatusCode != 400 || he.Response.Body != msgBadText {
		t.Fatalf("want 400 bad text, got %v", err)
	}
}

func TestLiveTools_EmulatedRequestFails(t *testing.T) {
	_, err := LiveTools{}.InitTools(nil)
	if err == nil || err.Error() != "An emulated request was made without substitute tools being defined." {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLiveTools_AttributesToRemoteAddress(t *testing.T) {
	ctx := context.Background()
	env := seam.NewEnv(seam.ModeUnit)
	deps := audit.Deps{Clock: clock.NewDependency(env), File: auditfile.NewDependency(env, auditfile.NewDisk(""))}
	file := &auditfile.Fake{}
	if err := deps.Clock.ReplaceWith(ctx, clock.Fixed(time.Date(2000, 1, 2, 5, 6, 7, 0, time.UTC))); err != nil {
		t.Fatalf("replace clock: %v", err)
	}
	if err := deps.File.ReplaceWith(ctx, file); err != nil {
		t.Fatalf("replace file: %v", err)
	}

	req := httptest.NewRequest("POST", "/todos", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	tools, err := LiveTools{Audit: deps}.InitTools(req)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := tools.AuditLog.Log(ctx, "hello"); err != nil {
		t.Fatalf("log: %v", err)
	}
	if got, _ := file.Read(ctx); got != "2000-01-02T05:06:07.000Z 10.1.2.3: hello\n" {
		t.Fatalf("line = %q", got)
	}
}

func TestAuditLogContents_RequiresFake(t *testing.T) {
	env := seam.NewEnv(seam.ModeUnit)
	tools := NewToolsDependency(env, LiveTools{})
	if _, err := AuditLogContents(tools); !perr.IsCode(err, perr.ErrorCodeMisuse) {
		t.Fatalf("want misuse, got %v", err)
	}

	fake := NewToolsFake()
	if err := tools.ReplaceWith(context.Background(), fake); err != nil {
		t.Fatalf("replace: %v", err)
	}
	_ = fake.AuditLog.Log(context.Background(), "a")
	got, err := AuditLogContents(tools)
	if err != nil || got != "a" {
		t.Fatalf("got %q, %v", got, err)
	}
	if !strings.Contains(tools.Name(), "routeTools") {
		t.Fatalf("name = %q", tools.Name())
	}
}
