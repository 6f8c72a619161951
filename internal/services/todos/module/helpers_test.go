package module

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"todoapi/internal/modkit/httpkit"
	"todoapi/internal/platform/seam"
	kit "todoapi/internal/platform/testkit"
	"todoapi/internal/services/todos/domain"
	todoshttp "todoapi/internal/services/todos/http"
	"todoapi/internal/services/todos/repo"
)

// setup starts a test cycle: seams go back to default and nothing runs alongside
func setup(t *testing.T) {
	t.Helper()
	kit.Serial(t)
	suite.env.Setup()
}

// initTodos swaps in a fake repository and forced fake tools, then saves initial items
func initTodos(t *testing.T, initial ...string) ([]int64, *todoshttp.ToolsFake) {
	t.Helper()
	setup(t)
	ctx := context.Background()
	seams := suite.mod.Seams()

	if err := seams.Repos.ReplaceWith(ctx, repo.NewFake()); err != nil {
		t.Fatalf("replace repos: %v", err)
	}
	tools := todoshttp.NewToolsFake()
	if err := seams.Tools.ReplaceWith(ctx, tools, seam.WithForce()); err != nil {
		t.Fatalf("replace tools: %v", err)
	}

	ids := make([]int64, 0, len(initial))
	for _, text := range initial {
		ids = append(ids, saveTodo(t, map[string]any{"text": text}))
	}
	tools.AuditLog.Reset()
	return ids, tools
}

func send(t *testing.T, method, path string, body any) (httpkit.Response, error) {
	t.Helper()
	var raw string
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		raw = string(b)
	}
	return suite.send.Send(context.Background(), httpkit.Req{Method: method, Path: path, Body: raw})
}

func mustSend(t *testing.T, method, path string, body any) httpkit.Response {
	t.Helper()
	res, err := send(t, method, path, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func itemPath(id string) string { return "/todos/" + url.PathEscape(id) }

func fetchAllTodos(t *testing.T) []domain.Todo {
	t.Helper()
	var out []domain.Todo
	decode(t, mustSend(t, "GET", "/todos", nil), &out)
	return out
}

func fetchTodo(t *testing.T, id string) domain.Details {
	t.Helper()
	var out domain.Details
	decode(t, mustSend(t, "GET", itemPath(id), nil), &out)
	return out
}

func saveTodo(t *testing.T, body any) int64 {
	t.Helper()
	var id int64
	decode(t, mustSend(t, "POST", "/todos", body), &id)
	return id
}

func decode(t *testing.T, res httpkit.Response, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(res.Body), v); err != nil {
		t.Fatalf("decode %q: %v", res.Body, err)
	}
}

// assertRequestError checks err is a plain text *HTTPError with status and a body containing want
func assertRequestError(t *testing.T, err error, status int, want string) {
	t.Helper()
	he, ok := httpkit.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected an *HTTPError, got %v", err)
	}
	if he.Response.StatusCode != status {
		t.Fatalf("status = %d want %d (body %q)", he.Response.StatusCode, status, he.Response.Body)
	}
	if ct := he.Response.Header("Content-Type"); ct != httpkit.ContentTypeText {
		t.Fatalf("content-type = %q", ct)
	}
	if want != "" && !strings.Contains(he.Response.Body, want) {
		t.Fatalf("body = %q want it to contain %q", he.Response.Body, want)
	}
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
