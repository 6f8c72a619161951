package httpkit

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/seam"
)

// echo reports what the handler saw so both transports can be compared
func echo(_ context.Context, req Request[string]) (Response, error) {
	return Text(StatusOK, fmt.Sprintf("%s|%v|%s|%s", req.PathParams["id"], req.Body, req.Headers["content-type"], req.Tools)), nil
}

func teapot(_ context.Context, _ Request[string]) (Response, error) {
	return Text(418, "short and stout"), nil
}

func newRouter(t *testing.T) *Router[string] {
	t.Helper()
	r := NewRouter(Options[string]{
		ProvideTools: func(context.Context) (string, error) { return "emulated", nil },
	})
	if err := r.Post("/things/:id", echo); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Get("/teapot", teapot); err != nil {
		t.Fatalf("register: %v", err)
	}
	return r
}

func TestRequester_UnitModeEmulates(t *testing.T) {
	r := newRouter(t)
	q := Requester[string]{Env: seam.NewEnv(seam.ModeUnit), Router: r}

	res, err := q.Send(context.Background(), Req{Method: "POST", Path: "/things/7", Body: `{"a":1}`})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	want := "7|map[a:1]|application/json; charset=utf-8|emulated"
	if res.Body != want {
		t.Fatalf("body = %q want %q", res.Body, want)
	}
}

func TestRequester_KeepsExplicitContentType(t *testing.T) {
	r := newRouter(t)
	q := Requester[string]{Env: seam.NewEnv(seam.ModeUnit), Router: r}

	res, err := q.Send(context.Background(), Req{
		Method:  "POST",
		Path:    "/things/1",
		Body:    `{"a":1}`,
		Headers: map[string]string{"Content-Type": "text/plain"},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if want := `1|{"a":1}|text/plain|emulated`; res.Body != want {
		t.Fatalf("body = %q want %q", res.Body, want)
	}
}

func TestRequester_NoBodyNoContentType(t *testing.T) {
	r := newRouter(t)
	q := Requester[string]{Env: seam.NewEnv(seam.ModeUnit), Router: r}

	res, err := q.Send(context.Background(), Req{Method: "POST", Path: "/things/2"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if want := "2|<nil>||emulated"; res.Body != want {
		t.Fatalf("body = %q want %q", res.Body, want)
	}
}

func TestRequester_BadStatusIsHTTPError(t *testing.T) {
	r := newRouter(t)
	q := Requester[string]{Env: seam.NewEnv(seam.ModeUnit), Router: r}

	_, err := q.Send(context.Background(), Req{Method: "GET", Path: "/teapot"})
	he, ok := AsHTTPError(err)
	if !ok {
		t.Fatalf("want *HTTPError, got %v", err)
	}
	if he.Response.StatusCode != 418 || he.Response.Body != "short and stout" {
		t.Fatalf("unexpected response %+v", he.Response)
	}
}

func TestRequester_IntegrationModeGoesOverTheWire(t *testing.T) {
	r := NewRouter(Options[string]{
		DeriveTools: func(*http.Request) (string, error) { return "live", nil },
	})
	if err := r.Post("/things/:id", echo); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Get("/teapot", teapot); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.StartListening("127.0.0.1:0"); err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = r.StopListening(ctx)
	})

	q := Requester[string]{Env: seam.NewEnv(seam.ModeIntegration), Router: r}
	res, err := q.Send(context.Background(), Req{Method: "POST", Path: "/things/9", Body: `"hi"`})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if want := "9|hi|application/json; charset=utf-8|live"; res.Body != want {
		t.Fatalf("body = %q want %q", res.Body, want)
	}
	if got := res.Header("Content-Type"); got != ContentTypeText {
		t.Fatalf("content-type = %q", got)
	}

	_, err = q.Send(context.Background(), Req{Method: "GET", Path: "/teapot"})
	he, ok := AsHTTPError(err)
	if !ok || he.Response.StatusCode != 418 {
		t.Fatalf("want 418 HTTPError, got %v", err)
	}
}

func TestRequester_IntegrationWithoutListener(t *testing.T) {
	q := Requester[string]{Env: seam.NewEnv(seam.ModeIntegration), Router: newRouter(t)}
	_, err := q.Send(context.Background(), Req{Method: "GET", Path: "/teapot"})
	if !perr.IsCode(err, perr.ErrorCodeMisuse) {
		t.Fatalf("want misuse error, got %v", err)
	}
}
