package httpkit

import (
	"context"
	"io"
	"net/http"
	"strings"

	perr "todoapi/internal/platform/errors"
	phttp "todoapi/internal/platform/net/http"
	"todoapi/internal/platform/seam"
)

// Req describes one request sent through a Requester
type Req struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
}

// Requester sends requests the way the active test mode expects: emulated
// against the router in unit mode, over the network to the router's live
// listener in integration mode. Either way a status of 300 or more comes
// back as *HTTPError
type Requester[T any] struct {
	Env    *seam.Env
	Router *Router[T]
	// BaseURL overrides the live listener address, e.g. "http://127.0.0.1:8080"
	BaseURL string
	Client  *http.Client
}

// Send dispatches req and returns the normalized response
func (q Requester[T]) Send(ctx context.Context, req Req) (Response, error) {
	h := http.Header{}
	for k, v := range req.Headers {
		h.Set(k, v)
	}
	if req.Body != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", ContentTypeJSONCharset)
	}

	if q.Env.Mode() != seam.ModeIntegration {
		return q.Router.EmulateRequest(ctx, phttp.EmulatedRequest{
			Method:  req.Method,
			Path:    req.Path,
			Body:    req.Body,
			Headers: h,
		})
	}
	return q.sendLive(ctx, req, h)
}

func (q Requester[T]) sendLive(ctx context.Context, req Req, h http.Header) (Response, error) {
	base := q.BaseURL
	if base == "" {
		addr := q.Router.Addr()
		if addr == "" {
			return Response{}, perr.Misusef("The server is not running")
		}
		base = "http://" + addr
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, strings.TrimRight(base, "/")+req.Path, body)
	if err != nil {
		return Response{}, perr.Wrap(err, perr.ErrorCodeMisuse, "build request")
	}
	hr.Header = h

	client := q.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(hr)
	if err != nil {
		return Response{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s %s", req.Method, req.Path)
	}
	defer func() { _ = res.Body.Close() }()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read %s %s", req.Method, req.Path)
	}
	out := Response{StatusCode: res.StatusCode, Headers: make(map[string]string, len(res.Header)), Body: string(b)}
	for k, vs := range res.Header {
		out.Headers[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return phttp.CheckStatus(out)
}
