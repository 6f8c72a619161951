package http

import (
	"context"
	stdhttp "net/http"

	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"

	"github.com/google/uuid"
)

// EmulatedRequest is an in-process request
type EmulatedRequest struct {
	Method  string
	Path    string
	Body    string
	Headers stdhttp.Header
}

// EmulateRequest dispatches req to the first matching route without a
// network round trip. Responses with a status of 300 or more come back as
// *HTTPError. A request no route matches fails with a routing error
func (r *Router[T]) EmulateRequest(ctx context.Context, req EmulatedRequest) (Response, error) {
	rt, params, ok := r.find(req.Method, req.Path)
	if !ok {
		return Response{}, perr.Routingf("Failed to find a route handler for %s %s", req.Method, req.Path)
	}

	ctx = logger.WithRequest(ctx, uuid.NewString(), "")
	logger.C(ctx).Debug().Str("method", req.Method).Str("path", req.Path).Msg("emulated request")

	tools, err := r.provideTools(ctx)
	if err != nil {
		return Response{}, err
	}
	h := req.Headers
	if h == nil {
		h = stdhttp.Header{}
	}
	body, err := emulatedBody(req.Body, h)
	if err != nil {
		return Response{}, err
	}

	resp, err := r.invoke(ctx, rt, Request[T]{
		PathParams: params,
		Body:       body,
		Headers:    flattenHeaders(h),
		Tools:      tools,
	})
	if err != nil {
		return Response{}, err
	}
	return CheckStatus(resp)
}

func (r *Router[T]) provideTools(ctx context.Context) (T, error) {
	if r.opt.ProvideTools == nil {
		var zero T
		return zero, nil
	}
	return r.opt.ProvideTools(ctx)
}
