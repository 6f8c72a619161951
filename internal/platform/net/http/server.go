package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"time"

	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"

	mw "github.com/go-chi/chi/v5/middleware"
	pkgerrors "github.com/pkg/errors"
)

const productionFailureBody = "An internal error occured."

// StartListening binds addr and serves the registered routes in the background
// Only one listener may be active at a time
func (r *Router[T]) StartListening(addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.srv != nil {
		return perr.Misusef("The server is already running")
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "listen on %s", addr)
	}
	srv := &stdhttp.Server{
		Handler:           r.handlerLocked(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	served := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, stdhttp.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			logger.Named("http").Error().Err(err).Msg("http serve failed")
		}
		served <- err
	}()

	r.srv, r.ln, r.served = srv, ln, served
	logger.Named("http").Info().Str("addr", ln.Addr().String()).Msg("http listening")
	return nil
}

// Addr returns the bound address, or "" when not listening
func (r *Router[T]) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ln == nil {
		return ""
	}
	return r.ln.Addr().String()
}

// StopListening shuts the active listener down gracefully
func (r *Router[T]) StopListening(ctx context.Context) error {
	r.mu.Lock()
	srv, served := r.srv, r.served
	r.srv, r.ln, r.served = nil, nil, nil
	r.mu.Unlock()

	if srv == nil {
		return perr.Misusef("The server is not running")
	}
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	err := <-served
	logger.Named("http").Info().Msg("http stopped")
	return err
}

// serveLive is the chi endpoint shared by every mounted pattern
func (r *Router[T]) serveLive(w stdhttp.ResponseWriter, req *stdhttp.Request) {
	rt, params, ok := r.find(req.Method, req.URL.EscapedPath())
	if !ok {
		stdhttp.NotFound(w, req)
		return
	}

	ww := mw.NewWrapResponseWriter(w, req.ProtoMajor)
	if err := r.dispatchLive(ww, req, rt, params); err != nil {
		r.fail(ww, req, err)
	}
}

func (r *Router[T]) dispatchLive(w stdhttp.ResponseWriter, req *stdhttp.Request, rt route[T], params map[string]string) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			err = pkgerrors.WithStack(perr.PanicErrf("panic: %v", v))
		}
	}()

	body, err := readLiveBody(req)
	if err != nil {
		return pkgerrors.WithStack(err)
	}
	tools, err := r.deriveTools(req)
	if err != nil {
		return pkgerrors.WithStack(err)
	}
	resp, err := r.invoke(req.Context(), rt, Request[T]{
		PathParams: params,
		Body:       body,
		Headers:    flattenHeaders(req.Header),
		Tools:      tools,
	})
	if err != nil {
		return pkgerrors.WithStack(err)
	}
	resp.write(w)
	return nil
}

func (r *Router[T]) deriveTools(req *stdhttp.Request) (T, error) {
	if r.opt.DeriveTools == nil {
		var zero T
		return zero, nil
	}
	return r.opt.DeriveTools(req)
}

// fail is the last-resort responder. Details are only exposed outside production
func (r *Router[T]) fail(w mw.WrapResponseWriter, req *stdhttp.Request, err error) {
	log := logger.C(req.Context())
	log.Error().Stack().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("handler failed")

	if w.Status() != 0 {
		// headers are gone, let the server drop the connection
		panic(stdhttp.ErrAbortHandler)
	}

	body := productionFailureBody
	if !r.opt.Production {
		body = fmt.Sprintf("%+v", err)
	}
	w.Header().Set("Content-Type", ContentTypeText)
	w.WriteHeader(StatusInternalServerError)
	_, _ = w.Write([]byte(body))
}
