// Package http provides http transport for todo items
package http

import (
	"context"
	"fmt"

	"todoapi/internal/modkit/httpkit"
	"todoapi/internal/services/todos/domain"
	svc "todoapi/internal/services/todos/service"
)

const (
	msgBadID   = `Expected the "id" field found in the path to be a number.`
	msgBadText = `Expected to find a "text" property of type string in the request body.`
)

// Register mounts the todo endpoints on r
func Register(r *httpkit.Router[Tools], s svc.Service) error {
	h := &handlers{svc: s}
	routes := []struct {
		method, pattern string
		handle          httpkit.Handler[Tools]
	}{
		{"GET", "/todos", h.list},
		{"GET", "/todos/:id", h.find},
		{"POST", "/todos", h.add},
		{"PUT", "/todos/:id", h.update},
		{"DELETE", "/todos/:id", h.delete},
	}
	for _, rt := range routes {
		if err := r.On(rt.method, rt.pattern, rt.handle); err != nil {
			return err
		}
	}
	return nil
}

type handlers struct{ svc svc.Service }

type request = httpkit.Request[Tools]

func badRequest(msg string) httpkit.Response { return httpkit.Text(httpkit.StatusBadRequest, msg) }

func notFound(id float64) httpkit.Response {
	return httpkit.Text(httpkit.StatusNotFound, fmt.Sprintf("No TODO item with ID %s was found.", formatNumber(id)))
}

// pathID reads the ":id" segment. Any number is accepted; only whole ones
// can name a stored item
func pathID(req request) (float64, bool) {
	return parseNumber(req.PathParams["id"])
}

// bodyText extracts the required "text" string from the body
func bodyText(req request) (string, bool) {
	in, err := httpkit.Bind[domain.TextInput](req.Body)
	if err != nil {
		return "", false
	}
	return *in.Text, true
}

// GET /todos
func (h *handlers) list(ctx context.Context, _ request) (httpkit.Response, error) {
	todos, err := h.svc.List(ctx)
	if err != nil {
		return httpkit.Response{}, err
	}
	return httpkit.JSON(httpkit.StatusOK, httpkit.ContentTypeJSON, todos)
}

// GET /todos/:id
func (h *handlers) find(ctx context.Context, req request) (httpkit.Response, error) {
	num, ok := pathID(req)
	if !ok {
		return badRequest(msgBadID), nil
	}
	id, ok := asID(num)
	if !ok {
		return notFound(num), nil
	}
	d, found, err := h.svc.Find(ctx, id)
	if err != nil {
		return httpkit.Response{}, err
	}
	if !found {
		return notFound(num), nil
	}
	return httpkit.JSON(httpkit.StatusOK, httpkit.ContentTypeJSON, d)
}

// POST /todos
func (h *handlers) add(ctx context.Context, req request) (httpkit.Response, error) {
	text, ok := bodyText(req)
	if !ok {
		return badRequest(msgBadText), nil
	}
	id, err := h.svc.Add(ctx, req.Tools.AuditLog, text)
	if err != nil {
		return httpkit.Response{}, err
	}
	return httpkit.JSON(httpkit.StatusCreated, httpkit.ContentTypeJSONCharset, id)
}

// PUT /todos/:id
func (h *handlers) update(ctx context.Context, req request) (httpkit.Response, error) {
	num, ok := pathID(req)
	if !ok {
		return badRequest(msgBadID), nil
	}
	text, ok := bodyText(req)
	if !ok {
		return badRequest(msgBadText), nil
	}
	id, ok := asID(num)
	if !ok {
		return notFound(num), nil
	}
	res, err := h.svc.Update(ctx, req.Tools.AuditLog, id, text)
	if err != nil {
		return httpkit.Response{}, err
	}
	if res == domain.ResultNotFound {
		return notFound(num), nil
	}
	return httpkit.NoContent(), nil
}

// DELETE /todos/:id
func (h *handlers) delete(ctx context.Context, req request) (httpkit.Response, error) {
	num, ok := pathID(req)
	if !ok {
		return badRequest(msgBadID), nil
	}
	id, ok := asID(num)
	if !ok {
		return notFound(num), nil
	}
	res, err := h.svc.Delete(ctx, req.Tools.AuditLog, id)
	if err != nil {
		return httpkit.Response{}, err
	}
	if res == domain.ResultNotFound {
		return notFound(num), nil
	}
	return httpkit.NoContent(), nil
}
