// Package service implements todo use cases on top of the repository seam
package service

import (
	"context"
	"fmt"

	"todoapi/internal/platform/seam"
	"todoapi/internal/services/audit"
	"todoapi/internal/services/todos/domain"
)

// Service is consumed by handlers
type Service interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Find(ctx context.Context, id int64) (domain.Details, bool, error)
	Add(ctx context.Context, log audit.Logger, text string) (int64, error)
	Update(ctx context.Context, log audit.Logger, id int64, text string) (domain.Result, error)
	Delete(ctx context.Context, log audit.Logger, id int64) (domain.Result, error)
}

type svc struct {
	repos *seam.Dependency[domain.Repository]
}

// New returns a Service reading the repository through repos
func New(repos *seam.Dependency[domain.Repository]) Service {
	return &svc{repos: repos}
}

func (s *svc) List(ctx context.Context) ([]domain.Todo, error) {
	r, err := s.repos.Impl()
	if err != nil {
		return nil, err
	}
	return r.ListTodos(ctx)
}

func (s *svc) Find(ctx context.Context, id int64) (domain.Details, bool, error) {
	r, err := s.repos.Impl()
	if err != nil {
		return domain.Details{}, false, err
	}
	return r.FindTodo(ctx, id)
}

func (s *svc) Add(ctx context.Context, log audit.Logger, text string) (int64, error) {
	r, err := s.repos.Impl()
	if err != nil {
		return 0, err
	}
	id, err := r.AddTodo(ctx, text)
	if err != nil {
		return 0, err
	}
	return id, log.Log(ctx, event(id, "added"))
}

func (s *svc) Update(ctx context.Context, log audit.Logger, id int64, text string) (domain.Result, error) {
	r, err := s.repos.Impl()
	if err != nil {
		return domain.ResultNotFound, err
	}
	res, err := r.UpdateTodo(ctx, id, text)
	if err != nil || res != domain.ResultOK {
		return res, err
	}
	return res, log.Log(ctx, event(id, "updated"))
}

func (s *svc) Delete(ctx context.Context, log audit.Logger, id int64) (domain.Result, error) {
	r, err := s.repos.Impl()
	if err != nil {
		return domain.ResultNotFound, err
	}
	res, err := r.DeleteTodo(ctx, id)
	if err != nil || res != domain.ResultOK {
		return res, err
	}
	return res, log.Log(ctx, event(id, "deleted"))
}

func event(id int64, verb string) string {
	return fmt.Sprintf("The TODO item %d was %s.", id, verb)
}
