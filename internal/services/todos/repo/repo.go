// Package repo provides postgres access for todo items
package repo

import (
	"context"
	"errors"

	"todoapi/internal/modkit/repokit"
	perr "todoapi/internal/platform/errors"
	"todoapi/internal/platform/logger"
	"todoapi/internal/platform/seam"
	"todoapi/internal/platform/store"
	"todoapi/internal/services/todos/domain"
)

// Schema creates the todos table when missing
const Schema = `
create table if not exists todos (
	id   bigint generated always as identity primary key,
	text text not null
)`

// queries implements domain.Repository over a Queryer
type queries struct{ q repokit.Queryer }

// NewPG binds the repository to q
func NewPG(q repokit.Queryer) domain.Repository { return &queries{q: q} }

// NewDependency registers the "todosRepository" seam on env. Tests that
// use the real table start from an empty one
func NewDependency(env *seam.Env, q repokit.Queryer) *seam.Dependency[domain.Repository] {
	d := seam.New(env, "todosRepository", NewPG(q))
	d.BeforeUsedInTests(func(ctx context.Context) error {
		logger.Named("todos.repo").Debug().Msg("clearing todos")
		if _, err := q.Exec(ctx, `delete from todos`); err != nil {
			return perr.FromPostgres(err, "clear todos")
		}
		return nil
	})
	return d
}

func scanTodo(r store.Row) (domain.Todo, error) {
	var t domain.Todo
	err := r.Scan(&t.ID, &t.Text)
	return t, err
}

func scanDetails(r store.Row) (domain.Details, error) {
	var d domain.Details
	err := r.Scan(&d.Text)
	return d, err
}

func (r *queries) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	const sql = `select id, text from todos order by id`
	out, err := store.Many(ctx, r.q, scanTodo, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "list todos")
	}
	return out, nil
}

func (r *queries) FindTodo(ctx context.Context, id int64) (domain.Details, bool, error) {
	const sql = `select text from todos where id = $1`
	d, err := store.One(ctx, r.q, scanDetails, sql, id)
	switch {
	case errors.Is(err, perr.ErrNotFound):
		return domain.Details{}, false, nil
	case err != nil:
		return domain.Details{}, false, perr.FromPostgresf(err, "find todo %d", id)
	}
	return d, true, nil
}

func (r *queries) AddTodo(ctx context.Context, text string) (int64, error) {
	const sql = `insert into todos (text) values ($1) returning id`
	id, err := store.Scalar[int64](ctx, r.q, sql, text)
	if err != nil {
		return 0, perr.FromPostgres(err, "add todo")
	}
	return id, nil
}

func (r *queries) UpdateTodo(ctx context.Context, id int64, text string) (domain.Result, error) {
	const sql = `update todos set text = $1 where id = $2`
	n, err := store.Affected(ctx, r.q, sql, text, id)
	if err != nil {
		return domain.ResultNotFound, perr.FromPostgresf(err, "update todo %d", id)
	}
	return resultOf(n), nil
}

func (r *queries) DeleteTodo(ctx context.Context, id int64) (domain.Result, error) {
	const sql = `delete from todos where id = $1`
	n, err := store.Affected(ctx, r.q, sql, id)
	if err != nil {
		return domain.ResultNotFound, perr.FromPostgresf(err, "delete todo %d", id)
	}
	return resultOf(n), nil
}

func resultOf(affected int64) domain.Result {
	if affected > 0 {
		return domain.ResultOK
	}
	return domain.ResultNotFound
}
