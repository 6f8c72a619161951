// Package domain holds the todo item model and the ports around it
package domain

import "context"

// Todo is a stored item
type Todo struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Details is an item without its id
type Details struct {
	Text string `json:"text"`
}

// TextInput is the request body accepted by add and update
type TextInput struct {
	Text *string `json:"text" validate:"required"`
}

// Result is the outcome of a write addressed by id
type Result int

const (
	// ResultOK means the item existed and was changed
	ResultOK Result = iota
	// ResultNotFound means no item has that id
	ResultNotFound
)

func (r Result) String() string {
	if r == ResultNotFound {
		return "notFound"
	}
	return "ok"
}

// Repository stores todo items
type Repository interface {
	ListTodos(ctx context.Context) ([]Todo, error)
	// FindTodo reports found=false for an unknown id
	FindTodo(ctx context.Context, id int64) (d Details, found bool, err error)
	AddTodo(ctx context.Context, text string) (int64, error)
	UpdateTodo(ctx context.Context, id int64, text string) (Result, error)
	DeleteTodo(ctx context.Context, id int64) (Result, error)
}
