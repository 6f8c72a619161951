package repo

import (
	"context"
	"slices"
	"sync"

	"todoapi/internal/services/todos/domain"
)

// Fake is an in-memory repository. Ids start at 1 and list order is insertion order
type Fake struct {
	mu     sync.Mutex
	nextID int64
	todos  []domain.Todo
}

// NewFake returns an empty Fake
func NewFake() *Fake { return &Fake{nextID: 1} }

func (f *Fake) ListTodos(context.Context) ([]domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Todo{}, f.todos...), nil
}

func (f *Fake) FindTodo(_ context.Context, id int64) (domain.Details, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(id); i >= 0 {
		return domain.Details{Text: f.todos[i].Text}, true, nil
	}
	return domain.Details{}, false, nil
}

func (f *Fake) AddTodo(_ context.Context, text string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nextID == 0 {
		f.nextID = 1
	}
	id := f.nextID
	f.nextID++
	f.todos = append(f.todos, domain.Todo{ID: id, Text: text})
	return id, nil
}

func (f *Fake) UpdateTodo(_ context.Context, id int64, text string) (domain.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return domain.ResultNotFound, nil
	}
	f.todos[i].Text = text
	return domain.ResultOK, nil
}

func (f *Fake) DeleteTodo(_ context.Context, id int64) (domain.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return domain.ResultNotFound, nil
	}
	f.todos = slices.Delete(f.todos, i, i+1)
	return domain.ResultOK, nil
}

func (f *Fake) index(id int64) int {
	return slices.IndexFunc(f.todos, func(t domain.Todo) bool { return t.ID == id })
}
