package mcp

import (
	"context"

	"github.com/custodia-labs/todos/internal/core/domain"
)

// mockTodoService is a mock implementation of driving.TodoService.
type mockTodoService struct {
	todos   []domain.Todo
	todo    *domain.Todo
	err     error
	added   string
	updated *domain.Todo
	deleted int64
	toggled int64
}

func (m *mockTodoService) Add(_ context.Context, description string) error {
	m.added = description
	return m.err
}

func (m *mockTodoService) List(_ context.Context) ([]domain.Todo, error) {
	return m.todos, m.err
}

func (m *mockTodoService) Get(_ context.Context, _ int64) (*domain.Todo, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.todo == nil {
		return nil, domain.ErrNotFound
	}
	return m.todo, nil
}

func (m *mockTodoService) Update(_ context.Context, todo domain.Todo) error {
	m.updated = &todo
	return m.err
}

func (m *mockTodoService) Delete(_ context.Context, id int64) error {
	m.deleted = id
	return m.err
}

func (m *mockTodoService) Toggle(_ context.Context, id int64) error {
	m.toggled = id
	return m.err
}
