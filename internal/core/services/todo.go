package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/ports/driven"
	"github.com/custodia-labs/todos/internal/core/ports/driving"
	"github.com/custodia-labs/todos/internal/logger"
)

// Ensure TodoService implements the interface.
var _ driving.TodoService = (*TodoService)(nil)

// TodoService manages the to-do list.
// Every call is an independent round trip to the store.
type TodoService struct {
	store driven.TodoStore
}

// NewTodoService creates a new todo service.
func NewTodoService(store driven.TodoStore) *TodoService {
	return &TodoService{store: store}
}

// Add creates a new incomplete todo.
func (s *TodoService) Add(ctx context.Context, description string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	id, err := s.store.Create(ctx, description, domain.TodoStatusIncomplete)
	if err != nil {
		return err
	}
	logger.Debug("added todo %d", id)
	return nil
}

// List returns all todos.
func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	todos, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("listed %d todos", len(todos))
	return todos, nil
}

// Get retrieves a todo by ID.
func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// Update overwrites the todo matching todo.ID.
func (s *TodoService) Update(ctx context.Context, todo domain.Todo) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if !todo.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, todo.Status)
	}
	if err := s.store.Update(ctx, todo); err != nil {
		return err
	}
	logger.Debug("updated todo %d (%s)", todo.ID, todo.Status)
	return nil
}

// Delete removes the todo with the given ID.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Debug("deleted todo %d", id)
	return nil
}

// Toggle flips the status of a todo.
// Unlike Update, an unknown ID is reported as domain.ErrNotFound.
func (s *TodoService) Toggle(ctx context.Context, id int64) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	todo, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	todo.Status = todo.Status.Toggle()
	return s.Update(ctx, *todo)
}
