package driven

import (
	"context"

	"github.com/custodia-labs/todos/internal/core/domain"
)

// TodoStore persists todos.
type TodoStore interface {
	// Create inserts a new todo and returns its engine-assigned ID.
	Create(ctx context.Context, description string, status domain.TodoStatus) (int64, error)

	// List returns all todos in storage order.
	List(ctx context.Context) ([]domain.Todo, error)

	// Get retrieves a todo by ID.
	// Returns domain.ErrNotFound if no row has that ID.
	Get(ctx context.Context, id int64) (*domain.Todo, error)

	// Update overwrites the description and status of the todo with todo.ID.
	// Updating an ID that does not exist is not an error.
	Update(ctx context.Context, todo domain.Todo) error

	// Delete removes the todo with the given ID.
	// Deleting an ID that does not exist is not an error.
	Delete(ctx context.Context, id int64) error
}
