package driving

import (
	"context"

	"github.com/custodia-labs/todos/internal/core/domain"
)

// TodoService manages the to-do list.
type TodoService interface {
	// Add creates a new incomplete todo with the given description.
	Add(ctx context.Context, description string) error

	// List returns all todos.
	List(ctx context.Context) ([]domain.Todo, error)

	// Get retrieves a todo by ID.
	Get(ctx context.Context, id int64) (*domain.Todo, error)

	// Update overwrites the todo matching todo.ID.
	// Unknown IDs are ignored.
	Update(ctx context.Context, todo domain.Todo) error

	// Delete removes the todo with the given ID.
	// Unknown IDs are ignored.
	Delete(ctx context.Context, id int64) error

	// Toggle flips the status of the todo with the given ID.
	Toggle(ctx context.Context, id int64) error
}
