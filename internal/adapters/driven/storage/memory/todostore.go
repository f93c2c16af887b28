// Package memory provides in-memory implementations of driven port interfaces.
// They back service tests and the --memory flag, where nothing should touch disk.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/ports/driven"
)

// Ensure TodoStore implements the interface.
var _ driven.TodoStore = (*TodoStore)(nil)

// TodoStore is an in-memory implementation of driven.TodoStore.
// IDs are assigned from a monotonically increasing counter and never reused,
// matching an AUTOINCREMENT column.
type TodoStore struct {
	mu     sync.RWMutex
	todos  map[int64]domain.Todo
	nextID int64
}

// NewTodoStore creates a new in-memory todo store.
func NewTodoStore() *TodoStore {
	return &TodoStore{
		todos:  make(map[int64]domain.Todo),
		nextID: 1,
	}
}

// Create inserts a new todo.
func (s *TodoStore) Create(_ context.Context, description string, status domain.TodoStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.todos[id] = domain.Todo{ID: id, Description: description, Status: status}
	return id, nil
}

// List returns all todos ordered by ID, the order SQLite yields for a rowid table.
func (s *TodoStore) List(_ context.Context) ([]domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		result = append(result, todo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Get retrieves a todo by ID.
func (s *TodoStore) Get(_ context.Context, id int64) (*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &todo, nil
}

// Update overwrites a todo if it exists.
func (s *TodoStore) Update(_ context.Context, todo domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.todos[todo.ID]; !ok {
		return nil
	}
	s.todos[todo.ID] = todo
	return nil
}

// Delete removes a todo.
func (s *TodoStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.todos, id)
	return nil
}
