package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/todos/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/services"
)

// mockTodoService is a mock implementation of driving.TodoService.
type mockTodoService struct {
	todos   []domain.Todo
	err     error
	added   string
	updated *domain.Todo
	deleted int64
}

func (m *mockTodoService) Add(_ context.Context, description string) error {
	m.added = description
	return m.err
}

func (m *mockTodoService) List(_ context.Context) ([]domain.Todo, error) {
	return m.todos, m.err
}

func (m *mockTodoService) Get(_ context.Context, _ int64) (*domain.Todo, error) {
	return nil, m.err
}

func (m *mockTodoService) Update(_ context.Context, todo domain.Todo) error {
	m.updated = &todo
	return m.err
}

func (m *mockTodoService) Delete(_ context.Context, id int64) error {
	m.deleted = id
	return m.err
}

func (m *mockTodoService) Toggle(_ context.Context, _ int64) error {
	return m.err
}

func newServiceDispatcher() *Dispatcher {
	return NewDispatcher(services.NewTodoService(memory.NewTodoStore()))
}

func TestDispatcher_Commands(t *testing.T) {
	d := NewDispatcher(&mockTodoService{})

	assert.Equal(t, []string{AddTodo, DeleteTodo, GetTodos, UpdateTodo}, d.Commands())
}

func TestDispatcher_AddTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("returns null on success", func(t *testing.T) {
		mock := &mockTodoService{}
		d := NewDispatcher(mock)

		out, err := d.Invoke(ctx, AddTodo, json.RawMessage(`{"description":"Buy milk"}`))

		require.NoError(t, err)
		assert.JSONEq(t, `null`, string(out))
		assert.Equal(t, "Buy milk", mock.added)
	})

	t.Run("empty description is accepted", func(t *testing.T) {
		mock := &mockTodoService{}
		d := NewDispatcher(mock)

		_, err := d.Invoke(ctx, AddTodo, json.RawMessage(`{"description":""}`))

		require.NoError(t, err)
		assert.Equal(t, "", mock.added)
	})

	t.Run("missing description", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{})

		_, err := d.Invoke(ctx, AddTodo, json.RawMessage(`{}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required key description")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("store failure", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{err: errors.New("database is locked")})

		_, err := d.Invoke(ctx, AddTodo, json.RawMessage(`{"description":"x"}`))

		require.Error(t, err)
		assert.Equal(t, "Error saving todo: database is locked", err.Error())
	})
}

func TestDispatcher_GetTodos(t *testing.T) {
	ctx := context.Background()

	t.Run("returns todos as JSON", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{todos: []domain.Todo{
			{ID: 1, Description: "a", Status: domain.TodoStatusIncomplete},
			{ID: 2, Description: "b", Status: domain.TodoStatusComplete},
		}})

		out, err := d.Invoke(ctx, GetTodos, nil)

		require.NoError(t, err)
		assert.JSONEq(t,
			`[{"id":1,"description":"a","status":"Incomplete"},{"id":2,"description":"b","status":"Complete"}]`,
			string(out))
	})

	t.Run("empty list encodes as array", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{})

		out, err := d.Invoke(ctx, GetTodos, json.RawMessage(`{}`))

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(out))
	})

	t.Run("store failure", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{err: errors.New("no such table: todos")})

		_, err := d.Invoke(ctx, GetTodos, nil)

		require.Error(t, err)
		assert.Equal(t, "Failed to get todos no such table: todos", err.Error())
	})
}

func TestDispatcher_UpdateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the todo through", func(t *testing.T) {
		mock := &mockTodoService{}
		d := NewDispatcher(mock)

		out, err := d.Invoke(ctx, UpdateTodo,
			json.RawMessage(`{"todo":{"id":3,"description":"Done thing","status":"Complete"}}`))

		require.NoError(t, err)
		assert.JSONEq(t, `null`, string(out))
		require.NotNil(t, mock.updated)
		assert.Equal(t, domain.Todo{ID: 3, Description: "Done thing", Status: domain.TodoStatusComplete}, *mock.updated)
	})

	t.Run("missing todo", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{})

		_, err := d.Invoke(ctx, UpdateTodo, json.RawMessage(`{"id":3}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required key todo")
	})

	t.Run("invalid status is rejected by the service", func(t *testing.T) {
		d := newServiceDispatcher()

		_, err := d.Invoke(ctx, UpdateTodo,
			json.RawMessage(`{"todo":{"id":1,"description":"x","status":"Archived"}}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not update todo")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("store failure", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{err: errors.New("disk I/O error")})

		_, err := d.Invoke(ctx, UpdateTodo,
			json.RawMessage(`{"todo":{"id":1,"description":"x","status":"Complete"}}`))

		require.Error(t, err)
		assert.Equal(t, "could not update todo disk I/O error", err.Error())
	})
}

func TestDispatcher_DeleteTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by id", func(t *testing.T) {
		mock := &mockTodoService{}
		d := NewDispatcher(mock)

		out, err := d.Invoke(ctx, DeleteTodo, json.RawMessage(`{"id":7}`))

		require.NoError(t, err)
		assert.JSONEq(t, `null`, string(out))
		assert.Equal(t, int64(7), mock.deleted)
	})

	t.Run("wrong id type", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{})

		_, err := d.Invoke(ctx, DeleteTodo, json.RawMessage(`{"id":"seven"}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid args for command delete_todo")
	})

	t.Run("store failure", func(t *testing.T) {
		d := NewDispatcher(&mockTodoService{err: errors.New("readonly database")})

		_, err := d.Invoke(ctx, DeleteTodo, json.RawMessage(`{"id":1}`))

		require.Error(t, err)
		assert.Equal(t, "could not delete todo readonly database", err.Error())
	})
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := NewDispatcher(&mockTodoService{})

	_, err := d.Invoke(context.Background(), "drop_table", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, "command drop_table not found", err.Error())
}

func TestDispatcher_MalformedJSON(t *testing.T) {
	d := NewDispatcher(&mockTodoService{})

	_, err := d.Invoke(context.Background(), AddTodo, json.RawMessage(`{"description":`))

	require.Error(t, err)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, AddTodo, cmdErr.Command)
}

func TestCommandError_MarshalJSON(t *testing.T) {
	err := newCommandError(DeleteTodo, msgDeleteFailed, errors.New("boom"))

	data, marshalErr := json.Marshal(err)

	require.NoError(t, marshalErr)
	assert.Equal(t, `"could not delete todo boom"`, string(data))
}

func TestDispatcher_RoundTrip(t *testing.T) {
	ctx := context.Background()
	d := newServiceDispatcher()

	_, err := d.Invoke(ctx, AddTodo, json.RawMessage(`{"description":"one"}`))
	require.NoError(t, err)
	_, err = d.Invoke(ctx, AddTodo, json.RawMessage(`{"description":"two"}`))
	require.NoError(t, err)

	out, err := d.Invoke(ctx, GetTodos, nil)
	require.NoError(t, err)
	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(out, &todos))
	require.Len(t, todos, 2)
	assert.Equal(t, domain.TodoStatusIncomplete, todos[0].Status)

	_, err = d.Invoke(ctx, DeleteTodo, json.RawMessage(`{"id":`+jsonInt(todos[0].ID)+`}`))
	require.NoError(t, err)

	out, err = d.Invoke(ctx, GetTodos, nil)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "two", todos[0].Description)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
