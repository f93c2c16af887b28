package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/ports/driving"
	"github.com/custodia-labs/todos/internal/logger"
)

// Command names.
const (
	AddTodo    = "add_todo"
	GetTodos   = "get_todos"
	UpdateTodo = "update_todo"
	DeleteTodo = "delete_todo"
)

// ErrUnknownCommand is wrapped by the error returned for unregistered names.
var ErrUnknownCommand = errors.New("unknown command")

// handler runs one command. A nil result is encoded as JSON null.
type handler func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes named commands to the TodoService.
type Dispatcher struct {
	todos    driving.TodoService
	handlers map[string]handler
}

// NewDispatcher creates a dispatcher with the four todo commands registered.
func NewDispatcher(todos driving.TodoService) *Dispatcher {
	d := &Dispatcher{todos: todos}
	d.handlers = map[string]handler{
		AddTodo:    d.addTodo,
		GetTodos:   d.getTodos,
		UpdateTodo: d.updateTodo,
		DeleteTodo: d.deleteTodo,
	}
	return d
}

// Commands returns the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command with JSON-encoded args and returns the
// JSON-encoded result. Empty args are treated as {}.
// Every error returned is a *CommandError.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, &CommandError{
			Command: name,
			Message: fmt.Sprintf("command %s not found", name),
			cause:   ErrUnknownCommand,
		}
	}

	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}

	result, err := h(ctx, args)
	if err != nil {
		logger.Debug("command %s failed: %v", name, err)
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return nil, cmdErr
		}
		return nil, &CommandError{Command: name, Message: err.Error(), cause: err}
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, &CommandError{
			Command: name,
			Message: fmt.Sprintf("could not encode result of %s: %v", name, err),
			cause:   err,
		}
	}
	return out, nil
}

type addTodoArgs struct {
	Description *string `json:"description"`
}

type updateTodoArgs struct {
	Todo *domain.Todo `json:"todo"`
}

type deleteTodoArgs struct {
	ID *int64 `json:"id"`
}

func (d *Dispatcher) addTodo(ctx context.Context, raw json.RawMessage) (any, error) {
	var args addTodoArgs
	if err := decodeArgs(AddTodo, raw, &args); err != nil {
		return nil, err
	}
	if args.Description == nil {
		return nil, missingKey(AddTodo, "description")
	}

	if err := d.todos.Add(ctx, *args.Description); err != nil {
		return nil, newCommandError(AddTodo, msgAddFailed, err)
	}
	return nil, nil
}

func (d *Dispatcher) getTodos(ctx context.Context, raw json.RawMessage) (any, error) {
	var args struct{}
	if err := decodeArgs(GetTodos, raw, &args); err != nil {
		return nil, err
	}

	todos, err := d.todos.List(ctx)
	if err != nil {
		return nil, newCommandError(GetTodos, msgListFailed, err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

func (d *Dispatcher) updateTodo(ctx context.Context, raw json.RawMessage) (any, error) {
	var args updateTodoArgs
	if err := decodeArgs(UpdateTodo, raw, &args); err != nil {
		return nil, err
	}
	if args.Todo == nil {
		return nil, missingKey(UpdateTodo, "todo")
	}

	if err := d.todos.Update(ctx, *args.Todo); err != nil {
		return nil, newCommandError(UpdateTodo, msgUpdateFailed, err)
	}
	return nil, nil
}

func (d *Dispatcher) deleteTodo(ctx context.Context, raw json.RawMessage) (any, error) {
	var args deleteTodoArgs
	if err := decodeArgs(DeleteTodo, raw, &args); err != nil {
		return nil, err
	}
	if args.ID == nil {
		return nil, missingKey(DeleteTodo, "id")
	}

	if err := d.todos.Delete(ctx, *args.ID); err != nil {
		return nil, newCommandError(DeleteTodo, msgDeleteFailed, err)
	}
	return nil, nil
}

func decodeArgs(command string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &CommandError{
			Command: command,
			Message: fmt.Sprintf("invalid args for command %s: %v", command, err),
			cause:   fmt.Errorf("%w: %w", domain.ErrInvalidInput, err),
		}
	}
	return nil
}

func missingKey(command, key string) error {
	return &CommandError{
		Command: command,
		Message: fmt.Sprintf("invalid args for command %s: missing required key %s", command, key),
		cause:   domain.ErrInvalidInput,
	}
}
