package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/todos/internal/core/domain"
)

// TodoOutput represents a single todo.
type TodoOutput struct {
	ID          int64  `json:"id" jsonschema:"the todo id"`
	Description string `json:"description" jsonschema:"what needs doing"`
	Status      string `json:"status" jsonschema:"Incomplete or Complete"`
}

// AddTodoInput is the input schema for the add_todo tool.
type AddTodoInput struct {
	Description string `json:"description" jsonschema:"the text of the new todo"`
}

// GetTodosInput is the input schema for the get_todos tool.
type GetTodosInput struct {
	Status string `json:"status,omitempty" jsonschema:"only return todos with this status (Incomplete or Complete)"`
}

// GetTodosOutput is the output schema for the get_todos tool.
type GetTodosOutput struct {
	Todos []TodoOutput `json:"todos"`
	Count int          `json:"count"`
}

// UpdateTodoInput is the input schema for the update_todo tool.
type UpdateTodoInput struct {
	Todo TodoOutput `json:"todo" jsonschema:"the todo to overwrite, matched by id"`
}

// TodoIDInput is the input schema for tools that address one todo.
type TodoIDInput struct {
	ID int64 `json:"id" jsonschema:"the todo id"`
}

// AckOutput is returned by tools that change the list.
type AckOutput struct {
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_todo",
		Description: "Add a new incomplete todo",
	}, s.handleAddTodo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_todos",
		Description: "List all todos",
	}, s.handleGetTodos)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_todo",
		Description: "Overwrite the description and status of a todo",
	}, s.handleUpdateTodo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo by id",
	}, s.handleDeleteTodo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_todo",
		Description: "Flip a todo between Incomplete and Complete",
	}, s.handleToggleTodo)
}

func (s *Server) handleAddTodo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddTodoInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Todo.Add(ctx, input.Description); err != nil {
		return nil, AckOutput{}, fmt.Errorf("Error saving todo: %w", err) //nolint:stylecheck // command surface wording
	}
	return nil, AckOutput{Message: "added"}, nil
}

func (s *Server) handleGetTodos(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetTodosInput,
) (*mcp.CallToolResult, GetTodosOutput, error) {
	var filter domain.TodoStatus
	if input.Status != "" {
		status, err := domain.ParseTodoStatus(input.Status)
		if err != nil {
			return nil, GetTodosOutput{}, err
		}
		filter = status
	}

	todos, err := s.ports.Todo.List(ctx)
	if err != nil {
		return nil, GetTodosOutput{}, fmt.Errorf("Failed to get todos %w", err)
	}

	output := GetTodosOutput{Todos: make([]TodoOutput, 0, len(todos))}
	for i := range todos {
		if filter != "" && todos[i].Status != filter {
			continue
		}
		output.Todos = append(output.Todos, toTodoOutput(todos[i]))
	}
	output.Count = len(output.Todos)

	return nil, output, nil
}

func (s *Server) handleUpdateTodo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateTodoInput,
) (*mcp.CallToolResult, AckOutput, error) {
	status, err := domain.ParseTodoStatus(input.Todo.Status)
	if err != nil {
		return nil, AckOutput{}, fmt.Errorf("could not update todo %w", err)
	}

	todo := domain.Todo{
		ID:          input.Todo.ID,
		Description: input.Todo.Description,
		Status:      status,
	}
	if err := s.ports.Todo.Update(ctx, todo); err != nil {
		return nil, AckOutput{}, fmt.Errorf("could not update todo %w", err)
	}
	return nil, AckOutput{Message: "updated"}, nil
}

func (s *Server) handleDeleteTodo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TodoIDInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Todo.Delete(ctx, input.ID); err != nil {
		return nil, AckOutput{}, fmt.Errorf("could not delete todo %w", err)
	}
	return nil, AckOutput{Message: "deleted"}, nil
}

func (s *Server) handleToggleTodo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TodoIDInput,
) (*mcp.CallToolResult, AckOutput, error) {
	if err := s.ports.Todo.Toggle(ctx, input.ID); err != nil {
		return nil, AckOutput{}, fmt.Errorf("could not toggle todo %d: %w", input.ID, err)
	}
	return nil, AckOutput{Message: "toggled"}, nil
}

func toTodoOutput(todo domain.Todo) TodoOutput {
	return TodoOutput{
		ID:          todo.ID,
		Description: todo.Description,
		Status:      todo.Status.String(),
	}
}
