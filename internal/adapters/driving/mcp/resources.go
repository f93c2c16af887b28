package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/todos/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for todo resources.
	uriScheme = "todos://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "todos",
		Name:        "todos",
		Description: "The full to-do list",
		MIMEType:    "application/json",
	}, s.handleTodosResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "todos/{id}",
		Name:        "todo",
		Description: "A single todo by id",
		MIMEType:    "application/json",
	}, s.handleTodoResource)
}

// handleTodosResource returns every todo as a JSON array.
func (s *Server) handleTodosResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	todos, err := s.ports.Todo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	infos := make([]TodoOutput, len(todos))
	for i := range todos {
		infos[i] = toTodoOutput(todos[i])
	}

	return jsonResource(req.Params.URI, infos)
}

// handleTodoResource returns one todo.
func (s *Server) handleTodoResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractTodoID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	todo, err := s.ports.Todo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo: %w", err)
	}

	return jsonResource(req.Params.URI, toTodoOutput(*todo))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling todos: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTodoID extracts the todo ID from a URI like todos://todos/{id}.
func extractTodoID(uri string) (int64, bool) {
	const prefix = uriScheme + "todos/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
