package mcp

import (
	"github.com/custodia-labs/todos/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Todo manages the to-do list.
	Todo driving.TodoService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Todo == nil {
		return ErrMissingTodoService
	}
	return nil
}
