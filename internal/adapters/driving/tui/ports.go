// Package tui provides an interactive terminal user interface for todos.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/todos/internal/core/ports/driven"
	"github.com/custodia-labs/todos/internal/core/ports/driving"
)

// Ports aggregates the ports required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Todo manages the to-do list.
	Todo driving.TodoService

	// Watcher reports database writes from other processes. Optional.
	Watcher driven.ChangeWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(todo driving.TodoService, watcher driven.ChangeWatcher) *Ports {
	return &Ports{
		Todo:    todo,
		Watcher: watcher,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Todo == nil {
		return ErrMissingTodoService
	}
	return nil
}
