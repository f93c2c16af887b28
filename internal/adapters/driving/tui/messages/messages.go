// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/todos/internal/core/domain"
)

// TodosLoaded carries the to-do list from the service.
type TodosLoaded struct {
	Todos []domain.Todo
	Err   error
}

// TodoAdded signals a todo was created.
type TodoAdded struct {
	Description string
	Err         error
}

// TodoUpdated signals a todo was overwritten.
type TodoUpdated struct {
	ID  int64
	Err error
}

// TodoToggled signals a todo's status was flipped.
type TodoToggled struct {
	ID  int64
	Err error
}

// TodoDeleted signals a todo was removed.
type TodoDeleted struct {
	ID  int64
	Err error
}

// StoreChanged is sent when another process writes to the database.
type StoreChanged struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewTodos is the to-do list.
	ViewTodos ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewTodos:
		return "todos"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
