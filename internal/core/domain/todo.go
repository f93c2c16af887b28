package domain

import "strings"

// TodoStatus is the completion state of a Todo.
type TodoStatus string

// Available statuses. The values are stored verbatim in the database
// and exchanged verbatim over the command surface.
const (
	// TodoStatusIncomplete is the status of a freshly created todo.
	TodoStatusIncomplete TodoStatus = "Incomplete"

	// TodoStatusComplete marks a todo as done.
	TodoStatusComplete TodoStatus = "Complete"
)

// AllTodoStatuses returns every valid status in display order.
func AllTodoStatuses() []TodoStatus {
	return []TodoStatus{TodoStatusIncomplete, TodoStatusComplete}
}

// IsValid returns true if the status is recognised.
func (s TodoStatus) IsValid() bool {
	switch s {
	case TodoStatusIncomplete, TodoStatusComplete:
		return true
	default:
		return false
	}
}

// Toggle returns the opposite status.
func (s TodoStatus) Toggle() TodoStatus {
	if s == TodoStatusComplete {
		return TodoStatusIncomplete
	}
	return TodoStatusComplete
}

// String returns the string representation.
func (s TodoStatus) String() string {
	return string(s)
}

// ParseTodoStatus converts user input into a TodoStatus.
// Matching is case-insensitive and accepts "done" and "pending" as aliases.
func ParseTodoStatus(s string) (TodoStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "incomplete", "pending", "todo":
		return TodoStatusIncomplete, nil
	case "complete", "completed", "done":
		return TodoStatusComplete, nil
	default:
		return "", ErrInvalidInput
	}
}

// Todo is a single task record.
type Todo struct {
	// ID is assigned by the storage engine and never changes.
	ID int64 `json:"id"`

	// Description is the free-form task text.
	Description string `json:"description"`

	// Status is either Incomplete or Complete.
	Status TodoStatus `json:"status"`
}

// IsComplete reports whether the todo has been completed.
func (t *Todo) IsComplete() bool {
	return t.Status == TodoStatusComplete
}
