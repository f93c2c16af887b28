package tui

import "errors"

// ErrMissingTodoService is returned when the todo service is not provided.
var ErrMissingTodoService = errors.New("tui: todo service is required")
