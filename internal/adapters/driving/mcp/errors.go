// Package mcp provides an MCP (Model Context Protocol) server adapter for todos.
// It lets AI assistants read and edit the local to-do list.
package mcp

import "errors"

// ErrMissingTodoService is returned when the todo service is not provided.
var ErrMissingTodoService = errors.New("mcp: todo service is required")
