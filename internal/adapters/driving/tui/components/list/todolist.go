// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/todos/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/todos/internal/core/domain"
)

// TodoList displays todos as a navigable checklist.
type TodoList struct {
	todos    []domain.Todo
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewTodoList creates a new todo list component.
func NewTodoList(s *styles.Styles) *TodoList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TodoList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *TodoList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *TodoList) Update(msg tea.Msg) (*TodoList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.todos) > 0 {
				l.selected = len(l.todos) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *TodoList) View() string {
	if len(l.todos) == 0 {
		return l.styles.Muted.Render("Nothing to do. Press [a] to add a todo.")
	}

	// One line per todo; keep the selection in view.
	visible := l.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.todos) {
		end = len(l.todos)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderTodo(i, &l.todos[i]))
	}
	return strings.Join(lines, "\n")
}

// renderTodo formats one checklist line.
func (l *TodoList) renderTodo(index int, todo *domain.Todo) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	desc := todo.Description
	if desc == "" {
		desc = "(empty)"
	}
	maxLen := l.width - 8
	if maxLen < 10 {
		maxLen = 10
	}
	if len(desc) > maxLen {
		desc = desc[:maxLen-3] + "..."
	}

	box := "[ ]"
	if todo.IsComplete() {
		box = "[x]"
	}

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("%s%s %s", indicator, box, desc))
	}

	if todo.IsComplete() {
		return indicator + l.styles.CheckboxDone.Render(box) + " " + l.styles.Done.Render(desc)
	}
	return indicator + l.styles.CheckboxOpen.Render(box) + " " + l.styles.Normal.Render(desc)
}

// SetTodos replaces the list contents. The selection is clamped rather
// than reset so a reload keeps the cursor in place.
func (l *TodoList) SetTodos(todos []domain.Todo) {
	l.todos = todos
	if l.selected >= len(todos) {
		l.selected = len(todos) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Todos returns the current todos.
func (l *TodoList) Todos() []domain.Todo {
	return l.todos
}

// Selected returns the index of the selected todo.
func (l *TodoList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *TodoList) SetSelected(index int) {
	if index >= 0 && index < len(l.todos) {
		l.selected = index
	}
}

// SelectedTodo returns the currently selected todo, or nil if none.
func (l *TodoList) SelectedTodo() *domain.Todo {
	if len(l.todos) == 0 || l.selected < 0 || l.selected >= len(l.todos) {
		return nil
	}
	return &l.todos[l.selected]
}

// MoveUp moves selection up.
func (l *TodoList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *TodoList) MoveDown() {
	if l.selected < len(l.todos)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *TodoList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of todos.
func (l *TodoList) Count() int {
	return len(l.todos)
}

// CompletedCount returns how many todos are complete.
func (l *TodoList) CompletedCount() int {
	n := 0
	for i := range l.todos {
		if l.todos[i].IsComplete() {
			n++
		}
	}
	return n
}

// IsEmpty returns whether the list is empty.
func (l *TodoList) IsEmpty() bool {
	return len(l.todos) == 0
}
