// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/todos/internal/adapters/driving/tui/styles"
)

// CharLimit caps the length of a todo description typed in the TUI.
const CharLimit = 512

// TodoInput wraps a bubbles textinput for entering a todo description.
type TodoInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewTodoInput creates a new input with the given label.
func NewTodoInput(s *styles.Styles, label string) *TodoInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = CharLimit
	ti.Width = 50

	return &TodoInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init initialises the input.
func (t *TodoInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (t *TodoInput) Update(msg tea.Msg) (*TodoInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the input.
func (t *TodoInput) View() string {
	label := t.styles.Title.Render(t.label + ": ")
	field := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetLabel changes the label shown before the field.
func (t *TodoInput) SetLabel(label string) {
	t.label = label
}

// Label returns the current label.
func (t *TodoInput) Label() string {
	return t.label
}

// Value returns the current input value.
func (t *TodoInput) Value() string {
	return t.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (t *TodoInput) SetValue(value string) {
	t.textinput.SetValue(value)
	t.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (t *TodoInput) Focus() tea.Cmd {
	return t.textinput.Focus()
}

// Blur removes focus from the input.
func (t *TodoInput) Blur() {
	t.textinput.Blur()
}

// Focused returns whether the input is focused.
func (t *TodoInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the input.
func (t *TodoInput) SetWidth(width int) {
	t.width = width
	// Account for label and padding
	inputWidth := width - len(t.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.textinput.Width = inputWidth
}

// Width returns the current width.
func (t *TodoInput) Width() int {
	return t.width
}

// Reset clears the input.
func (t *TodoInput) Reset() {
	t.textinput.Reset()
}
