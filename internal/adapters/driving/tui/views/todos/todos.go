// Package todos provides the to-do list view for the TUI.
package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/todos/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/ports/driving"
)

var errServiceUnavailable = errors.New("todo service not available")

// Mode is what the keyboard currently drives.
type Mode int

const (
	// ModeBrowse navigates the list.
	ModeBrowse Mode = iota
	// ModeAdd types a new todo.
	ModeAdd
	// ModeEdit rewrites the selected todo's description.
	ModeEdit
	// ModeConfirmDelete waits for y/n before deleting.
	ModeConfirmDelete
)

// chromeLines is the number of rows taken by title, input and status bar.
const chromeLines = 6

// View is the to-do list view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service driving.TodoService
	ctx     context.Context

	list   *list.TodoList
	input  *input.TodoInput
	status *status.Bar

	mode    Mode
	target  *domain.Todo
	loading bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new todos view.
func NewView(s *styles.Styles, service driving.TodoService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		styles:  s,
		keymap:  km,
		service: service,
		ctx:     context.Background(),
		list:    list.NewTodoList(s),
		input:   input.NewTodoInput(s, "Add"),
		status:  status.NewBar(s, km),
	}
}

// WithContext sets the context passed to service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads todos.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload returns a command that reads the list from the service.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	v.status.SetState(status.StateLoading)
	return v.loadTodos()
}

func (v *View) loadTodos() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.TodosLoaded{Err: errServiceUnavailable}
		}
		todos, err := v.service.List(v.ctx)
		return messages.TodosLoaded{Todos: todos, Err: err}
	}
}

func (v *View) addTodo(description string) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.TodoAdded{Description: description, Err: errServiceUnavailable}
		}
		err := v.service.Add(v.ctx, description)
		return messages.TodoAdded{Description: description, Err: err}
	}
}

func (v *View) updateTodo(todo domain.Todo) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.TodoUpdated{ID: todo.ID, Err: errServiceUnavailable}
		}
		err := v.service.Update(v.ctx, todo)
		return messages.TodoUpdated{ID: todo.ID, Err: err}
	}
}

func (v *View) toggleTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.TodoToggled{ID: id, Err: errServiceUnavailable}
		}
		err := v.service.Toggle(v.ctx, id)
		return messages.TodoToggled{ID: id, Err: err}
	}
}

func (v *View) deleteTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.TodoDeleted{ID: id, Err: errServiceUnavailable}
		}
		err := v.service.Delete(v.ctx, id)
		return messages.TodoDeleted{ID: id, Err: err}
	}
}

// Update handles messages for the todos view.
//
//nolint:gocyclo // message switch
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModeAdd, ModeEdit:
			return v.handleInputKey(msg)
		case ModeConfirmDelete:
			return v.handleConfirmKey(msg)
		case ModeBrowse:
			return v.handleBrowseKey(msg)
		}
		return v, nil

	case messages.TodosLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.list.SetTodos(msg.Todos)
		v.status.SetCounts(v.list.CompletedCount(), v.list.Count())
		if v.mode == ModeBrowse {
			v.status.Clear()
		}
		return v, nil

	case messages.TodoAdded:
		return v, v.afterMutation(msg.Err)

	case messages.TodoUpdated:
		return v, v.afterMutation(msg.Err)

	case messages.TodoToggled:
		return v, v.afterMutation(msg.Err)

	case messages.TodoDeleted:
		return v, v.afterMutation(msg.Err)

	case messages.StoreChanged:
		return v, v.loadTodos()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Cursor blink and other input internals.
	if v.mode == ModeAdd || v.mode == ModeEdit {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// afterMutation reloads on success or shows the error.
func (v *View) afterMutation(err error) tea.Cmd {
	if err != nil {
		v.setError(err)
		return nil
	}
	return v.Reload()
}

func (v *View) setError(err error) {
	v.err = err
	v.status.SetState(status.StateError)
	v.status.SetMessage(err.Error())
}

// handleBrowseKey handles keys while navigating the list.
func (v *View) handleBrowseKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	selected := v.list.SelectedTodo()

	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(k, v.keymap.Up), keymap.Matches(k, v.keymap.Down),
		k == "g", k == "G", k == "home", k == "end":
		v.list, _ = v.list.Update(msg)
		return v, nil

	case keymap.Matches(k, v.keymap.Toggle):
		if selected != nil {
			return v, v.toggleTodo(selected.ID)
		}

	case keymap.Matches(k, v.keymap.Add):
		v.target = nil
		return v, v.openInput(ModeAdd, "Add", "")

	case keymap.Matches(k, v.keymap.Edit):
		if selected != nil {
			todo := *selected
			v.target = &todo
			return v, v.openInput(ModeEdit, "Edit", todo.Description)
		}

	case keymap.Matches(k, v.keymap.Delete):
		if selected != nil {
			todo := *selected
			v.target = &todo
			v.mode = ModeConfirmDelete
			v.status.SetState(status.StateConfirm)
			v.status.SetMessage(fmt.Sprintf("Delete %q?", todo.Description))
		}

	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Reload()
	}

	return v, nil
}

func (v *View) openInput(mode Mode, label, value string) tea.Cmd {
	v.mode = mode
	v.input.SetLabel(label)
	v.input.Reset()
	v.input.SetValue(value)
	v.status.SetState(status.StateInput)
	v.status.SetMessage("")
	return v.input.Focus()
}

func (v *View) closeInput() {
	v.mode = ModeBrowse
	v.target = nil
	v.input.Blur()
	v.input.Reset()
	v.status.Clear()
}

// handleInputKey handles keys while adding or editing.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Cancel):
		v.closeInput()
		return v, nil

	case keymap.Matches(k, v.keymap.Submit):
		description := strings.TrimSpace(v.input.Value())
		mode, target := v.mode, v.target
		v.closeInput()
		if description == "" {
			return v, nil
		}
		if mode == ModeEdit && target != nil {
			todo := *target
			todo.Description = description
			return v, v.updateTodo(todo)
		}
		return v, v.addTodo(description)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleConfirmKey handles the y/n delete prompt.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	target := v.target
	v.mode = ModeBrowse
	v.target = nil
	v.status.Clear()

	if keymap.Matches(msg.String(), v.keymap.Confirm) && target != nil {
		return v, v.deleteTodo(target.ID)
	}
	return v, nil
}

// View renders the todos view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Todos"))
	b.WriteString("\n\n")

	switch {
	case v.loading && v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("Loading todos..."))
	case v.err != nil && v.list.IsEmpty():
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	if v.mode == ModeAdd || v.mode == ModeEdit {
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	b.WriteString(v.status.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-chromeLines)
	v.input.SetWidth(width)
	v.status.SetWidth(width)
}

// Todos returns the todos currently shown.
func (v *View) Todos() []domain.Todo {
	return v.list.Todos()
}

// SelectedIndex returns the currently selected index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Loading reports whether a reload is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
