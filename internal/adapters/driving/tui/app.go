package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/todos/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/views/todos"
	"github.com/custodia-labs/todos/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	keymap *keymap.KeyMap

	// todosView is the to-do list.
	todosView *todos.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// changes delivers store change notifications once the watcher is running.
	changes <-chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// watchStarted carries the change channel back into the update loop.
type watchStarted struct {
	changes <-chan struct{}
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingTodoService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      keymap.DefaultKeyMap(),
		todosView:   todos.NewView(s, ports.Todo),
		currentView: messages.ViewTodos,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.todosView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads the list and starts watching the store.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("todos"),
		a.todosView.Init(),
		a.startWatcher(),
	)
}

// startWatcher subscribes to store changes when a watcher is configured.
func (a *App) startWatcher() tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	watcher, ctx := a.ports.Watcher, a.ctx
	return func() tea.Msg {
		ch, err := watcher.Watch(ctx)
		if err != nil {
			// Live reload is optional; the list still works without it.
			logger.Warn("store watcher unavailable: %v", err)
			return nil
		}
		return watchStarted{changes: ch}
	}
}

// waitForChange blocks until the next change notification.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.StoreChanged{}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			k := msg.String()
			switch {
			case keymap.Matches(k, a.keymap.Cancel), keymap.Matches(k, a.keymap.Help):
				a.currentView = messages.ViewTodos
			case keymap.Matches(k, a.keymap.Quit):
				return a, tea.Quit
			}
			return a, nil
		}
		a.todosView, cmd = a.todosView.Update(msg)
		a.err = a.todosView.Err()
		return a, cmd

	case watchStarted:
		a.changes = msg.changes
		return a, waitForChange(a.changes)

	case messages.StoreChanged:
		a.todosView, cmd = a.todosView.Update(msg)
		if a.changes != nil {
			return a, tea.Batch(cmd, waitForChange(a.changes))
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.todosView, cmd = a.todosView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	a.todosView, cmd = a.todosView.Update(msg)
	a.err = a.todosView.Err()
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewTodos:
		return a.todosView.View()
	default:
		return a.todosView.View()
	}
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to list"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// TodosView returns the to-do list view.
func (a *App) TodosView() *todos.View {
	return a.todosView
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.todosView.SetDimensions(width, height)
}
