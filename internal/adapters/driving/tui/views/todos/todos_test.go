package todos

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/todos/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/todos/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/services"
)

func newTestView(t *testing.T, descriptions ...string) (*View, *services.TodoService) {
	t.Helper()

	svc := services.NewTodoService(memory.NewTodoStore())
	for _, d := range descriptions {
		require.NoError(t, svc.Add(context.Background(), d))
	}

	v := NewView(nil, svc)
	v.SetDimensions(80, 24)
	v = drain(t, v, v.Init())
	return v, svc
}

// drain runs cmd and feeds its message back into the view until no
// further command is produced.
func drain(t *testing.T, v *View, cmd tea.Cmd) *View {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return v
		}
		v, cmd = v.Update(msg)
	}
	return v
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, v *View, msg tea.KeyMsg) *View {
	t.Helper()
	v, cmd := v.Update(msg)
	return drain(t, v, cmd)
}

// send delivers msg without running the returned command. Focusing and
// typing into the input return cursor blink commands that block.
func send(v *View, msg tea.Msg) *View {
	v, _ = v.Update(msg)
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)
	require.NotNil(t, v)
	assert.Equal(t, ModeBrowse, v.Mode())
	assert.Empty(t, v.Todos())
}

func TestView_InitLoadsTodos(t *testing.T) {
	v, _ := newTestView(t, "Buy milk", "Walk dog")

	assert.Len(t, v.Todos(), 2)
	assert.False(t, v.Loading())
	assert.NoError(t, v.Err())
	assert.Contains(t, v.View(), "Buy milk")
	assert.Contains(t, v.View(), "0/2 done")
}

func TestView_NilServiceReportsError(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)
	v = drain(t, v, v.Init())

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "todo service not available")
}

func TestView_ToggleWithSpace(t *testing.T) {
	v, svc := newTestView(t, "Buy milk")

	v = press(t, v, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})

	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TodoStatusComplete, todos[0].Status)
	assert.Equal(t, domain.TodoStatusComplete, v.Todos()[0].Status)
}

func TestView_ToggleWithX(t *testing.T) {
	v, _ := newTestView(t, "Buy milk")

	v = press(t, v, keyRunes("x"))
	v = press(t, v, keyRunes("x"))

	assert.Equal(t, domain.TodoStatusIncomplete, v.Todos()[0].Status)
}

func TestView_AddTodo(t *testing.T) {
	v, svc := newTestView(t)

	v = send(v, keyRunes("a"))
	assert.Equal(t, ModeAdd, v.Mode())

	v = send(v, keyRunes("Call mom"))
	v = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeBrowse, v.Mode())
	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Call mom", todos[0].Description)
	assert.Len(t, v.Todos(), 1)
}

func TestView_AddTodo_BlankIsIgnored(t *testing.T) {
	v, svc := newTestView(t)

	v = send(v, keyRunes("a"))
	v = send(v, keyRunes("   "))
	v = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.Equal(t, ModeBrowse, v.Mode())
}

func TestView_AddTodo_Cancel(t *testing.T) {
	v, svc := newTestView(t)

	v = send(v, keyRunes("a"))
	v = send(v, keyRunes("Nope"))
	v = press(t, v, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeBrowse, v.Mode())
	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestView_QuitKeyIgnoredWhileTyping(t *testing.T) {
	v, _ := newTestView(t)

	v = send(v, keyRunes("a"))
	v = send(v, keyRunes("q"))

	assert.Equal(t, ModeAdd, v.Mode())
	assert.Equal(t, "q", v.input.Value())
}

func TestView_EditTodo(t *testing.T) {
	v, svc := newTestView(t, "Draft")

	v = send(v, keyRunes("e"))
	require.Equal(t, ModeEdit, v.Mode())
	assert.Equal(t, "Draft", v.input.Value())

	v = send(v, keyRunes(" v2"))
	v = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Draft v2", todos[0].Description)
	assert.Equal(t, domain.TodoStatusIncomplete, todos[0].Status)
}

func TestView_EditOnEmptyListDoesNothing(t *testing.T) {
	v, _ := newTestView(t)

	v = press(t, v, keyRunes("e"))
	assert.Equal(t, ModeBrowse, v.Mode())
}

func TestView_DeleteConfirmed(t *testing.T) {
	v, svc := newTestView(t, "A", "B")

	v = press(t, v, keyRunes("j"))
	v = press(t, v, keyRunes("d"))
	require.Equal(t, ModeConfirmDelete, v.Mode())
	assert.Equal(t, status.StateConfirm, v.status.State())
	assert.Contains(t, v.View(), `Delete "B"?`)

	v = press(t, v, keyRunes("y"))

	assert.Equal(t, ModeBrowse, v.Mode())
	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "A", todos[0].Description)
}

func TestView_DeleteCancelled(t *testing.T) {
	v, svc := newTestView(t, "A")

	v = press(t, v, keyRunes("d"))
	v = press(t, v, keyRunes("n"))

	assert.Equal(t, ModeBrowse, v.Mode())
	todos, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestView_Reload(t *testing.T) {
	v, svc := newTestView(t, "A")

	require.NoError(t, svc.Add(context.Background(), "Added elsewhere"))
	assert.Len(t, v.Todos(), 1)

	v = press(t, v, keyRunes("r"))
	assert.Len(t, v.Todos(), 2)
}

func TestView_StoreChangedReloads(t *testing.T) {
	v, svc := newTestView(t)

	require.NoError(t, svc.Add(context.Background(), "From another process"))

	v, cmd := v.Update(messages.StoreChanged{})
	v = drain(t, v, cmd)

	require.Len(t, v.Todos(), 1)
	assert.Equal(t, "From another process", v.Todos()[0].Description)
}

func TestView_QuitAndHelpKeys(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())

	_, cmd = v.Update(keyRunes("?"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())
}

func TestView_MutationErrorShownInStatusBar(t *testing.T) {
	v, _ := newTestView(t, "A")

	v, cmd := v.Update(messages.TodoToggled{ID: 1, Err: errors.New("disk full")})
	assert.Nil(t, cmd)
	assert.EqualError(t, v.Err(), "disk full")
	assert.Equal(t, status.StateError, v.status.State())
	assert.Contains(t, v.View(), "disk full")
}

func TestView_Navigation(t *testing.T) {
	v, _ := newTestView(t, "A", "B", "C")

	v = press(t, v, keyRunes("j"))
	v = press(t, v, keyRunes("j"))
	assert.Equal(t, 2, v.SelectedIndex())

	v = press(t, v, keyRunes("k"))
	assert.Equal(t, 1, v.SelectedIndex())
}
