package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/todos/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "todos-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "db.sqlite")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
	assert.FileExists(t, filepath.Join(nestedDir, DBFileName))
}

func TestNewStore_CreatesSchema(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var name string
	err := store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'todos'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "todos", name)

	version, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	_, err = store.TodoStore().Create(ctx, "Survives restart", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	todos, err := reopened.TodoStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Survives restart", todos[0].Description)

	version, err := reopened.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_Migrate_AppliesOnlyNewVersions(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	fsys := fstest.MapFS{
		"001_create_todos.up.sql": {Data: []byte("SELECT broken syntax here")},
		"002_add_index.up.sql":    {Data: []byte("CREATE INDEX idx_todos_status ON todos(status);")},
		"002_add_index.down.sql":  {Data: []byte("DROP INDEX idx_todos_status;")},
		"README.md":               {Data: []byte("ignored")},
	}

	// 001 is already recorded so its (broken) body must not run.
	require.NoError(t, store.migrate(fsys))

	version, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	// Running again is a no-op.
	require.NoError(t, store.migrate(fsys))
}

func TestStore_Migrate_FailureRollsBack(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	fsys := fstest.MapFS{
		"002_bad.up.sql": {Data: []byte("CREATE TABLE nope (;")},
	}

	err := store.migrate(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_bad.up.sql")

	version, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

// ==================== Todo Store Tests ====================

func TestTodoStore_Create(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	id, err := todos.Create(ctx, "Buy milk", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	assert.Positive(t, id)

	list, err := todos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Todo{ID: id, Description: "Buy milk", Status: domain.TodoStatusIncomplete}, list[0])
}

func TestTodoStore_Create_AssignsUniqueIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	first, err := todos.Create(ctx, "First", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	second, err := todos.Create(ctx, "First", domain.TodoStatusIncomplete)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTodoStore_Create_RejectsUnknownStatus(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.TodoStore().Create(context.Background(), "Bad", domain.TodoStatus("Archived"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting todo")
}

func TestTodoStore_Create_AllowsEmptyDescription(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id, err := store.TodoStore().Create(ctx, "", domain.TodoStatusIncomplete)
	require.NoError(t, err)

	todo, err := store.TodoStore().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", todo.Description)
}

func TestTodoStore_List_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	list, err := store.TodoStore().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTodoStore_Get(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	id, err := todos.Create(ctx, "Walk the dog", domain.TodoStatusIncomplete)
	require.NoError(t, err)

	todo, err := todos.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Walk the dog", todo.Description)
	assert.Equal(t, domain.TodoStatusIncomplete, todo.Status)
}

func TestTodoStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	todo, err := store.TodoStore().Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, todo)
}

func TestTodoStore_Update(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	id, err := todos.Create(ctx, "Draft", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	otherID, err := todos.Create(ctx, "Untouched", domain.TodoStatusIncomplete)
	require.NoError(t, err)

	err = todos.Update(ctx, domain.Todo{ID: id, Description: "Final", Status: domain.TodoStatusComplete})
	require.NoError(t, err)

	updated, err := todos.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Description)
	assert.Equal(t, domain.TodoStatusComplete, updated.Status)

	other, err := todos.Get(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, "Untouched", other.Description)
	assert.Equal(t, domain.TodoStatusIncomplete, other.Status)
}

func TestTodoStore_Update_NonexistentIsNoop(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	_, err := todos.Create(ctx, "Keep me", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	before, err := todos.List(ctx)
	require.NoError(t, err)

	err = todos.Update(ctx, domain.Todo{ID: 4242, Description: "Ghost", Status: domain.TodoStatusComplete})
	require.NoError(t, err)

	after, err := todos.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTodoStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	keepA, err := todos.Create(ctx, "A", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	drop, err := todos.Create(ctx, "B", domain.TodoStatusIncomplete)
	require.NoError(t, err)
	keepC, err := todos.Create(ctx, "C", domain.TodoStatusComplete)
	require.NoError(t, err)

	require.NoError(t, todos.Delete(ctx, drop))

	list, err := todos.List(ctx)
	require.NoError(t, err)
	ids := make([]int64, 0, len(list))
	for _, todo := range list {
		ids = append(ids, todo.ID)
	}
	assert.ElementsMatch(t, []int64{keepA, keepC}, ids)
}

func TestTodoStore_Delete_NonexistentIsNoop(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	_, err := todos.Create(ctx, "Stay", domain.TodoStatusIncomplete)
	require.NoError(t, err)

	require.NoError(t, todos.Delete(ctx, 9999))

	list, err := todos.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTodoStore_DeleteAll_LeavesEmptyList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	for _, d := range []string{"one", "two", "three"} {
		_, err := todos.Create(ctx, d, domain.TodoStatusIncomplete)
		require.NoError(t, err)
	}

	list, err := todos.List(ctx)
	require.NoError(t, err)
	for _, todo := range list {
		require.NoError(t, todos.Delete(ctx, todo.ID))
	}

	list, err = todos.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTodoStore_ConcurrentWrites(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	todos := store.TodoStore()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := todos.Create(ctx, "parallel", domain.TodoStatusIncomplete)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	list, err := todos.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, writers)
}

func TestTodoStore_ClosedStoreErrors(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.TodoStore().List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying todos")
}
