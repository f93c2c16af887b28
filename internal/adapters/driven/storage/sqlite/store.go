package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/todos/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/ports/driven"
	"github.com/custodia-labs/todos/internal/logger"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "db.sqlite"

// Store is a SQLite-backed storage holding the todos table.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns ~/.todos/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".todos", "data"), nil
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.todos/data/db.sqlite.
// The directory, the database file and the schema are created on first run.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		logger.Info("creating database file %s", dbPath)
	} else {
		logger.Debug("database file %s already exists", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// sql.Open is lazy; force the file into existence now so startup
	// failures surface here rather than on the first command.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TodoStore returns a TodoStore interface backed by this store.
func (s *Store) TodoStore() driven.TodoStore {
	return &todoStore{store: s}
}

// migrate runs all pending migrations, one transaction per file.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_create_todos.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}
	return tx.Commit()
}

// schemaVersion returns the highest applied migration version.
func (s *Store) schemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Todo Store ====================

// todoStore implements driven.TodoStore.
type todoStore struct {
	store *Store
}

var _ driven.TodoStore = (*todoStore)(nil)

// Create inserts a new todo.
func (s *todoStore) Create(ctx context.Context, description string, status domain.TodoStatus) (int64, error) {
	res, err := s.store.db.ExecContext(ctx,
		"INSERT INTO todos (description, status) VALUES (?, ?)",
		description, string(status))
	if err != nil {
		return 0, fmt.Errorf("inserting todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// List returns all todos in engine-default order.
func (s *todoStore) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT id, description, status FROM todos")
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}

	return todos, nil
}

// Get retrieves a todo by ID.
func (s *todoStore) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, description, status FROM todos WHERE id = ?", id)

	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return todo, err
}

// Update overwrites the description and status of a todo.
func (s *todoStore) Update(ctx context.Context, todo domain.Todo) error {
	_, err := s.store.db.ExecContext(ctx,
		"UPDATE todos SET description = ?, status = ? WHERE id = ?",
		todo.Description, string(todo.Status), todo.ID)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	return nil
}

// Delete removes a todo.
func (s *todoStore) Delete(ctx context.Context, id int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var todo domain.Todo
	var status string
	if err := row.Scan(&todo.ID, &todo.Description, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}
	todo.Status = domain.TodoStatus(status)
	return &todo, nil
}
