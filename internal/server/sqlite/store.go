// Package sqlite provides SQLite-backed persistence for the local todo
// server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT    NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	user_id   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_user ON todos(user_id);
`

// Store persists todos in a single SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the todo database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// List returns todos in insertion order. With userID > 0 only that owner's
// todos are returned.
func (s *Store) List(ctx context.Context, userID int64) ([]model.Todo, error) {
	q := `SELECT id, title, completed, user_id FROM todos ORDER BY id`
	args := []any{}
	if userID > 0 {
		q = `SELECT id, title, completed, user_id FROM todos WHERE user_id = ? ORDER BY id`
		args = append(args, userID)
	}

	rows, err := s.sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		var completed int
		if err := rows.Scan(&t.ID, &t.Title, &completed, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.Completed = completed != 0
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

// Insert stores a new todo and returns it with its assigned id.
func (s *Store) Insert(ctx context.Context, t model.Todo) (model.Todo, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO todos (title, completed, user_id) VALUES (?, ?, ?)`,
		t.Title, boolToInt(t.Completed), t.UserID,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id
	return t, nil
}

// Patch applies a partial update. The second return is false when no todo
// with that id exists.
func (s *Store) Patch(ctx context.Context, id int64, p store.Patch) (model.Todo, bool, error) {
	if !p.IsZero() {
		sets := []string{}
		args := []any{}
		if p.Title != nil {
			sets = append(sets, "title = ?")
			args = append(args, *p.Title)
		}
		if p.Completed != nil {
			sets = append(sets, "completed = ?")
			args = append(args, boolToInt(*p.Completed))
		}
		args = append(args, id)
		q := fmt.Sprintf(`UPDATE todos SET %s WHERE id = ?`, strings.Join(sets, ", "))
		if _, err := s.sqlDB.ExecContext(ctx, q, args...); err != nil {
			return model.Todo{}, false, fmt.Errorf("update todo: %w", err)
		}
	}
	return s.get(ctx, id)
}

// Delete removes a todo by id; false when it did not exist.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) get(ctx context.Context, id int64) (model.Todo, bool, error) {
	var t model.Todo
	var completed int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, title, completed, user_id FROM todos WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &completed, &t.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, false, nil
	}
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("get todo: %w", err)
	}
	t.Completed = completed != 0
	return t, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
