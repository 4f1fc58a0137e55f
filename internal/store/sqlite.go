package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required

	"github.com/MihkelHunter/tasklist/internal/todo"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER PRIMARY KEY,
	description TEXT    NOT NULL,
	priority    TEXT    NOT NULL DEFAULT '',
	due_date    TEXT    NOT NULL DEFAULT '',
	category    TEXT    NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0
);`

// SQLite keeps the task list in a single table ordered by position. Like
// TextFile, every Save rewrites the whole list.
type SQLite struct {
	db   *sql.DB
	path string
	log  log.FieldLogger
}

// NewSQLite opens (or creates) a SQLite database at the given path.
func NewSQLite(path string, logger log.FieldLogger) (*SQLite, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &todo.PersistenceError{Op: "open", Path: path, Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &todo.PersistenceError{Op: "open", Path: path, Err: fmt.Errorf("open db: %w", err)}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &todo.PersistenceError{Op: "open", Path: path, Err: fmt.Errorf("migrate: %w", err)}
	}
	return &SQLite{
		db:   db,
		path: path,
		log:  logger.WithFields(log.Fields{"backend": "sqlite", "path": path}),
	}, nil
}

func (s *SQLite) Load() ([]*todo.Task, error) {
	rows, err := s.db.Query(
		`SELECT description, priority, due_date, category, completed
		 FROM tasks ORDER BY position ASC`,
	)
	if err != nil {
		return nil, &todo.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer rows.Close()

	var tasks []*todo.Task
	for rows.Next() {
		t := &todo.Task{}
		var priority, category string
		var completed int
		if err := rows.Scan(&t.Description, &priority, &t.DueDate, &category, &completed); err != nil {
			return nil, &todo.PersistenceError{Op: "load", Path: s.path, Err: err}
		}
		t.Priority = todo.Priority(priority)
		t.Category = todo.Category(category)
		t.Completed = completed != 0
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &todo.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return tasks, nil
}

func (s *SQLite) Save(tasks []*todo.Task) error {
	if err := s.save(tasks); err != nil {
		return &todo.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	s.log.WithField("tasks", len(tasks)).Debug("tasks saved")
	return nil
}

func (s *SQLite) save(tasks []*todo.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		`INSERT INTO tasks (position, description, priority, due_date, category, completed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.Exec(
			i, t.Description, string(t.Priority), t.DueDate, string(t.Category), boolToInt(t.Completed),
		); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
