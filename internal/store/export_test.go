package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/tasklist/internal/todo"
)

func TestExportSnapshot(t *testing.T) {
	s, path := newTextStore(t)
	require.NoError(t, s.Append(todo.NewTask("Buy milk", todo.PriorityHigh, "2024-01-01", todo.CategoryShopping)))
	require.NoError(t, s.Append(todo.NewTask("Report", todo.PriorityLow, "2024-01-02", todo.CategoryWork)))
	require.NoError(t, s.Complete(1))

	before, err := os.Stat(path)
	require.NoError(t, err)
	body := readFile(t, path)

	// Coarse mtime resolution on some filesystems would hide a rewrite.
	time.Sleep(10 * time.Millisecond)

	out := filepath.Join(t.TempDir(), "export", "tasks.csv")
	n, err := s.ExportSnapshot(out)
	require.NoError(t, err)

	exported := readFile(t, out)
	assert.Equal(t, "Task,Priority,Due Date,Category,Completed\n"+body, exported)
	assert.EqualValues(t, len(exported), n)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, body, readFile(t, path))
}

func TestExportEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tasks.csv")
	_, err := ExportCSV(out, nil)
	require.NoError(t, err)
	assert.Equal(t, "Task,Priority,Due Date,Category,Completed\n", readFile(t, out))
}

func TestExportFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := ExportCSV(filepath.Join(blocker, "tasks.csv"), nil)

	var pe *todo.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "export", pe.Op)
}
