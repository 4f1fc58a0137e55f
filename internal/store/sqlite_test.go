package store

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/tasklist/internal/todo"
)

func TestSQLiteRoundTrip(t *testing.T) {
	logger, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "tasks.db")

	repo, err := NewSQLite(path, logger)
	require.NoError(t, err)
	s := todo.NewStore(repo, ExportCSV, logger)
	for _, d := range []string{"a", "b, with comma", "c", "d"} {
		require.NoError(t, s.Append(todo.NewTask(d, todo.PriorityMedium, "2024-01-01", todo.CategoryPersonal)))
	}
	require.NoError(t, s.Complete(0))
	require.NoError(t, s.Remove(2))
	require.NoError(t, s.Edit(2, "dee"))
	want := s.Tasks()
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path, logger)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := todo.NewStore(reopened, ExportCSV, logger).Load()
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, []string{"a", "b, with comma", "dee"}, []string{got[0].Description, got[1].Description, got[2].Description})
	assert.True(t, got[0].Completed)
}

func TestSQLiteSaveLogsRowCount(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "tasks.db"), logger)
	require.NoError(t, err)
	defer repo.Close()

	tasks := []*todo.Task{
		todo.NewTask("a", todo.PriorityLow, "2024-01-01", todo.CategoryWork),
		todo.NewTask("b", todo.PriorityLow, "2024-01-01", todo.CategoryWork),
	}
	require.NoError(t, repo.Save(tasks))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "tasks saved", entry.Message)
	assert.Equal(t, 2, entry.Data["tasks"])
	assert.Equal(t, "sqlite", entry.Data["backend"])
}

func TestSQLiteEmpty(t *testing.T) {
	logger, _ := test.NewNullLogger()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "tasks.db"), logger)
	require.NoError(t, err)
	defer repo.Close()

	tasks, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestOpen(t *testing.T) {
	logger, _ := test.NewNullLogger()
	dir := t.TempDir()

	repo, err := Open(BackendText, filepath.Join(dir, "tasks.txt"), logger)
	require.NoError(t, err)
	assert.IsType(t, &TextFile{}, repo)

	repo, err = Open(BackendSQLite, filepath.Join(dir, "tasks.db"), logger)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open("mongo", filepath.Join(dir, "x"), logger)
	assert.Error(t, err)
}
