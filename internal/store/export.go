package store

import (
	"io"

	"github.com/MihkelHunter/tasklist/internal/fsutil"
	"github.com/MihkelHunter/tasklist/internal/todo"
)

// ExportCSV writes a header line followed by one record per task to path
// and returns the number of bytes written. It satisfies todo.Exporter.
func ExportCSV(path string, tasks []*todo.Task) (int64, error) {
	n, err := fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		return encodeTasks(w, todo.Header, tasks)
	})
	if err != nil {
		return 0, &todo.PersistenceError{Op: "export", Path: path, Err: err}
	}
	return n, nil
}
