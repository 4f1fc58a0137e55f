// Package store provides the persistence backends behind todo.Store: a flat
// text file (the default) and SQLite, plus the CSV exporter.
package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/tasklist/internal/fsutil"
	"github.com/MihkelHunter/tasklist/internal/todo"
)

// TextFile keeps one task record per line. There is no header line.
type TextFile struct {
	path string
	log  log.FieldLogger
}

// NewTextFile returns a TextFile backend for path. The file is created on
// the first Save.
func NewTextFile(path string, logger log.FieldLogger) *TextFile {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TextFile{
		path: path,
		log:  logger.WithFields(log.Fields{"backend": "text", "path": path}),
	}
}

// Load reads every record from the file. A missing file yields no tasks.
// Records with fewer than five fields are skipped with a warning.
func (s *TextFile) Load() ([]*todo.Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &todo.PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	tasks, skipped, err := decodeTasks(data, s.log)
	if err != nil {
		return nil, &todo.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	if skipped > 0 {
		s.log.WithField("skipped", skipped).Warn("malformed records dropped; they will be gone after the next save")
	}
	return tasks, nil
}

// Save replaces the file with one record per task.
func (s *TextFile) Save(tasks []*todo.Task) error {
	_, err := fsutil.WriteFileAtomic(s.path, func(w io.Writer) error {
		return encodeTasks(w, nil, tasks)
	})
	if err != nil {
		return &todo.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *TextFile) Path() string { return s.path }

func (s *TextFile) Close() error { return nil }

func encodeTasks(w io.Writer, header []string, tasks []*todo.Task) error {
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, t := range tasks {
		if err := cw.Write(t.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// decodeTasks reads quoted records. Lines the quoted reader rejects, or that
// decode to fewer than five fields, are read again in the unquoted form
// older files used: fields split on every comma.
func decodeTasks(data []byte, logger log.FieldLogger) ([]*todo.Task, int, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	var (
		tasks   []*todo.Task
		skipped int
	)
	legacy := func(line int) {
		if line < 1 || line > len(lines) || strings.TrimSpace(lines[line-1]) == "" {
			return
		}
		t, err := todo.ParseRecord(strings.Split(lines[line-1], ","))
		if err != nil {
			logger.WithError(err).WithField("line", line).Warn("skip malformed record")
			skipped++
			return
		}
		tasks = append(tasks, t)
	}

	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, skipped, err
			}
			for line := pe.StartLine; line <= pe.Line; line++ {
				legacy(line)
			}
			continue
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if len(fields) < todo.RecordFields {
			line, _ := cr.FieldPos(0)
			legacy(line)
			continue
		}
		t, err := todo.ParseRecord(fields)
		if err != nil {
			return nil, skipped, err
		}
		tasks = append(tasks, t)
	}
	return tasks, skipped, nil
}
