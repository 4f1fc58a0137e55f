package todo

import (
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Repository is the persistence contract behind a Store. Save always
// receives the full sequence and must replace whatever was stored before.
type Repository interface {
	Load() ([]*Task, error)
	Save(tasks []*Task) error
	Path() string
	Close() error
}

// Exporter writes a snapshot of tasks to a destination other than the
// repository.
type Exporter func(path string, tasks []*Task) (int64, error)

// Store owns the ordered task list and mirrors it to a Repository after
// every mutation. It is not safe for concurrent use.
type Store struct {
	repo   Repository
	export Exporter
	log    log.FieldLogger
	tasks  []*Task
}

// NewStore returns an empty Store. Call Load to read persisted tasks.
func NewStore(repo Repository, export Exporter, logger log.FieldLogger) *Store {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Store{
		repo:   repo,
		export: export,
		log:    logger.WithField("component", "store"),
	}
}

// Load replaces the in-memory list with the persisted one and returns it.
func (s *Store) Load() ([]Task, error) {
	tasks, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	s.tasks = tasks
	s.log.WithField("tasks", len(tasks)).Debug("tasks loaded")
	return s.Tasks(), nil
}

// Add validates input the way the input row does and appends a new task.
func (s *Store) Add(description string, priority Priority, dueDate string, category Category) (*Task, error) {
	description = strings.TrimSpace(description)
	dueDate = strings.TrimSpace(dueDate)
	if description == "" || dueDate == "" {
		return nil, ErrValidation
	}
	t := NewTask(description, priority, dueDate, category)
	return t, s.Append(t)
}

// Append adds t to the end of the list and persists.
func (s *Store) Append(t *Task) error {
	s.tasks = append(s.tasks, t)
	return s.Persist()
}

// Complete marks the task at index as done and persists.
func (s *Store) Complete(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.tasks[index].SetCompleted(true)
	return s.Persist()
}

// Remove deletes the task at index; later tasks move up by one.
func (s *Store) Remove(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.tasks = slices.Delete(s.tasks, index, index+1)
	return s.Persist()
}

// Edit replaces the description of the task at index. A blank description
// leaves the list and the file untouched.
func (s *Store) Edit(index int, description string) error {
	if err := s.check(index); err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		return nil
	}
	s.tasks[index].SetDescription(description)
	return s.Persist()
}

// Persist rewrites the repository with the current list.
func (s *Store) Persist() error {
	if err := s.repo.Save(s.tasks); err != nil {
		s.log.WithError(err).WithField("tasks", len(s.tasks)).Error("persist tasks")
		return err
	}
	return nil
}

// ExportSnapshot writes the header and every task to path and returns the
// number of bytes written. The repository is not touched.
func (s *Store) ExportSnapshot(path string) (int64, error) {
	n, err := s.export(path, s.tasks)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Error("export tasks")
		return 0, err
	}
	s.log.WithFields(log.Fields{"path": path, "tasks": len(s.tasks)}).Info("tasks exported")
	return n, nil
}

// Tasks returns a copy of the list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

// Task returns a copy of the task at index.
func (s *Store) Task(index int) (Task, error) {
	if err := s.check(index); err != nil {
		return Task{}, err
	}
	return *s.tasks[index], nil
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Path reports where the repository keeps the tasks.
func (s *Store) Path() string {
	return s.repo.Path()
}

func (s *Store) Close() error {
	return s.repo.Close()
}

func (s *Store) check(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, index, len(s.tasks))
	}
	return nil
}
