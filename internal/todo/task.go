// Package todo defines the task model and the Store that keeps the ordered
// task list in step with its persisted copy.
package todo

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Priority of a task. Values outside the constants are kept as-is.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns the priorities in the order the input row offers them.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Category of a task. Values outside the constants are kept as-is.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryOthers   Category = "Others"
)

// Categories returns the categories in the order the input row offers them.
func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryOthers}
}

// RecordFields is the number of fields in one persisted task record.
const RecordFields = 5

// Header is the first line of a CSV export.
var Header = []string{"Task", "Priority", "Due Date", "Category", "Completed"}

// Task is one to-do item.
type Task struct {
	Description string
	Priority    Priority
	DueDate     string
	Category    Category
	Completed   bool
}

// NewTask returns an incomplete task. Fields are not validated.
func NewTask(description string, priority Priority, dueDate string, category Category) *Task {
	return &Task{
		Description: description,
		Priority:    priority,
		DueDate:     dueDate,
		Category:    category,
	}
}

func (t *Task) SetCompleted(completed bool) {
	t.Completed = completed
}

func (t *Task) SetDescription(description string) {
	t.Description = description
}

// Record returns the task's fields in persisted order.
func (t *Task) Record() []string {
	return []string{
		t.Description,
		string(t.Priority),
		t.DueDate,
		string(t.Category),
		strconv.FormatBool(t.Completed),
	}
}

// Serialize encodes the task as a single record without the trailing
// newline. Fields holding a comma, quote or line break are quoted, so plain
// tasks encode exactly as description,priority,dueDate,category,completed.
func (t *Task) Serialize() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	// Writes to a strings.Builder cannot fail.
	_ = w.Write(t.Record())
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// ParseRecord builds a task from a decoded record. Records with more than
// five fields come from lines whose description held an unquoted comma; the
// leading fields are joined back into the description.
func ParseRecord(fields []string) (*Task, error) {
	if len(fields) < RecordFields {
		return nil, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRecord, len(fields), RecordFields)
	}
	extra := len(fields) - RecordFields
	description := strings.Join(fields[:extra+1], ",")
	rest := fields[extra+1:]

	t := NewTask(description, Priority(rest[0]), rest[1], Category(rest[2]))
	t.SetCompleted(strings.EqualFold(strings.TrimSpace(rest[3]), "true"))
	return t, nil
}
