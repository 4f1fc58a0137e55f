// Package ui is the fyne desktop front end for todo.Store.
package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/tasklist/internal/config"
	"github.com/MihkelHunter/tasklist/internal/todo"
)

const windowTitle = "To-Do List"

// App is the main window and its state. Every handler runs on the fyne
// event goroutine and finishes its write before returning.
type App struct {
	store *todo.Store
	cfg   *config.Config
	log   log.FieldLogger

	fyneApp fyne.App
	win     fyne.Window

	table          *widget.Table
	taskEntry      *widget.Entry
	dueEntry       *widget.Entry
	prioritySelect *widget.Select
	categorySelect *widget.Select

	addBtn    *widget.Button
	doneBtn   *widget.Button
	editBtn   *widget.Button
	deleteBtn *widget.Button
	exportBtn *widget.Button
	themeBtn  *widget.Button

	rows     []todo.Task
	selected int
	dark     bool

	// notify shows a blocking notice; showError a failure. Tests swap them.
	notify    func(message string)
	showError func(err error)
}

// New builds the window for an already loaded store.
func New(a fyne.App, store *todo.Store, cfg *config.Config, logger log.FieldLogger) *App {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &App{
		store:    store,
		cfg:      cfg,
		log:      logger.WithField("component", "ui"),
		fyneApp:  a,
		selected: -1,
		dark:     cfg.Theme == config.ThemeDark,
	}
	a.Settings().SetTheme(appTheme{dark: s.dark})

	s.win = a.NewWindow(windowTitle)
	s.win.Resize(fyne.NewSize(700, 450))
	s.notify = func(message string) { dialog.ShowInformation(windowTitle, message, s.win) }
	s.showError = func(err error) { dialog.ShowError(err, s.win) }

	s.win.SetContent(s.buildUI())
	s.refresh()
	return s
}

// Window returns the main window.
func (s *App) Window() fyne.Window { return s.win }

// ShowAndRun shows the window and runs the event loop until it closes.
func (s *App) ShowAndRun() {
	s.win.CenterOnScreen()
	s.win.ShowAndRun()
}

// ── Build UI ─────────────────────────────────────────────────────────────────

func (s *App) buildUI() fyne.CanvasObject {
	s.taskEntry = widget.NewEntry()
	s.taskEntry.OnSubmitted = func(string) { s.addTask() }

	s.dueEntry = widget.NewEntry()
	s.dueEntry.SetPlaceHolder("YYYY-MM-DD")

	s.prioritySelect = widget.NewSelect(priorityOptions(), nil)
	s.prioritySelect.SetSelectedIndex(0)
	s.categorySelect = widget.NewSelect(categoryOptions(), nil)
	s.categorySelect.SetSelectedIndex(0)

	inputs := container.NewGridWithColumns(4,
		widget.NewLabel("Task:"),
		widget.NewLabel("Priority:"),
		widget.NewLabel("Due Date (YYYY-MM-DD):"),
		widget.NewLabel("Category:"),
		s.taskEntry,
		s.prioritySelect,
		s.dueEntry,
		s.categorySelect,
	)

	s.table = widget.NewTableWithHeaders(
		func() (int, int) { return len(s.rows), len(todo.Header) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("template")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		s.updateCell,
	)
	s.table.ShowHeaderColumn = false
	s.table.CreateHeader = func() fyne.CanvasObject {
		l := widget.NewLabel("")
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	s.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(todo.Header) {
			obj.(*widget.Label).SetText(todo.Header[id.Col])
		}
	}
	for col, w := range []float32{240, 90, 120, 100, 100} {
		s.table.SetColumnWidth(col, w)
	}
	s.table.OnSelected = func(id widget.TableCellID) { s.selected = id.Row }
	s.table.OnUnselected = func(widget.TableCellID) { s.selected = -1 }

	s.addBtn = widget.NewButton("Add Task", s.addTask)
	s.addBtn.Importance = widget.HighImportance
	s.doneBtn = widget.NewButton("Mark as Done", s.markDone)
	s.editBtn = widget.NewButton("Edit Task", s.editTask)
	s.deleteBtn = widget.NewButton("Delete Task", s.deleteTask)
	s.deleteBtn.Importance = widget.DangerImportance
	s.exportBtn = widget.NewButton("Export CSV", s.exportCSV)
	s.themeBtn = widget.NewButton("Toggle Theme", s.toggleTheme)

	buttons := container.NewHBox(
		layout.NewSpacer(),
		s.addBtn, s.doneBtn, s.editBtn, s.deleteBtn, s.exportBtn, s.themeBtn,
		layout.NewSpacer(),
	)

	return container.NewBorder(container.NewPadded(inputs), container.NewPadded(buttons), nil, nil, s.table)
}

func (s *App) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	if id.Row < 0 || id.Row >= len(s.rows) {
		label.SetText("")
		return
	}
	t := s.rows[id.Row]
	label.TextStyle = fyne.TextStyle{Italic: t.Completed}
	switch id.Col {
	case 0:
		label.SetText(t.Description)
	case 1:
		label.SetText(string(t.Priority))
	case 2:
		label.SetText(t.DueDate)
	case 3:
		label.SetText(string(t.Category))
	case 4:
		label.SetText(yesNo(t.Completed))
	}
}

// ── Actions ───────────────────────────────────────────────────────────────────

func (s *App) refresh() {
	s.rows = s.store.Tasks()
	s.table.Refresh()
}

func (s *App) addTask() {
	_, err := s.store.Add(
		s.taskEntry.Text,
		todo.Priority(s.prioritySelect.Selected),
		s.dueEntry.Text,
		todo.Category(s.categorySelect.Selected),
	)
	if s.report(err, "Please fill all fields!") {
		return
	}
	s.taskEntry.SetText("")
	s.dueEntry.SetText("")
	s.refresh()
}

func (s *App) markDone() {
	err := s.store.Complete(s.selected)
	if s.report(err, "Select a task to mark as done!") {
		return
	}
	s.refresh()
}

func (s *App) deleteTask() {
	err := s.store.Remove(s.selected)
	if s.report(err, "Select a task to delete!") {
		return
	}
	s.table.UnselectAll()
	s.selected = -1
	s.refresh()
}

func (s *App) editTask() {
	row := s.selected
	current, err := s.store.Task(row)
	if s.report(err, "Select a task to edit!") {
		return
	}

	entry := widget.NewEntry()
	entry.SetText(current.Description)
	items := []*widget.FormItem{widget.NewFormItem("Task", entry)}
	dialog.ShowForm("Edit Task", "Save", "Cancel", items, func(ok bool) {
		if ok {
			s.applyEdit(row, entry.Text)
		}
	}, s.win)
}

func (s *App) applyEdit(row int, description string) {
	err := s.store.Edit(row, description)
	if s.report(err, "Select a task to edit!") {
		return
	}
	s.refresh()
}

func (s *App) exportCSV() {
	path := s.cfg.ExportPath()
	n, err := s.store.ExportSnapshot(path)
	if err != nil {
		s.report(err, "")
		return
	}
	s.notify(fmt.Sprintf("Tasks exported to %s (%s)", path, humanize.Bytes(uint64(n))))
}

func (s *App) toggleTheme() {
	s.dark = !s.dark
	s.fyneApp.Settings().SetTheme(appTheme{dark: s.dark})

	s.cfg.Theme = config.ThemeLight
	if s.dark {
		s.cfg.Theme = config.ThemeDark
	}
	if err := s.cfg.Save(); err != nil {
		s.log.WithError(err).Warn("save theme preference")
	}
}

// report applies the error policy and reports whether the action must stop.
// Validation and selection problems block with notice; write failures are
// already logged by the store and are shown unless configured otherwise.
func (s *App) report(err error, notice string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, todo.ErrValidation), errors.Is(err, todo.ErrOutOfRange):
		s.notify(notice)
		return true
	case todo.IsPersistence(err):
		if !s.cfg.SwallowIOErrors {
			s.showError(err)
		}
		return false
	default:
		s.showError(err)
		return true
	}
}

func priorityOptions() []string {
	var out []string
	for _, p := range todo.Priorities() {
		out = append(out, string(p))
	}
	return out
}

func categoryOptions() []string {
	var out []string
	for _, c := range todo.Categories() {
		out = append(out, string(c))
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
