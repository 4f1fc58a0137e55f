// Package cli implements the todo command-line front end.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/tasklist/internal/config"
	"github.com/MihkelHunter/tasklist/internal/logging"
	"github.com/MihkelHunter/tasklist/internal/store"
	"github.com/MihkelHunter/tasklist/internal/todo"
)

// ErrUsage is returned for a malformed command line.
var ErrUsage = errors.New("usage error")

const usage = `Usage: todo [-config PATH] <command> [args]

Commands:
  list                                   show all tasks
  add -due DATE [-priority P] [-category C] DESCRIPTION...
  done N                                 mark task N as done
  rm N                                   delete task N
  edit N DESCRIPTION...                  replace the description of task N
  export [-o PATH]                       write tasks as CSV

N is the row number printed by list.
`

type runner struct {
	cfg    *config.Config
	store  *todo.Store
	log    log.FieldLogger
	stdout io.Writer
}

// Run executes one command. Output goes to stdout, logs to stderr.
func Run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file (default $TODO_CONFIG or ~/.todoapp/config.toml)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fmt.Fprintln(stderr, "\nEnvironment:")
		fmt.Fprint(stderr, config.Usage())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	repo, err := store.Open(cfg.Backend, cfg.TasksPath(), logger)
	if err != nil {
		return err
	}
	st := todo.NewStore(repo, store.ExportCSV, logger)
	defer st.Close()
	if _, err := st.Load(); err != nil {
		return err
	}

	r := &runner{cfg: cfg, store: st, log: logger, stdout: stdout}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list", "ls":
		return r.list()
	case "add":
		return r.add(rest, stderr)
	case "done":
		return r.done(rest)
	case "rm", "delete":
		return r.remove(rest)
	case "edit":
		return r.edit(rest)
	case "export":
		return r.export(rest, stderr)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (r *runner) list() error {
	tasks := r.store.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(r.stdout, "No tasks.")
		return nil
	}
	tw := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t"+strings.Join(todo.Header, "\t"))
	for i, t := range tasks {
		done := "No"
		if t.Completed {
			done = "Yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, t.Description, t.Priority, t.DueDate, t.Category, done)
	}
	return tw.Flush()
}

func (r *runner) add(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	due := fs.String("due", "", "due date, YYYY-MM-DD")
	priority := fs.String("priority", string(todo.PriorityHigh), "High, Medium or Low")
	category := fs.String("category", string(todo.CategoryWork), "Work, Personal, Shopping or Others")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	t, err := r.store.Add(strings.Join(fs.Args(), " "), todo.Priority(*priority), *due, todo.Category(*category))
	if err = r.check(err); err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Added task %d: %s\n", r.store.Len(), t.Description)
	return nil
}

func (r *runner) done(args []string) error {
	i, err := r.position(args)
	if err != nil {
		return err
	}
	if err := r.check(r.store.Complete(i)); err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Task %d marked as done.\n", i+1)
	return nil
}

func (r *runner) remove(args []string) error {
	i, err := r.position(args)
	if err != nil {
		return err
	}
	if err := r.check(r.store.Remove(i)); err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Task %d deleted.\n", i+1)
	return nil
}

func (r *runner) edit(args []string) error {
	i, err := r.position(args)
	if err != nil {
		return err
	}
	description := strings.Join(args[1:], " ")
	if err := r.check(r.store.Edit(i, description)); err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		fmt.Fprintf(r.stdout, "Task %d unchanged: empty description.\n", i+1)
		return nil
	}
	fmt.Fprintf(r.stdout, "Task %d updated.\n", i+1)
	return nil
}

func (r *runner) export(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", r.cfg.ExportPath(), "destination file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	n, err := r.store.ExportSnapshot(*out)
	if err != nil {
		return r.check(err)
	}
	fmt.Fprintf(r.stdout, "Tasks exported to %s (%s)\n", *out, humanize.Bytes(uint64(n)))
	return nil
}

// position parses the 1-based row number in args[0].
func (r *runner) position(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing task number", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: task number %q", ErrUsage, args[0])
	}
	return n - 1, nil
}

// check drops write failures when the config asks for them to be swallowed;
// the store has already logged them.
func (r *runner) check(err error) error {
	if err != nil && todo.IsPersistence(err) && r.cfg.SwallowIOErrors {
		return nil
	}
	return err
}
