package main

import (
	"os"

	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/tasklist/internal/config"
	"github.com/MihkelHunter/tasklist/internal/logging"
	"github.com/MihkelHunter/tasklist/internal/store"
	"github.com/MihkelHunter/tasklist/internal/todo"
	"github.com/MihkelHunter/tasklist/internal/ui"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	repo, err := store.Open(cfg.Backend, cfg.TasksPath(), logger)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	st := todo.NewStore(repo, store.ExportCSV, logger)
	defer st.Close()

	// An unreadable file must not be replaced by the next save.
	if _, err := st.Load(); err != nil {
		logger.Fatalf("load tasks: %v", err)
	}

	a := app.NewWithID("io.github.mihkelhunter.tasklist")
	ui.New(a, st, cfg, logger).ShowAndRun()
}
