package store

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/tasklist/internal/todo"
)

// Backend names accepted by Open.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Open returns the repository named by backend, storing tasks at path.
func Open(backend, path string, logger log.FieldLogger) (todo.Repository, error) {
	switch backend {
	case BackendText, "":
		return NewTextFile(path, logger), nil
	case BackendSQLite:
		return NewSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
