// Package config loads settings from ~/.todoapp/config.toml and TODO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/MihkelHunter/tasklist/internal/fsutil"
)

const (
	appDirName     = ".todoapp"
	configFileName = "config.toml"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TODO_CONFIG"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds every user setting. Env vars take precedence over the file.
type Config struct {
	DataDir    string `toml:"data_dir" env:"TODO_DATA_DIR"`
	TasksFile  string `toml:"tasks_file" env:"TODO_TASKS_FILE" env-default:"tasks.txt"`
	ExportFile string `toml:"export_file" env:"TODO_EXPORT_FILE" env-default:"tasks.csv"`
	Backend    string `toml:"backend" env:"TODO_BACKEND" env-default:"text"`
	Theme      string `toml:"theme" env:"TODO_THEME" env-default:"light"`
	LogLevel   string `toml:"log_level" env:"TODO_LOG_LEVEL" env-default:"info"`

	// SwallowIOErrors logs failed writes without telling the user.
	SwallowIOErrors bool `toml:"swallow_io_errors" env:"TODO_SWALLOW_IO_ERRORS"`

	path string
}

// DefaultPath returns the config file location: $TODO_CONFIG or
// ~/.todoapp/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file is not an error; defaults and env vars still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{path: path}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	default:
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save records the settings the app changes at runtime (the theme) in the
// config file. Other keys keep what the file already says, so values that
// came from env vars or defaults are never written.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}

	doc := map[string]any{}
	if _, err := toml.DecodeFile(c.path, &doc); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config %s: %w", c.path, err)
	}
	doc["theme"] = c.Theme

	_, err := fsutil.WriteFileAtomic(c.path, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(doc)
	})
	if err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	return nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// TasksPath is the persisted task list location.
func (c *Config) TasksPath() string { return c.resolve(c.TasksFile) }

// ExportPath is the default CSV export location.
func (c *Config) ExportPath() string { return c.resolve(c.ExportFile) }

// Usage describes the environment variables Config reads.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c *Config) finalize() error {
	if c.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if strings.HasPrefix(c.DataDir, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.DataDir = filepath.Join(home, c.DataDir[2:])
	}

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "text", "sqlite":
	default:
		return fmt.Errorf("backend must be text or sqlite, got %q", c.Backend)
	}

	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	switch c.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("theme must be light or dark, got %q", c.Theme)
	}
	return nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}
