package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv keeps the developer's TODO_* variables out of the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvConfigPath, "TODO_DATA_DIR", "TODO_TASKS_FILE", "TODO_EXPORT_FILE",
		"TODO_BACKEND", "TODO_THEME", "TODO_LOG_LEVEL", "TODO_SWALLOW_IO_ERRORS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".todoapp"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, ".todoapp", "tasks.txt"), cfg.TasksPath())
	assert.Equal(t, filepath.Join(home, ".todoapp", "tasks.csv"), cfg.ExportPath())
	assert.Equal(t, "text", cfg.Backend)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SwallowIOErrors)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
data_dir = "` + dir + `"
tasks_file = "mine.txt"
backend = "SQLite"
theme = "dark"
swallow_io_errors = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TODO_THEME", "light")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "mine.txt"), cfg.TasksPath())
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, ThemeLight, cfg.Theme, "env wins over file")
	assert.True(t, cfg.SwallowIOErrors)
}

func TestLoadAbsoluteFiles(t *testing.T) {
	clearEnv(t)
	out := filepath.Join(t.TempDir(), "out.csv")
	t.Setenv("TODO_DATA_DIR", t.TempDir())
	t.Setenv("TODO_EXPORT_FILE", out)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, out, cfg.ExportPath())
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"backend", "TODO_BACKEND", "postgres"},
		{"theme", "TODO_THEME", "solarized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TODO_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesEnvConfigPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = "`+dir+`"`+"\ntheme = \"dark\"\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, ThemeDark, cfg.Theme)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("TODO_DATA_DIR", dir)

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Theme = ThemeDark
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, again.Theme)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestSaveKeepsEnvOverridesOutOfFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	fileDataDir := filepath.Join(dir, "data")
	content := `data_dir = "` + fileDataDir + `"
theme = "light"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TODO_BACKEND", "sqlite")
	t.Setenv("TODO_DATA_DIR", filepath.Join(dir, "tmpdata"))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Backend)
	cfg.Theme = ThemeDark
	require.NoError(t, cfg.Save())

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(saved), "backend")
	assert.NotContains(t, string(saved), "tmpdata")

	clearEnv(t)
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, again.Theme)
	assert.Equal(t, "text", again.Backend)
	assert.Equal(t, fileDataDir, again.DataDir)
	assert.Equal(t, "debug", again.LogLevel, "keys the app does not own are kept")
}

func TestUsageListsEnv(t *testing.T) {
	assert.Contains(t, Usage(), "TODO_BACKEND")
}
