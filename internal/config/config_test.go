package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/status"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOARDSYNC_CONFIG", "BOARDSYNC_LOG_MODE", "BOARDSYNC_LOG_FORMAT", "LOG_MODE", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boardsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ModeNormal, cfg.Logging.Mode)
	assert.Equal(t, FormatText, cfg.Logging.Format)
	require.NoError(t, cfg.Validate())

	table, err := cfg.ResolverTable()
	require.NoError(t, err)
	assert.Equal(t, status.DefaultTable(), table)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[logging]
mode = "debug"
format = "JSON"

[[resolver.rules]]
status = "DONE"
keywords = ["feito"]

[[resolver.rules]]
status = "in_progress"
keywords = ["doing"]

[resolver.labels]
"FEITO" = "DONE"
`)

	cfg, err := Load(Flags{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, ModeVerbose, cfg.Logging.Mode)
	assert.Equal(t, FormatJSON, cfg.Logging.Format)

	r, err := cfg.NewResolver()
	require.NoError(t, err)

	// custom rules replace the default list
	assert.Equal(t, status.Done, r.Resolve(status.Task{ColumnIdentifier: "feito-ontem"}))
	assert.Equal(t, status.InProgress, r.Resolve(status.Task{ColumnIdentifier: "doing"}))
	assert.Equal(t, status.Todo, r.Resolve(status.Task{ColumnIdentifier: "concluido"}))

	// labels extend the defaults
	assert.Equal(t, status.Done, r.Resolve(status.Task{Status: "feito"}))
	assert.Equal(t, status.Review, r.Resolve(status.Task{Status: "Revisão"}))
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "[logging]\nmode = \"quiet\"\n")

	tests := []struct {
		name       string
		env        map[string]string
		flags      Flags
		wantMode   string
		wantFormat string
	}{
		{
			name:       "file only",
			flags:      Flags{ConfigFile: path},
			wantMode:   ModeQuiet,
			wantFormat: FormatText,
		},
		{
			name:       "env overrides file",
			env:        map[string]string{"BOARDSYNC_LOG_MODE": "verbose", "LOG_FORMAT": "json"},
			flags:      Flags{ConfigFile: path},
			wantMode:   ModeVerbose,
			wantFormat: FormatJSON,
		},
		{
			name:       "prefixed env wins over generic",
			env:        map[string]string{"BOARDSYNC_LOG_MODE": "normal", "LOG_MODE": "quiet"},
			flags:      Flags{ConfigFile: path},
			wantMode:   ModeNormal,
			wantFormat: FormatText,
		},
		{
			name:       "flags override env",
			env:        map[string]string{"BOARDSYNC_LOG_MODE": "quiet"},
			flags:      Flags{ConfigFile: path, Debug: true, JSON: true},
			wantMode:   ModeVerbose,
			wantFormat: FormatJSON,
		},
		{
			name:       "flags override generic LOG_MODE",
			env:        map[string]string{"LOG_MODE": "quiet", "LOG_FORMAT": "json"},
			flags:      Flags{Verbose: true},
			wantMode:   ModeVerbose,
			wantFormat: FormatJSON,
		},
		{
			name:       "quiet flag wins over verbose",
			flags:      Flags{Verbose: true, Quiet: true},
			wantMode:   ModeQuiet,
			wantFormat: FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, cfg.Logging.Mode)
			assert.Equal(t, tt.wantFormat, cfg.Logging.Format)
		})
	}
}

func TestLoadFromEnvConfigPath(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[logging]\nformat = \"json\"\n")
	t.Setenv("BOARDSYNC_CONFIG", path)

	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.True(t, cfg.LoggerOptions().JSON)
}

func TestLoadWorkingDirectoryFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("[logging]\nmode = \"verbose\"\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, cfg.File)
	assert.True(t, cfg.LoggerOptions().Verbose)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		missing  bool
		category boarderrors.ErrorCategory
		code     string
	}{
		{name: "missing explicit file", missing: true, category: boarderrors.ErrorCategoryConfiguration, code: boarderrors.CodeConfigRead},
		{name: "bad toml", body: "[logging\nmode=", category: boarderrors.ErrorCategoryConfiguration, code: boarderrors.CodeConfigParse},
		{name: "bad mode", body: "[logging]\nmode = \"loud\"\n", category: boarderrors.ErrorCategoryValidation, code: boarderrors.CodeInvalidValue},
		{name: "bad format", body: "[logging]\nformat = \"xml\"\n", category: boarderrors.ErrorCategoryValidation, code: boarderrors.CodeInvalidValue},
		{name: "unknown rule status", body: "[[resolver.rules]]\nstatus = \"BLOCKED\"\nkeywords = [\"x\"]\n", category: boarderrors.ErrorCategoryValidation, code: boarderrors.CodeInvalidTable},
		{name: "empty keywords", body: "[[resolver.rules]]\nstatus = \"DONE\"\nkeywords = []\n", category: boarderrors.ErrorCategoryValidation, code: boarderrors.CodeInvalidTable},
		{name: "overdue label", body: "[resolver.labels]\n\"Atrasado\" = \"TODO\"\n", category: boarderrors.ErrorCategoryValidation, code: boarderrors.CodeInvalidTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "absent.toml")
			if !tt.missing {
				path = writeConfig(t, tt.body)
			}

			_, err := Load(Flags{ConfigFile: path})
			require.Error(t, err)

			var boardErr *boarderrors.BoardError
			require.ErrorAs(t, err, &boardErr)
			assert.Equal(t, tt.category, boardErr.Category)
			assert.Equal(t, tt.code, boardErr.Code)
		})
	}
}

func TestLoggerOptions(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.LoggerOptions().Verbose)
	assert.False(t, cfg.LoggerOptions().Quiet)

	cfg.Logging.Mode = ModeQuiet
	assert.True(t, cfg.LoggerOptions().Quiet)
}
