package config

import (
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
)

// Flags carries command line overrides. Zero values leave lower layers alone.
type Flags struct {
	ConfigFile string
	Debug      bool
	Verbose    bool
	Quiet      bool
	JSON       bool
}

// Load builds the configuration from defaults, the config file, the
// environment and flags, in that order, and validates the result.
func Load(flags Flags) (*Config, error) {
	cfg := Default()

	path, explicit := findConfigFile(flags.ConfigFile)
	if path != "" {
		if err := loadConfigFile(cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)
	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Op().WithField("file", cfg.File).
		WithField("mode", cfg.Logging.Mode).
		WithField("format", cfg.Logging.Format).
		Debug("configuration loaded")
	return cfg, nil
}

// findConfigFile returns the file to load and whether the user asked for it.
// An explicitly named file must exist; ./boardsync.toml is optional.
func findConfigFile(flagPath string) (string, bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if v := os.Getenv("BOARDSYNC_CONFIG"); v != "" {
		return v, true
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, false
	}
	return "", false
}

func loadConfigFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return boarderrors.NewConfigReadError(path, false, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return boarderrors.NewConfigReadError(path, true, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		logger.Op().WithField("file", path).
			WithField("keys", strings.Join(keys, ",")).
			Warn("ignoring unknown config keys")
	}

	cfg.Logging.Mode = normalizeMode(cfg.Logging.Mode)
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.File = path
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := firstEnv("BOARDSYNC_LOG_MODE", "LOG_MODE"); v != "" {
		cfg.Logging.Mode = normalizeMode(v)
	}
	if v := firstEnv("BOARDSYNC_LOG_FORMAT", "LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(v))
	}
}

func applyFlags(cfg *Config, flags Flags) {
	switch {
	case flags.Quiet:
		cfg.Logging.Mode = ModeQuiet
	case flags.Debug || flags.Verbose:
		cfg.Logging.Mode = ModeVerbose
	}
	if flags.JSON {
		cfg.Logging.Format = FormatJSON
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
