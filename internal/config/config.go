package config

import (
	"fmt"
	"strings"

	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
	"github.com/maxkimambo/boardsync/internal/status"
)

const (
	ModeQuiet   = "quiet"
	ModeNormal  = "normal"
	ModeVerbose = "verbose"

	FormatText = "text"
	FormatJSON = "json"

	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "boardsync.toml"
)

// Config is the full set of boardsync settings.
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	Resolver ResolverConfig `toml:"resolver"`

	// File is the config file that was loaded, empty when none was.
	File string `toml:"-"`
}

// LoggingConfig controls verbosity and output format.
type LoggingConfig struct {
	Mode   string `toml:"mode"`
	Format string `toml:"format"`
}

// ResolverConfig customizes the status vocabulary.
type ResolverConfig struct {
	Rules  []RuleConfig      `toml:"rules"`
	Labels map[string]string `toml:"labels"`
}

// RuleConfig is one ordered column rule.
type RuleConfig struct {
	Status   string   `toml:"status"`
	Keywords []string `toml:"keywords"`
}

func setDefaults(cfg *Config) {
	cfg.Logging.Mode = ModeNormal
	cfg.Logging.Format = FormatText
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate checks logging settings and the resolver table.
func (c *Config) Validate() error {
	switch c.Logging.Mode {
	case ModeQuiet, ModeNormal, ModeVerbose:
	default:
		return boarderrors.NewValidationFailedError("logging.mode", c.Logging.Mode, "Configuration validation")
	}
	switch c.Logging.Format {
	case FormatText, FormatJSON:
	default:
		return boarderrors.NewValidationFailedError("logging.format", c.Logging.Format, "Configuration validation")
	}

	_, err := c.ResolverTable()
	return err
}

// ResolverTable builds the status table described by the resolver section.
func (c *Config) ResolverTable() (status.Table, error) {
	table := status.DefaultTable()

	if len(c.Resolver.Rules) > 0 {
		rules := make([]status.Rule, 0, len(c.Resolver.Rules))
		for i, rc := range c.Resolver.Rules {
			st, ok := status.ParseCanonical(rc.Status)
			if !ok {
				return status.Table{}, boarderrors.NewInvalidTableError(
					fmt.Sprintf("rule %d has unknown status %q", i+1, rc.Status))
			}
			rules = append(rules, status.Rule{Status: st, Keywords: rc.Keywords})
		}
		table.Rules = rules
	}

	if len(c.Resolver.Labels) > 0 {
		labels := make(map[string]status.CanonicalStatus, len(c.Resolver.Labels))
		for label, name := range c.Resolver.Labels {
			st, ok := status.ParseCanonical(name)
			if !ok {
				return status.Table{}, boarderrors.NewInvalidTableError(
					fmt.Sprintf("label %q maps to unknown status %q", label, name))
			}
			labels[label] = st
		}
		table = table.WithLabels(labels)
	}

	if err := table.Validate(); err != nil {
		return status.Table{}, err
	}
	return table, nil
}

// NewResolver builds the resolver for this configuration.
func (c *Config) NewResolver() (*status.KeywordResolver, error) {
	table, err := c.ResolverTable()
	if err != nil {
		return nil, err
	}
	return status.NewKeywordResolver(table)
}

// LoggerOptions maps logging settings onto logger options.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Verbose: c.Logging.Mode == ModeVerbose,
		Quiet:   c.Logging.Mode == ModeQuiet,
		JSON:    c.Logging.Format == FormatJSON,
	}
}

func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "debug" {
		return ModeVerbose
	}
	return mode
}
