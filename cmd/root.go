package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maxkimambo/boardsync/internal/bus"
	"github.com/maxkimambo/boardsync/internal/config"
	"github.com/maxkimambo/boardsync/internal/logger"
)

var version = "v0.1.0"

// rootOptions holds persistent flags and the configuration they produce.
type rootOptions struct {
	configFile string
	debug      bool
	verbose    bool
	jsonLogs   bool
	quiet      bool

	cfg *config.Config
}

// NewRootCmd builds the boardsync command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "boardsync",
		Short: "Resolve kanban task statuses and probe the task event bus",
		Long: `boardsync normalizes task statuses (canonical codes, Portuguese labels and
column identifiers) into TODO, IN_PROGRESS, REVIEW, DONE or ARCHIVED, and drives
the task event bus the board, backlog, sprints and status report listen on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Flags{
				ConfigFile: opts.configFile,
				Debug:      opts.debug,
				Verbose:    opts.verbose,
				Quiet:      opts.quiet,
				JSON:       opts.jsonLogs,
			})
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logger.SetupWriters(cfg.LoggerOptions(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			logger.Op().WithField("version", version).WithField("config", cfg.File).Debug("boardsync starting")
			return nil
		},
	}

	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to a TOML config file (default: $BOARDSYNC_CONFIG or ./boardsync.toml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newEmitCmd(opts))
	rootCmd.AddCommand(newSimulateCmd(opts))

	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// newBus builds a bus around the configured resolver.
func (o *rootOptions) newBus() (*bus.Bus, error) {
	r, err := o.cfg.NewResolver()
	if err != nil {
		return nil, err
	}
	return bus.New(bus.WithResolver(r)), nil
}
