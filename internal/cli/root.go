package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/prodbar/internal/config"
)

// Options are the global flags
type Options struct {
	ConfigFile string
	Backend    string
	StateDir   string
	LogLevel   string
}

// env is what every command gets once the flags are parsed
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates the root command
func New() *cobra.Command {
	opts := &Options{}
	e := &env{}

	cmd := &cobra.Command{
		Use:   "prodbar",
		Short: "Queue metrics bar for contact-center supervisors",
		Long: `prodbar shows a compact bar with live metrics for up to 5 queues and
4 metrics. Use the gear button to change the selection, the theme or the
font size; choices are remembered between runs.

Examples:
  prodbar
  prodbar --store disk snapshot --format json
  prodbar --store disk watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(opts, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBar(cmd.Context(), e)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default .prodbar.yaml or the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "store", "", "storage backend: preferences or disk")
	cmd.PersistentFlags().StringVar(&opts.StateDir, "state-dir", "", "directory of the disk store")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	addCommands(cmd, e)
	return cmd
}

// addCommands registers every subcommand on topLevel
func addCommands(topLevel *cobra.Command, e *env) {
	addRun(topLevel, e)
	addSnapshot(topLevel, e)
	addWatch(topLevel, e)
	addConfigure(topLevel, e)
	addReset(topLevel, e)
	addCatalog(topLevel)
	addVersion(topLevel)
}

// setup loads the configuration, applies flag overrides and builds the logger
func (e *env) setup(opts *Options, logOut io.Writer) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	if opts.Backend != "" {
		cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(opts.Backend))
	}
	if opts.StateDir != "" {
		cfg.Storage.Dir = opts.StateDir
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.logger = NewLogger(logOut, cfg.Log)
	return nil
}
