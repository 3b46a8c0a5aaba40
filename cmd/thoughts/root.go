package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/thoughts"
	"github.com/aretw0/thoughts/internal/config"
)

var (
	verbose    bool
	dataDir    string
	adapter    string
	format     string
	configFile string
	readOnly   bool

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "thoughts",
	Short: "Capture your ideas, instantly",
	Long: `thoughts keeps short notes, each tagged with a category
(Work, Personal, Study, Ideas, Tasks), newest first.
Everything is saved to a local store after every change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		loaded, err := config.Load(config.Sources{File: configFile})
		if err != nil {
			return err
		}
		if dataDir != "" {
			loaded.Dir = dataDir
		}
		if adapter != "" {
			loaded.Adapter = adapter
		}
		if format != "" {
			loaded.Format = format
		}
		if readOnly {
			loaded.ReadOnly = true
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		slog.Debug("configuration resolved", "dir", cfg.Dir, "adapter", cfg.Adapter, "format", cfg.Format)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openNotebook opens the notebook described by the resolved configuration.
func openNotebook() (*thoughts.Notebook, error) {
	nb, err := thoughts.Open(cfg.Dir,
		thoughts.WithAdapter(cfg.Adapter),
		thoughts.WithFormat(cfg.Format),
		thoughts.WithReadOnly(cfg.ReadOnly),
		thoughts.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open notebook: %w", err)
	}
	return nb, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&dataDir, "dir", "", "Data directory (default $XDG_DATA_HOME/thoughts)")
	flags.StringVar(&adapter, "adapter", "", "Storage adapter: fs or sqlite")
	flags.StringVar(&format, "format", "", "Storage format: json or yaml")
	flags.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/thoughts/config.yaml)")
	flags.BoolVar(&readOnly, "read-only", false, "Never write changes back")
}
