// Package cli implements the ecoscan command line interface
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecoscan/backend/config"
	"github.com/ecoscan/backend/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
	jsonLogs   bool
}

// NewRootCommand builds the ecoscan command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "ecoscan",
		Short:         "Extract materials from product text and score their sustainability",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./config.yaml, ./config/config.yaml or /etc/ecoscan/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as JSON")

	cmd.AddCommand(
		newAnalyzeCommand(opts),
		newMaterialsCommand(opts),
		newServeCommand(opts),
	)

	return cmd
}

// Execute runs the root command with os.Args
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.jsonLogs {
		cfg.Logging.Format = "json"
	}
	return cfg, nil
}

func (o *rootOptions) logger(cfg *config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithWriter(w, cfg.Logging.Level, cfg.Logging.Format == "json")
}
