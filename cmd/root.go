// Package cmd defines the CLI commands for the ogtool executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mario263/OG-Tool/internal/config"
	"github.com/Mario263/OG-Tool/internal/logging"
)

var cfgFile string

// runtime carries the dependencies every subcommand needs. It is built in
// PersistentPreRunE so flags and config are resolved exactly once.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
}

var rt *runtime

// newRuntime is a variable so tests can inject a stub.
var newRuntime = func() (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ogtool",
		Short: "A single-domain content crawler.",
		Long: `ogtool crawls one web domain, distinguishes listing pages from content
pages, extracts article text with author attribution, and reports the
result as structured items. It runs either as a one-shot CLI crawl or as
an HTTP service.`,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}
			rt = r
			zap.ReplaceGlobals(r.logger)
			return nil
		},

		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if rt != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults apply when unset)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ogtool: %v\n", err)
		os.Exit(1)
	}
}
