package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mario263/OG-Tool/internal/api"
	"github.com/Mario263/OG-Tool/internal/clock/system"
	"github.com/Mario263/OG-Tool/internal/crawler"
	"github.com/Mario263/OG-Tool/internal/export"
	iduuid "github.com/Mario263/OG-Tool/internal/id/uuid"
	"github.com/Mario263/OG-Tool/internal/progress"
	"github.com/Mario263/OG-Tool/internal/progress/sinks"
)

type crawlFlags struct {
	maxPages      int
	maxDepth      int
	delayMs       int
	respectRobots bool
	outDir        string
}

func newCrawlCmd() *cobra.Command {
	flags := crawlFlags{}
	cmd := &cobra.Command{
		Use:   "crawl <seed-url>",
		Short: "Runs one crawl and writes the results to disk",
		Long: `Crawls a single domain starting from the given seed URL and writes the
extracted items as result.json, result.csv and result.md in the output
directory.`,
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawlCommand(cmd, args[0], flags)
		},
	}
	cmd.Flags().IntVar(&flags.maxPages, "max-pages", 0, "page cap (0 uses the configured default)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "depth cap (0 uses the configured default)")
	cmd.Flags().IntVar(&flags.delayMs, "delay-ms", 0, "delay between requests in milliseconds (0 uses the configured default)")
	cmd.Flags().BoolVar(&flags.respectRobots, "respect-robots", true, "probe robots.txt before crawling")
	cmd.Flags().StringVar(&flags.outDir, "out", "", "output directory (defaults to export.dir from config)")
	return cmd
}

func runCrawlCommand(cmd *cobra.Command, seedURL string, flags crawlFlags) error {
	cfg := rt.cfg
	logger := rt.logger

	session := cfg.SessionConfig(crawler.Config{
		SeedURL:       seedURL,
		MaxPages:      flags.maxPages,
		MaxDepth:      flags.maxDepth,
		Delay:         time.Duration(flags.delayMs) * time.Millisecond,
		RespectRobots: flags.respectRobots,
	})

	hub := progress.NewHub(
		progress.Config{BaseContext: cmd.Context(), Logger: logger.Named("progress")},
		sinks.NewLogSink(logger.Named("events")),
	)
	defer func() {
		if err := hub.Close(cmd.Context()); err != nil {
			logger.Warn("progress hub close error", zap.Error(err))
		}
	}()

	crawlID, err := iduuid.New().NewRawID()
	if err != nil {
		return fmt.Errorf("generate crawl id: %w", err)
	}

	service := api.NewService(cfg, hub, system.New(), logger.Named("crawl"))
	result, err := service.Run(cmd.Context(), session, crawlID)
	if err != nil {
		return fmt.Errorf("run crawl: %w", err)
	}

	outDir := flags.outDir
	if outDir == "" {
		outDir = cfg.Export.Dir
	}
	if err := writeResults(outDir, &result); err != nil {
		return err
	}

	logger.Info("crawl finished",
		zap.String("team_id", result.TeamID),
		zap.Int("items", len(result.Items)),
		zap.String("out_dir", outDir),
	)
	return nil
}

// writeResults serializes the result in every supported format next to each
// other under dir.
func writeResults(dir string, result *crawler.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files := []struct {
		name   string
		writer func(f *os.File) export.Writer
	}{
		{"result.json", func(f *os.File) export.Writer { return export.NewJSONWriter(f) }},
		{"result.csv", func(f *os.File) export.Writer { return export.NewCSVWriter(f) }},
		{"result.md", func(f *os.File) export.Writer { return export.NewMarkdownWriter(f) }},
	}
	for _, target := range files {
		path := filepath.Join(dir, target.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		_, werr := target.writer(f).Write(result)
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("write %s: %w", path, werr)
		}
		if cerr != nil {
			return fmt.Errorf("close %s: %w", path, cerr)
		}
	}
	return nil
}
