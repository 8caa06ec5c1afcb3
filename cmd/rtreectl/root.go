package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdfblocks/rtree"
	"github.com/pdfblocks/rtree/internal/layout"
	"github.com/pdfblocks/rtree/internal/version"
)

var (
	logLevel   string
	jsonLogs   bool
	minEntries int
	maxEntries int
	cacheSize  int64
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "rtreectl",
	Short: "Query the layout blocks of a document through an R-tree index",
	Long: `rtreectl indexes the layout blocks of a document page by page and answers
region, nearest neighbour and reading order queries against them.

Block files are tab separated with the columns
  id page kind min_x min_y max_x max_y text
and may be zstd (.zst) or lz4 (.lz4) compressed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("rtreectl %s\n", version.String()))

	defaults := layout.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVar(&jsonLogs, "json", false, "Write logs as JSON")
	flags.IntVar(&minEntries, "min-entries", defaults.MinEntries, "Minimum entries per R-tree node")
	flags.IntVar(&maxEntries, "max-entries", defaults.MaxEntries, "Maximum entries per R-tree node")
	flags.Int64Var(&cacheSize, "cache-size", defaults.CacheSize, "Query results cached per page (0 = no cache)")
	flags.IntVar(&workers, "workers", defaults.Workers, "Pages indexed concurrently (0 = unlimited)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func newLogger() (*rtree.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if jsonLogs {
		return rtree.NewJSONLogger(level), nil
	}
	return rtree.NewTextLogger(level), nil
}

func config(metrics rtree.MetricsCollector) (layout.Config, error) {
	logger, err := newLogger()
	if err != nil {
		return layout.Config{}, err
	}
	return layout.Config{
		MinEntries: minEntries,
		MaxEntries: maxEntries,
		CacheSize:  cacheSize,
		Workers:    workers,
		Logger:     logger,
		Metrics:    metrics,
	}, nil
}

func loadDocument(ctx context.Context, path string, metrics rtree.MetricsCollector) (*layout.Document, error) {
	cfg, err := config(metrics)
	if err != nil {
		return nil, err
	}
	blocks, err := layout.OpenBlocks(path)
	if err != nil {
		return nil, err
	}
	return layout.BuildDocument(ctx, blocks, cfg)
}

func loadPage(ctx context.Context, path string, number int) (*layout.Document, *layout.Page, error) {
	doc, err := loadDocument(ctx, path, nil)
	if err != nil {
		return nil, nil, err
	}
	p, ok := doc.Page(number)
	if !ok {
		doc.Close()
		return nil, nil, fmt.Errorf("%s: no blocks on page %d", path, number)
	}
	return doc, p, nil
}

// parseFloats parses exactly n comma separated numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated numbers, got %d", s, n, len(parts))
	}
	vals := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func parseRect(s string) (rtree.BBox, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return rtree.BBox{}, err
	}
	bb := rtree.BBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	if err := bb.Validate(); err != nil {
		return rtree.BBox{}, err
	}
	return bb, nil
}

func parsePoint(s string) (float64, float64, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}
