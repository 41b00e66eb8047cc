package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/slime-finder/internal/config"
	"github.com/ironsheep/slime-finder/internal/report"
	"github.com/ironsheep/slime-finder/internal/search"
	"github.com/ironsheep/slime-finder/internal/seeds"
	"github.com/ironsheep/slime-finder/internal/world"
)

// Scan and report flags shared by search and scan.
var (
	halfWidth      int32
	step           int32
	minSize        int
	minArea        int
	rectanglesOnly bool
	allowOneWide   bool
	workers        int
	maxSeeds       int64

	endpoint     string
	websocketURL string
	async        bool
	console      bool
)

// Seed selection flags for search.
var (
	seedList  []int64
	seedStart int64
	seedStep  int64
	seedCount int64
	rngSeed   uint64
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Scan seeds until interrupted and report accepted clusters",
	Long: `Pulls seeds one at a time (random by default), scans the square window
[-half-width, half-width) around the origin for each, and reports every cluster
that passes the size policy to the console and any configured collectors.

Runs until interrupted unless --max-seeds, --seeds or --seed-count bound it.

Examples:
  slime-finder search --endpoint http://localhost:8080/report
  slime-finder search --workers 8 --half-width 2000 --min-size 16
  slime-finder search --seed-start 0 --seed-count 1000 --rectangles-only=false`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	addScanFlags(searchCmd)
	searchCmd.Flags().IntVar(&workers, "workers", 1, "Seeds scanned in parallel")
	searchCmd.Flags().Int64Var(&maxSeeds, "max-seeds", 0, "Stop after this many seeds (0 = unbounded)")

	searchCmd.Flags().Int64SliceVar(&seedList, "seeds", nil, "Scan exactly these seeds")
	searchCmd.Flags().Int64Var(&seedStart, "seed-start", 0, "Scan the sequence seed-start, seed-start+seed-step, ...")
	searchCmd.Flags().Int64Var(&seedStep, "seed-step", 1, "Increment of the seed sequence")
	searchCmd.Flags().Int64Var(&seedCount, "seed-count", 0, "Length of the seed sequence (0 = unbounded)")
	searchCmd.Flags().Uint64Var(&rngSeed, "rng-seed", 0, "Fixed generator seed for reproducible random seeds")
}

// addScanFlags registers the scan policy and reporting flags on cmd.
func addScanFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	cmd.Flags().Int32Var(&halfWidth, "half-width", d.Search.HalfWidth, "Scan x and z in [-half-width, half-width)")
	cmd.Flags().Int32Var(&step, "step", d.Search.Step, "Spacing between scanned chunks")
	cmd.Flags().IntVar(&minSize, "min-size", d.Search.MinSize, "Clusters must exceed this rectangle area (or size)")
	cmd.Flags().IntVar(&minArea, "min-area", d.Search.MinArea, "Also require this largest-rectangle area (0 = off)")
	cmd.Flags().BoolVar(&rectanglesOnly, "rectangles-only", d.Search.RectanglesOnly, "Judge clusters by largest rectangle instead of size")
	cmd.Flags().BoolVar(&allowOneWide, "allow-one-wide", d.Search.AllowOneWide, "Accept clusters whose best rectangle is one chunk wide")

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "POST accepted clusters to this HTTP collector")
	cmd.Flags().StringVar(&websocketURL, "websocket", "", "Stream accepted clusters to this ws:// collector")
	cmd.Flags().BoolVar(&async, "async", false, "Deliver reports from a background queue")
	cmd.Flags().BoolVar(&console, "console", d.Report.Console, "Print accepted clusters to stdout")
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	if f.Changed("half-width") {
		c.Search.HalfWidth = halfWidth
	}
	if f.Changed("step") {
		c.Search.Step = step
	}
	if f.Changed("min-size") {
		c.Search.MinSize = minSize
	}
	if f.Changed("min-area") {
		c.Search.MinArea = minArea
	}
	if f.Changed("rectangles-only") {
		c.Search.RectanglesOnly = rectanglesOnly
	}
	if f.Changed("allow-one-wide") {
		c.Search.AllowOneWide = allowOneWide
	}
	if f.Changed("workers") {
		c.Search.Workers = workers
	}
	if f.Changed("max-seeds") {
		c.Search.MaxSeeds = maxSeeds
	}
	if f.Changed("endpoint") {
		c.Report.Endpoint = endpoint
	}
	if f.Changed("websocket") {
		c.Report.Websocket = websocketURL
	}
	if f.Changed("async") {
		c.Report.Async = async
	}
	if f.Changed("console") {
		c.Report.Console = console
	}
	return c.Validate()
}

// buildSink assembles the configured sinks. The returned close function
// drains queues and closes connections.
func buildSink(rc config.ReportConfig, out io.Writer, log *zap.Logger) (report.Sink, func() error) {
	sinks := report.Multi{report.NewLogSink(log)}
	var closers []func() error

	if rc.Console {
		sinks = append(sinks, report.NewConsoleSink(out))
	}
	if rc.Endpoint != "" {
		sinks = append(sinks, report.NewHTTPSink(rc.Endpoint, rc.TimeoutDuration()))
	}
	if rc.Websocket != "" {
		ws := report.NewWebsocketSink(rc.Websocket)
		sinks = append(sinks, ws)
		closers = append(closers, ws.Close)
	}

	var sink report.Sink = sinks
	if rc.Async {
		a := report.NewAsync(sinks, rc.QueueSize, log)
		sink = a
		// The queue must drain before the websocket closes.
		closers = append([]func() error{a.Close}, closers...)
	}

	return sink, func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}
}

// seedSource picks the seed source from the flags.
func seedSource(cmd *cobra.Command) seeds.Source {
	f := cmd.Flags()
	switch {
	case len(seedList) > 0:
		return seeds.NewListSource(seedList...)
	case f.Changed("seed-start") || f.Changed("seed-count"):
		return seeds.NewSequenceSource(seedStart, seedStep, seedCount)
	case f.Changed("rng-seed"):
		return seeds.NewRandomSourceFrom(rngSeed, rngSeed)
	default:
		return seeds.NewRandomSource()
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	scanCfg := cfg.Search.Scan()
	logger.Info("building value cache",
		zap.Int32("half_width", scanCfg.Region.HalfWidth),
		zap.Int32("step", scanCfg.Region.Step),
		zap.Int("cells", scanCfg.Region.Cells()))
	values := world.NewValueCache(scanCfg.Region)

	sink, closeSink := buildSink(cfg.Report, cmd.OutOrStdout(), logger)
	defer func() {
		if err := closeSink(); err != nil {
			logger.Warn("failed to close report sinks", zap.Error(err))
		}
	}()

	scanner, err := search.NewScanner(scanCfg, values, sink, logger)
	if err != nil {
		return err
	}
	runner := search.NewRunner(scanner, cfg.Search.Runner(), logger)

	err = runner.Run(ctx, seedSource(cmd))
	stats := runner.Stats()
	fmt.Fprintf(cmd.ErrOrStderr(), "scanned %d seeds, %d clusters accepted, %d report failures\n",
		stats.Seeds, stats.Findings, stats.ReportErrors)
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
