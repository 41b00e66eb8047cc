package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/slime-finder/internal/seeds"
)

// RunnerOptions controls the seed loop.
type RunnerOptions struct {
	// Workers is the number of seeds scanned at once. Values below one
	// mean one.
	Workers int

	// MaxSeeds stops the loop after that many seeds. Zero means no limit.
	MaxSeeds int64

	// OnResult, if set, is called with every completed scan. It may be
	// called from several goroutines at once when Workers > 1.
	OnResult func(*ScanResult)
}

// RunnerStats are running totals over all completed scans.
type RunnerStats struct {
	Seeds        int64 `json:"seeds"`
	Clusters     int64 `json:"clusters"`
	Findings     int64 `json:"findings"`
	ReportErrors int64 `json:"report_errors"`
}

// Runner repeatedly pulls a seed and scans it.
type Runner struct {
	scanner *Scanner
	opts    RunnerOptions
	logger  *zap.Logger

	seeds        atomic.Int64
	clusters     atomic.Int64
	findings     atomic.Int64
	reportErrors atomic.Int64
}

// NewRunner creates a runner around s.
func NewRunner(s *Scanner, opts RunnerOptions, logger *zap.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{scanner: s, opts: opts, logger: logger}
}

// Run scans seeds from src until ctx is cancelled, src is exhausted or
// MaxSeeds seeds have been taken. It returns nil when the loop ends because
// the source ran out or the limit was reached, and ctx's error when it was
// cancelled. Every seed is taken from src exactly once.
func (r *Runner) Run(ctx context.Context, src seeds.Source) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	r.logger.Info("search started",
		zap.Int("workers", r.opts.Workers),
		zap.Int64("max_seeds", r.opts.MaxSeeds),
		zap.Int32("half_width", r.scanner.cfg.Region.HalfWidth),
		zap.Int32("step", r.scanner.cfg.Region.Step))

	var srcErr error
	for taken := int64(0); r.opts.MaxSeeds == 0 || taken < r.opts.MaxSeeds; taken++ {
		if gctx.Err() != nil {
			break
		}
		seed, err := src.Next()
		if errors.Is(err, seeds.ErrExhausted) {
			break
		}
		if err != nil {
			srcErr = fmt.Errorf("next seed: %w", err)
			break
		}

		g.Go(func() error {
			res, err := r.scanner.ScanSeed(gctx, seed)
			if err != nil {
				return err
			}
			r.record(res)
			return nil
		})
	}

	err := g.Wait()
	stats := r.Stats()
	r.logger.Info("search stopped",
		zap.Int64("seeds", stats.Seeds),
		zap.Int64("findings", stats.Findings),
		zap.Int64("report_errors", stats.ReportErrors))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if srcErr != nil {
		return srcErr
	}
	return err
}

func (r *Runner) record(res *ScanResult) {
	r.seeds.Add(1)
	r.clusters.Add(int64(res.Clusters))
	r.findings.Add(int64(len(res.Findings)))
	r.reportErrors.Add(int64(res.ReportErrors))

	if len(res.Findings) > 0 {
		r.logger.Info("seed has candidates",
			zap.Int64("seed", res.Seed),
			zap.Int("findings", len(res.Findings)))
	}
	if r.opts.OnResult != nil {
		r.opts.OnResult(res)
	}
}

// Stats returns the totals so far.
func (r *Runner) Stats() RunnerStats {
	return RunnerStats{
		Seeds:        r.seeds.Load(),
		Clusters:     r.clusters.Load(),
		Findings:     r.findings.Load(),
		ReportErrors: r.reportErrors.Load(),
	}
}
