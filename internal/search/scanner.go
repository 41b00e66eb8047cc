package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/slime-finder/internal/detection"
	"github.com/ironsheep/slime-finder/internal/report"
	"github.com/ironsheep/slime-finder/internal/world"
)

// Finding is an accepted cluster.
type Finding struct {
	Seed     int64            `json:"seed"`
	Origin   world.Coord      `json:"origin"`
	Size     int              `json:"size"`
	Bounds   detection.Bounds `json:"bounds"`
	Rect     detection.Rect   `json:"rect"`
	Area     int              `json:"area"`
	Chunks   []world.Coord    `json:"chunks"`
	ReportID string           `json:"report_id,omitempty"`
	Reported bool             `json:"reported"`
}

// ScanResult summarizes one seed's scan.
type ScanResult struct {
	Seed int64 `json:"seed"`

	// Cells is the number of scanned cells.
	Cells int `json:"cells"`

	// Clusters counts distinct clusters of at least MinSize cells.
	Clusters int `json:"clusters"`

	// Duplicates counts clusters rejected by the registry.
	Duplicates int `json:"duplicates"`

	// Findings lists accepted clusters in discovery order.
	Findings []Finding `json:"findings"`

	// ReportErrors counts findings the sink failed to take.
	ReportErrors int `json:"report_errors"`

	Duration time.Duration `json:"duration_ns"`
}

// Scanner scans seeds over one region.
type Scanner struct {
	cfg    Config
	values *world.ValueCache
	sink   report.Sink
	logger *zap.Logger
}

// NewScanner creates a scanner for cfg.
//
// values may be nil, in which case the cache is built here; otherwise it must
// have been built for cfg.Region. A nil sink discards reports and a nil
// logger discards logs.
func NewScanner(cfg Config, values *world.ValueCache, sink report.Sink, logger *zap.Logger) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	if values == nil {
		values = world.NewValueCache(cfg.Region)
	} else if values.Region() != cfg.Region {
		return nil, fmt.Errorf("value cache region %+v does not match scan region %+v", values.Region(), cfg.Region)
	}
	if sink == nil {
		sink = report.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{cfg: cfg, values: values, sink: sink, logger: logger}, nil
}

// Config returns the scanner's configuration.
func (s *Scanner) Config() Config {
	return s.cfg
}

// ScanSeed scans the world of seed, reading scan-cell values from the cache
// in order and computing flood-fill neighbours through it.
func (s *Scanner) ScanSeed(ctx context.Context, seed int64) (*ScanResult, error) {
	values := s.values.Values()
	marker := world.SeedMarker{Values: s.values, Seed: seed}
	return s.scan(ctx, seed, marker, func(idx int, _ world.Coord) bool {
		return world.IsMarked(values[idx], seed)
	})
}

// Scan scans the region using m in place of the seed's marking test. seed is
// only carried into results and reports.
func (s *Scanner) Scan(ctx context.Context, seed int64, m detection.Marker) (*ScanResult, error) {
	return s.scan(ctx, seed, m, func(_ int, c world.Coord) bool {
		return m.Marked(c)
	})
}

func (s *Scanner) scan(ctx context.Context, seed int64, m detection.Marker, cellMarked func(idx int, c world.Coord) bool) (*ScanResult, error) {
	start := time.Now()
	r := s.cfg.Region
	res := &ScanResult{Seed: seed}
	registry := detection.NewRegistry()
	// Cells of clusters already considered. Smaller clusters are not tracked;
	// refilling one yields the same too-small cluster again.
	seen := make(map[world.Coord]struct{})

	idx := 0
	for z := -r.HalfWidth; z < r.HalfWidth; z += r.Step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := -r.HalfWidth; x < r.HalfWidth; x += r.Step {
			c := world.Coord{X: x, Z: z}
			i := idx
			idx++
			if !cellMarked(i, c) {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cluster := detection.FloodFill(c, m)
			if cluster.Len() < s.cfg.MinSize {
				continue
			}
			for _, p := range cluster.Cells() {
				seen[p] = struct{}{}
			}
			s.consider(ctx, res, registry, c, cluster)
		}
	}

	res.Cells = idx
	res.Duration = time.Since(start)
	s.logger.Debug("seed scanned",
		zap.Int64("seed", seed),
		zap.Int("cells", res.Cells),
		zap.Int("clusters", res.Clusters),
		zap.Int("findings", len(res.Findings)),
		zap.Duration("duration", res.Duration))
	return res, nil
}

// consider scores, deduplicates and possibly reports one cluster of at least
// MinSize cells discovered from origin.
func (s *Scanner) consider(ctx context.Context, res *ScanResult, registry *detection.Registry, origin world.Coord, cluster detection.Cluster) {
	rect := detection.LargestRectangle(cluster.Bitmap())

	if !registry.Register(cluster) {
		res.Duplicates++
		return
	}
	res.Clusters++

	size := cluster.Len()
	if !s.cfg.Accept(size, rect) {
		return
	}

	area := s.cfg.ReportedArea(size, rect)
	rec := report.NewRecord(res.Seed, origin, cluster.Cells(), area)
	f := Finding{
		Seed:     res.Seed,
		Origin:   origin,
		Size:     size,
		Bounds:   cluster.Bounds(),
		Rect:     rect,
		Area:     area,
		Chunks:   cluster.Cells(),
		ReportID: rec.ID,
	}

	if err := s.sink.Report(ctx, rec); err != nil {
		res.ReportErrors++
		s.logger.Warn("failed to report cluster",
			zap.Int64("seed", res.Seed),
			zap.Int32("x", origin.X),
			zap.Int32("z", origin.Z),
			zap.Int("area", area),
			zap.Error(err))
	} else {
		f.Reported = true
	}
	res.Findings = append(res.Findings, f)
}
