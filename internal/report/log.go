package report

import (
	"context"

	"go.uber.org/zap"
)

// LogSink logs each record at info level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink writing to logger. A nil logger discards.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Report logs r. It never fails.
func (s *LogSink) Report(_ context.Context, r Record) error {
	bx, bz := r.Origin.Block()
	s.logger.Info("cluster found",
		zap.String("id", r.ID),
		zap.Int64("seed", r.Seed),
		zap.Int32("chunk_x", r.Origin.X),
		zap.Int32("chunk_z", r.Origin.Z),
		zap.Int64("block_x", bx),
		zap.Int64("block_z", bz),
		zap.Int("chunks", len(r.Chunks)),
		zap.Int("area", r.Area))
	return nil
}
