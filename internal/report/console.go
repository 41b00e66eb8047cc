package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ironsheep/slime-finder/internal/detection"
	"github.com/ironsheep/slime-finder/internal/render"
)

const consoleSeparator = "-----------------------------------------------"

// ConsoleSink writes a human-readable block per record:
//
//	Seed: 42
//	Chunks: (10, -3)
//	Coordinates: (160, -48)
//	Size: 9
//	■ ■ ■
//	■ ■ ■
//	■ ■ ■
//	-----------------------------------------------
type ConsoleSink struct {
	mu     sync.Mutex
	w      io.Writer
	glyphs render.Glyphs
}

// NewConsoleSink creates a sink writing to w with the default glyphs.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w, glyphs: render.DefaultGlyphs}
}

// Report writes the block for r.
func (s *ConsoleSink) Report(_ context.Context, r Record) error {
	bx, bz := r.Origin.Block()
	bitmap := detection.NewCluster(r.Chunks).Bitmap()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Seed: %d\n", r.Seed)
	fmt.Fprintf(&sb, "Chunks: (%d, %d)\n", r.Origin.X, r.Origin.Z)
	fmt.Fprintf(&sb, "Coordinates: (%d, %d)\n", bx, bz)
	fmt.Fprintf(&sb, "Size: %d\n", r.Area)
	sb.WriteString(render.ClusterText(bitmap, s.glyphs))
	sb.WriteString(consoleSeparator)
	sb.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
