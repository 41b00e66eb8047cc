package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/ironsheep/slime-finder/internal/world"
)

// Record is the report sent for one accepted cluster.
type Record struct {
	// ID uniquely identifies this report.
	ID string `json:"id"`

	// Seed is the world seed the cluster was found in.
	Seed int64 `json:"seed"`

	// Origin is the scan cell where the cluster was discovered.
	Origin world.Coord `json:"origin"`

	// Chunks lists the cluster's cells, sorted by x then z.
	Chunks []world.Coord `json:"chunks"`

	// Area is the rectangle area or cluster size, depending on the search mode.
	Area int `json:"area"`
}

// NewRecord builds a record with a fresh ID.
func NewRecord(seed int64, origin world.Coord, chunks []world.Coord, area int) Record {
	return Record{
		ID:     uuid.NewString(),
		Seed:   seed,
		Origin: origin,
		Chunks: chunks,
		Area:   area,
	}
}

// Sink receives accepted clusters.
type Sink interface {
	Report(ctx context.Context, r Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, r Record) error

// Report calls f(ctx, r).
func (f SinkFunc) Report(ctx context.Context, r Record) error {
	return f(ctx, r)
}

// Discard is a Sink that drops every record.
var Discard Sink = SinkFunc(func(context.Context, Record) error { return nil })
