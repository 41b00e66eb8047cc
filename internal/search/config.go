package search

import (
	"fmt"

	"github.com/ironsheep/slime-finder/internal/detection"
	"github.com/ironsheep/slime-finder/internal/world"
)

// Config holds the parameters of a scan.
type Config struct {
	// Region is the scanned window and the spacing between scanned cells.
	Region world.Region

	// MinSize is the smallest cluster that is scored at all, and the
	// threshold the acceptance policy compares against.
	MinSize int

	// MinArea, when positive, additionally rejects clusters whose largest
	// rectangle is smaller than MinArea.
	MinArea int

	// RectanglesOnly judges clusters by their largest rectangle's area
	// rather than by their cell count.
	RectanglesOnly bool

	// AllowOneWide accepts clusters whose largest rectangle is a single
	// cell wide or tall.
	AllowOneWide bool
}

// DefaultConfig returns the standard search: a 10000×10000 chunk window
// sampled every other chunk, rectangles larger than 14 chunks.
func DefaultConfig() Config {
	return Config{
		Region:         world.Region{HalfWidth: 5000, Step: 2},
		MinSize:        14,
		RectanglesOnly: true,
		AllowOneWide:   true,
	}
}

// Validate checks that every parameter is in range.
func (c Config) Validate() error {
	if err := c.Region.Validate(); err != nil {
		return err
	}
	if c.MinSize <= 0 {
		return fmt.Errorf("min size must be positive, got %d", c.MinSize)
	}
	if c.MinArea < 0 {
		return fmt.Errorf("min area must not be negative, got %d", c.MinArea)
	}
	return nil
}

// Accept applies the acceptance policy to a cluster of size cells whose
// largest rectangle is rect. Both comparisons against MinSize are strict.
func (c Config) Accept(size int, rect detection.Rect) bool {
	var ok bool
	if c.RectanglesOnly {
		ok = rect.Area() > c.MinSize
	} else {
		ok = size > c.MinSize
	}

	oneWideOK := c.AllowOneWide || !rect.OneWide()
	if !ok || !oneWideOK {
		return false
	}
	return c.MinArea <= 0 || rect.Area() >= c.MinArea
}

// ReportedArea is the area sent with an accepted cluster: the rectangle's
// area in rectangles-only mode, the cluster size otherwise.
func (c Config) ReportedArea(size int, rect detection.Rect) int {
	if c.RectanglesOnly {
		return rect.Area()
	}
	return size
}
