package config

import (
	"fmt"

	"github.com/ironsheep/slime-finder/internal/search"
	"github.com/ironsheep/slime-finder/internal/world"
)

// SearchConfig configures the scan and the seed loop.
type SearchConfig struct {
	HalfWidth      int32 `yaml:"half_width" json:"half_width"`
	Step           int32 `yaml:"step" json:"step"`
	MinSize        int   `yaml:"min_size" json:"min_size"`
	MinArea        int   `yaml:"min_area" json:"min_area"`
	RectanglesOnly bool  `yaml:"rectangles_only" json:"rectangles_only"`
	AllowOneWide   bool  `yaml:"allow_one_wide" json:"allow_one_wide"`
	Workers        int   `yaml:"workers" json:"workers"`     // seeds scanned in parallel
	MaxSeeds       int64 `yaml:"max_seeds" json:"max_seeds"` // 0 = unbounded
}

// DefaultSearchConfig mirrors search.DefaultConfig with one worker.
func DefaultSearchConfig() SearchConfig {
	d := search.DefaultConfig()
	return SearchConfig{
		HalfWidth:      d.Region.HalfWidth,
		Step:           d.Region.Step,
		MinSize:        d.MinSize,
		MinArea:        d.MinArea,
		RectanglesOnly: d.RectanglesOnly,
		AllowOneWide:   d.AllowOneWide,
		Workers:        1,
	}
}

// Scan converts the section to the scanner's configuration.
func (c SearchConfig) Scan() search.Config {
	return search.Config{
		Region:         world.Region{HalfWidth: c.HalfWidth, Step: c.Step},
		MinSize:        c.MinSize,
		MinArea:        c.MinArea,
		RectanglesOnly: c.RectanglesOnly,
		AllowOneWide:   c.AllowOneWide,
	}
}

// Runner converts the section to the seed loop's options.
func (c SearchConfig) Runner() search.RunnerOptions {
	return search.RunnerOptions{Workers: c.Workers, MaxSeeds: c.MaxSeeds}
}

func (c SearchConfig) validate() []error {
	var errs []error
	if err := c.Scan().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("search: %w", err))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("search: workers must be positive, got %d", c.Workers))
	}
	if c.MaxSeeds < 0 {
		errs = append(errs, fmt.Errorf("search: max seeds must not be negative, got %d", c.MaxSeeds))
	}
	return errs
}
