package world

import (
	"container/list"
	"fmt"
	"sync"
)

// MaxCells bounds the number of scanned cells in a Region. A ValueCache
// holds eight bytes per cell, so the largest valid region needs 1 GiB.
const MaxCells = 1 << 27

// DefaultCacheCapacity is the number of regions a CacheSet keeps when
// NewCacheSet is given a non-positive capacity.
const DefaultCacheCapacity = 4

// Region is a square scan window centred on the origin.
//
// It covers x, z in [-HalfWidth, HalfWidth), visiting every Step-th cell on
// each axis, z-major (rows of constant z, x increasing along the row).
type Region struct {
	HalfWidth int32 `json:"half_width" yaml:"half_width"`
	Step      int32 `json:"step" yaml:"step"`
}

// Validate checks that the region is positive, within MaxCoord and no larger
// than MaxCells.
func (r Region) Validate() error {
	if r.HalfWidth <= 0 {
		return fmt.Errorf("half width must be positive, got %d", r.HalfWidth)
	}
	if r.Step <= 0 {
		return fmt.Errorf("step must be positive, got %d", r.Step)
	}
	if r.HalfWidth > MaxCoord {
		return fmt.Errorf("half width %d exceeds supported coordinate range %d", r.HalfWidth, MaxCoord)
	}
	if n := r.Cells(); n > MaxCells {
		return fmt.Errorf("half width %d at step %d scans %d cells, more than %d", r.HalfWidth, r.Step, n, MaxCells)
	}
	return nil
}

// Side returns the number of scanned cells along one axis.
func (r Region) Side() int {
	return int((2*int64(r.HalfWidth) + int64(r.Step) - 1) / int64(r.Step))
}

// Cells returns the number of scanned cells in the region.
func (r Region) Cells() int {
	s := r.Side()
	return s * s
}

// Index returns the row-major position of (x, z) in the region's scan order.
// ok is false when the cell is outside the region or not on the step grid.
func (r Region) Index(x, z int32) (idx int, ok bool) {
	ox := int64(x) + int64(r.HalfWidth)
	oz := int64(z) + int64(r.HalfWidth)
	span := 2 * int64(r.HalfWidth)
	step := int64(r.Step)
	if ox < 0 || oz < 0 || ox >= span || oz >= span || ox%step != 0 || oz%step != 0 {
		return 0, false
	}
	return int(oz/step)*r.Side() + int(ox/step), true
}

// At returns the cell at row-major position idx.
func (r Region) At(idx int) Coord {
	side := r.Side()
	return Coord{
		X: -r.HalfWidth + int32(idx%side)*r.Step,
		Z: -r.HalfWidth + int32(idx/side)*r.Step,
	}
}

// ValueCache holds precomputed coordinate values for one Region.
//
// Values are stored in the region's scan order so a scanner walking the
// region can consume them sequentially. Lookups of cells outside the region,
// or between step positions, fall back to CoordinateValue; both paths return
// identical results.
//
// A ValueCache is immutable after NewValueCache returns and is safe for
// concurrent use.
type ValueCache struct {
	region Region
	values []int64
}

// NewValueCache computes the coordinate values of every cell in r.
//
// The region must be valid (see Region.Validate). Memory use is eight bytes
// per scanned cell.
func NewValueCache(r Region) *ValueCache {
	values := make([]int64, 0, r.Cells())
	for z := -r.HalfWidth; z < r.HalfWidth; z += r.Step {
		for x := -r.HalfWidth; x < r.HalfWidth; x += r.Step {
			values = append(values, CoordinateValue(x, z))
		}
	}
	return &ValueCache{region: r, values: values}
}

// Region returns the region the cache was built for.
func (c *ValueCache) Region() Region {
	return c.region
}

// Values returns the cached values in scan order. The slice must not be modified.
func (c *ValueCache) Values() []int64 {
	return c.values
}

// Len returns the number of cached values.
func (c *ValueCache) Len() int {
	return len(c.values)
}

// Value returns the coordinate value of (x, z).
func (c *ValueCache) Value(x, z int32) int64 {
	if idx, ok := c.region.Index(x, z); ok {
		return c.values[idx]
	}
	return CoordinateValue(x, z)
}

// CacheSet memoizes ValueCaches by region so that repeated scans of the same
// region, for any seed, share one precomputation.
//
// At most capacity regions are kept; loading another evicts the least
// recently used one. CacheSet is safe for concurrent use by multiple
// goroutines.
type CacheSet struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // of *cacheEntry, most recently used first
	caches   map[Region]*list.Element
}

type cacheEntry struct {
	region Region
	values *ValueCache
}

// NewCacheSet creates an empty cache set holding up to capacity regions.
// A non-positive capacity selects DefaultCacheCapacity.
func NewCacheSet(capacity int) *CacheSet {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &CacheSet{
		capacity: capacity,
		order:    list.New(),
		caches:   make(map[Region]*list.Element),
	}
}

// Load returns the cache for r, building it on first use.
//
// The build runs under the set's lock, so concurrent loads of one region
// share a single precomputation.
func (s *CacheSet) Load(r Region) (*ValueCache, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid region: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.caches[r]; ok {
		s.order.MoveToFront(e)
		return e.Value.(*cacheEntry).values, nil
	}

	for s.order.Len() >= s.capacity {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.caches, oldest.Value.(*cacheEntry).region)
	}
	c := NewValueCache(r)
	s.caches[r] = s.order.PushFront(&cacheEntry{region: r, values: c})
	return c, nil
}

// Evict drops the cache for r, if any.
func (s *CacheSet) Evict(r Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.caches[r]; ok {
		s.order.Remove(e)
		delete(s.caches, r)
	}
}

// Clear drops every cached region.
func (s *CacheSet) Clear() {
	s.mu.Lock()
	s.order.Init()
	s.caches = make(map[Region]*list.Element)
	s.mu.Unlock()
}

// Len returns the number of regions currently cached.
func (s *CacheSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.caches)
}

// SeedMarker evaluates the marking test for one seed, reading coordinate
// values from a shared cache.
type SeedMarker struct {
	Values *ValueCache
	Seed   int64
}

// Marked reports whether c is marked for the marker's seed.
func (m SeedMarker) Marked(c Coord) bool {
	var v int64
	if m.Values != nil {
		v = m.Values.Value(c.X, c.Z)
	} else {
		v = CoordinateValue(c.X, c.Z)
	}
	return IsMarked(v, m.Seed)
}
