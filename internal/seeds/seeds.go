// Package seeds supplies world seeds to the search loop.
//
// A Source hands out one seed per Next call; each seed is consumed exactly
// once. All sources are safe for concurrent use, so parallel scan workers
// can share one.
package seeds

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrExhausted is returned by Next when a finite source has no seeds left.
var ErrExhausted = errors.New("seed source exhausted")

// Source supplies seeds.
type Source interface {
	Next() (int64, error)
}

// RandomSource draws uniformly distributed non-negative 63-bit values and
// negates half of them, covering the full signed range except math.MinInt64.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a source seeded from the operating system's
// entropy pool.
func NewRandomSource() *RandomSource {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(err)
	}
	return NewRandomSourceFrom(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))
}

// NewRandomSourceFrom returns a reproducible source for the given generator state.
func NewRandomSourceFrom(s1, s2 uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(s1, s2))}
}

// Next returns the next random seed. It never fails.
func (s *RandomSource) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.rng.Int64()
	if s.rng.IntN(2) == 1 {
		v = -v
	}
	return v, nil
}

// ListSource yields a fixed list of seeds, then ErrExhausted.
type ListSource struct {
	mu    sync.Mutex
	seeds []int64
	next  int
}

// NewListSource copies seeds into a new source.
func NewListSource(seeds ...int64) *ListSource {
	return &ListSource{seeds: append([]int64(nil), seeds...)}
}

// Next returns the next listed seed.
func (s *ListSource) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.seeds) {
		return 0, ErrExhausted
	}
	v := s.seeds[s.next]
	s.next++
	return v, nil
}

// SequenceSource yields start, start+step, start+2*step, ... for count seeds,
// or without end when count is zero. Arithmetic wraps at the int64 limits.
type SequenceSource struct {
	mu     sync.Mutex
	cur    int64
	step   int64
	remain int64
	bound  bool
}

// NewSequenceSource creates an arithmetic sequence of seeds.
func NewSequenceSource(start, step, count int64) *SequenceSource {
	return &SequenceSource{cur: start, step: step, remain: count, bound: count > 0}
}

// Next returns the next seed in the sequence.
func (s *SequenceSource) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bound {
		if s.remain == 0 {
			return 0, ErrExhausted
		}
		s.remain--
	}
	v := s.cur
	s.cur += s.step
	return v, nil
}
