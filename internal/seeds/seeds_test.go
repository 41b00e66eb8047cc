package seeds

import (
	"errors"
	"sync"
	"testing"
)

func TestRandomSource_Reproducible(t *testing.T) {
	a := NewRandomSourceFrom(1, 2)
	b := NewRandomSourceFrom(1, 2)

	for i := 0; i < 100; i++ {
		va, _ := a.Next()
		vb, _ := b.Next()
		if va != vb {
			t.Fatalf("draw %d: %d != %d", i, va, vb)
		}
	}
}

func TestRandomSource_BothSigns(t *testing.T) {
	s := NewRandomSource()
	var neg, pos int
	for i := 0; i < 200; i++ {
		v, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if v < 0 {
			neg++
		} else {
			pos++
		}
	}
	if neg == 0 || pos == 0 {
		t.Errorf("expected both signs, got %d negative and %d non-negative", neg, pos)
	}
}

func TestListSource(t *testing.T) {
	s := NewListSource(5, -3, 7)

	for _, want := range []int64{5, -3, 7} {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got != want {
			t.Errorf("Next: got %d, want %d", got, want)
		}
	}

	if _, err := s.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Next after end: got %v, want ErrExhausted", err)
	}
}

func TestSequenceSource(t *testing.T) {
	s := NewSequenceSource(10, -4, 3)

	for _, want := range []int64{10, 6, 2} {
		got, err := s.Next()
		if err != nil || got != want {
			t.Errorf("Next: got (%d, %v), want %d", got, err, want)
		}
	}
	if _, err := s.Next(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Next after count: got %v, want ErrExhausted", err)
	}
}

func TestSequenceSource_Unbounded(t *testing.T) {
	s := NewSequenceSource(0, 1, 0)
	for i := int64(0); i < 1000; i++ {
		got, err := s.Next()
		if err != nil || got != i {
			t.Fatalf("Next: got (%d, %v), want %d", got, err, i)
		}
	}
}

func TestListSource_ConcurrentConsumesOnce(t *testing.T) {
	const n = 1000
	all := make([]int64, n)
	for i := range all {
		all[i] = int64(i)
	}
	s := NewListSource(all...)

	var mu sync.Mutex
	seen := make(map[int64]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := s.Next()
				if err != nil {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("distinct seeds: got %d, want %d", len(seen), n)
	}
	for v, c := range seen {
		if c != 1 {
			t.Errorf("seed %d consumed %d times", v, c)
		}
	}
}
