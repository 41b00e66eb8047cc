package world

import (
	"sync"
	"testing"
)

func TestRegion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		region  Region
		wantErr bool
	}{
		{"valid", Region{HalfWidth: 10, Step: 1}, false},
		{"valid stepped", Region{HalfWidth: 10, Step: 3}, false},
		{"zero half width", Region{HalfWidth: 0, Step: 1}, true},
		{"negative step", Region{HalfWidth: 10, Step: -1}, true},
		{"too wide", Region{HalfWidth: MaxCoord + 1, Step: 1}, true},
		{"full range at step 1", Region{HalfWidth: MaxCoord, Step: 1}, true},
		{"too many cells", Region{HalfWidth: 8192, Step: 1}, true},
		{"wide at step 1", Region{HalfWidth: 4096, Step: 1}, false},
		{"full range stepped", Region{HalfWidth: MaxCoord, Step: 256}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.region.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestRegion_Side(t *testing.T) {
	tests := []struct {
		region Region
		want   int
	}{
		{Region{HalfWidth: 5, Step: 1}, 10},
		{Region{HalfWidth: 5, Step: 2}, 5},
		{Region{HalfWidth: 5, Step: 3}, 4},
		{Region{HalfWidth: 1, Step: 5}, 1},
	}

	for _, tt := range tests {
		if got := tt.region.Side(); got != tt.want {
			t.Errorf("%+v.Side(): got %d, want %d", tt.region, got, tt.want)
		}
	}
}

func TestNewValueCache_RowMajorOrder(t *testing.T) {
	r := Region{HalfWidth: 6, Step: 4}
	c := NewValueCache(r)

	// x, z ∈ {-6, -2, 2}: z outer, x inner.
	var want []int64
	for _, z := range []int32{-6, -2, 2} {
		for _, x := range []int32{-6, -2, 2} {
			want = append(want, CoordinateValue(x, z))
		}
	}

	got := c.Values()
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value[%d] (%v): got %d, want %d", i, r.At(i), got[i], want[i])
		}
	}
}

func TestRegion_IndexAtRoundTrip(t *testing.T) {
	r := Region{HalfWidth: 9, Step: 2}
	for i := 0; i < r.Cells(); i++ {
		c := r.At(i)
		idx, ok := r.Index(c.X, c.Z)
		if !ok || idx != i {
			t.Fatalf("Index(At(%d) = %v): got (%d, %v)", i, c, idx, ok)
		}
	}

	offGrid := []Coord{{X: -8, Z: -9}, {X: 9, Z: 1}, {X: -11, Z: 1}, {X: 1, Z: 9}}
	for _, c := range offGrid {
		if _, ok := r.Index(c.X, c.Z); ok {
			t.Errorf("Index(%v): expected miss", c)
		}
	}
}

func TestValueCache_MatchesRecomputation(t *testing.T) {
	c := NewValueCache(Region{HalfWidth: 20, Step: 3})

	// On-grid, off-grid and out-of-region cells must all agree with the pure function.
	for z := int32(-30); z < 30; z++ {
		for x := int32(-30); x < 30; x++ {
			if got, want := c.Value(x, z), CoordinateValue(x, z); got != want {
				t.Fatalf("Value(%d, %d): got %d, want %d", x, z, got, want)
			}
		}
	}
}

func TestSeedMarker(t *testing.T) {
	c := NewValueCache(Region{HalfWidth: 16, Step: 1})
	cached := SeedMarker{Values: c, Seed: -8301357846524185845}
	bare := SeedMarker{Seed: -8301357846524185845}

	for z := int32(-20); z < 20; z++ {
		for x := int32(-20); x < 20; x++ {
			p := Coord{X: x, Z: z}
			if cached.Marked(p) != bare.Marked(p) {
				t.Fatalf("Marked(%v): cached and uncached markers disagree", p)
			}
		}
	}
}

func TestCacheSet_Load(t *testing.T) {
	s := NewCacheSet(0)
	r := Region{HalfWidth: 8, Step: 2}

	c1, err := s.Load(r)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c2, err := s.Load(r)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c1 != c2 {
		t.Error("second Load should return the cached instance")
	}

	s.Evict(r)
	c3, _ := s.Load(r)
	if c3 == c1 {
		t.Error("Load after Evict should rebuild the cache")
	}

	s.Clear()
	if n := s.Len(); n != 0 {
		t.Errorf("Clear: got %d caches, want 0", n)
	}
}

func TestCacheSet_EvictsLeastRecentlyUsed(t *testing.T) {
	s := NewCacheSet(2)
	a := Region{HalfWidth: 4, Step: 1}
	b := Region{HalfWidth: 5, Step: 1}
	c := Region{HalfWidth: 6, Step: 1}

	ca, _ := s.Load(a)
	cb, _ := s.Load(b)
	if again, _ := s.Load(a); again != ca {
		t.Fatal("a should still be cached")
	}

	// a was used more recently than b, so loading c drops b.
	if _, err := s.Load(c); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n := s.Len(); n != 2 {
		t.Errorf("Len: got %d, want 2", n)
	}
	if again, _ := s.Load(a); again != ca {
		t.Error("recently used region was evicted")
	}
	if again, _ := s.Load(b); again == cb {
		t.Error("least recently used region was kept")
	}

	for hw := int32(10); hw < 20; hw++ {
		if _, err := s.Load(Region{HalfWidth: hw, Step: 1}); err != nil {
			t.Fatalf("Load(%d) failed: %v", hw, err)
		}
		if n := s.Len(); n > 2 {
			t.Fatalf("Len after loading half width %d: got %d, want at most 2", hw, n)
		}
	}
}

func TestCacheSet_LoadInvalid(t *testing.T) {
	s := NewCacheSet(0)
	if _, err := s.Load(Region{HalfWidth: 4, Step: 0}); err == nil {
		t.Error("expected error for zero step")
	}
}

func TestCacheSet_ConcurrentLoad(t *testing.T) {
	s := NewCacheSet(0)
	r := Region{HalfWidth: 32, Step: 1}

	var wg sync.WaitGroup
	results := make([]*ValueCache, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := s.Load(r)
			if err != nil {
				t.Errorf("Load failed: %v", err)
				return
			}
			results[i] = c
		}(i)
	}
	wg.Wait()

	for i, c := range results {
		if c != results[0] {
			t.Errorf("goroutine %d got a different cache instance", i)
		}
	}
}
