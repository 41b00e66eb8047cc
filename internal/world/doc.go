// Package world implements the seed-independent geometry of the search and the
// cell marking test that combines it with a world seed.
//
// A world is an unbounded lattice of cells (chunks) addressed by integer
// (x, z) pairs. Each cell has a coordinate value that depends only on its
// position, and a cell is marked for a given seed when the coordinate value
// and the seed pass a fixed 48-bit linear congruential test.
//
// # Bit Exactness
//
// CoordinateValue and IsMarked are an interoperability contract: they must
// agree bit for bit with every other implementation that produced or will
// consume report data. CoordinateValue therefore reproduces 32-bit wraparound
// for the products that the reference computes in 32-bit integers, and
// IsMarked uses unsigned 64-bit arithmetic with explicit 48-bit masks.
//
// # Coordinate Range
//
// Coordinates must stay within ±MaxCoord. Beyond that the 32-bit products
// still wrap deterministically, but the values stop being meaningful for any
// consumer of the data. Region.Validate enforces the bound for scan regions,
// and also caps a region at MaxCells scanned cells so that its ValueCache
// stays allocatable.
//
// # Caching
//
// ValueCache precomputes coordinate values for one square scan region in
// row-major order (z outer, x inner). A cache is read-only once built and may
// be shared by any number of concurrent scans of the same region, for any
// seed. CacheSet memoizes caches per region for long-running processes and
// evicts the least recently used region beyond its capacity.
//
// # Thread Safety
//
// CoordinateValue, IsMarked and the ValueCache read path are safe for
// concurrent use. CacheSet uses its own locking.
package world
