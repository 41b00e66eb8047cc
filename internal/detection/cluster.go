package detection

import (
	"encoding/binary"
	"slices"

	"github.com/ironsheep/slime-finder/internal/world"
)

// Marker reports whether a cell is marked. Implementations must be pure: the
// same coordinate must always give the same answer.
type Marker interface {
	Marked(c world.Coord) bool
}

// MarkerFunc adapts a function to the Marker interface.
type MarkerFunc func(c world.Coord) bool

// Marked calls f(c).
func (f MarkerFunc) Marked(c world.Coord) bool {
	return f(c)
}

// Bounds is an inclusive bounding box in world coordinates.
type Bounds struct {
	MinX int32 `json:"min_x"`
	MinZ int32 `json:"min_z"`
	MaxX int32 `json:"max_x"`
	MaxZ int32 `json:"max_z"`
}

// Width is the number of columns (x extent) covered by the box.
func (b Bounds) Width() int {
	return int(b.MaxX-b.MinX) + 1
}

// Height is the number of rows (z extent) covered by the box.
func (b Bounds) Height() int {
	return int(b.MaxZ-b.MinZ) + 1
}

// Cluster is a frozen set of cells, sorted by x then z, without duplicates.
type Cluster struct {
	cells []world.Coord
}

// NewCluster returns the canonical cluster for cells. The input is not modified.
func NewCluster(cells []world.Coord) Cluster {
	sorted := slices.Clone(cells)
	slices.SortStableFunc(sorted, world.Coord.Compare)
	return Cluster{cells: slices.Compact(sorted)}
}

// Cells returns the cluster's cells in canonical order. The slice must not be modified.
func (c Cluster) Cells() []world.Coord {
	return c.cells
}

// Len returns the number of cells.
func (c Cluster) Len() int {
	return len(c.cells)
}

// Empty reports whether the cluster has no cells.
func (c Cluster) Empty() bool {
	return len(c.cells) == 0
}

// Bounds returns the cluster's bounding box. It is the zero Bounds for an
// empty cluster.
func (c Cluster) Bounds() Bounds {
	if len(c.cells) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: c.cells[0].X, MaxX: c.cells[0].X,
		MinZ: c.cells[0].Z, MaxZ: c.cells[0].Z,
	}
	for _, p := range c.cells[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinZ = min(b.MinZ, p.Z)
		b.MaxZ = max(b.MaxZ, p.Z)
	}
	return b
}

// Bitmap rasterizes the cluster over its bounding box.
func (c Cluster) Bitmap() *Bitmap {
	if len(c.cells) == 0 {
		return NewBitmap(0, 0)
	}
	b := c.Bounds()
	bm := NewBitmap(b.Width(), b.Height())
	bm.Origin = world.Coord{X: b.MinX, Z: b.MinZ}
	for _, p := range c.cells {
		bm.Set(int(p.X-b.MinX), int(p.Z-b.MinZ), true)
	}
	return bm
}

// Signature returns a compact key that is equal for two clusters exactly when
// their canonical cell sequences are equal.
func (c Cluster) Signature() string {
	buf := make([]byte, 0, len(c.cells)*8)
	for _, p := range c.cells {
		buf = binary.BigEndian.AppendUint32(buf, uint32(p.X))
		buf = binary.BigEndian.AppendUint32(buf, uint32(p.Z))
	}
	return string(buf)
}

// FloodFill collects the 4-connected cluster of marked cells containing origin.
//
// The fill advances one cell at a time along x and z, independent of any scan
// step, and never crosses an unmarked cell. It keeps its own visited set, so
// calls are independent of each other. An unmarked origin yields an empty
// cluster.
//
// # Algorithm
//
// Iterative depth-first search with an explicit stack. A neighbour is added
// to the visited set when first seen, marked or not, so each cell's marking
// is evaluated at most once per call.
func FloodFill(origin world.Coord, m Marker) Cluster {
	if !m.Marked(origin) {
		return Cluster{}
	}

	visited := map[world.Coord]struct{}{origin: {}}
	stack := []world.Coord{origin}
	cells := make([]world.Coord, 0, 16)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cells = append(cells, p)

		for _, n := range p.Neighbors() {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			if m.Marked(n) {
				stack = append(stack, n)
			}
		}
	}

	slices.SortFunc(cells, world.Coord.Compare)
	return Cluster{cells: cells}
}
