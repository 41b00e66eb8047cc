package world

import "fmt"

// Coord identifies one cell of the lattice in chunk units.
type Coord struct {
	X int32 `json:"x"`
	Z int32 `json:"z"`
}

// Less orders coordinates by x, then by z.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Z < o.Z
}

// Compare returns -1, 0 or +1 following the same order as Less.
func (c Coord) Compare(o Coord) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	default:
		return 0
	}
}

// Block returns the block coordinate of the cell's north-west corner.
func (c Coord) Block() (x, z int64) {
	return int64(c.X) << 4, int64(c.Z) << 4
}

// Neighbors returns the four edge-adjacent cells: east, west, south, north.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		{X: c.X + 1, Z: c.Z},
		{X: c.X - 1, Z: c.Z},
		{X: c.X, Z: c.Z + 1},
		{X: c.X, Z: c.Z - 1},
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}
