package world

// MaxCoord is the largest absolute coordinate the search supports.
const MaxCoord = 1 << 20

// Multipliers of the coordinate value polynomial.
const (
	xSquareMul = 0x4c1906
	xMul       = 0x5ac0db
	zSquareMul = 0x4307a7
	zMul       = 0x5f24f
)

// Constants of the marking test.
const (
	valueSalt   = 0x3ad8025f
	lcgScramble = 0x5DEECE66D
	lcgMul      = 0x5DEECE66D
	lcgAdd      = 0xB
	mask48      = 1<<48 - 1
	markShift   = 17
	markModulus = 10
)

// CoordinateValue returns the seed-independent value of cell (x, z).
//
// The x terms and the z linear term are 32-bit products, and the two x terms
// are summed in 32 bits before widening; z*z is a 32-bit square widened before
// its multiply. All wraparound is intentional and must not be "fixed".
func CoordinateValue(x, z int32) int64 {
	xTerms := x*x*xSquareMul + x*xMul
	return int64(xTerms) + int64(z*z)*zSquareMul + int64(z*zMul)
}

// IsMarked reports whether a cell with the given coordinate value is marked
// in the world identified by seed.
func IsMarked(value, seed int64) bool {
	v := (uint64(value+seed) ^ valueSalt ^ lcgScramble) & mask48
	v = (v*lcgMul + lcgAdd) & mask48
	return (v>>markShift)%markModulus == 0
}

// Marked is IsMarked for a coordinate, computing its value on the spot.
func Marked(c Coord, seed int64) bool {
	return IsMarked(CoordinateValue(c.X, c.Z), seed)
}
