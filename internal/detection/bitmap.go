package detection

import (
	"fmt"
	"strings"

	"github.com/ironsheep/slime-finder/internal/world"
)

// Bitmap is a dense boolean grid, stored row-major.
//
// Rows correspond to z and columns to x. Origin is the world coordinate of
// column 0, row 0 when the bitmap was produced from a cluster.
type Bitmap struct {
	Origin world.Coord
	Width  int
	Height int
	cells  []bool
}

// NewBitmap returns an all-false bitmap of the given size.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// At returns the cell at (col, row). Out-of-range cells are false.
func (b *Bitmap) At(col, row int) bool {
	if col < 0 || row < 0 || col >= b.Width || row >= b.Height {
		return false
	}
	return b.cells[row*b.Width+col]
}

// Set assigns the cell at (col, row). Out-of-range writes are ignored.
func (b *Bitmap) Set(col, row int, v bool) {
	if col < 0 || row < 0 || col >= b.Width || row >= b.Height {
		return
	}
	b.cells[row*b.Width+col] = v
}

// Count returns the number of true cells.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.cells {
		if v {
			n++
		}
	}
	return n
}

// ParseBitmap builds a bitmap from text rows. '#', '1', 'x', 'X' and '■' are
// true; '.', '0', ' ', '-' and '□' are false. Rows shorter than the longest
// row are padded with false.
func ParseBitmap(rows []string) (*Bitmap, error) {
	width := 0
	parsed := make([][]rune, len(rows))
	for i, row := range rows {
		parsed[i] = []rune(row)
		width = max(width, len(parsed[i]))
	}

	b := NewBitmap(width, len(rows))
	for r, row := range parsed {
		for c, ch := range row {
			switch ch {
			case '#', '1', 'x', 'X', '■':
				b.Set(c, r, true)
			case '.', '0', ' ', '-', '□':
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected character %q", r, c, ch)
			}
		}
	}
	return b, nil
}

// String renders the bitmap with '#' for true and '.' for false, one line per row.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for r := 0; r < b.Height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.Width; c++ {
			if b.At(c, r) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
