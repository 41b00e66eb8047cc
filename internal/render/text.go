package render

import (
	"fmt"
	"strings"

	"github.com/ironsheep/slime-finder/internal/detection"
	"github.com/ironsheep/slime-finder/internal/world"
)

// Glyphs is the pair of strings used for marked and unmarked cells.
type Glyphs struct {
	Marked   string
	Unmarked string
}

// DefaultGlyphs are the console glyphs.
var DefaultGlyphs = Glyphs{Marked: "■ ", Unmarked: "□ "}

// ASCIIGlyphs suit terminals without box-drawing fonts.
var ASCIIGlyphs = Glyphs{Marked: "# ", Unmarked: ". "}

// Window is a rectangular area of the world centred on (CenterX, CenterZ),
// covering Radius cells on each side of the centre, inclusive.
type Window struct {
	CenterX int32 `json:"center_x"`
	CenterZ int32 `json:"center_z"`
	Radius  int32 `json:"radius"`
}

// Validate checks that the centre lies within ±world.MaxCoord and that the
// radius is between 0 and world.MaxCoord, which keeps Bounds within int32.
func (w Window) Validate() error {
	if w.CenterX < -world.MaxCoord || w.CenterX > world.MaxCoord ||
		w.CenterZ < -world.MaxCoord || w.CenterZ > world.MaxCoord {
		return fmt.Errorf("centre (%d, %d) is outside the supported range ±%d", w.CenterX, w.CenterZ, world.MaxCoord)
	}
	if w.Radius < 0 || w.Radius > world.MaxCoord {
		return fmt.Errorf("radius %d is outside 0..%d", w.Radius, world.MaxCoord)
	}
	return nil
}

// Bounds returns the inclusive extent of the window. The window must be valid.
func (w Window) Bounds() detection.Bounds {
	return detection.Bounds{
		MinX: w.CenterX - w.Radius,
		MinZ: w.CenterZ - w.Radius,
		MaxX: w.CenterX + w.Radius,
		MaxZ: w.CenterZ + w.Radius,
	}
}

// ClusterText renders b, one line per row, each line ending in a newline.
func ClusterText(b *detection.Bitmap, g Glyphs) string {
	var sb strings.Builder
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			if b.At(col, row) {
				sb.WriteString(g.Marked)
			} else {
				sb.WriteString(g.Unmarked)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MapBitmap samples m over the window.
func MapBitmap(m detection.Marker, w Window) *detection.Bitmap {
	bounds := w.Bounds()
	b := detection.NewBitmap(bounds.Width(), bounds.Height())
	b.Origin = world.Coord{X: bounds.MinX, Z: bounds.MinZ}
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			c := world.Coord{X: bounds.MinX + int32(col), Z: bounds.MinZ + int32(row)}
			b.Set(col, row, m.Marked(c))
		}
	}
	return b
}

// MapText renders the window around a marker with a header naming the x range
// and each row prefixed by its z coordinate.
//
//	x -2..2
//	-2 □ □ ■ □ □
//	-1 □ □ □ □ □
//	...
func MapText(m detection.Marker, w Window, g Glyphs) string {
	b := MapBitmap(m, w)
	bounds := w.Bounds()

	label := max(len(fmt.Sprint(bounds.MinZ)), len(fmt.Sprint(bounds.MaxZ)))

	var sb strings.Builder
	fmt.Fprintf(&sb, "x %d..%d\n", bounds.MinX, bounds.MaxX)
	for row := 0; row < b.Height; row++ {
		fmt.Fprintf(&sb, "%*d ", label, bounds.MinZ+int32(row))
		for col := 0; col < b.Width; col++ {
			if b.At(col, row) {
				sb.WriteString(g.Marked)
			} else {
				sb.WriteString(g.Unmarked)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
