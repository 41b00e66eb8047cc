package detection

// Rect is the size of an axis-aligned rectangle in cells.
type Rect struct {
	Width  int `json:"width"`  // Columns (x extent)
	Height int `json:"height"` // Rows (z extent)
}

// Area returns Width × Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// OneWide reports whether the rectangle is a single cell wide or tall.
func (r Rect) OneWide() bool {
	return r.Width == 1 || r.Height == 1
}

// bar is a histogram stack entry: a height and the column where it started.
type bar struct {
	height int
	start  int
}

// LargestRectangle returns the size of the largest all-true axis-aligned
// rectangle in b, or Rect{} if b has no true cells.
//
// # Algorithm
//
// Rows are processed top to bottom while maintaining, per column, the number
// of consecutive true cells ending at the current row. Each row's histogram
// is then searched with a monotonic stack (largestInHistogram).
//
// Ties: the first rectangle found with the maximum area wins, both within a
// row's stack scan and across rows. Replacing on equal area would change the
// reported dimensions, so comparisons are strict.
func LargestRectangle(b *Bitmap) Rect {
	if b == nil || b.Width == 0 || b.Height == 0 {
		return Rect{}
	}

	hist := make([]int, b.Width)
	stack := make([]bar, 0, b.Width)
	var best Rect

	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			if b.At(col, row) {
				hist[col]++
			} else {
				hist[col] = 0
			}
		}

		var r Rect
		r, stack = largestInHistogram(hist, stack)
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best
}

// largestInHistogram finds the largest rectangle under the bars of hist.
//
// The stack holds bars in strictly increasing height. A taller bar is pushed
// at its own column; an equal bar extends the top implicitly; a shorter bar
// pops every taller entry, scoring each as height × (i - start), and is then
// pushed with the start of the last popped entry. Bars left at the end are
// scored against len(hist). The stack slice is reused between calls.
func largestInHistogram(hist []int, stack []bar) (Rect, []bar) {
	stack = stack[:0]
	var best Rect
	bestArea := 0

	score := func(b bar, end int) {
		area := b.height * (end - b.start)
		if area > bestArea {
			bestArea = area
			best = Rect{Width: end - b.start, Height: b.height}
		}
	}

	for i, h := range hist {
		if len(stack) == 0 || h > stack[len(stack)-1].height {
			stack = append(stack, bar{height: h, start: i})
			continue
		}
		if h == stack[len(stack)-1].height {
			continue
		}

		start := i
		for len(stack) > 0 && h < stack[len(stack)-1].height {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			score(top, i)
			start = top.start
		}
		stack = append(stack, bar{height: h, start: start})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		score(top, len(hist))
	}
	return best, stack
}
