// Package render draws clusters and map windows for people.
//
// Output is purely presentational: nothing here feeds back into the search.
// Two forms are supported:
//
//   - Text: one line per row (z), one glyph pair per cell, marked cells
//     as "■ " and unmarked cells as "□ " by default
//   - PNG: one pixel per cell, upscaled with nearest-neighbour sampling so
//     cells stay square, returned as an image, base64 payload or file
//
// Rows always run from the smallest z at the top to the largest z at the
// bottom, and columns from the smallest x at the left.
package render
