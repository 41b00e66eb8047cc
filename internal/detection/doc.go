// Package detection finds and measures clusters of marked cells.
//
// This package implements the algorithmic core of the search: grouping marked
// cells into 4-connected clusters, rasterizing a cluster into a bitmap over its
// bounding box, measuring the largest solid rectangle inside that bitmap, and
// deduplicating clusters discovered more than once within one scan.
//
// # Pipeline
//
// A scan uses the package in four steps:
//
//  1. Flood Fill: starting from a marked cell, collect every marked cell
//     reachable through edge-adjacent marked cells (FloodFill)
//  2. Rasterization: build a dense boolean grid over the cluster's bounding
//     box (Cluster.Bitmap)
//  3. Scoring: find the largest all-true axis-aligned rectangle in the bitmap
//     (LargestRectangle)
//  4. Deduplication: register the cluster's canonical signature (Registry)
//
// # Coordinate System
//
// Clusters hold world coordinates (chunk units). Bitmaps use local indexes:
//   - Column c corresponds to x = Bounds.MinX + c
//   - Row r corresponds to z = Bounds.MinZ + r
//   - Rect.Width counts columns (x extent), Rect.Height counts rows (z extent)
//
// # Canonical Form
//
// Clusters are always sorted by x, then z, with no duplicates. Two flood fills
// that discover the same connected region, from any starting cells, produce
// identical cell slices and therefore identical registry signatures.
//
// # Failure Modes
//
// None. FloodFill, LargestRectangle and the registry are total over their
// inputs and return no errors. FloodFill terminates because every cell is
// visited at most once and Marker implementations must be pure.
//
// # Performance Considerations
//
// FloodFill uses an explicit stack, so cluster size is bounded by memory, not
// by goroutine stack depth. LargestRectangle is O(width × height) of the
// cluster's bounding box.
package detection
