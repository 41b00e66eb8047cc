// Package search runs the per-seed scan and the unbounded seed loop.
//
// A Scanner walks one square region for one seed, flood-fills every marked
// cell that is not already part of a discovered cluster, scores each cluster
// by its largest solid rectangle, and reports the clusters that pass the
// acceptance policy (Config.Accept). A Runner pulls seeds from a source and
// scans them one after another, or on several workers at once.
//
// # State
//
// All state of a scan (registry, seen set, findings) lives in the Scan call
// and is discarded when it returns. The only thing shared between scans is
// the seed-independent world.ValueCache, which is read-only. Parallel workers
// therefore need no locking beyond what the sink itself does.
//
// # Cancellation
//
// Scan checks its context before every row and before every flood fill.
// A cancelled scan returns the context's error and no partial result.
//
// # Reporting
//
// The sink is called synchronously from the scan. A failing sink is logged
// and the scan continues; wrap slow sinks in report.Async.
package search
