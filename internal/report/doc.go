// Package report delivers accepted clusters to external collectors.
//
// Every accepted cluster becomes one Record. A Sink receives records one at a
// time; delivery is best effort. The scanner logs a failed delivery and keeps
// going, so no sink can abort a scan.
//
// # Sinks
//
//   - HTTPSink: JSON POST to a collector endpoint
//   - WebsocketSink: one JSON text message per record over a websocket
//   - LogSink: a structured log line per record
//   - ConsoleSink: a human-readable block with the rendered cluster
//   - Multi: fan-out to several sinks
//   - Async: a bounded queue in front of another sink, so the scan never
//     waits on the network
//
// # Wire Format
//
//	{
//	  "id": "1f0c...",
//	  "seed": -8301357846524185845,
//	  "origin": {"x": 120, "z": -44},
//	  "chunks": [{"x": 120, "z": -44}, {"x": 120, "z": -43}],
//	  "area": 16
//	}
//
// Coordinates are in chunk units. Area is the largest rectangle's area, or
// the cluster size when the search is not restricted to rectangles.
package report
