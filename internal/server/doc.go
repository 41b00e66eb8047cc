// Package server implements the MCP (Model Context Protocol) server for the
// slime chunk tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the search engine
// to MCP-compatible clients, so a client can inspect single chunks, explore
// clusters and run bounded scans without the command line.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Single-cell queries:
//   - slime_is_marked: Coordinate value and slime test for one chunk
//   - slime_cluster_at: Cluster containing a chunk, with its best rectangle
//
// Search:
//   - slime_scan_seed: Scan a window for one seed and list accepted clusters
//   - slime_largest_rectangle: Largest solid rectangle of a literal bitmap
//
// Rendering:
//   - slime_render_map: Text map around a chunk
//   - slime_render_png: PNG of the cluster containing a chunk
//
// # Value Caching
//
// Scans read coordinate values from a world.CacheSet keyed by region. The
// values do not depend on the seed, so scans of the same region reuse one
// precomputed table. Only the two most recently used regions are kept.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Lines that are not valid JSON get a -32700 parse error with a null id.
//
// # Usage
//
//	srv := server.New(version, logger)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
