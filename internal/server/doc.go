// Package server implements the MCP (Model Context Protocol) server for
// inscribed-rectangle search.
//
// This package provides a JSON-RPC 2.0 server that exposes the
// load, segment, search and render pipeline through the MCP protocol.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - region_segment: Turn the image into a binary region and report stats
//   - region_sample: Report the sampled interior grid and its extent
//
// Rectangle Operations:
//   - rect_find: Largest inscribed axis-aligned rectangle
//   - rect_overlay: Same, drawn over the image
//   - rect_crop: Same, cropped out of the image
//
// Segmentation and search arguments are optional; omitted values come from
// the config.Config the server was created with.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime of
// the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Finding no rectangle is not an error. The result then has found=false and
// a status of empty_region or no_valid_rectangle. A search stopped by
// max_checks or timeout_ms returns the best rectangle so far with
// truncated=true.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, slog.Default(), version)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
