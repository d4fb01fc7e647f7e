// Package server implements the MCP (Model Context Protocol) server for grid
// splitting.
//
// This package provides a JSON-RPC 2.0 server that exposes the grid pipeline
// through the MCP protocol, so an assistant can plan a multi-post split,
// preview the cut and write the tiles without a terminal.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Diagnostics go to the configured logger, never to stdout.
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
// Grid Operations:
//   - grid_plan: Normalization decision and tile list, no output
//   - grid_split: Write tile_1..tile_N to a directory
//   - grid_audit_seams: Text-like content cut by a seam
//   - grid_preview: Normalized image with seams and emission indices drawn
//   - grid_tile_preview: One finished tile exactly as grid_split writes it
//
// The server cannot prompt, so an undersized source is stretched unless the
// call passes resize_mode "pad".
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across plan, audit and preview calls. A successful
// grid_split evicts its source.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error text, starting with its kind (DECODE, VALIDATION,
//     GEOMETRY, INVALID_MODE or ENCODE)
//
// # Usage
//
//	srv := server.NewWithConfig(server.Config{Logger: logger, Version: version})
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    logger.Fatal(err)
//	}
package server
