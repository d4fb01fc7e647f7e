// Package cli implements the image-grid command line.
//
// Commands:
//   - split: cut an image into tiles and write them to a directory
//   - plan: print the normalization decision and tile order, optionally
//     saving a seam preview
//   - serve: run the MCP server over stdio
//
// The platform contract (content size, safe zone, border, blur radius and
// fills) is read from $HOME/.image-grid.yaml or the file given by --config,
// and can be overridden by IMAGE_GRID_* environment variables. Split and plan
// flags may also be set in the config file under the flag's name.
package cli
