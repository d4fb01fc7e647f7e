// Package grid splits one source image into a grid of fixed-size tiles for
// multi-image social posts.
//
// The package is the geometry core of the tool. It has no knowledge of files,
// terminals or the MCP protocol; callers hand it a decoded image and a Sink and
// it hands back finished tiles in emission order.
//
// # Pipeline
//
// A run goes through four steps:
//
//  1. Planner: reconciles the source size with the grid target
//     (cols*ContentWidth × rows*ContentHeight). Oversized sources are
//     center-cropped; undersized ones are stretched or padded with black,
//     depending on the mode returned by the UndersizeResolver.
//  2. Tiles: enumerates the grid cells in reverse raster order. Emission
//     index 1 is the bottom-right cell and the top-left cell comes last, which
//     matches the way the target platform displays a multi-post upload.
//  3. ApplyEdge: adds a safe zone to the left and right of each tile, either a
//     Gaussian-blurred copy of the tile's own edge strips or a solid border.
//  4. Sink: receives every finished tile together with its emission index.
//
// # Platform contract
//
// Tile content size, safe-zone width, border width and blur radius are held in
// a Platform value. DefaultPlatform returns the values the target platform
// expects (1016×1350 content, 32px safe zones, blur radius 10).
//
// # Coordinates
//
// All rectangles are 0-based with (x1,y1) inclusive and (x2,y2) exclusive,
// relative to the top-left corner of the image they describe.
package grid
