// Package imaging handles the file side of grid splitting: decoding source
// images, writing finished tiles and rendering previews.
//
// Source images are decoded with the standard library decoders for PNG, JPEG
// and GIF plus the golang.org/x/image decoders for BMP, TIFF and WebP. Every
// decode failure is reported as a DECODE error from internal/errors.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner. Rectangles follow image.Rectangle: Min is inclusive, Max is
// exclusive.
//
// # Tile Output
//
// DirSink writes finished tiles as tile_{index}.jpg or tile_{index}.png, where
// index is the 1-based emission index assigned by the pipeline. JPEG output
// uses quality 95 unless configured otherwise.
//
// # Previews
//
// Preview and SeamOverlay return base64 PNG data for display by MCP clients.
// SeamOverlay draws the cut lines between tiles and labels each cell with its
// emission index, so the upload order can be checked before splitting.
//
// # Colors
//
// Fill colors are parsed from "#RRGGBB", "#RGB" or the names black, white
// and gray, and are always opaque.
//
// # Thread Safety
//
// ImageCache and DirSink are safe for concurrent use. The remaining functions
// are stateless.
package imaging
