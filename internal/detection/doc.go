// Package detection finds content that a grid cut would split.
//
// The tile seams of a grid are fixed by the grid size, so a caption or a face
// that happens to sit on a seam ends up halved across two posts. The Auditor
// in this package scans a band around every seam for text-like regions and
// reports each one the seam passes through. It implements grid.SeamAuditor and
// is wired into a pipeline with the --audit-seams flag or the
// grid_audit_seams tool.
//
// # Text Detection
//
// DetectTextRegions is a heuristic rather than OCR:
//
//  1. Edge Detection: convert to grayscale and mark pixels whose value steps
//     by more than 30 to the right or lower neighbor
//  2. Windowing: slide windows of several text sizes across the image and
//     keep windows with a medium edge density (5% to 40%)
//  3. Scoring: favour windows made of short vertical strokes, which is what
//     lettering looks like in an edge image
//  4. Merging: union overlapping windows and sort by confidence
//
// Edge counts use a summed-area table, so each window costs O(1) to measure.
//
// # Coordinate System
//
// All coordinates use the standard image convention with the origin at the
// top-left corner. Rectangles are image.Rectangle values: Min inclusive, Max
// exclusive.
//
// # Limitations
//
// The heuristic works best on clean, high-contrast lettering. Photographs
// with dense texture can produce false positives, which is acceptable for an
// advisory check: findings are logged as warnings and never stop a split.
package detection
