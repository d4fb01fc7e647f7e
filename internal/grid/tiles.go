package grid

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-grid/internal/errors"
)

// Tile is one grid cell of the normalized image.
type Tile struct {
	// Index is the 1-based emission index. Index 1 is the bottom-right cell.
	Index int `json:"index"`

	// Row and Col are the 0-based grid position, counted from the top-left.
	Row int `json:"row"`
	Col int `json:"col"`

	// Bounds is the cell rectangle in normalized image coordinates.
	Bounds image.Rectangle `json:"bounds"`
}

// Tiles enumerates the grid cells of spec in emission order: rows from last to
// first and, within a row, columns from last to first.
func Tiles(spec Spec) []Tile {
	cw, ch := spec.Platform.ContentWidth, spec.Platform.ContentHeight
	tiles := make([]Tile, 0, max(0, spec.Count()))
	index := 1
	for row := spec.Rows - 1; row >= 0; row-- {
		for col := spec.Cols - 1; col >= 0; col-- {
			left, top := col*cw, row*ch
			tiles = append(tiles, Tile{
				Index:  index,
				Row:    row,
				Col:    col,
				Bounds: image.Rect(left, top, left+cw, top+ch),
			})
			index++
		}
	}
	return tiles
}

// Extract copies the pixels of t out of the normalized image img.
func Extract(img image.Image, t Tile) (*image.NRGBA, error) {
	b := img.Bounds()
	r := t.Bounds.Add(b.Min)
	if !r.In(b) {
		return nil, errors.New(errors.KindGeometry,
			"tile (%d,%d) %v lies outside normalized image %v", t.Row, t.Col, t.Bounds, b.Sub(b.Min)).AtTile(t.Index)
	}
	return imaging.Crop(img, r), nil
}
