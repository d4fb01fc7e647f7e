package grid

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-grid/internal/errors"
)

// ApplyEdge adds the safe zones of mode to the left and right of tile.
//
// The result is always fully opaque: any alpha in the tile is dropped so the
// encoder sees three color channels. Top and bottom edges are never touched.
func ApplyEdge(tile image.Image, mode EdgeMode, p Platform) (*image.NRGBA, error) {
	switch mode {
	case EdgePad:
		return dropAlpha(padEdges(tile, p.BorderWidth, p.BorderFill)), nil
	case EdgeBlur:
		return dropAlpha(blurEdges(tile, p.SafeZoneWidth, p.BlurRadius)), nil
	}
	return nil, errors.New(errors.KindInvalidMode, "invalid edge mode %q (want blur or pad)", mode)
}

// padEdges places tile between two solid borders of the given width.
func padEdges(tile image.Image, width int, fill color.Color) *image.NRGBA {
	size := tile.Bounds().Size()
	if fill == nil {
		fill = color.White
	}
	canvas := imaging.New(size.X+2*width, size.Y, fill)
	return imaging.Paste(canvas, tile, image.Pt(width, 0))
}

// blurEdges blurs the outermost strips of tile independently and places them
// on either side of the untouched tile. The strips are neither mirrored nor
// moved; each keeps the side it was taken from.
func blurEdges(tile image.Image, width int, sigma float64) *image.NRGBA {
	if width <= 0 {
		return imaging.Clone(tile)
	}
	b := tile.Bounds()
	w, h := b.Dx(), b.Dy()

	left := imaging.Crop(tile, image.Rect(b.Min.X, b.Min.Y, b.Min.X+width, b.Max.Y))
	right := imaging.Crop(tile, image.Rect(b.Max.X-width, b.Min.Y, b.Max.X, b.Max.Y))

	radius := bildRadius(sigma)
	canvas := imaging.New(w+2*width, h, color.Black)
	canvas = imaging.Paste(canvas, blur.Gaussian(left, radius), image.Pt(0, 0))
	canvas = imaging.Paste(canvas, tile, image.Pt(width, 0))
	return imaging.Paste(canvas, blur.Gaussian(right, radius), image.Pt(width+w, 0))
}

// bildRadius converts a standard deviation into the radius blur.Gaussian
// expects. bild weights its kernel with exp(-x²/4r), so σ² = 2r.
func bildRadius(sigma float64) float64 {
	return sigma * sigma / 2
}

// dropAlpha marks every pixel of img opaque in place, keeping its color values.
func dropAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
	return img
}
