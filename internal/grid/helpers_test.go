package grid

import (
	"image"
	"image/color"
)

// smallPlatform keeps test images tiny while preserving every ratio that matters.
func smallPlatform() Platform {
	return Platform{
		ContentWidth:  10,
		ContentHeight: 12,
		SafeZoneWidth: 3,
		BorderWidth:   3,
		BlurRadius:    1,
		CanvasFill:    color.Black,
		BorderFill:    color.White,
	}
}

func smallSpec(rows, cols int) Spec {
	return Spec{Rows: rows, Cols: cols, Platform: smallPlatform()}
}

// sizedImage is a constant-color image that allocates no pixels. It lets the
// planner be exercised with full-size platform dimensions.
type sizedImage struct {
	w, h int
}

func (s sizedImage) ColorModel() color.Model { return color.NRGBAModel }
func (s sizedImage) Bounds() image.Rectangle { return image.Rect(0, 0, s.w, s.h) }
func (s sizedImage) At(x, y int) color.Color { return color.NRGBA{128, 128, 128, 255} }

func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// cellColor is the color of grid cell (row, col) in createCellImage.
func cellColor(row, col int) color.NRGBA {
	return color.NRGBA{R: uint8(40 + row*60), G: uint8(40 + col*60), B: 90, A: 255}
}

// createCellImage paints every cell of spec's target in its own color.
func createCellImage(spec Spec) *image.NRGBA {
	t := spec.Target()
	cw, ch := spec.Platform.ContentWidth, spec.Platform.ContentHeight
	img := image.NewNRGBA(image.Rect(0, 0, t.X, t.Y))
	for y := 0; y < t.Y; y++ {
		for x := 0; x < t.X; x++ {
			img.SetNRGBA(x, y, cellColor(y/ch, x/cw))
		}
	}
	return img
}

// createGradientImage gives every pixel a position-dependent color.
func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8((x + y) * 3), A: 255})
		}
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	b := img.Bounds()
	return color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
