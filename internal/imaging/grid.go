package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
)

// Cell is one labelled rectangle of a seam overlay.
type Cell struct {
	Bounds image.Rectangle
	Label  string
}

// SeamOverlayResult contains a preview of the grid cut as a base64 PNG.
type SeamOverlayResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
	Cells       int     `json:"cells"`
	Scale       float64 `json:"scale"`
}

// DrawSeams returns a copy of img, scaled by scale, with the seams between
// cells drawn in lineColor and each cell's label in its top-left corner.
//
// Cell bounds are given in img coordinates before scaling. A scale of 0 or
// less is treated as 1.
func DrawSeams(img image.Image, cells []Cell, lineColor color.Color, scale float64) *image.NRGBA {
	if scale <= 0 {
		scale = 1
	}
	bounds := img.Bounds()
	var result *image.NRGBA
	if scale != 1 {
		w := max(1, int(float64(bounds.Dx())*scale))
		h := max(1, int(float64(bounds.Dy())*scale))
		result = imaging.Resize(img, w, h, imaging.Lanczos)
	} else {
		result = imaging.Clone(img)
	}
	out := result.Bounds()

	labelColor := color.NRGBA{255, 255, 255, 255}
	bgColor := color.NRGBA{0, 0, 0, 200}
	glyph := max(1, out.Dx()/400)

	for _, c := range cells {
		r := scaleRect(c.Bounds.Sub(bounds.Min), scale)

		// Seams only where a cell does not touch the image edge
		if r.Min.X > 0 {
			fillRect(result, image.Rect(r.Min.X-1, r.Min.Y, r.Min.X+1, r.Max.Y), lineColor)
		}
		if r.Min.Y > 0 {
			fillRect(result, image.Rect(r.Min.X, r.Min.Y-1, r.Max.X, r.Min.Y+1), lineColor)
		}

		if c.Label != "" {
			drawLabel(result, r.Min.X+2*glyph+1, r.Min.Y+2*glyph+1, c.Label, glyph, labelColor, bgColor)
		}
	}
	return result
}

// SeamOverlay draws the cell seams on img and returns the result as base64 PNG.
func SeamOverlay(img image.Image, cells []Cell, lineColorHex string, scale float64) (*SeamOverlayResult, error) {
	lineColor, err := ParseColor(lineColorHex)
	if err != nil {
		lineColor = color.NRGBA{255, 0, 0, 255} // Default: red
	}
	if scale <= 0 {
		scale = 1
	}

	result := DrawSeams(img, cells, lineColor, scale)
	encoded, err := encodePNGBase64(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &SeamOverlayResult{
		Width:       result.Bounds().Dx(),
		Height:      result.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Cells:       len(cells),
		Scale:       scale,
	}, nil
}

// IndexLabel formats an emission index for a cell label.
func IndexLabel(index int) string {
	return strconv.Itoa(index)
}

func scaleRect(r image.Rectangle, scale float64) image.Rectangle {
	if scale == 1 {
		return r
	}
	return image.Rect(
		int(float64(r.Min.X)*scale), int(float64(r.Min.Y)*scale),
		int(float64(r.Max.X)*scale), int(float64(r.Max.Y)*scale),
	)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawLabel draws a text label at the given position. Each font pixel is
// drawn as a size×size block.
func drawLabel(img *image.NRGBA, x, y int, text string, size int, fg, bg color.NRGBA) {
	// Simple 3x5 pixel font for digits and comma
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
	}

	charWidth := 4 * size
	labelWidth := len(text) * charWidth
	labelHeight := 7 * size

	// Draw background
	fillRect(img, image.Rect(x-size, y-size, x+labelWidth, y+labelHeight-size), bg)

	// Draw text
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col*size, y+row*size
					fillRect(img, image.Rect(px, py, px+size, py+size), fg)
				}
			}
		}
		cx += charWidth
	}
}
