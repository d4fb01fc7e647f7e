package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PreviewResult contains an encoded preview of an image or finished tile.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview scales img and returns it as a base64 PNG. A scale of 1, 0 or
// less returns the image at its own size.
func Preview(img image.Image, scale float64) (*PreviewResult, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to preview")
	}
	out := image.Image(img)
	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(img.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(img.Bounds().Dy())*scale))
		out = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	encoded, err := encodePNGBase64(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// FitScale returns the scale that fits an image of the given size within
// maxSide pixels on its longest side. Images already small enough get 1.
func FitScale(size image.Point, maxSide int) float64 {
	longest := max(size.X, size.Y)
	if maxSide <= 0 || longest <= maxSide {
		return 1
	}
	return float64(maxSide) / float64(longest)
}

func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
