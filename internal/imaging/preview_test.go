package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	img := createInMemoryImage(200, 100, color.RGBA{10, 20, 30, 255})

	result, err := Preview(img, 1)
	require.NoError(t, err)
	assert.Equal(t, 200, result.Width)
	assert.Equal(t, 100, result.Height)
	assert.Equal(t, "image/png", result.MimeType)

	_, err = base64.StdEncoding.DecodeString(result.ImageBase64)
	assert.NoError(t, err)
}

func TestPreview_Scaled(t *testing.T) {
	img := createInMemoryImage(200, 100, color.RGBA{10, 20, 30, 255})

	result, err := Preview(img, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Width)
	assert.Equal(t, 25, result.Height)
}

func TestPreview_NilImage(t *testing.T) {
	_, err := Preview(nil, 1)
	assert.Error(t, err)
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		size    image.Point
		maxSide int
		want    float64
	}{
		{image.Pt(3048, 4050), 1024, 1024.0 / 4050.0},
		{image.Pt(500, 400), 1024, 1},
		{image.Pt(2000, 1000), 1000, 0.5},
		{image.Pt(2000, 1000), 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FitScale(tt.size, tt.maxSide), "FitScale(%v, %d)", tt.size, tt.maxSide)
	}
}
