package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#ff8000", color.NRGBA{255, 128, 0, 255}},
		{"ff8000", color.NRGBA{255, 128, 0, 255}},
		{"#f80", color.NRGBA{255, 136, 0, 255}},
		{"white", color.NRGBA{255, 255, 255, 255}},
		{" Black ", color.NRGBA{0, 0, 0, 255}},
		{"grey", color.NRGBA{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#GGGGGG", "purple-ish", "#1234567"} {
		_, err := ParseColor(in)
		assert.Error(t, err, "ParseColor(%q) should fail", in)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   color.Color
		want string
	}{
		{color.Black, "#000000"},
		{color.White, "#ffffff"},
		{color.NRGBA{255, 128, 0, 255}, "#ff8000"},
		{color.NRGBA{10, 20, 30, 0}, "#0a141e"},
		{nil, "#000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Hex(tt.in), "Hex(%v)", tt.in)
	}
}

func TestHex_RoundTrip(t *testing.T) {
	c, err := ParseColor("#3a7bd5")
	require.NoError(t, err)
	assert.Equal(t, "#3a7bd5", Hex(c))
}
