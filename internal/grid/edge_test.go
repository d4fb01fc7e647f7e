package grid

import (
	"image"
	"math"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-grid/internal/errors"
)

func TestApplyEdge_Pad(t *testing.T) {
	p := DefaultPlatform()
	tile := createGradientImage(p.ContentWidth, p.ContentHeight)

	out, err := ApplyEdge(tile, EdgePad, p)
	require.NoError(t, err)
	require.Equal(t, image.Pt(1080, 1350), out.Bounds().Size())

	white := color.NRGBA{255, 255, 255, 255}
	for _, y := range []int{0, 675, 1349} {
		for x := 0; x < 32; x++ {
			assert.Equal(t, white, nrgbaAt(out, x, y), "left border (%d,%d)", x, y)
			assert.Equal(t, white, nrgbaAt(out, 1048+x, y), "right border (%d,%d)", 1048+x, y)
		}
	}
	assert.Equal(t, nrgbaAt(tile, 0, 0), nrgbaAt(out, 32, 0))
	assert.Equal(t, nrgbaAt(tile, 1015, 1349), nrgbaAt(out, 1047, 1349))
}

func TestApplyEdge_PadNoTopBottomBorder(t *testing.T) {
	p := smallPlatform()
	red := color.NRGBA{255, 0, 0, 255}
	tile := createInMemoryImage(10, 12, red)

	out, err := ApplyEdge(tile, EdgePad, p)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 12), out.Bounds().Size())
	for x := 3; x < 13; x++ {
		assert.Equal(t, red, nrgbaAt(out, x, 0))
		assert.Equal(t, red, nrgbaAt(out, x, 11))
	}
}

func TestApplyEdge_BlurCenterUntouched(t *testing.T) {
	p := DefaultPlatform()
	tile := createGradientImage(p.ContentWidth, p.ContentHeight)

	out, err := ApplyEdge(tile, EdgeBlur, p)
	require.NoError(t, err)
	require.Equal(t, image.Pt(1080, 1350), out.Bounds().Size())

	for y := 0; y < p.ContentHeight; y += 37 {
		for x := 0; x < p.ContentWidth; x += 13 {
			if nrgbaAt(out, x+32, y) != nrgbaAt(tile, x, y) {
				require.Failf(t, "center pixel changed", "(%d,%d): got %v, want %v", x, y, nrgbaAt(out, x+32, y), nrgbaAt(tile, x, y))
			}
		}
	}
}

func TestApplyEdge_BlurKeepsStripSides(t *testing.T) {
	p := smallPlatform()
	red := color.NRGBA{220, 20, 20, 255}
	blue := color.NRGBA{20, 20, 220, 255}
	tile := image.NewNRGBA(image.Rect(0, 0, 10, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 {
				tile.SetNRGBA(x, y, red)
			} else {
				tile.SetNRGBA(x, y, blue)
			}
		}
	}

	out, err := ApplyEdge(tile, EdgeBlur, p)
	require.NoError(t, err)
	require.Equal(t, image.Pt(16, 12), out.Bounds().Size())

	// uniform strips stay (nearly) their own color after blurring
	for y := 0; y < 12; y++ {
		for x := 0; x < 3; x++ {
			left := nrgbaAt(out, x, y)
			right := nrgbaAt(out, 13+x, y)
			assert.LessOrEqual(t, absDiff(left.R, red.R), 2, "left strip red at (%d,%d): %v", x, y, left)
			assert.LessOrEqual(t, absDiff(left.B, red.B), 2, "left strip blue at (%d,%d): %v", x, y, left)
			assert.LessOrEqual(t, absDiff(right.B, blue.B), 2, "right strip blue at (%d,%d): %v", x, y, right)
			assert.LessOrEqual(t, absDiff(right.R, blue.R), 2, "right strip red at (%d,%d): %v", x, y, right)
		}
	}
}

func TestApplyEdge_BlurSoftensStrip(t *testing.T) {
	p := smallPlatform()
	p.SafeZoneWidth = 4
	p.BlurRadius = 2
	tile := image.NewNRGBA(image.Rect(0, 0, 10, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 10; x++ {
			v := uint8(0)
			if y%2 == 0 {
				v = 255
			}
			tile.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	out, err := ApplyEdge(tile, EdgeBlur, p)
	require.NoError(t, err)

	// stripes alternate 0/255; a blurred strip must not keep that contrast
	a, b := nrgbaAt(out, 1, 5), nrgbaAt(out, 1, 6)
	assert.Less(t, absDiff(a.R, b.R), 200, "left strip not blurred: %v vs %v", a, b)
	// the untouched center keeps full contrast
	assert.Equal(t, 255, absDiff(nrgbaAt(out, 8, 5).R, nrgbaAt(out, 8, 6).R))
}

func TestApplyEdge_BlurSpreadMatchesSigma(t *testing.T) {
	p := smallPlatform()
	p.ContentWidth = 20
	p.SafeZoneWidth = 8
	p.BlurRadius = 10
	// black above y=100, white from y=100 down
	tile := image.NewNRGBA(image.Rect(0, 0, 20, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(0)
			if y >= 100 {
				v = 255
			}
			tile.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	out, err := ApplyEdge(tile, EdgeBlur, p)
	require.NoError(t, err)

	// one sigma past the step a Gaussian of sigma 10 reaches about 85% of it
	tests := []struct {
		y        int
		min, max int
	}{
		{90, 30, 56},
		{110, 205, 230},
	}
	for _, tt := range tests {
		for _, x := range []int{2, 33} {
			v := int(nrgbaAt(out, x, tt.y).R)
			assert.GreaterOrEqual(t, v, tt.min, "(%d,%d)", x, tt.y)
			assert.LessOrEqual(t, v, tt.max, "(%d,%d)", x, tt.y)
		}
	}
	assert.InDelta(t, 10.0, bildRadius(math.Sqrt(20)), 1e-9)
	assert.Equal(t, 50.0, bildRadius(10))
}

func TestApplyEdge_DropsAlpha(t *testing.T) {
	p := smallPlatform()
	tile := createInMemoryImage(10, 12, color.NRGBA{10, 200, 30, 40})

	for _, mode := range EdgeModes {
		out, err := ApplyEdge(tile, mode, p)
		require.NoError(t, err)
		b := out.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if a := out.NRGBAAt(x, y).A; a != 255 {
					require.Failf(t, "opaque output expected", "%s: pixel (%d,%d) alpha %d", mode, x, y, a)
				}
			}
		}
		assert.Equal(t, color.NRGBA{10, 200, 30, 255}, nrgbaAt(out, 5, 5), "%s keeps color", mode)
	}
}

func TestApplyEdge_InvalidMode(t *testing.T) {
	_, err := ApplyEdge(createInMemoryImage(10, 12, color.White), EdgeMode("foo"), smallPlatform())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindInvalidMode))
}

func TestApplyEdge_ZeroSafeZone(t *testing.T) {
	p := smallPlatform()
	p.SafeZoneWidth = 0
	tile := createGradientImage(10, 12)

	out, err := ApplyEdge(tile, EdgeBlur, p)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(10, 12), out.Bounds().Size())
	assert.Equal(t, nrgbaAt(tile, 4, 4), nrgbaAt(out, 4, 4))
}
