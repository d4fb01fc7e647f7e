package detection

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// edgeThreshold is the minimum grayscale step between neighbors that counts
// as an edge.
const edgeThreshold = 30

// edgeMap is a binary edge image with a summed-area table for fast window
// counts. Coordinates are 0-based relative to the analyzed image.
type edgeMap struct {
	width, height int
	edges         []bool
	sum           []int // (width+1)*(height+1)
}

// newEdgeMap performs simple gradient-based edge detection.
//
// Pixels whose grayscale value differs from the right or lower neighbor by
// more than edgeThreshold are marked as edges. Border pixels
// (x=0, y=0, x=width-1, y=height-1) are never edges.
func newEdgeMap(img image.Image) *edgeMap {
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	// bild writes the luminance to R, G and B alike
	gray := effect.Grayscale(img)
	gb := gray.Bounds()
	width, height := gb.Dx(), gb.Dy()

	m := &edgeMap{
		width:  width,
		height: height,
		edges:  make([]bool, width*height),
		sum:    make([]int, (width+1)*(height+1)),
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			c := int(gray.RGBAAt(gb.Min.X+x, gb.Min.Y+y).R)
			cx := int(gray.RGBAAt(gb.Min.X+x+1, gb.Min.Y+y).R)
			cy := int(gray.RGBAAt(gb.Min.X+x, gb.Min.Y+y+1).R)
			if abs(c-cx) > edgeThreshold || abs(c-cy) > edgeThreshold {
				m.edges[y*width+x] = true
			}
		}
	}

	stride := width + 1
	for y := 0; y < height; y++ {
		row := 0
		for x := 0; x < width; x++ {
			if m.edges[y*width+x] {
				row++
			}
			m.sum[(y+1)*stride+x+1] = m.sum[y*stride+x+1] + row
		}
	}
	return m
}

func (m *edgeMap) at(x, y int) bool {
	return m.edges[y*m.width+x]
}

func (m *edgeMap) bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// count returns the number of edge pixels inside r.
func (m *edgeMap) count(r image.Rectangle) int {
	r = r.Intersect(m.bounds())
	if r.Empty() {
		return 0
	}
	stride := m.width + 1
	return m.sum[r.Max.Y*stride+r.Max.X] - m.sum[r.Min.Y*stride+r.Max.X] -
		m.sum[r.Max.Y*stride+r.Min.X] + m.sum[r.Min.Y*stride+r.Min.X]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
