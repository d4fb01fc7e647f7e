package detection

import (
	"image"

	"github.com/ironsheep/image-grid/internal/grid"
)

// Default Auditor settings.
const (
	DefaultMinConfidence = 0.3
	DefaultBand          = 200
	DefaultMargin        = 8
)

// Auditor reports text-like regions that a tile seam cuts through.
//
// Only a band around each seam is scanned, so the cost grows with the number
// of seams rather than with the image area.
type Auditor struct {
	// MinConfidence is the lowest text score that is reported.
	MinConfidence float64

	// Band is how far on each side of a seam the detector looks.
	Band int

	// Margin is how far inside a region a seam must pass to count as a cut.
	// Regions that only touch a seam are ignored.
	Margin int
}

// NewAuditor returns an Auditor with the default settings.
func NewAuditor() *Auditor {
	return &Auditor{
		MinConfidence: DefaultMinConfidence,
		Band:          DefaultBand,
		Margin:        DefaultMargin,
	}
}

// Seam is one internal cut line of the grid.
type Seam struct {
	Orientation string `json:"orientation"`
	Position    int    `json:"position"`
}

// Seams returns the internal cut lines of spec in image coordinates starting
// at the origin: vertical seams left to right, then horizontal seams top to
// bottom.
func Seams(spec grid.Spec) []Seam {
	cw, ch := spec.Platform.ContentWidth, spec.Platform.ContentHeight
	seams := make([]Seam, 0, spec.Cols+spec.Rows)
	for c := 1; c < spec.Cols; c++ {
		seams = append(seams, Seam{Orientation: "vertical", Position: c * cw})
	}
	for r := 1; r < spec.Rows; r++ {
		seams = append(seams, Seam{Orientation: "horizontal", Position: r * ch})
	}
	return seams
}

// AuditSeams implements grid.SeamAuditor. img is the normalized image, so its
// size is the grid target.
func (a *Auditor) AuditSeams(img image.Image, spec grid.Spec) ([]grid.SeamFinding, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	seams := Seams(spec)
	if len(seams) == 0 {
		return nil, nil
	}

	band := a.Band
	if band <= 0 {
		band = DefaultBand
	}

	m := newEdgeMap(img)
	origin := img.Bounds().Min
	full := m.bounds()

	findings := make([]grid.SeamFinding, 0)
	for _, s := range seams {
		var area image.Rectangle
		if s.Orientation == "vertical" {
			area = image.Rect(s.Position-band, full.Min.Y, s.Position+band, full.Max.Y)
		} else {
			area = image.Rect(full.Min.X, s.Position-band, full.Max.X, s.Position+band)
		}

		for _, r := range m.textRegions(area, a.MinConfidence) {
			if !a.cuts(s, r.Bounds) {
				continue
			}
			findings = append(findings, grid.SeamFinding{
				Orientation: s.Orientation,
				Position:    s.Position + axis(origin, s.Orientation),
				Region:      r.Bounds.Add(origin),
				Confidence:  r.Confidence,
			})
		}
	}
	return findings, nil
}

// cuts reports whether seam s passes through the interior of r.
func (a *Auditor) cuts(s Seam, r image.Rectangle) bool {
	lo, hi := r.Min.X, r.Max.X
	if s.Orientation == "horizontal" {
		lo, hi = r.Min.Y, r.Max.Y
	}
	return s.Position >= lo+a.Margin && s.Position <= hi-a.Margin
}

func axis(p image.Point, orientation string) int {
	if orientation == "horizontal" {
		return p.Y
	}
	return p.X
}
