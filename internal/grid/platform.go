package grid

import (
	"image"
	"image/color"

	"github.com/ironsheep/image-grid/internal/errors"
)

// Default platform contract values.
const (
	DefaultContentWidth  = 1016 // 1080 minus both safe zones
	DefaultContentHeight = 1350
	DefaultSafeZoneWidth = 32
	DefaultBorderWidth   = 32
	DefaultBlurRadius    = 10.0
)

// Platform describes the tile geometry the target platform expects.
type Platform struct {
	// ContentWidth is the usable width of one tile before safe zones are added.
	ContentWidth int `json:"content_width"`

	// ContentHeight is the usable height of one tile.
	ContentHeight int `json:"content_height"`

	// SafeZoneWidth is the width of each blurred edge strip in blur mode.
	SafeZoneWidth int `json:"safe_zone_width"`

	// BorderWidth is the width of each solid border in pad mode.
	BorderWidth int `json:"border_width"`

	// BlurRadius is the standard deviation, in pixels, of the Gaussian blur
	// applied to the safe-zone strips.
	BlurRadius float64 `json:"blur_radius"`

	// CanvasFill fills the area added around undersized sources in pad mode.
	CanvasFill color.Color `json:"-"`

	// BorderFill fills the left/right borders of pad edge treatment.
	BorderFill color.Color `json:"-"`
}

// DefaultPlatform returns the platform contract for 1080-wide portrait posts.
func DefaultPlatform() Platform {
	return Platform{
		ContentWidth:  DefaultContentWidth,
		ContentHeight: DefaultContentHeight,
		SafeZoneWidth: DefaultSafeZoneWidth,
		BorderWidth:   DefaultBorderWidth,
		BlurRadius:    DefaultBlurRadius,
		CanvasFill:    color.Black,
		BorderFill:    color.White,
	}
}

// Validate checks that every platform dimension is usable.
func (p Platform) Validate() error {
	switch {
	case p.ContentWidth <= 0 || p.ContentHeight <= 0:
		return errors.New(errors.KindValidation,
			"content size must be positive, got %dx%d", p.ContentWidth, p.ContentHeight)
	case p.SafeZoneWidth < 0 || p.BorderWidth < 0:
		return errors.New(errors.KindValidation,
			"safe zone and border widths must not be negative, got %d and %d", p.SafeZoneWidth, p.BorderWidth)
	case p.SafeZoneWidth > p.ContentWidth:
		return errors.New(errors.KindValidation,
			"safe zone width %d exceeds content width %d", p.SafeZoneWidth, p.ContentWidth)
	case p.BlurRadius < 0:
		return errors.New(errors.KindValidation, "blur radius must not be negative, got %g", p.BlurRadius)
	}
	return nil
}

// FinishedSize returns the size of a tile after edge treatment in mode m.
func (p Platform) FinishedSize(m EdgeMode) image.Point {
	side := p.SafeZoneWidth
	if m == EdgePad {
		side = p.BorderWidth
	}
	return image.Pt(p.ContentWidth+2*side, p.ContentHeight)
}

// Spec is the grid shape together with the platform contract.
type Spec struct {
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	Platform Platform `json:"platform"`
}

// NewSpec returns a Spec with the default platform contract.
func NewSpec(rows, cols int) Spec {
	return Spec{Rows: rows, Cols: cols, Platform: DefaultPlatform()}
}

// Validate rejects non-positive grid dimensions and an unusable platform.
func (s Spec) Validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return errors.New(errors.KindValidation,
			"rows and cols must be positive, got %d rows and %d cols", s.Rows, s.Cols)
	}
	return s.Platform.Validate()
}

// Target returns the exact size the normalized image must have.
func (s Spec) Target() image.Point {
	return image.Pt(s.Cols*s.Platform.ContentWidth, s.Rows*s.Platform.ContentHeight)
}

// Count returns the number of tiles the grid produces.
func (s Spec) Count() int {
	return s.Rows * s.Cols
}
