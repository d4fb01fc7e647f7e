package grid

import (
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/ironsheep/image-grid/internal/errors"
)

// Strategy is the normalization chosen for a source image.
type Strategy string

const (
	StrategyCrop   Strategy = "crop"   // source covers the target; keep a target-sized region
	StrategyResize Strategy = "resize" // undersized; stretch to target
	StrategyPad    Strategy = "pad"    // undersized; center on a filled canvas
)

// Insets holds the padding added on each side of a padded source.
type Insets struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Plan is the geometry decision for one source image. It is computed without
// touching pixels, so planning the same source twice yields the same Plan.
type Plan struct {
	// Source is the size of the source image.
	Source image.Point `json:"source"`

	// Target is the size of the normalized image (cols*cw × rows*ch).
	Target image.Point `json:"target"`

	// Strategy is the normalization applied.
	Strategy Strategy `json:"strategy"`

	// Anchor is the crop anchor used when Strategy is crop.
	Anchor Anchor `json:"anchor,omitempty"`

	// Region is the part of the source that ends up in the normalized image.
	// For crop it is the crop rectangle, for resize the whole source, and for
	// pad the source clipped to the target on any axis where it is larger.
	Region image.Rectangle `json:"region"`

	// Padding is the fill added on each side. Only set for pad.
	Padding Insets `json:"padding"`
}

// Undersized reports whether the source is smaller than the target on either axis.
func (p *Plan) Undersized() bool {
	return p.Source.X < p.Target.X || p.Source.Y < p.Target.Y
}

// UndersizeResolver decides between stretching and padding when the source is
// smaller than the grid target.
type UndersizeResolver interface {
	ResolveUndersize(ctx context.Context, source, target image.Point) (ResizeMode, error)
}

// FixedMode is an UndersizeResolver that always answers with the same mode.
type FixedMode ResizeMode

// ResolveUndersize implements UndersizeResolver.
func (m FixedMode) ResolveUndersize(context.Context, image.Point, image.Point) (ResizeMode, error) {
	return ParseResizeMode(string(m))
}

// ResolverFunc adapts a function to the UndersizeResolver interface.
type ResolverFunc func(ctx context.Context, source, target image.Point) (ResizeMode, error)

// ResolveUndersize implements UndersizeResolver.
func (f ResolverFunc) ResolveUndersize(ctx context.Context, source, target image.Point) (ResizeMode, error) {
	return f(ctx, source, target)
}

// Planner decides and executes the normalization of a source image.
type Planner struct {
	Spec     Spec
	Resolver UndersizeResolver
	Anchor   Anchor
}

// NewPlanner creates a Planner that center-crops oversized sources.
func NewPlanner(spec Spec, resolver UndersizeResolver) *Planner {
	return &Planner{Spec: spec, Resolver: resolver, Anchor: AnchorCenter}
}

// Plan computes the geometry decision for src. The resolver is consulted only
// when src is undersized.
func (p *Planner) Plan(ctx context.Context, src image.Image) (*Plan, error) {
	if err := p.Spec.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New(errors.KindDecode, "no source image")
	}
	size := src.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New(errors.KindDecode, "source image is empty (%dx%d)", size.X, size.Y)
	}

	plan := &Plan{Source: size, Target: p.Spec.Target()}

	if !plan.Undersized() {
		anchor, err := ParseAnchor(string(p.Anchor))
		if err != nil {
			return nil, err
		}
		plan.Strategy = StrategyCrop
		plan.Anchor = anchor
		if anchor == AnchorSmart {
			region, err := smartRegion(src, plan.Target)
			if err != nil {
				return nil, err
			}
			plan.Region = region
			return plan, nil
		}
		left := (size.X - plan.Target.X) / 2
		top := (size.Y - plan.Target.Y) / 2
		plan.Region = image.Rect(left, top, left+plan.Target.X, top+plan.Target.Y)
		return plan, nil
	}

	if p.Resolver == nil {
		return nil, errors.New(errors.KindValidation,
			"source %dx%d is smaller than grid %dx%d and no resize mode was given",
			size.X, size.Y, plan.Target.X, plan.Target.Y)
	}
	mode, err := p.Resolver.ResolveUndersize(ctx, size, plan.Target)
	if err != nil {
		return nil, err
	}
	mode, err = ParseResizeMode(string(mode))
	if err != nil {
		return nil, err
	}

	switch mode {
	case ResizeStretch:
		plan.Strategy = StrategyResize
		plan.Region = image.Rect(0, 0, size.X, size.Y)
	case ResizePad:
		plan.Strategy = StrategyPad
		x0, x1, left, right := padAxis(size.X, plan.Target.X)
		y0, y1, top, bottom := padAxis(size.Y, plan.Target.Y)
		plan.Region = image.Rect(x0, y0, x1, y1)
		plan.Padding = Insets{Left: left, Top: top, Right: right, Bottom: bottom}
	}
	return plan, nil
}

// padAxis returns the kept source span [lo,hi) and the fill before/after it
// for one axis. The fill is split as (p/2, p-p/2). An axis where the source is
// already longer than the target keeps its first target pixels.
func padAxis(src, target int) (lo, hi, before, after int) {
	if src >= target {
		return 0, target, 0, 0
	}
	pad := target - src
	before = pad / 2
	return 0, src, before, pad - before
}

// Normalize plans and executes the normalization of src, returning an image of
// exactly the grid target size.
func (p *Planner) Normalize(ctx context.Context, src image.Image) (*image.NRGBA, *Plan, error) {
	if src != nil && src.Bounds().Min != (image.Point{}) {
		src = imaging.Clone(src)
	}
	plan, err := p.Plan(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.Execute(src, plan)
	if err != nil {
		return nil, nil, err
	}
	return out, plan, nil
}

// Execute applies plan to src. src must have the size the plan was made for.
func (p *Planner) Execute(src image.Image, plan *Plan) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Size() != plan.Source {
		return nil, errors.New(errors.KindGeometry,
			"plan made for %dx%d source, got %dx%d", plan.Source.X, plan.Source.Y, b.Dx(), b.Dy())
	}
	tw, th := plan.Target.X, plan.Target.Y
	region := plan.Region.Add(b.Min)

	var out *image.NRGBA
	switch plan.Strategy {
	case StrategyCrop:
		out = imaging.Crop(src, region)
		if out.Bounds().Dx() != tw || out.Bounds().Dy() != th {
			// smart regions keep the target aspect but may be larger
			out = imaging.Resize(out, tw, th, imaging.Lanczos)
		}
	case StrategyResize:
		out = imaging.Resize(src, tw, th, imaging.Lanczos)
	case StrategyPad:
		canvas := imaging.New(tw, th, p.Spec.Platform.CanvasFill)
		kept := imaging.Crop(src, region)
		out = imaging.Paste(canvas, kept, image.Pt(plan.Padding.Left, plan.Padding.Top))
	default:
		return nil, errors.New(errors.KindGeometry, "unknown strategy %q", plan.Strategy)
	}

	if got := out.Bounds().Size(); got != plan.Target {
		return nil, errors.New(errors.KindGeometry,
			"%s produced %dx%d, want %dx%d", plan.Strategy, got.X, got.Y, tw, th)
	}
	return out, nil
}

// lanczosResizer implements the smartcrop resizer using imaging.
type lanczosResizer struct{}

func (lanczosResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Lanczos)
}

// smartRegion finds the most interesting region of src with the aspect ratio
// of target.
func smartRegion(src image.Image, target image.Point) (image.Rectangle, error) {
	analyzer := smartcrop.NewAnalyzer(lanczosResizer{})
	crop, err := analyzer.FindBestCrop(src, target.X, target.Y)
	if err != nil {
		return image.Rectangle{}, errors.Wrap(errors.KindGeometry, err, "finding best crop")
	}
	region := crop.Sub(src.Bounds().Min).Intersect(image.Rectangle{Max: src.Bounds().Size()})
	if region.Dx() < target.X || region.Dy() < target.Y {
		// never upscale a crop of a source that already covers the target
		left := clamp(region.Min.X+(region.Dx()-target.X)/2, 0, src.Bounds().Dx()-target.X)
		top := clamp(region.Min.Y+(region.Dy()-target.Y)/2, 0, src.Bounds().Dy()-target.Y)
		region = image.Rect(left, top, left+target.X, top+target.Y)
	}
	return region, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
