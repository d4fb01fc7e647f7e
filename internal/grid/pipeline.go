package grid

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ironsheep/image-grid/internal/errors"
)

// Sink receives finished tiles. It owns encoding, naming and persistence.
type Sink interface {
	WriteTile(ctx context.Context, index int, tile image.Image) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, index int, tile image.Image) error

// WriteTile implements Sink.
func (f SinkFunc) WriteTile(ctx context.Context, index int, tile image.Image) error {
	return f(ctx, index, tile)
}

// SeamFinding is a region of the normalized image that a tile seam cuts through.
type SeamFinding struct {
	// Orientation is "vertical" for a column seam, "horizontal" for a row seam.
	Orientation string `json:"orientation"`

	// Position is the x (vertical seam) or y (horizontal seam) of the cut.
	Position int `json:"position"`

	// Region is the bounding box of the content crossing the seam.
	Region image.Rectangle `json:"region"`

	// Confidence is the detector score for the region (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// SeamAuditor inspects the normalized image for content that tile seams cut.
type SeamAuditor interface {
	AuditSeams(img image.Image, spec Spec) ([]SeamFinding, error)
}

// Options configures a Pipeline.
type Options struct {
	// Edge is the safe-zone treatment for every tile.
	Edge EdgeMode

	// Anchor selects the crop region for oversized sources. Default: center.
	Anchor Anchor

	// Resolver decides resize vs pad for undersized sources.
	Resolver UndersizeResolver

	// Auditor, when set, reports seams that cut through content. Findings are
	// logged and returned in the Report; they never fail a run.
	Auditor SeamAuditor

	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

// Report summarizes a completed run.
type Report struct {
	RunID    string        `json:"run_id"`
	Plan     *Plan         `json:"plan"`
	Tiles    []Tile        `json:"tiles"`
	Findings []SeamFinding `json:"seam_findings,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Pipeline turns one source image into finished tiles.
//
// A Pipeline is a single pass with no retries: the first failing step aborts
// the run. Tiles handed to the sink before the failure are not rolled back.
type Pipeline struct {
	spec    Spec
	opts    Options
	planner *Planner
	logger  *log.Logger
}

// New creates a pipeline for spec.
func New(spec Spec, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	planner := NewPlanner(spec, opts.Resolver)
	if opts.Anchor != "" {
		planner.Anchor = opts.Anchor
	}
	return &Pipeline{spec: spec, opts: opts, planner: planner, logger: logger}
}

// Plan computes the geometry decision for src without producing tiles.
func (p *Pipeline) Plan(ctx context.Context, src image.Image) (*Plan, error) {
	if err := p.spec.Validate(); err != nil {
		return nil, errors.Ensure(err, errors.KindValidation, errors.StageValidate)
	}
	plan, err := p.planner.Plan(ctx, src)
	return plan, errors.Ensure(err, errors.KindGeometry, errors.StageNormalize)
}

// Run normalizes src, cuts it into tiles and hands each finished tile to sink
// in emission order.
func (p *Pipeline) Run(ctx context.Context, src image.Image, sink Sink) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := p.logger.With("run", report.RunID[:8])

	if err := p.spec.Validate(); err != nil {
		return nil, errors.Ensure(err, errors.KindValidation, errors.StageValidate)
	}
	edge, err := ParseEdgeMode(string(p.opts.Edge))
	if err != nil {
		return nil, errors.Ensure(err, errors.KindInvalidMode, errors.StageValidate)
	}
	if sink == nil {
		return nil, errors.New(errors.KindValidation, "no output sink").AtStage(errors.StageValidate)
	}

	normalized, plan, err := p.planner.Normalize(ctx, src)
	if err != nil {
		return nil, errors.Ensure(err, errors.KindGeometry, errors.StageNormalize)
	}
	report.Plan = plan
	logger.Info("normalized source",
		"source", plan.Source,
		"target", plan.Target,
		"strategy", plan.Strategy)
	logger.Debug("normalization geometry", "region", plan.Region, "padding", plan.Padding)

	if p.opts.Auditor != nil {
		findings, err := p.opts.Auditor.AuditSeams(normalized, p.spec)
		if err != nil {
			logger.Warn("seam audit failed", "err", err)
		}
		for _, f := range findings {
			logger.Warn("seam cuts through content",
				"seam", f.Orientation,
				"at", f.Position,
				"region", f.Region,
				"confidence", f.Confidence)
		}
		report.Findings = findings
	}

	for _, t := range Tiles(p.spec) {
		tile, err := Extract(normalized, t)
		if err != nil {
			return report, tileError(errors.Ensure(err, errors.KindGeometry, errors.StageExtract), t.Index)
		}
		finished, err := ApplyEdge(tile, edge, p.spec.Platform)
		if err != nil {
			return report, tileError(errors.Ensure(err, errors.KindInvalidMode, errors.StageEdge), t.Index)
		}
		if err := sink.WriteTile(ctx, t.Index, finished); err != nil {
			return report, tileError(errors.Ensure(err, errors.KindEncode, errors.StageSink), t.Index)
		}
		report.Tiles = append(report.Tiles, t)
		logger.Debug("wrote tile", "index", t.Index, "row", t.Row, "col", t.Col)
	}

	report.Elapsed = time.Since(start)
	logger.Info("split complete", "tiles", len(report.Tiles), "duration", report.Elapsed.Round(time.Millisecond))
	return report, nil
}

// tileError records index on err when it does not name a tile yet.
func tileError(err error, index int) error {
	var e *errors.Error
	if errors.As(err, &e) && e.Tile == 0 {
		e.Tile = index
	}
	return err
}
