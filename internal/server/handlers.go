package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"

	"github.com/ironsheep/image-grid/internal/detection"
	"github.com/ironsheep/image-grid/internal/errors"
	"github.com/ironsheep/image-grid/internal/grid"
	"github.com/ironsheep/image-grid/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "grid_split").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// The error data is the message prefixed with its kind, e.g.
// "VALIDATION: rows and cols must be positive".
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate grid/imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Grid Operations
	case "grid_plan":
		return s.handleGridPlan(ctx, args)
	case "grid_split":
		return s.handleGridSplit(ctx, args)
	case "grid_audit_seams":
		return s.handleGridAuditSeams(ctx, args)
	case "grid_preview":
		return s.handleGridPreview(ctx, args)
	case "grid_tile_preview":
		return s.handleGridTilePreview(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Grid Handlers ===

// gridArgs are the arguments shared by every grid tool.
type gridArgs struct {
	Path       string `json:"path"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	ResizeMode string `json:"resize_mode"`
	Anchor     string `json:"anchor"`
}

// planner validates the grid arguments and returns the source image together
// with a planner for it. There is no one to ask about undersized sources, so
// resize_mode defaults to resize.
func (s *Server) planner(a gridArgs) (image.Image, *grid.Planner, error) {
	spec := grid.Spec{Rows: a.Rows, Cols: a.Cols, Platform: s.platform}
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}
	if a.ResizeMode == "" {
		a.ResizeMode = string(grid.ResizeStretch)
	}
	mode, err := grid.ParseResizeMode(a.ResizeMode)
	if err != nil {
		return nil, nil, err
	}
	anchor, err := grid.ParseAnchor(a.Anchor)
	if err != nil {
		return nil, nil, err
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	p := grid.NewPlanner(spec, grid.FixedMode(mode))
	p.Anchor = anchor
	return src.Image, p, nil
}

type gridPlanArgs struct {
	gridArgs
	EdgeMode string `json:"edge_mode"`
}

// GridPlanResult describes how a source would be split.
type GridPlanResult struct {
	Plan         *grid.Plan  `json:"plan"`
	Tiles        []grid.Tile `json:"tiles"`
	TileCount    int         `json:"tile_count"`
	EdgeMode     string      `json:"edge_mode"`
	FinishedTile image.Point `json:"finished_tile"`
}

func (s *Server) handleGridPlan(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gridPlanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.EdgeMode == "" {
		a.EdgeMode = string(grid.EdgeBlur)
	}
	edge, err := grid.ParseEdgeMode(a.EdgeMode)
	if err != nil {
		return nil, err
	}

	src, p, err := s.planner(a.gridArgs)
	if err != nil {
		return nil, err
	}
	plan, err := p.Plan(ctx, src)
	if err != nil {
		return nil, err
	}

	tiles := grid.Tiles(p.Spec)
	return &GridPlanResult{
		Plan:         plan,
		Tiles:        tiles,
		TileCount:    len(tiles),
		EdgeMode:     string(edge),
		FinishedTile: s.platform.FinishedSize(edge),
	}, nil
}

type gridSplitArgs struct {
	gridArgs
	OutputDir  string `json:"output_dir"`
	EdgeMode   string `json:"edge_mode"`
	Format     string `json:"format"`
	Quality    int    `json:"quality"`
	AuditSeams bool   `json:"audit_seams"`
}

// GridSplitResult reports a completed split.
type GridSplitResult struct {
	RunID     string             `json:"run_id"`
	OutputDir string             `json:"output_dir"`
	Files     []string           `json:"files"`
	TileCount int                `json:"tile_count"`
	Plan      *grid.Plan         `json:"plan"`
	Findings  []grid.SeamFinding `json:"seam_findings,omitempty"`
	Message   string             `json:"message"`
}

func (s *Server) handleGridSplit(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gridSplitArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, errors.New(errors.KindValidation, "output_dir is required")
	}
	if a.EdgeMode == "" {
		a.EdgeMode = string(grid.EdgeBlur)
	}

	src, p, err := s.planner(a.gridArgs)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(a.OutputDir)
	if err != nil {
		return nil, errors.Wrap(errors.KindValidation, err, "invalid output_dir")
	}
	sink, err := imaging.NewDirSink(dir, a.Format, a.Quality)
	if err != nil {
		return nil, err
	}

	opts := grid.Options{
		Edge:     grid.EdgeMode(a.EdgeMode),
		Anchor:   p.Anchor,
		Resolver: p.Resolver,
		Logger:   s.logger,
	}
	if a.AuditSeams {
		opts.Auditor = detection.NewAuditor()
	}

	report, err := grid.New(p.Spec, opts).Run(ctx, src, sink)
	if err != nil {
		return nil, err
	}
	// The source is not needed again once its tiles are written.
	s.cache.Evict(a.Path)

	return &GridSplitResult{
		RunID:     report.RunID,
		OutputDir: dir,
		Files:     sink.Written(),
		TileCount: len(report.Tiles),
		Plan:      report.Plan,
		Findings:  report.Findings,
		Message:   fmt.Sprintf("Split image into %d tiles in '%s'", len(report.Tiles), dir),
	}, nil
}

type gridAuditArgs struct {
	gridArgs
	MinConfidence float64 `json:"min_confidence"`
}

// GridAuditResult lists the seams of a grid and the content they cut.
type GridAuditResult struct {
	Seams    []detection.Seam   `json:"seams"`
	Findings []grid.SeamFinding `json:"findings"`
	Count    int                `json:"count"`
}

func (s *Server) handleGridAuditSeams(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gridAuditArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	src, p, err := s.planner(a.gridArgs)
	if err != nil {
		return nil, err
	}
	normalized, _, err := p.Normalize(ctx, src)
	if err != nil {
		return nil, err
	}

	auditor := detection.NewAuditor()
	if a.MinConfidence > 0 {
		auditor.MinConfidence = a.MinConfidence
	}
	findings, err := auditor.AuditSeams(normalized, p.Spec)
	if err != nil {
		return nil, err
	}
	if findings == nil {
		findings = []grid.SeamFinding{}
	}

	return &GridAuditResult{
		Seams:    detection.Seams(p.Spec),
		Findings: findings,
		Count:    len(findings),
	}, nil
}

type gridPreviewArgs struct {
	gridArgs
	LineColor string `json:"line_color"`
	MaxSize   int    `json:"max_size"`
}

func (s *Server) handleGridPreview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gridPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LineColor == "" {
		a.LineColor = "#FF0000"
	}
	if a.MaxSize == 0 {
		a.MaxSize = 1024
	}

	src, p, err := s.planner(a.gridArgs)
	if err != nil {
		return nil, err
	}
	normalized, _, err := p.Normalize(ctx, src)
	if err != nil {
		return nil, err
	}

	return imaging.SeamOverlay(normalized, tileCells(p.Spec), a.LineColor,
		imaging.FitScale(normalized.Bounds().Size(), a.MaxSize))
}

type gridTilePreviewArgs struct {
	gridArgs
	EdgeMode string `json:"edge_mode"`
	Index    int    `json:"index"`
	MaxSize  int    `json:"max_size"`
}

// GridTilePreviewResult is one finished tile, as it would be written.
type GridTilePreviewResult struct {
	Tile grid.Tile `json:"tile"`
	*imaging.PreviewResult
}

func (s *Server) handleGridTilePreview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gridTilePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.EdgeMode == "" {
		a.EdgeMode = string(grid.EdgeBlur)
	}
	if a.MaxSize == 0 {
		a.MaxSize = 1024
	}
	edge, err := grid.ParseEdgeMode(a.EdgeMode)
	if err != nil {
		return nil, err
	}

	src, p, err := s.planner(a.gridArgs)
	if err != nil {
		return nil, err
	}
	if a.Index < 1 || a.Index > p.Spec.Count() {
		return nil, errors.New(errors.KindValidation,
			"tile index %d out of range (grid has %d tiles)", a.Index, p.Spec.Count())
	}
	normalized, _, err := p.Normalize(ctx, src)
	if err != nil {
		return nil, err
	}

	t := grid.Tiles(p.Spec)[a.Index-1]
	tile, err := grid.Extract(normalized, t)
	if err != nil {
		return nil, err
	}
	finished, err := grid.ApplyEdge(tile, edge, p.Spec.Platform)
	if err != nil {
		return nil, err
	}

	preview, err := imaging.Preview(finished, imaging.FitScale(finished.Bounds().Size(), a.MaxSize))
	if err != nil {
		return nil, err
	}
	return &GridTilePreviewResult{Tile: t, PreviewResult: preview}, nil
}

// tileCells converts the tiles of spec into labelled overlay cells.
func tileCells(spec grid.Spec) []imaging.Cell {
	tiles := grid.Tiles(spec)
	cells := make([]imaging.Cell, len(tiles))
	for i, t := range tiles {
		cells[i] = imaging.Cell{Bounds: t.Bounds, Label: imaging.IndexLabel(t.Index)}
	}
	return cells
}
