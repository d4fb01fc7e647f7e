package server

import "github.com/ironsheep/image-grid/internal/grid"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image file",
	}
}

// gridProperties returns the schema shared by every grid tool: the source
// path, the grid shape and the normalization options.
func gridProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"rows": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"description": "Number of grid rows",
		},
		"cols": map[string]interface{}{
			"type":        "integer",
			"minimum":     1,
			"description": "Number of grid columns",
		},
		"resize_mode": map[string]interface{}{
			"type":        "string",
			"enum":        enumOf(grid.ResizeModes),
			"description": "How to fit a source smaller than the grid: stretch it (resize) or center it on a black canvas (pad). Default resize",
			"default":     string(grid.ResizeStretch),
		},
		"anchor": map[string]interface{}{
			"type":        "string",
			"enum":        enumOf(grid.Anchors),
			"description": "Crop region for a source larger than the grid: the center, or the most interesting region (smart). Default center",
			"default":     string(grid.AnchorCenter),
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func enumOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for the grid tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Grid Operations
		{
			Name:        "grid_plan",
			Description: "Compute how an image would be split without writing anything: the normalization (crop, resize or pad), the target size and every tile with its emission index. Index 1 is the bottom-right tile.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"edge_mode": map[string]interface{}{
						"type":        "string",
						"enum":        enumOf(grid.EdgeModes),
						"description": "Edge treatment used to report the finished tile size. Default blur",
						"default":     string(grid.EdgeBlur),
					},
				}),
				"required": []string{"path", "rows", "cols"},
			},
		},
		{
			Name:        "grid_split",
			Description: "Split an image into a rows x cols grid of tiles and write them to output_dir as tile_1, tile_2, ... in upload order (bottom-right first).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory the tiles are written to. Created if missing",
					},
					"edge_mode": map[string]interface{}{
						"type":        "string",
						"enum":        enumOf(grid.EdgeModes),
						"description": "Safe-zone treatment of each tile's left and right edges: blurred bleed (blur) or white border (pad). Default blur",
						"default":     string(grid.EdgeBlur),
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"jpeg", "png"},
						"description": "Tile file format. Default jpeg",
						"default":     "jpeg",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"minimum":     1,
						"maximum":     100,
						"description": "JPEG quality. Default 95",
						"default":     95,
					},
					"audit_seams": map[string]interface{}{
						"type":        "boolean",
						"description": "Report text-like content that a seam cuts through. Default false",
						"default":     false,
					},
				}),
				"required": []string{"path", "rows", "cols", "output_dir"},
			},
		},
		{
			Name:        "grid_audit_seams",
			Description: "Find text-like content that the tile seams of a grid would cut through. Use before splitting to pick a grid or anchor that keeps captions whole.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum detection confidence (0-1). Default 0.3",
						"default":     0.3,
					},
				}),
				"required": []string{"path", "rows", "cols"},
			},
		},
		{
			Name:        "grid_preview",
			Description: "Render the normalized image with the tile seams drawn and each tile labelled with its emission index. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Seam line color in hex. Default #FF0000",
						"default":     "#FF0000",
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the preview in pixels. Default 1024",
						"default":     1024,
					},
				}),
				"required": []string{"path", "rows", "cols"},
			},
		},
		{
			Name:        "grid_tile_preview",
			Description: "Render one finished tile, edge treatment included, exactly as grid_split would write it. Index 1 is the bottom-right tile. Returns a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(gridProperties(), map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Emission index of the tile (1 = bottom-right)",
					},
					"edge_mode": map[string]interface{}{
						"type":        "string",
						"enum":        enumOf(grid.EdgeModes),
						"description": "Safe-zone treatment: blur or pad. Default blur",
						"default":     string(grid.EdgeBlur),
					},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the preview in pixels. Default 1024",
						"default":     1024,
					},
				}),
				"required": []string{"path", "rows", "cols", "index"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
