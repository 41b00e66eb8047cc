package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func seedProp() map[string]interface{} {
	return integerProp("World seed (signed 64-bit integer)")
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Single-cell queries
		{
			Name:        "slime_is_marked",
			Description: "Compute the coordinate value of a chunk and whether it is a slime chunk for the given seed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"seed": seedProp(),
					"x":    integerProp("Chunk X coordinate"),
					"z":    integerProp("Chunk Z coordinate"),
				},
				"required": []string{"seed", "x", "z"},
			},
		},
		{
			Name:        "slime_cluster_at",
			Description: "Flood-fill the 4-connected cluster of slime chunks containing (x, z) and score it by its largest solid rectangle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"seed": seedProp(),
					"x":    integerProp("Chunk X coordinate"),
					"z":    integerProp("Chunk Z coordinate"),
					"ascii": map[string]interface{}{
						"type":        "boolean",
						"description": "Render the cluster with '#' and '.' instead of box glyphs",
						"default":     false,
					},
				},
				"required": []string{"seed", "x", "z"},
			},
		},

		// Search
		{
			Name:        "slime_scan_seed",
			Description: "Scan a square window around the origin for one seed and return every accepted cluster. Nothing is reported to collectors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"seed": seedProp(),
					"half_width": map[string]interface{}{
						"type":        "integer",
						"description": "Scan x and z in [-half_width, half_width)",
						"default":     defaultScanHalfWidth,
						"maximum":     maxScanHalfWidth,
					},
					"step": map[string]interface{}{
						"type":        "integer",
						"description": "Spacing between scanned chunks",
						"default":     2,
					},
					"min_size": map[string]interface{}{
						"type":        "integer",
						"description": "Clusters must exceed this (rectangle area or cluster size)",
						"default":     14,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Optional minimum largest-rectangle area. 0 disables",
						"default":     0,
					},
					"rectangles_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Judge clusters by largest rectangle area instead of size",
						"default":     true,
					},
					"allow_one_wide": map[string]interface{}{
						"type":        "boolean",
						"description": "Accept clusters whose largest rectangle is one chunk wide",
						"default":     true,
					},
				},
				"required": []string{"seed"},
			},
		},
		{
			Name:        "slime_largest_rectangle",
			Description: "Find the largest solid rectangle in a literal bitmap. Rows use '#' for set and '.' for clear cells.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rows": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Bitmap rows of equal length, top to bottom",
					},
				},
				"required": []string{"rows"},
			},
		},

		// Rendering
		{
			Name:        "slime_render_map",
			Description: "Render the slime chunks around a centre chunk as text, one line per z.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"seed":     seedProp(),
					"center_x": integerProp("Centre chunk X coordinate"),
					"center_z": integerProp("Centre chunk Z coordinate"),
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Chunks on each side of the centre",
						"default":     defaultMapRadius,
						"maximum":     maxMapRadius,
					},
					"ascii": map[string]interface{}{
						"type":        "boolean",
						"description": "Use '#' and '.' instead of box glyphs",
						"default":     false,
					},
				},
				"required": []string{"seed"},
			},
		},
		{
			Name:        "slime_render_png",
			Description: "Render the cluster containing (x, z) as a base64-encoded PNG, optionally also saving it to a file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"seed": seedProp(),
					"x":    integerProp("Chunk X coordinate"),
					"z":    integerProp("Chunk Z coordinate"),
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per chunk",
						"default":     8,
					},
					"marked_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex colour of slime chunks",
						"default":     "#3CB043",
					},
					"unmarked_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex colour of other chunks",
						"default":     "#1E1E1E",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to also write the PNG to",
					},
				},
				"required": []string{"seed", "x", "z"},
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
