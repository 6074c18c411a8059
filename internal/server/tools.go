package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the image path argument shared by every tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// segmentProperties describes how the image is turned into a region. Omitted
// values fall back to the server configuration.
func segmentProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"dark", "light", "color"},
			"description": "Pixel classification: 'dark' keeps pixels at or below threshold (default), 'light' keeps pixels above it, 'color' keeps pixels near key_color",
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance cut 0-255 for dark and light modes. Default 50",
			"minimum":     0,
			"maximum":     255,
		},
		"key_color": map[string]interface{}{
			"type":        "string",
			"description": "Color matched in color mode, as hex (e.g., '#FF00FF')",
		},
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "Maximum CIE L*a*b* distance to key_color in color mode. Default 0.15",
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before classification. Default 0 (off)",
		},
		"keep_all": map[string]interface{}{
			"type":        "boolean",
			"description": "Keep every classified pixel instead of the largest shape with holes filled",
		},
	}
}

// searchProperties extends segmentProperties with the rectangle search knobs.
func searchProperties() map[string]interface{} {
	props := segmentProperties()
	props["step"] = map[string]interface{}{
		"type":        "integer",
		"description": "Sampling grid spacing in pixels. Smaller is more accurate and much slower. Default 5",
		"minimum":     1,
	}
	props["workers"] = map[string]interface{}{
		"type":        "integer",
		"description": "Anchor columns searched in parallel. Does not change the result",
	}
	props["max_checks"] = map[string]interface{}{
		"type":        "integer",
		"description": "Stop after this many containment tests and return the best rectangle so far. 0 = unlimited",
	}
	props["timeout_ms"] = map[string]interface{}{
		"type":        "integer",
		"description": "Stop after this many milliseconds and return the best rectangle so far. 0 = server default",
	}
	return props
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	overlayProps := searchProperties()
	overlayProps["line_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Rectangle outline color as hex. Default '#00FF00'",
	}
	overlayProps["line_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Rectangle outline width in pixels. Default 2",
	}
	overlayProps["show_mask"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Tint the segmented region",
	}
	overlayProps["show_samples"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Mark the sampled interior grid points",
	}
	overlayProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file to also write the overlay to; format follows the extension",
	}

	cropProps := searchProperties()
	cropProps["scale"] = map[string]interface{}{
		"type":        "number",
		"description": "Optional scale factor for the cropped area (e.g., 2.0 to double size). Default 1.0",
		"default":     1.0,
	}

	segProps := segmentProperties()
	segProps["include_mask"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return the mask as a base64 PNG (white = inside)",
	}

	sampleProps := segmentProperties()
	sampleProps["step"] = searchProperties()["step"]
	sampleProps["include_points"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return every sampled interior point (can be large)",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent calls on the same path.",
			InputSchema: objectSchema(map[string]interface{}{"path": pathProperty()}, "path"),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: objectSchema(map[string]interface{}{"path": pathProperty()}, "path"),
		},

		// Region Operations
		{
			Name:        "region_segment",
			Description: "Segment an image into a binary region (by default the largest dark shape with holes filled) and report pixel counts, bounding box and component count.",
			InputSchema: objectSchema(segProps, "path"),
		},
		{
			Name:        "region_sample",
			Description: "Sample the segmented region on a regular grid and return the interior point count and sampled extent the rectangle search will use.",
			InputSchema: objectSchema(sampleProps, "path"),
		},

		// Rectangle Operations
		{
			Name:        "rect_find",
			Description: "Find the largest axis-aligned rectangle that fits inside the segmented region. Returns corners, width, height and area, or status 'empty_region' / 'no_valid_rectangle' when none is found.",
			InputSchema: objectSchema(searchProperties(), "path"),
		},
		{
			Name:        "rect_overlay",
			Description: "Find the largest inscribed rectangle and return the image with it drawn as a base64-encoded PNG, optionally with the region and sample grid marked.",
			InputSchema: objectSchema(overlayProps, "path"),
		},
		{
			Name:        "rect_crop",
			Description: "Find the largest inscribed rectangle and return the enclosed area of the image as a base64-encoded PNG.",
			InputSchema: objectSchema(cropProps, "path"),
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
