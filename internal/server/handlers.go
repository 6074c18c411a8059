package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/inscribed-rect-mcp/internal/imaging"
	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
	"github.com/ironsheep/inscribed-rect-mcp/internal/report"
	"github.com/ironsheep/inscribed-rect-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "rect_find", "rect_overlay").
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
// A search that finds no rectangle is a successful call whose result carries
// the status.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Error("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Info("tool done", "tool", params.Name, "elapsed", time.Since(start))

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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "region_segment":
		return s.handleRegionSegment(args)
	case "region_sample":
		return s.handleRegionSample(args)

	// Rectangle Operations
	case "rect_find":
		return s.handleRectFind(ctx, args)
	case "rect_overlay":
		return s.handleRectOverlay(ctx, args)
	case "rect_crop":
		return s.handleRectCrop(ctx, args)

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

// decodeArgs unmarshals tool arguments. Missing arguments decode as an empty
// object so that required-field checks report a useful error.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Argument Types ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// segmentArgs overrides the configured segmentation. Pointer fields
// distinguish "not given" from zero.
type segmentArgs struct {
	Path       string   `json:"path"`
	Mode       string   `json:"mode"`
	Threshold  *int     `json:"threshold"`
	KeyColor   string   `json:"key_color"`
	Tolerance  *float64 `json:"tolerance"`
	BlurRadius *float64 `json:"blur_radius"`
	KeepAll    *bool    `json:"keep_all"`
}

func (a segmentArgs) options(base segment.Options) (segment.Options, error) {
	opts := base
	if a.Path == "" {
		return opts, fmt.Errorf("path is required")
	}
	if a.Mode != "" {
		mode, err := segment.ParseMode(a.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if a.Threshold != nil {
		if *a.Threshold < 0 || *a.Threshold > 255 {
			return opts, fmt.Errorf("threshold must be in [0, 255], got %d", *a.Threshold)
		}
		opts.Threshold = uint8(*a.Threshold)
	}
	if a.KeyColor != "" {
		opts.KeyColor = a.KeyColor
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.BlurRadius != nil {
		opts.BlurRadius = *a.BlurRadius
	}
	if a.KeepAll != nil {
		opts.KeepAll = *a.KeepAll
	}
	return opts, nil
}

type searchArgs struct {
	segmentArgs
	Step      int   `json:"step"`
	Workers   int   `json:"workers"`
	MaxChecks int64 `json:"max_checks"`
	TimeoutMs int64 `json:"timeout_ms"`
}

func (s *Server) searchOptions(a searchArgs) (region.Options, time.Duration, error) {
	opts := s.cfg.SearchOptions()
	if a.Step != 0 {
		if a.Step < 0 {
			return opts, 0, region.ErrInvalidStep
		}
		opts.Step = a.Step
	}
	if a.Workers > 0 {
		opts.Workers = a.Workers
	}
	if a.MaxChecks > 0 {
		opts.MaxChecks = a.MaxChecks
	}

	timeout := s.cfg.Timeout
	if a.TimeoutMs > 0 {
		timeout = time.Duration(a.TimeoutMs) * time.Millisecond
	}
	return opts, timeout, nil
}

// analyze runs the full pipeline for a search tool call.
func (s *Server) analyze(ctx context.Context, a searchArgs) (*Analysis, error) {
	segOpts, err := a.options(s.cfg.Segment)
	if err != nil {
		return nil, err
	}
	opts, timeout, err := s.searchOptions(a)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	an, err := Analyze(ctx, img, segOpts, opts, timeout)
	if err != nil {
		return nil, err
	}

	res := an.Search
	s.logger.Debug("search finished",
		"path", a.Path,
		"status", res.Status,
		"samples", res.SampleCount,
		"checks", res.Checks,
		"truncated", res.Truncated,
	)
	if res.Truncated {
		s.logger.Warn("search truncated", "path", a.Path, "checks", res.Checks)
	}
	return an, nil
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.Describe(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.Dimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type regionSegmentArgs struct {
	segmentArgs
	IncludeMask bool `json:"include_mask"`
}

// RegionSegmentResult is returned by region_segment.
type RegionSegmentResult struct {
	segment.Stats
	Mask *imaging.EncodedImage `json:"mask,omitempty"`
}

func (s *Server) handleRegionSegment(args json.RawMessage) (interface{}, error) {
	var a regionSegmentArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options(s.cfg.Segment)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	seg, err := segment.Segment(img, opts)
	if err != nil {
		return nil, err
	}

	out := &RegionSegmentResult{Stats: seg.Stats}
	if a.IncludeMask {
		enc, err := imaging.EncodePNG(imaging.RenderMask(seg.Mask))
		if err != nil {
			return nil, err
		}
		out.Mask = enc
	}
	return out, nil
}

type regionSampleArgs struct {
	segmentArgs
	Step          int  `json:"step"`
	IncludePoints bool `json:"include_points"`
}

// RegionSampleResult is returned by region_sample.
type RegionSampleResult struct {
	Step        int            `json:"step"`
	SampleCount int            `json:"sample_count"`
	Extent      *region.Extent `json:"sampled_extent,omitempty"`
	Points      []region.Point `json:"points,omitempty"`
}

func (s *Server) handleRegionSample(args json.RawMessage) (interface{}, error) {
	var a regionSampleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options(s.cfg.Segment)
	if err != nil {
		return nil, err
	}
	step := s.cfg.Step
	if a.Step != 0 {
		step = a.Step
	}
	if step <= 0 {
		return nil, region.ErrInvalidStep
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	seg, err := segment.Segment(img, opts)
	if err != nil {
		return nil, err
	}

	samples := region.Sample(seg.Mask, step)
	out := &RegionSampleResult{
		Step:        step,
		SampleCount: len(samples.Points),
	}
	if !samples.Empty() {
		out.Extent = &samples.Extent
	}
	if a.IncludePoints {
		out.Points = samples.Points
	}
	return out, nil
}

// === Rectangle Operation Handlers ===

// RectFindResult is returned by rect_find.
type RectFindResult struct {
	*report.Summary
	Segmentation segment.Stats `json:"segmentation"`
}

func (s *Server) handleRectFind(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a searchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	an, err := s.analyze(ctx, a)
	if err != nil {
		return nil, err
	}
	return &RectFindResult{
		Summary:      report.Summarize(an.Search),
		Segmentation: an.Segmentation.Stats,
	}, nil
}

type rectOverlayArgs struct {
	searchArgs
	LineColor   string `json:"line_color"`
	LineWidth   int    `json:"line_width"`
	ShowMask    bool   `json:"show_mask"`
	ShowSamples bool   `json:"show_samples"`
	OutputPath  string `json:"output_path"`
}

// RectImageResult is returned by rect_overlay and rect_crop. Image is nil
// when rect_crop finds no rectangle.
type RectImageResult struct {
	Result     *report.Summary       `json:"result"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
	OutputPath string                `json:"output_path,omitempty"`
}

func (s *Server) handleRectOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a rectOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	an, err := s.analyze(ctx, a.searchArgs)
	if err != nil {
		return nil, err
	}

	opts := imaging.DefaultOverlayOptions()
	opts.LineColor = s.cfg.Overlay.LineColor
	opts.LineWidth = s.cfg.Overlay.LineWidth
	if a.LineColor != "" {
		opts.LineColor = a.LineColor
	}
	if a.LineWidth > 0 {
		opts.LineWidth = a.LineWidth
	}
	if a.ShowMask {
		opts.Mask = an.Segmentation.Mask
	}
	if a.ShowSamples {
		opts.Points = an.Samples.Points
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := imaging.DrawOverlay(img, an.Search.Rect, opts)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := imaging.Save(out, a.OutputPath); err != nil {
			return nil, err
		}
	}

	enc, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	return &RectImageResult{
		Result:     report.Summarize(an.Search),
		Image:      enc,
		OutputPath: a.OutputPath,
	}, nil
}

type rectCropArgs struct {
	searchArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleRectCrop(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a rectCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	an, err := s.analyze(ctx, a.searchArgs)
	if err != nil {
		return nil, err
	}

	out := &RectImageResult{Result: report.Summarize(an.Search)}
	if !an.Search.Found() {
		return out, nil
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.CropRect(img, *an.Search.Rect, a.Scale)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNG(cropped)
	if err != nil {
		return nil, err
	}
	out.Image = enc
	return out, nil
}
