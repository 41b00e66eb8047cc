package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/slime-finder/internal/detection"
	"github.com/ironsheep/slime-finder/internal/render"
	"github.com/ironsheep/slime-finder/internal/search"
	"github.com/ironsheep/slime-finder/internal/world"
)

// Tool argument limits. Scans allocate eight bytes per scanned chunk.
const (
	defaultScanHalfWidth = 512
	maxScanHalfWidth     = 2048
	defaultMapRadius     = 16
	maxMapRadius         = 128

	// scanCacheRegions is how many distinct scan regions keep their
	// coordinate values between calls.
	scanCacheRegions = 2
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "slime_is_marked", "slime_scan_seed").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool done", zap.String("tool", params.Name), zap.Duration("duration", time.Since(start)))

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
	// Single-cell queries
	case "slime_is_marked":
		return s.handleIsMarked(args)
	case "slime_cluster_at":
		return s.handleClusterAt(args)

	// Search
	case "slime_scan_seed":
		return s.handleScanSeed(ctx, args)
	case "slime_largest_rectangle":
		return s.handleLargestRectangle(args)

	// Rendering
	case "slime_render_map":
		return s.handleRenderMap(args)
	case "slime_render_png":
		return s.handleRenderPNG(args)

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

// decodeArgs unmarshals tool arguments, treating missing arguments as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func glyphs(ascii bool) render.Glyphs {
	if ascii {
		return render.ASCIIGlyphs
	}
	return render.DefaultGlyphs
}

// === Single-cell Handlers ===

type isMarkedArgs struct {
	Seed int64 `json:"seed"`
	X    int32 `json:"x"`
	Z    int32 `json:"z"`
}

type isMarkedResult struct {
	Seed            int64 `json:"seed"`
	X               int32 `json:"x"`
	Z               int32 `json:"z"`
	BlockX          int64 `json:"block_x"`
	BlockZ          int64 `json:"block_z"`
	CoordinateValue int64 `json:"coordinate_value"`
	Marked          bool  `json:"marked"`
}

func (s *Server) handleIsMarked(args json.RawMessage) (interface{}, error) {
	var a isMarkedArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	c := world.Coord{X: a.X, Z: a.Z}
	bx, bz := c.Block()
	v := world.CoordinateValue(a.X, a.Z)
	return &isMarkedResult{
		Seed:            a.Seed,
		X:               a.X,
		Z:               a.Z,
		BlockX:          bx,
		BlockZ:          bz,
		CoordinateValue: v,
		Marked:          world.IsMarked(v, a.Seed),
	}, nil
}

type clusterAtArgs struct {
	Seed  int64 `json:"seed"`
	X     int32 `json:"x"`
	Z     int32 `json:"z"`
	ASCII bool  `json:"ascii"`
}

type clusterResult struct {
	Seed   int64            `json:"seed"`
	Origin world.Coord      `json:"origin"`
	Marked bool             `json:"marked"`
	Size   int              `json:"size"`
	Bounds detection.Bounds `json:"bounds"`
	Rect   detection.Rect   `json:"rect"`
	Area   int              `json:"rect_area"`
	Chunks []world.Coord    `json:"chunks,omitempty"`
	Text   string           `json:"text,omitempty"`
}

func (s *Server) handleClusterAt(args json.RawMessage) (interface{}, error) {
	var a clusterAtArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	origin := world.Coord{X: a.X, Z: a.Z}
	cluster := detection.FloodFill(origin, world.SeedMarker{Seed: a.Seed})
	result := &clusterResult{Seed: a.Seed, Origin: origin}
	if cluster.Empty() {
		return result, nil
	}

	bitmap := cluster.Bitmap()
	rect := detection.LargestRectangle(bitmap)
	result.Marked = true
	result.Size = cluster.Len()
	result.Bounds = cluster.Bounds()
	result.Rect = rect
	result.Area = rect.Area()
	result.Chunks = cluster.Cells()
	result.Text = render.ClusterText(bitmap, glyphs(a.ASCII))
	return result, nil
}

// === Search Handlers ===

type scanSeedArgs struct {
	Seed           int64 `json:"seed"`
	HalfWidth      int32 `json:"half_width"`
	Step           int32 `json:"step"`
	MinSize        int   `json:"min_size"`
	MinArea        int   `json:"min_area"`
	RectanglesOnly *bool `json:"rectangles_only"`
	AllowOneWide   *bool `json:"allow_one_wide"`
}

type scanFinding struct {
	Origin world.Coord      `json:"origin"`
	Size   int              `json:"size"`
	Bounds detection.Bounds `json:"bounds"`
	Rect   detection.Rect   `json:"rect"`
	Area   int              `json:"area"`
	Chunks []world.Coord    `json:"chunks"`
}

type scanSeedResult struct {
	Seed       int64         `json:"seed"`
	Region     world.Region  `json:"region"`
	Cells      int           `json:"cells"`
	Clusters   int           `json:"clusters"`
	Findings   []scanFinding `json:"findings"`
	DurationMs int64         `json:"duration_ms"`
}

func (s *Server) handleScanSeed(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a scanSeedArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := search.DefaultConfig()
	cfg.Region.HalfWidth = defaultScanHalfWidth
	if a.HalfWidth != 0 {
		cfg.Region.HalfWidth = a.HalfWidth
	}
	if a.Step != 0 {
		cfg.Region.Step = a.Step
	}
	if a.MinSize != 0 {
		cfg.MinSize = a.MinSize
	}
	cfg.MinArea = a.MinArea
	if a.RectanglesOnly != nil {
		cfg.RectanglesOnly = *a.RectanglesOnly
	}
	if a.AllowOneWide != nil {
		cfg.AllowOneWide = *a.AllowOneWide
	}
	if cfg.Region.HalfWidth > maxScanHalfWidth {
		return nil, fmt.Errorf("half_width %d exceeds the tool limit of %d", cfg.Region.HalfWidth, maxScanHalfWidth)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	values, err := s.caches.Load(cfg.Region)
	if err != nil {
		return nil, err
	}
	scanner, err := search.NewScanner(cfg, values, nil, s.logger)
	if err != nil {
		return nil, err
	}
	res, err := scanner.ScanSeed(ctx, a.Seed)
	if err != nil {
		return nil, err
	}

	findings := make([]scanFinding, len(res.Findings))
	for i, f := range res.Findings {
		findings[i] = scanFinding{
			Origin: f.Origin,
			Size:   f.Size,
			Bounds: f.Bounds,
			Rect:   f.Rect,
			Area:   f.Area,
			Chunks: f.Chunks,
		}
	}
	return &scanSeedResult{
		Seed:       res.Seed,
		Region:     cfg.Region,
		Cells:      res.Cells,
		Clusters:   res.Clusters,
		Findings:   findings,
		DurationMs: res.Duration.Milliseconds(),
	}, nil
}

type largestRectangleArgs struct {
	Rows []string `json:"rows"`
}

type largestRectangleResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Area   int `json:"area"`
	Cells  int `json:"set_cells"`
}

func (s *Server) handleLargestRectangle(args json.RawMessage) (interface{}, error) {
	var a largestRectangleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	bitmap, err := detection.ParseBitmap(a.Rows)
	if err != nil {
		return nil, err
	}

	rect := detection.LargestRectangle(bitmap)
	return &largestRectangleResult{
		Width:  rect.Width,
		Height: rect.Height,
		Area:   rect.Area(),
		Cells:  bitmap.Count(),
	}, nil
}

// === Rendering Handlers ===

type renderMapArgs struct {
	Seed    int64 `json:"seed"`
	CenterX int32 `json:"center_x"`
	CenterZ int32 `json:"center_z"`
	Radius  int32 `json:"radius"`
	ASCII   bool  `json:"ascii"`
}

type renderMapResult struct {
	Seed   int64            `json:"seed"`
	Bounds detection.Bounds `json:"bounds"`
	Marked int              `json:"marked"`
	Text   string           `json:"text"`
}

func (s *Server) handleRenderMap(args json.RawMessage) (interface{}, error) {
	var a renderMapArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Radius == 0 {
		a.Radius = defaultMapRadius
	}
	if a.Radius < 0 || a.Radius > maxMapRadius {
		return nil, fmt.Errorf("radius must be between 1 and %d, got %d", maxMapRadius, a.Radius)
	}

	w := render.Window{CenterX: a.CenterX, CenterZ: a.CenterZ, Radius: a.Radius}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	m := world.SeedMarker{Seed: a.Seed}
	return &renderMapResult{
		Seed:   a.Seed,
		Bounds: w.Bounds(),
		Marked: render.MapBitmap(m, w).Count(),
		Text:   render.MapText(m, w, glyphs(a.ASCII)),
	}, nil
}

type renderPNGArgs struct {
	Seed          int64  `json:"seed"`
	X             int32  `json:"x"`
	Z             int32  `json:"z"`
	Scale         int    `json:"scale"`
	MarkedColor   string `json:"marked_color"`
	UnmarkedColor string `json:"unmarked_color"`
	OutputPath    string `json:"output_path"`
}

type renderPNGResult struct {
	*render.ImageResult
	Size int    `json:"size"`
	Path string `json:"path,omitempty"`
}

func (s *Server) handleRenderPNG(args json.RawMessage) (interface{}, error) {
	var a renderPNGArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	origin := world.Coord{X: a.X, Z: a.Z}
	cluster := detection.FloodFill(origin, world.SeedMarker{Seed: a.Seed})
	if cluster.Empty() {
		return nil, fmt.Errorf("chunk %v is not a slime chunk for seed %d", origin, a.Seed)
	}

	img := render.PNG(cluster.Bitmap(), render.PNGOptions{
		Scale:         a.Scale,
		MarkedColor:   a.MarkedColor,
		UnmarkedColor: a.UnmarkedColor,
	})
	encoded, err := render.EncodePNGBase64(img)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := render.SavePNG(a.OutputPath, img); err != nil {
			return nil, err
		}
	}
	return &renderPNGResult{ImageResult: encoded, Size: cluster.Len(), Path: a.OutputPath}, nil
}
