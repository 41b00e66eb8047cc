package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/slime-finder/internal/detection"
	"github.com/ironsheep/slime-finder/internal/world"
)

// callTool runs a tools/call request and decodes the text payload into out.
func callTool(t *testing.T, s *Server, name string, args interface{}, out interface{}) {
	t.Helper()
	resp := callToolRaw(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("%s failed: %s (%v)", name, resp.Error.Message, resp.Error.Data)
	}

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), out); err != nil {
		t.Fatalf("decoding %s result: %v", name, err)
	}
}

func callToolRaw(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	}
	resp := s.handleRequest(context.Background(), req)
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callToolRaw(t, New("test", nil), "image_load", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Fatalf("expected tool failure, got %+v", resp)
	}
	if !strings.Contains(resp.Error.Data.(string), "unknown tool") {
		t.Errorf("error data: got %v", resp.Error.Data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New("test", nil)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`[1, 2]`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected invalid params, got %+v", resp)
	}
}

func TestHandleToolsCall_InvalidArguments(t *testing.T) {
	resp := callToolRaw(t, New("test", nil), "slime_is_marked", map[string]interface{}{"seed": "forty-two"})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool failure, got %+v", resp)
	}
}

func TestHandleIsMarked(t *testing.T) {
	s := New("test", nil)

	tests := []struct {
		seed   int64
		x, z   int32
		value  int64
		marked bool
	}{
		{0, 1, -3, world.CoordinateValue(1, -3), true},
		{0, 0, 0, 0, false},
		{0, 1, 0, 10934753, world.IsMarked(10934753, 0)},
		{-8301357846524185845, 7, -3, 324369941, world.IsMarked(324369941, -8301357846524185845)},
	}

	for _, tt := range tests {
		var got isMarkedResult
		callTool(t, s, "slime_is_marked", map[string]interface{}{"seed": tt.seed, "x": tt.x, "z": tt.z}, &got)

		if got.CoordinateValue != tt.value || got.Marked != tt.marked || got.Seed != tt.seed {
			t.Errorf("slime_is_marked(%d, %d, %d) = %+v, want value %d marked %v", tt.seed, tt.x, tt.z, got, tt.value, tt.marked)
		}
		if got.BlockX != int64(tt.x)*16 || got.BlockZ != int64(tt.z)*16 {
			t.Errorf("block coordinates: got (%d, %d)", got.BlockX, got.BlockZ)
		}
	}
}

func TestHandleClusterAt(t *testing.T) {
	s := New("test", nil)

	var got clusterResult
	callTool(t, s, "slime_cluster_at", map[string]interface{}{"seed": 0, "x": 2, "z": -3, "ascii": true}, &got)

	want := clusterResult{
		Seed:   0,
		Origin: world.Coord{X: 2, Z: -3},
		Marked: true,
		Size:   2,
		Bounds: detection.Bounds{MinX: 1, MinZ: -3, MaxX: 2, MaxZ: -3},
		Rect:   detection.Rect{Width: 2, Height: 1},
		Area:   2,
		Chunks: []world.Coord{{X: 1, Z: -3}, {X: 2, Z: -3}},
		Text:   "# # \n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slime_cluster_at mismatch (-want +got):\n%s", diff)
	}

	var empty clusterResult
	callTool(t, s, "slime_cluster_at", map[string]interface{}{"seed": 0, "x": 0, "z": 0}, &empty)
	if empty.Marked || empty.Size != 0 || len(empty.Chunks) != 0 {
		t.Errorf("unmarked origin: got %+v", empty)
	}
}

func TestHandleScanSeed(t *testing.T) {
	s := New("test", nil)
	args := map[string]interface{}{
		"seed":            12345,
		"half_width":      64,
		"step":            1,
		"min_size":        2,
		"rectangles_only": false,
	}

	var got scanSeedResult
	callTool(t, s, "slime_scan_seed", args, &got)

	if got.Seed != 12345 || got.Region != (world.Region{HalfWidth: 64, Step: 1}) {
		t.Errorf("seed/region: got %d %+v", got.Seed, got.Region)
	}
	if got.Cells != 128*128 {
		t.Errorf("cells: got %d, want %d", got.Cells, 128*128)
	}
	if len(got.Findings) == 0 {
		t.Fatal("expected findings")
	}
	for _, f := range got.Findings {
		if f.Size <= 2 || f.Area != f.Size || len(f.Chunks) != f.Size {
			t.Errorf("finding at %v: size %d area %d chunks %d", f.Origin, f.Size, f.Area, len(f.Chunks))
		}
		for _, c := range f.Chunks {
			if !world.Marked(c, 12345) {
				t.Errorf("chunk %v is not marked", c)
			}
		}
	}

	// The second call reuses the cached region.
	var again scanSeedResult
	callTool(t, s, "slime_scan_seed", args, &again)
	if diff := cmp.Diff(got.Findings, again.Findings); diff != "" {
		t.Errorf("repeated scan differs (-first +second):\n%s", diff)
	}
}

func TestHandleScanSeed_BoundsCachedRegions(t *testing.T) {
	s := New("test", nil)

	for hw := 8; hw < 8+3*scanCacheRegions; hw++ {
		var got scanSeedResult
		callTool(t, s, "slime_scan_seed", map[string]interface{}{"seed": 7, "half_width": hw, "step": 1}, &got)
		if n := s.caches.Len(); n > scanCacheRegions {
			t.Fatalf("after half_width %d: %d cached regions, want at most %d", hw, n, scanCacheRegions)
		}
	}
}

func TestHandleScanSeed_Limits(t *testing.T) {
	s := New("test", nil)

	for _, args := range []map[string]interface{}{
		{"seed": 1, "half_width": maxScanHalfWidth + 1},
		{"seed": 1, "step": -1},
		{"seed": 1, "min_area": -3},
	} {
		if resp := callToolRaw(t, s, "slime_scan_seed", args); resp.Error == nil {
			t.Errorf("args %v: expected error", args)
		}
	}
}

func TestHandleLargestRectangle(t *testing.T) {
	s := New("test", nil)

	var got largestRectangleResult
	callTool(t, s, "slime_largest_rectangle", map[string]interface{}{
		"rows": []string{
			"#....",
			"####.",
			"####.",
			".###.",
		},
	}, &got)

	want := largestRectangleResult{Width: 3, Height: 3, Area: 9, Cells: 12}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	resp := callToolRaw(t, s, "slime_largest_rectangle", map[string]interface{}{"rows": []string{"##", "#"}})
	if resp.Error == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestHandleRenderMap(t *testing.T) {
	s := New("test", nil)

	var got renderMapResult
	callTool(t, s, "slime_render_map", map[string]interface{}{
		"seed":     0,
		"center_x": 0,
		"center_z": -1,
		"radius":   2,
		"ascii":    true,
	}, &got)

	want := "x -2..2\n" +
		"-3 . . . # # \n" +
		"-2 . . . . . \n" +
		"-1 . . . . . \n" +
		" 0 # . . . . \n" +
		" 1 . . . . . \n"
	if diff := cmp.Diff(want, got.Text); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
	if got.Marked != 3 {
		t.Errorf("marked: got %d, want 3", got.Marked)
	}

	for _, args := range []map[string]interface{}{
		{"seed": 0, "radius": maxMapRadius + 1},
		{"seed": 0, "center_x": 2147483600, "radius": maxMapRadius},
		{"seed": 0, "center_z": -2147483600, "radius": 1},
		{"seed": 0, "center_x": world.MaxCoord + 1},
	} {
		if resp := callToolRaw(t, s, "slime_render_map", args); resp.Error == nil {
			t.Errorf("args %v: expected error", args)
		}
	}
}

func TestHandleRenderPNG(t *testing.T) {
	s := New("test", nil)
	path := filepath.Join(t.TempDir(), "cluster.png")

	var got struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
		Size        int    `json:"size"`
		Path        string `json:"path"`
	}
	callTool(t, s, "slime_render_png", map[string]interface{}{
		"seed":        0,
		"x":           1,
		"z":           -3,
		"scale":       4,
		"output_path": path,
	}, &got)

	if got.Width != 8 || got.Height != 4 || got.Size != 2 || got.MimeType != "image/png" {
		t.Errorf("result: got %dx%d size %d mime %s", got.Width, got.Height, got.Size, got.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(got.ImageBase64)
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("decoded size: got %dx%d", b.Dx(), b.Dy())
	}

	if got.Path != path {
		t.Errorf("path: got %q, want %q", got.Path, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("PNG not written: %v", err)
	}

	if resp := callToolRaw(t, s, "slime_render_png", map[string]interface{}{"seed": 0, "x": 0, "z": 0}); resp.Error == nil {
		t.Error("expected error for unmarked chunk")
	}
}
