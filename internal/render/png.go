package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/slime-finder/internal/detection"
)

// Default PNG colours.
const (
	DefaultMarkedColor   = "#3CB043"
	DefaultUnmarkedColor = "#1E1E1E"
	DefaultScale         = 8
	maxScale             = 64
)

// PNGOptions controls PNG rendering.
type PNGOptions struct {
	// Scale is the edge length of one cell in pixels. Zero selects DefaultScale.
	Scale int

	// MarkedColor and UnmarkedColor are "#RRGGBB" strings. Empty or invalid
	// values fall back to the defaults.
	MarkedColor   string
	UnmarkedColor string
}

// ImageResult is a PNG encoded for transport.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// PNG draws b as an image, one Scale×Scale square per cell.
func PNG(b *detection.Bitmap, opts PNGOptions) image.Image {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	scale = min(scale, maxScale)

	marked := parseColor(opts.MarkedColor, DefaultMarkedColor)
	unmarked := parseColor(opts.UnmarkedColor, DefaultUnmarkedColor)

	if b.Width == 0 || b.Height == 0 {
		return imaging.New(1, 1, unmarked)
	}

	img := imaging.New(b.Width, b.Height, unmarked)
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			if b.At(col, row) {
				img.Set(col, row, marked)
			}
		}
	}
	if scale == 1 {
		return img
	}
	return imaging.Resize(img, b.Width*scale, b.Height*scale, imaging.NearestNeighbor)
}

// EncodePNGBase64 encodes img as a base64 PNG payload.
func EncodePNGBase64(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// parseColor parses a "#RRGGBB" string, falling back to def.
func parseColor(hex, def string) color.Color {
	if c, err := colorful.Hex(hex); err == nil {
		return c
	}
	c, _ := colorful.Hex(def)
	return c
}
