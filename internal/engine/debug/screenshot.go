// Package debug provides debug visualization utilities for software
// framebuffers.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"honnef.co/go/safeish"

	"github.com/Faultbox/tilerast/internal/engine/framebuffer"
)

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// Capture writes the readable half of fb to a new timestamped file and
// returns its name.
func (sc *ScreenshotCapture) Capture(fb *framebuffer.Framebuffer) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	if err := WritePNG(filename, fb); err != nil {
		return "", err
	}
	return filename, nil
}

// WritePNG writes the readable half of fb to path.
func WritePNG(path string, fb *framebuffer.Framebuffer) error {
	var img *image.RGBA
	var err error
	fb.Present(func(pixels []uint32, width, height int) {
		img, err = ToImage(pixels, width, height)
	})
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

// ToImage converts row-major ARGB pixels to an opaque RGBA image. The
// alpha byte of the source is ignored.
func ToImage(pixels []uint32, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// Little-endian ARGB words are B, G, R, A in memory.
	src := safeish.SliceCast[[]byte](pixels)
	for i := 0; i < len(src); i += 4 {
		img.Pix[i+0] = src[i+2]
		img.Pix[i+1] = src[i+1]
		img.Pix[i+2] = src[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}
