package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/kbinani/screenshot"
	"github.com/rs/zerolog"
)

// Region is the screen rectangle holding the scoreboard.
type Region struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Result is the outcome of one capture and OCR pass. Text is only
// meaningful when OK is set.
type Result struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func failed(err error) Result {
	return Result{OK: false, Error: err.Error()}
}

// Recognizer grabs a region of the screen and runs the tesseract binary on it.
type Recognizer struct {
	binary   string
	language string
	logger   zerolog.Logger
	grab     func(image.Rectangle) (*image.RGBA, error)
}

func NewRecognizer(binary, language string, logger zerolog.Logger) *Recognizer {
	return &Recognizer{
		binary:   binary,
		language: language,
		logger:   logger,
		grab:     screenshot.CaptureRect,
	}
}

// CaptureAndRecognize never returns an error; failures are reported in the Result.
func (r *Recognizer) CaptureAndRecognize(ctx context.Context, region Region) Result {
	if region.Width <= 0 || region.Height <= 0 {
		return failed(fmt.Errorf("capture region %dx%d is empty", region.Width, region.Height))
	}

	img, err := r.grab(region.Rect())
	if err != nil {
		r.logger.Error().Err(err).Interface("region", region).Msg("screen capture failed")
		return failed(fmt.Errorf("failed to capture screen: %w", err))
	}

	return r.Recognize(ctx, img)
}

// Recognize runs OCR over an already captured image.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) Result {
	f, err := os.CreateTemp("", "siege-capture-*.png")
	if err != nil {
		return failed(fmt.Errorf("failed to create capture file: %w", err))
	}
	path := f.Name()
	defer os.Remove(path)

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return failed(fmt.Errorf("failed to encode capture: %w", err))
	}
	if err := f.Close(); err != nil {
		return failed(fmt.Errorf("failed to write capture: %w", err))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, path, "stdout", "-l", r.language)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug().Str("binary", r.binary).Str("image", path).Msg("running ocr")

	if err := cmd.Run(); err != nil {
		r.logger.Error().Err(err).Str("stderr", strings.TrimSpace(stderr.String())).Msg("ocr failed")
		return failed(fmt.Errorf("ocr failed: %w: %s", err, strings.TrimSpace(stderr.String())))
	}

	text := stdout.String()
	r.logger.Debug().Int("chars", len(text)).Msg("ocr finished")

	return Result{OK: true, Text: text}
}
