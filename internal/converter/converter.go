// Package converter converts HEIC/HEIF images to JPEG by shelling out to
// sips (macOS) or ImageMagick. Conversion is strictly best-effort: on any
// failure the caller keeps using the original file.
package converter

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/solerack/solerack/internal/logging"
)

const conversionTimeout = 10 * time.Second

var heicExtension = regexp.MustCompile(`(?i)\.(heic|heif)$`)

// Converter shells out to an external tool for HEIC to JPEG conversion.
type Converter struct {
	logger *slog.Logger
}

// New returns a Converter.
func New() *Converter {
	return &Converter{logger: logging.ForService("converter")}
}

// IsConvertible reports whether the filename is a HEIC/HEIF image.
func (c *Converter) IsConvertible(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".heic" || ext == ".heif"
}

// Convert converts the file at path to JPEG in the same directory and
// returns the new basename. Non-convertible inputs and failed conversions
// return the original basename; Convert never returns an error because the
// pipeline degrades to using the original file.
func (c *Converter) Convert(ctx context.Context, path string) string {
	original := filepath.Base(path)
	if !c.IsConvertible(original) {
		return original
	}

	jpgPath := filepath.Join(filepath.Dir(path), heicExtension.ReplaceAllString(original, "")+".jpg")

	if runtime.GOOS == "darwin" {
		if c.run(ctx, jpgPath, "sips", "-s", "format", "jpeg", path, "--out", jpgPath) {
			c.logger.Info("Converted HEIC to JPEG", "source", original, "output", filepath.Base(jpgPath))
			return filepath.Base(jpgPath)
		}
	}

	// ImageMagick, either the v7 or the legacy v6 entry point
	for _, tool := range []string{"magick", "convert"} {
		if c.run(ctx, jpgPath, tool, path, jpgPath) {
			c.logger.Info("Converted HEIC to JPEG", "source", original, "output", filepath.Base(jpgPath))
			return filepath.Base(jpgPath)
		}
	}

	c.logger.Warn("Could not convert HEIC file, using original",
		"file", original,
		"hint", "install ImageMagick or run on macOS for automatic conversion")
	return original
}

// ConvertAll sweeps a directory and converts every HEIC/HEIF file in it,
// deleting originals that converted successfully. It returns the number of
// files converted.
func (c *Converter) ConvertAll(ctx context.Context, dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Warn("Failed to read directory for bulk conversion", "dir", dir, "error", err)
		return 0
	}

	converted := 0
	for _, entry := range entries {
		if entry.IsDir() || !c.IsConvertible(entry.Name()) {
			continue
		}
		srcPath := filepath.Join(dir, entry.Name())
		if newName := c.Convert(ctx, srcPath); newName != entry.Name() {
			converted++
			if err := os.Remove(srcPath); err != nil {
				c.logger.Warn("Could not delete original HEIC", "file", entry.Name(), "error", err)
			}
		}
	}
	return converted
}

// run executes the conversion tool and verifies the output file appeared.
func (c *Converter) run(ctx context.Context, expectedOutput, tool string, args ...string) bool {
	if _, err := exec.LookPath(tool); err != nil {
		return false
	}

	runCtx, cancel := context.WithTimeout(ctx, conversionTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, tool, args...)
	if err := cmd.Run(); err != nil {
		return false
	}

	_, err := os.Stat(expectedOutput)
	return err == nil
}
