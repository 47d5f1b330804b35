// Image metadata and load-time validation
package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"imagecraft/internal/algorithms"
)

// ImageMetadata contains image information
type ImageMetadata struct {
	Path     string
	Width    int
	Height   int
	Channels int
	Type     gocv.MatType
	Format   string
}

func newMetadata(mat gocv.Mat, path string) ImageMetadata {
	return ImageMetadata{
		Path:     path,
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Type:     mat.Type(),
		Format:   getFormatFromPath(path),
	}
}

// getFormatFromPath extracts image format from file path
func getFormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// ValidateImage checks that mat can become a working image.
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() || mat.Cols() <= 0 || mat.Rows() <= 0 {
		return algorithms.ErrEmptyImage
	}

	channels := mat.Channels()
	if channels != 1 && channels != 3 && channels != 4 {
		return fmt.Errorf("%w: %d channels", algorithms.ErrUnsupportedFormat, channels)
	}

	if mat.Cols() > algorithms.MaxDimension || mat.Rows() > algorithms.MaxDimension {
		return fmt.Errorf("%w: image too large: %dx%d (max: %d)",
			algorithms.ErrInvalidParameter, mat.Cols(), mat.Rows(), algorithms.MaxDimension)
	}

	return nil
}
