// Image loading and saving by path and by stream
package io

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	stdio "io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".webp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// SupportedExtensions lists the file extensions accepted for import and export.
func SupportedExtensions() []string {
	exts := make([]string, len(supportedFormats))
	copy(exts, supportedFormats)
	return exts
}

// IsSupported reports whether name carries a supported image extension.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("path", path).Debug("Loading image")

	if !IsSupported(path) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", path)
	}

	il.logImage("Image loaded successfully", path, mat)
	return mat, nil
}

// Decode reads an encoded image from r. OpenCV decodes first; formats it was
// built without fall back to the Go decoders.
func (il *ImageLoader) Decode(r stdio.Reader, name string) (gocv.Mat, error) {
	if !IsSupported(name) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", name)
	}

	data, err := stdio.ReadAll(r)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("read %s: empty file", name)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		il.logImage("Image decoded", name, mat)
		return mat, nil
	}
	mat.Close()

	il.logger.WithField("name", name).Debug("OpenCV could not decode image, trying Go decoders")

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decode %s: %w", name, err)
	}

	mat, err = gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert %s (%s): %w", name, format, err)
	}

	il.logImage("Image decoded", name, mat)
	return mat, nil
}

func (il *ImageLoader) SaveImage(mat gocv.Mat, path string) error {
	il.logger.WithField("path", path).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !IsSupported(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logImage("Image saved successfully", path, mat)
	return nil
}

// Encode writes mat to w in the format implied by name's extension.
func (il *ImageLoader) Encode(w stdio.Writer, mat gocv.Mat, name string) error {
	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}
	if !IsSupported(name) {
		return fmt.Errorf("unsupported image format: %s", name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	buf, err := gocv.IMEncode(gocv.FileExt(ext), mat)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	defer buf.Close()

	if _, err := w.Write(buf.GetBytes()); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	il.logImage("Image encoded", name, mat)
	return nil
}

func (il *ImageLoader) logImage(msg, name string, mat gocv.Mat) {
	il.logger.WithFields(logrus.Fields{
		"name":     name,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info(msg)
}
