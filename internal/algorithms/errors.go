// Error taxonomy shared by every transform
package algorithms

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	// ErrEmptyImage is returned when an operation receives a zero-size buffer.
	ErrEmptyImage = errors.New("image is empty")
	// ErrUnsupportedFormat is returned for buffers that are not 8-bit with 1, 3 or 4 channels.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrInvalidEnum is returned for an unrecognized color band, direction, axis, filter or position.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrOutOfBounds is returned when a crop rectangle does not lie inside the image.
	ErrOutOfBounds = errors.New("region out of bounds")
	// ErrInvalidParameter is returned for numeric or text arguments outside their documented range.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// MaxDimension caps the side of any image produced by a transform.
const MaxDimension = 16384

// validate checks the buffer invariants every operation relies on.
func validate(img gocv.Mat) error {
	if img.Empty() || img.Cols() <= 0 || img.Rows() <= 0 {
		return ErrEmptyImage
	}

	switch img.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	default:
		return fmt.Errorf("%w: %d channels, type %v", ErrUnsupportedFormat, img.Channels(), img.Type())
	}
}

func checkRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrInvalidParameter, name, value, min, max)
	}
	return nil
}
