// Geometric operations: resize, rotate, flip and crop
package algorithms

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Direction selects a quarter-turn rotation.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Axis selects the mirror axis for Flip.
type Axis int

const (
	// Horizontal mirrors left and right.
	Horizontal Axis = iota
	// Vertical mirrors top and bottom.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Resize scales both axes uniformly by percent/100.
func Resize(img gocv.Mat, percent int) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}
	if percent <= 0 {
		return gocv.NewMat(), fmt.Errorf("%w: resize percent %d must be positive", ErrInvalidParameter, percent)
	}

	scale := float64(percent) / 100.0
	width := int(math.Round(float64(img.Cols()) * scale))
	height := int(math.Round(float64(img.Rows()) * scale))
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return gocv.NewMat(), fmt.Errorf("%w: resize to %dx%d", ErrInvalidParameter, width, height)
	}

	output := gocv.NewMat()
	gocv.Resize(img, &output, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	return output, nil
}

// Rotate90 turns img a quarter turn without interpolation.
func Rotate90(img gocv.Mat, dir Direction) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}

	var code gocv.RotateFlag
	switch dir {
	case Clockwise:
		code = gocv.Rotate90Clockwise
	case CounterClockwise:
		code = gocv.Rotate90CounterClockwise
	default:
		return gocv.NewMat(), fmt.Errorf("%w: rotation %v", ErrInvalidEnum, dir)
	}

	output := gocv.NewMat()
	gocv.Rotate(img, &output, code)
	return output, nil
}

// Flip mirrors img along axis.
func Flip(img gocv.Mat, axis Axis) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}

	// OpenCV flip codes: 1 around the y axis, 0 around the x axis.
	var code int
	switch axis {
	case Horizontal:
		code = 1
	case Vertical:
		code = 0
	default:
		return gocv.NewMat(), fmt.Errorf("%w: flip %v", ErrInvalidEnum, axis)
	}

	output := gocv.NewMat()
	gocv.Flip(img, &output, code)
	return output, nil
}

// Crop copies the rect region of img. The result owns its pixels.
func Crop(img gocv.Mat, rect image.Rectangle) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}

	bounds := image.Rect(0, 0, img.Cols(), img.Rows())
	if rect.Empty() || !rect.In(bounds) {
		return gocv.NewMat(), fmt.Errorf("%w: crop %v outside %v", ErrOutOfBounds, rect, bounds)
	}

	region := img.Region(rect)
	defer region.Close()
	return region.Clone(), nil
}
