// Rectangular crop selection tracked in display coordinates
package core

import (
	"errors"
	"fmt"
	"image"
	"math"

	"imagecraft/internal/algorithms"
)

// ErrNoSelection is returned when a crop is confirmed without a finished selection.
var ErrNoSelection = errors.New("no crop area selected")

// SelectionState is the phase of the crop selection.
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionDragging
	SelectionSelected
)

func (s SelectionState) String() string {
	switch s {
	case SelectionIdle:
		return "Idle"
	case SelectionDragging:
		return "Dragging"
	case SelectionSelected:
		return "Selected"
	default:
		return fmt.Sprintf("SelectionState(%d)", int(s))
	}
}

// CropTarget is the image a confirmed selection is applied to.
type CropTarget interface {
	Size() (image.Point, error)
	Crop(rect image.Rectangle) error
}

// Selection follows pointer events on the display surface and maps the
// finished rectangle onto the source image.
type Selection struct {
	state   SelectionState
	start   image.Point
	end     image.Point
	rect    image.Rectangle
	hasRect bool
	display image.Point
}

// NewSelection creates an idle selection for a display surface of the given size.
func NewSelection(displayWidth, displayHeight int) *Selection {
	return &Selection{display: image.Pt(displayWidth, displayHeight)}
}

// SetDisplaySize records the size of the displayed image.
func (s *Selection) SetDisplaySize(width, height int) {
	s.display = image.Pt(width, height)
}

// DisplaySize returns the size of the displayed image.
func (s *Selection) DisplaySize() image.Point {
	return s.display
}

// State returns the current phase.
func (s *Selection) State() SelectionState {
	return s.state
}

// Rect returns the normalized selection and whether one exists.
func (s *Selection) Rect() (image.Rectangle, bool) {
	return s.rect, s.hasRect
}

// PointerDown starts a drag when p lies on the display surface.
func (s *Selection) PointerDown(p image.Point) {
	if s.state == SelectionDragging {
		return
	}
	if !p.In(image.Rectangle{Max: s.display}) {
		return
	}

	s.state = SelectionDragging
	s.start = p
	s.end = p
	s.rect = image.Rectangle{Min: p, Max: p}
	s.hasRect = true
}

// PointerMove tracks the pointer while dragging.
func (s *Selection) PointerMove(p image.Point) {
	if s.state != SelectionDragging {
		return
	}
	s.end = p
	s.rect = normalize(s.start, s.end)
}

// PointerUp finalizes the drag.
func (s *Selection) PointerUp(p image.Point) {
	if s.state != SelectionDragging {
		return
	}
	s.end = p
	s.rect = normalize(s.start, s.end)
	s.state = SelectionSelected
}

// Reset drops the selection from any state.
func (s *Selection) Reset() {
	s.state = SelectionIdle
	s.start = image.Point{}
	s.end = image.Point{}
	s.rect = image.Rectangle{}
	s.hasRect = false
}

// ScaleFactors returns the source-per-display ratios on each axis.
func (s *Selection) ScaleFactors(sourceWidth, sourceHeight int) (float64, float64, error) {
	if s.display.X <= 0 || s.display.Y <= 0 {
		return 0, 0, fmt.Errorf("%w: display surface is %dx%d", algorithms.ErrOutOfBounds, s.display.X, s.display.Y)
	}
	xScale := float64(sourceWidth) / float64(s.display.X)
	yScale := float64(sourceHeight) / float64(s.display.Y)
	return xScale, yScale, nil
}

// SourceRect maps the selection onto a source image of the given size. The
// whole rectangle must fit; nothing is clamped.
func (s *Selection) SourceRect(sourceWidth, sourceHeight int) (image.Rectangle, error) {
	if !s.hasRect {
		return image.Rectangle{}, ErrNoSelection
	}
	xScale, yScale, err := s.ScaleFactors(sourceWidth, sourceHeight)
	if err != nil {
		return image.Rectangle{}, err
	}

	x := scaleCoord(s.rect.Min.X, xScale)
	y := scaleCoord(s.rect.Min.Y, yScale)
	width := scaleCoord(s.rect.Dx(), xScale)
	height := scaleCoord(s.rect.Dy(), yScale)

	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > sourceWidth || y+height > sourceHeight {
		return image.Rectangle{}, fmt.Errorf("%w: selection maps to (%d,%d %dx%d) on %dx%d source",
			algorithms.ErrOutOfBounds, x, y, width, height, sourceWidth, sourceHeight)
	}

	return image.Rect(x, y, x+width, y+height), nil
}

// ConfirmCrop crops target to the mapped selection and returns to Idle. On
// failure the selection and target are left as they were.
func (s *Selection) ConfirmCrop(target CropTarget) (image.Rectangle, error) {
	if s.state != SelectionSelected {
		return image.Rectangle{}, ErrNoSelection
	}

	size, err := target.Size()
	if err != nil {
		return image.Rectangle{}, err
	}

	rect, err := s.SourceRect(size.X, size.Y)
	if err != nil {
		return image.Rectangle{}, err
	}

	if err := target.Crop(rect); err != nil {
		return image.Rectangle{}, err
	}

	s.Reset()
	return rect, nil
}

func normalize(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon()
}

func scaleCoord(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}
