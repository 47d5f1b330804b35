package core

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagecraft/internal/algorithms"
)

type fakeTarget struct {
	size    image.Point
	cropped []image.Rectangle
	err     error
}

func (f *fakeTarget) Size() (image.Point, error) {
	return f.size, nil
}

func (f *fakeTarget) Crop(rect image.Rectangle) error {
	if f.err != nil {
		return f.err
	}
	f.cropped = append(f.cropped, rect)
	f.size = rect.Size()
	return nil
}

func drag(s *Selection, from, to image.Point) {
	s.PointerDown(from)
	s.PointerMove(to)
	s.PointerUp(to)
}

func TestSelectionDragAndReset(t *testing.T) {
	s := NewSelection(200, 200)
	assert.Equal(t, SelectionIdle, s.State())

	s.PointerDown(image.Pt(10, 10))
	assert.Equal(t, SelectionDragging, s.State())

	s.PointerMove(image.Pt(50, 60))
	rect, ok := s.Rect()
	require.True(t, ok)
	assert.Equal(t, image.Rect(10, 10, 50, 60), rect)

	s.PointerUp(image.Pt(50, 60))
	assert.Equal(t, SelectionSelected, s.State())
	rect, ok = s.Rect()
	require.True(t, ok)
	assert.Equal(t, image.Point{X: 10, Y: 10}, rect.Min)
	assert.Equal(t, image.Point{X: 50, Y: 60}, rect.Max)

	s.Reset()
	assert.Equal(t, SelectionIdle, s.State())
	_, ok = s.Rect()
	assert.False(t, ok)
}

func TestSelectionNormalizesDragDirection(t *testing.T) {
	s := NewSelection(100, 100)
	drag(s, image.Pt(80, 70), image.Pt(20, 30))

	rect, ok := s.Rect()
	require.True(t, ok)
	assert.Equal(t, image.Rect(20, 30, 80, 70), rect)
}

func TestSelectionIgnoresPointerOutsideSurface(t *testing.T) {
	s := NewSelection(100, 50)

	s.PointerDown(image.Pt(120, 10))
	assert.Equal(t, SelectionIdle, s.State())
	s.PointerDown(image.Pt(10, 50))
	assert.Equal(t, SelectionIdle, s.State())

	s.PointerMove(image.Pt(5, 5))
	s.PointerUp(image.Pt(5, 5))
	assert.Equal(t, SelectionIdle, s.State())
	_, ok := s.Rect()
	assert.False(t, ok)
}

func TestSelectionRestartsFromSelected(t *testing.T) {
	s := NewSelection(100, 100)
	drag(s, image.Pt(1, 1), image.Pt(10, 10))

	s.PointerDown(image.Pt(40, 40))
	assert.Equal(t, SelectionDragging, s.State())
	s.PointerUp(image.Pt(60, 50))

	rect, _ := s.Rect()
	assert.Equal(t, image.Rect(40, 40, 60, 50), rect)
}

func TestSelectionScaleFactors(t *testing.T) {
	s := NewSelection(200, 200)
	x, y, err := s.ScaleFactors(1000, 500)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 2.5, y, 1e-9)

	s.SetDisplaySize(0, 200)
	_, _, err = s.ScaleFactors(1000, 500)
	assert.ErrorIs(t, err, algorithms.ErrOutOfBounds)
}

func TestConfirmCropMapsToSource(t *testing.T) {
	s := NewSelection(200, 200)
	target := &fakeTarget{size: image.Pt(1000, 500)}

	drag(s, image.Pt(10, 10), image.Pt(50, 50))
	rect, err := s.ConfirmCrop(target)
	require.NoError(t, err)

	want := image.Rect(50, 25, 250, 125)
	assert.Equal(t, want, rect)
	assert.Equal(t, []image.Rectangle{want}, target.cropped)
	assert.Equal(t, SelectionIdle, s.State())
	_, ok := s.Rect()
	assert.False(t, ok)
}

func TestConfirmCropRoundsCoordinates(t *testing.T) {
	s := NewSelection(300, 300)
	target := &fakeTarget{size: image.Pt(1000, 1000)}

	drag(s, image.Pt(1, 2), image.Pt(4, 8))
	rect, err := s.ConfirmCrop(target)
	require.NoError(t, err)

	// x = round(3.33) = 3, y = round(6.67) = 7, w = round(10) = 10, h = round(20) = 20
	assert.Equal(t, image.Rect(3, 7, 13, 27), rect)
}

func TestConfirmCropRejectsOutOfBounds(t *testing.T) {
	s := NewSelection(200, 200)
	target := &fakeTarget{size: image.Pt(1000, 500)}

	// y spans 150..210 on the display, 375..525 on a 500 row source.
	drag(s, image.Pt(0, 150), image.Pt(200, 210))
	_, err := s.ConfirmCrop(target)
	assert.ErrorIs(t, err, algorithms.ErrOutOfBounds)

	assert.Equal(t, SelectionSelected, s.State())
	assert.Empty(t, target.cropped)
	rect, ok := s.Rect()
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 150, 200, 210), rect)
}

func TestConfirmCropRejectsNegativeOrigin(t *testing.T) {
	s := NewSelection(100, 100)
	target := &fakeTarget{size: image.Pt(100, 100)}

	drag(s, image.Pt(20, 20), image.Pt(-5, 40))
	_, err := s.ConfirmCrop(target)
	assert.ErrorIs(t, err, algorithms.ErrOutOfBounds)
	assert.Equal(t, SelectionSelected, s.State())
}

func TestConfirmCropRejectsZeroArea(t *testing.T) {
	s := NewSelection(100, 100)
	target := &fakeTarget{size: image.Pt(100, 100)}

	drag(s, image.Pt(20, 20), image.Pt(20, 20))
	_, err := s.ConfirmCrop(target)
	assert.ErrorIs(t, err, algorithms.ErrOutOfBounds)
	assert.Equal(t, SelectionSelected, s.State())
}

func TestConfirmCropWithoutSelection(t *testing.T) {
	s := NewSelection(100, 100)
	target := &fakeTarget{size: image.Pt(100, 100)}

	_, err := s.ConfirmCrop(target)
	assert.ErrorIs(t, err, ErrNoSelection)

	s.PointerDown(image.Pt(10, 10))
	_, err = s.ConfirmCrop(target)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, SelectionDragging, s.State())
}

func TestConfirmCropKeepsSelectionWhenTargetFails(t *testing.T) {
	s := NewSelection(100, 100)
	boom := errors.New("boom")
	target := &fakeTarget{size: image.Pt(100, 100), err: boom}

	drag(s, image.Pt(10, 10), image.Pt(30, 30))
	_, err := s.ConfirmCrop(target)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, SelectionSelected, s.State())
}
