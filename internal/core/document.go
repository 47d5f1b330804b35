// Editing session: working image, original snapshot and per-mode baselines
package core

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"imagecraft/internal/algorithms"
)

// Mode is an editing control whose changes are re-derived from a baseline.
type Mode int

const (
	ModeNone Mode = iota
	ModeBrightness
	ModeContrast
	ModeBlur
	ModeResize
	ModeFilter
	ModeColor
)

var modeNames = map[Mode]string{
	ModeNone:       "None",
	ModeBrightness: "Brightness",
	ModeContrast:   "Contrast",
	ModeBlur:       "Blur",
	ModeResize:     "Resize",
	ModeFilter:     "Filter",
	ModeColor:      "Color",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeFor returns the session mode that owns adjustment a.
func ModeFor(a algorithms.Adjustment) (Mode, error) {
	switch a {
	case algorithms.BrightnessAdjustment:
		return ModeBrightness, nil
	case algorithms.ContrastAdjustment:
		return ModeContrast, nil
	case algorithms.BlurAdjustment:
		return ModeBlur, nil
	case algorithms.ResizeAdjustment:
		return ModeResize, nil
	default:
		return ModeNone, fmt.Errorf("%w: adjustment %d", algorithms.ErrInvalidEnum, int(a))
	}
}

// Document owns the working image of one editing session. It is not safe
// for concurrent use; fyne delivers every callback on one goroutine.
type Document struct {
	original  gocv.Mat
	working   gocv.Mat
	baselines map[Mode]gocv.Mat
	params    map[Mode]int
	active    Mode
	hasImage  bool
	metadata  ImageMetadata
	logger    *logrus.Logger
}

// NewDocument creates an empty document.
func NewDocument(logger *logrus.Logger) *Document {
	return &Document{
		original:  gocv.NewMat(),
		working:   gocv.NewMat(),
		baselines: make(map[Mode]gocv.Mat),
		params:    make(map[Mode]int),
		logger:    logger,
	}
}

// Load replaces the document with a copy of mat and snapshots it as the original.
func (d *Document) Load(mat gocv.Mat, path string) error {
	if err := ValidateImage(mat); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	d.endSession()
	d.original.Close()
	d.working.Close()

	d.original = mat.Clone()
	d.working = mat.Clone()
	d.hasImage = true
	d.metadata = newMetadata(mat, path)

	d.logger.WithFields(logrus.Fields{
		"path":     path,
		"width":    d.metadata.Width,
		"height":   d.metadata.Height,
		"channels": d.metadata.Channels,
	}).Info("Image loaded into document")

	return nil
}

// HasImage reports whether an image has been loaded.
func (d *Document) HasImage() bool {
	return d.hasImage
}

// Metadata describes the image as loaded.
func (d *Document) Metadata() ImageMetadata {
	return d.metadata
}

// Working returns a copy of the working image; the caller closes it.
func (d *Document) Working() gocv.Mat {
	if !d.hasImage {
		return gocv.NewMat()
	}
	return d.working.Clone()
}

// Original returns a copy of the load-time snapshot; the caller closes it.
func (d *Document) Original() gocv.Mat {
	if !d.hasImage {
		return gocv.NewMat()
	}
	return d.original.Clone()
}

// Size returns the working image dimensions.
func (d *Document) Size() (image.Point, error) {
	if err := d.requireImage(); err != nil {
		return image.Point{}, err
	}
	return image.Pt(d.working.Cols(), d.working.Rows()), nil
}

// ActiveMode returns the control whose baseline is currently held.
func (d *Document) ActiveMode() Mode {
	return d.active
}

// Parameter returns the last value applied in mode during the active session.
func (d *Document) Parameter(mode Mode) (int, bool) {
	v, ok := d.params[mode]
	return v, ok
}

// BeginSession snapshots the working image as the baseline for mode. Calling
// it for the already active mode keeps the existing baseline.
func (d *Document) BeginSession(mode Mode) error {
	if err := d.requireImage(); err != nil {
		return err
	}
	if mode == ModeNone {
		d.endSession()
		return nil
	}
	if mode == d.active {
		return nil
	}

	d.endSession()
	d.baselines[mode] = d.working.Clone()
	d.active = mode

	d.logger.WithField("mode", mode).Debug("Session baseline captured")
	return nil
}

// Adjust re-derives the working image from the baseline of a's session.
func (d *Document) Adjust(a algorithms.Adjustment, value int) error {
	mode, err := ModeFor(a)
	if err != nil {
		return err
	}

	err = d.derive(mode, func(baseline gocv.Mat) (gocv.Mat, error) {
		return algorithms.Apply(a, baseline, value)
	})
	if err != nil {
		return fmt.Errorf("%s %d: %w", a, value, err)
	}

	d.params[mode] = value
	return nil
}

// ApplyFilter replaces the working image with f applied to the filter baseline.
func (d *Document) ApplyFilter(f algorithms.Filter) error {
	err := d.derive(ModeFilter, func(baseline gocv.Mat) (gocv.Mat, error) {
		return algorithms.ApplyFilter(baseline, f)
	})
	if err != nil {
		return fmt.Errorf("filter %s: %w", f, err)
	}

	d.params[ModeFilter] = int(f)
	return nil
}

// IsolateColor replaces the working image with band isolated from the color baseline.
func (d *Document) IsolateColor(band algorithms.ColorBand) error {
	err := d.derive(ModeColor, func(baseline gocv.Mat) (gocv.Mat, error) {
		return algorithms.IsolateColor(baseline, band)
	})
	if err != nil {
		return fmt.Errorf("isolate %s: %w", band, err)
	}

	d.params[ModeColor] = int(band)
	return nil
}

// ClearColor restores the color baseline if a color session is active.
func (d *Document) ClearColor() error {
	if err := d.requireImage(); err != nil {
		return err
	}
	if d.active != ModeColor {
		return nil
	}

	d.replaceWorking(d.baselines[ModeColor].Clone())
	delete(d.params, ModeColor)
	return nil
}

// Rotate turns the working image a quarter turn.
func (d *Document) Rotate(dir algorithms.Direction) error {
	return d.commit(fmt.Sprintf("rotate %s", dir), func(img gocv.Mat) (gocv.Mat, error) {
		return algorithms.Rotate90(img, dir)
	})
}

// Flip mirrors the working image.
func (d *Document) Flip(axis algorithms.Axis) error {
	return d.commit(fmt.Sprintf("flip %s", axis), func(img gocv.Mat) (gocv.Mat, error) {
		return algorithms.Flip(img, axis)
	})
}

// OverlayText draws text onto the working image.
func (d *Document) OverlayText(text string, opts algorithms.TextOptions) error {
	return d.commit("overlay text", func(img gocv.Mat) (gocv.Mat, error) {
		return algorithms.OverlayText(img, text, opts)
	})
}

// Crop replaces the working image with the rect region given in source coordinates.
func (d *Document) Crop(rect image.Rectangle) error {
	return d.commit(fmt.Sprintf("crop %v", rect), func(img gocv.Mat) (gocv.Mat, error) {
		return algorithms.Crop(img, rect)
	})
}

// Reset restores the original snapshot and drops every session.
func (d *Document) Reset() error {
	if err := d.requireImage(); err != nil {
		return err
	}

	d.endSession()
	d.replaceWorking(d.original.Clone())
	d.logger.Info("Document reset to original image")
	return nil
}

// Close releases every image held by the document.
func (d *Document) Close() {
	d.endSession()
	d.original.Close()
	d.working.Close()
	d.original = gocv.NewMat()
	d.working = gocv.NewMat()
	d.hasImage = false
	d.metadata = ImageMetadata{}
}

// derive computes a new working image from the baseline of mode, starting a
// session for mode only once op has succeeded.
func (d *Document) derive(mode Mode, op func(gocv.Mat) (gocv.Mat, error)) error {
	if err := d.requireImage(); err != nil {
		return err
	}

	source := d.working
	if d.active == mode {
		source = d.baselines[mode]
	}

	output, err := op(source)
	if err != nil {
		output.Close()
		d.logger.WithFields(logrus.Fields{"mode": mode, "error": err}).Warn("Operation rejected")
		return err
	}

	if d.active != mode {
		d.endSession()
		d.baselines[mode] = d.working.Clone()
		d.active = mode
	}

	d.replaceWorking(output)
	d.logger.WithFields(logrus.Fields{
		"mode":   mode,
		"width":  output.Cols(),
		"height": output.Rows(),
	}).Debug("Working image re-derived from baseline")
	return nil
}

// commit applies a one-shot operation to the working image and ends any session.
func (d *Document) commit(name string, op func(gocv.Mat) (gocv.Mat, error)) error {
	if err := d.requireImage(); err != nil {
		return err
	}

	output, err := op(d.working)
	if err != nil {
		output.Close()
		d.logger.WithFields(logrus.Fields{"operation": name, "error": err}).Warn("Operation rejected")
		return fmt.Errorf("%s: %w", name, err)
	}

	d.endSession()
	d.replaceWorking(output)
	d.logger.WithFields(logrus.Fields{
		"operation": name,
		"width":     output.Cols(),
		"height":    output.Rows(),
	}).Debug("Operation applied")
	return nil
}

func (d *Document) replaceWorking(mat gocv.Mat) {
	d.working.Close()
	d.working = mat
}

func (d *Document) endSession() {
	for mode, baseline := range d.baselines {
		baseline.Close()
		delete(d.baselines, mode)
	}
	for mode := range d.params {
		delete(d.params, mode)
	}
	d.active = ModeNone
}

func (d *Document) requireImage() error {
	if !d.hasImage {
		return fmt.Errorf("no image loaded: %w", algorithms.ErrEmptyImage)
	}
	return nil
}
