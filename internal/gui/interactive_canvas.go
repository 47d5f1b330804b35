// Interactive canvas widget for crop selection
package gui

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"imagecraft/internal/core"
)

var (
	selectionFill   = color.NRGBA{R: 255, A: 50}
	selectionBorder = color.NRGBA{R: 255, A: 255}
)

// InteractiveCanvas shows the working image aspect-fit and forwards pointer
// events, relative to the displayed image, to the crop selection.
type InteractiveCanvas struct {
	widget.BaseWidget

	selection *core.Selection
	logger    *logrus.Logger

	currentImage  *canvas.Image
	overlayRaster *canvas.Raster
	sourceSize    image.Point
	lastPointer   image.Point

	onSelectionChanged func(bool)
}

// NewInteractiveCanvas creates a new interactive canvas
func NewInteractiveCanvas(selection *core.Selection, logger *logrus.Logger) *InteractiveCanvas {
	ic := &InteractiveCanvas{
		selection: selection,
		logger:    logger,
	}

	ic.ExtendBaseWidget(ic)
	return ic
}

// CreateRenderer creates the renderer for the interactive canvas
func (ic *InteractiveCanvas) CreateRenderer() fyne.WidgetRenderer {
	ic.currentImage = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	ic.currentImage.FillMode = canvas.ImageFillContain

	ic.overlayRaster = canvas.NewRaster(ic.createOverlay)

	return &interactiveCanvasRenderer{
		canvas:  ic,
		image:   ic.currentImage,
		overlay: ic.overlayRaster,
	}
}

// UpdateImage updates the displayed image
func (ic *InteractiveCanvas) UpdateImage(img image.Image) {
	if img == nil {
		return
	}
	ic.sourceSize = img.Bounds().Size()
	ic.syncDisplaySize()

	if ic.currentImage != nil {
		ic.currentImage.Image = img
		ic.currentImage.Refresh()
	}
	ic.refreshOverlay()
}

// Mouse event handlers
func (ic *InteractiveCanvas) MouseDown(event *desktop.MouseEvent) {
	if ic.sourceSize.X == 0 {
		return
	}
	ic.syncDisplaySize()

	p := ic.toDisplay(event.Position)
	ic.lastPointer = p
	ic.selection.PointerDown(p)

	ic.logger.WithFields(logrus.Fields{
		"point": p,
		"state": ic.selection.State(),
	}).Debug("Pointer down on image")
	ic.refreshOverlay()
}

func (ic *InteractiveCanvas) MouseUp(event *desktop.MouseEvent) {
	ic.finish(ic.toDisplay(event.Position))
}

func (ic *InteractiveCanvas) Dragged(event *fyne.DragEvent) {
	if ic.selection.State() != core.SelectionDragging {
		return
	}

	p := ic.toDisplay(event.Position)
	ic.lastPointer = p
	ic.selection.PointerMove(p)
	ic.refreshOverlay()
}

func (ic *InteractiveCanvas) DragEnd() {
	ic.finish(ic.lastPointer)
}

func (ic *InteractiveCanvas) finish(p image.Point) {
	if ic.selection.State() != core.SelectionDragging {
		return
	}

	ic.selection.PointerUp(p)
	rect, ok := ic.selection.Rect()
	ic.logger.WithField("rect", rect).Debug("Selection finished")
	ic.refreshOverlay()
	ic.notifySelectionChanged(ok && !rect.Empty())
}

// ClearSelection drops the current selection and repaints.
func (ic *InteractiveCanvas) ClearSelection() {
	ic.selection.Reset()
	ic.refreshOverlay()
	ic.notifySelectionChanged(false)
}

// Resize keeps the selection's display size in step with the widget.
func (ic *InteractiveCanvas) Resize(size fyne.Size) {
	ic.BaseWidget.Resize(size)
	ic.syncDisplaySize()
}

// contentRect returns the displayed image rectangle in widget coordinates,
// following canvas.ImageFillContain.
func (ic *InteractiveCanvas) contentRect() (fyne.Position, fyne.Size) {
	size := ic.Size()
	if ic.sourceSize.X == 0 || ic.sourceSize.Y == 0 || size.Width == 0 || size.Height == 0 {
		return fyne.NewPos(0, 0), fyne.NewSize(0, 0)
	}

	scale := math.Min(
		float64(size.Width)/float64(ic.sourceSize.X),
		float64(size.Height)/float64(ic.sourceSize.Y),
	)
	w := float32(float64(ic.sourceSize.X) * scale)
	h := float32(float64(ic.sourceSize.Y) * scale)

	return fyne.NewPos((size.Width-w)/2, (size.Height-h)/2), fyne.NewSize(w, h)
}

func (ic *InteractiveCanvas) syncDisplaySize() {
	_, size := ic.contentRect()
	ic.selection.SetDisplaySize(int(math.Round(float64(size.Width))), int(math.Round(float64(size.Height))))
}

// toDisplay converts a widget position to displayed-image coordinates.
func (ic *InteractiveCanvas) toDisplay(pos fyne.Position) image.Point {
	offset, _ := ic.contentRect()
	return image.Pt(
		int(math.Round(float64(pos.X-offset.X))),
		int(math.Round(float64(pos.Y-offset.Y))),
	)
}

// createOverlay paints the selection rectangle at raster resolution.
func (ic *InteractiveCanvas) createOverlay(w, h int) image.Image {
	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))

	rect, ok := ic.selection.Rect()
	size := ic.Size()
	if !ok || rect.Empty() || size.Width == 0 {
		return overlay
	}

	offset, _ := ic.contentRect()
	pixelScale := float64(w) / float64(size.Width)
	toPixel := func(p image.Point) image.Point {
		return image.Pt(
			int(math.Round((float64(p.X)+float64(offset.X))*pixelScale)),
			int(math.Round((float64(p.Y)+float64(offset.Y))*pixelScale)),
		)
	}

	screen := image.Rectangle{Min: toPixel(rect.Min), Max: toPixel(rect.Max)}.Intersect(overlay.Bounds())
	if screen.Empty() {
		return overlay
	}

	draw.Draw(overlay, screen, image.NewUniform(selectionFill), image.Point{}, draw.Src)

	border := image.NewUniform(selectionBorder)
	edges := []image.Rectangle{
		image.Rect(screen.Min.X, screen.Min.Y, screen.Max.X, screen.Min.Y+2),
		image.Rect(screen.Min.X, screen.Max.Y-2, screen.Max.X, screen.Max.Y),
		image.Rect(screen.Min.X, screen.Min.Y, screen.Min.X+2, screen.Max.Y),
		image.Rect(screen.Max.X-2, screen.Min.Y, screen.Max.X, screen.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(overlay, e.Intersect(screen), border, image.Point{}, draw.Src)
	}

	return overlay
}

func (ic *InteractiveCanvas) refreshOverlay() {
	if ic.overlayRaster != nil {
		ic.overlayRaster.Refresh()
	}
}

// SetSelectionChangedCallback sets the callback for selection changes
func (ic *InteractiveCanvas) SetSelectionChangedCallback(callback func(bool)) {
	ic.onSelectionChanged = callback
}

func (ic *InteractiveCanvas) notifySelectionChanged(hasSelection bool) {
	if ic.onSelectionChanged != nil {
		ic.onSelectionChanged(hasSelection)
	}
}

// interactiveCanvasRenderer is the renderer for the interactive canvas
type interactiveCanvasRenderer struct {
	canvas  *InteractiveCanvas
	image   *canvas.Image
	overlay *canvas.Raster
}

func (r *interactiveCanvasRenderer) Layout(size fyne.Size) {
	r.image.Resize(size)
	r.overlay.Resize(size)
}

func (r *interactiveCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *interactiveCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image, r.overlay}
}

func (r *interactiveCanvasRenderer) Refresh() {
	r.image.Refresh()
	r.overlay.Refresh()
}

func (r *interactiveCanvasRenderer) Destroy() {
}
