// Main application window wiring the document to the controls
package gui

import (
	"errors"
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"imagecraft/internal/algorithms"
	"imagecraft/internal/config"
	"imagecraft/internal/core"
	"imagecraft/internal/io"
	"imagecraft/internal/metrics"
)

// Application represents the main editor window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	cfg    config.Config

	// Core components
	document  *core.Document
	selection *core.Selection
	loader    *io.ImageLoader
	evaluator *metrics.Evaluator

	// GUI components
	canvas      *InteractiveCanvas
	toolbar     *Toolbar
	menuHandler *MenuHandler
	status      *widget.Label
}

func NewApplication(app fyne.App, logger *logrus.Logger, cfg config.Config) *Application {
	window := app.NewWindow("ImageCraft")
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.document = core.NewDocument(a.logger)
	a.selection = core.NewSelection(0, 0)
	a.loader = io.NewImageLoader(a.logger)
	a.evaluator = metrics.NewEvaluator()
}

func (a *Application) initializeGUI() {
	a.canvas = NewInteractiveCanvas(a.selection, a.logger)
	a.menuHandler = NewMenuHandler(a.window, a.document, a.loader, a.logger, a.cfg.Export.DefaultName)
	a.status = widget.NewLabel("No image loaded")
	a.toolbar = NewToolbar(ToolbarActions{
		Import:      a.menuHandler.OpenImage,
		Export:      a.menuHandler.SaveImage,
		Reset:       a.menuHandler.ConfirmReset,
		Crop:        a.confirmCrop,
		AddText:     a.addText,
		BeginAdjust: a.beginAdjust,
		Adjust:      a.adjust,
		Rotate:      a.rotate,
		Flip:        a.flip,
		Filter:      a.applyFilter,
		Color:       a.isolateColor,
	})
}

func (a *Application) setupLayout() {
	split := container.NewHSplit(
		widget.NewCard("Tools", "", a.toolbar.GetContainer()),
		container.NewBorder(nil, a.status, nil, nil, container.NewPadded(a.canvas)),
	)
	split.SetOffset(0.2)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(split)
}

func (a *Application) setupCallbacks() {
	a.menuHandler.SetCallbacks(
		func(name string) {
			a.toolbar.HideControls()
			a.toolbar.ResetSelectors()
			a.canvas.ClearSelection()
			a.window.SetTitle("ImageCraft - " + name)
			a.refresh()
		},
		func(name string) {
			a.status.SetText("Exported " + name)
		},
		func() {
			a.toolbar.HideControls()
			a.toolbar.ResetSelectors()
			a.canvas.ClearSelection()
			a.refresh()
		},
	)

	a.canvas.SetSelectionChangedCallback(func(has bool) {
		if !has {
			a.refreshStatus()
			return
		}
		rect, _ := a.selection.Rect()
		a.status.SetText(fmt.Sprintf("Selection %dx%d at (%d, %d), press Crop to apply",
			rect.Dx(), rect.Dy(), rect.Min.X, rect.Min.Y))
	})
}

// ShowAndRun shows the window and runs the event loop.
func (a *Application) ShowAndRun() {
	a.window.SetCloseIntercept(func() {
		a.document.Close()
		a.window.Close()
	})
	a.window.ShowAndRun()
}

func (a *Application) beginAdjust(adj algorithms.Adjustment) {
	if !a.requireImage() {
		return
	}
	mode, err := core.ModeFor(adj)
	if err != nil {
		a.showError(err)
		return
	}
	if err := a.document.BeginSession(mode); err != nil {
		a.showError(err)
	}
}

func (a *Application) adjust(adj algorithms.Adjustment, value int) {
	if !a.document.HasImage() {
		return
	}
	if err := a.document.Adjust(adj, value); err != nil {
		a.showError(err)
		return
	}
	a.refresh()
}

func (a *Application) rotate(dir algorithms.Direction) {
	a.run(func() error { return a.document.Rotate(dir) })
}

func (a *Application) flip(axis algorithms.Axis) {
	a.run(func() error { return a.document.Flip(axis) })
}

func (a *Application) applyFilter(name string) {
	a.run(func() error {
		f, err := algorithms.ParseFilter(name)
		if err != nil {
			return err
		}
		return a.document.ApplyFilter(f)
	})
}

func (a *Application) isolateColor(name string) {
	a.run(func() error {
		if name == noneOption {
			return a.document.ClearColor()
		}
		band, err := algorithms.ParseColorBand(name)
		if err != nil {
			return err
		}
		return a.document.IsolateColor(band)
	})
}

func (a *Application) confirmCrop() {
	if !a.requireImage() {
		return
	}

	rect, err := a.selection.ConfirmCrop(a.document)
	if err != nil {
		if errors.Is(err, core.ErrNoSelection) {
			dialog.ShowInformation("Crop", "No crop area selected.", a.window)
			return
		}
		a.showError(fmt.Errorf("invalid crop area, please try again: %w", err))
		return
	}

	a.logger.WithField("rect", rect).Info("Image cropped")
	a.canvas.ClearSelection()
	a.refresh()
	dialog.ShowInformation("Success", "Image cropped successfully!", a.window)
}

func (a *Application) addText() {
	if !a.requireImage() {
		return
	}
	showTextDialog(a.window, a.cfg.TextOptions(), func(text string, opts algorithms.TextOptions) error {
		if err := a.document.OverlayText(text, opts); err != nil {
			return err
		}
		a.refresh()
		return nil
	})
}

// run applies a one-shot edit and repaints on success.
func (a *Application) run(op func() error) {
	if !a.requireImage() {
		return
	}
	if err := op(); err != nil {
		a.showError(err)
		return
	}
	a.refresh()
}

func (a *Application) refresh() {
	working := a.document.Working()
	defer working.Close()

	if working.Empty() {
		return
	}

	img, err := working.ToImage()
	if err != nil {
		a.showError(fmt.Errorf("render image: %w", err))
		return
	}
	a.canvas.UpdateImage(img)
	a.refreshStatus()
}

func (a *Application) refreshStatus() {
	size, err := a.document.Size()
	if err != nil {
		a.status.SetText("No image loaded")
		return
	}
	a.status.SetText(fmt.Sprintf("%d x %d%s", size.X, size.Y, a.describeDifference()))
}

// describeDifference reports how far the working image has drifted from the original.
func (a *Application) describeDifference() string {
	original := a.document.Original()
	defer original.Close()
	working := a.document.Working()
	defer working.Close()

	psnr, err := a.evaluator.Calculate("psnr", original, working)
	switch {
	case errors.Is(err, metrics.ErrSizeMismatch):
		return ""
	case err != nil:
		a.logger.WithError(err).Debug("Could not compare with original")
		return ""
	case math.IsInf(psnr, 1):
		return " | unchanged"
	default:
		return fmt.Sprintf(" | PSNR vs original %.1f dB", psnr)
	}
}

func (a *Application) requireImage() bool {
	if a.document.HasImage() {
		return true
	}
	dialog.ShowInformation("Error", "No image loaded. Please upload an image first.", a.window)
	return false
}

func (a *Application) showError(err error) {
	a.logger.WithError(err).Warn("Edit failed")
	dialog.ShowError(err, a.window)
}
