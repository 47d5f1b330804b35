// Menu handler for import, export and reset
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"imagecraft/internal/core"
	"imagecraft/internal/io"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window      fyne.Window
	document    *core.Document
	loader      *io.ImageLoader
	logger      *logrus.Logger
	defaultName string

	onImageLoaded func(string)
	onImageSaved  func(string)
	onReset       func()
}

func NewMenuHandler(window fyne.Window, document *core.Document, loader *io.ImageLoader, logger *logrus.Logger, defaultName string) *MenuHandler {
	return &MenuHandler{
		window:      window,
		document:    document,
		loader:      loader,
		logger:      logger,
		defaultName: defaultName,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Image...", mh.OpenImage),
		fyne.NewMenuItem("Export Image...", mh.SaveImage),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset to Original", mh.ConfirmReset),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

// OpenImage asks for an image file and loads it into the document.
func (mh *MenuHandler) OpenImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			mh.logger.Debug("No file selected")
			return
		}
		defer reader.Close()

		uri := reader.URI()
		mat, err := mh.loader.Decode(reader, uri.Name())
		if err != nil {
			mh.showError("Failed to Load Image", err)
			return
		}
		defer mat.Close()

		if err := mh.document.Load(mat, uri.Path()); err != nil {
			mh.showError("Invalid Image", err)
			return
		}

		dialog.ShowInformation("Success", "Image uploaded successfully!", mh.window)
		if mh.onImageLoaded != nil {
			mh.onImageLoaded(uri.Name())
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

// SaveImage asks for a destination and writes the working image there.
func (mh *MenuHandler) SaveImage() {
	if !mh.document.HasImage() {
		mh.showError("No Image", fmt.Errorf("no image loaded, please upload an image first"))
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			mh.logger.Debug("No file selected")
			return
		}
		defer writer.Close()

		working := mh.document.Working()
		defer working.Close()

		uri := writer.URI()
		if err := mh.loader.Encode(writer, working, uri.Name()); err != nil {
			mh.showError("Failed to Save Image", err)
			return
		}

		dialog.ShowInformation("Success", "Image exported successfully!", mh.window)
		if mh.onImageSaved != nil {
			mh.onImageSaved(uri.Name())
		}
	}, mh.window)

	fileDialog.SetFileName(mh.defaultName)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

// ConfirmReset restores the original image after the user agrees.
func (mh *MenuHandler) ConfirmReset() {
	if !mh.document.HasImage() {
		mh.showError("No Image", fmt.Errorf("no image loaded, please upload an image first"))
		return
	}

	dialog.ShowConfirm("Reset Image", "This will clear all edits. Do you want to proceed?", func(ok bool) {
		if !ok {
			return
		}
		if err := mh.document.Reset(); err != nil {
			mh.showError("Reset Failed", err)
			return
		}
		if mh.onReset != nil {
			mh.onReset()
		}
	}, mh.window)
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("ImageCraft"),
		widget.NewSeparator(),
		widget.NewLabel("Brightness, contrast, blur, color filters,"),
		widget.NewLabel("crop, rotate, flip, resize and text overlay."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(360, 220))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onImageLoaded, onImageSaved func(string), onReset func()) {
	mh.onImageLoaded = onImageLoaded
	mh.onImageSaved = onImageSaved
	mh.onReset = onReset
}
