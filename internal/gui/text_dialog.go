// Add Text dialog
package gui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"imagecraft/internal/algorithms"
)

// showTextDialog collects the overlay text, font, color and position and
// passes them to submit.
func showTextDialog(window fyne.Window, defaults algorithms.TextOptions, submit func(string, algorithms.TextOptions) error) {
	opts := defaults

	textEntry := widget.NewEntry()
	textEntry.SetPlaceHolder("Enter the text")

	familySelect := widget.NewSelect(algorithms.FontFamilies(), nil)
	familySelect.SetSelected(defaults.Font.Family)

	sizeEntry := widget.NewEntry()
	sizeEntry.SetText(strconv.Itoa(defaults.Font.Size))
	sizeEntry.Validator = func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return fmt.Errorf("font size must be a positive number")
		}
		return nil
	}

	positionSelect := widget.NewSelect(algorithms.TextPositionNames(), nil)
	positionSelect.SetSelected(defaults.Position.String())

	swatch := canvas.NewRectangle(defaults.Color)
	swatch.SetMinSize(fyne.NewSize(32, 20))
	colorButton := widget.NewButton("Choose...", func() {
		picker := dialog.NewColorPicker("Font Color", "Select the text color", func(c color.Color) {
			opts.Color = toOpaqueRGBA(c)
			swatch.FillColor = opts.Color
			swatch.Refresh()
		}, window)
		picker.Advanced = true
		picker.Show()
	})

	items := []*widget.FormItem{
		widget.NewFormItem("Text", textEntry),
		widget.NewFormItem("Font", familySelect),
		widget.NewFormItem("Size", sizeEntry),
		widget.NewFormItem("Color", container.NewHBox(swatch, colorButton)),
		widget.NewFormItem("Position", positionSelect),
	}

	form := dialog.NewForm("Add Text", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}

		text := textEntry.Text
		if text == "" {
			return
		}

		size, err := strconv.Atoi(strings.TrimSpace(sizeEntry.Text))
		if err != nil {
			dialog.ShowError(fmt.Errorf("font size: %w", err), window)
			return
		}
		position, err := algorithms.ParseTextPosition(positionSelect.Selected)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}

		opts.Font = algorithms.Font{Family: familySelect.Selected, Size: size}
		opts.Position = position

		if err := submit(text, opts); err != nil {
			dialog.ShowError(err, window)
		}
	}, window)
	form.Resize(fyne.NewSize(420, 320))
	form.Show()
}

func toOpaqueRGBA(c color.Color) color.RGBA {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: nrgba.R, G: nrgba.G, B: nrgba.B, A: 255}
}
