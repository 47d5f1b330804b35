// Tool buttons, sliders and filter selectors
package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"imagecraft/internal/algorithms"
)

const noneOption = "None"

// ToolbarActions are the callbacks the toolbar drives.
type ToolbarActions struct {
	Import      func()
	Export      func()
	Reset       func()
	Crop        func()
	AddText     func()
	BeginAdjust func(algorithms.Adjustment)
	Adjust      func(algorithms.Adjustment, int)
	Rotate      func(algorithms.Direction)
	Flip        func(algorithms.Axis)
	Filter      func(string)
	Color       func(string)
}

// Toolbar holds the editing controls. Only the controls of the active tool
// are visible at a time.
type Toolbar struct {
	actions ToolbarActions

	sliders       map[algorithms.Adjustment]*widget.Slider
	sliderLabels  map[algorithms.Adjustment]*widget.Label
	rotateButtons *fyne.Container
	flipButtons   *fyne.Container
	filterSelect  *widget.Select
	colorSelect   *widget.Select

	container *fyne.Container
}

func NewToolbar(actions ToolbarActions) *Toolbar {
	t := &Toolbar{
		actions:      actions,
		sliders:      make(map[algorithms.Adjustment]*widget.Slider),
		sliderLabels: make(map[algorithms.Adjustment]*widget.Label),
	}
	t.build()
	t.HideControls()
	return t
}

func (t *Toolbar) build() {
	adjustments := []algorithms.Adjustment{
		algorithms.ResizeAdjustment,
		algorithms.BrightnessAdjustment,
		algorithms.ContrastAdjustment,
		algorithms.BlurAdjustment,
	}

	buttons := container.NewVBox(
		widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), t.actions.Import),
		widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), t.actions.Export),
		widget.NewSeparator(),
	)

	controls := container.NewVBox()
	for _, adj := range adjustments {
		adj := adj
		info, _ := adj.Info()

		slider := widget.NewSlider(float64(info.Min), float64(info.Max))
		slider.Step = 1
		slider.Value = float64(info.Default)
		label := widget.NewLabel(info.Name)

		slider.OnChanged = func(v float64) {
			label.SetText(formatSliderLabel(adj, int(v)))
			t.actions.Adjust(adj, int(v))
		}

		t.sliders[adj] = slider
		t.sliderLabels[adj] = label

		buttons.Add(widget.NewButton(info.Name, func() {
			t.ShowSlider(adj)
			t.actions.BeginAdjust(adj)
		}))
		controls.Add(label)
		controls.Add(slider)
	}

	t.rotateButtons = container.NewGridWithColumns(2,
		widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() { t.actions.Rotate(algorithms.Clockwise) }),
		widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { t.actions.Rotate(algorithms.CounterClockwise) }),
	)
	t.flipButtons = container.NewGridWithColumns(2,
		widget.NewButton("Horizontal", func() { t.actions.Flip(algorithms.Horizontal) }),
		widget.NewButton("Vertical", func() { t.actions.Flip(algorithms.Vertical) }),
	)
	controls.Add(t.rotateButtons)
	controls.Add(t.flipButtons)

	buttons.Add(widget.NewButton("Rotate", func() {
		t.HideControls()
		t.rotateButtons.Show()
	}))
	buttons.Add(widget.NewButton("Flip", func() {
		t.HideControls()
		t.flipButtons.Show()
	}))
	buttons.Add(widget.NewButtonWithIcon("Crop", theme.ContentCutIcon(), func() {
		t.HideControls()
		t.actions.Crop()
	}))
	buttons.Add(widget.NewButton("Add Text", func() {
		t.HideControls()
		t.actions.AddText()
	}))

	colorOptions := []string{noneOption}
	for _, band := range algorithms.ColorBands() {
		colorOptions = append(colorOptions, band.String())
	}

	t.filterSelect = widget.NewSelect(algorithms.FilterNames(), func(name string) {
		t.HideControls()
		t.actions.Filter(name)
	})
	t.colorSelect = widget.NewSelect(colorOptions, func(name string) {
		t.HideControls()
		t.actions.Color(name)
	})
	t.filterSelect.PlaceHolder = "Filter"
	t.colorSelect.PlaceHolder = "Color"

	buttons.Add(widget.NewSeparator())
	buttons.Add(widget.NewLabel("Filter"))
	buttons.Add(t.filterSelect)
	buttons.Add(widget.NewLabel("Color"))
	buttons.Add(t.colorSelect)
	buttons.Add(widget.NewSeparator())
	buttons.Add(widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), t.actions.Reset))

	t.container = container.NewVBox(buttons, widget.NewSeparator(), controls)
}

// HideControls hides every slider and tool button row.
func (t *Toolbar) HideControls() {
	for adj, slider := range t.sliders {
		slider.Hide()
		t.sliderLabels[adj].Hide()
	}
	t.rotateButtons.Hide()
	t.flipButtons.Hide()
}

// ShowSlider shows the slider of adj, reset to its default value.
func (t *Toolbar) ShowSlider(adj algorithms.Adjustment) {
	t.HideControls()

	slider, ok := t.sliders[adj]
	if !ok {
		return
	}
	info, _ := adj.Info()

	onChanged := slider.OnChanged
	slider.OnChanged = nil
	slider.SetValue(float64(info.Default))
	slider.OnChanged = onChanged

	t.sliderLabels[adj].SetText(formatSliderLabel(adj, info.Default))
	t.sliderLabels[adj].Show()
	slider.Show()
}

// ResetSelectors clears the filter and color selectors without firing callbacks.
func (t *Toolbar) ResetSelectors() {
	for _, sel := range []*widget.Select{t.filterSelect, t.colorSelect} {
		onChanged := sel.OnChanged
		sel.OnChanged = nil
		sel.ClearSelected()
		sel.OnChanged = onChanged
	}
}

func (t *Toolbar) GetContainer() fyne.CanvasObject {
	return container.NewVScroll(t.container)
}

func formatSliderLabel(adj algorithms.Adjustment, value int) string {
	if adj == algorithms.ResizeAdjustment {
		return adj.String() + ": " + strconv.Itoa(value) + "%"
	}
	return adj.String() + ": " + strconv.Itoa(value)
}
