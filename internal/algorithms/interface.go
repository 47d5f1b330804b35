// Registry of slider adjustments and combo-box filters
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Adjustment identifies a slider-driven transform.
type Adjustment int

const (
	BrightnessAdjustment Adjustment = iota
	ContrastAdjustment
	BlurAdjustment
	ResizeAdjustment
)

// ParameterInfo describes the slider range of an adjustment for UI generation.
type ParameterInfo struct {
	Name        string `json:"name"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Default     int    `json:"default"`
	Description string `json:"description"`
}

type adjustmentEntry struct {
	info  ParameterInfo
	apply func(gocv.Mat, int) (gocv.Mat, error)
}

var adjustments = map[Adjustment]adjustmentEntry{
	BrightnessAdjustment: {
		info: ParameterInfo{
			Name:        "Brightness",
			Min:         BrightnessMin,
			Max:         BrightnessMax,
			Default:     0,
			Description: "Offset added to every channel",
		},
		apply: AdjustBrightness,
	},
	ContrastAdjustment: {
		info: ParameterInfo{
			Name:        "Contrast",
			Min:         ContrastMin,
			Max:         ContrastMax,
			Default:     0,
			Description: "Gain of 1 + value/100 applied to every channel",
		},
		apply: AdjustContrast,
	},
	BlurAdjustment: {
		info: ParameterInfo{
			Name:        "Blur",
			Min:         BlurMin,
			Max:         BlurMax,
			Default:     0,
			Description: "Gaussian blur radius when positive, sharpen strength when negative",
		},
		apply: BlurOrSharpen,
	},
	ResizeAdjustment: {
		info: ParameterInfo{
			Name:        "Resize",
			Min:         1,
			Max:         200,
			Default:     100,
			Description: "Uniform scale in percent",
		},
		apply: Resize,
	},
}

func (a Adjustment) String() string {
	if entry, ok := adjustments[a]; ok {
		return entry.info.Name
	}
	return fmt.Sprintf("Adjustment(%d)", int(a))
}

// Info returns the parameter description of a.
func (a Adjustment) Info() (ParameterInfo, error) {
	entry, ok := adjustments[a]
	if !ok {
		return ParameterInfo{}, fmt.Errorf("%w: adjustment %d", ErrInvalidEnum, int(a))
	}
	return entry.info, nil
}

// Apply runs adjustment a with value on img.
func Apply(a Adjustment, img gocv.Mat, value int) (gocv.Mat, error) {
	entry, ok := adjustments[a]
	if !ok {
		return gocv.NewMat(), fmt.Errorf("%w: adjustment %d", ErrInvalidEnum, int(a))
	}
	return entry.apply(img, value)
}

// Filter identifies a whole-image color filter.
type Filter int

const (
	FilterNone Filter = iota
	FilterGrayscale
	FilterSepia
	FilterInvert
)

var filterNames = []string{"None", "Grayscale", "Sepia", "Invert"}

func (f Filter) String() string {
	if f >= 0 && int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// FilterNames lists the filter labels in menu order.
func FilterNames() []string {
	names := make([]string, len(filterNames))
	copy(names, filterNames)
	return names
}

// ParseFilter resolves a filter by its label.
func ParseFilter(name string) (Filter, error) {
	for i, n := range filterNames {
		if n == name {
			return Filter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: filter %q", ErrInvalidEnum, name)
}

// ApplyFilter runs f on img. Grayscale output is expanded back to BGR so
// later color operations see three channels; FilterNone returns a copy.
func ApplyFilter(img gocv.Mat, f Filter) (gocv.Mat, error) {
	switch f {
	case FilterNone:
		if err := validate(img); err != nil {
			return gocv.NewMat(), err
		}
		return img.Clone(), nil
	case FilterGrayscale:
		gray, err := ToGrayscale(img)
		if err != nil {
			return gocv.NewMat(), err
		}
		defer gray.Close()
		output := gocv.NewMat()
		gocv.CvtColor(gray, &output, gocv.ColorGrayToBGR)
		return output, nil
	case FilterSepia:
		return ToSepia(img)
	case FilterInvert:
		return InvertColors(img)
	default:
		return gocv.NewMat(), fmt.Errorf("%w: filter %d", ErrInvalidEnum, int(f))
	}
}
