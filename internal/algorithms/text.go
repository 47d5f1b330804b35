// Text overlay with Hershey fonts
package algorithms

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"
)

// TextPosition is the anchor used to place overlay text.
type TextPosition int

const (
	TopLeft TextPosition = iota
	TopRight
	BottomLeft
	BottomRight
	Center
)

var textPositionNames = []string{"Top-Left", "Top-Right", "Bottom-Left", "Bottom-Right", "Center"}

func (p TextPosition) String() string {
	if p >= 0 && int(p) < len(textPositionNames) {
		return textPositionNames[p]
	}
	return fmt.Sprintf("TextPosition(%d)", int(p))
}

// TextPositionNames lists every position label in menu order.
func TextPositionNames() []string {
	names := make([]string, len(textPositionNames))
	copy(names, textPositionNames)
	return names
}

// ParseTextPosition resolves a position by its label.
func ParseTextPosition(name string) (TextPosition, error) {
	for i, n := range textPositionNames {
		if n == name {
			return TextPosition(i), nil
		}
	}
	return 0, fmt.Errorf("%w: text position %q", ErrInvalidEnum, name)
}

// Font describes the overlay font. Size is in points; the Hershey scale is Size/10.
type Font struct {
	Family string
	Size   int
}

var fontFaces = map[string]gocv.HersheyFont{
	"simplex":        gocv.FontHersheySimplex,
	"plain":          gocv.FontHersheyPlain,
	"duplex":         gocv.FontHersheyDuplex,
	"complex":        gocv.FontHersheyComplex,
	"triplex":        gocv.FontHersheyTriplex,
	"complex small":  gocv.FontHersheyComplexSmall,
	"script simplex": gocv.FontHersheyScriptSimplex,
	"script complex": gocv.FontHersheyScriptComplex,
}

// FontFamilies lists the supported family names.
func FontFamilies() []string {
	return []string{"simplex", "plain", "duplex", "complex", "triplex", "complex small", "script simplex", "script complex"}
}

func (f Font) face() gocv.HersheyFont {
	if face, ok := fontFaces[strings.ToLower(strings.TrimSpace(f.Family))]; ok {
		return face
	}
	return gocv.FontHersheySimplex
}

func (f Font) scale() float64 {
	return float64(f.Size) / 10.0
}

// TextOptions configures OverlayText.
type TextOptions struct {
	Position  TextPosition
	Font      Font
	Color     color.RGBA
	Thickness int
	Margin    int
}

// DefaultTextOptions returns white 24pt simplex text in the top-left corner.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Position:  TopLeft,
		Font:      Font{Family: "simplex", Size: 24},
		Color:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Thickness: 4,
		Margin:    10,
	}
}

// MeasureText returns the pixel extents of text drawn with opts.
func MeasureText(text string, opts TextOptions) image.Point {
	return gocv.GetTextSize(text, opts.Font.face(), opts.Font.scale(), opts.Thickness)
}

// TextOrigin maps a position to the baseline-left draw origin for text of
// size textSize on an image of size imageSize.
func TextOrigin(pos TextPosition, textSize, imageSize image.Point, margin int) (image.Point, error) {
	tw, th := textSize.X, textSize.Y
	w, h := imageSize.X, imageSize.Y

	switch pos {
	case TopLeft:
		return image.Pt(margin, th+margin), nil
	case TopRight:
		return image.Pt(w-tw-margin, th+margin), nil
	case BottomLeft:
		return image.Pt(margin, h-margin), nil
	case BottomRight:
		return image.Pt(w-tw-margin, h-margin), nil
	case Center:
		return image.Pt((w-tw)/2, (h+th)/2), nil
	default:
		return image.Point{}, fmt.Errorf("%w: text position %d", ErrInvalidEnum, int(pos))
	}
}

// OverlayText draws text onto a copy of img.
func OverlayText(img gocv.Mat, text string, opts TextOptions) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}
	if text == "" {
		return gocv.NewMat(), fmt.Errorf("%w: empty text", ErrInvalidParameter)
	}
	if opts.Font.Size <= 0 || opts.Thickness <= 0 || opts.Margin < 0 {
		return gocv.NewMat(), fmt.Errorf("%w: font size %d, thickness %d, margin %d",
			ErrInvalidParameter, opts.Font.Size, opts.Thickness, opts.Margin)
	}

	size := MeasureText(text, opts)
	origin, err := TextOrigin(opts.Position, size, image.Pt(img.Cols(), img.Rows()), opts.Margin)
	if err != nil {
		return gocv.NewMat(), err
	}

	output := img.Clone()
	gocv.PutText(&output, text, origin, opts.Font.face(), opts.Font.scale(), opts.Color, opts.Thickness)
	return output, nil
}
