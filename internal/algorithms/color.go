// Color filters: grayscale, sepia, inversion and hue isolation
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

// ColorBand names a hue family that IsolateColor can keep in color.
type ColorBand int

const (
	ColorRed ColorBand = iota
	ColorGreen
	ColorBlue
	ColorYellow
)

var colorBandNames = map[ColorBand]string{
	ColorRed:    "Red",
	ColorGreen:  "Green",
	ColorBlue:   "Blue",
	ColorYellow: "Yellow",
}

func (b ColorBand) String() string {
	if name, ok := colorBandNames[b]; ok {
		return name
	}
	return fmt.Sprintf("ColorBand(%d)", int(b))
}

// ParseColorBand resolves a band by its display name.
func ParseColorBand(name string) (ColorBand, error) {
	for band, n := range colorBandNames {
		if n == name {
			return band, nil
		}
	}
	return 0, fmt.Errorf("%w: color band %q", ErrInvalidEnum, name)
}

// ColorBands lists the bands in menu order.
func ColorBands() []ColorBand {
	return []ColorBand{ColorRed, ColorGreen, ColorBlue, ColorYellow}
}

// hsvRange is an inclusive HSV box in OpenCV units (hue 0..180).
type hsvRange struct {
	lower, upper gocv.Scalar
}

func hsv(h, s, v float64) gocv.Scalar {
	return gocv.NewScalar(h, s, v, 0)
}

// Red wraps around hue 0, so it is the union of two boxes.
var bandRanges = map[ColorBand][]hsvRange{
	ColorRed: {
		{lower: hsv(0, 100, 100), upper: hsv(10, 255, 255)},
		{lower: hsv(170, 100, 100), upper: hsv(180, 255, 255)},
	},
	ColorGreen:  {{lower: hsv(35, 50, 50), upper: hsv(85, 255, 255)}},
	ColorBlue:   {{lower: hsv(100, 150, 80), upper: hsv(140, 255, 255)}},
	ColorYellow: {{lower: hsv(20, 150, 150), upper: hsv(30, 255, 255)}},
}

// sepiaMatrix maps (B, G, R) to (B', G', R').
var sepiaMatrix = [3][3]float32{
	{0.131, 0.534, 0.272},
	{0.168, 0.686, 0.349},
	{0.189, 0.769, 0.393},
}

// ToGrayscale returns the single-channel luma of img.
func ToGrayscale(img gocv.Mat) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	switch img.Channels() {
	case 1:
		img.CopyTo(&output)
	case 4:
		gocv.CvtColor(img, &output, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(img, &output, gocv.ColorBGRToGray)
	}
	return output, nil
}

// ToSepia applies the sepia tone matrix and returns a BGR image.
func ToSepia(img gocv.Mat) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}

	bgr := toBGR(img)
	defer bgr.Close()

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			kernel.SetFloatAt(row, col, sepiaMatrix[row][col])
		}
	}

	output := gocv.NewMat()
	gocv.Transform(bgr, &output, kernel)
	return output, nil
}

// InvertColors complements every channel, alpha included.
func InvertColors(img gocv.Mat) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	gocv.BitwiseNot(img, &output)
	return output, nil
}

// IsolateColor keeps the pixels that fall inside band in color and turns
// everything else gray. The result is always BGR.
func IsolateColor(img gocv.Mat, band ColorBand) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}
	ranges, ok := bandRanges[band]
	if !ok {
		return gocv.NewMat(), fmt.Errorf("%w: color band %d", ErrInvalidEnum, int(band))
	}

	bgr := toBGR(img)
	defer bgr.Close()

	mask := hueMask(bgr, ranges)
	defer mask.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	output := gocv.NewMat()
	gocv.CvtColor(gray, &output, gocv.ColorGrayToBGR)
	bgr.CopyToWithMask(&output, mask)
	return output, nil
}

// hueMask builds the binary mask of bgr pixels inside any of ranges.
func hueMask(bgr gocv.Mat, ranges []hsvRange) gocv.Mat {
	hsvImg := gocv.NewMat()
	defer hsvImg.Close()
	gocv.CvtColor(bgr, &hsvImg, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsvImg, ranges[0].lower, ranges[0].upper, &mask)

	for _, r := range ranges[1:] {
		part := gocv.NewMat()
		gocv.InRangeWithScalar(hsvImg, r.lower, r.upper, &part)

		merged := gocv.NewMat()
		gocv.BitwiseOr(mask, part, &merged)
		part.Close()
		mask.Close()
		mask = merged
	}

	return mask
}

// toBGR returns a 3-channel copy of img.
func toBGR(img gocv.Mat) gocv.Mat {
	output := gocv.NewMat()
	switch img.Channels() {
	case 1:
		gocv.CvtColor(img, &output, gocv.ColorGrayToBGR)
	case 4:
		gocv.CvtColor(img, &output, gocv.ColorBGRAToBGR)
	default:
		img.CopyTo(&output)
	}
	return output
}
