// Tonal adjustments driven by slider values
package algorithms

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Slider ranges for the numeric adjustments.
const (
	BrightnessMin = -255
	BrightnessMax = 255
	ContrastMin   = -100
	ContrastMax   = 100
	BlurMin       = -50
	BlurMax       = 50
)

// sharpenDivisor maps a blur slider magnitude onto the sharpen weight k.
const sharpenDivisor = 50.0

// AdjustBrightness adds delta to every channel, saturating at 0 and 255.
func AdjustBrightness(img gocv.Mat, delta int) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}
	if err := checkRange("brightness", delta, BrightnessMin, BrightnessMax); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	img.ConvertToWithParams(&output, img.Type(), 1, float32(delta))
	return output, nil
}

// AdjustContrast scales every channel by 1 + value/100, saturating at 0 and 255.
func AdjustContrast(img gocv.Mat, value int) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}
	if err := checkRange("contrast", value, ContrastMin, ContrastMax); err != nil {
		return gocv.NewMat(), err
	}

	alpha := 1 + float64(value)/100.0
	output := gocv.NewMat()
	img.ConvertToWithParams(&output, img.Type(), float32(alpha), 0)
	return output, nil
}

// BlurOrSharpen blurs for positive values, sharpens for negative values and
// copies the input for zero.
func BlurOrSharpen(img gocv.Mat, value int) (gocv.Mat, error) {
	if err := validate(img); err != nil {
		return gocv.NewMat(), err
	}
	if err := checkRange("blur", value, BlurMin, BlurMax); err != nil {
		return gocv.NewMat(), err
	}

	switch {
	case value > 0:
		kernelSize := value*2 + 1
		output := gocv.NewMat()
		gocv.GaussianBlur(img, &output, image.Pt(kernelSize, kernelSize), 0, 0, gocv.BorderDefault)
		return output, nil
	case value < 0:
		return sharpen(img, math.Abs(float64(value))/sharpenDivisor), nil
	default:
		return img.Clone(), nil
	}
}

// sharpen applies the 4-neighbour Laplacian sharpening kernel with weight k.
func sharpen(img gocv.Mat, k float64) gocv.Mat {
	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()

	weights := [3][3]float64{
		{0, -k, 0},
		{-k, 1 + 4*k, -k},
		{0, -k, 0},
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			kernel.SetFloatAt(row, col, float32(weights[row][col]))
		}
	}

	output := gocv.NewMat()
	gocv.Filter2D(img, &output, gocv.MatType(-1), kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)
	return output
}
