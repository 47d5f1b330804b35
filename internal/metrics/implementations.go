// Concrete implementations of quality metrics
package metrics

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"

	"imagecraft/internal/algorithms"
)

// MSE implements the mean squared error over luminance
type MSE struct{}

// NewMSE creates a new MSE metric
func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(reference, candidate gocv.Mat) (float64, error) {
	return meanSquaredError(reference, candidate)
}

func (m *MSE) Name() string {
	return "mse"
}

func (m *MSE) HigherIsBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{}
}

// Calculate returns the PSNR in dB, or +Inf for identical images.
func (p *PSNR) Calculate(reference, candidate gocv.Mat) (float64, error) {
	mse, err := meanSquaredError(reference, candidate)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) Name() string {
	return "psnr"
}

func (p *PSNR) HigherIsBetter() bool {
	return true
}

func meanSquaredError(reference, candidate gocv.Mat) (float64, error) {
	if reference.Rows() != candidate.Rows() || reference.Cols() != candidate.Cols() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			reference.Cols(), reference.Rows(), candidate.Cols(), candidate.Rows())
	}

	gray1, err := algorithms.ToGrayscale(reference)
	if err != nil {
		return 0, err
	}
	defer gray1.Close()

	gray2, err := algorithms.ToGrayscale(candidate)
	if err != nil {
		return 0, err
	}
	defer gray2.Close()

	a := gray1.ToBytes()
	b := gray2.ToBytes()

	sumSquaredDiff := 0.0
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(a)), nil
}
