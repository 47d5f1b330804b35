package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// matFromBytes builds a Mat that owns a copy of data.
func matFromBytes(t *testing.T, rows, cols int, mt gocv.MatType, data []byte) gocv.Mat {
	t.Helper()
	src, err := gocv.NewMatFromBytes(rows, cols, mt, data)
	require.NoError(t, err)
	defer src.Close()
	return src.Clone()
}

// gradient returns a deterministic, non-symmetric test image.
func gradient(t *testing.T, rows, cols, channels int) gocv.Mat {
	t.Helper()
	data := make([]byte, rows*cols*channels)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			for c := 0; c < channels; c++ {
				data[(y*cols+x)*channels+c] = byte((x*7 + y*13 + c*29) % 256)
			}
		}
	}
	return matFromBytes(t, rows, cols, matType(channels), data)
}

// solid returns a BGR image filled with one color.
func solid(rows, cols int, b, g, r float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func matType(channels int) gocv.MatType {
	switch channels {
	case 1:
		return gocv.MatTypeCV8UC1
	case 4:
		return gocv.MatTypeCV8UC4
	default:
		return gocv.MatTypeCV8UC3
	}
}

func requireSameMat(t *testing.T, want, got gocv.Mat) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	require.Equal(t, want.Type(), got.Type(), "type")
	require.Equal(t, want.ToBytes(), got.ToBytes(), "pixels")
}

func pixel(m gocv.Mat, row, col int) []uint8 {
	return m.GetVecbAt(row, col)
}
