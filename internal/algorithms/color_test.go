package algorithms

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestToGrayscale(t *testing.T) {
	img := solid(3, 4, 255, 255, 255)
	defer img.Close()

	gray, err := ToGrayscale(img)
	require.NoError(t, err)
	defer gray.Close()

	assert.Equal(t, 1, gray.Channels())
	assert.Equal(t, 3, gray.Rows())
	assert.Equal(t, 4, gray.Cols())
	assert.Equal(t, uint8(255), gray.GetUCharAt(1, 2))

	again, err := ToGrayscale(gray)
	require.NoError(t, err)
	defer again.Close()
	requireSameMat(t, gray, again)
}

func TestToSepia(t *testing.T) {
	// B=20, G=50, R=100
	img := solid(2, 2, 20, 50, 100)
	defer img.Close()

	out, err := ToSepia(img)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, 3, out.Channels())
	got := pixel(out, 0, 0)
	// R' = .393*100 + .769*50 + .189*20 = 81.53
	// G' = .349*100 + .686*50 + .168*20 = 72.56
	// B' = .272*100 + .534*50 + .131*20 = 56.52
	assert.InDelta(t, 57, int(got[0]), 1)
	assert.InDelta(t, 73, int(got[1]), 1)
	assert.InDelta(t, 82, int(got[2]), 1)

	white := solid(1, 1, 255, 255, 255)
	defer white.Close()
	sat, err := ToSepia(white)
	require.NoError(t, err)
	defer sat.Close()
	got = pixel(sat, 0, 0)
	assert.InDelta(t, 239, int(got[0]), 1)
	assert.Equal(t, uint8(255), got[1])
	assert.Equal(t, uint8(255), got[2])
}

func TestToSepiaAcceptsGrayAndAlpha(t *testing.T) {
	for _, channels := range []int{1, 4} {
		img := gradient(t, 5, 6, channels)
		out, err := ToSepia(img)
		require.NoError(t, err)
		assert.Equal(t, 3, out.Channels())
		out.Close()
		img.Close()
	}
}

func TestInvertColorsIsInvolution(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		img := gradient(t, 6, 7, channels)

		once, err := InvertColors(img)
		require.NoError(t, err)
		twice, err := InvertColors(once)
		require.NoError(t, err)

		requireSameMat(t, img, twice)
		assert.Equal(t, 255-pixel(img, 2, 3)[0], pixel(once, 2, 3)[0])

		img.Close()
		once.Close()
		twice.Close()
	}
}

func TestInvertColorsInvertsAlpha(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 10, 20, 255), 2, 2, gocv.MatTypeCV8UC4)
	defer img.Close()

	out, err := InvertColors(img)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, []uint8{255, 245, 235, 0}, pixel(out, 1, 1))
}

// bandBlocks is a 20x20 gray image with one 10x10 block per color band.
func bandBlocks() (gocv.Mat, map[ColorBand]image.Rectangle) {
	img := solid(20, 20, 128, 128, 128)
	blocks := map[ColorBand]image.Rectangle{
		ColorRed:    image.Rect(0, 0, 10, 10),
		ColorGreen:  image.Rect(10, 0, 20, 10),
		ColorBlue:   image.Rect(0, 10, 10, 20),
		ColorYellow: image.Rect(10, 10, 20, 20),
	}
	colors := map[ColorBand]gocv.Scalar{
		ColorRed:    gocv.NewScalar(0, 0, 255, 0),
		ColorGreen:  gocv.NewScalar(0, 255, 0, 0),
		ColorBlue:   gocv.NewScalar(255, 0, 0, 0),
		ColorYellow: gocv.NewScalar(0, 255, 255, 0),
	}
	for band, rect := range blocks {
		region := img.Region(rect)
		region.SetTo(colors[band])
		region.Close()
	}
	return img, blocks
}

func TestIsolateColorKeepsOnlyTheBand(t *testing.T) {
	img, blocks := bandBlocks()
	defer img.Close()

	gray, err := ToGrayscale(img)
	require.NoError(t, err)
	defer gray.Close()

	for _, band := range ColorBands() {
		out, err := IsolateColor(img, band)
		require.NoError(t, err, band.String())
		require.Equal(t, 3, out.Channels())

		for other, rect := range blocks {
			c := rect.Min.Add(image.Pt(5, 5))
			got := pixel(out, c.Y, c.X)
			if other == band {
				assert.Equal(t, pixel(img, c.Y, c.X), got, "%s block keeps its color", band)
				continue
			}
			l := gray.GetUCharAt(c.Y, c.X)
			assert.Equal(t, []uint8{l, l, l}, got, "%s block is gray under %s", other, band)
		}
		out.Close()
	}
}

func TestIsolateColorRedWrapsAroundHueZero(t *testing.T) {
	// Hue near 175 in OpenCV units: a magenta-leaning red.
	img := solid(2, 2, 40, 0, 255)
	defer img.Close()

	out, err := IsolateColor(img, ColorRed)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, []uint8{40, 0, 255}, pixel(out, 0, 0))
}

func TestIsolateColorRejectsUnknownBand(t *testing.T) {
	img := solid(2, 2, 1, 2, 3)
	defer img.Close()

	_, err := IsolateColor(img, ColorBand(42))
	assert.ErrorIs(t, err, ErrInvalidEnum)

	_, err = ParseColorBand("Purple")
	assert.ErrorIs(t, err, ErrInvalidEnum)

	band, err := ParseColorBand("Yellow")
	require.NoError(t, err)
	assert.Equal(t, ColorYellow, band)
}
