package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDispatchesAdjustments(t *testing.T) {
	img := gradient(t, 6, 6, 3)
	defer img.Close()

	viaRegistry, err := Apply(BrightnessAdjustment, img, 30)
	require.NoError(t, err)
	defer viaRegistry.Close()

	direct, err := AdjustBrightness(img, 30)
	require.NoError(t, err)
	defer direct.Close()

	requireSameMat(t, direct, viaRegistry)

	_, err = Apply(Adjustment(12), img, 0)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestAdjustmentInfoDefaultsAreIdentity(t *testing.T) {
	img := gradient(t, 8, 8, 3)
	defer img.Close()

	for _, adj := range []Adjustment{BrightnessAdjustment, ContrastAdjustment, BlurAdjustment, ResizeAdjustment} {
		info, err := adj.Info()
		require.NoError(t, err)
		assert.LessOrEqual(t, info.Min, info.Default, adj.String())
		assert.GreaterOrEqual(t, info.Max, info.Default, adj.String())

		out, err := Apply(adj, img, info.Default)
		require.NoError(t, err, adj.String())
		requireSameMat(t, img, out)
		out.Close()
	}
}

func TestApplyFilter(t *testing.T) {
	img := gradient(t, 5, 5, 3)
	defer img.Close()

	none, err := ApplyFilter(img, FilterNone)
	require.NoError(t, err)
	defer none.Close()
	requireSameMat(t, img, none)

	gray, err := ApplyFilter(img, FilterGrayscale)
	require.NoError(t, err)
	defer gray.Close()
	require.Equal(t, 3, gray.Channels())
	p := pixel(gray, 2, 2)
	assert.Equal(t, p[0], p[1])
	assert.Equal(t, p[1], p[2])

	inverted, err := ApplyFilter(img, FilterInvert)
	require.NoError(t, err)
	defer inverted.Close()
	assert.Equal(t, 255-pixel(img, 1, 1)[2], pixel(inverted, 1, 1)[2])

	_, err = ApplyFilter(img, Filter(8))
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestParseFilter(t *testing.T) {
	for i, name := range FilterNames() {
		f, err := ParseFilter(name)
		require.NoError(t, err)
		assert.Equal(t, Filter(i), f)
		assert.Equal(t, name, f.String())
	}

	_, err := ParseFilter("Vintage")
	assert.ErrorIs(t, err, ErrInvalidEnum)
}
