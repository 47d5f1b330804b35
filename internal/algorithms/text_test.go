package algorithms

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextOrigin(t *testing.T) {
	text := image.Pt(80, 20)
	img := image.Pt(400, 300)

	tests := []struct {
		pos  TextPosition
		want image.Point
	}{
		{TopLeft, image.Pt(10, 30)},
		{TopRight, image.Pt(310, 30)},
		{BottomLeft, image.Pt(10, 290)},
		{BottomRight, image.Pt(310, 290)},
		{Center, image.Pt(160, 160)},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			got, err := TextOrigin(tt.pos, text, img, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TextOrigin(TextPosition(99), text, img, 10)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestParseTextPosition(t *testing.T) {
	for i, name := range TextPositionNames() {
		pos, err := ParseTextPosition(name)
		require.NoError(t, err)
		assert.Equal(t, TextPosition(i), pos)
	}

	_, err := ParseTextPosition("Middle")
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestOverlayTextDrawsOnCopy(t *testing.T) {
	img := solid(120, 240, 0, 0, 0)
	defer img.Close()
	before := img.ToBytes()

	opts := DefaultTextOptions()
	opts.Position = Center
	opts.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}

	out, err := OverlayText(img, "Hi", opts)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, before, img.ToBytes())
	assert.NotEqual(t, before, out.ToBytes())

	// Red text on black only ever sets the red channel.
	data := out.ToBytes()
	var red int
	for i := 0; i < len(data); i += 3 {
		assert.Zero(t, data[i], "blue channel")
		if data[i+2] > 0 {
			red++
		}
	}
	assert.Positive(t, red)
}

func TestOverlayTextRejectsBadInput(t *testing.T) {
	img := solid(50, 50, 0, 0, 0)
	defer img.Close()

	_, err := OverlayText(img, "", DefaultTextOptions())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	opts := DefaultTextOptions()
	opts.Position = TextPosition(-1)
	_, err = OverlayText(img, "x", opts)
	assert.ErrorIs(t, err, ErrInvalidEnum)

	opts = DefaultTextOptions()
	opts.Font.Size = 0
	_, err = OverlayText(img, "x", opts)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFontFallsBackToSimplex(t *testing.T) {
	plain := Font{Family: "Comic Sans", Size: 10}
	simplex := Font{Family: "simplex", Size: 10}
	assert.Equal(t, simplex.face(), plain.face())
	assert.InDelta(t, 1.0, plain.scale(), 1e-9)

	opts := DefaultTextOptions()
	opts.Font = plain
	assert.Positive(t, MeasureText("abc", opts).X)
}
