package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestPNG(t *testing.T, width, height int, fill color.RGBA) EncodedImage {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	encoded, err := New(buf.Bytes(), "image/png")
	require.NoError(t, err)
	return encoded
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   float64
	}{
		{"width candidate wins", 1000, 500, 15},      // min(20, 15) = 15
		{"floor applied on small images", 100, 100, 12}, // min(2, 3) = 2 -> floored
		{"height candidate wins", 500, 2000, 12},     // min(10, 60) = 10 -> floored
		{"large square", 2000, 2000, 40},             // min(40, 60) = 40
		{"exactly at the floor", 600, 400, 12},       // min(12, 12) = 12
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FontSize(tt.width, tt.height))
		})
	}
}

func TestWatermarkPreservesDimensions(t *testing.T) {
	for _, dims := range [][2]int{{640, 480}, {100, 100}, {37, 53}} {
		src := makeTestPNG(t, dims[0], dims[1], color.RGBA{R: 10, G: 20, B: 30, A: 255})

		out, err := Watermark(src.DisplayReference, "thara")
		require.NoError(t, err)

		data, mediaType, err := ParseDataURL(out)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mediaType)

		decoded, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, dims[0], decoded.Bounds().Dx())
		assert.Equal(t, dims[1], decoded.Bounds().Dy())
	}
}

func TestWatermarkDrawsLabelPixels(t *testing.T) {
	src := makeTestPNG(t, 400, 300, color.RGBA{R: 5, G: 5, B: 5, A: 255})

	out, err := Watermark(src.DisplayReference, "thara")
	require.NoError(t, err)

	data, _, err := ParseDataURL(out)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// The label sits near the bottom-right corner; at least one pixel in that
	// quadrant must differ from the uniform background.
	changed := false
	bounds := decoded.Bounds()
	for y := bounds.Dy() / 2; y < bounds.Dy() && !changed; y++ {
		for x := bounds.Dx() / 2; x < bounds.Dx(); x++ {
			r, g, b, _ := decoded.At(x, y).RGBA()
			if r>>8 != 5 || g>>8 != 5 || b>>8 != 5 {
				changed = true
				break
			}
		}
	}
	assert.True(t, changed, "expected the watermark label to alter bottom-right pixels")
}

func TestWatermarkEmptyLabelStillReencodes(t *testing.T) {
	src := makeTestPNG(t, 64, 64, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	out, err := Watermark(src.DisplayReference, "")
	require.NoError(t, err)

	data, _, err := ParseDataURL(out)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
}

func TestWatermarkRejectsUndecodableInput(t *testing.T) {
	ref := "data:image/png;base64,aGVsbG8gd29ybGQ=" // "hello world", not a PNG

	_, err := Watermark(ref, "thara")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode source image")
}

func TestWatermarkRejectsNonDataURL(t *testing.T) {
	_, err := Watermark("https://example.com/cat.png", "thara")
	require.Error(t, err)
}
