package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"sync"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

// minFontSize keeps the label legible on very small images.
const minFontSize = 12.0

var (
	labelFontOnce sync.Once
	labelFont     *sfnt.Font
	labelFontErr  error
)

func loadLabelFont() (*sfnt.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(gobold.TTF)
	})
	return labelFont, labelFontErr
}

// FontSize returns the label size for a surface of the given dimensions: the
// smaller of the two proportional candidates, floored at minFontSize.
func FontSize(width, height int) float64 {
	candidate := math.Min(float64(width)*0.02, float64(height)*0.03)
	return math.Max(candidate, minFontSize)
}

// Watermark decodes a display reference, overlays label in the bottom-right
// corner and re-encodes the composite as a PNG data URL. The output surface
// always matches the source dimensions exactly. Every call is independent;
// the source reference is never modified.
func Watermark(displayRef, label string) (string, error) {
	data, _, err := ParseDataURL(displayRef)
	if err != nil {
		return "", err
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("imaging: decode source image: %w", err)
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)

	if label != "" {
		if err := drawLabel(canvas, label); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return "", fmt.Errorf("imaging: encode watermarked image: %w", err)
	}
	out, err := New(buf.Bytes(), "image/png")
	if err != nil {
		return "", err
	}
	return out.DisplayReference, nil
}

func drawLabel(canvas *image.RGBA, label string) error {
	parsed, err := loadLabelFont()
	if err != nil {
		return fmt.Errorf("imaging: parse label font: %w", err)
	}

	width := canvas.Bounds().Dx()
	height := canvas.Bounds().Dy()
	size := FontSize(width, height)

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("imaging: build label face: %w", err)
	}
	defer face.Close()

	// Inset from the bottom-right corner, identical on both axes.
	pad := fixed.Int26_6(size * 1.2 * 64)
	advance := font.MeasureString(face, label)
	x := fixed.I(width) - pad - advance
	y := fixed.I(height) - pad

	// Shadow first, then the semi-transparent white fill on top, so the label
	// stays readable against arbitrary backgrounds.
	offset := fixed.Int26_6(math.Max(1, size/16) * 64)
	drawString(canvas, face, label, x+offset, y+offset, color.NRGBA{A: 128})
	drawString(canvas, face, label, x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 217})
	return nil
}

func drawString(dst draw.Image, face font.Face, s string, x, y fixed.Int26_6, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(s)
}
