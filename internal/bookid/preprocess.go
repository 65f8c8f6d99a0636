// AngelaMos | 2026
// preprocess.go

package bookid

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg" // register decoders for camera uploads

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// sharpenKernel is a mild 3x3 sharpen applied after scaling; the center
// weight keeps overall brightness.
var sharpenKernel = [3][3]float64{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// preprocess produces the second recognition variant: scale to
// targetHeight preserving aspect ratio, then sharpen. Returns PNG bytes.
func preprocess(data []byte, targetHeight int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dy() == 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}

	width := bounds.Dx() * targetHeight / bounds.Dy()
	if width < 1 {
		width = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, targetHeight))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)

	sharpened := sharpen(scaled)

	var buf bytes.Buffer
	if err := png.Encode(&buf, sharpened); err != nil {
		return nil, fmt.Errorf("encode variant: %w", err)
	}

	return buf.Bytes(), nil
}

func sharpen(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var rSum, gSum, bSum float64

			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sx := clamp(x+kx, bounds.Min.X, bounds.Max.X-1)
					sy := clamp(y+ky, bounds.Min.Y, bounds.Max.Y-1)
					c := src.RGBAAt(sx, sy)
					w := sharpenKernel[ky+1][kx+1]
					rSum += float64(c.R) * w
					gSum += float64(c.G) * w
					bSum += float64(c.B) * w
				}
			}

			dst.SetRGBA(x, y, color.RGBA{
				R: clampByte(rSum),
				G: clampByte(gSum),
				B: clampByte(bSum),
				A: src.RGBAAt(x, y).A,
			})
		}
	}

	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
