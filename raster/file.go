package raster

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/flavioheleno/futaba/image1bit"
)

// Load decodes a BMP, PNG, GIF or JPEG image into a 1-bit image at the origin.
// Only pure white pixels are lit.
func Load(r io.Reader) (*image1bit.VerticalMSB, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %w", err)
	}
	b := img.Bounds()
	dst := image1bit.NewVerticalMSB(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst, nil
}

// SaveBMP writes img as a black and white BMP.
func SaveBMP(w io.Writer, img image.Image) error {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	if err := bmp.Encode(w, gray); err != nil {
		return fmt.Errorf("raster: encode bmp: %w", err)
	}
	return nil
}
