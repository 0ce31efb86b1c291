package futaba

import (
	"errors"
	"image"

	"github.com/flavioheleno/futaba/image1bit"
)

// Panel geometry and wire format.
const (
	Width  = 160 // Addressable columns
	Height = 40  // Addressable rows (36 are visible on the glass)

	// PayloadSize is the number of pixel bytes in a frame: 5 row groups per column.
	PayloadSize = Width * ((Height + 7) / 8)
	// FrameSize is the length of every frame on the wire.
	FrameSize = len(Header) + PayloadSize
)

// Header is the bit image write command (ESC 0x20) that starts every frame.
var Header = [2]byte{0x1B, 0x20}

// ErrInvalidFrame is returned by Decode for data that is not a panel frame.
var ErrInvalidFrame = errors.New("futaba: invalid frame")

// Bounds returns the addressable panel area.
func Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// Encode converts img into a panel frame.
//
// The image is placed with its Bounds().Min at the panel origin on a dark
// 160x40 canvas. Pixels beyond the canvas are ignored, missing pixels are
// dark. A pixel is lit only when it is pure white (see image1bit.IsOn).
// The result is always FrameSize bytes long.
func Encode(img image.Image) []byte {
	if p, ok := img.(*image1bit.VerticalMSB); ok && p.Rect == Bounds() {
		frame := make([]byte, 0, FrameSize)
		frame = append(frame, Header[:]...)
		return append(frame, p.Pix...)
	}
	return encode(img, Width, Height)
}

// encode scans a w x h canvas column by column, packing each group of up to
// 8 rows MSB first. A short final group only shifts in the rows that exist.
func encode(img image.Image, w, h int) []byte {
	groups := (h + 7) / 8
	frame := make([]byte, 0, len(Header)+w*groups)
	frame = append(frame, Header[:]...)

	at := pixelReader(img)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y += 8 {
			var b byte
			for bit := 0; bit < 8; bit++ {
				if y+bit < h {
					b <<= 1
					if at(x, y+bit) {
						b |= 1
					}
				}
			}
			frame = append(frame, b)
		}
	}
	return frame
}

// pixelReader returns a lookup in canvas coordinates that is false outside img.
func pixelReader(img image.Image) func(x, y int) bool {
	r := img.Bounds()
	dx, dy := r.Dx(), r.Dy()
	if p, ok := img.(*image1bit.VerticalMSB); ok {
		return func(x, y int) bool {
			if x >= dx || y >= dy {
				return false
			}
			return bool(p.BitAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return func(x, y int) bool {
		if x >= dx || y >= dy {
			return false
		}
		return image1bit.IsOn(img.At(r.Min.X+x, r.Min.Y+y))
	}
}

// Decode converts a panel frame back into a 160x40 image.
func Decode(frame []byte) (*image1bit.VerticalMSB, error) {
	if len(frame) != FrameSize || frame[0] != Header[0] || frame[1] != Header[1] {
		return nil, ErrInvalidFrame
	}
	img := image1bit.NewVerticalMSB(Bounds())
	copy(img.Pix, frame[len(Header):])
	return img, nil
}
