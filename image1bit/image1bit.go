package image1bit

import (
	"image"
	"image/color"
)

// Bit represents a monochrome pixel: true is lit, false is dark.
type Bit bool

// Panel pixel states.
const (
	On  = Bit(true)
	Off = Bit(false)
)

// RGBA converts the Bit to pure white or pure black.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (c Bit) String() string {
	if c {
		return "On"
	}
	return "Off"
}

// IsOn reports whether c lights a pixel.
// Only the brightest value counts: a Bit(true) or a color whose 16-bit gray
// value is 0xFFFF. Any darker sample, including anti-aliased grays, is off.
func IsOn(c color.Color) bool {
	if b, ok := c.(Bit); ok {
		return bool(b)
	}
	return color.Gray16Model.Convert(c).(color.Gray16).Y == 0xFFFF
}

func toBit(c color.Color) color.Color {
	return Bit(IsOn(c))
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalMSB is a 1-bit image where each byte packs 8 vertically adjacent pixels.
// Bytes are laid out column-major; bit 7 is the topmost pixel of the group.
type VerticalMSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per column
	Rect   image.Rectangle // Image bounds
}

// NewVerticalMSB creates a new VerticalMSB image with the specified bounds.
func NewVerticalMSB(r image.Rectangle) *VerticalMSB {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &VerticalMSB{Rect: r}
	}
	stride := (h + 7) / 8
	return &VerticalMSB{
		Pix:    make([]byte, stride*w),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *VerticalMSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalMSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalMSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y).
func (p *VerticalMSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalMSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, Bit(IsOn(c)))
}

// SetBit sets the Bit of the pixel at (x, y).
func (p *VerticalMSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Clone returns a deep copy of the image.
func (p *VerticalMSB) Clone() *VerticalMSB {
	c := &VerticalMSB{
		Pix:    make([]byte, len(p.Pix)),
		Stride: p.Stride,
		Rect:   p.Rect,
	}
	copy(c.Pix, p.Pix)
	return c
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *VerticalMSB) pixOffset(x, y int) (offset int, mask byte) {
	dy := y - p.Rect.Min.Y
	offset = (x-p.Rect.Min.X)*p.Stride + dy/8
	mask = 0x80 >> uint(dy%8)
	return
}
