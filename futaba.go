// Package futaba drives a Futaba VFD module over a write-only serial link.
//
// See the examples for how to use this package.
package futaba

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/futaba/image1bit"
)

var (
	// ErrHalted is returned by every operation on a halted Dev.
	ErrHalted = errors.New("futaba: halted")
	// ErrInvalidPayload is returned by Write for a payload that is not PayloadSize bytes.
	ErrInvalidPayload = errors.New("futaba: invalid payload size")
)

// Dev is the device handle for the Futaba VFD module.
type Dev struct {
	sink Sink

	// Current frame contents
	canvas *image1bit.VerticalMSB

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// New creates a device that sends its frames to s.
//
// No frame is sent until the first Draw, Write or Clear.
func New(s Sink) *Dev {
	return &Dev{
		sink:   s,
		canvas: image1bit.NewVerticalMSB(Bounds()),
	}
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.canvas.Rect
}

// Draw draws src onto the panel and sends the whole frame.
// The dst rectangle specifies the destination region on the display.
// The src image is positioned at src point sp within the destination.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	dst = dst.Intersect(d.canvas.Rect)
	if dst.Empty() {
		return nil
	}

	next := d.canvas.Clone()
	draw.Draw(next, dst, src, sp, draw.Src)
	if err := d.sink.Send(Encode(next)); err != nil {
		return err
	}
	d.canvas = next
	return nil
}

// Write sends a raw payload in panel layout (column-major, 5 bytes per column,
// MSB first). The data must be exactly PayloadSize bytes.
func (d *Dev) Write(payload []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(payload) != PayloadSize {
		return 0, ErrInvalidPayload
	}
	next := image1bit.NewVerticalMSB(Bounds())
	copy(next.Pix, payload)
	if err := d.sink.Send(Encode(next)); err != nil {
		return 0, err
	}
	d.canvas = next
	return len(payload), nil
}

// Clear darkens the whole panel.
func (d *Dev) Clear() error {
	if d.halted {
		return ErrHalted
	}
	return d.clear()
}

func (d *Dev) clear() error {
	next := image1bit.NewVerticalMSB(Bounds())
	if err := d.sink.Send(Encode(next)); err != nil {
		return err
	}
	d.canvas = next
	return nil
}

// Scroll plays src across the panel, see NewScroll for opts.
// The panel keeps showing the last window when Scroll returns.
func (d *Dev) Scroll(ctx context.Context, src image.Image, opts *ScrollOpts) error {
	if d.halted {
		return ErrHalted
	}
	s, err := NewScroll(src, opts)
	if err != nil {
		return err
	}
	return s.Run(ctx, SinkFunc(func(frame []byte) error {
		if err := d.sink.Send(frame); err != nil {
			return err
		}
		if img, err := Decode(frame); err == nil {
			d.canvas = img
		}
		return nil
	}))
}

// Halt blanks the panel.
// After calling Halt, the device rejects further operations.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.clear()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("futaba.Dev{%dx%d}", d.canvas.Rect.Dx(), d.canvas.Rect.Dy())
}
