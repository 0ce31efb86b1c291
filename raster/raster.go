// Package raster turns text into 1-bit images ready to be scrolled on the panel.
//
// TrueType fonts are drawn with fogleman/gg and built-in bitmap fonts with
// tinyfont. Both produce an image of fixed height whose width only depends on
// the text and font, then enlarge it with Scale.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/flavioheleno/futaba/image1bit"
)

// Opts is the configuration for rendering text.
type Opts struct {
	Height  int // Font size in pixels before scaling (default: 18, TrueType only)
	Scale   int // Integer enlargement on both axes (default: 2)
	OffsetY int // Vertical shift of the glyphs in pixels before scaling
}

// DefaultOpts renders an 18 pixel font doubled to 36 rows, the visible panel height.
var DefaultOpts = Opts{Height: 18, Scale: 2, OffsetY: -1}

// DefaultFont is the bitmap font used when no TrueType font is given.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

func resolve(opts *Opts) (Opts, error) {
	if opts == nil {
		return DefaultOpts, nil
	}
	o := *opts
	if o.Height == 0 {
		o.Height = DefaultOpts.Height
	}
	if o.Scale == 0 {
		o.Scale = DefaultOpts.Scale
	}
	if o.Height < 0 {
		return o, errors.New("raster: height must be positive")
	}
	if o.Scale < 0 {
		return o, errors.New("raster: scale must be positive")
	}
	return o, nil
}

// TrueType renders text with the TrueType font at fontPath.
//
// The unscaled image is opts.Height rows high and as wide as the advance of
// the text. The top of the font's ascent sits at row opts.OffsetY. Glyph
// coverage of at least half intensity lights a pixel.
func TrueType(text, fontPath string, opts *Opts) (*image1bit.VerticalMSB, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	face, err := gg.LoadFontFace(fontPath, float64(o.Height))
	if err != nil {
		return nil, fmt.Errorf("raster: load font %s: %w", fontPath, err)
	}
	defer face.Close()

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	w, _ := measure.MeasureString(text)
	width := int(math.Ceil(w))
	if width <= 0 {
		return image1bit.NewVerticalMSB(image.Rect(0, 0, 0, o.Height*o.Scale)), nil
	}

	dc := gg.NewContext(width, o.Height)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawString(text, 0, float64(face.Metrics().Ascent.Ceil()+o.OffsetY))

	return Scale(threshold(dc.Image()), o.Scale, o.Scale), nil
}

// Bitmap renders text with a tinyfont bitmap font, DefaultFont when f is nil.
//
// The unscaled image is as high as the font line advance and as wide as the
// outbox width of the text. opts.Height is ignored.
func Bitmap(text string, f tinyfont.Fonter, opts *Opts) (*image1bit.VerticalMSB, error) {
	o, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = DefaultFont
	}

	h := int(f.GetYAdvance())
	_, w := tinyfont.LineWidth(f, text)
	img := image1bit.NewVerticalMSB(image.Rect(0, 0, int(w), h))
	if w > 0 && h > 0 {
		baseline := h - h/4 + o.OffsetY
		tinyfont.WriteLine(canvas{img}, f, 0, int16(baseline), text, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	}
	return Scale(img, o.Scale, o.Scale), nil
}

// canvas lets tinyfont draw into a VerticalMSB.
type canvas struct {
	img *image1bit.VerticalMSB
}

var _ drivers.Displayer = canvas{}

func (c canvas) Size() (x, y int16) {
	return int16(c.img.Rect.Dx()), int16(c.img.Rect.Dy())
}

func (c canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetBit(int(x), int(y), image1bit.Bit(col.R|col.G|col.B != 0))
}

func (c canvas) Display() error {
	return nil
}

// threshold converts img to 1-bit, lighting pixels of at least half intensity.
func threshold(img image.Image) *image1bit.VerticalMSB {
	r := img.Bounds()
	dst := image1bit.NewVerticalMSB(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if g.Y >= 0x80 {
				dst.SetBit(x-r.Min.X, y-r.Min.Y, image1bit.On)
			}
		}
	}
	return dst
}

// Scale enlarges img by integer factors using nearest-neighbor sampling.
// The result starts at the origin. Factors must be at least 1.
func Scale(img image.Image, fx, fy int) *image1bit.VerticalMSB {
	if fx < 1 || fy < 1 {
		panic("raster: scale factors must be positive")
	}
	r := img.Bounds()
	dst := image1bit.NewVerticalMSB(image.Rect(0, 0, r.Dx()*fx, r.Dy()*fy))
	if r.Empty() {
		return dst
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, img, r, xdraw.Src, nil)
	return dst
}
