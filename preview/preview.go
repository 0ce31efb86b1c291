// Package preview shows panel frames in a desktop window.
//
// Window is a futaba.Sink, so a scroll can be checked without the module
// attached. Lit dots are drawn in VFD cyan on black.
package preview

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/flavioheleno/futaba"
)

// Zoom is the default number of screen pixels per panel dot.
const Zoom = 4

// ErrClosed is returned by Send after the window has been closed.
var ErrClosed = errors.New("preview: window closed")

var (
	dotOn  = color.RGBA{R: 0x40, G: 0xFF, B: 0xE0, A: 0xFF}
	dotOff = color.RGBA{A: 0xFF}
)

// Window renders the most recent frame it was sent.
type Window struct {
	mu     sync.Mutex
	frame  *image.RGBA
	dirty  bool
	closed bool

	img  *ebiten.Image
	zoom int
}

// New creates a preview window. zoom <= 0 uses Zoom.
func New(zoom int) *Window {
	if zoom <= 0 {
		zoom = Zoom
	}
	return &Window{
		frame: image.NewRGBA(futaba.Bounds()),
		zoom:  zoom,
	}
}

// Send decodes frame and schedules it for display.
func (w *Window) Send(frame []byte) error {
	img, err := futaba.Decode(frame)
	if err != nil {
		return err
	}

	rgba := image.NewRGBA(img.Rect)
	for x := 0; x < futaba.Width; x++ {
		for y := 0; y < futaba.Height; y++ {
			c := dotOff
			if img.BitAt(x, y) {
				c = dotOn
			}
			rgba.SetRGBA(x, y, c)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.frame = rgba
	w.dirty = true
	return nil
}

// Run opens the window and blocks until it is closed.
// Must be called from the main goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowSize(futaba.Width*w.zoom, futaba.Height*w.zoom)
	ebiten.SetWindowTitle("Futaba VFD preview")
	err := ebiten.RunGame(w)

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close ends Run at the next update.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// --- ebiten.Game interface ---

func (w *Window) Update() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	if w.img == nil {
		w.img = ebiten.NewImage(futaba.Width, futaba.Height)
		w.dirty = true
	}
	if w.dirty {
		w.img.WritePixels(w.frame.Pix)
		w.dirty = false
	}
	w.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.zoom), float64(w.zoom))
	screen.DrawImage(w.img, op)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return futaba.Width * w.zoom, futaba.Height * w.zoom
}
