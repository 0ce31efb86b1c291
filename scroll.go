package futaba

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/flavioheleno/futaba/image1bit"
)

// Scroll defaults.
const (
	DefaultStep  = 10
	DefaultDelay = 50 * time.Millisecond
)

// ErrScrollDone is returned when a finished Scroll is run again.
var ErrScrollDone = errors.New("futaba: scroll already finished")

// ScrollOpts is the configuration for a scroll pass.
type ScrollOpts struct {
	Width int           // Window width in pixels (default: 160, must be ≤160)
	Step  int           // Pixels advanced per frame (default: 10)
	Delay time.Duration // Wait after each frame (default: 50ms)

	// Pacer performs the wait after each frame (default: SleepPacer)
	Pacer Pacer
}

// Scroll walks a source image left to right one window at a time.
// A Scroll is single use: once every window has been produced it has to be
// rebuilt with NewScroll to play again.
type Scroll struct {
	src     image.Image
	width   int
	step    int
	delay   time.Duration
	pacer   Pacer
	offsets []int
	next    int
	done    bool
}

// NewScroll creates a scroll pass over src.
//
// opts can be nil to use defaults. Zero fields also take their default.
func NewScroll(src image.Image, opts *ScrollOpts) (*Scroll, error) {
	o := ScrollOpts{}
	if opts != nil {
		o = *opts
	}
	if o.Width == 0 {
		o.Width = Width
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Delay == 0 {
		o.Delay = DefaultDelay
	}
	if o.Pacer == nil {
		o.Pacer = SleepPacer{}
	}

	if o.Width < 0 || o.Width > Width {
		return nil, errors.New("futaba: scroll width must be between 1 and 160")
	}
	if o.Step < 0 {
		return nil, errors.New("futaba: scroll step must be positive")
	}
	if o.Delay < 0 {
		return nil, errors.New("futaba: scroll delay must not be negative")
	}

	return &Scroll{
		src:     src,
		width:   o.Width,
		step:    o.Step,
		delay:   o.Delay,
		pacer:   o.Pacer,
		offsets: Offsets(src.Bounds().Dx(), o.Width, o.Step),
	}, nil
}

// Offsets returns the window offsets for a source of width src scrolled
// through a window of width panel in steps of step.
//
// Offsets run 0, step, 2*step, ... while strictly below src-panel, so the
// final partial window is never shown and a source no wider than the window
// yields none.
func Offsets(src, panel, step int) []int {
	if step <= 0 {
		return nil
	}
	var offsets []int
	for x := 0; x < src-panel; x += step {
		offsets = append(offsets, x)
	}
	return offsets
}

// Len returns the total number of frames in the pass.
func (s *Scroll) Len() int {
	return len(s.offsets)
}

// Next produces the following frame and its window offset.
// ok is false once the pass is exhausted.
func (s *Scroll) Next() (offset int, frame []byte, ok bool) {
	if s.next >= len(s.offsets) {
		return 0, nil, false
	}
	offset = s.offsets[s.next]
	s.next++
	return offset, Encode(s.window(offset)), true
}

// window copies the columns [x, x+width) of the source onto a dark canvas.
func (s *Scroll) window(x int) *image1bit.VerticalMSB {
	r := s.src.Bounds()
	w := image1bit.NewVerticalMSB(image.Rect(0, 0, s.width, r.Dy()))
	draw.Draw(w, w.Rect, s.src, image.Pt(r.Min.X+x, r.Min.Y), draw.Src)
	return w
}

// Run sends every remaining frame to sink, waiting the configured delay after
// each one. The first send or wait error stops the pass and is returned.
func (s *Scroll) Run(ctx context.Context, sink Sink) error {
	if s.done {
		return ErrScrollDone
	}
	s.done = true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		x, frame, ok := s.Next()
		if !ok {
			return nil
		}
		if err := sink.Send(frame); err != nil {
			return fmt.Errorf("futaba: send frame at offset %d: %w", x, err)
		}
		if err := s.pacer.Wait(ctx, s.delay); err != nil {
			return err
		}
	}
}
