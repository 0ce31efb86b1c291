package futaba

import (
	"bytes"
	"context"
	"errors"
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/flavioheleno/futaba/image1bit"
)

// recordSink keeps every frame and fails on call number failAt (1-based).
type recordSink struct {
	frames [][]byte
	failAt int
	err    error
}

func (s *recordSink) Send(frame []byte) error {
	s.frames = append(s.frames, append([]byte(nil), frame...))
	if s.failAt > 0 && len(s.frames) == s.failAt {
		return s.err
	}
	return nil
}

// recordPacer keeps every requested delay without sleeping.
type recordPacer struct {
	waits []time.Duration
	err   error
}

func (p *recordPacer) Wait(ctx context.Context, d time.Duration) error {
	p.waits = append(p.waits, d)
	return p.err
}

// stripes returns a source where column x is lit on row x%height.
func stripes(w, h int) *image1bit.VerticalMSB {
	img := image1bit.NewVerticalMSB(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.SetBit(x, x%h, image1bit.On)
	}
	return img
}

func TestOffsets(t *testing.T) {
	tests := []struct {
		name              string
		src, panel, step int
		want              []int
	}{
		{"exact multiple", 200, 160, 10, []int{0, 10, 20, 30}},
		{"partial tail dropped", 205, 160, 10, []int{0, 10, 20, 30, 40}},
		{"one step short", 170, 160, 10, []int{0}},
		{"same width", 160, 160, 10, nil},
		{"narrower source", 100, 160, 10, nil},
		{"step larger than span", 200, 160, 50, []int{0}},
		{"step one", 163, 160, 1, []int{0, 1, 2}},
		{"zero step", 200, 160, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offsets(tt.src, tt.panel, tt.step)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Offsets(%d, %d, %d) = %v, want %v", tt.src, tt.panel, tt.step, got, tt.want)
			}
		})
	}
}

func TestNewScrollDefaults(t *testing.T) {
	s, err := NewScroll(stripes(200, 36), nil)
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}
	if s.width != Width {
		t.Errorf("width = %d, want %d", s.width, Width)
	}
	if s.step != DefaultStep {
		t.Errorf("step = %d, want %d", s.step, DefaultStep)
	}
	if s.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", s.delay, DefaultDelay)
	}
	if _, ok := s.pacer.(SleepPacer); !ok {
		t.Errorf("pacer = %T, want SleepPacer", s.pacer)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestNewScrollValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    *ScrollOpts
		wantErr bool
	}{
		{"nil options (uses defaults)", nil, false},
		{"zero options (uses defaults)", &ScrollOpts{}, false},
		{"narrow window", &ScrollOpts{Width: 80}, false},
		{"full window", &ScrollOpts{Width: 160}, false},
		{"window wider than panel", &ScrollOpts{Width: 161}, true},
		{"negative width", &ScrollOpts{Width: -1}, true},
		{"negative step", &ScrollOpts{Step: -10}, true},
		{"negative delay", &ScrollOpts{Delay: -time.Millisecond}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScroll(stripes(200, 36), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewScroll() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScrollRun(t *testing.T) {
	src := stripes(200, 36)
	pacer := &recordPacer{}
	s, err := NewScroll(src, &ScrollOpts{Pacer: pacer})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}

	sink := &recordSink{}
	if err := s.Run(context.Background(), sink); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sink.frames) != 4 {
		t.Fatalf("frames sent = %d, want 4", len(sink.frames))
	}
	for i, frame := range sink.frames {
		x := i * 10
		window := image1bit.NewVerticalMSB(image.Rect(0, 0, 160, 36))
		for wx := 0; wx < 160; wx++ {
			window.SetBit(wx, (x+wx)%36, image1bit.On)
		}
		if want := Encode(window); !bytes.Equal(frame, want) {
			t.Errorf("frame %d does not match the window at offset %d", i, x)
		}
	}

	wantWaits := []time.Duration{DefaultDelay, DefaultDelay, DefaultDelay, DefaultDelay}
	if !reflect.DeepEqual(pacer.waits, wantWaits) {
		t.Errorf("waits = %v, want %v", pacer.waits, wantWaits)
	}
}

func TestScrollNext(t *testing.T) {
	src := stripes(200, 40)
	s, err := NewScroll(src, &ScrollOpts{Step: 20})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}

	var offsets []int
	for {
		x, frame, ok := s.Next()
		if !ok {
			break
		}
		offsets = append(offsets, x)

		img, err := Decode(frame)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		for wx := 0; wx < 160; wx++ {
			if !img.BitAt(wx, (x+wx)%40) {
				t.Errorf("offset %d: column %d missing its lit pixel", x, wx)
			}
		}
	}

	if want := []int{0, 20}; !reflect.DeepEqual(offsets, want) {
		t.Errorf("offsets = %v, want %v", offsets, want)
	}
}

func TestScrollNarrowWindow(t *testing.T) {
	src := image1bit.NewVerticalMSB(image.Rect(0, 0, 100, 40))
	src.SetBit(90, 0, image1bit.On)

	s, err := NewScroll(src, &ScrollOpts{Width: 80, Step: 10, Pacer: &recordPacer{}})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}
	sink := &recordSink{}
	if err := s.Run(context.Background(), sink); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sink.frames) != 2 {
		t.Fatalf("frames sent = %d, want 2", len(sink.frames))
	}
	// Offset 10 shows source column 90 at window column 80, outside an 80-wide window.
	for i, frame := range sink.frames {
		for j, b := range frame[2:] {
			if b != 0 {
				t.Errorf("frame %d byte %d = 0x%02X, want dark panel", i, j+2, b)
			}
		}
	}
}

func TestScrollOffsetSource(t *testing.T) {
	src := image1bit.NewVerticalMSB(image.Rect(-20, 5, 180, 45))
	src.SetBit(-10, 5, image1bit.On)

	s, err := NewScroll(src, &ScrollOpts{Pacer: &recordPacer{}})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}
	sink := &recordSink{}
	if err := s.Run(context.Background(), sink); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if sink.frames[0][2+10*5] != 0x80 {
		t.Errorf("frame 0 column 10 = 0x%02X, want 0x80", sink.frames[0][2+10*5])
	}
	if sink.frames[1][2] != 0x80 {
		t.Errorf("frame 1 column 0 = 0x%02X, want 0x80", sink.frames[1][2])
	}
}

func TestScrollEmpty(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{"same width", 160},
		{"narrower", 40},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pacer := &recordPacer{}
			s, err := NewScroll(image1bit.NewVerticalMSB(image.Rect(0, 0, tt.width, 36)), &ScrollOpts{Pacer: pacer})
			if err != nil {
				t.Fatalf("NewScroll() error = %v", err)
			}
			sink := &recordSink{}
			if err := s.Run(context.Background(), sink); err != nil {
				t.Errorf("Run() error = %v, want nil", err)
			}
			if len(sink.frames) != 0 || len(pacer.waits) != 0 {
				t.Errorf("sent %d frames and waited %d times, want none", len(sink.frames), len(pacer.waits))
			}
		})
	}
}

func TestScrollAbortOnSendFailure(t *testing.T) {
	errLink := errors.New("link down")
	pacer := &recordPacer{}
	s, err := NewScroll(stripes(200, 36), &ScrollOpts{Pacer: pacer})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}

	sink := &recordSink{failAt: 2, err: errLink}
	err = s.Run(context.Background(), sink)
	if !errors.Is(err, errLink) {
		t.Fatalf("Run() error = %v, want %v", err, errLink)
	}
	if len(sink.frames) != 2 {
		t.Errorf("writes = %d, want 2", len(sink.frames))
	}
	if len(pacer.waits) != 1 {
		t.Errorf("waits = %d, want 1", len(pacer.waits))
	}
}

func TestScrollNotRestartable(t *testing.T) {
	s, err := NewScroll(stripes(200, 36), &ScrollOpts{Pacer: &recordPacer{}})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}
	if err := s.Run(context.Background(), &recordSink{}); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	sink := &recordSink{}
	if err := s.Run(context.Background(), sink); !errors.Is(err, ErrScrollDone) {
		t.Errorf("second Run() error = %v, want %v", err, ErrScrollDone)
	}
	if len(sink.frames) != 0 {
		t.Errorf("second Run() sent %d frames, want 0", len(sink.frames))
	}
}

func TestScrollPacerError(t *testing.T) {
	pacer := &recordPacer{err: context.Canceled}
	s, err := NewScroll(stripes(200, 36), &ScrollOpts{Pacer: pacer})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}

	sink := &recordSink{}
	if err := s.Run(context.Background(), sink); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
	if len(sink.frames) != 1 {
		t.Errorf("writes = %d, want 1", len(sink.frames))
	}
}

func TestScrollCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := NewScroll(stripes(200, 36), &ScrollOpts{Pacer: &recordPacer{}})
	if err != nil {
		t.Fatalf("NewScroll() error = %v", err)
	}
	sink := &recordSink{}
	if err := s.Run(ctx, sink); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
	if len(sink.frames) != 0 {
		t.Errorf("writes = %d, want 0", len(sink.frames))
	}
}

func TestSleepPacer(t *testing.T) {
	var p SleepPacer

	start := time.Now()
	if err := p.Wait(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Wait() returned after %v, want at least 20ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)
	start = time.Now()
	if err := p.Wait(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want %v", err, context.Canceled)
	}
	if elapsed := time.Since(start); elapsed > time.Minute {
		t.Errorf("cancelled Wait() took %v", elapsed)
	}

	if err := p.Wait(context.Background(), 0); err != nil {
		t.Errorf("Wait(0) error = %v", err)
	}
}

func TestSinkFunc(t *testing.T) {
	var got []byte
	s := SinkFunc(func(frame []byte) error {
		got = frame
		return nil
	})
	if err := s.Send([]byte{1, 2}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("SinkFunc received % X, want 01 02", got)
	}
}
