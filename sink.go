package futaba

import (
	"context"
	"time"
)

// Sink delivers one frame to the panel.
//
// Implementations acquire the link, write the whole frame and release the
// link on every call, including the failure path. Nothing is read back.
type Sink interface {
	Send(frame []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(frame []byte) error

// Send calls f(frame).
func (f SinkFunc) Send(frame []byte) error {
	return f(frame)
}

// Pacer suspends a scroll between frames.
type Pacer interface {
	// Wait blocks for d or until ctx is done, whichever comes first.
	Wait(ctx context.Context, d time.Duration) error
}

// SleepPacer waits on a timer.
type SleepPacer struct{}

// Wait implements Pacer.
func (SleepPacer) Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
