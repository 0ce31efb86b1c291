package transport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// port is the part of serial.Port used to push a frame.
type port interface {
	io.WriteCloser
	SetReadTimeout(t time.Duration) error
}

// Serial sends frames to a local serial device.
type Serial struct {
	cfg  Config
	open func(name string, mode *serial.Mode) (port, error)
}

// NewSerial creates a sink for the serial device in cfg.Port.
// The line is 8N1 without flow control.
func NewSerial(cfg *Config) *Serial {
	return &Serial{
		cfg: withDefaults(cfg),
		open: func(name string, mode *serial.Mode) (port, error) {
			return serial.Open(name, mode)
		},
	}
}

// Send opens the port, writes frame and closes the port.
func (s *Serial) Send(frame []byte) (err error) {
	if s.cfg.Port == "" {
		return ErrNoPort
	}
	p, err := s.open(s.cfg.Port, &serial.Mode{
		BaudRate: s.cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("transport: open %s: %w", s.cfg.Port, err)
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("transport: close %s: %w", s.cfg.Port, cerr)
		}
	}()

	if err := p.SetReadTimeout(s.cfg.Timeout); err != nil {
		return fmt.Errorf("transport: set timeout on %s: %w", s.cfg.Port, err)
	}
	n, err := p.Write(frame)
	if err != nil {
		return fmt.Errorf("transport: write %s: %w", s.cfg.Port, err)
	}
	if n != len(frame) {
		return fmt.Errorf("transport: write %s: %w", s.cfg.Port, io.ErrShortWrite)
	}
	return nil
}

// String returns a string representation of the sink.
func (s *Serial) String() string {
	return fmt.Sprintf("serial(%s@%d)", s.cfg.Port, s.cfg.Baud)
}
