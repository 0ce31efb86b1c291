package transport

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
	"periph.io/x/conn/v3/uart/uartreg"
)

// UART sends frames through a UART port registered with periph.io.
//
// host.Init() must have been called so the platform drivers are registered.
type UART struct {
	cfg  Config
	open func(name string) (uart.PortCloser, error)
}

// NewUART creates a sink for the periph.io UART port named cfg.Port.
// An empty name selects the first registered port.
func NewUART(cfg *Config) *UART {
	return &UART{
		cfg:  withDefaults(cfg),
		open: uartreg.Open,
	}
}

// Send opens the port, writes frame and closes the port.
func (u *UART) Send(frame []byte) (err error) {
	p, err := u.open(u.cfg.Port)
	if err != nil {
		return fmt.Errorf("transport: open uart %q: %w", u.cfg.Port, err)
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("transport: close %s: %w", p, cerr)
		}
	}()

	c, err := p.Connect(physic.Frequency(u.cfg.Baud)*physic.Hertz, uart.One, uart.NoParity, uart.NoFlow, 8)
	if err != nil {
		return fmt.Errorf("transport: connect %s: %w", p, err)
	}
	if err := c.Tx(frame, nil); err != nil {
		return fmt.Errorf("transport: write %s: %w", p, err)
	}
	return nil
}

// String returns a string representation of the sink.
func (u *UART) String() string {
	return fmt.Sprintf("uart(%s@%d)", u.cfg.Port, u.cfg.Baud)
}
