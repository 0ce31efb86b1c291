// Package transport provides futaba.Sink implementations for the VFD link.
//
// Every sink opens its link for a single frame and closes it before Send
// returns, on success and on failure alike.
package transport

import (
	"errors"
	"time"
)

// Link defaults for the Futaba module.
const (
	DefaultBaud    = 38400
	DefaultTimeout = time.Second
)

// Config is the link configuration shared by the sinks.
type Config struct {
	Port    string        // Device path or registry name, e.g. "/dev/ttyUSB0" or "COM4"
	Baud    int           // Line speed (default: 38400)
	Timeout time.Duration // Read/write timeout (default: 1s)
}

// ErrNoPort is returned when a serial sink has no port configured.
var ErrNoPort = errors.New("transport: no port configured")

// withDefaults returns a copy of cfg with zero fields set to their defaults.
func withDefaults(cfg *Config) Config {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
