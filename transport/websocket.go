package transport

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket sends frames as binary messages to a serial bridge on the network.
// Each frame is delivered over its own connection.
type WebSocket struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer
}

// NewWebSocket creates a sink that dials url for every frame.
// Only cfg.Timeout is used; it bounds both the handshake and the write.
func NewWebSocket(url string, cfg *Config) *WebSocket {
	c := withDefaults(cfg)
	return &WebSocket{
		url:     url,
		timeout: c.Timeout,
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: c.Timeout,
		},
	}
}

// Send dials the bridge, writes frame in one binary message and closes.
func (w *WebSocket) Send(frame []byte) error {
	conn, _, err := w.dialer.Dial(w.url, nil)
	if err != nil {
		return fmt.Errorf("transport: websocket dial: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(w.timeout)
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("transport: websocket deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("transport: websocket write: %w", err)
	}
	// The frame is already out; a bridge that hangs up first is not an error.
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, deadline)
	return nil
}

// String returns a string representation of the sink.
func (w *WebSocket) String() string {
	return fmt.Sprintf("websocket(%s)", w.url)
}
