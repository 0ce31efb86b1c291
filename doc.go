// Package futaba controls a Futaba 160x36 VFD module (AH145AA series) over RS-232C.
//
// The module shows full-screen monochrome bit images. Every update is one
// frame written to the serial line; the module never answers.
// This driver implements the display.Drawer interface from periph.io and
// adds a frame-by-frame horizontal scroller for messages wider than the panel.
//
// # Display Characteristics
//
// - 1-bit monochrome, 160x36 visible dots
// - 160x40 addressable area (the row count is byte aligned)
// - Write-only protocol, 38400 baud, 8N1, no flow control
// - No hardware scrolling: scrolling is done by sending successive frames
//
// Supported modules: AH145AA / AB / AC / BA / BB / BC.
//
// # Frame Format
//
// Each frame is 802 bytes:
//
//	Offset  Length  Content
//	0       1       0x1B
//	1       1       0x20
//	2       800     bit image, column-major
//
// The bit image holds 5 bytes per column, 160 columns. Each byte covers 8
// vertical dots with the top dot in bit 7. Byte 2+x*5+g carries rows
// 8g..8g+7 of column x.
//
// Encode builds a frame from any image.Image. Images smaller than the panel
// are placed at the top-left corner of a dark canvas; anything beyond
// 160x40 is ignored. Only pure white pixels are lit.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//
//		"github.com/flavioheleno/futaba"
//		"github.com/flavioheleno/futaba/image1bit"
//		"github.com/flavioheleno/futaba/transport"
//	)
//
//	func main() {
//		sink := transport.NewSerial(&transport.Config{Port: "/dev/ttyUSB0"})
//		dev := futaba.New(sink)
//		defer dev.Halt()
//
//		img := image1bit.NewVerticalMSB(dev.Bounds())
//		for x := 0; x < 160; x++ {
//			img.SetBit(x, 18, image1bit.On)
//		}
//		dev.Draw(dev.Bounds(), img, image.Point{})
//	}
//
// # Scrolling
//
// A message wider than the panel is shown by walking a 160-dot window over it:
//
//	src, _ := raster.TrueType("Hello, world!", "JF-Dot-Ayu18.ttf", nil)
//	dev.Scroll(ctx, src, &futaba.ScrollOpts{Step: 10, Delay: 50 * time.Millisecond})
//
// Windows start at offsets 0, Step, 2*Step, ... strictly below the source
// width minus the window width. The last partial step is not shown, and a
// source no wider than the window scrolls zero frames. After every frame the
// scroll waits Delay; cancelling ctx interrupts the wait.
//
// # Transports
//
// The serial link is opened for each frame and closed right after it, so
// the port is free between frames. The transport package provides sinks for
// a local tty, a periph.io UART and a websocket bridge; the preview package
// shows frames in a desktop window.
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a display.Drawer.
package futaba
