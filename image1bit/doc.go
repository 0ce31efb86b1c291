// Package image1bit provides a 1-bit image format for the Futaba VFD panel.
//
// The panel memory is scanned column by column. Each column is split into
// groups of 8 vertical pixels and every group is one byte, with the top pixel
// in the most significant bit.
//
// Memory layout example for one 16-pixel-high column:
//
//	Rows:   0 1 2 3 4 5 6 7 | 8 9 ...
//	Pixels: 1 0 0 0 0 0 0 1 | 1 0 ...
//	Bytes:  0x81            | 0x80
//
// A 160x40 VerticalMSB therefore has exactly the byte order of a panel frame
// payload: column 0's five bytes, then column 1's, and so on.
//
// This package provides:
//
// - Bit: A color type representing a lit or dark pixel
// - BitModel: A color model that lights only pure white
// - VerticalMSB: An image.Image implementation matching the panel layout
//
// Example usage:
//
//	img := image1bit.NewVerticalMSB(image.Rect(0, 0, 160, 40))
//	img.SetBit(10, 20, image1bit.On)
//	println(img.BitAt(10, 20)) // Output: true
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package image1bit
