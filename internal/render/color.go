// Package render paints the dot grid into a raw 32-bit pixel buffer.
//
// Colors arrive packed as 0xAARRGGBB. The buffer uses the ARGB8888 wire
// format, which is little-endian, so pixel bytes land in B,G,R,A order.
package render

// Pixel is one buffer pixel in B,G,R,A byte order.
type Pixel [4]byte

// pixel expands a packed ARGB color into buffer byte order.
func pixel(c uint32) Pixel {
	return Pixel{byte(c), byte(c >> 8), byte(c >> 16), byte(c >> 24)}
}

// channels splits out the R,G,B channels of a packed ARGB color.
func channels(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// halved returns the color with each channel at half brightness, opaque.
func halved(c uint32) Pixel {
	px := pixel(c)
	return Pixel{px[0] / 2, px[1] / 2, px[2] / 2, 0xFF}
}
