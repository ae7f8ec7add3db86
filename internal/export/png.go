// Package export encodes painted frames to image files.
package export

import (
	"image"
	"image/png"
	"io"
)

// WritePNG encodes one frame as PNG. The buffer holds width*4*height bytes
// in the painter's B,G,R,A order.
func WritePNG(w io.Writer, buf []byte, width, height int) error {
	return png.Encode(w, toRGBA(buf, width, height))
}

// toRGBA swaps the painter's BGRA byte order into image.RGBA.
func toRGBA(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	n := len(buf)
	if len(img.Pix) < n {
		n = len(img.Pix)
	}
	for i := 0; i+3 < n; i += 4 {
		img.Pix[i] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i]
		img.Pix[i+3] = buf[i+3]
	}
	return img
}
