package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
)

// ErrNoFrames is returned when WriteGIF is given nothing to encode.
var ErrNoFrames = errors.New("export: no frames")

// WriteGIF encodes BGRA frames as a looping animation with the given
// per-frame delay in hundredths of a second. The painter emits a small
// fixed color set, so every frame is palettized exactly.
func WriteGIF(w io.Writer, frames [][]byte, width, height, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	pal, index, err := buildPalette(frames)
	if err != nil {
		return err
	}
	anim := &gif.GIF{LoopCount: 0}
	for _, buf := range frames {
		img := image.NewPaletted(image.Rect(0, 0, width, height), pal)
		for i, j := 0, 0; i+3 < len(buf) && j < len(img.Pix); i, j = i+4, j+1 {
			img.Pix[j] = index[rgbaAt(buf, i)]
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}

// buildPalette collects the distinct colors across all frames and maps each
// to its palette index.
func buildPalette(frames [][]byte) (color.Palette, map[color.RGBA]uint8, error) {
	index := make(map[color.RGBA]uint8)
	var pal color.Palette
	for _, buf := range frames {
		for i := 0; i+3 < len(buf); i += 4 {
			c := rgbaAt(buf, i)
			if _, ok := index[c]; ok {
				continue
			}
			if len(pal) == 256 {
				return nil, nil, fmt.Errorf("export: frames use more than 256 colors")
			}
			index[c] = uint8(len(pal))
			pal = append(pal, c)
		}
	}
	return pal, index, nil
}

func rgbaAt(buf []byte, i int) color.RGBA {
	return color.RGBA{R: buf[i+2], G: buf[i+1], B: buf[i], A: buf[i+3]}
}
