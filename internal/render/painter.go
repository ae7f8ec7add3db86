package render

import "github.com/BjarneSeger/walk-bg/internal/walk"

// saturationVisits is the visit count at which a dot's warm highlight
// reaches full intensity.
const saturationVisits = 10.0

// Per-channel ceilings the dot color is blended toward as a cell
// accumulates visits. Asymmetric so repeated visits shift warm.
const (
	ceilingR = 255.0
	ceilingG = 200.0
	ceilingB = 100.0
)

// Options carries the visual parameters for one frame.
type Options struct {
	Spacing         int // pixels between neighboring grid points
	DotRadius       int
	Bg              uint32 // packed ARGB
	Fg              uint32
	Active          uint32
	DrawEdges       bool
	HighlightActive bool
}

// Paint renders the full frame into buf, which must hold width*4*height
// bytes: background first, then one dot per grid cell with its color graded
// by visit count, connective edges between visited neighbors when enabled,
// and the active cell override. Painting the same inputs twice produces
// byte-identical output.
func Paint(buf []byte, width, height int, opts Options, grid *walk.Grid, cur walk.Point) {
	fill(buf, pixel(opts.Bg))

	fgR, fgG, fgB := channels(opts.Fg)
	edge := halved(opts.Fg)

	for gy := 0; gy < grid.Height(); gy++ {
		for gx := 0; gx < grid.Width(); gx++ {
			visits := grid.Visits(gx, gy)

			intensity := float64(visits) / saturationVisits
			if intensity > 1 {
				intensity = 1
			}
			r := uint8(float64(fgR) + (ceilingR-float64(fgR))*intensity)
			g := uint8(float64(fgG) + (ceilingG-float64(fgG))*intensity)
			b := uint8(float64(fgB) + (ceilingB-float64(fgB))*intensity)

			if opts.HighlightActive && gx == cur.X && gy == cur.Y {
				r, g, b = channels(opts.Active)
			}

			cx := gx * opts.Spacing
			cy := gy * opts.Spacing

			if opts.DrawEdges && visits > 0 {
				if gx+1 < grid.Width() && grid.Visits(gx+1, gy) > 0 {
					DrawLine(buf, width, height, cx, cy, cx+opts.Spacing, cy, edge)
				}
				if gy+1 < grid.Height() && grid.Visits(gx, gy+1) > 0 {
					DrawLine(buf, width, height, cx, cy, cx, cy+opts.Spacing, edge)
				}
			}

			fillDisk(buf, width, height, cx, cy, opts.DotRadius, Pixel{b, g, r, 0xFF})
		}
	}
}

// fill floods every pixel of the buffer with one color.
func fill(buf []byte, px Pixel) {
	for i := 0; i < len(buf); i += 4 {
		buf[i] = px[0]
		buf[i+1] = px[1]
		buf[i+2] = px[2]
		buf[i+3] = px[3]
	}
}

// setPixel writes one pixel, silently dropping out-of-bounds writes.
func setPixel(buf []byte, width, height, x, y int, px Pixel) {
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	i := (y*width + x) * 4
	buf[i] = px[0]
	buf[i+1] = px[1]
	buf[i+2] = px[2]
	buf[i+3] = px[3]
}

// fillDisk draws a filled circle around (cx,cy): every offset satisfying
// dx*dx+dy*dy <= r*r.
func fillDisk(buf []byte, width, height, cx, cy, radius int, px Pixel) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(buf, width, height, cx+dx, cy+dy, px)
			}
		}
	}
}
