package render

// DrawLine rasterizes a line from (x0,y0) to (x1,y1) with integer Bresenham
// stepping. Pixels falling outside the buffer are dropped silently, so
// endpoints may lie off-screen.
func DrawLine(buf []byte, width, height, x0, y0, x1, y1 int, px Pixel) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		setPixel(buf, width, height, x0, y0, px)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
