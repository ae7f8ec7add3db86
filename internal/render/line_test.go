package render

import "testing"

func newBuf(w, h int) []byte {
	return make([]byte, w*4*h)
}

func pixelAt(buf []byte, w, x, y int) Pixel {
	i := (y*w + x) * 4
	return Pixel{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func countPixels(buf []byte, px Pixel) int {
	n := 0
	for i := 0; i < len(buf); i += 4 {
		if buf[i] == px[0] && buf[i+1] == px[1] && buf[i+2] == px[2] && buf[i+3] == px[3] {
			n++
		}
	}
	return n
}

var ink = Pixel{1, 2, 3, 0xFF}

func TestDrawLineHorizontal(t *testing.T) {
	buf := newBuf(10, 10)
	DrawLine(buf, 10, 10, 2, 4, 7, 4, ink)
	if got := countPixels(buf, ink); got != 6 {
		t.Errorf("expected 6 pixels, got %d", got)
	}
	for x := 2; x <= 7; x++ {
		if pixelAt(buf, 10, x, 4) != ink {
			t.Errorf("expected ink at (%d,4)", x)
		}
	}
}

func TestDrawLineVertical(t *testing.T) {
	buf := newBuf(10, 10)
	DrawLine(buf, 10, 10, 3, 8, 3, 1, ink) // downward-to-upward order
	if got := countPixels(buf, ink); got != 8 {
		t.Errorf("expected 8 pixels, got %d", got)
	}
	for y := 1; y <= 8; y++ {
		if pixelAt(buf, 10, 3, y) != ink {
			t.Errorf("expected ink at (3,%d)", y)
		}
	}
}

func TestDrawLineDiagonal(t *testing.T) {
	buf := newBuf(10, 10)
	DrawLine(buf, 10, 10, 0, 0, 3, 3, ink)
	if got := countPixels(buf, ink); got != 4 {
		t.Errorf("expected 4 pixels, got %d", got)
	}
	for i := 0; i <= 3; i++ {
		if pixelAt(buf, 10, i, i) != ink {
			t.Errorf("expected ink at (%d,%d)", i, i)
		}
	}
}

func TestDrawLineSinglePoint(t *testing.T) {
	buf := newBuf(5, 5)
	DrawLine(buf, 5, 5, 2, 2, 2, 2, ink)
	if got := countPixels(buf, ink); got != 1 {
		t.Errorf("expected 1 pixel for degenerate line, got %d", got)
	}
	if pixelAt(buf, 5, 2, 2) != ink {
		t.Error("expected ink at (2,2)")
	}
}

func TestDrawLineClipsOffscreen(t *testing.T) {
	buf := newBuf(4, 4)
	// endpoint beyond the right edge: in-bounds prefix still drawn
	DrawLine(buf, 4, 4, 1, 1, 9, 1, ink)
	for x := 1; x < 4; x++ {
		if pixelAt(buf, 4, x, 1) != ink {
			t.Errorf("expected ink at (%d,1)", x)
		}
	}
	if got := countPixels(buf, ink); got != 3 {
		t.Errorf("expected 3 in-bounds pixels, got %d", got)
	}
}

func TestDrawLineFullyOffscreen(t *testing.T) {
	buf := newBuf(4, 4)
	DrawLine(buf, 4, 4, -10, -3, -2, -8, ink) // must terminate without writing
	if got := countPixels(buf, ink); got != 0 {
		t.Errorf("expected no pixels, got %d", got)
	}
}

func TestDrawLineSteep(t *testing.T) {
	buf := newBuf(10, 10)
	DrawLine(buf, 10, 10, 1, 0, 3, 8, ink)
	// one pixel per row along the dominant axis
	for y := 0; y <= 8; y++ {
		found := false
		for x := 0; x < 10; x++ {
			if pixelAt(buf, 10, x, y) == ink {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a pixel in row %d", y)
		}
	}
	if got := countPixels(buf, ink); got != 9 {
		t.Errorf("expected 9 pixels on a steep line, got %d", got)
	}
}
