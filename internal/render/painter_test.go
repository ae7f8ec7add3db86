package render

import (
	"bytes"
	"testing"

	"github.com/BjarneSeger/walk-bg/internal/walk"
)

const (
	testBg     = 0xFF1A1A1A
	testFg     = 0xFF606060
	testActive = 0xFFFF0000
)

var (
	bgPx = Pixel{0x1A, 0x1A, 0x1A, 0xFF}
	fgPx = Pixel{0x60, 0x60, 0x60, 0xFF}
)

func testOptions() Options {
	return Options{
		Spacing:   20,
		DotRadius: 2,
		Bg:        testBg,
		Fg:        testFg,
		Active:    testActive,
	}
}

func TestPaintBackgroundAndDots(t *testing.T) {
	const w, h = 40, 40
	buf := newBuf(w, h)
	grid := walk.NewGrid(3, 3) // 40/20+1 per axis
	Paint(buf, w, h, testOptions(), grid, walk.Point{})

	// with zero visits the blend leaves dots exactly at the foreground color
	for i := 0; i < len(buf); i += 4 {
		px := Pixel{buf[i], buf[i+1], buf[i+2], buf[i+3]}
		if px != bgPx && px != fgPx {
			t.Fatalf("unexpected color %v at byte %d", px, i)
		}
	}

	if got := pixelAt(buf, w, 0, 0); got != fgPx {
		t.Errorf("expected dot at origin, got %v", got)
	}
	if got := pixelAt(buf, w, 20, 20); got != fgPx {
		t.Errorf("expected dot at (20,20), got %v", got)
	}
	if got := pixelAt(buf, w, 10, 10); got != bgPx {
		t.Errorf("expected background at (10,10), got %v", got)
	}

	// nine grid centers, clipped at the right and bottom buffer edges:
	// 6+9+3 pixels in the top row of dots, 9+13+4 in the middle, 3+4+1 in
	// the bottom
	if got := countPixels(buf, fgPx); got != 52 {
		t.Errorf("expected 52 dot pixels, got %d", got)
	}
}

func TestPaintIntensityBlend(t *testing.T) {
	const w, h = 40, 40
	buf := newBuf(w, h)
	grid := walk.NewGrid(3, 3)
	for i := 0; i < 5; i++ {
		grid.Visit(1, 1)
	}
	Paint(buf, w, h, testOptions(), grid, walk.Point{})

	// half intensity: each channel moves halfway toward its ceiling
	expected := Pixel{98, 148, 175, 0xFF}
	if got := pixelAt(buf, w, 20, 20); got != expected {
		t.Errorf("expected half-blend %v at (20,20), got %v", expected, got)
	}
	// unvisited neighbors stay at plain foreground
	if got := pixelAt(buf, w, 0, 0); got != fgPx {
		t.Errorf("expected plain dot at origin, got %v", got)
	}
}

func TestPaintIntensitySaturates(t *testing.T) {
	const w, h = 40, 40
	buf := newBuf(w, h)
	grid := walk.NewGrid(3, 3)
	for i := 0; i < 25; i++ {
		grid.Visit(1, 1)
	}
	Paint(buf, w, h, testOptions(), grid, walk.Point{})

	expected := Pixel{100, 200, 255, 0xFF} // channel ceilings
	if got := pixelAt(buf, w, 20, 20); got != expected {
		t.Errorf("expected saturated blend %v, got %v", expected, got)
	}
}

func TestPaintHighlightActive(t *testing.T) {
	const w, h = 40, 40
	buf := newBuf(w, h)
	grid := walk.NewGrid(3, 3)
	opts := testOptions()
	opts.HighlightActive = true
	Paint(buf, w, h, opts, grid, walk.Point{X: 1, Y: 1})

	active := Pixel{0x00, 0x00, 0xFF, 0xFF}
	if got := pixelAt(buf, w, 20, 20); got != active {
		t.Errorf("expected active color at (20,20), got %v", got)
	}
	if got := pixelAt(buf, w, 0, 0); got != fgPx {
		t.Errorf("expected plain dot at origin, got %v", got)
	}
}

func TestPaintEdges(t *testing.T) {
	const w, h = 40, 40
	buf := newBuf(w, h)
	grid := walk.NewGrid(3, 3)
	grid.Visit(0, 0)
	grid.Visit(1, 0)
	opts := testOptions()
	opts.DrawEdges = true
	Paint(buf, w, h, opts, grid, walk.Point{})

	edge := Pixel{0x30, 0x30, 0x30, 0xFF} // foreground at half brightness
	if got := pixelAt(buf, w, 10, 0); got != edge {
		t.Errorf("expected edge pixel between visited dots, got %v", got)
	}
	// no edge toward the unvisited third column
	if got := pixelAt(buf, w, 30, 0); got != bgPx {
		t.Errorf("expected background between unvisited dots, got %v", got)
	}
	// no vertical edge: (0,1) is unvisited
	if got := pixelAt(buf, w, 0, 10); got != bgPx {
		t.Errorf("expected background below origin, got %v", got)
	}
}

func TestPaintEdgesDisabled(t *testing.T) {
	const w, h = 40, 40
	buf := newBuf(w, h)
	grid := walk.NewGrid(3, 3)
	grid.Visit(0, 0)
	grid.Visit(1, 0)
	Paint(buf, w, h, testOptions(), grid, walk.Point{})

	if got := pixelAt(buf, w, 10, 0); got != bgPx {
		t.Errorf("expected no edge when disabled, got %v", got)
	}
}

func TestPaintIdempotent(t *testing.T) {
	const w, h = 60, 40
	grid := walk.NewGrid(4, 3)
	grid.Visit(1, 1)
	grid.Visit(2, 1)
	opts := testOptions()
	opts.DrawEdges = true
	opts.HighlightActive = true

	a := newBuf(w, h)
	b := newBuf(w, h)
	Paint(a, w, h, opts, grid, walk.Point{X: 2, Y: 1})
	Paint(b, w, h, opts, grid, walk.Point{X: 2, Y: 1})
	if !bytes.Equal(a, b) {
		t.Error("expected repeated paints to be byte-identical")
	}

	// painting over a dirty buffer also converges to the same frame
	for i := range b {
		b[i] = 0xAB
	}
	Paint(b, w, h, opts, grid, walk.Point{X: 2, Y: 1})
	if !bytes.Equal(a, b) {
		t.Error("expected paint to fully overwrite stale contents")
	}
}
