package walk

// Stats accumulates walk counters for the lifetime of one session.
type Stats struct {
	Steps    int
	Revisits int
}

// Record notes one step landing on (x, y). Call it before Visit so revisit
// detection sees the pre-step counter.
func (s *Stats) Record(g *Grid, x, y int) {
	s.Steps++
	if g.Visits(x, y) > 0 {
		s.Revisits++
	}
}

// Reset clears the counters, used when the grid is rebuilt.
func (s *Stats) Reset() {
	*s = Stats{}
}

// Coverage reports the fraction of cells visited at least once.
func Coverage(g *Grid) float64 {
	visited := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Visits(x, y) > 0 {
				visited++
			}
		}
	}
	return float64(visited) / float64(g.Width()*g.Height())
}
