package walk

import "math/rand/v2"

// Stepper advances the random walk. It wraps a PCG source so a fixed seed
// reproduces the same walk.
type Stepper struct {
	rng *rand.Rand
}

// NewStepper returns a stepper seeded with the given value.
func NewStepper(seed int64) *Stepper {
	return &Stepper{rng: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Step picks one of the four cardinal directions uniformly and returns the
// position after moving from (x, y). A move off a grid edge clamps to the
// edge, so the position always stays within width x height.
func (s *Stepper) Step(x, y, width, height int) (int, int) {
	switch s.rng.IntN(4) {
	case 0: // up
		if y > 0 {
			y--
		}
	case 1: // right
		if x < width-1 {
			x++
		}
	case 2: // down
		if y < height-1 {
			y++
		}
	case 3: // left
		if x > 0 {
			x--
		}
	}
	return x, y
}
