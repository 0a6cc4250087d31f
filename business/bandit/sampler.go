package bandit

import (
	"math"
	"math/rand"
	"sync"
)

// RandomSource yields uniform draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSource returns a goroutine-safe source seeded with seed.
func NewRandSource(seed int64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// nonZero redraws until the uniform is usable as a log or root argument.
func nonZero(rng RandomSource) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return u
}

// normalSample is a Box–Muller standard normal draw.
func normalSample(rng RandomSource) float64 {
	u1 := nonZero(rng)
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// gammaSample draws Gamma(shape, 1) with the Marsaglia–Tsang squeeze.
func gammaSample(rng RandomSource, shape float64) float64 {
	if shape < 1 {
		return gammaSample(rng, shape+1) * math.Pow(nonZero(rng), 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)

	for {
		var x, v float64
		for {
			x = normalSample(rng)
			v = 1 + c*x
			if v > 0 {
				break
			}
		}

		v = v * v * v
		u := rng.Float64()

		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// betaSample draws Beta(a, b) as a ratio of two gamma draws.
func betaSample(rng RandomSource, a, b float64) float64 {
	g1 := gammaSample(rng, a)
	g2 := gammaSample(rng, b)
	if g1+g2 == 0 {
		return 0.5
	}
	return g1 / (g1 + g2)
}

// PickIndex returns a uniform index in [0, n).
func PickIndex(rng RandomSource, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
