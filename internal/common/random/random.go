// internal/common/random/random.go

// Package random abstracts the pseudo-random draws used for business-critical
// selection (premiums, risk scores, representative picks) so tests can supply
// deterministic sequences.
package random

import (
	"math/rand"
	"time"
)

// Source is the subset of math/rand used by the workers.
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

type prng struct {
	r *rand.Rand
}

func (p *prng) Intn(n int) int   { return p.r.Intn(n) }
func (p *prng) Float64() float64 { return p.r.Float64() }

// New returns a time-seeded production source.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a source with a fixed seed, reproducible across runs.
func NewSeeded(seed int64) Source {
	return &prng{r: rand.New(rand.NewSource(seed))}
}

// Sequence replays fixed values: Float64 consumes Floats in order (cycling),
// Intn consumes Ints modulo n. Intended for tests.
type Sequence struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn with non-positive n")
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return v % n
}
