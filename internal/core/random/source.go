// Package random provides the deterministic pseudo-random source behind every
// roll in the system, plus cryptographic seed generation for new streams.
//
// The mix constants and the order of operations in Next are part of the
// public contract: a stream must be reproducible on any platform, forever.
package random

const (
	// goldenGamma is the per-draw state increment (2^64 / golden ratio).
	goldenGamma uint64 = 0x9E3779B97F4A7C15
	mixMul1     uint64 = 0xBF58476D1CE4E5B9
	mixMul2     uint64 = 0x94D049BB133111EB

	// ZeroSeed replaces a zero seed so the stream never starts from the
	// all-zero state.
	ZeroSeed uint64 = 0x853C49E6748FEA9B
)

// Source is a seeded SplitMix64 generator. It is not safe for concurrent use;
// each roll session owns its own Source.
type Source struct {
	seed  uint64
	state uint64
	draws uint64
}

// New returns a Source for seed. A zero seed is remapped to ZeroSeed.
func New(seed uint64) *Source {
	if seed == 0 {
		seed = ZeroSeed
	}
	return &Source{seed: seed, state: seed}
}

// Seed returns the effective seed of the stream.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Draws returns how many values have been drawn since construction.
func (s *Source) Draws() uint64 {
	return s.draws
}

// Next advances the stream and returns the next 64-bit value.
func (s *Source) Next() uint64 {
	s.state += goldenGamma
	s.draws++
	z := s.state
	z = (z ^ (z >> 30)) * mixMul1
	z = (z ^ (z >> 27)) * mixMul2
	return z ^ (z >> 31)
}

// NextBounded returns a value in [0, n) taken as the raw value modulo n.
// A non-positive bound still advances the stream and returns 0.
func (s *Source) NextBounded(n int) int {
	value := s.Next()
	if n <= 0 {
		return 0
	}
	return int(value % uint64(n))
}

// Skip advances the stream by count draws, discarding the values. The state
// after n draws is seed + n*goldenGamma, so skipping costs the same for any
// count.
func (s *Source) Skip(count uint64) {
	s.state += count * goldenGamma
	s.draws += count
}
