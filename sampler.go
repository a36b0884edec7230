package fountain

import (
	"math/rand"
	"sort"
)

// Sampler implements NeighborSampler: given a symbol's seed (its own
// index) and a target degree, it deterministically produces that many
// distinct block indices in [0, K). Encoder and Decoder share this type so
// that they agree bit-for-bit on indices given the same (seed, degree, K).
type Sampler struct {
	systematic bool
}

// NewSampler creates a Sampler. When systematic is true, Sample overrides
// the requested degree to 1 for any seed < K, returning that single index
// as the sole neighbor (the systematic-code identity symbols).
func NewSampler(systematic bool) *Sampler {
	return &Sampler{systematic: systematic}
}

// Sample returns the neighbor indices for a symbol with the given seed
// (its index) and requested degree, over K source blocks, plus the
// effective degree (len(indices)).
//
// degree is clamped into [1, K] defensively: the source this spec was
// distilled from draws degrees from a population of [0, N] inclusive,
// which admits degree 0; that value never actually occurs since it has
// probability 0 under both soliton distributions, but a malformed
// transmitted Degree reaching the decoder is clamped rather than trusted.
func (s *Sampler) Sample(seed uint64, degree, k int) ([]int, int) {
	if s.systematic && seed < uint64(k) {
		return []int{int(seed)}, 1
	}

	if degree < 1 {
		degree = 1
	}
	if degree > k {
		degree = k
	}

	rng := rand.New(NewMersenneTwister(int64(seed)))
	indices := sampleUniform(rng, degree, k)
	return indices, len(indices)
}

// sampleUniform picks num distinct numbers from [0, max) uniformly at
// random, returned in sorted order. If num >= max it simply returns every
// index in [0, max) without touching the RNG.
func sampleUniform(rng *rand.Rand, num, max int) []int {
	if num >= max {
		picks := make([]int, max)
		for i := range picks {
			picks[i] = i
		}
		return picks
	}

	picks := make([]int, num)
	seen := make(map[int]bool, num)
	for i := 0; i < num; i++ {
		p := rng.Intn(max)
		for seen[p] {
			p = rng.Intn(max)
		}
		picks[i] = p
		seen[p] = true
	}
	sort.Ints(picks)
	return picks
}
