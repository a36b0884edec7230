package fountain

import (
	"math"
	"sort"
)

const normalizationTolerance = 1e-4

// IdealSolitonPMF returns the Ideal Soliton probability mass function over
// degrees {1..K} as a length K+1 slice (index 0 is reserved, probability 0).
//
//	rho(1) = 1/K
//	rho(d) = 1/(d*(d-1))  for d = 2..K
func IdealSolitonPMF(k int) ([]float64, error) {
	if k < 1 {
		return nil, newError(InvalidParameter, "K must be >= 1, got %d", k)
	}

	p := make([]float64, k+1)
	p[1] = 1 / float64(k)
	for d := 2; d <= k; d++ {
		p[d] = 1 / (float64(d) * float64(d-1))
	}
	return p, validateNormalization(p)
}

// RobustSolitonPMF returns the Robust Soliton probability mass function
// over degrees {1..K}, given an allowed decoder failure probability delta.
//
//	M = floor(K/2) + 1
//	R = K/M
//	tau(d) = 1/(d*M)            for d = 1..M-1
//	tau(M) = ln(R/delta)/M
//	tau(d) = 0                  for d > M
//	mu(d)  = (rho(d) + tau(d)) / beta,  beta = sum(rho(d) + tau(d))
func RobustSolitonPMF(k int, delta float64) ([]float64, error) {
	if k < 1 {
		return nil, newError(InvalidParameter, "K must be >= 1, got %d", k)
	}
	if delta <= 0 || delta >= 1 {
		return nil, newError(InvalidParameter, "delta must be in (0,1), got %f", delta)
	}

	rho, err := IdealSolitonPMF(k)
	if err != nil {
		return nil, err
	}

	m := k/2 + 1
	r := float64(k) / float64(m)

	tau := make([]float64, k+1)
	for d := 1; d < m; d++ {
		tau[d] = 1 / (float64(d) * float64(m))
	}
	tau[m] += math.Log(r/delta) / float64(m)

	p := make([]float64, k+1)
	var beta float64
	for d := 1; d <= k; d++ {
		p[d] = rho[d] + tau[d]
		beta += p[d]
	}
	for d := 1; d <= k; d++ {
		p[d] /= beta
	}

	return p, validateNormalization(p)
}

// PMF dispatches to IdealSolitonPMF or RobustSolitonPMF by Distribution.
func PMF(dist Distribution, k int, delta float64) ([]float64, error) {
	switch dist {
	case DistributionIdeal:
		return IdealSolitonPMF(k)
	case DistributionRobust:
		return RobustSolitonPMF(k, delta)
	default:
		return nil, newError(InvalidParameter, "unknown distribution %v", dist)
	}
}

// validateNormalization is the defensive check spec §4.1 calls for: the
// PMF should always sum to 1 within tolerance given correct arithmetic.
func validateNormalization(p []float64) error {
	var sum float64
	for _, v := range p {
		sum += v
	}
	if math.Abs(sum-1) > normalizationTolerance {
		return newError(Unnormalized, "probabilities sum to %f, want 1±%g", sum, normalizationTolerance)
	}
	return nil
}

// cdf builds the cumulative distribution function from a PMF, so that
// draw can binary-search it the way the teacher's pickDegree does.
func cdf(p []float64) []float64 {
	c := make([]float64, len(p))
	for d := 1; d < len(p); d++ {
		c[d] = c[d-1] + p[d]
	}
	return c
}

// draw picks a degree from the given PMF using r, a uniform draw in [0,1)
// from the caller's RNG. It finds the smallest d such that cdf(d) > r,
// following the teacher's pickDegree search, adapted to guard the
// out-of-bounds index the teacher's version leaves reachable: a PMF only
// sums to 1 within normalizationTolerance, and rand.Float64() can return
// values close enough to 1 that SearchFloat64s returns len(c), so c[d]
// must never be indexed before checking d is still in range.
func draw(r float64, p []float64) int {
	c := cdf(p)
	d := sort.SearchFloat64s(c, r)
	if d >= len(c) {
		return len(c) - 1
	}
	if c[d] > r {
		return d
	}
	if d < len(c)-1 {
		return d + 1
	}
	return len(c) - 1
}
