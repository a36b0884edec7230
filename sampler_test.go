package fountain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSampler_Deterministic(t *testing.T) {
	s := NewSampler(false)

	a, da := s.Sample(42, 5, 100)
	b, db := s.Sample(42, 5, 100)

	assert.Equal(t, da, db)
	assert.Equal(t, a, b)
}

func TestSampler_DistinctNeighbors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(1, 500).Draw(t, "k")
		degree := rapid.IntRange(1, k).Draw(t, "degree")
		seed := rapid.Uint64().Draw(t, "seed")

		s := NewSampler(false)
		indices, effective := s.Sample(seed, degree, k)

		assert.Equal(t, degree, effective)
		assert.Len(t, indices, degree)

		seen := make(map[int]bool, len(indices))
		for _, idx := range indices {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, k)
			assert.False(t, seen[idx], "duplicate neighbor index %d", idx)
			seen[idx] = true
		}
	})
}

func TestSampler_SystematicIdentity(t *testing.T) {
	s := NewSampler(true)

	indices, degree := s.Sample(3, 7, 10)
	assert.Equal(t, 1, degree)
	assert.Equal(t, []int{3}, indices)

	// Beyond K, systematic override no longer applies.
	indices, degree = s.Sample(12, 7, 10)
	assert.Equal(t, 7, degree)
	assert.Len(t, indices, 7)
}

func TestSampler_DegreeClampedToK(t *testing.T) {
	s := NewSampler(false)

	indices, degree := s.Sample(1, 1000, 5)
	assert.Equal(t, 5, degree)
	assert.Len(t, indices, 5)
}

func TestSampler_ZeroDegreeClampedToOne(t *testing.T) {
	s := NewSampler(false)

	indices, degree := s.Sample(1, 0, 5)
	assert.Equal(t, 1, degree)
	assert.Len(t, indices, 1)
}
