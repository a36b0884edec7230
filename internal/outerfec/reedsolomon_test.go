package outerfec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeShards(n, size int, fill byte) [][]byte {
	shards := make([][]byte, n)
	for i := range shards {
		b := make([]byte, size)
		for j := range b {
			b[j] = fill + byte(i)
		}
		shards[i] = b
	}
	return shards
}

func TestProtector_EncodeProducesRequestedParityCount(t *testing.T) {
	p, err := New(4, 2)
	require.NoError(t, err)

	data := makeShards(4, 16, 1)
	parity, err := p.Encode(data)
	require.NoError(t, err)
	assert.Len(t, parity, 2)
}

func TestProtector_ReconstructRecoversErasedDataShards(t *testing.T) {
	p, err := New(4, 2)
	require.NoError(t, err)

	data := makeShards(4, 16, 1)
	parity, err := p.Encode(data)
	require.NoError(t, err)

	shards := append(append([][]byte{}, data...), parity...)
	shards[1] = nil
	shards[3] = nil

	recovered, err := p.Reconstruct(shards)
	require.NoError(t, err)
	assert.Equal(t, data, recovered)
}

func TestProtector_ReconstructFailsBeyondParityCapacity(t *testing.T) {
	p, err := New(4, 1)
	require.NoError(t, err)

	data := makeShards(4, 16, 1)
	parity, err := p.Encode(data)
	require.NoError(t, err)

	shards := append(append([][]byte{}, data...), parity...)
	shards[0] = nil
	shards[1] = nil

	_, err = p.Reconstruct(shards)
	assert.Error(t, err)
}

func TestNew_RejectsBadShardCounts(t *testing.T) {
	_, err := New(0, 2)
	assert.Error(t, err)
}
