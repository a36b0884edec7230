package chunking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumBlocks(t *testing.T) {
	assert.Equal(t, 1, NumBlocks(0, 8))
	assert.Equal(t, 1, NumBlocks(8, 8))
	assert.Equal(t, 2, NumBlocks(9, 8))
	assert.Equal(t, 3, NumBlocks(17, 8))
}

func TestSplit_PadsFinalBlock(t *testing.T) {
	data := []byte("hello!")
	blocks := Split(data, 2, 4)

	assert.Len(t, blocks, 2)
	assert.Equal(t, []byte("hell"), blocks[0])
	assert.Equal(t, []byte{'o', '!', 0, 0}, blocks[1])
}

func TestSplitThenJoin_RoundTrips(t *testing.T) {
	data := []byte("the quick brown fox jumps")
	k := NumBlocks(len(data), 4)

	blocks := Split(data, k, 4)
	joined := Join(blocks, len(data))

	assert.Equal(t, data, joined)
}

func TestJoin_TreatsNilBlockAsZero(t *testing.T) {
	blocks := [][]byte{{1, 2}, nil, {5, 6}}
	joined := Join(blocks, 6)

	assert.Equal(t, []byte{1, 2, 0, 0, 5, 6}, joined)
}

func TestJoin_TruncatesToTotalLength(t *testing.T) {
	blocks := [][]byte{{1, 2, 3, 4}}
	joined := Join(blocks, 2)

	assert.Equal(t, []byte{1, 2}, joined)
}
