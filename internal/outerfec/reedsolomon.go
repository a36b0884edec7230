// Package outerfec layers an optional Reed-Solomon parity code on top of
// the core LT codec, as a last-resort backstop: if peeling stalls with a
// handful of source blocks still unrecovered, and parity shards were
// generated and received, Reconstruct can recover them directly instead of
// giving up.
//
// This is deliberately not Raptor precoding (the spec's Non-goal): it
// never touches degree distributions, neighbor sampling, or the peeling
// graph. It is a wholly separate, optional outer code a caller may layer
// on top, the way a transport might combine an LT stream with an outer
// block code for guaranteed-recovery scenarios.
//
// Grounded on WireGuard-wireguard-go's fec/reedsolomon.go rsProtector:
// same reedsolomon.New construction and Encode/Reconstruct call shape.
package outerfec

import (
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Protector adds and repairs parityShards Reed-Solomon parity blocks over
// a fixed number of dataShards source blocks.
type Protector struct {
	enc                     reedsolomon.Encoder
	dataShards, parityShards int
}

// New constructs a Protector for dataShards source blocks protected by
// parityShards parity blocks.
func New(dataShards, parityShards int) (*Protector, error) {
	enc, err := reedsolomon.New(dataShards, parityShards, reedsolomon.WithAutoGoroutines(65536))
	if err != nil {
		return nil, fmt.Errorf("outerfec: failed to create Reed-Solomon encoder: %w", err)
	}
	return &Protector{enc: enc, dataShards: dataShards, parityShards: parityShards}, nil
}

// NumDataShards returns the configured number of protected data blocks.
func (p *Protector) NumDataShards() int { return p.dataShards }

// NumParityShards returns the configured number of parity blocks.
func (p *Protector) NumParityShards() int { return p.parityShards }

// Encode produces parityShards parity blocks for the given data blocks,
// which must number exactly dataShards and share a common length.
func (p *Protector) Encode(dataBlocks [][]byte) ([][]byte, error) {
	if len(dataBlocks) != p.dataShards {
		return nil, fmt.Errorf("outerfec: expected %d data shards, got %d", p.dataShards, len(dataBlocks))
	}

	shards := make([][]byte, p.dataShards+p.parityShards)
	copy(shards, dataBlocks)
	shardLen := len(dataBlocks[0])
	for i := p.dataShards; i < len(shards); i++ {
		shards[i] = make([]byte, shardLen)
	}

	if err := p.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("outerfec: encode failed: %w", err)
	}
	return shards[p.dataShards:], nil
}

// Reconstruct attempts to recover the dataShards data blocks given
// whatever shards are available; shards[i] == nil marks an erasure.
// shards must have exactly dataShards+parityShards entries, data blocks
// first. On success it returns the dataShards data blocks in order.
func (p *Protector) Reconstruct(shards [][]byte) ([][]byte, error) {
	if len(shards) != p.dataShards+p.parityShards {
		return nil, fmt.Errorf("outerfec: expected %d total shards, got %d", p.dataShards+p.parityShards, len(shards))
	}

	if err := p.enc.ReconstructData(shards); err != nil {
		ok, _ := p.enc.Verify(shards)
		if !ok {
			if err := p.enc.Reconstruct(shards); err != nil {
				return nil, fmt.Errorf("outerfec: reconstruct failed: %w", err)
			}
		}
	}

	out := make([][]byte, p.dataShards)
	for i := 0; i < p.dataShards; i++ {
		if shards[i] == nil {
			return nil, fmt.Errorf("outerfec: data shard %d still missing after reconstruction", i)
		}
		out[i] = shards[i]
	}
	return out, nil
}
