package fountain

import (
	"math"

	"go.uber.org/zap"
)

// Distribution selects the degree distribution family an Encoder and
// Decoder use to draw/interpret symbol degrees.
type Distribution int

const (
	// DistributionIdeal is the Ideal Soliton distribution.
	DistributionIdeal Distribution = iota
	// DistributionRobust is the Robust Soliton distribution, the
	// practical default: it adds the spike at M that the Ideal Soliton
	// lacks, eliminating the long tail of unsolved blocks.
	DistributionRobust
)

// Config is the explicit, immutable configuration passed to NewEncoder and
// NewDecoder. There is no package-level mutable state anywhere in this
// package; every parameter that affects encoding or decoding flows through
// a Config value.
type Config struct {
	// PacketSize is the number of bytes per source/encoded block. Default 65536.
	PacketSize int

	// WordWidth is 1, 2, 4, or 8: the XOR granularity. It must evenly
	// divide PacketSize. It affects throughput only, never semantics.
	WordWidth int

	// Systematic, when true, makes symbols with Index < K identity copies
	// of the corresponding source block.
	Systematic bool

	// RobustFailureProbability is delta, the allowed failure probability
	// fed into the Robust Soliton spike at M. Default 0.01.
	RobustFailureProbability float64

	// Distribution selects Ideal or Robust Soliton. Default DistributionRobust.
	Distribution Distribution

	// Redundancy is a caller-side convenience: NumDrops computes
	// N = ceil(K * Redundancy). It plays no role inside Encoder or Decoder
	// themselves, which only ever see an explicit N.
	Redundancy float64

	// OuterParityShards, when > 0, asks the CLI driver (not the core
	// codec) to additionally protect the K source blocks with this many
	// Reed-Solomon parity shards via internal/outerfec, as a last-resort
	// backstop when peeling stalls. Zero disables it; the core Encoder
	// and Decoder never look at this field themselves.
	OuterParityShards int

	// Logger receives structured debug logging from the Encoder, Decoder,
	// and Symbol.LogNeighbors. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns the spec-documented defaults.
func DefaultConfig() Config {
	return Config{
		PacketSize:               65536,
		WordWidth:                8,
		Systematic:               false,
		RobustFailureProbability: 0.01,
		Distribution:             DistributionRobust,
		Redundancy:               2.0,
		OuterParityShards:        0,
		Logger:                   zap.NewNop(),
	}
}

// Validate checks the enumerated configuration constraints and returns an
// InvalidParameter error describing the first one violated.
func (c Config) Validate() error {
	if c.PacketSize <= 0 {
		return newError(InvalidParameter, "PacketSize must be positive, got %d", c.PacketSize)
	}
	switch c.WordWidth {
	case 1, 2, 4, 8:
	default:
		return newError(InvalidParameter, "WordWidth must be one of {1,2,4,8}, got %d", c.WordWidth)
	}
	if c.PacketSize%c.WordWidth != 0 {
		return newError(InvalidParameter, "WordWidth %d does not evenly divide PacketSize %d", c.WordWidth, c.PacketSize)
	}
	if c.RobustFailureProbability <= 0 || c.RobustFailureProbability >= 1 {
		return newError(InvalidParameter, "RobustFailureProbability must be in (0,1), got %f", c.RobustFailureProbability)
	}
	if c.OuterParityShards < 0 {
		return newError(InvalidParameter, "OuterParityShards must be >= 0, got %d", c.OuterParityShards)
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// NumDrops is the caller-side Redundancy convenience from spec §6:
// N = ceil(K * Redundancy).
func (c Config) NumDrops(k int) int {
	return int(math.Ceil(float64(k) * c.Redundancy))
}
