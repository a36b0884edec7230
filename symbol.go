package fountain

import "go.uber.org/zap"

// Symbol is the wire-facing data carrier: an index (the RNG seed), a
// degree, and an XOR'd payload. It is a passive value type — nothing in
// this package mutates a Symbol once it has been produced by the Encoder.
// The decoder reconstructs its own internal working copies rather than
// mutating the caller's Symbol values (see Decoder).
//
// A Symbol's neighbors are never stored or transmitted; both the Encoder
// (at emission) and the Decoder (at graph recovery) reconstruct them from
// (Index, Degree, K) via Sampler.Sample.
type Symbol struct {
	// Index is a non-negative integer, unique per symbol, used as the
	// seed for neighbor sampling.
	Index uint64

	// Degree is the number of neighbors the symbol combines. At the
	// encoder this is the drawn degree; at the decoder it is the same
	// value as received over the wire.
	Degree int

	// Data is the XOR of the symbol's neighbor blocks, PacketSize bytes.
	Data []byte
}

// LogNeighbors is the Symbol's only behavior beyond field storage: a
// debug log that re-derives its neighbors from (Index, Degree, K),
// equivalent to invoking Sampler.Sample directly. No mutation occurs.
func (s Symbol) LogNeighbors(logger *zap.Logger, sampler *Sampler, k int) {
	if logger == nil || !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	indices, effective := sampler.Sample(s.Index, s.Degree, k)
	logger.Debug("symbol neighbors",
		zap.Uint64("index", s.Index),
		zap.Int("degree", effective),
		zap.Ints("neighbors", indices),
	)
}
