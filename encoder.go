package fountain

import "math/rand"

// degreeStreamSeed seeds the single MT19937 stream the Encoder uses to
// precompute its N degrees (spec §4.3 step 1). It is a fixed constant, not
// a Config field: the degree sequence only needs to be reproducible given
// (K, N, distribution params), which it already is by construction.
const degreeStreamSeed int64 = 0x4c54

// Encoder is a streaming producer of Symbols from K source blocks. It
// implements the "external iterator" shape spec §9 describes: internally
// it holds (blocks, degrees, cursor), computes the full degree sequence up
// front, and produces one Symbol's Data per Next call.
type Encoder struct {
	cfg     Config
	blocks  [][]byte
	k       int
	n       int
	degrees []int
	sampler *Sampler
	cursor  int
}

// NewEncoder validates cfg and blocks and constructs an Encoder ready to
// produce n Symbols. blocks must all be exactly cfg.PacketSize bytes long;
// n must be >= len(blocks) (spec §4.3: fewer drops than blocks cannot
// cover the source, given the unique-neighbor constraint).
func NewEncoder(cfg Config, blocks [][]byte, n int) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := len(blocks)
	if k < 1 {
		return nil, newError(InvalidParameter, "need at least one source block, got %d", k)
	}
	if n < k {
		return nil, newError(InvalidParameter, "N (%d) must be >= K (%d)", n, k)
	}
	for i, b := range blocks {
		if len(b) != cfg.PacketSize {
			return nil, newError(InvalidParameter, "block %d has length %d, want PacketSize %d", i, len(b), cfg.PacketSize)
		}
	}

	pmf, err := PMF(cfg.Distribution, k, cfg.RobustFailureProbability)
	if err != nil {
		return nil, err
	}

	degrees := make([]int, n)
	degrees[0] = 1 // spec §3/§4.3: symbol 0 always has degree 1.
	stream := rand.New(NewMersenneTwister(degreeStreamSeed))
	for i := 1; i < n; i++ {
		degrees[i] = draw(stream.Float64(), pmf)
	}

	return &Encoder{
		cfg:     cfg,
		blocks:  blocks,
		k:       k,
		n:       n,
		degrees: degrees,
		sampler: NewSampler(cfg.Systematic),
	}, nil
}

// Len returns the total number of symbols this Encoder will produce.
func (e *Encoder) Len() int { return e.n }

// Next produces the next Symbol and advances the cursor, or returns
// ok=false once all n symbols have been emitted. Each call is independent:
// emitting symbol i never mutates a prior symbol or any source block.
func (e *Encoder) Next() (Symbol, bool) {
	if e.cursor >= e.n {
		return Symbol{}, false
	}
	i := e.cursor
	e.cursor++

	indices, degree := e.sampler.Sample(uint64(i), e.degrees[i], e.k)

	data := make([]byte, e.cfg.PacketSize)
	for _, j := range indices {
		xorInto(data, e.blocks[j], e.cfg.WordWidth)
	}

	sym := Symbol{Index: uint64(i), Degree: degree, Data: data}
	sym.LogNeighbors(e.cfg.logger(), e.sampler, e.k)
	return sym, true
}

// All drains the Encoder into a slice. Provided for callers that want the
// whole drop set at once; the lazy Next form remains the primary API for
// callers that want to stop early or stream symbols out as they encode.
func (e *Encoder) All() []Symbol {
	out := make([]Symbol, 0, e.n-e.cursor)
	for {
		sym, ok := e.Next()
		if !ok {
			return out
		}
		out = append(out, sym)
	}
}
