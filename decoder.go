package fountain

import "go.uber.org/zap"

// decodeSymbol is the decoder's private, mutable working copy of a
// received Symbol. Symbols themselves stay immutable value types (see
// symbol.go); the decoder never aliases a caller's Symbol.Data, it copies
// into its own arena slot addressed by a stable integer handle, per spec
// §9's guidance to use "arena + index" handles rather than
// ownership-transferring references.
type decodeSymbol struct {
	degree    int
	data      []byte
	neighbors map[int]struct{}
	alive     bool
}

// Decoder is the peeling reconstructor described in spec §4.4. It ingests
// a collection of Symbols and recovers as many of the K source blocks as
// the received symbols allow, maintaining an inverted index (block index
// -> set of symbol handles that still list it as a neighbor) so that
// Reduce only ever touches symbols actually affected by a newly solved
// block.
type Decoder struct {
	cfg     Config
	sampler *Sampler

	k        int
	arena    []decodeSymbol
	inverted []map[int]struct{} // length k; nil once block j is solved and fully reduced.

	blocks    [][]byte
	solved    int
	redundant int // count of degree-1 symbols discarded because their block was already solved.
}

// NewDecoder constructs a Decoder for a known K. cfg.Systematic must match
// the value the Encoder that produced the symbols used.
func NewDecoder(cfg Config, k int) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, newError(InvalidParameter, "K must be >= 1, got %d", k)
	}
	return &Decoder{
		cfg:      cfg,
		sampler:  NewSampler(cfg.Systematic),
		k:        k,
		blocks:   make([][]byte, k),
		inverted: make([]map[int]struct{}, k),
	}, nil
}

// Stats reports counters observed during the most recent Decode call.
type Stats struct {
	// Redundant is the number of received degree-1 symbols that were
	// discarded because their target block was already solved by an
	// earlier symbol (spec §4.4's "redundant degree-1 symbol" case).
	Redundant int
}

// Stats returns counters from the most recent Decode call.
func (d *Decoder) Stats() Stats { return Stats{Redundant: d.redundant} }

// Decode peels the given symbols against the K source blocks, returning
// the recovered block table (nil entries for blocks not recovered) and
// the count of blocks solved. Decoding is successful iff solved == K; a
// stall (solved < K) is a normal outcome, not an error (spec §4.4/§7).
//
// The order symbols are presented in must not affect the final blocks
// table on a successful decode (spec §5's ordering guarantee); Decode
// processes degree-1 symbols via a worklist rather than a mutating
// in-place scan, so no step depends on input order (spec §9).
//
// Decode resets all of the Decoder's internal state before it begins, so
// calling it repeatedly on the same Decoder with different symbol sets is
// safe and independent; it is not an incremental/resumable API.
func (d *Decoder) Decode(symbols []Symbol) ([][]byte, int, error) {
	if len(symbols) == 0 {
		return nil, 0, newError(EmptyInput, "decoder invoked with zero symbols")
	}

	logger := d.cfg.logger()

	d.arena = make([]decodeSymbol, len(symbols))
	d.blocks = make([][]byte, d.k)
	d.inverted = make([]map[int]struct{}, d.k)
	d.solved = 0
	d.redundant = 0
	worklist := make([]int, 0, len(symbols))

	for h, s := range symbols {
		indices, degree := d.sampler.Sample(s.Index, s.Degree, d.k)

		neighbors := make(map[int]struct{}, degree)
		for _, j := range indices {
			neighbors[j] = struct{}{}
			if d.inverted[j] == nil {
				d.inverted[j] = make(map[int]struct{})
			}
			d.inverted[j][h] = struct{}{}
		}

		data := make([]byte, len(s.Data))
		copy(data, s.Data)

		d.arena[h] = decodeSymbol{degree: degree, data: data, neighbors: neighbors, alive: true}
		if degree == 1 {
			worklist = append(worklist, h)
		}
	}

	for len(worklist) > 0 {
		h := worklist[0]
		worklist = worklist[1:]

		sym := &d.arena[h]
		if !sym.alive || sym.degree != 1 {
			continue
		}

		var j int
		for idx := range sym.neighbors {
			j = idx
			break
		}
		sym.alive = false

		if d.blocks[j] != nil {
			d.redundant++
			logger.Debug("discarding redundant degree-1 symbol", zap.Int("handle", h), zap.Int("block", j))
			continue
		}

		d.blocks[j] = sym.data
		d.solved++
		logger.Debug("solved block", zap.Int("block", j), zap.Int("solved", d.solved), zap.Int("k", d.k))

		worklist = append(worklist, d.reduce(j)...)
	}

	logger.Debug("decode complete", zap.Int("solved", d.solved), zap.Int("k", d.k), zap.Int("redundant", d.redundant))
	return d.blocks, d.solved, nil
}

// reduce implements spec §4.4's Reduce(j): for every remaining symbol that
// still lists j as a neighbor, XOR out blocks[j], drop j from its
// neighbors, and decrement its degree. It returns the handles that
// dropped to degree 1 as a result, for the caller to add to its worklist.
//
// inverted[j] is cleared once this pass completes, so a second call to
// reduce(j) touches nothing: idempotence falls out of the data structure
// rather than needing an explicit guard (spec §8 property 7).
func (d *Decoder) reduce(j int) []int {
	affected := d.inverted[j]
	d.inverted[j] = nil
	if affected == nil {
		return nil
	}

	var newlyDegreeOne []int
	for h := range affected {
		sym := &d.arena[h]
		if !sym.alive || sym.degree <= 1 {
			continue
		}

		xorInto(sym.data, d.blocks[j], d.cfg.WordWidth)
		delete(sym.neighbors, j)
		sym.degree--

		if sym.degree == 1 {
			newlyDegreeOne = append(newlyDegreeOne, h)
		}
	}
	return newlyDegreeOne
}
