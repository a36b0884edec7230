/*
Package fountain implements an LT (Luby Transform) rateless erasure
code: an encoder that turns K equal-size source blocks into an
unbounded stream of encoded symbols, and a decoder that recovers all K
source blocks from any sufficiently large subset of received symbols
using iterative belief propagation ("peeling").

The package is organized around five collaborators, in dependency
order: DegreeDistribution (distribution.go) builds the Ideal and Robust
Soliton probability mass functions; Sampler (sampler.go) deterministically
turns a symbol index and a degree into a set of neighbor block indices;
Symbol (symbol.go) is the passive data carrier; Encoder (encoder.go) is
a lazy producer of Symbols; Decoder (decoder.go) is the peeling
reconstructor.

Neither the encoder nor the decoder perform any I/O: splitting a file
into PacketSize-aligned blocks, padding the final block, and writing
reconstructed output back out are handled by internal/chunking and the
cmd/ltfountain driver, not by this package.
*/
package fountain
