package fountain

import "fmt"

// ErrorKind classifies the fatal error conditions the codec can report.
// DecodeIncomplete is deliberately not among them: a decoder stall is a
// normal outcome represented by Decoder.Decode's solved return value, not
// an error.
type ErrorKind string

const (
	// InvalidParameter covers K < 1, N < K, PacketSize <= 0, a WordWidth
	// outside {1,2,4,8}, or a block length mismatch. A degree outside
	// [1,K] is not reported as an error: Sampler.Sample clamps it.
	InvalidParameter ErrorKind = "invalid_parameter"

	// Unnormalized means a degree distribution's probabilities failed the
	// sum tolerance check. This is a defensive check: it should not occur
	// given correct arithmetic at any finite precision.
	Unnormalized ErrorKind = "unnormalized"

	// EmptyInput means the decoder was invoked with zero symbols.
	EmptyInput ErrorKind = "empty_input"
)

// Error is the error type returned by every fallible operation in this
// package. Callers that need to branch on failure kind should use
// errors.As to recover it and inspect Kind.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("fountain: %s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
