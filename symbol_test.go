package fountain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSymbol_LogNeighbors_NopLoggerDoesNothing(t *testing.T) {
	sym := Symbol{Index: 5, Degree: 2, Data: []byte("xx")}
	// Must not panic even though the sampler is never consulted.
	sym.LogNeighbors(zap.NewNop(), NewSampler(false), 10)
}

func TestSymbol_LogNeighbors_EmitsDebugEntry(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	sym := Symbol{Index: 5, Degree: 2, Data: []byte("xx")}
	sym.LogNeighbors(logger, NewSampler(false), 10)

	entries := observed.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "symbol neighbors", entries[0].Message)
}
