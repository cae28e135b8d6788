package parse

import (
	"testing"

	"github.com/dekarrin/fishtap/internal/util"
	"github.com/dekarrin/fishtap/lex"
	"github.com/stretchr/testify/assert"
)

// A simulator probe must never mutate the real state stack or the stream
// position that survives past the probe: the caller resets the stream
// itself, but the states slice it was built from must be left untouched no
// matter what the probe does.
func Test_Simulator_doesNotMutateRealStateStack(t *testing.T) {
	tables := sequenceTables()
	real := util.Stack[int]{Of: []int{0, 1}}
	realCopyBefore := append([]int(nil), real.Of...)

	stream := lex.NewStream(tables, "b", 0, nil)
	sim := newSimulator(tables, real)
	ok, _ := sim.testForLength(recoveryProbeLength, nil, stream)

	assert.True(t, ok)
	assert.Equal(t, realCopyBefore, real.Of)
}

// A failing probe still reports how many tokens it consumed, so callers can
// decide exactly how much of the stream to rewind.
func Test_Simulator_reportsConsumedOnFailure(t *testing.T) {
	tables := sequenceTables()
	states := util.Stack[int]{Of: []int{0, 1}}

	stream := lex.NewStream(tables, "x", 0, nil) // junk: has no action in state 1
	sim := newSimulator(tables, states)
	ok, consumed := sim.testForLength(recoveryProbeLength, nil, stream)

	assert.False(t, ok)
	assert.Equal(t, 1, consumed)
}

// An injected token is used for the first step only; subsequent steps still
// read from the stream.
func Test_Simulator_injectedTokenThenStream(t *testing.T) {
	tables := sequenceTables()
	states := util.Stack[int]{Of: []int{0, 1}}

	stream := lex.NewStream(tables, "", 0, nil) // nothing but EOF after the injection
	sim := newSimulator(tables, states)
	dummy := lex.Token{SymbolID: 1, Name: "b"}
	ok, consumed := sim.testForLength(recoveryProbeLength, &dummy, stream)

	assert.True(t, ok)
	assert.Equal(t, 1, consumed) // the injected token costs nothing; only the EOF step reads the stream
}
