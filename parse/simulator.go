package parse

import (
	"github.com/dekarrin/fishtap/automaton"
	"github.com/dekarrin/fishtap/internal/util"
	"github.com/dekarrin/fishtap/lex"
)

// simulator is a cheap, disposable clone of the driver's LR state stack used
// to probe whether a candidate recovery action (dropping one or two tokens,
// or inserting an expected terminal) would let the parser make forward
// progress without erroring. It never touches the real state stack or the
// real builder: it carries its own copy of the former and drives a fresh,
// throwaway Builder seeded with placeholder nodes so that reductions which
// pop deeper than the probe's own shifts can still proceed structurally.
//
// Per the design note that recovery probing must not mutate live state, a
// simulator is a plain value built fresh for every probe and discarded
// afterward.
type simulator struct {
	tables *automaton.Tables
	states util.Stack[int]
}

// newSimulator clones states so the probe can shift and reduce freely.
func newSimulator(tables *automaton.Tables, states util.Stack[int]) *simulator {
	return &simulator{tables: tables, states: states.Copy()}
}

// newPlaceholderBuilder returns a Builder preloaded with depth placeholder
// nodes, standing in for the real builder's current symbol stack so that
// simulated reductions have something to pop without touching live data.
func newPlaceholderBuilder(tables *automaton.Tables, depth int) *Builder {
	b := NewBuilder(tables)
	for i := 0; i < depth; i++ {
		b.stack.Push(&ParseTree{Value: "<probe>"})
	}
	return b
}

// advance runs shifts and reduces against tok until it must either shift
// (progress made, returns Shift), or it hits Accept or Error.
func (sim *simulator) advance(b *Builder, tok lex.Token) automaton.ActionCode {
	for {
		state := sim.states.Peek()
		act := sim.tables.GetAction(state, tok.SymbolID)
		switch act.Code {
		case automaton.Shift:
			sim.states.Push(act.Data)
			b.StackPush(tok)
			return automaton.Shift
		case automaton.Reduce:
			prod := sim.tables.GetProduction(act.Data)
			for i := 0; i < prod.ReductionLength; i++ {
				sim.states.Pop()
			}
			runReduction(sim.tables, b, nil, prod)

			top := sim.states.Peek()
			headSymbol := 0
			if prod.Head >= 0 && prod.Head < len(sim.tables.Variables) {
				headSymbol = sim.tables.Variables[prod.Head]
			}
			gotoAct := sim.tables.GetAction(top, headSymbol)
			sim.states.Push(gotoAct.Data)
		default:
			return act.Code
		}
	}
}

// testForLength probes whether n consecutive token-steps can all be taken
// (each step shifting one token and running any reductions it triggers)
// without ever hitting Error, reaching Accept early counts as success too.
// If injected is non-nil it supplies the first step's token instead of
// reading from stream (used to probe a synthesized insertion); all
// subsequent steps, and the first step when injected is nil, read from
// stream. consumed reports how many real tokens were read from stream,
// so callers can decide how to rewind it.
func (sim *simulator) testForLength(n int, injected *lex.Token, stream *lex.Stream) (ok bool, consumed int) {
	b := newPlaceholderBuilder(sim.tables, sim.states.Len())

	var tok lex.Token
	if injected != nil {
		tok = *injected
	} else {
		tok = stream.Next()
		consumed++
	}

	for i := 0; i < n; i++ {
		switch sim.advance(b, tok) {
		case automaton.Accept:
			return true, consumed
		case automaton.Error:
			return false, consumed
		}
		if i+1 < n {
			tok = stream.Next()
			consumed++
		}
	}
	return true, consumed
}
