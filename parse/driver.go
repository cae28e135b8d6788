package parse

import (
	"fmt"

	"github.com/dekarrin/fishtap/automaton"
	"github.com/dekarrin/fishtap/internal/util"
	"github.com/dekarrin/fishtap/lex"
)

// expectedNames renders the terminals expected at a recovery point as a
// reader-friendly list, e.g. "IF, WHILE, and FOR".
func (d *Driver) expectedNames(expected []int) string {
	names := make([]string, len(expected))
	for i, sym := range expected {
		names[i] = d.tables.SymbolName(sym)
	}
	return util.MakeTextList(names)
}

// recoveryProbeLength is how many consecutive token-steps a recovery
// candidate must survive before it is accepted. Three steps is enough to
// rule out candidates that only postpone the same error by one token,
// without paying for a probe deep enough to require its own recovery.
const recoveryProbeLength = 3

// Config controls a Driver's resource bounds and recovery behavior.
type Config struct {
	// MaxErrors stops the parse once this many errors have been reported.
	// Zero means unlimited.
	MaxErrors int

	// RecoveryEnabled turns on the drop-one/drop-two/insert-expected
	// speculative recovery procedure. When false, the driver reports the
	// first unexpected token and stops.
	RecoveryEnabled bool

	// MaxStackDepth bounds the LR state stack as a safety net against
	// pathological grammars or inputs driving unbounded growth. Zero means
	// unbounded.
	MaxStackDepth int
}

// DefaultConfig returns the Config used when the caller supplies none: error
// recovery on, no error or stack-depth limit.
func DefaultConfig() Config {
	return Config{RecoveryEnabled: true}
}

// Driver is the LR(k) parser: it drives a lex.Stream through tables' action
// table, reducing via actions' semantic callbacks and builder, recovering
// from unexpected tokens with the speculative simulator when enabled.
type Driver struct {
	tables  *automaton.Tables
	actions []ActionFunc
	cfg     Config
	trace   func(s string)
	onError lex.ErrorSink
}

// OnError installs a callback invoked synchronously with every
// lex.ParseError the driver reports, in addition to it being included in
// the slice Parse eventually returns. Pass nil to disable. This lets a
// caller that also owns the lex.Stream's ErrorSink merge parser- and
// lexer-level errors into one chronologically ordered stream.
func (d *Driver) OnError(fn lex.ErrorSink) {
	d.onError = fn
}

// NewDriver returns a Driver for tables, invoking actions[i] for every
// OpSemAction instruction whose operand is i.
func NewDriver(tables *automaton.Tables, actions []ActionFunc, cfg Config) *Driver {
	return &Driver{tables: tables, actions: actions, cfg: cfg}
}

// RegisterTraceListener installs a callback invoked with a line of
// diagnostic text at each significant step of the parse (shifts, reduces,
// recovery attempts). Pass nil to disable tracing. This generalizes the
// teacher's notifyTrace/RegisterTraceListener hook from lrParser.Parse.
func (d *Driver) RegisterTraceListener(listener func(s string)) {
	d.trace = listener
}

func (d *Driver) notifyTrace(format string, args ...interface{}) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, args...))
	}
}

// Parse consumes stream to completion, returning the resulting tree and any
// errors encountered along the way. A nil tree means the parse failed
// outright: either recovery is disabled and the first unexpected token
// was fatal, or recovery exhausted every candidate, or MaxErrors was hit,
// or the state stack grew past MaxStackDepth.
func (d *Driver) Parse(stream *lex.Stream) (*ParseTree, []lex.ParseError) {
	var errs []lex.ParseError
	report := func(e lex.ParseError) {
		errs = append(errs, e)
		if d.onError != nil {
			d.onError(e)
		}
	}

	states := util.Stack[int]{Of: []int{d.tables.Start}}
	builder := NewBuilder(d.tables)

	tok := stream.Next()
	for {
		code := d.step(&states, builder, tok)
		switch code {
		case automaton.Shift:
			tok = stream.Next()
		case automaton.Accept:
			return builder.Tree(), errs
		default: // Error
			next, ok := d.recover(&states, tok, stream, report)
			if !ok {
				return nil, errs
			}
			if d.cfg.MaxErrors > 0 && len(errs) >= d.cfg.MaxErrors {
				return nil, errs
			}
			tok = next
		}

		if d.cfg.MaxStackDepth > 0 && states.Len() > d.cfg.MaxStackDepth {
			return nil, errs
		}
	}
}

// step runs the LR action-decode/shift/reduce/goto cycle (components F and
// part of I) until it must return control to Parse: on Shift (one token was
// consumed, the caller must fetch the next one), on Accept, or on Error (the
// current token has no action in the current state).
func (d *Driver) step(states *util.Stack[int], builder *Builder, tok lex.Token) automaton.ActionCode {
	for {
		state := states.Peek()
		act := d.tables.GetAction(state, tok.SymbolID)

		switch act.Code {
		case automaton.Shift:
			d.notifyTrace("shift %s -> state %d", tok, act.Data)
			states.Push(act.Data)
			builder.StackPush(tok)
			return automaton.Shift

		case automaton.Reduce:
			prod := d.tables.GetProduction(act.Data)
			d.notifyTrace("reduce by production %d (length %d)", act.Data, prod.ReductionLength)
			for i := 0; i < prod.ReductionLength; i++ {
				states.Pop()
			}
			runReduction(d.tables, builder, d.actions, prod)

			top := states.Peek()
			headSymbol := 0
			if prod.Head >= 0 && prod.Head < len(d.tables.Variables) {
				headSymbol = d.tables.Variables[prod.Head]
			}
			gotoAct := d.tables.GetAction(top, headSymbol)
			states.Push(gotoAct.Data)

		default:
			return act.Code
		}
	}
}

// recover runs the three-tier speculative recovery procedure against tok,
// the token that had no action in the current state: drop it, drop it and
// its successor, or insert one of the terminals actually expected here.
// Each candidate is tested against a simulator clone of states, three token
// steps deep, before being committed to. Returns the token the caller should
// resume parsing from, or ok=false if every candidate failed and the parse
// cannot continue.
func (d *Driver) recover(states *util.Stack[int], tok lex.Token, stream *lex.Stream, report func(lex.ParseError)) (lex.Token, bool) {
	expected := d.tables.GetExpected(states.Peek())
	d.notifyTrace("unexpected token %s in state %d, expected one of %v", tok, states.Peek(), expected)
	report(lex.ParseError{
		Kind:     lex.UnexpectedToken,
		Token:    tok,
		Expected: expected,
		Line:     tok.Line,
		Column:   tok.Column,
	})

	if !d.cfg.RecoveryEnabled {
		return lex.Token{}, false
	}

	// Tier 1: drop the unexpected token, see if the tokens after it parse.
	mark := stream.Mark()
	if ok, _ := newSimulator(d.tables, *states).testForLength(recoveryProbeLength, nil, stream); ok {
		stream.Reset(mark)
		d.notifyTrace("recovery: dropped %s", tok)
		return stream.Next(), true
	}
	stream.Reset(mark)

	// Tier 2: drop the unexpected token and the one after it too.
	stream.Next()
	mark2 := stream.Mark()
	if ok, _ := newSimulator(d.tables, *states).testForLength(recoveryProbeLength, nil, stream); ok {
		stream.Reset(mark2)
		d.notifyTrace("recovery: dropped %s and its successor", tok)
		return stream.Next(), true
	}
	stream.Reset(mark2)
	stream.Rewind(1)

	// Tier 3: insert one of the terminals actually expected here.
	for _, sym := range expected {
		dummy := lex.Token{SymbolID: sym, Name: d.tables.SymbolName(sym), Line: tok.Line, Column: tok.Column}
		markI := stream.Mark()
		ok, _ := newSimulator(d.tables, *states).testForLength(recoveryProbeLength, &dummy, stream)
		stream.Reset(markI)
		if ok {
			d.notifyTrace("recovery: inserted %s before %s", dummy, tok)
			return dummy, true
		}
	}

	d.notifyTrace("recovery: exhausted all candidates for %s; expected %s", tok, d.expectedNames(expected))
	return lex.Token{}, false
}
