package fishtap

import (
	"github.com/dekarrin/fishtap/automaton"
	"github.com/dekarrin/fishtap/lex"
	"github.com/dekarrin/fishtap/parse"
)

// ParseError is the tagged-variant lexical/syntactic error reported by a
// Driver, re-exported so callers don't need to import lex directly.
type ParseError = lex.ParseError

// Re-exported ErrorKind values, so a host can switch on err.Kind without
// importing lex.
const (
	UnexpectedChar  = lex.UnexpectedChar
	UnexpectedToken = lex.UnexpectedToken
)

// Driver is the top-level entry point a host embeds: it owns a compiled
// automaton.Tables, a registered ActionRegistry, and a Config, and turns raw
// text into a ParseTree by constructing a lex.Stream and running it through
// a parse.Driver. This is the only type most callers need to touch.
type Driver struct {
	tables *automaton.Tables
	cfg    Config
	inner  *parse.Driver

	onError lex.ErrorSink
}

// New builds a Driver from a loaded table set, a semantic action registry
// indexed by production bytecode operand, and a Config. actions may be nil
// if the grammar has no OpSemAction instructions.
func New(tables *automaton.Tables, actions ActionRegistry, cfg Config) *Driver {
	inner := parse.NewDriver(tables, []parse.ActionFunc(actions), parse.Config{
		MaxErrors:       cfg.MaxErrorCount,
		RecoveryEnabled: cfg.RecoveryEnabled,
		MaxStackDepth:   cfg.MaxStackDepth,
	})

	d := &Driver{tables: tables, cfg: cfg, inner: inner}
	inner.OnError(func(e lex.ParseError) {
		if d.onError != nil {
			d.onError(e)
		}
	})
	return d
}

// OnError registers the error sink callback invoked synchronously, in
// input-position order, for every lexical and syntactic error produced
// during a Parse call: both the lex.Stream's UnexpectedChar errors and the
// inner parse.Driver's UnexpectedToken errors are routed through the same
// fn, so a host sees one ordered stream regardless of which layer detected
// the problem. Pass nil to disable.
func (d *Driver) OnError(fn func(ParseError)) {
	d.onError = fn
}

// RegisterTraceListener installs a callback invoked with a line of
// diagnostic text at each significant parser step. Pass nil to disable.
func (d *Driver) RegisterTraceListener(fn func(s string)) {
	d.inner.RegisterTraceListener(fn)
}

// Parse lexes and parses text, returning the resulting tree and every error
// encountered along the way. A nil tree means the parse failed outright:
// either recovery is disabled and the first unexpected input was fatal, or
// recovery exhausted every candidate, or MaxErrorCount was reached, or the
// state stack grew past MaxStackDepth.
//
// The returned slice lists lexical (UnexpectedChar) errors before syntactic
// (UnexpectedToken) ones; a host that needs the two interleaved in true
// input-position order should use OnError instead, which fires for each
// error exactly when it is detected.
func (d *Driver) Parse(text string) (*ParseTree, []ParseError) {
	var errs []ParseError
	stream := lex.NewStream(d.tables, text, d.cfg.MaxFuzzyDistance, func(e lex.ParseError) {
		errs = append(errs, e)
		if d.onError != nil {
			d.onError(e)
		}
	})

	tree, parseErrs := d.inner.Parse(stream)
	errs = append(errs, parseErrs...)
	return tree, errs
}
