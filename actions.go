package fishtap

import "github.com/dekarrin/fishtap/parse"

// ParseTree is the tree assembled by a parse, re-exported so callers of this
// package don't need to import parse directly for everyday use.
type ParseTree = parse.ParseTree

// ActionFunc is a host-supplied semantic action, invoked mid-reduction. See
// parse.ActionFunc for the exact contract.
type ActionFunc = parse.ActionFunc

// ActionRegistry is the ordered table of semantic actions a compiled
// grammar's production bytecode indexes into by OpSemAction operand.
// Construction-only: the driver only ever reads it.
type ActionRegistry []ActionFunc
