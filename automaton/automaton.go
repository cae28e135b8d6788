// Package automaton holds the in-memory, read-only representation of the
// compiled DFA (lexer) and LR (parser) tables that drive the fishtap core.
// Tables are produced elsewhere (by a grammar compiler, out of scope for this
// module, see tabfmt for the binary resource format) and are immutable once
// loaded; nothing in this package ever mutates a Tables value after it has
// been returned from a loader.
package automaton

import "fmt"

// DeadState is the sentinel meaning "no transition" from a DFA state.
const DeadState = -1

// TreeAction controls how a reduction's builder folds a popped subtree into
// its parent. See parse.Builder for the implementations of each action.
type TreeAction int

const (
	// TreeActionNone appends the popped subtree as a plain child.
	TreeActionNone TreeAction = iota
	// TreeActionDrop discards the popped subtree entirely.
	TreeActionDrop
	// TreeActionPromote replaces the head by the popped subtree.
	TreeActionPromote
	// TreeActionReplaceByChildren splices the popped subtree's children into
	// the head's children in place of the subtree itself.
	TreeActionReplaceByChildren
)

func (a TreeAction) String() string {
	switch a {
	case TreeActionNone:
		return "None"
	case TreeActionDrop:
		return "Drop"
	case TreeActionPromote:
		return "Promote"
	case TreeActionReplaceByChildren:
		return "ReplaceByChildren"
	default:
		return fmt.Sprintf("TreeAction(%d)", int(a))
	}
}

// Range is a bulk transition: every code point in [Start, End] leads to
// Target. Ranges supplement the dense 256-entry cached table for code units
// outside the low-byte range, or to further refine it.
type Range struct {
	Start, End rune
	Target     int
}

// StateData is the fixed information associated with one DFA state.
type StateData struct {
	// Terminals lists the symbol ids accepted in this state. Empty means the
	// state is non-accepting.
	Terminals []int

	// Cached is the dense low-byte dispatch table: Cached[b] is the target
	// state for code unit b, or DeadState if there is none.
	Cached [256]int

	// Bulk is an ordered list of ranges covering code points outside of, or
	// in addition to, the Cached range. Scanned in order; first match wins.
	Bulk []Range
}

// Accepting reports whether reaching this state with input consumed yields a
// token (i.e. it has at least one terminal).
func (s StateData) Accepting() bool {
	return len(s.Terminals) > 0
}

// DeadEnd reports whether the state has no outgoing transitions at all.
func (s StateData) DeadEnd() bool {
	for _, t := range s.Cached {
		if t != DeadState {
			return false
		}
	}
	return len(s.Bulk) == 0
}

// Next returns the target state for code point c, or DeadState if there is
// no transition. The dense cached table is consulted first; bulk ranges are
// scanned in order if the cached lookup misses.
func (s StateData) Next(c rune) int {
	if c >= 0 && c < 256 {
		if t := s.Cached[c]; t != DeadState {
			return t
		}
	}
	for _, r := range s.Bulk {
		if c >= r.Start && c <= r.End {
			return r.Target
		}
	}
	return DeadState
}

// ActionCode is the kind of LR action to take given a state and a symbol.
type ActionCode int

const (
	Shift ActionCode = iota
	Reduce
	Accept
	Error
)

func (c ActionCode) String() string {
	switch c {
	case Shift:
		return "Shift"
	case Reduce:
		return "Reduce"
	case Accept:
		return "Accept"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("ActionCode(%d)", int(c))
	}
}

// LRAction is a single entry of the LR action table.
type LRAction struct {
	Code ActionCode
	// Data is the next state for Shift, or the production index for Reduce.
	// Unused for Accept and Error.
	Data int
}

// OpKind tags the kind of a single reduction bytecode instruction.
type OpKind int

const (
	// OpPopStack pops the next body symbol and folds it into the pending
	// reduction per its embedded TreeAction.
	OpPopStack OpKind = iota
	// OpAddVirtual inserts a synthetic symbol (named by Operand, an index
	// into the virtuals table) per its embedded TreeAction.
	OpAddVirtual
	// OpSemAction invokes the semantic action registered at Operand.
	OpSemAction
)

// Instr is one reduction bytecode instruction. Only the fields relevant to
// Kind are meaningful: TreeAction for OpPopStack/OpAddVirtual, Operand for
// OpAddVirtual (virtual index) and OpSemAction (action index).
//
// This is the idiomatic Go rendering of the spec's "flat sequence of opcodes
// with at most one operand word": rather than a byte stream the interpreter
// re-parses, each instruction is decoded once (by tabfmt, at load time) into
// this small tagged value, and parse's runReduction dispatches over Kind with a
// plain switch, advancing its cursor by one Instr per step. No instruction is
// ever boxed behind an interface.
type Instr struct {
	Kind       OpKind
	TreeAction TreeAction
	Operand    int
}

// Production is one grammar rule's reduction recipe.
type Production struct {
	// Head is the variable index of the production's left-hand side.
	Head int
	// ReductionLength is the number of symbols popped off the stack on
	// reduction (the |beta| of A -> beta).
	ReductionLength int
	// HeadAction is recorded on the new head node as its
	// ParseTree.DefaultAction. The builder does not apply it; a later
	// reduction folds the node per that reduction's own bytecode.
	HeadAction TreeAction
	// Bytecode is executed left to right by parse's runReduction.
	Bytecode []Instr
}

// Tables is the complete, frozen set of automaton and parse tables consumed
// by the fishtap core. A Tables value is safe for concurrent use by
// independent parses; nothing in this package mutates it after construction.
type Tables struct {
	// States is indexed by DFA/LR state id.
	States []StateData

	// Actions maps state -> symbol id -> LRAction. A missing entry is
	// equivalent to LRAction{Code: Error}.
	Actions []map[int]LRAction

	// Productions is indexed by production id, as referenced by Reduce
	// actions' Data field.
	Productions []Production

	// Variables maps a variable index (Production.Head) to the symbol id
	// used to key Actions for GOTO-style lookups after a reduction.
	Variables []int

	// Virtuals maps a virtual index (OpAddVirtual.Operand) to the symbol id
	// given to the synthesized tree node.
	Virtuals []int

	// NumTerminals bounds the terminal id space scanned by GetExpected.
	NumTerminals int

	// SymbolNames maps a symbol id -- terminal or variable, they share one id
	// space since Actions is keyed by symbol id for both lookahead (shift)
	// and post-reduction goto (variable) lookups -- to its human-readable
	// name (e.g. "IF", "expr"). Indices beyond len(SymbolNames) render
	// numerically.
	SymbolNames []string

	// Start is the initial DFA/LR state.
	Start int
}

// SymbolName renders a terminal symbol id as its human-readable class name,
// falling back to a numeric rendering for unregistered ids.
func (t *Tables) SymbolName(id int) string {
	if id >= 0 && id < len(t.SymbolNames) && t.SymbolNames[id] != "" {
		return t.SymbolNames[id]
	}
	return fmt.Sprintf("<%d>", id)
}

// GetState returns the state data for state i. Panics if i is out of range;
// malformed tables are a generator bug, not a runtime condition to recover
// from.
func (t *Tables) GetState(i int) StateData {
	return t.States[i]
}

// GetAction looks up the action for (state, symbol). Returns
// LRAction{Code: Error} if there is none.
func (t *Tables) GetAction(state, symbol int) LRAction {
	if state < 0 || state >= len(t.Actions) {
		return LRAction{Code: Error}
	}
	act, ok := t.Actions[state][symbol]
	if !ok {
		return LRAction{Code: Error}
	}
	return act
}

// GetProduction returns the production at index.
func (t *Tables) GetProduction(index int) Production {
	return t.Productions[index]
}

// GetExpected enumerates all terminal ids for which GetAction(state, id) is
// non-error.
func (t *Tables) GetExpected(state int) []int {
	expected := make([]int, 0)
	for id := 0; id < t.NumTerminals; id++ {
		if t.GetAction(state, id).Code != Error {
			expected = append(expected, id)
		}
	}
	return expected
}
