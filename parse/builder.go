package parse

import (
	"github.com/dekarrin/fishtap/automaton"
	"github.com/dekarrin/fishtap/internal/util"
	"github.com/dekarrin/fishtap/lex"
)

// ActionFunc is a host-supplied semantic action, invoked mid-reduction with a
// view of the reduction in progress: head is the new node under
// construction (safe to mutate; Value/Children are filled in by the builder
// once the reduction completes) and body is the production's right-hand side
// assembled so far, in left-to-right order.
type ActionFunc func(head *ParseTree, body []*ParseTree)

// Builder assembles a ParseTree alongside the LR driver's state stack. It
// mirrors the driver's own symbol stack one-for-one: every Shift pushes a
// terminal leaf, every Reduce pops ReductionLength nodes and pushes exactly
// one new node, so Builder's depth always matches the driver's state stack
// depth (after accounting for the single extra bottom-of-stack state that
// carries no symbol).
//
// This generalizes the teacher's inline tokenBuffer/subTreeRoots stack
// bookkeeping in lrParser.Parse into a standalone, reusable component driven
// by the reduction interpreter instead of being woven into the parse loop
// itself.
type Builder struct {
	tables *automaton.Tables
	stack  util.Stack[*ParseTree]

	pendingHead *ParseTree
	pendingBody []*ParseTree
	promoted    bool
}

// NewBuilder returns an empty Builder for the given tables.
func NewBuilder(tables *automaton.Tables) *Builder {
	return &Builder{tables: tables}
}

// Depth returns the number of nodes currently on the symbol stack.
func (b *Builder) Depth() int {
	return b.stack.Len()
}

// Tree returns the node on top of the symbol stack, which is the root once
// parsing has accepted. Panics if called with the stack empty.
func (b *Builder) Tree() *ParseTree {
	return b.stack.Peek()
}

// StackPush pushes a new terminal leaf for tok, mirroring a Shift action.
func (b *Builder) StackPush(tok lex.Token) {
	b.stack.Push(&ParseTree{Terminal: true, Value: tok.Name, Source: tok})
}

// ReductionPrepare begins a new reduction of a production with the given
// body length. It resets the pending-body accumulator; the interpreter then
// drives ReductionPop/ReductionVirtual/ReductionSemantic calls in bytecode
// order before finishing with Reduce.
func (b *Builder) ReductionPrepare(length int) {
	b.pendingHead = &ParseTree{}
	b.pendingBody = nil
	b.promoted = false
	_ = length
}

// ReductionPop pops the next body symbol off the stack and folds it into the
// pending reduction per action.
//
// Reduction bytecode walks a production's body right to left (the order
// symbols come off the stack), so each popped node is prepended to the
// pending body to restore left-to-right order; this mirrors the teacher's
// own lrParser.Parse, which explicitly builds its subtree slice "by
// prepending, since we are working backwards".
func (b *Builder) ReductionPop(action automaton.TreeAction) {
	child := b.stack.Pop()
	switch action {
	case automaton.TreeActionDrop:
		// discarded
	case automaton.TreeActionPromote:
		b.promoted = true
		b.pendingHead = child
	case automaton.TreeActionReplaceByChildren:
		spliced := make([]*ParseTree, 0, len(child.Children)+len(b.pendingBody))
		spliced = append(spliced, child.Children...)
		spliced = append(spliced, b.pendingBody...)
		b.pendingBody = spliced
	default:
		b.pendingBody = append([]*ParseTree{child}, b.pendingBody...)
	}
}

// ReductionVirtual inserts a synthetic, source-less symbol at the current
// bytecode position, folded into the pending reduction per action exactly
// like a popped symbol would be (minus the stack pop).
func (b *Builder) ReductionVirtual(virtualSymbol int, action automaton.TreeAction) {
	node := &ParseTree{Value: b.tables.SymbolName(virtualSymbol)}
	switch action {
	case automaton.TreeActionDrop:
		// discarded
	case automaton.TreeActionPromote:
		b.promoted = true
		b.pendingHead = node
	case automaton.TreeActionReplaceByChildren:
		// a freshly synthesized virtual has no children of its own to splice
	default:
		b.pendingBody = append([]*ParseTree{node}, b.pendingBody...)
	}
}

// ReductionSemantic invokes fn against the in-progress reduction.
func (b *Builder) ReductionSemantic(fn ActionFunc) {
	if fn == nil {
		return
	}
	fn(b.pendingHead, b.pendingBody)
}

// Reduce finishes the current reduction: it fills in pendingHead's Value and
// Children (unless a Promote along the way already replaced it wholesale)
// and pushes exactly one node onto the stack.
func (b *Builder) Reduce(headSymbol int, action automaton.TreeAction) {
	head := b.pendingHead
	if !b.promoted {
		head.Value = b.tables.SymbolName(headSymbol)
		head.Children = b.pendingBody
	}
	head.DefaultAction = action
	b.stack.Push(head)

	b.pendingHead = nil
	b.pendingBody = nil
	b.promoted = false
}
