package fishtap

import (
	"testing"

	"github.com/dekarrin/fishtap/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceTables builds tables for the grammar S -> a b, lexing 'a' as
// terminal 0, 'b' as terminal 1, and 'x' as junk terminal 2 that never
// appears in any state's action set. Mirrors parse's own sequenceTables
// fixture, duplicated here since test fixtures aren't exported across
// packages.
func sequenceTables() *automaton.Tables {
	dead := [256]int{}
	for i := range dead {
		dead[i] = automaton.DeadState
	}
	lex0 := automaton.StateData{Cached: dead}
	lex0.Cached['a'] = 1
	lex0.Cached['b'] = 2
	lex0.Cached['x'] = 3
	lex1 := automaton.StateData{Cached: dead, Terminals: []int{0}}
	lex2 := automaton.StateData{Cached: dead, Terminals: []int{1}}
	lex3 := automaton.StateData{Cached: dead, Terminals: []int{2}}

	prodAB := automaton.Production{
		Head:            0,
		ReductionLength: 2,
		HeadAction:      automaton.TreeActionNone,
		Bytecode: []automaton.Instr{
			{Kind: automaton.OpPopStack, TreeAction: automaton.TreeActionNone},
			{Kind: automaton.OpPopStack, TreeAction: automaton.TreeActionNone},
		},
	}

	const a, b, junk, eof, s = 0, 1, 2, -1, 3

	actions := []map[int]automaton.LRAction{
		0: {a: {Code: automaton.Shift, Data: 1}, s: {Code: automaton.Shift, Data: 3}},
		1: {b: {Code: automaton.Shift, Data: 2}},
		2: {eof: {Code: automaton.Reduce, Data: 0}},
		3: {eof: {Code: automaton.Accept}},
	}

	return &automaton.Tables{
		States:       []automaton.StateData{lex0, lex1, lex2, lex3},
		Actions:      actions,
		Productions:  []automaton.Production{prodAB},
		Variables:    []int{s},
		NumTerminals: 3,
		SymbolNames:  []string{"a", "b", "junk", "S"},
		Start:        0,
	}
}

func Test_Driver_parsesCleanInput(t *testing.T) {
	d := New(sequenceTables(), nil, DefaultConfig())

	tree, errs := d.Parse("ab")

	require.Empty(t, errs)
	require.NotNil(t, tree)
	assert.Equal(t, 2, len(tree.Children))
}

func Test_Driver_reportsUnexpectedCharAndRecovers(t *testing.T) {
	d := New(sequenceTables(), nil, DefaultConfig())

	// '!' never appears in any lexer state, so it's a raw lexical error;
	// the lexer skips it and resumes, leaving a clean "ab" for the parser.
	tree, errs := d.Parse("a!b")

	require.NotNil(t, tree)
	require.Len(t, errs, 1)
	assert.Equal(t, UnexpectedChar, errs[0].Kind)
}

func Test_Driver_reportsUnexpectedTokenAndRecovers(t *testing.T) {
	d := New(sequenceTables(), nil, DefaultConfig())

	// 'x' lexes cleanly as junk terminal 2, which has no action anywhere:
	// a syntactic, not lexical, error that recovery should drop.
	tree, errs := d.Parse("axb")

	require.NotNil(t, tree)
	require.Len(t, errs, 1)
	assert.Equal(t, UnexpectedToken, errs[0].Kind)
}

func Test_Driver_onErrorSeesBothKinds(t *testing.T) {
	d := New(sequenceTables(), nil, DefaultConfig())

	var seen []ParseError
	d.OnError(func(e ParseError) { seen = append(seen, e) })

	tree, errs := d.Parse("a!xb")

	require.NotNil(t, tree)
	require.Len(t, errs, 2)
	require.Len(t, seen, 2)
	assert.Equal(t, UnexpectedChar, seen[0].Kind)
	assert.Equal(t, UnexpectedToken, seen[1].Kind)
}

func Test_Driver_recoveryDisabledFailsOnFirstError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecoveryEnabled = false
	d := New(sequenceTables(), nil, cfg)

	tree, errs := d.Parse("axb")

	assert.Nil(t, tree)
	require.Len(t, errs, 1)
}

func Test_Driver_traceListenerReceivesSteps(t *testing.T) {
	d := New(sequenceTables(), nil, DefaultConfig())

	var lines []string
	d.RegisterTraceListener(func(s string) { lines = append(lines, s) })

	_, _ = d.Parse("ab")

	assert.NotEmpty(t, lines)
}
