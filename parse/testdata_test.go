package parse

import "github.com/dekarrin/fishtap/automaton"

// repetitionTables builds the table for the tiny right-recursive grammar
//
//	S -> a S
//	S -> a
//
// lexed by a DFA recognizing single 'a' characters as terminal 0. Useful for
// exercising repeated shift/goto cycles (a single LR state, 1, self-loops on
// 'a').
func repetitionTables() *automaton.Tables {
	dead := [256]int{}
	for i := range dead {
		dead[i] = automaton.DeadState
	}
	lex0 := automaton.StateData{Cached: dead}
	lex0.Cached['a'] = 1
	lex1 := automaton.StateData{Cached: dead, Terminals: []int{0}}

	prodAS := automaton.Production{
		Head:            0,
		ReductionLength: 2,
		HeadAction:      automaton.TreeActionNone,
		Bytecode: []automaton.Instr{
			{Kind: automaton.OpPopStack, TreeAction: automaton.TreeActionNone},
			{Kind: automaton.OpPopStack, TreeAction: automaton.TreeActionNone},
		},
	}
	prodA := automaton.Production{
		Head:            0,
		ReductionLength: 1,
		HeadAction:      automaton.TreeActionNone,
		Bytecode: []automaton.Instr{
			{Kind: automaton.OpPopStack, TreeAction: automaton.TreeActionNone},
		},
	}

	const a, eof, s = 0, -1, 1

	actions := []map[int]automaton.LRAction{
		0: {a: {Code: automaton.Shift, Data: 1}, s: {Code: automaton.Shift, Data: 2}},
		1: {a: {Code: automaton.Shift, Data: 1}, eof: {Code: automaton.Reduce, Data: 1}, s: {Code: automaton.Shift, Data: 3}},
		2: {eof: {Code: automaton.Accept}},
		3: {eof: {Code: automaton.Reduce, Data: 0}},
	}

	return &automaton.Tables{
		States:       []automaton.StateData{lex0, lex1},
		Actions:      actions,
		Productions:  []automaton.Production{prodAS, prodA},
		Variables:    []int{s},
		NumTerminals: 1,
		SymbolNames:  []string{"a", "S"},
		Start:        0,
	}
}

// sequenceTables builds the table for the single-production grammar
//
//	S -> a b
//
// lexed by a DFA recognizing 'a' as terminal 0, 'b' as terminal 1, and 'x' as
// terminal 2 ("junk"). Junk never appears in any state's action set, so a
// lexed 'x' is always an unexpected token -- used to exercise the driver's
// recovery procedure with a token the lexer itself produces normally,
// instead of one synthesized in the test.
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
