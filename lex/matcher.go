package lex

import "github.com/dekarrin/fishtap/automaton"

// TokenMatch is the outcome of a single tokenization step: the DFA ended in
// State having consumed Length code units from wherever the attempt began.
type TokenMatch struct {
	State  int
	Length int
}

// matchExact performs the standard longest-match scan described in the
// spec's DFA matcher component: starting in the automaton's start state,
// consume code units while a transition exists, remembering the last state
// visited that had a non-empty terminals list. Returns ok=false if no
// accepting state was ever reached (including the zero-length case where
// even the first transition from the start state failed).
func matchExact(tables *automaton.Tables, buf *Buffer, origin int) (match TokenMatch, ok bool) {
	state := tables.Start
	length := 0
	bestState := -1
	bestLength := 0

	for {
		idx := origin + length
		if buf.IsEnd(idx) {
			break
		}
		sd := tables.GetState(state)
		next := sd.Next(buf.GetValue(idx))
		if next == automaton.DeadState {
			break
		}
		state = next
		length++
		if tables.GetState(state).Accepting() {
			bestState = state
			bestLength = length
		}
	}

	if bestState == -1 {
		return TokenMatch{Length: length}, false
	}
	return TokenMatch{State: bestState, Length: bestLength}, true
}
