package lex

import "github.com/dekarrin/fishtap/automaton"

// fuzzyNode is one point in the bounded (state, length, distance) search
// space explored by fuzzySearch. prev is an arena index (not a pointer) into the
// owning search's node slice, per the spec's "allocate nodes from an arena
// keyed by integer indices" design note: this lets the whole arena be
// dropped at once when the search concludes, with no cyclic ownership to
// worry about.
type fuzzyNode struct {
	prev     int // -1 for the root
	state    int
	length   int
	distance int
	err      *ParseError // the edit that produced this node from prev, if any
}

// fuzzySearch runs the bounded-edit-distance recovery search described in
// the spec's "fuzzy matcher" component, starting at origin in buf, using
// tables, up to maxDistance cumulative edits. It returns the best match
// found (by minimal distance, then maximal length) and the lexical errors
// that its solution path implies, in input-position order. If no accepting
// state was reachable within maxDistance, ok is false.
func fuzzySearch(tables *automaton.Tables, buf *Buffer, origin int, maxDistance int) (match TokenMatch, errs []ParseError, ok bool) {
	nodes := []fuzzyNode{{prev: -1, state: tables.Start, length: 0, distance: 0}}
	best := -1

	// enqueue appends c unless an existing node with the same state
	// dominates it per the spec's partial (state, length, distance)
	// dominance check. The scan runs newest-first, an intentional heuristic
	// the spec calls out as not a formal Pareto proof: it can let through
	// the occasional non-dominated duplicate, which accept bookkeeping
	// below still considers, so it cannot affect correctness.
	enqueue := func(c fuzzyNode) {
		for i := len(nodes) - 1; i >= 0; i-- {
			e := nodes[i]
			if e.state != c.state {
				continue
			}
			if c.length < e.length {
				return
			}
			if c.length == e.length && c.distance >= e.distance {
				return
			}
		}
		nodes = append(nodes, c)
	}

	for cursor := 0; cursor < len(nodes); cursor++ {
		head := nodes[cursor]
		idx := origin + head.length
		atEnd := buf.IsEnd(idx)
		var cur rune
		if !atEnd {
			cur = buf.GetValue(idx)
		}
		sd := tables.GetState(head.state)

		// 1. Accept bookkeeping.
		if sd.Accepting() {
			if best == -1 {
				best = cursor
			} else {
				b := nodes[best]
				if head.distance < b.distance || (head.distance == b.distance && head.length > b.length) {
					best = cursor
				}
			}
		}

		// 2. Drop the next input code unit (delete).
		if !atEnd && head.distance < maxDistance {
			pos := buf.GetPositionAt(idx)
			e := ParseError{Kind: UnexpectedChar, Char: string(cur), Line: pos.Line, Column: pos.Column}
			enqueue(fuzzyNode{prev: cursor, state: head.state, length: head.length + 1, distance: head.distance + 1, err: &e})
		}

		// 3. Transitions, skipped entirely on a dead-end state (drop above
		// still models hopping past the obstruction).
		if !sd.DeadEnd() {
			pos := buf.GetPositionAt(idx)

			tryTransition := func(target int, matches bool) {
				if target == automaton.DeadState {
					return
				}
				// Match (no edit).
				if matches {
					enqueue(fuzzyNode{prev: cursor, state: target, length: head.length + 1, distance: head.distance, err: nil})
				}
				// Replace (edit: substitute).
				if head.distance < maxDistance && !atEnd {
					e := ParseError{Kind: UnexpectedChar, Char: string(cur), Line: pos.Line, Column: pos.Column}
					enqueue(fuzzyNode{prev: cursor, state: target, length: head.length + 1, distance: head.distance + 1, err: &e})
				}
				// Insert (edit: insert an expected code unit; length does
				// not advance). Per the spec's open question, the reported
				// error uses the *current* input position and, oddly,
				// reports the current character rather than the inserted
				// one when not at end of input -- preserved verbatim since
				// it is observable behavior, not a bug to fix.
				if head.distance < maxDistance {
					var ch string
					if !atEnd {
						ch = string(cur)
					}
					e := ParseError{Kind: UnexpectedChar, Char: ch, Line: pos.Line, Column: pos.Column}
					enqueue(fuzzyNode{prev: cursor, state: target, length: head.length, distance: head.distance + 1, err: &e})
				}
			}

			for b := 0; b < 256; b++ {
				tryTransition(sd.Cached[b], !atEnd && rune(b) == cur)
			}
			for _, r := range sd.Bulk {
				tryTransition(r.Target, !atEnd && cur >= r.Start && cur <= r.End)
			}
		}
	}

	if best == -1 {
		return TokenMatch{}, nil, false
	}

	// Walk the prev chain back to the root, collecting edits, then reverse
	// to input order.
	for i := best; i != -1; i = nodes[i].prev {
		if nodes[i].err != nil {
			errs = append(errs, *nodes[i].err)
		}
	}
	for l, r := 0, len(errs)-1; l < r; l, r = l+1, r-1 {
		errs[l], errs[r] = errs[r], errs[l]
	}

	winner := nodes[best]
	return TokenMatch{State: winner.state, Length: winner.length}, errs, true
}
