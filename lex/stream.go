package lex

import "github.com/dekarrin/fishtap/automaton"

// Stream is a rewindable token source: a thin lexer driver wrapping a
// Buffer and a Tables, producing Tokens on demand and retaining a history of
// everything it has produced so that Rewind can replay them. This
// generalizes the teacher's types.TokenStream (Next/Peek/HasNext) with the
// pushback the parser's recovery needs to probe candidates with its LR(k)
// simulator without disturbing the real stream's position.
type Stream struct {
	tables      *automaton.Tables
	buf         *Buffer
	pos         int
	maxDistance int
	onError     ErrorSink

	history []Token
	cursor  int
}

// NewStream builds a Stream over text using tables, reporting lexical
// errors to onError and allowing up to maxDistance cumulative edits during
// fuzzy recovery. onError may be nil.
func NewStream(tables *automaton.Tables, text string, maxDistance int, onError ErrorSink) *Stream {
	if onError == nil {
		onError = func(ParseError) {}
	}
	return &Stream{
		tables:      tables,
		buf:         NewBuffer(text),
		maxDistance: maxDistance,
		onError:     onError,
	}
}

// Next returns the next token in the stream and advances it by one. Past
// the end of input it always returns the same EOF sentinel token.
func (s *Stream) Next() Token {
	if s.cursor < len(s.history) {
		t := s.history[s.cursor]
		s.cursor++
		return t
	}
	t := s.lexOne()
	s.history = append(s.history, t)
	s.cursor++
	return t
}

// Peek returns the next token without advancing the stream.
func (s *Stream) Peek() Token {
	t := s.Next()
	s.Rewind(1)
	return t
}

// HasNext reports whether there is at least one more non-EOF token.
func (s *Stream) HasNext() bool {
	t := s.Peek()
	return !t.IsEOF()
}

// Rewind logically un-produces the last n tokens, so that the next n calls
// to Next() replay them in the same order. It never rewinds past the start
// of the stream.
func (s *Stream) Rewind(n int) {
	s.cursor -= n
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// Mark returns an opaque position that can later be passed to Reset to
// return the stream's replay cursor to exactly this point (used by
// parse.Driver's recovery to restore the real stream after a probe).
func (s *Stream) Mark() int {
	return s.cursor
}

// Reset returns the replay cursor to a position previously returned by
// Mark.
func (s *Stream) Reset(mark int) {
	s.cursor = mark
}

// lexOne produces exactly one new token at the current raw input position,
// advancing s.pos. This is the orchestration the spec describes as "Data
// flow: Text -> DFA matcher. On DFA failure, fuzzy matcher substitutes.":
// the exact matcher is tried first; only when it fails to ever reach an
// accepting state does the fuzzy matcher get a chance to recover.
func (s *Stream) lexOne() Token {
	for {
		if s.buf.IsEnd(s.pos) {
			pos := s.buf.GetPositionAt(s.pos)
			return Token{SymbolID: EOFSymbol, Name: "$", Line: pos.Line, Column: pos.Column}
		}

		start := s.pos
		match, ok := matchExact(s.tables, s.buf, start)
		if ok {
			s.pos = start + match.Length
			return s.makeToken(match, start)
		}

		if match.Length == 0 {
			// Failure to take even the first transition from the start
			// state: report and skip one code unit, per the spec's
			// forward-progress guarantee, then try again from there.
			pos := s.buf.GetPositionAt(start)
			s.onError(ParseError{Kind: UnexpectedChar, Char: string(s.buf.GetValue(start)), Line: pos.Line, Column: pos.Column})
			s.pos = start + 1
			continue
		}

		// A partial match was made but got stuck without ever reaching an
		// accepting state: hand off to the fuzzy matcher.
		fuzzyMatch, errs, ok := fuzzySearch(s.tables, s.buf, start, s.maxDistance)
		if !ok {
			pos := s.buf.GetPositionAt(start)
			s.onError(ParseError{Kind: UnexpectedChar, Char: string(s.buf.GetValue(start)), Line: pos.Line, Column: pos.Column})
			s.pos = start + 1
			continue
		}
		for _, e := range errs {
			s.onError(e)
		}
		s.pos = start + fuzzyMatch.Length
		return s.makeToken(fuzzyMatch, start)
	}
}

func (s *Stream) makeToken(m TokenMatch, start int) Token {
	sd := s.tables.GetState(m.State)
	symbol := sd.Terminals[0]
	pos := s.buf.GetPositionAt(start)
	return Token{
		SymbolID: symbol,
		Name:     s.tables.SymbolName(symbol),
		Value:    s.buf.Slice(start, start+m.Length),
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
