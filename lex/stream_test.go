package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// S3: DFA accepting "if", input "iff", maxDistance=1. The longest exact
// match is "if"; the leftover "f" then fails to even leave the start state
// and is reported as a single UnexpectedChar at position 2.
func Test_Stream_S3_fuzzyRecoveryAfterExactMatch(t *testing.T) {
	var errs []ParseError
	s := NewStream(ifTables(), "iff", 1, func(e ParseError) { errs = append(errs, e) })

	tok1 := s.Next()
	assert.Equal(t, 0, tok1.SymbolID)
	assert.Equal(t, "if", tok1.Value)

	tok2 := s.Next()
	assert.True(t, tok2.IsEOF())

	if assert.Len(t, errs, 1) {
		assert.Equal(t, UnexpectedChar, errs[0].Kind)
		assert.Equal(t, "f", errs[0].Char)
		assert.Equal(t, 3, errs[0].Column)
	}
}

// S4: DFA accepting "if", input "i" then EOF, maxDistance=1.
func Test_Stream_S4_fuzzyInsertAtEOF(t *testing.T) {
	var errs []ParseError
	s := NewStream(ifTables(), "i", 1, func(e ParseError) { errs = append(errs, e) })

	tok := s.Next()
	assert.Equal(t, 0, tok.SymbolID)
	assert.Equal(t, "i", tok.Value)

	if assert.Len(t, errs, 1) {
		assert.Equal(t, "", errs[0].Char)
	}

	eof := s.Next()
	assert.True(t, eof.IsEOF())
}

// Property 4: forward progress. A stream containing no recoverable tokens
// never stalls: it reports one UnexpectedChar per skipped code unit and
// still reaches EOF.
func Test_Stream_forwardProgress(t *testing.T) {
	var errs []ParseError
	s := NewStream(ifTables(), "zzzzz", 0, func(e ParseError) { errs = append(errs, e) })

	tok := s.Next()
	assert.True(t, tok.IsEOF())
	assert.Len(t, errs, 5)
}

func Test_Stream_rewindReplaysTokens(t *testing.T) {
	s := NewStream(ifTables(), "ifif", 0, func(ParseError) {})

	first := s.Next()
	second := s.Next()

	s.Rewind(2)

	assert.Equal(t, first, s.Next())
	assert.Equal(t, second, s.Next())
}

func Test_Stream_markAndReset(t *testing.T) {
	s := NewStream(ifTables(), "ifif", 0, func(ParseError) {})

	s.Next()
	mark := s.Mark()
	s.Next()
	s.Reset(mark)

	tok := s.Next()
	assert.Equal(t, "if", tok.Value)
}
