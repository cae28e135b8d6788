// Package parse holds the LR(k) parser driver: the action decoder, the
// reduction bytecode interpreter, the parse-tree builder, the main
// shift/reduce/goto loop, and the speculative error-recovery simulator that
// backs it. It depends on automaton for tables and on lex for tokens; nothing
// above it should need to reach back into either.
package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/fishtap/automaton"
	"github.com/dekarrin/fishtap/lex"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// ParseTree is one node of the parse tree the builder assembles during a
// parse. A terminal node is a leaf carrying the token it was built from; a
// non-terminal node carries the children assembled by a reduction, in
// production-body order.
//
// DefaultAction records the production's HeadAction at the time this node was
// reduced. It is metadata only: nothing in this package re-applies it when
// the node is later popped by an ancestor reduction (that ancestor's own
// bytecode already carries the TreeAction to use), but it is exposed for
// diagnostics and for host code that wants to inspect how a node would fold
// by default.
type ParseTree struct {
	Terminal     bool
	Value        string
	Source       lex.Token
	Children     []*ParseTree
	DefaultAction automaton.TreeAction
}

// String returns a prettified, line-by-line representation of the tree. Two
// trees are considered structurally identical if their String() output
// matches.
func (pt *ParseTree) String() string {
	return pt.leveledStr("", "")
}

// Copy returns a duplicate, deeply-copied tree.
func (pt *ParseTree) Copy() *ParseTree {
	if pt == nil {
		return nil
	}
	cp := &ParseTree{
		Terminal:      pt.Terminal,
		Value:         pt.Value,
		Source:        pt.Source,
		DefaultAction: pt.DefaultAction,
		Children:      make([]*ParseTree, len(pt.Children)),
	}
	for i := range pt.Children {
		cp.Children[i] = pt.Children[i].Copy()
	}
	return cp
}

func (pt *ParseTree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	if pt.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %q)", pt.Value))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", pt.Value))
	}

	for i := range pt.Children {
		sb.WriteRune('\n')
		var leveledFirstPrefix, leveledContPrefix string
		if i+1 < len(pt.Children) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix("")
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast("")
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		sb.WriteString(pt.Children[i].leveledStr(leveledFirstPrefix, leveledContPrefix))
	}

	return sb.String()
}

// Equal reports whether two trees have the exact same structure: same
// Terminal flag, same Value, and recursively equal Children. Source and
// DefaultAction are not compared, since they carry no structural meaning.
func (pt *ParseTree) Equal(other *ParseTree) bool {
	if pt == nil || other == nil {
		return pt == other
	}
	if pt.Terminal != other.Terminal || pt.Value != other.Value {
		return false
	}
	if len(pt.Children) != len(other.Children) {
		return false
	}
	for i := range pt.Children {
		if !pt.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
