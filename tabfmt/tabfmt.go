// Package tabfmt loads and saves the binary resource format that carries a
// compiled automaton.Tables between a grammar compiler (out of scope for
// this module) and the fishtap core. It uses github.com/dekarrin/rezi, the
// same reflection-based binary codec the teacher uses to persist its own
// structured state (server/dao/sqlite), so no struct tags or custom
// marshaling code are needed: Table's exported fields round-trip as-is.
package tabfmt

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dekarrin/fishtap/automaton"
	"github.com/dekarrin/rezi"
	"golang.org/x/crypto/blake2b"
)

// wireVersion is bumped whenever Table's shape changes in a
// backward-incompatible way. Load refuses to decode a file carrying a
// different version.
const wireVersion = 1

// Table is the on-disk mirror of automaton.Tables. Its fields are a direct
// copy of Tables', laid out so rezi's reflective encoder can walk them
// without help; Version travels with the payload so a future format change
// can be detected before the rest of the fields are trusted.
type Table struct {
	Version      int
	States       []automaton.StateData
	Actions      []map[int]automaton.LRAction
	Productions  []automaton.Production
	Variables    []int
	Virtuals     []int
	NumTerminals int
	SymbolNames  []string
	Start        int
}

func fromTables(t *automaton.Tables) *Table {
	return &Table{
		Version:      wireVersion,
		States:       t.States,
		Actions:      t.Actions,
		Productions:  t.Productions,
		Variables:    t.Variables,
		Virtuals:     t.Virtuals,
		NumTerminals: t.NumTerminals,
		SymbolNames:  t.SymbolNames,
		Start:        t.Start,
	}
}

func (tb *Table) toTables() *automaton.Tables {
	return &automaton.Tables{
		States:       tb.States,
		Actions:      tb.Actions,
		Productions:  tb.Productions,
		Variables:    tb.Variables,
		Virtuals:     tb.Virtuals,
		NumTerminals: tb.NumTerminals,
		SymbolNames:  tb.SymbolNames,
		Start:        tb.Start,
	}
}

// Encode renders t as the rezi-encoded payload, without a checksum. Most
// callers want Save, which wraps this with an integrity check.
func Encode(t *automaton.Tables) []byte {
	return rezi.EncBinary(fromTables(t))
}

// Decode parses a rezi-encoded payload produced by Encode back into Tables.
// It rejects a payload whose Version doesn't match this package's
// wireVersion and one that leaves unconsumed trailing bytes, either of which
// indicates a corrupt or foreign-format file.
func Decode(payload []byte) (*automaton.Tables, error) {
	tb := &Table{}
	n, err := rezi.DecBinary(payload, tb)
	if err != nil {
		return nil, fmt.Errorf("tabfmt: decode: %w", err)
	}
	if n != len(payload) {
		return nil, fmt.Errorf("tabfmt: decoded byte count mismatch; consumed %d/%d bytes", n, len(payload))
	}
	if tb.Version != wireVersion {
		return nil, fmt.Errorf("tabfmt: unsupported table format version %d (expected %d)", tb.Version, wireVersion)
	}
	return tb.toTables(), nil
}

// Save writes t to path as a blake2b-256 checksum followed by its rezi
// payload. The checksum lets Load detect a truncated or bit-flipped file
// before it ever reaches the decoder.
func Save(path string, t *automaton.Tables) error {
	payload := Encode(t)
	sum := blake2b.Sum256(payload)

	out := make([]byte, 0, len(sum)+len(payload))
	out = append(out, sum[:]...)
	out = append(out, payload...)

	return os.WriteFile(path, out, 0644)
}

// Load reads a table file written by Save, verifies its checksum, and
// decodes it.
func Load(path string) (*automaton.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tabfmt: read %s: %w", path, err)
	}
	if len(data) < blake2b.Size256 {
		return nil, fmt.Errorf("tabfmt: %s is too short to contain a checksum", path)
	}

	sum := data[:blake2b.Size256]
	payload := data[blake2b.Size256:]

	want := blake2b.Sum256(payload)
	if !bytes.Equal(sum, want[:]) {
		return nil, fmt.Errorf("tabfmt: %s failed its checksum; the table file is corrupt", path)
	}

	return Decode(payload)
}
