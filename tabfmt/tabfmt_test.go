package tabfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/fishtap/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTables() *automaton.Tables {
	dead := [256]int{}
	for i := range dead {
		dead[i] = automaton.DeadState
	}
	s0 := automaton.StateData{Cached: dead, Bulk: []automaton.Range{{Start: 0x100, End: 0x200, Target: 1}}}
	s0.Cached['a'] = 1
	s1 := automaton.StateData{Cached: dead, Terminals: []int{0}}

	return &automaton.Tables{
		States: []automaton.StateData{s0, s1},
		Actions: []map[int]automaton.LRAction{
			0: {0: {Code: automaton.Shift, Data: 1}},
			1: {-1: {Code: automaton.Accept}},
		},
		Productions: []automaton.Production{
			{
				Head:            0,
				ReductionLength: 1,
				HeadAction:      automaton.TreeActionNone,
				Bytecode:        []automaton.Instr{{Kind: automaton.OpPopStack, TreeAction: automaton.TreeActionNone}},
			},
		},
		Variables:    []int{1},
		Virtuals:     []int{2},
		NumTerminals: 1,
		SymbolNames:  []string{"a", "S", "empty"},
		Start:        0,
	}
}

func Test_EncodeDecode_roundTrips(t *testing.T) {
	original := sampleTables()

	payload := Encode(original)
	decoded, err := Decode(payload)

	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func Test_Decode_rejectsTrailingBytes(t *testing.T) {
	payload := Encode(sampleTables())
	payload = append(payload, 0xFF)

	_, err := Decode(payload)
	assert.Error(t, err)
}

func Test_SaveLoad_roundTripsThroughDisk(t *testing.T) {
	original := sampleTables()
	path := filepath.Join(t.TempDir(), "grammar.fishtab")

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func Test_Load_rejectsCorruptedChecksum(t *testing.T) {
	original := sampleTables()
	path := filepath.Join(t.TempDir(), "grammar.fishtab")
	require.NoError(t, Save(path, original))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[0] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	assert.Error(t, err)
}
