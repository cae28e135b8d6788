// Package fishtap is the top-level entry point: it wires a loaded
// automaton.Tables, a registered ActionRegistry, and a Config together into
// a Driver, and carries the core's configuration and error types so callers
// don't need to import automaton/lex/parse directly for everyday use.
package fishtap

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config controls a Driver's resource bounds, error-recovery behavior, and
// lexical fuzzy-matching tolerance.
type Config struct {
	// MaxErrorCount stops a parse once this many syntactic (UnexpectedToken)
	// errors have been reported. The count is checked after each successful
	// recovery; lexical (UnexpectedChar) errors do not count toward it.
	// Zero means unlimited.
	MaxErrorCount int `toml:"max_error_count"`

	// RecoveryEnabled turns on the parser's speculative error recovery.
	RecoveryEnabled bool `toml:"recovery_enabled"`

	// MaxStackDepth bounds the LR state stack. Zero means unbounded.
	MaxStackDepth int `toml:"max_stack_depth"`

	// MaxFuzzyDistance bounds the cumulative edit distance the lexer's
	// fuzzy matcher will spend recovering from a single unrecognized run of
	// input.
	MaxFuzzyDistance int `toml:"max_fuzzy_distance"`
}

// DefaultConfig returns the Config used when the caller supplies none:
// recovery on, a fuzzy distance of 2, no error or stack-depth limit.
func DefaultConfig() Config {
	return Config{
		RecoveryEnabled:  true,
		MaxFuzzyDistance: 2,
	}
}

// LoadConfigFile loads a Config from a TOML file, following the same
// read-then-unmarshal shape the teacher's tqw package uses for its own
// TOML-based file formats. Fields absent from the file keep their
// DefaultConfig value.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("fishtap: load config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("fishtap: parse config %s: %w", path, err)
	}

	return cfg, nil
}
