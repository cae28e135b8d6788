/*
Fishtapc drives a compiled automaton table file against input text and
reports the resulting parse tree or the errors encountered along the way.

It reads a table file produced by a grammar compiler (out of scope for this
module) and either parses a single document read from a file or stdin, or
drops into an interactive REPL that parses one snippet per line.

Usage:

	fishtapc [flags] TABLE [FILE]

The flags are:

	-v, --version
		Give the current version of fishtapc and then exit.

	-r, --repl
		Force an interactive read-eval-parse-loop even when stdin isn't a
		TTY.

	-e, --max-errors N
		Stop a parse after N syntax errors are reported; lexical errors do
		not count. Zero (the default) means unlimited.

	-m, --max-distance N
		Maximum cumulative edit distance the lexer's fuzzy matcher may
		spend recovering from a single unrecognized run of input. Defaults
		to 2.

	-s, --max-stack N
		Bound the LR state stack to N entries as a safety net. Zero (the
		default) means unbounded.

	-n, --no-recovery
		Disable the parser's speculative error recovery; stop at the first
		unexpected token.

	-c, --command COMMANDS
		Immediately parse the given snippet(s) and exit. The argument is
		split into snippets on shell-word boundaries, so whitespace
		separates snippets and quoting keeps one snippet together.

If FILE is omitted and stdin is connected to a TTY, fishtapc starts an
interactive REPL reading snippets via GNU-readline-style editing. Otherwise
it reads the whole of FILE (or stdin) as a single document to parse.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/fishtap"
	"github.com/dekarrin/fishtap/internal/lineinput"
	"github.com/dekarrin/fishtap/internal/version"
	"github.com/dekarrin/fishtap/tabfmt"
	"github.com/dustin/go-humanize"
	shellwords "github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dekarrin/rosed"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParseError indicates a parse reported at least one error, whether
	// or not it recovered from it.
	ExitParseError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue loading the table file or input.
	ExitInitError
)

const consoleOutputWidth = 80

var (
	returnCode    = ExitSuccess
	flagVersion   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagRepl      = pflag.BoolP("repl", "r", false, "Force an interactive REPL even when stdin isn't a TTY")
	flagMaxErrors = pflag.IntP("max-errors", "e", 0, "Stop a parse after this many syntax errors; 0 means unlimited")
	flagMaxDist   = pflag.IntP("max-distance", "m", 2, "Maximum cumulative fuzzy-lexing edit distance")
	flagMaxStack  = pflag.IntP("max-stack", "s", 0, "Bound the LR state stack; 0 means unbounded")
	flagNoRecover = pflag.BoolP("no-recovery", "n", false, "Disable speculative parser error recovery")
	flagCommand   = pflag.StringP("command", "c", "", "Immediately parse the given shell-word-separated snippet(s) and exit")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: a compiled table file is required")
		returnCode = ExitInitError
		return
	}
	tablePath := args[0]

	info, err := os.Stat(tablePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", wrapErr(err))
		returnCode = ExitInitError
		return
	}
	tables, err := tabfmt.Load(tablePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", wrapErr(err))
		returnCode = ExitInitError
		return
	}
	fmt.Fprintf(os.Stderr, "loaded %s (%s)\n", tablePath, humanize.Bytes(uint64(info.Size())))

	cfg := fishtap.DefaultConfig()
	cfg.MaxErrorCount = *flagMaxErrors
	cfg.MaxStackDepth = *flagMaxStack
	cfg.MaxFuzzyDistance = *flagMaxDist
	cfg.RecoveryEnabled = !*flagNoRecover

	driver := fishtap.New(tables, nil, cfg)

	if *flagCommand != "" {
		snippets, err := shellwords.Split(*flagCommand)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", wrapErr(err))
			returnCode = ExitInitError
			return
		}
		for _, snippet := range snippets {
			if !runOne(driver, snippet) {
				returnCode = ExitParseError
			}
		}
		return
	}

	var docPath string
	if len(args) > 1 {
		docPath = args[1]
	}

	if docPath == "" && (*flagRepl || isatty.IsTerminal(os.Stdin.Fd())) {
		if err := runRepl(driver); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", wrapErr(err))
			returnCode = ExitInitError
		}
		return
	}

	text, err := readDocument(docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", wrapErr(err))
		returnCode = ExitInitError
		return
	}
	if !runOne(driver, text) {
		returnCode = ExitParseError
	}
}

func readDocument(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// runOne parses text with driver, writes any errors to stderr and the tree
// (if any) to stdout, and returns false if the parse reported any error.
func runOne(driver *fishtap.Driver, text string) bool {
	tree, errs := driver.Parse(text)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s\n", wrapErr(e))
	}
	if tree != nil {
		fmt.Println(tree.String())
	}
	return len(errs) == 0
}

func runRepl(driver *fishtap.Driver) error {
	reader, err := lineinput.NewInteractiveReader("fishtap> ")
	if err != nil {
		return err
	}
	defer reader.Close()
	reader.AllowBlank(false)

	for {
		line, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if line == "QUIT" {
			return nil
		}
		runOne(driver, line)
	}
}

func wrapErr(err error) string {
	return rosed.Edit(err.Error()).Wrap(consoleOutputWidth).String()
}
