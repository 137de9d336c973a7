// Command arbor is a thin CLI wrapper around the interpreter core: it reads
// one source file, optionally dumps the token stream and/or the AST, and
// then evaluates the program. run(args) returns an exit code; main()
// wraps it with os.Exit, diagnostics written to stderr, program output left
// alone on stdout.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arbor-lang/arbor/pkg/driver"
	"github.com/arbor-lang/arbor/pkg/lexer"
	"github.com/arbor-lang/arbor/pkg/parser"
)

const configFileName = "arbor.yml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		dumpTokens bool
		dumpAST    bool
		entry      string
	)
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printUsage()
			return 0
		case "--tokens":
			dumpTokens = true
		case "--ast":
			dumpAST = true
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "unknown flag %q\n", arg)
				return 1
			}
			if entry != "" {
				fmt.Fprintf(os.Stderr, "unexpected argument %q\n", arg)
				return 1
			}
			entry = arg
		}
	}

	cfg, err := loadConfig(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if entry == "" {
		entry = cfg.Entry
	}
	if entry == "" {
		printUsage()
		return 1
	}

	src, err := os.ReadFile(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", entry, err)
		return 1
	}

	if dumpTokens {
		if code := printTokens(string(src)); code != 0 {
			return code
		}
	}

	program, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if dumpAST {
		dumpProgram(os.Stdout, program)
	}

	interp := cfg.NewInterpreter()
	if err := interp.Run(program); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// loadConfig looks for arbor.yml alongside the entry file (or in the
// current directory, when no entry was given on the command line yet).
func loadConfig(entry string) (driver.Config, error) {
	dir := "."
	if entry != "" {
		dir = filepath.Dir(entry)
	}
	return driver.LoadConfig(filepath.Join(dir, configFileName))
}

func printTokens(src string) int {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, tok := range tokens {
		fmt.Fprintln(os.Stdout, tok)
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  arbor [--tokens] [--ast] <file.arbor>")
}
