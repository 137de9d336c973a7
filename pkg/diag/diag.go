// Package diag defines the fatal diagnostics raised by the lexer, parser,
// and interpreter. A Diagnostic is disjoint from the interpreter's internal
// control signals (return/break/continue): reaching one always terminates
// the run.
package diag

import (
	"fmt"

	"github.com/arbor-lang/arbor/pkg/token"
)

// Category tags where in the pipeline a Diagnostic originated.
type Category string

const (
	Lexical Category = "lexical"
	Parse   Category = "parse"
	Runtime Category = "runtime"
)

// Diagnostic is a fatal, human-readable error carrying a category and the
// source position it occurred at.
type Diagnostic struct {
	Category Category
	Message  string
	Pos      token.Position
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s error at %s: %s", d.Category, d.Pos, d.Message)
}

// New constructs a Diagnostic.
func New(category Category, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Category: category, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func Lex(pos token.Position, format string, args ...any) *Diagnostic {
	return New(Lexical, pos, format, args...)
}

func ParseErr(pos token.Position, format string, args ...any) *Diagnostic {
	return New(Parse, pos, format, args...)
}

func Run(pos token.Position, format string, args ...any) *Diagnostic {
	return New(Runtime, pos, format, args...)
}
