// Package interpreter tree-walks an Arbor *ast.Program against a runtime
// Environment: a small struct holding interpreter-wide state, one Eval-ish
// method per AST node family, and non-local control transfer
// (return/break/continue) implemented as error-satisfying signal types
// rather than sentinel return values.
package interpreter

import (
	"io"
	"os"

	"github.com/arbor-lang/arbor/pkg/ast"
	"github.com/arbor-lang/arbor/pkg/diag"
	"github.com/arbor-lang/arbor/pkg/runtime"
)

// defaultMaxCallDepth bounds recursive Arbor function calls. Without a
// guard, a runaway recursive program (no base case, or one that never
// terminates) overflows the host Go stack with an unrecoverable fatal
// error instead of a catchable diagnostic.
const defaultMaxCallDepth = 4000

// Interpreter holds the state shared across one program run.
type Interpreter struct {
	Globals      *runtime.Environment
	Stdout       io.Writer
	MaxCallDepth int

	callDepth int
}

// New creates an Interpreter with a fresh global scope populated with the
// built-in functions, writing print() output to os.Stdout. Tests construct
// an Interpreter directly and override Stdout to capture output instead.
func New() *Interpreter {
	interp := &Interpreter{
		Globals:      runtime.NewEnvironment(nil),
		Stdout:       os.Stdout,
		MaxCallDepth: defaultMaxCallDepth,
	}
	registerBuiltins(interp)
	interp.Globals.Define("__name__", runtime.StringValue{Val: "__main__"})
	return interp
}

// Run executes a parsed program to completion in the interpreter's global
// scope. A bare top-level break/continue is a diagnostic, since there is no
// enclosing loop to catch it; a bare top-level return simply ends the
// program, the same as falling off the end of the statement list.
func (interp *Interpreter) Run(program *ast.Program) error {
	_, err := interp.execStatements(program.Statements, interp.Globals)
	switch sig := err.(type) {
	case nil:
		return nil
	case returnSignal:
		return nil
	case breakSignal:
		return diag.Run(program.Position(), "'break' outside loop")
	case continueSignal:
		return diag.Run(program.Position(), "'continue' outside loop")
	default:
		_ = sig
		return err
	}
}
