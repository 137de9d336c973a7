package interpreter

import "github.com/arbor-lang/arbor/pkg/runtime"

// returnSignal, breakSignal, and continueSignal implement Go's error
// interface so they can be propagated up the call stack with a plain
// `return err` from every statement-evaluating method. They are intercepted
// at the innermost construct that can handle them (a loop for
// break/continue, a function call for return) and never reach the caller of
// Run as an error.

type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return outside function" }

type breakSignal struct{}

func (breakSignal) Error() string { return "break outside loop" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue outside loop" }
