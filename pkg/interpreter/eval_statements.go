package interpreter

import (
	"github.com/arbor-lang/arbor/pkg/ast"
	"github.com/arbor-lang/arbor/pkg/diag"
	"github.com/arbor-lang/arbor/pkg/runtime"
)

// execStatements runs stmts in order against env, stopping at the first
// diagnostic or control signal.
func (interp *Interpreter) execStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	var last runtime.Value = runtime.None
	for _, stmt := range stmts {
		val, err := interp.execStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (interp *Interpreter) execBlock(block *ast.Block, env *runtime.Environment) error {
	_, err := interp.execStatements(block.Statements, env)
	return err
}

func (interp *Interpreter) execStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		val, err := interp.evalExpression(s.Expr, env)
		return val, err
	case *ast.Block:
		return runtime.None, interp.execBlock(s, env)
	case *ast.If:
		return runtime.None, interp.execIf(s, env)
	case *ast.While:
		return runtime.None, interp.execWhile(s, env)
	case *ast.For:
		return runtime.None, interp.execFor(s, env)
	case *ast.FunctionDef:
		fn := &runtime.FunctionValue{Decl: s, Closure: env}
		env.Define(s.Name, fn)
		return runtime.None, nil
	case *ast.ClassDef:
		env.Define(s.Name, &runtime.ClassValue{Decl: s})
		return runtime.None, nil
	case *ast.Return:
		var val runtime.Value = runtime.None
		if s.Value != nil {
			v, err := interp.evalExpression(s.Value, env)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return nil, returnSignal{value: val}
	case *ast.Break:
		return nil, breakSignal{}
	case *ast.Continue:
		return nil, continueSignal{}
	case *ast.Pass:
		return runtime.None, nil
	default:
		return nil, diag.Run(stmt.Position(), "unsupported statement %T", stmt)
	}
}

// execIf, execWhile, and execFor all run their bodies directly in the
// environment they are given rather than opening a fresh child scope: only
// a function call introduces a new Environment. An assignment inside an
// if/while/for body binds in whatever scope was already current at that
// point.
func (interp *Interpreter) execIf(node *ast.If, env *runtime.Environment) error {
	cond, err := interp.evalExpression(node.Condition, env)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return interp.execBlock(node.Then, env)
	}
	switch els := node.Else.(type) {
	case nil:
		return nil
	case *ast.Block:
		return interp.execBlock(els, env)
	case *ast.If:
		return interp.execIf(els, env)
	default:
		return diag.Run(node.Position(), "unsupported else clause %T", node.Else)
	}
}

func (interp *Interpreter) execWhile(node *ast.While, env *runtime.Environment) error {
	for {
		cond, err := interp.evalExpression(node.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		err = interp.execBlock(node.Body, env)
		if err == nil {
			continue
		}
		switch err.(type) {
		case breakSignal:
			return nil
		case continueSignal:
			continue
		default:
			return err
		}
	}
}

func (interp *Interpreter) execFor(node *ast.For, env *runtime.Environment) error {
	iterable, err := interp.evalExpression(node.Iterable, env)
	if err != nil {
		return err
	}
	for _, el := range iterationElements(iterable) {
		env.Define(node.Variable, el)
		err := interp.execBlock(node.Body, env)
		if err == nil {
			continue
		}
		switch err.(type) {
		case breakSignal:
			return nil
		case continueSignal:
			continue
		default:
			return err
		}
	}
	return nil
}

// iterationElements expands a for-loop's iterable into the ordered sequence
// of values it binds in turn: only a RangeValue (the result of the range()
// builtin) drives iteration in this core; every other value kind is a
// no-op, not an error — the body simply never executes.
func iterationElements(v runtime.Value) []runtime.Value {
	r, ok := v.(runtime.RangeValue)
	if !ok {
		return nil
	}
	nums := r.Values()
	out := make([]runtime.Value, len(nums))
	for i, n := range nums {
		out[i] = runtime.IntValue{Val: n}
	}
	return out
}
