package interpreter

import (
	"strconv"

	"github.com/arbor-lang/arbor/pkg/ast"
	"github.com/arbor-lang/arbor/pkg/diag"
	"github.com/arbor-lang/arbor/pkg/runtime"
	"github.com/arbor-lang/arbor/pkg/token"
)

func (interp *Interpreter) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return evalLiteral(e)
	case *ast.Identifier:
		v, err := env.Get(e.Name)
		if err != nil {
			return nil, diag.Run(e.Position(), "name '%s' is not defined", e.Name)
		}
		return v, nil
	case *ast.Binary:
		return interp.evalBinary(e, env)
	case *ast.Unary:
		return interp.evalUnary(e, env)
	case *ast.Call:
		return interp.evalCall(e, env)
	case *ast.Assignment:
		return interp.evalAssignment(e, env)
	case *ast.Member:
		return runtime.None, nil
	case *ast.List:
		return runtime.ListStubValue{}, nil
	case *ast.Dict:
		return runtime.DictStubValue{}, nil
	default:
		return nil, diag.Run(expr.Position(), "unsupported expression %T", expr)
	}
}

// evalLiteral decodes a token's lexeme into a runtime value per its kind.
func evalLiteral(lit *ast.Literal) (runtime.Value, error) {
	tok := lit.Token
	switch tok.Kind {
	case token.Integer:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, diag.Run(tok.Pos, "malformed integer literal %q", tok.Lexeme)
		}
		return runtime.IntValue{Val: n}, nil
	case token.Float:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, diag.Run(tok.Pos, "malformed float literal %q", tok.Lexeme)
		}
		return runtime.FloatValue{Val: f}, nil
	case token.String:
		return runtime.StringValue{Val: tok.Lexeme}, nil
	case token.Boolean:
		return runtime.Bool(tok.Lexeme == "True"), nil
	case token.None:
		return runtime.None, nil
	default:
		return nil, diag.Run(tok.Pos, "unsupported literal kind %s", tok.Kind)
	}
}

// evalBinary applies the arm-combination rules for binary operators. Both
// operands are always evaluated, left-to-right, before the operator is
// applied — including for `and`/`or`, which do not short-circuit.
func (interp *Interpreter) evalBinary(node *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := interp.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := interp.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	if node.Op == token.And {
		return runtime.Bool(runtime.Truthy(left) && runtime.Truthy(right)), nil
	}
	if node.Op == token.Or {
		return runtime.Bool(runtime.Truthy(left) || runtime.Truthy(right)), nil
	}

	return interp.applyBinaryOp(node.Op, left, right, node.Position())
}

// asFloat widens Int64/Float64 to float64, matching the interpreter's
// "mixed or both float" arm; any other value kind fails the match.
func asFloat(v runtime.Value) (float64, bool) {
	switch val := v.(type) {
	case runtime.FloatValue:
		return val.Val, true
	case runtime.IntValue:
		return float64(val.Val), true
	default:
		return 0, false
	}
}

func intBinary(op token.Kind, l, r int64, pos token.Position) (runtime.Value, error) {
	switch op {
	case token.Plus:
		return runtime.IntValue{Val: l + r}, nil
	case token.Minus:
		return runtime.IntValue{Val: l - r}, nil
	case token.Multiply:
		return runtime.IntValue{Val: l * r}, nil
	case token.Divide:
		if r == 0 {
			return nil, diag.Run(pos, "division by zero")
		}
		return runtime.FloatValue{Val: float64(l) / float64(r)}, nil
	case token.Modulo:
		if r == 0 {
			return nil, diag.Run(pos, "modulo by zero")
		}
		return runtime.IntValue{Val: l % r}, nil
	case token.Equal:
		return runtime.Bool(l == r), nil
	case token.NotEqual:
		return runtime.Bool(l != r), nil
	case token.Less:
		return runtime.Bool(l < r), nil
	case token.LessEqual:
		return runtime.Bool(l <= r), nil
	case token.Greater:
		return runtime.Bool(l > r), nil
	case token.GreaterEqual:
		return runtime.Bool(l >= r), nil
	default:
		return nil, diag.Run(pos, "unsupported binary operation")
	}
}

func floatBinary(op token.Kind, l, r float64, pos token.Position) (runtime.Value, error) {
	switch op {
	case token.Plus:
		return runtime.FloatValue{Val: l + r}, nil
	case token.Minus:
		return runtime.FloatValue{Val: l - r}, nil
	case token.Multiply:
		return runtime.FloatValue{Val: l * r}, nil
	case token.Divide:
		if r == 0 {
			return nil, diag.Run(pos, "division by zero")
		}
		return runtime.FloatValue{Val: l / r}, nil
	case token.Equal:
		return runtime.Bool(l == r), nil
	case token.NotEqual:
		return runtime.Bool(l != r), nil
	case token.Less:
		return runtime.Bool(l < r), nil
	case token.LessEqual:
		return runtime.Bool(l <= r), nil
	case token.Greater:
		return runtime.Bool(l > r), nil
	case token.GreaterEqual:
		return runtime.Bool(l >= r), nil
	default:
		return nil, diag.Run(pos, "unsupported binary operation")
	}
}

func stringBinary(op token.Kind, l, r string, pos token.Position) (runtime.Value, error) {
	switch op {
	case token.Plus:
		return runtime.StringValue{Val: l + r}, nil
	case token.Equal:
		return runtime.Bool(l == r), nil
	case token.NotEqual:
		return runtime.Bool(l != r), nil
	case token.Less:
		return runtime.Bool(l < r), nil
	case token.LessEqual:
		return runtime.Bool(l <= r), nil
	case token.Greater:
		return runtime.Bool(l > r), nil
	case token.GreaterEqual:
		return runtime.Bool(l >= r), nil
	default:
		return nil, diag.Run(pos, "unsupported binary operation")
	}
}

// evalUnary applies Minus or Not. Minus negates an Int64 only and passes
// every other arm through unchanged (see DESIGN.md — a deliberate,
// preserved behavior, not a bug to silently "fix"). Not computes
// !truthy(operand).
func (interp *Interpreter) evalUnary(node *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	operand, err := interp.evalExpression(node.Operand, env)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case token.Minus:
		if i, ok := operand.(runtime.IntValue); ok {
			return runtime.IntValue{Val: -i.Val}, nil
		}
		return operand, nil
	case token.Not:
		return runtime.Bool(!runtime.Truthy(operand)), nil
	default:
		return nil, diag.Run(node.Position(), "unsupported unary operator")
	}
}

func (interp *Interpreter) evalCall(node *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := interp.evalExpression(node.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, len(node.Args))
	for i, argExpr := range node.Args {
		v, err := interp.evalExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case runtime.BuiltinValue:
		v, err := fn.Fn(args)
		if err != nil {
			if _, ok := err.(*diag.Diagnostic); ok {
				return nil, err
			}
			return nil, diag.Run(node.Position(), "%s", err.Error())
		}
		return v, nil
	case *runtime.FunctionValue:
		return interp.callFunction(fn, args, node.Position())
	default:
		return nil, diag.Run(node.Position(), "'%s' object is not callable", callee.Kind())
	}
}

func (interp *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value, pos token.Position) (runtime.Value, error) {
	if interp.callDepth >= interp.MaxCallDepth {
		return nil, diag.Run(pos, "maximum recursion depth exceeded")
	}
	interp.callDepth++
	defer func() { interp.callDepth-- }()

	params := fn.Decl.Parameters
	if len(args) > len(params) {
		return nil, diag.Run(pos, "%s() takes %d positional arguments but %d were given", fn.Decl.Name, len(params), len(args))
	}

	callEnv := runtime.NewEnvironment(fn.Closure)
	for i, param := range params {
		if i < len(args) {
			callEnv.Define(param.Name, args[i])
			continue
		}
		if param.Default == nil {
			return nil, diag.Run(pos, "%s() missing required positional argument: '%s'", fn.Decl.Name, param.Name)
		}
		defaultVal, err := interp.evalExpression(param.Default, fn.Closure)
		if err != nil {
			return nil, err
		}
		callEnv.Define(param.Name, defaultVal)
	}

	_, err := interp.execStatements(fn.Decl.Body.Statements, callEnv)
	if err == nil {
		return runtime.None, nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}

// evalAssignment always binds in the current (innermost) scope
// ("assignment-creates-local" semantics) — the evaluator never walks the
// environment chain to mutate an outer binding. Compound operators (+=,
// -=, *=, /=) read the existing binding first, which does walk the chain
// via Environment.Get, then rebind the combined result locally.
func (interp *Interpreter) evalAssignment(node *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	ident, ok := node.Target.(*ast.Identifier)
	if !ok {
		return nil, diag.Run(node.Position(), "invalid assignment target")
	}
	rhs, err := interp.evalExpression(node.Value, env)
	if err != nil {
		return nil, err
	}

	if node.Op == token.Assign {
		env.Define(ident.Name, rhs)
		return rhs, nil
	}

	current, err := env.Get(ident.Name)
	if err != nil {
		return nil, diag.Run(node.Position(), "name '%s' is not defined", ident.Name)
	}
	var combineOp token.Kind
	switch node.Op {
	case token.PlusAssign:
		combineOp = token.Plus
	case token.MinusAssign:
		combineOp = token.Minus
	case token.MultAssign:
		combineOp = token.Multiply
	case token.DivAssign:
		combineOp = token.Divide
	default:
		return nil, diag.Run(node.Position(), "unsupported assignment operator")
	}
	combined, err := interp.applyBinaryOp(combineOp, current, rhs, node.Position())
	if err != nil {
		return nil, err
	}
	env.Define(ident.Name, combined)
	return combined, nil
}

// applyBinaryOp factors the arm dispatch shared between evalBinary and the
// compound-assignment operators.
func (interp *Interpreter) applyBinaryOp(op token.Kind, left, right runtime.Value, pos token.Position) (runtime.Value, error) {
	if li, lok := left.(runtime.IntValue); lok {
		if ri, rok := right.(runtime.IntValue); rok {
			return intBinary(op, li.Val, ri.Val, pos)
		}
	}
	if lf, lok := asFloat(left); lok {
		if rf, rok := asFloat(right); rok {
			return floatBinary(op, lf, rf, pos)
		}
	}
	if ls, lok := left.(runtime.StringValue); lok {
		if rs, rok := right.(runtime.StringValue); rok {
			return stringBinary(op, ls.Val, rs.Val, pos)
		}
	}
	return nil, diag.Run(pos, "unsupported binary operation")
}
