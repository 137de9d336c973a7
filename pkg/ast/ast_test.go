package ast_test

import (
	"testing"

	. "github.com/arbor-lang/arbor/pkg/ast"
	"github.com/arbor-lang/arbor/pkg/parser"
	"github.com/arbor-lang/arbor/pkg/token"
)

func TestNewProgramPositionFallsBackWhenEmpty(t *testing.T) {
	prog := NewProgram(nil)
	if got, want := prog.Position(), (token.Position{Line: 1, Column: 1}); got != want {
		t.Errorf("empty Program.Position() = %v, want %v", got, want)
	}
}

func TestNewProgramPositionTracksFirstStatement(t *testing.T) {
	pos := token.Position{Line: 5, Column: 2}
	stmt := NewPass(pos)
	prog := NewProgram([]Statement{stmt})
	if got := prog.Position(); got != pos {
		t.Errorf("Program.Position() = %v, want %v", got, pos)
	}
}

func TestIfElseSlotAcceptsBlockOrNestedIf(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	cond := NewIdentifier(pos, "x")
	block := NewBlock(pos, nil)

	withBlockElse := NewIf(pos, cond, block, block)
	if _, ok := withBlockElse.Else.(*Block); !ok {
		t.Errorf("If.Else holding a *Block should type-assert back to *Block")
	}

	nested := NewIf(pos, cond, block, nil)
	withNestedElse := NewIf(pos, cond, block, nested)
	if _, ok := withNestedElse.Else.(*If); !ok {
		t.Errorf("If.Else holding a nested *If should type-assert back to *If")
	}
}

// Parsing, printing, and parsing again must produce a structurally
// identical AST (ignoring source positions) for every well-formed program.
func TestParsePrintParseRoundTripsStructurally(t *testing.T) {
	sources := []string{
		"x = 1 + 2 * 3\n",
		"def f(a, b=2):\n    return a + b\n",
		"if x < 10:\n    print(x)\nelif x < 20:\n    print(x * 2)\nelse:\n    print(0)\n",
		"for i in range(5):\n    if i == 2:\n        break\n    print(i)\n",
		"while x:\n    x = x - 1\n",
		"class Shape(Base):\n    pass\n",
		`print("hi", 1, True, None)` + "\n",
		"total = 0\nfor i in range(3):\n    total += i\nprint(not total)\n",
	}
	for _, src := range sources {
		first, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", src, err)
		}
		printed := Print(first)
		second, err := parser.Parse(printed)
		if err != nil {
			t.Fatalf("Parse(printed from %q) error: %v\nprinted source:\n%s", src, err, printed)
		}
		if !programsStructurallyEqual(first, second) {
			t.Errorf("round-trip mismatch for %q\nprinted source:\n%s", src, printed)
		}
	}
}

func programsStructurallyEqual(a, b *Program) bool {
	if len(a.Statements) != len(b.Statements) {
		return false
	}
	for i := range a.Statements {
		if !statementsEqual(a.Statements[i], b.Statements[i]) {
			return false
		}
	}
	return true
}

func statementsEqual(a, b Statement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *ExpressionStatement:
		bv, ok := b.(*ExpressionStatement)
		return ok && expressionsEqual(av.Expr, bv.Expr)
	case *Block:
		bv, ok := b.(*Block)
		if !ok || len(av.Statements) != len(bv.Statements) {
			return false
		}
		for i := range av.Statements {
			if !statementsEqual(av.Statements[i], bv.Statements[i]) {
				return false
			}
		}
		return true
	case *If:
		bv, ok := b.(*If)
		return ok && expressionsEqual(av.Condition, bv.Condition) &&
			statementsEqual(av.Then, bv.Then) && statementsEqual(av.Else, bv.Else)
	case *While:
		bv, ok := b.(*While)
		return ok && expressionsEqual(av.Condition, bv.Condition) && statementsEqual(av.Body, bv.Body)
	case *For:
		bv, ok := b.(*For)
		return ok && av.Variable == bv.Variable && expressionsEqual(av.Iterable, bv.Iterable) && statementsEqual(av.Body, bv.Body)
	case *FunctionDef:
		bv, ok := b.(*FunctionDef)
		if !ok || av.Name != bv.Name || len(av.Parameters) != len(bv.Parameters) {
			return false
		}
		for i := range av.Parameters {
			if av.Parameters[i].Name != bv.Parameters[i].Name {
				return false
			}
			if (av.Parameters[i].Default == nil) != (bv.Parameters[i].Default == nil) {
				return false
			}
			if av.Parameters[i].Default != nil && !expressionsEqual(av.Parameters[i].Default, bv.Parameters[i].Default) {
				return false
			}
		}
		return statementsEqual(av.Body, bv.Body)
	case *ClassDef:
		bv, ok := b.(*ClassDef)
		if !ok || av.Name != bv.Name || len(av.Bases) != len(bv.Bases) {
			return false
		}
		for i := range av.Bases {
			if av.Bases[i] != bv.Bases[i] {
				return false
			}
		}
		return statementsEqual(av.Body, bv.Body)
	case *Return:
		bv, ok := b.(*Return)
		if !ok || (av.Value == nil) != (bv.Value == nil) {
			return false
		}
		if av.Value == nil {
			return true
		}
		return expressionsEqual(av.Value, bv.Value)
	case *Break:
		_, ok := b.(*Break)
		return ok
	case *Continue:
		_, ok := b.(*Continue)
		return ok
	case *Pass:
		_, ok := b.(*Pass)
		return ok
	default:
		return false
	}
}

func expressionsEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Literal:
		bv, ok := b.(*Literal)
		return ok && av.Token.Kind == bv.Token.Kind && av.Token.Lexeme == bv.Token.Lexeme
	case *Identifier:
		bv, ok := b.(*Identifier)
		return ok && av.Name == bv.Name
	case *Binary:
		bv, ok := b.(*Binary)
		return ok && av.Op == bv.Op && expressionsEqual(av.Left, bv.Left) && expressionsEqual(av.Right, bv.Right)
	case *Unary:
		bv, ok := b.(*Unary)
		return ok && av.Op == bv.Op && expressionsEqual(av.Operand, bv.Operand)
	case *Call:
		bv, ok := b.(*Call)
		if !ok || len(av.Args) != len(bv.Args) || !expressionsEqual(av.Callee, bv.Callee) {
			return false
		}
		for i := range av.Args {
			if !expressionsEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *Assignment:
		bv, ok := b.(*Assignment)
		return ok && av.Op == bv.Op && expressionsEqual(av.Target, bv.Target) && expressionsEqual(av.Value, bv.Value)
	case *Member:
		bv, ok := b.(*Member)
		return ok && av.Name == bv.Name && expressionsEqual(av.Object, bv.Object)
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !expressionsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for i := range av.Pairs {
			if !expressionsEqual(av.Pairs[i].Key, bv.Pairs[i].Key) || !expressionsEqual(av.Pairs[i].Value, bv.Pairs[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
