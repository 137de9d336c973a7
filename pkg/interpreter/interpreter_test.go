package interpreter

import (
	"bytes"
	"testing"

	"github.com/arbor-lang/arbor/pkg/parser"
)

// run parses and evaluates src against a fresh Interpreter, capturing
// print() output, and fails the test on any error.
func run(t *testing.T, src string) string {
	t.Helper()
	program, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	interp := New()
	var out bytes.Buffer
	interp.Stdout = &out
	if err := interp.Run(program); err != nil {
		t.Fatalf("Run(%q) error: %v", src, err)
	}
	return out.String()
}

// runExpectError parses and runs src, asserting that evaluation fails.
func runExpectError(t *testing.T, src string) error {
	t.Helper()
	program, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	interp := New()
	interp.Stdout = &bytes.Buffer{}
	err = interp.Run(program)
	if err == nil {
		t.Fatalf("Run(%q): expected an error, got none", src)
	}
	return err
}

// Scenario 1: hello world.
func TestScenarioHelloWorld(t *testing.T) {
	got := run(t, `print("hello, world")`+"\n")
	if want := "hello, world\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 2: recursive Fibonacci.
func TestScenarioRecursiveFibonacci(t *testing.T) {
	src := "def f(n):\n    if n <= 1:\n        return n\n    return f(n-1) + f(n-2)\nprint(f(10))\n"
	if got, want := run(t, src), "55\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 3: for/range/print loop.
func TestScenarioForRangeLoop(t *testing.T) {
	src := "for i in range(3):\n    print(i)\n"
	if got, want := run(t, src), "0\n1\n2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 4: division and modulo formatting.
func TestScenarioDivisionAndModulo(t *testing.T) {
	src := "x = 10\ny = 3\nprint(x / y)\nprint(x % y)\n"
	if got, want := run(t, src), "3.333333\n1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 5: closures.
func TestScenarioClosureCounter(t *testing.T) {
	src := "def make_counter():\n    n = 0\n    def inc():\n        return n\n    return inc\nc = make_counter()\nprint(c())\n"
	if got, want := run(t, src), "0\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Scenario 6: default parameters.
func TestScenarioDefaultParameters(t *testing.T) {
	src := "def g(a, b=5):\n    return a + b\nprint(g(3))\nprint(g(3, 4))\n"
	if got, want := run(t, src), "8\n7\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptySourceRunsCleanly(t *testing.T) {
	if got := run(t, ""); got != "" {
		t.Errorf("got %q, want empty output", got)
	}
}

// Assignment always creates a binding in the innermost scope: inside a
// function, assigning to a name already bound in an enclosing scope shadows
// it rather than mutating the outer binding ("assignment-creates-local"
// semantics).
func TestAssignmentCreatesLocalBinding(t *testing.T) {
	src := "x = 1\ndef f():\n    x = 2\n    return x\nprint(f())\nprint(x)\n"
	if got, want := run(t, src), "2\n1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Assignments inside an if/while/for body are NOT scoped to the block: only
// a function call opens a new Environment (see DESIGN.md).
func TestIfBodyAssignmentIsVisibleAfterTheBlock(t *testing.T) {
	src := "if True:\n    y = 9\nprint(y)\n"
	if got, want := run(t, src), "9\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Compound assignment reads the existing (possibly outer) binding, then
// rebinds the combined result in the current scope.
func TestCompoundAssignmentReadsThenRebindsLocally(t *testing.T) {
	src := "total = 0\nfor i in range(1, 4):\n    total += i\nprint(total)\n"
	if got, want := run(t, src), "6\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// and/or evaluate both operands unconditionally, including side effects on
// the right-hand side even when the left alone would decide the result.
func TestAndOrDoNotShortCircuit(t *testing.T) {
	src := "def side(v):\n    print(v)\n    return v\nx = side(False) and side(True)\n"
	if got, want := run(t, src), "False\nTrue\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Unary minus negates only Int64; every other arm, including Float64,
// passes through unchanged (a faithful, deliberate preservation — see
// DESIGN.md).
func TestUnaryMinusOnlyNegatesInt(t *testing.T) {
	src := "print(-5)\nprint(-2.5)\n"
	if got, want := run(t, src), "-5\n2.500000\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnaryNotNegatesTruthiness(t *testing.T) {
	src := "print(not True)\nprint(not 0)\n"
	if got, want := run(t, src), "False\nTrue\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// The floor-division operator parses but never evaluates: none of the
// binary dispatch tiers defines a FloorDivide case (see DESIGN.md).
func TestFloorDivideAlwaysFails(t *testing.T) {
	runExpectError(t, "print(7 // 2)\n")
}

func TestDescendingRangeWalksDownward(t *testing.T) {
	src := "for i in range(3, 0, -1):\n    print(i)\n"
	if got, want := run(t, src), "3\n2\n1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBreakExitsLoop(t *testing.T) {
	src := "for i in range(5):\n    if i == 2:\n        break\n    print(i)\n"
	if got, want := run(t, src), "0\n1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestContinueSkipsIteration(t *testing.T) {
	src := "for i in range(4):\n    if i % 2 == 0:\n        continue\n    print(i)\n"
	if got, want := run(t, src), "1\n3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A bare top-level return ends the program cleanly; only break/continue
// are fatal diagnostics when they reach the top.
func TestTopLevelReturnEndsProgramCleanly(t *testing.T) {
	src := "print(1)\nreturn\nprint(2)\n"
	if got, want := run(t, src), "1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTopLevelBreakIsRuntimeError(t *testing.T) {
	runExpectError(t, "break\n")
}

func TestTopLevelContinueIsRuntimeError(t *testing.T) {
	runExpectError(t, "continue\n")
}

func TestCallingUndefinedFunctionIsRuntimeError(t *testing.T) {
	runExpectError(t, "undefined_name()\n")
}

func TestMissingRequiredArgumentIsRuntimeError(t *testing.T) {
	runExpectError(t, "def f(a, b):\n    return a + b\nf(1)\n")
}

func TestExcessArgumentsIsRuntimeError(t *testing.T) {
	runExpectError(t, "def f(a):\n    return a\nf(1, 2)\n")
}

func TestRecursionDepthGuardTurnsOverflowIntoDiagnostic(t *testing.T) {
	src := "def recurse(n):\n    return recurse(n + 1)\nrecurse(0)\n"
	runExpectError(t, src)
}

func TestBuiltinTypeNames(t *testing.T) {
	src := `print(type(1))
print(type(1.5))
print(type("s"))
print(type(True))
print(type(None))
print(type(range(1)))
`
	want := "<class 'int'>\n<class 'float'>\n<class 'str'>\n<class 'bool'>\n<class 'NoneType'>\n<class 'range'>\n"
	if got := run(t, src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuiltinLenAndStrAndAbs(t *testing.T) {
	src := `print(len("hello"))
print(str(42))
print(abs(-3))
print(abs(3))
`
	if got, want := run(t, src), "5\n42\n3\n3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuiltinIntAndFloatConversions(t *testing.T) {
	src := `print(int("42"))
print(int(3.9))
print(float("2.5"))
print(float(3))
`
	if got, want := run(t, src), "42\n3\n2.500000\n3.000000\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
