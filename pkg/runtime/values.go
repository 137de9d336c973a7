package runtime

import (
	"fmt"

	"github.com/arbor-lang/arbor/pkg/ast"
)

// Kind identifies the runtime value category: None, bool, int, float, str,
// function/builtin, range, list, dict.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindRange
	KindList
	KindDict
	KindFunction
	KindBuiltin
	KindClass
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindRange:
		return "range"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin_function_or_method"
	case KindClass:
		return "class"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behavior for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// NoneValue is Arbor's None. There is exactly one meaningful instance, None.
type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

// None is the canonical None value.
var None = NoneValue{}

type BoolValue struct{ Val bool }

func (BoolValue) Kind() Kind { return KindBool }

// True and False are the canonical boolean values.
var (
	True  = BoolValue{Val: true}
	False = BoolValue{Val: false}
)

// Bool returns the canonical BoolValue for b.
func Bool(b bool) BoolValue {
	if b {
		return True
	}
	return False
}

// IntValue holds a signed 64-bit integer.
type IntValue struct{ Val int64 }

func (IntValue) Kind() Kind { return KindInt }

// FloatValue holds a 64-bit float.
type FloatValue struct{ Val float64 }

func (FloatValue) Kind() Kind { return KindFloat }

// StringValue holds an immutable string.
type StringValue struct{ Val string }

func (StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Range, list, dict
//-----------------------------------------------------------------------------

// RangeValue is a first-class value produced by the range() builtin: a
// struct of bounds rather than a sentinel-encoded string, so `for x in
// range(n)` can iterate it directly without re-parsing.
type RangeValue struct {
	Start, Stop, Step int64
}

func (RangeValue) Kind() Kind { return KindRange }

// Values materializes the range's elements eagerly: while Step > 0, walk
// while i < Stop; while Step < 0, walk while i > Stop. A zero Step is
// rejected at construction time by the range builtin, so it is never
// reached here.
func (r RangeValue) Values() []int64 {
	var out []int64
	if r.Step > 0 {
		for i := r.Start; i < r.Stop; i += r.Step {
			out = append(out, i)
		}
	} else {
		for i := r.Start; i > r.Stop; i += r.Step {
			out = append(out, i)
		}
	}
	return out
}

// ListStubValue is the opaque placeholder a List literal evaluates to. This
// core stops short of promoting list/dict literals to first-class compound
// values; the literal's element expressions are parsed (see ast.List) but
// never evaluated, since nothing in this core can observe them afterward.
type ListStubValue struct{}

func (ListStubValue) Kind() Kind { return KindList }

// DictStubValue is the analogous placeholder for a Dict literal.
type DictStubValue struct{}

func (DictStubValue) Kind() Kind { return KindDict }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a user-defined function, closing over the environment
// active at its definition site.
type FunctionValue struct {
	Decl    *ast.FunctionDef
	Closure *Environment
}

func (*FunctionValue) Kind() Kind { return KindFunction }

// BuiltinFunc is the Go implementation of a built-in function. args are
// already evaluated.
type BuiltinFunc func(args []Value) (Value, error)

// BuiltinValue wraps a built-in function under its Arbor-visible name.
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunc
}

func (BuiltinValue) Kind() Kind { return KindBuiltin }

//-----------------------------------------------------------------------------
// Class (syntactic-only) runtime representation
//-----------------------------------------------------------------------------

// ClassValue records a parsed class definition. Classes carry no runtime
// semantics in this core: no instantiation, no method dispatch. The value
// exists so `class Foo: pass` binds a name without erroring, and so a
// future extension has a concrete home.
type ClassValue struct {
	Decl *ast.ClassDef
}

func (*ClassValue) Kind() Kind { return KindClass }

//-----------------------------------------------------------------------------
// Utility helpers
//-----------------------------------------------------------------------------

// Truthy reports whether v counts as true in a boolean context: None and
// False are falsy; zero int/float are falsy; empty string is falsy;
// everything else — including every RangeValue, list/dict stub, function,
// and builtin — is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NoneValue:
		return false
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	default:
		return true
	}
}
