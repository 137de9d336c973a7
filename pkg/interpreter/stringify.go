package interpreter

import (
	"fmt"

	"github.com/arbor-lang/arbor/pkg/runtime"
)

// stringify produces the canonical string form used by print() and str().
// Floats render with a
// fixed six digits after the decimal point, rather than Go's
// shortest-round-trip %v.
func stringify(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.NoneValue:
		return "None"
	case runtime.BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case runtime.StringValue:
		return val.Val
	case runtime.IntValue:
		return fmt.Sprintf("%d", val.Val)
	case runtime.FloatValue:
		return fmt.Sprintf("%f", val.Val)
	case *runtime.FunctionValue:
		return fmt.Sprintf("<function %s>", val.Decl.Name)
	case runtime.BuiltinValue:
		return fmt.Sprintf("<built-in function %s>", val.Name)
	case *runtime.ClassValue:
		return fmt.Sprintf("<class %s>", val.Decl.Name)
	case runtime.RangeValue:
		return fmt.Sprintf("range(%d, %d, %d)", val.Start, val.Stop, val.Step)
	case runtime.ListStubValue:
		return "[list]"
	case runtime.DictStubValue:
		return "{dict}"
	default:
		return "[object]"
	}
}

// typeName implements the type() builtin's canonical class-name strings.
func typeName(v runtime.Value) string {
	switch v.(type) {
	case runtime.NoneValue:
		return "<class 'NoneType'>"
	case runtime.BoolValue:
		return "<class 'bool'>"
	case runtime.StringValue:
		return "<class 'str'>"
	case runtime.IntValue:
		return "<class 'int'>"
	case runtime.FloatValue:
		return "<class 'float'>"
	case *runtime.FunctionValue, runtime.BuiltinValue:
		return "<class 'function'>"
	case runtime.RangeValue:
		return "<class 'range'>"
	case runtime.ListStubValue:
		return "<class 'list'>"
	case runtime.DictStubValue:
		return "<class 'dict'>"
	default:
		return "<class 'object'>"
	}
}
