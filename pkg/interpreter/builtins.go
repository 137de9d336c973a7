package interpreter

import (
	"fmt"
	"strconv"

	"github.com/arbor-lang/arbor/pkg/runtime"
)

// registerBuiltins installs the built-in function set into the global
// environment as BuiltinValue bindings, so a plain Identifier lookup finds
// them the same way it finds a user-defined name. print() writes through
// interp.Stdout so tests can redirect output without touching os.Stdout.
func registerBuiltins(interp *Interpreter) {
	globals := interp.Globals
	for _, b := range []runtime.BuiltinValue{
		{Name: "print", Fn: builtinPrint(interp)},
		{Name: "range", Fn: builtinRange},
		{Name: "len", Fn: builtinLen},
		{Name: "str", Fn: builtinStr},
		{Name: "int", Fn: builtinInt},
		{Name: "float", Fn: builtinFloat},
		{Name: "type", Fn: builtinType},
		{Name: "abs", Fn: builtinAbs},
	} {
		globals.Define(b.Name, b)
	}
}

func builtinPrint(interp *Interpreter) runtime.BuiltinFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		for i, arg := range args {
			if i > 0 {
				fmt.Fprint(interp.Stdout, " ")
			}
			fmt.Fprint(interp.Stdout, stringify(arg))
		}
		fmt.Fprintln(interp.Stdout)
		return runtime.None, nil
	}
}

// builtinRange implements range(stop) / range(start, stop) / range(start,
// stop, step), returning the first-class RangeValue per the §9 redesign.
func builtinRange(args []runtime.Value) (runtime.Value, error) {
	var start, stop, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		n, ok := asInt(args[0])
		if !ok {
			return nil, fmt.Errorf("range() argument must be int")
		}
		stop = n
	case 2:
		a, ok1 := asInt(args[0])
		b, ok2 := asInt(args[1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("range() arguments must be int")
		}
		start, stop = a, b
	case 3:
		a, ok1 := asInt(args[0])
		b, ok2 := asInt(args[1])
		c, ok3 := asInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("range() arguments must be int")
		}
		start, stop, step = a, b, c
	default:
		return nil, fmt.Errorf("range() takes 1 to 3 arguments but %d were given", len(args))
	}
	if step == 0 {
		return nil, fmt.Errorf("range() step argument must not be zero")
	}
	return runtime.RangeValue{Start: start, Stop: stop, Step: step}, nil
}

func asInt(v runtime.Value) (int64, bool) {
	i, ok := v.(runtime.IntValue)
	if !ok {
		return 0, false
	}
	return i.Val, true
}

func builtinLen(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len() takes exactly one argument (%d given)", len(args))
	}
	s, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, fmt.Errorf("object of type '%s' has no len()", args[0].Kind())
	}
	return runtime.IntValue{Val: int64(len([]rune(s.Val)))}, nil
}

func builtinStr(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("str() takes exactly one argument (%d given)", len(args))
	}
	return runtime.StringValue{Val: stringify(args[0])}, nil
}

func builtinInt(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("int() takes exactly one argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case runtime.IntValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntValue{Val: int64(v.Val)}, nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.IntValue{Val: 1}, nil
		}
		return runtime.IntValue{Val: 0}, nil
	case runtime.StringValue:
		switch v.Val {
		case "True":
			return runtime.IntValue{Val: 1}, nil
		case "False":
			return runtime.IntValue{Val: 0}, nil
		}
		n, err := strconv.ParseInt(v.Val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal for int(): '%s'", v.Val)
		}
		return runtime.IntValue{Val: n}, nil
	default:
		return nil, fmt.Errorf("int() argument must be a string, a number, or a bool")
	}
}

func builtinFloat(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("float() takes exactly one argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case runtime.FloatValue:
		return v, nil
	case runtime.IntValue:
		return runtime.FloatValue{Val: float64(v.Val)}, nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.FloatValue{Val: 1.0}, nil
		}
		return runtime.FloatValue{Val: 0.0}, nil
	case runtime.StringValue:
		switch v.Val {
		case "True":
			return runtime.FloatValue{Val: 1.0}, nil
		case "False":
			return runtime.FloatValue{Val: 0.0}, nil
		}
		f, err := strconv.ParseFloat(v.Val, 64)
		if err != nil {
			return nil, fmt.Errorf("could not convert string to float: '%s'", v.Val)
		}
		return runtime.FloatValue{Val: f}, nil
	default:
		return nil, fmt.Errorf("float() argument must be a string or a number")
	}
}

func builtinType(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type() takes exactly one argument (%d given)", len(args))
	}
	return runtime.StringValue{Val: typeName(args[0])}, nil
}

func builtinAbs(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("abs() takes exactly one argument (%d given)", len(args))
	}
	switch v := args[0].(type) {
	case runtime.IntValue:
		if v.Val < 0 {
			return runtime.IntValue{Val: -v.Val}, nil
		}
		return v, nil
	case runtime.FloatValue:
		if v.Val < 0 {
			return runtime.FloatValue{Val: -v.Val}, nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("bad operand type for abs(): '%s'", args[0].Kind())
	}
}
