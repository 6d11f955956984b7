package interp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// newBuiltins constructs the builtin function registry. Builtins resolve
// after the scope chain and globals, so user code may shadow them.
func newBuiltins() map[string]*BuiltinValue {
	builtins := map[string]*BuiltinValue{}
	register := func(name string, arity int, fn func(in *Interpreter, args []Value) (Value, error)) {
		builtins[name] = &BuiltinValue{Name: name, Arity: arity, Fn: fn}
	}

	register("print", variadic, builtinPrint)
	register("len", 1, builtinLen)
	register("int", 1, builtinInt)
	register("float", 1, builtinFloat)
	register("str", 1, builtinStr)
	register("bool", 1, builtinBool)
	register("deque", variadic, builtinDeque)
	register("enumerate", 1, builtinEnumerate)
	register("range", variadic, builtinRange)

	return builtins
}

// builtinPrint writes its arguments space-separated with a trailing
// newline. Top-level arguments use their plain display form; values
// inside containers keep their quoted form.
func builtinPrint(in *Interpreter, args []Value) (Value, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.String())
	}
	if _, err := fmt.Fprintln(in.stdout, strings.Join(parts, " ")); err != nil {
		return nil, newError(ValueErr, "print failed: %s", err)
	}
	return None, nil
}

func builtinLen(_ *Interpreter, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *StringValue:
		return &IntValue{Value: int64(utf8.RuneCountInString(v.Value))}, nil
	case *BytesValue:
		return &IntValue{Value: int64(len(v.Value))}, nil
	case *ListValue:
		return &IntValue{Value: int64(len(v.Elements))}, nil
	case *TupleValue:
		return &IntValue{Value: int64(len(v.Elements))}, nil
	case *DequeValue:
		return &IntValue{Value: int64(len(v.Elements))}, nil
	case *DictValue:
		return &IntValue{Value: int64(v.Len())}, nil
	default:
		return nil, newError(TypeErr, "object of type %q has no len()", args[0].Type())
	}
}

func builtinInt(_ *Interpreter, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *IntValue:
		return v, nil
	case *BoolValue:
		return &IntValue{Value: boolInt(v)}, nil
	case *FloatValue:
		return &IntValue{Value: int64(v.Value)}, nil
	case *StringValue:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, newError(ValueErr, "invalid literal for int(): %s", v.Repr())
		}
		return &IntValue{Value: parsed}, nil
	default:
		return nil, newError(TypeErr, "int() argument must be a number or string, not %q",
			args[0].Type())
	}
}

func builtinFloat(_ *Interpreter, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *FloatValue:
		return v, nil
	case *IntValue:
		return &FloatValue{Value: float64(v.Value)}, nil
	case *BoolValue:
		return &FloatValue{Value: float64(boolInt(v))}, nil
	case *StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, newError(ValueErr, "could not convert string to float: %s", v.Repr())
		}
		return &FloatValue{Value: parsed}, nil
	default:
		return nil, newError(TypeErr, "float() argument must be a number or string, not %q",
			args[0].Type())
	}
}

func builtinStr(_ *Interpreter, args []Value) (Value, error) {
	return &StringValue{Value: args[0].String()}, nil
}

func builtinBool(_ *Interpreter, args []Value) (Value, error) {
	return boolValue(isTruthy(args[0])), nil
}

// builtinDeque constructs an empty deque, or one filled from an iterable.
func builtinDeque(in *Interpreter, args []Value) (Value, error) {
	switch len(args) {
	case 0:
		return &DequeValue{}, nil
	case 1:
		iterator, err := in.makeIterator(args[0])
		if err != nil {
			return nil, err
		}
		deque := &DequeValue{}
		for {
			element, ok := iterator.Next()
			if !ok {
				return deque, nil
			}
			deque.Elements = append(deque.Elements, element)
		}
	default:
		return nil, newError(ArityErr, "deque() takes at most 1 argument (%d given)", len(args))
	}
}

// builtinEnumerate yields (index, element) tuples over any iterable.
func builtinEnumerate(in *Interpreter, args []Value) (Value, error) {
	iterator, err := in.makeIterator(args[0])
	if err != nil {
		return nil, err
	}

	index := int64(0)
	return &IteratorValue{NextFn: func() (Value, bool) {
		element, ok := iterator.Next()
		if !ok {
			return nil, false
		}
		pair := &TupleValue{Elements: []Value{&IntValue{Value: index}, element}}
		index++
		return pair, true
	}}, nil
}

// builtinRange yields integers lazily for range(stop), range(start, stop)
// and range(start, stop, step).
func builtinRange(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, newError(ArityErr, "range() takes 1 to 3 arguments (%d given)", len(args))
	}

	bounds := make([]int64, 0, 3)
	for _, arg := range args {
		n, ok := arg.(*IntValue)
		if !ok {
			return nil, newError(TypeErr, "range() argument must be an integer, not %q", arg.Type())
		}
		bounds = append(bounds, n.Value)
	}

	start, stop, step := int64(0), int64(0), int64(1)
	switch len(bounds) {
	case 1:
		stop = bounds[0]
	case 2:
		start, stop = bounds[0], bounds[1]
	case 3:
		start, stop, step = bounds[0], bounds[1], bounds[2]
		if step == 0 {
			return nil, newError(ValueErr, "range() arg 3 must not be zero")
		}
	}

	current := start
	return &IteratorValue{NextFn: func() (Value, bool) {
		if (step > 0 && current >= stop) || (step < 0 && current <= stop) {
			return nil, false
		}
		value := &IntValue{Value: current}
		current += step
		return value, true
	}}, nil
}
