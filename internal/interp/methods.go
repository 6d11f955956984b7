package interp

import (
	"strings"
	"unicode"
)

// methodSpec describes one method of a container type. Methods are looked
// up in a static table keyed on the receiver's type and bound to the
// receiver on attribute access.
type methodSpec struct {
	Name     string
	MinArity int
	MaxArity int // or variadic
	Fn       func(in *Interpreter, receiver Value, args []Value) (Value, error)
}

// methodTables maps a value type name to its methods.
var methodTables = map[string]map[string]*methodSpec{
	"list": {
		"append": {Name: "append", MinArity: 1, MaxArity: 1, Fn: listAppend},
		"extend": {Name: "extend", MinArity: 1, MaxArity: 1, Fn: listExtend},
		"pop":    {Name: "pop", MinArity: 0, MaxArity: 0, Fn: listPop},
	},
	"deque": {
		"append":     {Name: "append", MinArity: 1, MaxArity: 1, Fn: dequeAppend},
		"appendleft": {Name: "appendleft", MinArity: 1, MaxArity: 1, Fn: dequeAppendLeft},
		"pop":        {Name: "pop", MinArity: 0, MaxArity: 0, Fn: dequePop},
		"popleft":    {Name: "popleft", MinArity: 0, MaxArity: 0, Fn: dequePopLeft},
	},
	"dict": {
		"items":  {Name: "items", MinArity: 0, MaxArity: 0, Fn: dictItems},
		"keys":   {Name: "keys", MinArity: 0, MaxArity: 0, Fn: dictKeys},
		"values": {Name: "values", MinArity: 0, MaxArity: 0, Fn: dictValues},
		"get":    {Name: "get", MinArity: 1, MaxArity: 2, Fn: dictGet},
	},
	"str": {
		"isdigit":    {Name: "isdigit", MinArity: 0, MaxArity: 0, Fn: strIsDigit},
		"isalpha":    {Name: "isalpha", MinArity: 0, MaxArity: 0, Fn: strIsAlpha},
		"join":       {Name: "join", MinArity: 1, MaxArity: 1, Fn: strJoin},
		"upper":      {Name: "upper", MinArity: 0, MaxArity: 0, Fn: strUpper},
		"lower":      {Name: "lower", MinArity: 0, MaxArity: 0, Fn: strLower},
		"startswith": {Name: "startswith", MinArity: 1, MaxArity: 1, Fn: strStartsWith},
		"endswith":   {Name: "endswith", MinArity: 1, MaxArity: 1, Fn: strEndsWith},
		"split":      {Name: "split", MinArity: 0, MaxArity: 1, Fn: strSplit},
		"strip":      {Name: "strip", MinArity: 0, MaxArity: 0, Fn: strStrip},
	},
}

// lookupMethod returns the method table entry for a value, or nil.
func lookupMethod(value Value, name string) *methodSpec {
	table, ok := methodTables[value.Type()]
	if !ok {
		return nil
	}
	return table[name]
}

func listAppend(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	list := receiver.(*ListValue)
	list.Elements = append(list.Elements, args[0])
	return None, nil
}

func listExtend(in *Interpreter, receiver Value, args []Value) (Value, error) {
	list := receiver.(*ListValue)
	iterator, err := in.makeIterator(args[0])
	if err != nil {
		return nil, err
	}
	for {
		element, ok := iterator.Next()
		if !ok {
			return None, nil
		}
		list.Elements = append(list.Elements, element)
	}
}

func listPop(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	list := receiver.(*ListValue)
	if len(list.Elements) == 0 {
		return nil, newError(IndexErr, "pop from empty list")
	}
	last := list.Elements[len(list.Elements)-1]
	list.Elements = list.Elements[:len(list.Elements)-1]
	return last, nil
}

func dequeAppend(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	deque := receiver.(*DequeValue)
	deque.Elements = append(deque.Elements, args[0])
	return None, nil
}

func dequeAppendLeft(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	deque := receiver.(*DequeValue)
	deque.Elements = append([]Value{args[0]}, deque.Elements...)
	return None, nil
}

func dequePop(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	deque := receiver.(*DequeValue)
	if len(deque.Elements) == 0 {
		return nil, newError(IndexErr, "pop from an empty deque")
	}
	last := deque.Elements[len(deque.Elements)-1]
	deque.Elements = deque.Elements[:len(deque.Elements)-1]
	return last, nil
}

func dequePopLeft(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	deque := receiver.(*DequeValue)
	if len(deque.Elements) == 0 {
		return nil, newError(IndexErr, "pop from an empty deque")
	}
	first := deque.Elements[0]
	deque.Elements = deque.Elements[1:]
	return first, nil
}

// dictItems yields (key, value) tuples in insertion order.
func dictItems(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	dict := receiver.(*DictValue)
	pairs := make([]Value, 0, dict.Len())
	for _, entry := range dict.Entries() {
		pairs = append(pairs, &TupleValue{Elements: []Value{entry.Key, entry.Value}})
	}
	return sliceIterator(pairs), nil
}

func dictKeys(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	dict := receiver.(*DictValue)
	keys := make([]Value, 0, dict.Len())
	for _, entry := range dict.Entries() {
		keys = append(keys, entry.Key)
	}
	return sliceIterator(keys), nil
}

func dictValues(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	dict := receiver.(*DictValue)
	values := make([]Value, 0, dict.Len())
	for _, entry := range dict.Entries() {
		values = append(values, entry.Value)
	}
	return sliceIterator(values), nil
}

func dictGet(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	dict := receiver.(*DictValue)
	value, found, err := dict.Get(args[0])
	if err != nil {
		return nil, err
	}
	if found {
		return value, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return None, nil
}

func strIsDigit(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	s := receiver.(*StringValue).Value
	if len(s) == 0 {
		return False, nil
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return False, nil
		}
	}
	return True, nil
}

func strIsAlpha(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	s := receiver.(*StringValue).Value
	if len(s) == 0 {
		return False, nil
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return False, nil
		}
	}
	return True, nil
}

// strJoin concatenates an iterable of strings with the receiver as
// separator.
func strJoin(in *Interpreter, receiver Value, args []Value) (Value, error) {
	separator := receiver.(*StringValue).Value
	iterator, err := in.makeIterator(args[0])
	if err != nil {
		return nil, err
	}

	var parts []string
	for {
		element, ok := iterator.Next()
		if !ok {
			break
		}
		s, ok := element.(*StringValue)
		if !ok {
			return nil, newError(TypeErr,
				"sequence item %d: expected str instance, %q found", len(parts), element.Type())
		}
		parts = append(parts, s.Value)
	}
	return &StringValue{Value: strings.Join(parts, separator)}, nil
}

func strUpper(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	return &StringValue{Value: strings.ToUpper(receiver.(*StringValue).Value)}, nil
}

func strLower(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	return &StringValue{Value: strings.ToLower(receiver.(*StringValue).Value)}, nil
}

func strStartsWith(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	prefix, ok := args[0].(*StringValue)
	if !ok {
		return nil, newError(TypeErr, "startswith argument must be str, not %q", args[0].Type())
	}
	return boolValue(strings.HasPrefix(receiver.(*StringValue).Value, prefix.Value)), nil
}

func strEndsWith(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	suffix, ok := args[0].(*StringValue)
	if !ok {
		return nil, newError(TypeErr, "endswith argument must be str, not %q", args[0].Type())
	}
	return boolValue(strings.HasSuffix(receiver.(*StringValue).Value, suffix.Value)), nil
}

// strSplit splits on whitespace runs, or on an explicit separator.
func strSplit(_ *Interpreter, receiver Value, args []Value) (Value, error) {
	s := receiver.(*StringValue).Value

	var parts []string
	if len(args) == 0 {
		parts = strings.Fields(s)
	} else {
		separator, ok := args[0].(*StringValue)
		if !ok {
			return nil, newError(TypeErr, "split separator must be str, not %q", args[0].Type())
		}
		if separator.Value == "" {
			return nil, newError(ValueErr, "empty separator")
		}
		parts = strings.Split(s, separator.Value)
	}

	elements := make([]Value, 0, len(parts))
	for _, part := range parts {
		elements = append(elements, &StringValue{Value: part})
	}
	return &ListValue{Elements: elements}, nil
}

func strStrip(_ *Interpreter, receiver Value, _ []Value) (Value, error) {
	return &StringValue{Value: strings.TrimSpace(receiver.(*StringValue).Value)}, nil
}
