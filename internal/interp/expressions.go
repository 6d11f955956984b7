package interp

import (
	"github.com/cwbudde/go-minipy/internal/ast"
)

// evalExpression dispatches on the expression kind.
func (i *Interpreter) evalExpression(expression ast.Expression) (Value, error) {
	switch e := expression.(type) {
	case *ast.Constant:
		return constantValue(e), nil
	case *ast.Name:
		return i.lookupName(e.ID)
	case *ast.List:
		elements, err := i.evalAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return &ListValue{Elements: elements}, nil
	case *ast.Tuple:
		elements, err := i.evalAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return &TupleValue{Elements: elements}, nil
	case *ast.Dict:
		return i.evalDict(e)
	case *ast.Attribute:
		return i.evalAttribute(e)
	case *ast.Subscript:
		return i.evalSubscript(e)
	case *ast.Call:
		return i.evalCall(e)
	case *ast.BinOp:
		return i.evalBinOp(e)
	case *ast.BoolOp:
		return i.evalBoolOp(e)
	case *ast.UnaryOp:
		return i.evalUnaryOp(e)
	case *ast.Compare:
		return i.evalCompare(e)
	default:
		return nil, newError(TypeErr, "cannot evaluate expression of type %T", expression)
	}
}

// constantValue converts a parsed literal into a runtime value.
func constantValue(constant *ast.Constant) Value {
	switch v := constant.Value.(type) {
	case nil:
		return None
	case bool:
		return boolValue(v)
	case int64:
		return &IntValue{Value: v}
	case float64:
		return &FloatValue{Value: v}
	case string:
		return &StringValue{Value: v}
	case []byte:
		return &BytesValue{Value: v}
	default:
		return None
	}
}

// lookupName resolves a name through the scope chain, then the current
// module's globals, then the builtins.
func (i *Interpreter) lookupName(name string) (Value, error) {
	if value, ok := i.scope.Get(name); ok {
		return value, nil
	}
	if value, ok := i.globals.Get(name); ok {
		return value, nil
	}
	if builtin, ok := i.builtins[name]; ok {
		return builtin, nil
	}
	return nil, newError(NameErr, "name %q is not defined", name)
}

// evalAll evaluates expressions left to right.
func (i *Interpreter) evalAll(expressions []ast.Expression) ([]Value, error) {
	values := make([]Value, 0, len(expressions))
	for _, expression := range expressions {
		value, err := i.evalExpression(expression)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (i *Interpreter) evalDict(display *ast.Dict) (Value, error) {
	dict := NewDict()
	for at := range display.Keys {
		key, err := i.evalExpression(display.Keys[at])
		if err != nil {
			return nil, err
		}
		value, err := i.evalExpression(display.Values[at])
		if err != nil {
			return nil, err
		}
		if err := dict.Set(key, value); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// evalAttribute resolves value.attr: module members first, then the
// methods table of the value's type.
func (i *Interpreter) evalAttribute(attribute *ast.Attribute) (Value, error) {
	value, err := i.evalExpression(attribute.Value)
	if err != nil {
		return nil, err
	}

	if module, ok := value.(*ModuleValue); ok {
		member, ok := module.Members.GetLocal(attribute.Attr)
		if !ok {
			return nil, newError(AttributeErr, "module %q has no attribute %q",
				module.Name, attribute.Attr)
		}
		return member, nil
	}

	if method := lookupMethod(value, attribute.Attr); method != nil {
		return &BoundMethodValue{Receiver: value, Method: method}, nil
	}
	return nil, newError(AttributeErr, "%q object has no attribute %q",
		value.Type(), attribute.Attr)
}

// evalSubscript handles both indexing and slicing.
func (i *Interpreter) evalSubscript(subscript *ast.Subscript) (Value, error) {
	value, err := i.evalExpression(subscript.Value)
	if err != nil {
		return nil, err
	}

	if slice, ok := subscript.Key.(*ast.Slice); ok {
		start, err := i.evalExpression(slice.Start)
		if err != nil {
			return nil, err
		}
		end, err := i.evalExpression(slice.End)
		if err != nil {
			return nil, err
		}
		return sliceValue(value, start, end)
	}

	key, err := i.evalExpression(subscript.Key)
	if err != nil {
		return nil, err
	}
	return indexValue(value, key)
}

// evalCall evaluates the callee and its arguments left to right, then
// invokes.
func (i *Interpreter) evalCall(call *ast.Call) (Value, error) {
	function, err := i.evalExpression(call.Function)
	if err != nil {
		return nil, err
	}
	args, err := i.evalAll(call.Args)
	if err != nil {
		return nil, err
	}
	return i.callValue(function, args)
}

// callValue invokes a callable with already-evaluated arguments.
func (i *Interpreter) callValue(function Value, args []Value) (Value, error) {
	switch fn := function.(type) {
	case *BuiltinValue:
		if fn.Arity != variadic && len(args) != fn.Arity {
			return nil, newError(ArityErr, "%s() takes %d arguments (%d given)",
				fn.Name, fn.Arity, len(args))
		}
		return fn.Fn(i, args)

	case *FunctionValue:
		return i.callFunction(fn, args)

	case *BoundMethodValue:
		method := fn.Method
		if len(args) < method.MinArity ||
			(method.MaxArity != variadic && len(args) > method.MaxArity) {
			return nil, newError(ArityErr, "%s() takes %d arguments (%d given)",
				method.Name, method.MinArity, len(args))
		}
		return method.Fn(i, fn.Receiver, args)

	default:
		return nil, newError(TypeErr, "%q object is not callable", function.Type())
	}
}

// callFunction pushes a fresh scope whose parent is the function's
// defining scope, binds parameters positionally, and runs the body with
// globals switched to the defining module's globals.
func (i *Interpreter) callFunction(fn *FunctionValue, args []Value) (Value, error) {
	if len(args) != len(fn.Def.Params) {
		return nil, newError(ArityErr, "%s() takes %d arguments (%d given)",
			fn.Def.Name, len(fn.Def.Params), len(args))
	}

	scope := NewEnclosedEnvironment(fn.Scope)
	for at, param := range fn.Def.Params {
		scope.Define(param, args[at])
	}

	savedScope, savedGlobals := i.scope, i.globals
	i.scope, i.globals = scope, fn.Globals
	sig, err := i.execBlock(fn.Def.Body)
	i.scope, i.globals = savedScope, savedGlobals

	if err != nil {
		return nil, err
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	// Falling off the end of a function yields None. A stray break or
	// continue is discarded the same way.
	return None, nil
}

// evalBoolOp implements short-circuit evaluation: `or` yields the first
// truthy operand, `and` the first falsy one, else the last operand.
func (i *Interpreter) evalBoolOp(boolOp *ast.BoolOp) (Value, error) {
	left, err := i.evalExpression(boolOp.Left)
	if err != nil {
		return nil, err
	}

	if boolOp.Op == "or" {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evalExpression(boolOp.Right)
}

func (i *Interpreter) evalUnaryOp(unary *ast.UnaryOp) (Value, error) {
	value, err := i.evalExpression(unary.Value)
	if err != nil {
		return nil, err
	}

	switch unary.Op {
	case "not":
		return boolValue(!isTruthy(value)), nil
	case "-":
		switch v := value.(type) {
		case *IntValue:
			return &IntValue{Value: -v.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -v.Value}, nil
		case *BoolValue:
			return &IntValue{Value: -boolInt(v)}, nil
		}
	case "+":
		switch v := value.(type) {
		case *IntValue, *FloatValue:
			return v, nil
		case *BoolValue:
			return &IntValue{Value: boolInt(v)}, nil
		}
	case "~":
		return nil, newError(TypeErr, "unary ~ is not supported")
	}
	return nil, newError(TypeErr, "bad operand type for unary %s: %q", unary.Op, value.Type())
}

func (i *Interpreter) evalBinOp(binOp *ast.BinOp) (Value, error) {
	left, err := i.evalExpression(binOp.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(binOp.Right)
	if err != nil {
		return nil, err
	}
	return i.binaryOp(binOp.Op, left, right)
}

func (i *Interpreter) evalCompare(compare *ast.Compare) (Value, error) {
	left, err := i.evalExpression(compare.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(compare.Right)
	if err != nil {
		return nil, err
	}
	return i.compareOp(compare.Op, left, right)
}
