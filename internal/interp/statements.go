package interp

import (
	"github.com/cwbudde/go-minipy/internal/ast"
)

// execAssign evaluates the value once and binds it to every target group
// in the chain.
func (i *Interpreter) execAssign(statement *ast.Assign) error {
	value, err := i.evalExpression(statement.Value)
	if err != nil {
		return err
	}

	for _, target := range statement.Targets {
		if err := i.assignTo(target, value); err != nil {
			return err
		}
	}
	return nil
}

// assignTo binds value to a single target: a name, a comma-separated
// target tuple (unpacking), or a subscript that mutates its container.
func (i *Interpreter) assignTo(target ast.Expression, value Value) error {
	switch t := target.(type) {
	case *ast.Name:
		i.scope.Define(t.ID, value)
		return nil

	case *ast.Tuple:
		elements, ok := unpackable(value)
		if !ok {
			return newError(TypeErr, "cannot unpack non-sequence %s", value.Type())
		}
		if len(elements) != len(t.Elements) {
			return newError(ValueErr, "too many values to unpack (expected %d)", len(t.Elements))
		}
		for at, sub := range t.Elements {
			if err := i.assignTo(sub, elements[at]); err != nil {
				return err
			}
		}
		return nil

	case *ast.Subscript:
		return i.assignSubscript(t, value)

	default:
		return newError(TypeErr, "cannot assign to this expression")
	}
}

// assignSubscript stores value into a mutable container element.
func (i *Interpreter) assignSubscript(target *ast.Subscript, value Value) error {
	container, err := i.evalExpression(target.Value)
	if err != nil {
		return err
	}
	key, err := i.evalExpression(target.Key)
	if err != nil {
		return err
	}

	switch c := container.(type) {
	case *ListValue:
		at, err := resolveIndex(key, len(c.Elements), "list")
		if err != nil {
			return err
		}
		c.Elements[at] = value
		return nil

	case *DequeValue:
		at, err := resolveIndex(key, len(c.Elements), "deque")
		if err != nil {
			return err
		}
		c.Elements[at] = value
		return nil

	case *DictValue:
		return c.Set(key, value)

	default:
		return newError(TypeErr, "%q object does not support item assignment", container.Type())
	}
}

// unpackable returns the elements of a value usable on the right side of
// a tuple unpacking.
func unpackable(value Value) ([]Value, bool) {
	switch v := value.(type) {
	case *TupleValue:
		return v.Elements, true
	case *ListValue:
		return v.Elements, true
	default:
		return nil, false
	}
}

// execAugAssign reads the target's current value, applies the operator and
// rebinds the result.
func (i *Interpreter) execAugAssign(statement *ast.AugAssign) error {
	current, err := i.evalExpression(statement.Target)
	if err != nil {
		return err
	}
	increment, err := i.evalExpression(statement.Value)
	if err != nil {
		return err
	}

	result, err := i.binaryOp(statement.Op, current, increment)
	if err != nil {
		return err
	}
	return i.assignTo(statement.Target, result)
}

func (i *Interpreter) execIf(statement *ast.If) (signal, error) {
	condition, err := i.evalExpression(statement.Condition)
	if err != nil {
		return normal, err
	}

	if isTruthy(condition) {
		return i.execBlock(statement.Body)
	}
	return i.execBlock(statement.OrElse)
}

// execWhile runs the loop body until the condition turns falsy. The else
// block runs only when the loop was not broken out of.
func (i *Interpreter) execWhile(statement *ast.While) (signal, error) {
	for {
		condition, err := i.evalExpression(statement.Condition)
		if err != nil {
			return normal, err
		}
		if !isTruthy(condition) {
			return i.execBlock(statement.OrElse)
		}

		sig, err := i.execBlock(statement.Body)
		if err != nil {
			return normal, err
		}
		switch sig.kind {
		case signalBreak:
			return normal, nil
		case signalReturn:
			return sig, nil
		}
		// continue and normal completion both loop again
	}
}

// execFor iterates the loop items, binding targets for each element. The
// else block runs only when the loop was not broken out of.
func (i *Interpreter) execFor(statement *ast.For) (signal, error) {
	iterator, err := i.forIterator(statement.Iterable)
	if err != nil {
		return normal, err
	}

	for {
		element, ok := iterator.Next()
		if !ok {
			return i.execBlock(statement.OrElse)
		}

		if err := i.bindForTargets(statement.Targets, element); err != nil {
			return normal, err
		}

		sig, err := i.execBlock(statement.Body)
		if err != nil {
			return normal, err
		}
		switch sig.kind {
		case signalBreak:
			return normal, nil
		case signalReturn:
			return sig, nil
		}
	}
}

// forIterator builds the loop's item source. A single expression is
// iterated; multiple comma-separated expressions act as a tuple literal of
// items.
func (i *Interpreter) forIterator(iterable []ast.Expression) (*IteratorValue, error) {
	if len(iterable) == 1 {
		value, err := i.evalExpression(iterable[0])
		if err != nil {
			return nil, err
		}
		return i.makeIterator(value)
	}

	items := make([]Value, 0, len(iterable))
	for _, expression := range iterable {
		value, err := i.evalExpression(expression)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	return sliceIterator(items), nil
}

// bindForTargets binds one loop element: directly for a single target,
// with positional unpacking for multiple targets.
func (i *Interpreter) bindForTargets(targets []ast.Expression, element Value) error {
	if len(targets) == 1 {
		return i.assignTo(targets[0], element)
	}

	elements, ok := unpackable(element)
	if !ok {
		return newError(TypeErr, "cannot unpack non-sequence %s", element.Type())
	}
	if len(elements) != len(targets) {
		return newError(ValueErr, "too many values to unpack (expected %d)", len(targets))
	}
	for at, target := range targets {
		if err := i.assignTo(target, elements[at]); err != nil {
			return err
		}
	}
	return nil
}

// execFunctionDef constructs the function value, applies decorators
// innermost-first, and binds the final value under the function's name.
func (i *Interpreter) execFunctionDef(statement *ast.FunctionDef) error {
	var value Value = &FunctionValue{
		Def:     statement,
		Scope:   i.scope,
		Globals: i.globals,
	}

	// Decorators are stored outermost-first; the one nearest the def is
	// applied first.
	for at := len(statement.Decorators) - 1; at >= 0; at-- {
		decorator, err := i.evalExpression(statement.Decorators[at])
		if err != nil {
			return err
		}
		decorated, err := i.callValue(decorator, []Value{value})
		if err != nil {
			return err
		}
		value = decorated
	}

	i.scope.Define(statement.Name, value)
	return nil
}

func (i *Interpreter) execReturn(statement *ast.Return) (signal, error) {
	if statement.Value == nil {
		return signal{kind: signalReturn, value: None}, nil
	}

	value, err := i.evalExpression(statement.Value)
	if err != nil {
		return normal, err
	}
	return signal{kind: signalReturn, value: value}, nil
}
