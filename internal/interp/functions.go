package interp

import (
	"github.com/cwbudde/go-minipy/internal/ast"
)

// variadic marks a builtin that accepts any argument count.
const variadic = -1

// BuiltinValue represents a builtin function. Fn receives the interpreter
// so builtins can reach the output writer and the iteration protocol.
type BuiltinValue struct {
	Name  string
	Arity int // parameter count, or variadic
	Fn    func(in *Interpreter, args []Value) (Value, error)
}

// Type returns "builtin".
func (b *BuiltinValue) Type() string { return "builtin" }

// String returns "<built-in function NAME>".
func (b *BuiltinValue) String() string { return "<built-in function " + b.Name + ">" }

// Repr returns the same form as String.
func (b *BuiltinValue) Repr() string { return b.String() }

// FunctionValue represents a user-defined function together with the scope
// and module globals captured at definition time. Calls push a fresh child
// scope of Scope, never of the caller's scope.
type FunctionValue struct {
	Def     *ast.FunctionDef
	Scope   *Environment
	Globals *Environment
}

// Type returns "function".
func (f *FunctionValue) Type() string { return "function" }

// String returns "<function NAME>".
func (f *FunctionValue) String() string { return "<function " + f.Def.Name + ">" }

// Repr returns the same form as String.
func (f *FunctionValue) Repr() string { return f.String() }

// BoundMethodValue pairs a receiver with one of its type's methods.
type BoundMethodValue struct {
	Receiver Value
	Method   *methodSpec
}

// Type returns "method".
func (m *BoundMethodValue) Type() string { return "method" }

// String identifies the method and its receiver type.
func (m *BoundMethodValue) String() string {
	return "<built-in method " + m.Method.Name + " of " + m.Receiver.Type() + " object>"
}

// Repr returns the same form as String.
func (m *BoundMethodValue) Repr() string { return m.String() }

// ModuleValue represents an imported module. Members are frozen at import
// time in the sense that re-imports never re-execute the module file.
type ModuleValue struct {
	Name    string
	Members *Environment
}

// Type returns "module".
func (m *ModuleValue) Type() string { return "module" }

// String returns "<module 'NAME'>".
func (m *ModuleValue) String() string { return "<module '" + m.Name + "'>" }

// Repr returns the same form as String.
func (m *ModuleValue) Repr() string { return m.String() }
