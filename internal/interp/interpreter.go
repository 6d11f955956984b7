package interp

import (
	"io"
	"os"

	"github.com/cwbudde/go-minipy/internal/ast"
)

// Interpreter walks a parsed module and evaluates it. It holds two scope
// cursors: globals, the current module's global scope, and scope, the
// innermost active scope. Both are swapped on function entry and restored
// on exit.
type Interpreter struct {
	stdout   io.Writer
	workdir  string
	globals  *Environment
	scope    *Environment
	builtins map[string]*BuiltinValue
	modules  map[string]*ModuleValue
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects the print builtin's output. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// WithWorkdir sets the directory import paths resolve against.
// Defaults to the process working directory.
func WithWorkdir(dir string) Option {
	return func(i *Interpreter) {
		i.workdir = dir
	}
}

// New creates an Interpreter with a fresh global scope.
func New(opts ...Option) *Interpreter {
	globals := NewEnvironment()
	in := &Interpreter{
		stdout:  os.Stdout,
		workdir: ".",
		globals: globals,
		scope:   globals,
		modules: map[string]*ModuleValue{},
	}
	in.builtins = newBuiltins()

	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run evaluates a module. Any runtime error aborts evaluation; output
// already printed is retained.
func (i *Interpreter) Run(module *ast.Module) error {
	// A break, continue or return escaping to module level is discarded.
	_, err := i.execBlock(module.Body)
	return err
}

// Globals exposes the interpreter's global scope, mainly for tests.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// signalKind tags the non-local exits that unwind statement execution.
type signalKind int

const (
	signalNone     signalKind = iota // normal completion
	signalBreak                      // break: caught by the nearest loop
	signalContinue                   // continue: caught by the nearest loop
	signalReturn                     // return: caught by the function body
)

// signal is the result of executing a statement. Loops catch break and
// continue; function bodies catch return and read its carried value.
type signal struct {
	kind  signalKind
	value Value
}

var normal = signal{kind: signalNone}

// execBlock executes statements in order, stopping at the first non-local
// exit or error.
func (i *Interpreter) execBlock(body []ast.Statement) (signal, error) {
	for _, statement := range body {
		sig, err := i.execStatement(statement)
		if err != nil {
			return normal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return normal, nil
}

// execStatement dispatches on the statement kind.
func (i *Interpreter) execStatement(statement ast.Statement) (signal, error) {
	switch s := statement.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpression(s.Value)
		return normal, err
	case *ast.Assign:
		return normal, i.execAssign(s)
	case *ast.AugAssign:
		return normal, i.execAugAssign(s)
	case *ast.If:
		return i.execIf(s)
	case *ast.While:
		return i.execWhile(s)
	case *ast.For:
		return i.execFor(s)
	case *ast.FunctionDef:
		return normal, i.execFunctionDef(s)
	case *ast.Return:
		return i.execReturn(s)
	case *ast.Break:
		return signal{kind: signalBreak}, nil
	case *ast.Continue:
		return signal{kind: signalContinue}, nil
	case *ast.Pass:
		return normal, nil
	case *ast.Import:
		return normal, i.execImport(s)
	case *ast.ImportFrom:
		return normal, i.execImportFrom(s)
	default:
		return normal, newError(TypeErr, "cannot execute statement of type %T", statement)
	}
}

// isTruthy implements the language's boolean coercion: None and False are
// falsy, as are zero numbers and empty sequences, bytes, strings and
// dicts; everything else is truthy.
func isTruthy(value Value) bool {
	switch v := value.(type) {
	case *NoneValue:
		return false
	case *BoolValue:
		return v.Value
	case *IntValue:
		return v.Value != 0
	case *FloatValue:
		return v.Value != 0
	case *StringValue:
		return len(v.Value) > 0
	case *BytesValue:
		return len(v.Value) > 0
	case *ListValue:
		return len(v.Elements) > 0
	case *TupleValue:
		return len(v.Elements) > 0
	case *DequeValue:
		return len(v.Elements) > 0
	case *DictValue:
		return v.Len() > 0
	default:
		return true
	}
}
