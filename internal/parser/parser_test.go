package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cwbudde/go-minipy/internal/ast"
	"github.com/cwbudde/go-minipy/internal/lexer"
)

// parseSource tokenizes and parses input, failing the test on any error.
func parseSource(t *testing.T, input string) *ast.Module {
	t.Helper()

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	module, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return module
}

// checkAST compares a parsed module against the expected tree, ignoring
// the lexer tokens embedded in nodes.
func checkAST(t *testing.T, input string, want *ast.Module) {
	t.Helper()

	got := parseSource(t, input)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(lexer.Token{})); diff != "" {
		t.Errorf("AST mismatch for %q (-want +got):\n%s", input, diff)
	}
}

func name(id string) *ast.Name              { return &ast.Name{ID: id} }
func intConst(value int64) *ast.Constant    { return &ast.Constant{Value: value} }
func strConst(value string) *ast.Constant   { return &ast.Constant{Value: value} }
func floatConst(value float64) *ast.Constant { return &ast.Constant{Value: value} }
func noneConst() *ast.Constant              { return &ast.Constant{Value: nil} }

func TestExpressionStatements(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Expression
	}{
		{"42\n", intConst(42)},
		{"3.14\n", floatConst(3.14)},
		{"'hi'\n", strConst("hi")},
		{"True\n", &ast.Constant{Value: true}},
		{"None\n", noneConst()},
		{"x\n", name("x")},
		{
			"1 + 2 * 3\n",
			&ast.BinOp{
				Left: intConst(1),
				Op:   "+",
				Right: &ast.BinOp{
					Left:  intConst(2),
					Op:    "*",
					Right: intConst(3),
				},
			},
		},
		{
			"(1 + 2) * 3\n",
			&ast.BinOp{
				Left: &ast.BinOp{
					Left:  intConst(1),
					Op:    "+",
					Right: intConst(2),
				},
				Op:    "*",
				Right: intConst(3),
			},
		},
		{
			"a // b\n",
			&ast.BinOp{Left: name("a"), Op: "//", Right: name("b")},
		},
		{
			"2 ** 3 ** 2\n",
			&ast.BinOp{
				Left: intConst(2),
				Op:   "**",
				Right: &ast.BinOp{
					Left:  intConst(3),
					Op:    "**",
					Right: intConst(2),
				},
			},
		},
		{
			"-x ** 2\n",
			&ast.UnaryOp{
				Op: "-",
				Value: &ast.BinOp{
					Left:  name("x"),
					Op:    "**",
					Right: intConst(2),
				},
			},
		},
		{
			"not a and b\n",
			&ast.BoolOp{
				Left:  &ast.UnaryOp{Op: "not", Value: name("a")},
				Op:    "and",
				Right: name("b"),
			},
		},
		{
			"a or b and c\n",
			&ast.BoolOp{
				Left: name("a"),
				Op:   "or",
				Right: &ast.BoolOp{
					Left:  name("b"),
					Op:    "and",
					Right: name("c"),
				},
			},
		},
		{
			"a < b\n",
			&ast.Compare{Left: name("a"), Op: "<", Right: name("b")},
		},
		{
			"a < b < c\n",
			&ast.Compare{
				Left:  &ast.Compare{Left: name("a"), Op: "<", Right: name("b")},
				Op:    "<",
				Right: name("c"),
			},
		},
		{
			"a not in b\n",
			&ast.Compare{Left: name("a"), Op: "not in", Right: name("b")},
		},
		{
			"a is not b\n",
			&ast.Compare{Left: name("a"), Op: "is not", Right: name("b")},
		},
		{
			"f(x, 1)\n",
			&ast.Call{
				Function: name("f"),
				Args:     []ast.Expression{name("x"), intConst(1)},
			},
		},
		{
			"a.b.c\n",
			&ast.Attribute{
				Value: &ast.Attribute{Value: name("a"), Attr: "b"},
				Attr:  "c",
			},
		},
		{
			"x[0]\n",
			&ast.Subscript{Value: name("x"), Key: intConst(0)},
		},
		{
			"x[1:2]\n",
			&ast.Subscript{
				Value: name("x"),
				Key:   &ast.Slice{Start: intConst(1), End: intConst(2)},
			},
		},
		{
			"x[:2]\n",
			&ast.Subscript{
				Value: name("x"),
				Key:   &ast.Slice{Start: noneConst(), End: intConst(2)},
			},
		},
		{
			"x[1:]\n",
			&ast.Subscript{
				Value: name("x"),
				Key:   &ast.Slice{Start: intConst(1), End: noneConst()},
			},
		},
		{
			"x[:]\n",
			&ast.Subscript{
				Value: name("x"),
				Key:   &ast.Slice{Start: noneConst(), End: noneConst()},
			},
		},
		{
			"[1, 2, 3]\n",
			&ast.List{Elements: []ast.Expression{intConst(1), intConst(2), intConst(3)}},
		},
		{"[]\n", &ast.List{}},
		{"()\n", &ast.Tuple{}},
		{
			"(1, 'two')\n",
			&ast.Tuple{Elements: []ast.Expression{intConst(1), strConst("two")}},
		},
		{
			"1, 2\n",
			&ast.Tuple{Elements: []ast.Expression{intConst(1), intConst(2)}},
		},
		{
			"{'a': 1, 'b': 2}\n",
			&ast.Dict{
				Keys:   []ast.Expression{strConst("a"), strConst("b")},
				Values: []ast.Expression{intConst(1), intConst(2)},
			},
		},
		{"{}\n", &ast.Dict{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkAST(t, tt.input, &ast.Module{
				Body: []ast.Statement{&ast.ExprStmt{Value: tt.want}},
			})
		})
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`'a\nb'` + "\n", "a\nb"},
		{`'\t\r\f'` + "\n", "\t\r\f"},
		{`'\x41'` + "\n", "A"},
		{`'\u2603'` + "\n", "\u2603"},
		{`'\U0001F643'` + "\n", "\U0001F643"},
		{`'it\'s'` + "\n", "it's"},
		{`"""foo"""` + "\n", "foo"},
		{"b'abc'\n", []byte("abc")},
		{`b'\x41\xff'` + "\n", []byte{0x41, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkAST(t, tt.input, &ast.Module{
				Body: []ast.Statement{&ast.ExprStmt{Value: &ast.Constant{Value: tt.want}}},
			})
		})
	}
}

func TestAssignments(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Statement
	}{
		{
			"x = 5\n",
			&ast.Assign{Targets: []ast.Expression{name("x")}, Value: intConst(5)},
		},
		{
			"x = y = 5\n",
			&ast.Assign{Targets: []ast.Expression{name("x"), name("y")}, Value: intConst(5)},
		},
		{
			"a, b = 1, 2\n",
			&ast.Assign{
				Targets: []ast.Expression{
					&ast.Tuple{Elements: []ast.Expression{name("a"), name("b")}},
				},
				Value: &ast.Tuple{Elements: []ast.Expression{intConst(1), intConst(2)}},
			},
		},
		{
			"x[0] = 5\n",
			&ast.Assign{
				Targets: []ast.Expression{&ast.Subscript{Value: name("x"), Key: intConst(0)}},
				Value:   intConst(5),
			},
		},
		{
			"x += 1\n",
			&ast.AugAssign{Target: name("x"), Op: "+", Value: intConst(1)},
		},
		{
			"x **= 2\n",
			&ast.AugAssign{Target: name("x"), Op: "**", Value: intConst(2)},
		},
		{
			"x //= 2\n",
			&ast.AugAssign{Target: name("x"), Op: "//", Value: intConst(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkAST(t, tt.input, &ast.Module{Body: []ast.Statement{tt.want}})
		})
	}
}

func TestFunctionDef(t *testing.T) {
	input := "def foo(x, y):\n    return x + y\n"
	checkAST(t, input, &ast.Module{
		Body: []ast.Statement{
			&ast.FunctionDef{
				Name:   "foo",
				Params: []string{"x", "y"},
				Body: []ast.Statement{
					&ast.Return{
						Value: &ast.BinOp{Left: name("x"), Op: "+", Right: name("y")},
					},
				},
			},
		},
	})
}

func TestDecorators(t *testing.T) {
	input := "@outer\n@inner\ndef foo():\n    pass\n"
	checkAST(t, input, &ast.Module{
		Body: []ast.Statement{
			&ast.FunctionDef{
				Name:       "foo",
				Body:       []ast.Statement{&ast.Pass{}},
				Decorators: []ast.Expression{name("outer"), name("inner")},
			},
		},
	})
}

func TestIfElifElse(t *testing.T) {
	input := "" +
		"if a:\n" +
		"    x = 1\n" +
		"elif b:\n" +
		"    x = 2\n" +
		"else:\n" +
		"    x = 3\n"
	checkAST(t, input, &ast.Module{
		Body: []ast.Statement{
			&ast.If{
				Condition: name("a"),
				Body: []ast.Statement{
					&ast.Assign{Targets: []ast.Expression{name("x")}, Value: intConst(1)},
				},
				OrElse: []ast.Statement{
					&ast.If{
						Condition: name("b"),
						Body: []ast.Statement{
							&ast.Assign{Targets: []ast.Expression{name("x")}, Value: intConst(2)},
						},
						OrElse: []ast.Statement{
							&ast.Assign{Targets: []ast.Expression{name("x")}, Value: intConst(3)},
						},
					},
				},
			},
		},
	})
}

func TestLoops(t *testing.T) {
	t.Run("while with else", func(t *testing.T) {
		input := "while x:\n    break\nelse:\n    pass\n"
		checkAST(t, input, &ast.Module{
			Body: []ast.Statement{
				&ast.While{
					Condition: name("x"),
					Body:      []ast.Statement{&ast.Break{}},
					OrElse:    []ast.Statement{&ast.Pass{}},
				},
			},
		})
	})

	t.Run("for with multiple targets", func(t *testing.T) {
		input := "for k, v in d.items():\n    continue\n"
		checkAST(t, input, &ast.Module{
			Body: []ast.Statement{
				&ast.For{
					Targets: []ast.Expression{name("k"), name("v")},
					Iterable: []ast.Expression{
						&ast.Call{
							Function: &ast.Attribute{Value: name("d"), Attr: "items"},
						},
					},
					Body: []ast.Statement{&ast.Continue{}},
				},
			},
		})
	})

	t.Run("for with multiple iterables", func(t *testing.T) {
		input := "for x in a, b:\n    pass\n"
		checkAST(t, input, &ast.Module{
			Body: []ast.Statement{
				&ast.For{
					Targets:  []ast.Expression{name("x")},
					Iterable: []ast.Expression{name("a"), name("b")},
					Body:     []ast.Statement{&ast.Pass{}},
				},
			},
		})
	})

	t.Run("single line block", func(t *testing.T) {
		input := "while x: pass\n"
		checkAST(t, input, &ast.Module{
			Body: []ast.Statement{
				&ast.While{
					Condition: name("x"),
					Body:      []ast.Statement{&ast.Pass{}},
				},
			},
		})
	})
}

func TestImports(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Statement
	}{
		{
			"import a.b.c\n",
			&ast.Import{Names: []ast.Alias{{Name: "a.b.c"}}},
		},
		{
			"import a.b as x, d\n",
			&ast.Import{Names: []ast.Alias{{Name: "a.b", AsName: "x"}, {Name: "d"}}},
		},
		{
			"from m import *\n",
			&ast.ImportFrom{Module: "m", Names: []ast.Alias{{Name: "*"}}},
		},
		{
			"from a.b import c as d, e\n",
			&ast.ImportFrom{
				Module: "a.b",
				Names:  []ast.Alias{{Name: "c", AsName: "d"}, {Name: "e"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkAST(t, tt.input, &ast.Module{Body: []ast.Statement{tt.want}})
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"assign to literal", "5 = x\n", InvalidAssignTarget},
		{"assign to call", "f() = x\n", InvalidAssignTarget},
		{"keyword as name", "class = 5\n", UnexpectedKeyword},
		{"missing paren", "f(1, 2\n", Expected},
		{"missing colon", "if x\n    pass\n", Expected},
		{"stray operator", "x !\n", Expected},
		{"augassign multiple targets", "a, b += 1\n", InvalidAssignTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := lexer.Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}
			_, err = Parse(tokens)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			parseErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error has type %T, want *Error", err)
			}
			if parseErr.Kind != tt.kind {
				t.Errorf("error kind = %s, want %s (%s)", parseErr.Kind, tt.kind, parseErr.Message)
			}
		})
	}
}
