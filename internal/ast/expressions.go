package ast

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cwbudde/go-minipy/internal/lexer"
)

// Constant represents a literal value: an integer, float, boolean, string,
// bytes literal, or None. Value holds one of int64, float64, bool, string,
// []byte or nil.
type Constant struct {
	Token lexer.Token
	Value any
}

func (c *Constant) expressionNode() {}
func (c *Constant) Pos() int        { return c.Token.Start }
func (c *Constant) String() string {
	switch v := c.Value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return strconv.Quote(v)
	case []byte:
		return "b" + strconv.Quote(string(v))
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Name represents an identifier reference.
type Name struct {
	Token lexer.Token
	ID    string
}

func (n *Name) expressionNode() {}
func (n *Name) Pos() int        { return n.Token.Start }
func (n *Name) String() string  { return n.ID }

// List represents a list display: [a, b, c].
type List struct {
	Token    lexer.Token
	Elements []Expression
}

func (l *List) expressionNode() {}
func (l *List) Pos() int        { return l.Token.Start }
func (l *List) String() string  { return "[" + joinExpressions(l.Elements) + "]" }

// Tuple represents a tuple display: (a, b) or a bare expression list a, b.
type Tuple struct {
	Token    lexer.Token
	Elements []Expression
}

func (t *Tuple) expressionNode() {}
func (t *Tuple) Pos() int {
	// Tuples promoted from bare expression lists carry no token of their own.
	if t.Token.Literal == "" && len(t.Elements) > 0 {
		return t.Elements[0].Pos()
	}
	return t.Token.Start
}
func (t *Tuple) String() string {
	if len(t.Elements) == 1 {
		return "(" + t.Elements[0].String() + ",)"
	}
	return "(" + joinExpressions(t.Elements) + ")"
}

// Dict represents a dict display: {k1: v1, k2: v2}. Keys and Values are
// parallel slices.
type Dict struct {
	Token  lexer.Token
	Keys   []Expression
	Values []Expression
}

func (d *Dict) expressionNode() {}
func (d *Dict) Pos() int        { return d.Token.Start }
func (d *Dict) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i := range d.Keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(d.Keys[i].String())
		out.WriteString(": ")
		out.WriteString(d.Values[i].String())
	}
	out.WriteString("}")
	return out.String()
}

// Attribute represents attribute access: value.attr.
type Attribute struct {
	Token lexer.Token // the NAME token after the dot
	Value Expression
	Attr  string
}

func (a *Attribute) expressionNode() {}
func (a *Attribute) Pos() int        { return a.Value.Pos() }
func (a *Attribute) String() string  { return a.Value.String() + "." + a.Attr }

// Subscript represents indexing: value[key]. Key is a Slice node for the
// a:b form.
type Subscript struct {
	Token lexer.Token // the '[' token
	Value Expression
	Key   Expression
}

func (s *Subscript) expressionNode() {}
func (s *Subscript) Pos() int        { return s.Value.Pos() }
func (s *Subscript) String() string  { return s.Value.String() + "[" + s.Key.String() + "]" }

// Slice represents the a:b subscript key. Missing sides are filled in by
// the parser as Constant(None).
type Slice struct {
	Token lexer.Token // the ':' token
	Start Expression
	End   Expression
}

func (s *Slice) expressionNode() {}
func (s *Slice) Pos() int        { return s.Token.Start }
func (s *Slice) String() string  { return s.Start.String() + ":" + s.End.String() }

// Call represents a function call: function(args).
type Call struct {
	Token    lexer.Token // the '(' token
	Function Expression
	Args     []Expression
}

func (c *Call) expressionNode() {}
func (c *Call) Pos() int        { return c.Function.Pos() }
func (c *Call) String() string  { return c.Function.String() + "(" + joinExpressions(c.Args) + ")" }

// BinOp represents a binary arithmetic operation. Op is one of
// + - * / // % @ **.
type BinOp struct {
	Token lexer.Token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinOp) expressionNode() {}
func (b *BinOp) Pos() int        { return b.Left.Pos() }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// BoolOp represents a short-circuiting boolean operation. Op is `and` or
// `or`.
type BoolOp struct {
	Token lexer.Token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BoolOp) expressionNode() {}
func (b *BoolOp) Pos() int        { return b.Left.Pos() }
func (b *BoolOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryOp represents a prefix operation. Op is one of + - ~ not.
type UnaryOp struct {
	Token lexer.Token
	Op    string
	Value Expression
}

func (u *UnaryOp) expressionNode() {}
func (u *UnaryOp) Pos() int        { return u.Token.Start }
func (u *UnaryOp) String() string {
	if u.Op == "not" {
		return "(not " + u.Value.String() + ")"
	}
	return "(" + u.Op + u.Value.String() + ")"
}

// Compare represents a comparison. Op is one of
// < > <= >= == != in `not in` is `is not`.
type Compare struct {
	Token lexer.Token
	Left  Expression
	Op    string
	Right Expression
}

func (c *Compare) expressionNode() {}
func (c *Compare) Pos() int        { return c.Left.Pos() }
func (c *Compare) String() string {
	return "(" + c.Left.String() + " " + c.Op + " " + c.Right.String() + ")"
}
