package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-minipy/internal/lexer"
)

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	Value Expression
}

func (e *ExprStmt) statementNode() {}
func (e *ExprStmt) Pos() int       { return e.Value.Pos() }
func (e *ExprStmt) String() string { return e.Value.String() }

// Assign represents an assignment chain: t1 = t2 = value. Each element of
// Targets is a single target expression, or a Tuple of targets for the
// comma-separated form.
type Assign struct {
	Targets []Expression
	Value   Expression
}

func (a *Assign) statementNode() {}
func (a *Assign) Pos() int       { return a.Targets[0].Pos() }
func (a *Assign) String() string {
	var out bytes.Buffer
	for _, target := range a.Targets {
		out.WriteString(target.String())
		out.WriteString(" = ")
	}
	out.WriteString(a.Value.String())
	return out.String()
}

// AugAssign represents an augmented assignment such as x += 1.
// Op is the operator without the trailing `=`.
type AugAssign struct {
	Target Expression
	Op     string
	Value  Expression
}

func (a *AugAssign) statementNode() {}
func (a *AugAssign) Pos() int       { return a.Target.Pos() }
func (a *AugAssign) String() string {
	return a.Target.String() + " " + a.Op + "= " + a.Value.String()
}

// If represents an if statement. elif chains are lowered into nested If
// nodes inside OrElse.
type If struct {
	Token     lexer.Token
	Condition Expression
	Body      []Statement
	OrElse    []Statement
}

func (i *If) statementNode() {}
func (i *If) Pos() int       { return i.Token.Start }
func (i *If) String() string {
	out := "if " + i.Condition.String() + ": " + blockString(i.Body)
	if len(i.OrElse) > 0 {
		out += " else: " + blockString(i.OrElse)
	}
	return out
}

// While represents a while loop with an optional else block.
type While struct {
	Token     lexer.Token
	Condition Expression
	Body      []Statement
	OrElse    []Statement
}

func (w *While) statementNode() {}
func (w *While) Pos() int       { return w.Token.Start }
func (w *While) String() string {
	out := "while " + w.Condition.String() + ": " + blockString(w.Body)
	if len(w.OrElse) > 0 {
		out += " else: " + blockString(w.OrElse)
	}
	return out
}

// For represents a for loop. Targets holds the comma-separated loop
// variables and Iterable the comma-separated expression list after `in`.
type For struct {
	Token    lexer.Token
	Targets  []Expression
	Iterable []Expression
	Body     []Statement
	OrElse   []Statement
}

func (f *For) statementNode() {}
func (f *For) Pos() int       { return f.Token.Start }
func (f *For) String() string {
	out := "for " + joinExpressions(f.Targets) + " in " + joinExpressions(f.Iterable) +
		": " + blockString(f.Body)
	if len(f.OrElse) > 0 {
		out += " else: " + blockString(f.OrElse)
	}
	return out
}

// FunctionDef represents a def statement. Decorators are stored in source
// order, outermost first.
type FunctionDef struct {
	Token      lexer.Token
	Name       string
	Params     []string
	Body       []Statement
	Decorators []Expression
}

func (f *FunctionDef) statementNode() {}
func (f *FunctionDef) Pos() int       { return f.Token.Start }
func (f *FunctionDef) String() string {
	var out bytes.Buffer
	for _, dec := range f.Decorators {
		out.WriteString("@")
		out.WriteString(dec.String())
		out.WriteString(" ")
	}
	out.WriteString("def ")
	out.WriteString(f.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(f.Params, ", "))
	out.WriteString("): ")
	out.WriteString(blockString(f.Body))
	return out.String()
}

// Return represents a return statement. Value is nil for a bare return.
type Return struct {
	Token lexer.Token
	Value Expression
}

func (r *Return) statementNode() {}
func (r *Return) Pos() int       { return r.Token.Start }
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// Pass represents a pass statement.
type Pass struct {
	Token lexer.Token
}

func (p *Pass) statementNode() {}
func (p *Pass) Pos() int       { return p.Token.Start }
func (p *Pass) String() string { return "pass" }

// Break represents a break statement.
type Break struct {
	Token lexer.Token
}

func (b *Break) statementNode() {}
func (b *Break) Pos() int       { return b.Token.Start }
func (b *Break) String() string { return "break" }

// Continue represents a continue statement.
type Continue struct {
	Token lexer.Token
}

func (c *Continue) statementNode() {}
func (c *Continue) Pos() int       { return c.Token.Start }
func (c *Continue) String() string { return "continue" }

// Import represents `import a.b [as x], ...`.
type Import struct {
	Token lexer.Token
	Names []Alias
}

func (i *Import) statementNode() {}
func (i *Import) Pos() int       { return i.Token.Start }
func (i *Import) String() string {
	parts := make([]string, 0, len(i.Names))
	for _, alias := range i.Names {
		parts = append(parts, alias.String())
	}
	return "import " + strings.Join(parts, ", ")
}

// ImportFrom represents `from a.b import name [as x], ...`. A star import
// is a single alias whose Name is "*".
type ImportFrom struct {
	Token  lexer.Token
	Module string
	Names  []Alias
}

func (i *ImportFrom) statementNode() {}
func (i *ImportFrom) Pos() int       { return i.Token.Start }
func (i *ImportFrom) String() string {
	parts := make([]string, 0, len(i.Names))
	for _, alias := range i.Names {
		parts = append(parts, alias.String())
	}
	return "from " + i.Module + " import " + strings.Join(parts, ", ")
}

// blockString renders a statement block on one line for debugging output.
func blockString(body []Statement) string {
	parts := make([]string, 0, len(body))
	for _, stmt := range body {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "; ")
}
