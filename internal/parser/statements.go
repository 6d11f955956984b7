package parser

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-minipy/internal/ast"
	"github.com/cwbudde/go-minipy/internal/lexer"
)

// augAssignOps are the compound assignment operators the tokenizer can
// produce as single tokens. `//=` arrives as a `/` `/=` pair and is handled
// separately.
var augAssignOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"@=": true, "&=": true, "^=": true, "**=": true,
}

// parseStatement parses one statement. Compound statements start with a
// keyword or a decorator line; everything else is a single-line statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	token := p.peek()

	if token.Type == lexer.NAME {
		switch token.Literal {
		case "def":
			p.advance()
			return p.parseFunctionDef(token, nil)
		case "if":
			p.advance()
			return p.parseIf(token)
		case "while":
			p.advance()
			return p.parseWhile(token)
		case "for":
			p.advance()
			return p.parseFor(token)
		}
	}

	if token.Type == lexer.OP && token.Literal == "@" {
		return p.parseDecorated()
	}

	return p.parseSingleLineStatement()
}

// parseDecorated parses one or more decorator lines followed by a def.
func (p *Parser) parseDecorated() (ast.Statement, error) {
	var decorators []ast.Expression

	for p.matchOp("@") {
		decorator, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, decorator)
		if err := p.endOfLine(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}

	defToken := p.peek()
	if !p.matchName("def") {
		return nil, p.expectedError(`"def"`)
	}
	return p.parseFunctionDef(defToken, decorators)
}

// parseFunctionDef parses `def NAME '(' params? ')' ':' block`. The def
// keyword has already been consumed.
func (p *Parser) parseFunctionDef(defToken lexer.Token, decorators []ast.Expression) (ast.Statement, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("("); err != nil {
		return nil, err
	}

	var params []string
	for !p.peekOp(")") {
		param, err := p.expectName()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.matchOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{
		Token:      defToken,
		Name:       name,
		Params:     params,
		Body:       body,
		Decorators: decorators,
	}, nil
}

// parseIf parses an if statement; elif chains are lowered into nested If
// nodes in OrElse.
func (p *Parser) parseIf(ifToken lexer.Token) (ast.Statement, error) {
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	statement := &ast.If{Token: ifToken, Condition: condition, Body: body}

	p.skipNewlines()
	elifToken := p.peek()
	if p.matchName("elif") {
		nested, err := p.parseIf(elifToken)
		if err != nil {
			return nil, err
		}
		statement.OrElse = []ast.Statement{nested}
	} else if orelse, err := p.parseOptionalElse(); err != nil {
		return nil, err
	} else {
		statement.OrElse = orelse
	}

	return statement, nil
}

// parseWhile parses `while expr ':' block` with an optional else block.
func (p *Parser) parseWhile(whileToken lexer.Token) (ast.Statement, error) {
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	p.skipNewlines()
	orelse, err := p.parseOptionalElse()
	if err != nil {
		return nil, err
	}

	return &ast.While{Token: whileToken, Condition: condition, Body: body, OrElse: orelse}, nil
}

// parseFor parses `for targets 'in' expressions ':' block` with an
// optional else block.
func (p *Parser) parseFor(forToken lexer.Token) (ast.Statement, error) {
	var targets []ast.Expression
	for {
		target, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if err := p.validateTarget(target); err != nil {
			return nil, err
		}
		targets = append(targets, target)
		if !p.matchOp(",") {
			break
		}
		if p.peek().Type == lexer.NAME && p.peek().Literal == "in" {
			break
		}
	}

	if !p.matchName("in") {
		return nil, p.expectedError(`"in"`)
	}

	var iterable []ast.Expression
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		iterable = append(iterable, item)
		if !p.matchOp(",") {
			break
		}
		if p.peekOp(":") {
			break
		}
	}

	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	p.skipNewlines()
	orelse, err := p.parseOptionalElse()
	if err != nil {
		return nil, err
	}

	return &ast.For{
		Token:    forToken,
		Targets:  targets,
		Iterable: iterable,
		Body:     body,
		OrElse:   orelse,
	}, nil
}

// parseOptionalElse parses an `else ':' block` if one follows.
func (p *Parser) parseOptionalElse() ([]ast.Statement, error) {
	if !p.matchName("else") {
		return nil, nil
	}
	if err := p.expectOp(":"); err != nil {
		return nil, err
	}
	return p.parseBlock()
}

// parseBlock parses a statement block: either NEWLINE INDENT statement+
// DEDENT (EOF closes any open block), or a single statement on the same
// line.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if !p.matchType(lexer.NEWLINE) {
		statement, err := p.parseSingleLineStatement()
		if err != nil {
			return nil, err
		}
		return []ast.Statement{statement}, nil
	}

	if err := p.expectType(lexer.INDENT); err != nil {
		return nil, err
	}

	var body []ast.Statement
	for {
		p.skipNewlines()
		if p.atEnd() || p.matchType(lexer.DEDENT) {
			break
		}
		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, statement)
	}

	if len(body) == 0 {
		return nil, p.expectedError("statement")
	}
	return body, nil
}

// parseSingleLineStatement parses the statements that fit on one line.
func (p *Parser) parseSingleLineStatement() (ast.Statement, error) {
	token := p.peek()

	if token.Type == lexer.NAME {
		switch token.Literal {
		case "pass":
			p.advance()
			return &ast.Pass{Token: token}, p.endOfLine()
		case "break":
			p.advance()
			return &ast.Break{Token: token}, p.endOfLine()
		case "continue":
			p.advance()
			return &ast.Continue{Token: token}, p.endOfLine()
		case "return":
			p.advance()
			return p.parseReturn(token)
		case "import":
			p.advance()
			return p.parseImport(token)
		case "from":
			p.advance()
			return p.parseImportFrom(token)
		}
	}

	return p.parseAssignOrExprStmt()
}

// parseReturn parses `return expressions?`.
func (p *Parser) parseReturn(returnToken lexer.Token) (ast.Statement, error) {
	if p.atEnd() || p.peek().Type == lexer.NEWLINE {
		return &ast.Return{Token: returnToken}, p.endOfLine()
	}

	value, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Token: returnToken, Value: value}, p.endOfLine()
}

// parseImport parses `import a.b.c (as x)?, ...`.
func (p *Parser) parseImport(importToken lexer.Token) (ast.Statement, error) {
	var names []ast.Alias
	for {
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		names = append(names, alias)
		if !p.matchOp(",") {
			break
		}
	}
	return &ast.Import{Token: importToken, Names: names}, p.endOfLine()
}

// parseImportFrom parses `from dotted.name import (*|NAME (as NAME)?)(, ...)`.
func (p *Parser) parseImportFrom(fromToken lexer.Token) (ast.Statement, error) {
	module, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	if !p.matchName("import") {
		return nil, p.expectedError(`"import"`)
	}

	if p.matchOp("*") {
		return &ast.ImportFrom{
			Token:  fromToken,
			Module: module,
			Names:  []ast.Alias{{Name: "*"}},
		}, p.endOfLine()
	}

	var names []ast.Alias
	for {
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		names = append(names, alias)
		if !p.matchOp(",") {
			break
		}
	}
	return &ast.ImportFrom{Token: fromToken, Module: module, Names: names}, p.endOfLine()
}

// parseAlias parses `dotted.name (as NAME)?`.
func (p *Parser) parseAlias() (ast.Alias, error) {
	name, err := p.parseDottedName()
	if err != nil {
		return ast.Alias{}, err
	}

	alias := ast.Alias{Name: name}
	if p.matchName("as") {
		asName, err := p.expectName()
		if err != nil {
			return ast.Alias{}, err
		}
		alias.AsName = asName
	}
	return alias, nil
}

// parseDottedName parses `NAME ('.' NAME)*` into a dotted string.
func (p *Parser) parseDottedName() (string, error) {
	part, err := p.expectName()
	if err != nil {
		return "", err
	}

	parts := []string{part}
	for p.matchOp(".") {
		part, err := p.expectName()
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "."), nil
}

// parseAssignOrExprStmt disambiguates assignments from expression
// statements. The leading expression list is parsed greedily; the token
// that follows decides which production it belongs to.
func (p *Parser) parseAssignOrExprStmt() (ast.Statement, error) {
	expressions, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}

	// //= arrives from the tokenizer as a `/` `/=` pair.
	if op, ok := p.matchFloorDivAssign(); ok {
		return p.parseAugAssign(expressions, op)
	}

	token := p.peek()
	if token.Type == lexer.OP && augAssignOps[token.Literal] {
		p.advance()
		return p.parseAugAssign(expressions, strings.TrimSuffix(token.Literal, "="))
	}

	if p.peekOp("=") {
		return p.parseAssign(expressions)
	}

	if p.atEnd() || token.Type == lexer.NEWLINE {
		return &ast.ExprStmt{Value: promoteExpressions(expressions)}, p.endOfLine()
	}

	return nil, p.expectedError("end of statement or assignment")
}

// matchFloorDivAssign consumes an adjacent `/` `/=` token pair.
func (p *Parser) matchFloorDivAssign() (string, bool) {
	cur, next := p.peek(), p.peekNext()
	if cur.Type == lexer.OP && cur.Literal == "/" &&
		next.Type == lexer.OP && next.Literal == "/=" &&
		next.Start == cur.End+1 {
		p.advance()
		p.advance()
		return "//", true
	}
	return "", false
}

// parseAugAssign finishes an augmented assignment after its operator has
// been consumed.
func (p *Parser) parseAugAssign(targets []ast.Expression, op string) (ast.Statement, error) {
	if len(targets) != 1 {
		return nil, &Error{
			Kind:       InvalidAssignTarget,
			Message:    "Augmented assignment requires a single target",
			TokenIndex: p.index,
		}
	}
	if err := p.validateTarget(targets[0]); err != nil {
		return nil, err
	}

	value, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return &ast.AugAssign{Target: targets[0], Op: op, Value: value}, p.endOfLine()
}

// parseAssign finishes an assignment chain: all `=`-separated groups but
// the last become targets.
func (p *Parser) parseAssign(expressions []ast.Expression) (ast.Statement, error) {
	var targets []ast.Expression
	for p.matchOp("=") {
		for _, target := range expressions {
			if err := p.validateTarget(target); err != nil {
				return nil, err
			}
		}
		targets = append(targets, promoteExpressions(expressions))

		var err error
		expressions, err = p.parseExpressions()
		if err != nil {
			return nil, err
		}
	}

	return &ast.Assign{Targets: targets, Value: promoteExpressions(expressions)}, p.endOfLine()
}

// validateTarget checks that an expression may appear on the left of an
// assignment or as a loop variable.
func (p *Parser) validateTarget(target ast.Expression) error {
	switch t := target.(type) {
	case *ast.Name, *ast.Subscript:
		return nil
	case *ast.Tuple:
		for _, element := range t.Elements {
			if err := p.validateTarget(element); err != nil {
				return err
			}
		}
		return nil
	default:
		return &Error{
			Kind:       InvalidAssignTarget,
			Message:    fmt.Sprintf("Cannot assign to a %s", nodeTypeName(target)),
			TokenIndex: p.index,
		}
	}
}

// nodeTypeName names an expression node kind for error messages.
func nodeTypeName(node ast.Expression) string {
	switch node.(type) {
	case *ast.Constant:
		return "Constant"
	case *ast.Name:
		return "Name"
	case *ast.List:
		return "List"
	case *ast.Tuple:
		return "Tuple"
	case *ast.Dict:
		return "Dict"
	case *ast.Attribute:
		return "Attribute"
	case *ast.Subscript:
		return "Subscript"
	case *ast.Slice:
		return "Slice"
	case *ast.Call:
		return "Call"
	case *ast.BinOp:
		return "BinOp"
	case *ast.BoolOp:
		return "BoolOp"
	case *ast.UnaryOp:
		return "UnaryOp"
	case *ast.Compare:
		return "Compare"
	default:
		return "Expression"
	}
}

// endOfLine consumes the statement terminator: a NEWLINE, or end of input.
func (p *Parser) endOfLine() error {
	if p.atEnd() {
		return nil
	}
	return p.expectType(lexer.NEWLINE)
}
