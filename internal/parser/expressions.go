package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-minipy/internal/ast"
	"github.com/cwbudde/go-minipy/internal/lexer"
)

// The expression grammar is a precedence ladder, lowest first:
//
//	or > and > not > comparison > sum > term > unary > power > primary
//
// Each level is left-associative except `not` (prefix) and `**`
// (right-associative).

// parseExpression parses a single expression.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

// parseExpressionList parses `expression (',' expression)* ','?` and
// promotes multiple expressions to a Tuple.
func (p *Parser) parseExpressionList() (ast.Expression, error) {
	expressions, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	return promoteExpressions(expressions), nil
}

// parseExpressions parses a comma-separated expression list with an
// optional trailing comma.
func (p *Parser) parseExpressions() ([]ast.Expression, error) {
	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	expressions := []ast.Expression{expression}
	for p.matchOp(",") {
		if !p.startsExpression() {
			break
		}
		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expression)
	}
	return expressions, nil
}

// startsExpression reports whether the current token can begin an
// expression, which decides whether a comma was a trailing one.
func (p *Parser) startsExpression() bool {
	token := p.peek()
	switch token.Type {
	case lexer.NAME, lexer.NUMBER, lexer.STRING:
		return true
	case lexer.OP:
		switch token.Literal {
		case "(", "[", "{", "+", "-", "~":
			return true
		}
	}
	return false
}

// promoteExpressions turns a multi-expression list into a Tuple.
func promoteExpressions(expressions []ast.Expression) ast.Expression {
	if len(expressions) == 1 {
		return expressions[0]
	}
	return &ast.Tuple{Elements: expressions}
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		if !p.matchName("or") {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BoolOp{Token: token, Left: left, Op: "or", Right: right}
	}
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		if !p.matchName("and") {
			return left, nil
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BoolOp{Token: token, Left: left, Op: "and", Right: right}
	}
}

func (p *Parser) parseNot() (ast.Expression, error) {
	token := p.peek()
	if p.matchName("not") {
		value, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: token, Op: "not", Value: value}, nil
	}
	return p.parseComparison()
}

// parseComparison parses a left-associative comparison chain. A chain like
// a < b < c is rebuilt as (a < b) < c; there is no short-circuiting.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		op, ok := p.matchComparisonOp()
		if !ok {
			return left, nil
		}
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		left = &ast.Compare{Token: token, Left: left, Op: op, Right: right}
	}
}

// matchComparisonOp consumes a comparison operator, including the
// two-token forms `not in` and `is not`.
func (p *Parser) matchComparisonOp() (string, bool) {
	token := p.peek()

	if token.Type == lexer.OP {
		switch token.Literal {
		case "<", ">", "<=", ">=", "==", "!=":
			p.advance()
			return token.Literal, true
		}
		return "", false
	}

	if token.Type != lexer.NAME {
		return "", false
	}
	switch token.Literal {
	case "in":
		p.advance()
		return "in", true
	case "not":
		if next := p.peekNext(); next.Type == lexer.NAME && next.Literal == "in" {
			p.advance()
			p.advance()
			return "not in", true
		}
	case "is":
		p.advance()
		if next := p.peek(); next.Type == lexer.NAME && next.Literal == "not" {
			p.advance()
			return "is not", true
		}
		return "is", true
	}
	return "", false
}

func (p *Parser) parseSum() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		if !p.matchOp("+", "-") {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: token, Left: left, Op: token.Literal, Right: right}
	}
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		op, ok := p.matchTermOp()
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: token, Left: left, Op: op, Right: right}
	}
}

// matchTermOp consumes a multiplicative operator. `//` arrives from the
// tokenizer as two adjacent `/` tokens.
func (p *Parser) matchTermOp() (string, bool) {
	token := p.peek()
	if token.Type != lexer.OP {
		return "", false
	}

	switch token.Literal {
	case "*", "%", "@":
		p.advance()
		return token.Literal, true
	case "/":
		// An adjacent `/=` makes this the start of a `//=` augmented
		// assignment, which belongs to the statement level.
		if next := p.peekNext(); next.Type == lexer.OP && next.Literal == "/=" &&
			next.Start == token.End+1 {
			return "", false
		}
		p.advance()
		if next := p.peek(); next.Type == lexer.OP && next.Literal == "/" &&
			next.Start == token.End+1 {
			p.advance()
			return "//", true
		}
		return "/", true
	}
	return "", false
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	token := p.peek()
	if p.matchOp("+", "-", "~") {
		value, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: token, Op: token.Literal, Value: value}, nil
	}
	return p.parsePower()
}

// parsePower parses `primary ('**' unary)?`; the right operand re-enters
// unary, making ** right-associative.
func (p *Parser) parsePower() (ast.Expression, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	token := p.peek()
	if token.Type == lexer.OP && token.Literal == "**" {
		p.advance()
		exponent, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Token: token, Left: base, Op: "**", Right: exponent}, nil
	}
	return base, nil
}

// parsePrimary parses an atom followed by any number of attribute,
// subscript, and call postfixes.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	value, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peek()
		switch {
		case p.matchOp("."):
			nameToken := p.peek()
			attr, err := p.expectName()
			if err != nil {
				return nil, err
			}
			value = &ast.Attribute{Token: nameToken, Value: value, Attr: attr}

		case p.matchOp("["):
			key, err := p.parseSubscriptKey()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}
			value = &ast.Subscript{Token: token, Value: value, Key: key}

		case p.matchOp("("):
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			value = &ast.Call{Token: token, Function: value, Args: args}

		default:
			return value, nil
		}
	}
}

// parseSubscriptKey parses a subscript key: a single expression or an
// `a:b` slice with either side optional. Missing sides become
// Constant(None).
func (p *Parser) parseSubscriptKey() (ast.Expression, error) {
	colonToken := p.peek()
	if p.matchOp(":") {
		return p.parseSliceEnd(colonToken, &ast.Constant{Token: colonToken, Value: nil})
	}

	key, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	colonToken = p.peek()
	if p.matchOp(":") {
		return p.parseSliceEnd(colonToken, key)
	}
	return key, nil
}

// parseSliceEnd finishes a slice whose colon has been consumed.
func (p *Parser) parseSliceEnd(colonToken lexer.Token, start ast.Expression) (ast.Expression, error) {
	end := ast.Expression(&ast.Constant{Token: colonToken, Value: nil})
	if !p.peekOp("]") {
		parsed, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end = parsed
	}
	return &ast.Slice{Token: colonToken, Start: start, End: end}, nil
}

// parseCallArgs parses `arguments? ')'`.
func (p *Parser) parseCallArgs() ([]ast.Expression, error) {
	var args []ast.Expression
	for !p.peekOp(")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.matchOp(",") {
			break
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseAtom parses literals, names, and the bracketed display forms.
func (p *Parser) parseAtom() (ast.Expression, error) {
	token := p.peek()

	switch token.Type {
	case lexer.NAME:
		switch token.Literal {
		case "True":
			p.advance()
			return &ast.Constant{Token: token, Value: true}, nil
		case "False":
			p.advance()
			return &ast.Constant{Token: token, Value: false}, nil
		case "None":
			p.advance()
			return &ast.Constant{Token: token, Value: nil}, nil
		}
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		return &ast.Name{Token: token, ID: name}, nil

	case lexer.NUMBER:
		p.advance()
		return p.parseNumberLiteral(token)

	case lexer.STRING:
		p.advance()
		value, err := unquote(token.Literal)
		if err != nil {
			return nil, &Error{
				Kind:       Expected,
				Message:    err.Error(),
				TokenIndex: p.index - 1,
			}
		}
		return &ast.Constant{Token: token, Value: value}, nil

	case lexer.OP:
		switch token.Literal {
		case "(":
			return p.parseParenthesized(token)
		case "[":
			return p.parseListDisplay(token)
		case "{":
			return p.parseDictDisplay(token)
		}
	}

	return nil, p.expectedError("an expression")
}

// parseNumberLiteral converts a NUMBER token: all digits make an integer,
// anything else a float.
func (p *Parser) parseNumberLiteral(token lexer.Token) (ast.Expression, error) {
	if isAllDigits(token.Literal) {
		value, err := strconv.ParseInt(token.Literal, 10, 64)
		if err != nil {
			return nil, &Error{
				Kind:       Expected,
				Message:    "Integer literal out of range",
				TokenIndex: p.index - 1,
			}
		}
		return &ast.Constant{Token: token, Value: value}, nil
	}

	value, err := strconv.ParseFloat(token.Literal, 64)
	if err != nil {
		return nil, &Error{
			Kind:       Expected,
			Message:    "Invalid number literal",
			TokenIndex: p.index - 1,
		}
	}
	return &ast.Constant{Token: token, Value: value}, nil
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// parseParenthesized parses `()`, a grouped expression, or a tuple
// display. The opening paren is the current token.
func (p *Parser) parseParenthesized(open lexer.Token) (ast.Expression, error) {
	p.advance()

	if p.matchOp(")") {
		return &ast.Tuple{Token: open}, nil
	}

	expressions, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}

	if len(expressions) == 1 {
		return expressions[0], nil
	}
	return &ast.Tuple{Token: open, Elements: expressions}, nil
}

// parseListDisplay parses `'[' expressions? ']'`.
func (p *Parser) parseListDisplay(open lexer.Token) (ast.Expression, error) {
	p.advance()

	if p.matchOp("]") {
		return &ast.List{Token: open}, nil
	}

	expressions, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp("]"); err != nil {
		return nil, err
	}
	return &ast.List{Token: open, Elements: expressions}, nil
}

// parseDictDisplay parses `'{' (k ':' v)(, ...)* ','? '}'`.
func (p *Parser) parseDictDisplay(open lexer.Token) (ast.Expression, error) {
	p.advance()

	dict := &ast.Dict{Token: open}
	for !p.peekOp("}") {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		dict.Keys = append(dict.Keys, key)
		dict.Values = append(dict.Values, value)
		if !p.matchOp(",") {
			break
		}
	}
	if err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return dict, nil
}

// trimPrefixQuotes strips the quote characters (and a bytes prefix) from a
// string lexeme, returning the inner text and whether it was a bytes
// literal.
func trimPrefixQuotes(lexeme string) (inner string, isBytes bool, err error) {
	if strings.HasPrefix(lexeme, "b") || strings.HasPrefix(lexeme, "B") {
		isBytes = true
		lexeme = lexeme[1:]
	}

	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(lexeme, quote) && strings.HasSuffix(lexeme, quote) &&
			len(lexeme) >= 2*len(quote) {
			return lexeme[len(quote) : len(lexeme)-len(quote)], isBytes, nil
		}
	}
	return "", false, &Error{Kind: Expected, Message: "Malformed string literal"}
}
