// Package parser implements the MiniPy parser.
//
// Statements are parsed by recursive descent over the token stream; the
// expression grammar is a precedence ladder from `or` at the bottom up to
// the postfix primaries. The parser consumes the token list produced by
// the lexer and builds an ast.Module. It never backtracks: the one
// ambiguous production (assignment vs expression statement) is resolved by
// parsing an expression list first and inspecting the following token.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-minipy/internal/ast"
	"github.com/cwbudde/go-minipy/internal/lexer"
)

// keywords is the reserved word set. True, False and None are handled as
// constants before this set is consulted.
var keywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// Parser parses a token stream into an AST.
type Parser struct {
	tokens []lexer.Token
	index  int
	eof    lexer.Token
}

// New creates a Parser over the given token list.
func New(tokens []lexer.Token) *Parser {
	end := 0
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].End + 1
	}
	return &Parser{
		tokens: tokens,
		eof:    lexer.Token{Type: lexer.EOF, Start: end, End: end},
	}
}

// Parse is a convenience wrapper that parses tokens in one call.
func Parse(tokens []lexer.Token) (*ast.Module, error) {
	return New(tokens).ParseModule()
}

// atEnd reports whether all tokens have been consumed.
func (p *Parser) atEnd() bool {
	return p.index >= len(p.tokens)
}

// peek returns the current token without consuming it, or the EOF sentinel.
func (p *Parser) peek() lexer.Token {
	if p.atEnd() {
		return p.eof
	}
	return p.tokens[p.index]
}

// peekNext returns the token after the current one, or the EOF sentinel.
func (p *Parser) peekNext() lexer.Token {
	if p.index+1 >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[p.index+1]
}

// advance consumes the current token.
func (p *Parser) advance() {
	p.index++
}

// matchType consumes the current token if it has the given type.
func (p *Parser) matchType(tokenType lexer.TokenType) bool {
	if p.peek().Type != tokenType {
		return false
	}
	p.advance()
	return true
}

// matchOp consumes the current token if it is an OP with one of the given
// lexemes.
func (p *Parser) matchOp(ops ...string) bool {
	token := p.peek()
	if token.Type != lexer.OP {
		return false
	}
	for _, op := range ops {
		if token.Literal == op {
			p.advance()
			return true
		}
	}
	return false
}

// matchName consumes the current token if it is a NAME with one of the
// given spellings.
func (p *Parser) matchName(names ...string) bool {
	token := p.peek()
	if token.Type != lexer.NAME {
		return false
	}
	for _, name := range names {
		if token.Literal == name {
			p.advance()
			return true
		}
	}
	return false
}

// peekOp reports whether the current token is an OP with one of the given
// lexemes, without consuming it.
func (p *Parser) peekOp(ops ...string) bool {
	token := p.peek()
	if token.Type != lexer.OP {
		return false
	}
	for _, op := range ops {
		if token.Literal == op {
			return true
		}
	}
	return false
}

// expectType consumes a token of the given type or fails.
func (p *Parser) expectType(tokenType lexer.TokenType) error {
	if p.matchType(tokenType) {
		return nil
	}
	return p.expectedError(tokenType.String())
}

// expectOp consumes an OP token with the given lexeme or fails.
func (p *Parser) expectOp(op string) error {
	if p.matchOp(op) {
		return nil
	}
	return p.expectedError(fmt.Sprintf("%q", op))
}

// expectName consumes a non-keyword NAME token and returns its spelling.
func (p *Parser) expectName() (string, error) {
	token := p.peek()
	if token.Type != lexer.NAME {
		return "", p.expectedError("NAME")
	}
	if keywords[token.Literal] || isConstantName(token.Literal) {
		return "", &Error{
			Kind:       UnexpectedKeyword,
			Message:    fmt.Sprintf("Unexpected keyword: %q", token.Literal),
			TokenIndex: p.index,
		}
	}
	p.advance()
	return token.Literal, nil
}

// expectedError builds an Expected error describing the current token.
func (p *Parser) expectedError(what string) error {
	found := "EOF"
	if !p.atEnd() {
		token := p.peek()
		found = fmt.Sprintf("%s %q", token.Type, token.Literal)
	}
	return &Error{
		Kind:       Expected,
		Message:    fmt.Sprintf("Expected %s, found %s", what, found),
		TokenIndex: p.index,
	}
}

func isConstantName(name string) bool {
	return name == "True" || name == "False" || name == "None"
}

// skipNewlines consumes any run of NEWLINE tokens. Empty lines between
// statements carry no meaning.
func (p *Parser) skipNewlines() {
	for p.matchType(lexer.NEWLINE) {
	}
}

// ParseModule parses the whole token stream into a Module.
func (p *Parser) ParseModule() (*ast.Module, error) {
	module := &ast.Module{}

	p.skipNewlines()
	for !p.atEnd() {
		statement, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		module.Body = append(module.Body, statement)
		p.skipNewlines()
	}

	return module, nil
}
