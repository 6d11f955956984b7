// Package errors provides error formatting utilities for the MiniPy
// interpreter. It renders stage errors with 1-based line/column positions
// derived from byte offsets, and optionally with source context and a
// caret indicator for terminal output.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-minipy/internal/lexer"
)

// FormatTokenize renders a tokenizer error in the one-line reporting
// format.
func FormatTokenize(source string, offset int, message string) string {
	pos := lexer.OffsetPosition(source, offset)
	return fmt.Sprintf("Tokenize Error at %d:%d - %s", pos.Line, pos.Column, message)
}

// FormatParse renders a parser error in the one-line reporting format.
// The token index is mapped through the token list to a byte offset.
func FormatParse(source string, tokens []lexer.Token, tokenIndex int, message string) string {
	offset := len(source)
	if tokenIndex >= 0 && tokenIndex < len(tokens) {
		offset = tokens[tokenIndex].Start
	}
	pos := lexer.OffsetPosition(source, offset)
	return fmt.Sprintf("Parse Error at %d:%d - %s", pos.Line, pos.Column, message)
}

// SourceError is an error with position and source context, used by the
// CLI's debugging commands for pretty output.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewSourceError creates a source-context error.
func NewSourceError(pos lexer.Position, message, source, file string) *SourceError {
	return &SourceError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format formats the error message with the offending source line and a
// caret indicator. If color is true, ANSI color codes are used.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific 1-indexed line from the source code.
func (e *SourceError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
