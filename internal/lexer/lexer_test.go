package lexer

import (
	"testing"
)

// tok is a shorthand constructor for expected tokens.
func tok(tokenType TokenType, literal string, start, end int) Token {
	return Token{Type: tokenType, Literal: literal, Start: start, End: end}
}

func checkTokens(t *testing.T, source string, want []Token) {
	t.Helper()

	got, err := Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", source, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) produced %d tokens, want %d\ngot:  %v\nwant: %v",
			source, len(got), len(want), got, want)
	}
	for at := range want {
		if got[at] != want[at] {
			t.Errorf("token %d: got %+v, want %+v", at, got[at], want[at])
		}
	}
}

func TestOperatorsAndIndent(t *testing.T) {
	source := "for i in range(10 % 3):\n    i **= 1  # stuff\n"
	checkTokens(t, source, []Token{
		tok(NAME, "for", 0, 2),
		tok(NAME, "i", 4, 4),
		tok(NAME, "in", 6, 7),
		tok(NAME, "range", 9, 13),
		tok(OP, "(", 14, 14),
		tok(NUMBER, "10", 15, 16),
		tok(OP, "%", 18, 18),
		tok(NUMBER, "3", 20, 20),
		tok(OP, ")", 21, 21),
		tok(OP, ":", 22, 22),
		tok(NEWLINE, "\n", 23, 23),
		tok(INDENT, "    ", 24, 27),
		tok(NAME, "i", 28, 28),
		tok(OP, "**=", 30, 32),
		tok(NUMBER, "1", 34, 34),
		tok(NEWLINE, "\n", 44, 44),
		tok(DEDENT, "", 45, 44),
	})
}

func TestBracketedNewlines(t *testing.T) {
	source := "print(\n  'a\\nb'[i]\n)\n2+2\n"
	checkTokens(t, source, []Token{
		tok(NAME, "print", 0, 4),
		tok(OP, "(", 5, 5),
		tok(STRING, `'a\nb'`, 9, 14),
		tok(OP, "[", 15, 15),
		tok(NAME, "i", 16, 16),
		tok(OP, "]", 17, 17),
		tok(OP, ")", 19, 19),
		tok(NEWLINE, "\n", 20, 20),
		tok(NUMBER, "2", 21, 21),
		tok(OP, "+", 22, 22),
		tok(NUMBER, "2", 23, 23),
		tok(NEWLINE, "\n", 24, 24),
	})
}

func TestIndentStack(t *testing.T) {
	source := "foo\n" +
		"    bar\n" +
		"        baz\n" +
		"buzz\n" +
		"    stuff\n" +
		"          quux\n" +
		"    spam\n" +
		"      eggs\n" +
		"bacon\n"
	checkTokens(t, source, []Token{
		tok(NAME, "foo", 0, 2),
		tok(NEWLINE, "\n", 3, 3),
		tok(INDENT, "    ", 4, 7),
		tok(NAME, "bar", 8, 10),
		tok(NEWLINE, "\n", 11, 11),
		tok(INDENT, "        ", 12, 19),
		tok(NAME, "baz", 20, 22),
		tok(NEWLINE, "\n", 23, 23),
		tok(DEDENT, "", 24, 23),
		tok(DEDENT, "", 24, 23),
		tok(NAME, "buzz", 24, 27),
		tok(NEWLINE, "\n", 28, 28),
		tok(INDENT, "    ", 29, 32),
		tok(NAME, "stuff", 33, 37),
		tok(NEWLINE, "\n", 38, 38),
		tok(INDENT, "          ", 39, 48),
		tok(NAME, "quux", 49, 52),
		tok(NEWLINE, "\n", 53, 53),
		tok(DEDENT, "", 58, 57),
		tok(NAME, "spam", 58, 61),
		tok(NEWLINE, "\n", 62, 62),
		tok(INDENT, "      ", 63, 68),
		tok(NAME, "eggs", 69, 72),
		tok(NEWLINE, "\n", 73, 73),
		tok(DEDENT, "", 74, 73),
		tok(DEDENT, "", 74, 73),
		tok(NAME, "bacon", 74, 78),
		tok(NEWLINE, "\n", 79, 79),
	})
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []Token
	}{
		{
			name:   "single quotes",
			source: "'hello'",
			want:   []Token{tok(STRING, "'hello'", 0, 6)},
		},
		{
			name:   "double quotes",
			source: `"hello"`,
			want:   []Token{tok(STRING, `"hello"`, 0, 6)},
		},
		{
			name:   "triple quotes",
			source: `"""foo"""`,
			want:   []Token{tok(STRING, `"""foo"""`, 0, 8)},
		},
		{
			name:   "triple quotes with embedded quote",
			source: `'''it's'''`,
			want:   []Token{tok(STRING, `'''it's'''`, 0, 9)},
		},
		{
			name:   "escapes",
			source: `'a\n\t\\b'`,
			want:   []Token{tok(STRING, `'a\n\t\\b'`, 0, 9)},
		},
		{
			name:   "hex and unicode escapes",
			source: `'\x41\u2603'`,
			want:   []Token{tok(STRING, `'\x41\u2603'`, 0, 11)},
		},
		{
			name:   "bytes prefix",
			source: "b'abc'",
			want:   []Token{tok(STRING, "b'abc'", 0, 5)},
		},
		{
			name:   "empty string",
			source: "''",
			want:   []Token{tok(STRING, "''", 0, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, tt.source, tt.want)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		source string
		want   []Token
	}{
		{"42", []Token{tok(NUMBER, "42", 0, 1)}},
		{"3.14", []Token{tok(NUMBER, "3.14", 0, 3)}},
		{"1e10", []Token{tok(NUMBER, "1e10", 0, 3)}},
		{"2.5E3", []Token{tok(NUMBER, "2.5E3", 0, 4)}},
		// A dot not followed by a digit is a separate token.
		{"1.x", []Token{
			tok(NUMBER, "1", 0, 0),
			tok(OP, ".", 1, 1),
			tok(NAME, "x", 2, 2),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			checkTokens(t, tt.source, tt.want)
		})
	}
}

func TestCompoundOperators(t *testing.T) {
	tests := []struct {
		source string
		want   []Token
	}{
		{"x += 1", []Token{
			tok(NAME, "x", 0, 0),
			tok(OP, "+=", 2, 3),
			tok(NUMBER, "1", 5, 5),
		}},
		{"a ** b", []Token{
			tok(NAME, "a", 0, 0),
			tok(OP, "**", 2, 3),
			tok(NAME, "b", 5, 5),
		}},
		// Floor division is two adjacent slash tokens.
		{"a//b", []Token{
			tok(NAME, "a", 0, 0),
			tok(OP, "/", 1, 1),
			tok(OP, "/", 2, 2),
			tok(NAME, "b", 3, 3),
		}},
		{"a <= b != c", []Token{
			tok(NAME, "a", 0, 0),
			tok(OP, "<=", 2, 3),
			tok(NAME, "b", 5, 5),
			tok(OP, "!=", 7, 8),
			tok(NAME, "c", 10, 10),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			checkTokens(t, tt.source, tt.want)
		})
	}
}

func TestComments(t *testing.T) {
	checkTokens(t, "x = 1  # the answer\ny\n", []Token{
		tok(NAME, "x", 0, 0),
		tok(OP, "=", 2, 2),
		tok(NUMBER, "1", 4, 4),
		tok(NEWLINE, "\n", 19, 19),
		tok(NAME, "y", 20, 20),
		tok(NEWLINE, "\n", 21, 21),
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   ErrorKind
		offset int
	}{
		{"unknown char", "x = $", UnknownChar, 4},
		{"unknown escape", `'a\q'`, UnknownEscape, 3},
		{"unterminated string", "'abc", UnterminatedString, 0},
		{"unterminated triple", "'''abc''", UnterminatedString, 0},
		{"bad dedent", "if x:\n        a\n    b\n", BadIndent, 16},
		{"tab space mix", "if x:\n    a\n\tb\n", BadIndent, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.source)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.source)
			}
			tokErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error has type %T, want *Error", err)
			}
			if tokErr.Kind != tt.kind {
				t.Errorf("error kind = %s, want %s", tokErr.Kind, tt.kind)
			}
			if tokErr.Offset != tt.offset {
				t.Errorf("error offset = %d, want %d", tokErr.Offset, tt.offset)
			}
		})
	}
}

func TestOffsetPosition(t *testing.T) {
	source := "abc\ndef\nghi"
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 1, 4},
		{4, 2, 1},
		{8, 3, 1},
		{10, 3, 3},
	}

	for _, tt := range tests {
		pos := OffsetPosition(source, tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("OffsetPosition(%d) = %d:%d, want %d:%d",
				tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}
