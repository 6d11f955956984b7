// Package minipy is the embedding facade for the MiniPy interpreter.
// It wires the tokenizer, parser and evaluator into a single entry point
// and owns the error-reporting surface: stage errors are formatted with
// source coordinates and written to the configured error writer.
package minipy

import (
	goerrors "errors"
	"io"
	"os"

	"github.com/cwbudde/go-minipy/internal/errors"
	"github.com/cwbudde/go-minipy/internal/interp"
	"github.com/cwbudde/go-minipy/internal/lexer"
	"github.com/cwbudde/go-minipy/internal/parser"
)

// Option configures an interpretation run.
type Option func(*config)

type config struct {
	stdout  io.Writer
	stderr  io.Writer
	workdir string
}

// WithStdout redirects program output (the print builtin).
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr redirects error reporting.
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// WithWorkdir sets the directory import paths resolve against.
func WithWorkdir(dir string) Option {
	return func(c *config) {
		c.workdir = dir
	}
}

// Interpret tokenizes, parses and evaluates source. Errors at any stage
// short-circuit the pipeline: they are formatted onto the error writer
// and returned. Output already produced by the program is retained.
func Interpret(source string, opts ...Option) error {
	cfg := &config{stdout: os.Stdout, stderr: os.Stderr, workdir: "."}
	for _, opt := range opts {
		opt(cfg)
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		var tokErr *lexer.Error
		if goerrors.As(err, &tokErr) {
			io.WriteString(cfg.stderr, errors.FormatTokenize(source, tokErr.Offset, tokErr.Message)+"\n")
		}
		return err
	}

	module, err := parser.Parse(tokens)
	if err != nil {
		var parseErr *parser.Error
		if goerrors.As(err, &parseErr) {
			io.WriteString(cfg.stderr,
				errors.FormatParse(source, tokens, parseErr.TokenIndex, parseErr.Message)+"\n")
		}
		return err
	}

	in := interp.New(interp.WithStdout(cfg.stdout), interp.WithWorkdir(cfg.workdir))
	if err := in.Run(module); err != nil {
		io.WriteString(cfg.stderr, err.Error()+"\n")
		return err
	}
	return nil
}
