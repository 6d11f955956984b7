package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minipy/internal/errors"
	"github.com/cwbudde/go-minipy/internal/lexer"
	"github.com/cwbudde/go-minipy/internal/parser"
	"github.com/spf13/cobra"
)

var prettyErrors bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a MiniPy file or expression",
	Long: `Parse a MiniPy program and print a compact rendering of its AST.

Examples:
  # Parse a script file
  minipy parse script.py

  # Parse inline code
  minipy parse -e "x = 1 + 2 * 3"

  # Show parse errors with source context
  minipy parse --pretty script.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&prettyErrors, "pretty", false, "show errors with source context and caret")
}

func parseScript(_ *cobra.Command, args []string) error {
	input, _, err := resolveInput(args)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		if tokErr, ok := err.(*lexer.Error); ok {
			reportStageError(input, tokErr.Message, tokErr.Offset,
				errors.FormatTokenize(input, tokErr.Offset, tokErr.Message))
		}
		return err
	}

	module, err := parser.Parse(tokens)
	if err != nil {
		if parseErr, ok := err.(*parser.Error); ok {
			offset := len(input)
			if parseErr.TokenIndex < len(tokens) {
				offset = tokens[parseErr.TokenIndex].Start
			}
			reportStageError(input, parseErr.Message, offset,
				errors.FormatParse(input, tokens, parseErr.TokenIndex, parseErr.Message))
		}
		return err
	}

	fmt.Print(module.String())
	return nil
}

// reportStageError prints either the one-line report or, with --pretty,
// the source-context rendering with a caret.
func reportStageError(source, message string, offset int, oneLine string) {
	if !prettyErrors {
		fmt.Fprintln(os.Stderr, oneLine)
		return
	}
	pos := lexer.OffsetPosition(source, offset)
	fmt.Fprintln(os.Stderr, errors.NewSourceError(pos, message, source, "").Format(true))
}
