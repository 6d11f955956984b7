package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-minipy/internal/errors"
	"github.com/cwbudde/go-minipy/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a MiniPy file or expression",
	Long: `Tokenize (lex) a MiniPy program and print the resulting tokens,
including the synthesized INDENT, DEDENT and NEWLINE tokens.

Examples:
  # Tokenize a script file
  minipy lex script.py

  # Tokenize inline code
  minipy lex -e "x = [1, 2]"

  # Show token positions
  minipy lex --show-pos script.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := resolveInput(args)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		if tokErr, ok := err.(*lexer.Error); ok {
			fmt.Fprintln(os.Stderr, errors.FormatTokenize(input, tokErr.Offset, tokErr.Message))
		}
		return err
	}

	for _, token := range tokens {
		if showPos {
			pos := lexer.OffsetPosition(input, token.Start)
			fmt.Printf("%d:%d\t%s\t%q\n", pos.Line, pos.Column, token.Type, token.Literal)
		} else {
			fmt.Printf("%s\t%q\n", token.Type, token.Literal)
		}
	}
	return nil
}
