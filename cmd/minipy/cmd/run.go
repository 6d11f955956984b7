package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/go-minipy/pkg/minipy"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a MiniPy file or expression",
	Long: `Execute a MiniPy program from a file or inline source.

Examples:
  # Run a script file
  minipy run script.py

  # Evaluate inline code
  minipy run -e "print('Hello, World!')"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, workdir, err := resolveInput(args)
	if err != nil {
		return err
	}

	return minipy.Interpret(input, minipy.WithWorkdir(workdir))
}

// resolveInput determines the source text and the directory imports
// resolve against: the script's directory for files, the process working
// directory for inline code.
func resolveInput(args []string) (input, workdir string, err error) {
	if evalExpr != "" {
		return evalExpr, ".", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return string(content), filepath.Dir(args[0]), nil
}
