package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/go-minipy/pkg/minipy"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "minipy [file]",
	Short: "MiniPy interpreter",
	Long: `minipy is a tree-walking interpreter for MiniPy, a dynamically-typed,
indentation-structured scripting language.

With a file argument the file is executed; without one, the program is
read from standard input until EOF.

The language covers functions with closures and decorators, lists,
tuples, dicts and deques, for/while loops with else blocks, and
module imports resolved relative to the working directory.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

// runFile executes a script file, or standard input when no path is
// given. Script errors are reported on stderr by the interpreter and do
// not affect the exit code; only a failure to open the file does.
func runFile(_ *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return err
	}

	// Stage errors have already been written to stderr.
	_ = minipy.Interpret(source)
	return nil
}

// readSource loads the program text from the optional file argument or
// from standard input. The returned error carries the exact user-facing
// message, already newline-terminated.
func readSource(args []string) (string, error) {
	if len(args) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("\x1b[31mError:\x1b[m Unable to read standard input\n")
		}
		return string(content), nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("\x1b[31mError:\x1b[m Unable to open file: '%s'\n", args[0])
	}
	return string(content), nil
}
