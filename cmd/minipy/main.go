// Command minipy runs MiniPy programs.
package main

import (
	"os"

	"github.com/cwbudde/go-minipy/cmd/minipy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
