package main

import (
	"os"

	"oreore-lsp/src/cli"
)

// runMain returns the process exit code. Execute has already logged any
// error by the time it returns.
func runMain() int {
	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	if code := runMain(); code != 0 {
		os.Exit(code)
	}
}
