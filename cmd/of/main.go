package main

import (
	"os"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/cli"
)

var version = "1.0.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
