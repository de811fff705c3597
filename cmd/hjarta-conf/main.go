// Package main provides the entry point for hjarta-conf.
//
// hjarta-conf converts configuration files between INI, YAML, Lua and TOML
// and prints values from them.
package main

import (
	"fmt"
	"os"

	"github.com/0xalexb/hjarta-conf/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
