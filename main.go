// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for wordle-assistant.
//
// Usage:
//
//	go run . [flags]
//	./wordle-assistant [flags]
//
// Without a subcommand the interactive terminal solver starts. See --help
// for the other commands.
package main

import (
	"os"

	"github.com/toeirei/wordle-assistant/ui/cli"
)

func main() {
	// cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
