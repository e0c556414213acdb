// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface using Cobra. It loads
// configuration, wires the store, word lists and solver together and hands
// off to the web server, the terminal solver or one of the maintenance
// commands. Business logic stays in the internal packages.
package cli
