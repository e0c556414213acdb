// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package solver is the deduction core of wordle-assistant.
//
// Given guesses annotated per cell with Green, Yellow or Gray feedback it
// derives one aggregate set of Constraints, reports feedback that cannot be
// satisfied as Contradictions, and filters a dictionary down to the words that
// are still possible.
//
// Everything in this package is a pure function of its arguments. Nothing is
// cached, nothing blocks, and callers may run any number of solves in
// parallel as long as they do not mutate the word slices they pass in.
//
// Pipeline
//   - Ingest turns raw records (as received from HTTP or the CLI) into typed
//     guesses, silently dropping malformed rows.
//   - Derive folds locked guesses into Constraints.
//   - Matches / Filter test dictionary words against Constraints.
//   - Solve composes Derive and Filter and adds the terminal no_candidates
//     diagnostic; Partition splits the result against a used-word set.
package solver
