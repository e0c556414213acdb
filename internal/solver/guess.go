// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package solver

import "strings"

// WordLength is the number of letters in every guess and dictionary word.
const WordLength = 5

const (
	// DefaultMaxGuesses caps how many raw records Ingest looks at.
	DefaultMaxGuesses = 5
	// DefaultMinLocked is how many fully coloured guesses are needed before
	// any deduction is attempted.
	DefaultMinLocked = 3
)

// Guess is one submitted word together with its per-cell feedback.
type Guess struct {
	Word   string
	States [WordLength]CellState
}

// Locked reports whether every cell of the guess has been coloured.
func (g Guess) Locked() bool {
	for _, s := range g.States {
		if s == Unknown {
			return false
		}
	}
	return true
}

// RawGuess is the external shape of a guess as it arrives from a request.
type RawGuess struct {
	Word   string   `json:"word"`
	States []string `json:"states"`
}

// ValidWord reports whether w is exactly five lowercase ASCII letters.
func ValidWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// NormalizeWord trims and lowercases a word without validating it.
func NormalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Ingest converts at most maxGuesses raw records into typed guesses. Records
// whose word is not five letters a-z (after case folding) or whose state list
// is not exactly five valid names are dropped without error. A maxGuesses of
// zero or less means DefaultMaxGuesses.
func Ingest(raw []RawGuess, maxGuesses int) []Guess {
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	if len(raw) > maxGuesses {
		raw = raw[:maxGuesses]
	}
	out := make([]Guess, 0, len(raw))
	for _, r := range raw {
		g, ok := ingestOne(r)
		if !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

func ingestOne(r RawGuess) (Guess, bool) {
	w := NormalizeWord(r.Word)
	if !ValidWord(w) || len(r.States) != WordLength {
		return Guess{}, false
	}
	g := Guess{Word: w}
	for i, name := range r.States {
		s, ok := ParseCellState(name)
		if !ok {
			return Guess{}, false
		}
		g.States[i] = s
	}
	return g, true
}

// Locked returns the guesses whose cells are all coloured, in order.
func Locked(guesses []Guess) []Guess {
	out := make([]Guess, 0, len(guesses))
	for _, g := range guesses {
		if g.Locked() {
			out = append(out, g)
		}
	}
	return out
}
