// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package solver

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Code identifies the kind of a Contradiction.
type Code string

const (
	CodeBadGuessWord  Code = "bad_guess_word"
	CodeGreenConflict Code = "green_conflict"
	CodeCountConflict Code = "count_conflict"
	CodeNoCandidates  Code = "no_candidates"
)

// Contradiction reports feedback that cannot be satisfied. It is a
// diagnostic returned next to the results, never an error.
type Contradiction struct {
	Code   Code   `json:"code"`
	Detail string `json:"detail"`
}

func (c Contradiction) String() string {
	return fmt.Sprintf("%s: %s", c.Code, c.Detail)
}

// Constraints is the aggregate of everything the guesses prove about the
// answer. Letters are lowercase ASCII bytes.
type Constraints struct {
	// Greens maps a position (0-4) to the letter required there.
	Greens map[int]byte
	// Yellows maps a letter known to be present to the positions it may not occupy.
	Yellows map[byte]map[int]struct{}
	// Grays holds letters that are absent from the answer.
	Grays map[byte]struct{}
	// MinCounts holds the minimum number of occurrences per letter.
	MinCounts map[byte]int
	// MaxCounts holds the maximum number of occurrences per letter. A letter
	// without an entry is unbounded.
	MaxCounts map[byte]int
}

// NewConstraints returns an empty constraint set that every word satisfies.
func NewConstraints() *Constraints {
	return &Constraints{
		Greens:    make(map[int]byte),
		Yellows:   make(map[byte]map[int]struct{}),
		Grays:     make(map[byte]struct{}),
		MinCounts: make(map[byte]int),
		MaxCounts: make(map[byte]int),
	}
}

// Derive folds the guesses, in order, into one Constraints value and collects
// every contradiction found on the way. Processing never stops early: a
// malformed guess is reported and skipped, conflicting greens are reported and
// the later guess wins.
func Derive(guesses []Guess) (*Constraints, []Contradiction) {
	c := NewConstraints()
	var contradictions []Contradiction
	grayed := make(map[byte]struct{})

	for _, g := range guesses {
		if !ValidWord(g.Word) {
			contradictions = append(contradictions, Contradiction{
				Code:   CodeBadGuessWord,
				Detail: fmt.Sprintf("Invalid guess word: %q", g.Word),
			})
			continue
		}

		present := make(map[byte]int)
		gray := make(map[byte]int)

		for i := 0; i < WordLength; i++ {
			ch := g.Word[i]
			switch g.States[i] {
			case Green:
				if prev, ok := c.Greens[i]; ok && prev != ch {
					contradictions = append(contradictions, Contradiction{
						Code:   CodeGreenConflict,
						Detail: fmt.Sprintf("Position %d cannot be both %c and %c", i+1, prev, ch),
					})
				}
				c.Greens[i] = ch
				present[ch]++
			case Yellow:
				forbidden, ok := c.Yellows[ch]
				if !ok {
					forbidden = make(map[int]struct{})
					c.Yellows[ch] = forbidden
				}
				forbidden[i] = struct{}{}
				present[ch]++
			case Gray:
				gray[ch]++
				grayed[ch] = struct{}{}
			}
		}

		for ch, n := range present {
			if n > c.MinCounts[ch] {
				c.MinCounts[ch] = n
			}
		}

		// Gray next to a confirmed copy of the same letter caps the count at
		// what this guess confirmed; it does not make the letter absent.
		for ch := range gray {
			n, ok := present[ch]
			if !ok {
				continue
			}
			if cur, bounded := c.MaxCounts[ch]; !bounded || n < cur {
				c.MaxCounts[ch] = n
			}
		}
	}

	for ch := range grayed {
		if _, ok := c.MinCounts[ch]; !ok {
			c.Grays[ch] = struct{}{}
		}
	}

	for ch := byte('a'); ch <= 'z'; ch++ {
		mn, ok := c.MinCounts[ch]
		if !ok {
			continue
		}
		if mx, bounded := c.MaxCounts[ch]; bounded && mn > mx {
			contradictions = append(contradictions, Contradiction{
				Code:   CodeCountConflict,
				Detail: fmt.Sprintf("Letter %c requires at least %d but at most %d", ch, mn, mx),
			})
		}
	}

	return c, contradictions
}

// Forbidden returns the sorted positions the yellow letter ch may not occupy.
func (c *Constraints) Forbidden(ch byte) []int {
	set := c.Yellows[ch]
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// GrayLetters returns the absent letters in alphabetical order.
func (c *Constraints) GrayLetters() []byte {
	out := make([]byte, 0, len(c.Grays))
	for ch := range c.Grays {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type constraintsJSON struct {
	Greens    map[string]string `json:"greens"`
	Yellows   map[string][]int  `json:"yellows"`
	Grays     []string          `json:"grays"`
	MinCounts map[string]int    `json:"min_counts"`
	MaxCounts map[string]int    `json:"max_counts"`
}

// MarshalJSON renders letters as one-character strings and position sets as
// sorted lists so the debug payload is readable.
func (c *Constraints) MarshalJSON() ([]byte, error) {
	out := constraintsJSON{
		Greens:    make(map[string]string, len(c.Greens)),
		Yellows:   make(map[string][]int, len(c.Yellows)),
		Grays:     make([]string, 0, len(c.Grays)),
		MinCounts: make(map[string]int, len(c.MinCounts)),
		MaxCounts: make(map[string]int, len(c.MaxCounts)),
	}
	for pos, ch := range c.Greens {
		out.Greens[fmt.Sprint(pos)] = string(ch)
	}
	for ch := range c.Yellows {
		out.Yellows[string(ch)] = c.Forbidden(ch)
	}
	for _, ch := range c.GrayLetters() {
		out.Grays = append(out.Grays, string(ch))
	}
	for ch, n := range c.MinCounts {
		out.MinCounts[string(ch)] = n
	}
	for ch, n := range c.MaxCounts {
		out.MaxCounts[string(ch)] = n
	}
	return json.Marshal(out)
}
