// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package solver

const noCandidatesDetail = "No candidates remain. A color marking may be incorrect (often repeated letters)."

// Solve derives constraints from the locked guesses and filters the whole
// allowed list with them. When nothing matches and no other contradiction was
// found, a no_candidates contradiction is appended.
//
// Used words are deliberately not an input here: a previously used answer is
// still a valid candidate, see Partition.
func Solve(allowed []string, guesses []Guess) ([]string, *Constraints, []Contradiction) {
	c, contradictions := Derive(guesses)
	candidates := Filter(allowed, c)
	if len(candidates) == 0 && len(contradictions) == 0 {
		contradictions = append(contradictions, Contradiction{
			Code:   CodeNoCandidates,
			Detail: noCandidatesDetail,
		})
	}
	return candidates, c, contradictions
}

// Partition splits candidates into words not in used (fresh) and words in
// used, each keeping the order of candidates.
func Partition(candidates []string, used map[string]struct{}) (fresh, previouslyUsed []string) {
	fresh = make([]string, 0, len(candidates))
	previouslyUsed = make([]string, 0)
	for _, w := range candidates {
		if _, ok := used[w]; ok {
			previouslyUsed = append(previouslyUsed, w)
			continue
		}
		fresh = append(fresh, w)
	}
	return fresh, previouslyUsed
}
