// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package solver

// Matches reports whether word is consistent with c. Checks run in a fixed
// order: greens, absent letters, yellows, then occurrence bounds. Words that
// are not five lowercase letters never match.
func Matches(word string, c *Constraints) bool {
	if !ValidWord(word) {
		return false
	}

	var counts [26]int
	for i := 0; i < WordLength; i++ {
		counts[word[i]-'a']++
	}

	for pos, ch := range c.Greens {
		if word[pos] != ch {
			return false
		}
	}

	for ch := range c.Grays {
		if counts[ch-'a'] > 0 {
			return false
		}
	}

	for ch, forbidden := range c.Yellows {
		if counts[ch-'a'] == 0 {
			return false
		}
		for pos := range forbidden {
			if word[pos] == ch {
				return false
			}
		}
	}

	for ch, mn := range c.MinCounts {
		if counts[ch-'a'] < mn {
			return false
		}
	}
	for ch, mx := range c.MaxCounts {
		if counts[ch-'a'] > mx {
			return false
		}
	}
	return true
}

// Filter returns the words of dict that match c, preserving dictionary order.
// dict is only read.
func Filter(dict []string, c *Constraints) []string {
	out := make([]string, 0)
	for _, w := range dict {
		if Matches(w, c) {
			out = append(out, w)
		}
	}
	return out
}
