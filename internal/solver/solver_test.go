// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package solver

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// g builds a guess from a word and a compact pattern: g=green y=yellow
// x=gray .=unknown.
func g(word, pattern string) Guess {
	out := Guess{Word: word}
	for i := 0; i < WordLength && i < len(pattern); i++ {
		switch pattern[i] {
		case 'g':
			out.States[i] = Green
		case 'y':
			out.States[i] = Yellow
		case 'x':
			out.States[i] = Gray
		}
	}
	return out
}

func codes(cs []Contradiction) []Code {
	out := make([]Code, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Code)
	}
	return out
}

func TestDerive_AllGrayMarksEveryLetterAbsent(t *testing.T) {
	guesses := []Guess{g("crane", "xxxxx"), g("crane", "xxxxx"), g("crane", "xxxxx")}
	c, contradictions := Derive(guesses)
	if len(contradictions) != 0 {
		t.Fatalf("unexpected contradictions: %v", contradictions)
	}
	got := string(c.GrayLetters())
	if got != "acenr" {
		t.Fatalf("expected grays acenr, got %q", got)
	}

	cands, _, _ := Solve([]string{"crane", "built", "toast"}, guesses)
	if diff := cmp.Diff([]string{"built"}, cands); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_RepeatedPresentLetterRaisesMinimum(t *testing.T) {
	c, contradictions := Derive([]Guess{g("sassy", "gxxyx")})
	if len(contradictions) != 0 {
		t.Fatalf("unexpected contradictions: %v", contradictions)
	}
	if c.MinCounts['s'] != 2 {
		t.Fatalf("expected min_counts[s]=2, got %d", c.MinCounts['s'])
	}
	// s is gray at position 2 beside two confirmed copies.
	if mx, ok := c.MaxCounts['s']; !ok || mx != 2 {
		t.Fatalf("expected max_counts[s]=2, got %d (bounded=%v)", mx, ok)
	}
	if _, ok := c.Grays['s']; ok {
		t.Fatalf("s must not be globally absent")
	}
	for _, ch := range []byte("ay") {
		if _, ok := c.Grays[ch]; !ok {
			t.Fatalf("%c should be absent", ch)
		}
	}
}

func TestDerive_MaxCountOnlyCappedWithinOneGuess(t *testing.T) {
	// s gray in the first guess, present in the second: no cap, not absent.
	c, _ := Derive([]Guess{g("sound", "xxxxx"), g("posit", "xxyxx")})
	if _, ok := c.MaxCounts['s']; ok {
		t.Fatalf("max_counts[s] must stay unbounded across guesses, got %d", c.MaxCounts['s'])
	}
	if c.MinCounts['s'] != 1 {
		t.Fatalf("expected min_counts[s]=1, got %d", c.MinCounts['s'])
	}
	if _, ok := c.Grays['s']; ok {
		t.Fatalf("s confirmed present must not be gray")
	}
}

func TestDerive_GreenConflictLastGuessWins(t *testing.T) {
	c, contradictions := Derive([]Guess{g("about", "gxxxx"), g("bring", "gxxxx")})
	if diff := cmp.Diff([]Code{CodeGreenConflict}, codes(contradictions)); diff != "" {
		t.Fatalf("contradiction codes mismatch (-want +got):\n%s", diff)
	}
	if contradictions[0].Detail != "Position 1 cannot be both a and b" {
		t.Fatalf("unexpected detail %q", contradictions[0].Detail)
	}
	if c.Greens[0] != 'b' {
		t.Fatalf("expected greens[0]=b, got %c", c.Greens[0])
	}
}

func TestDerive_CountConflict(t *testing.T) {
	// Guess one proves two e's; guess two caps e at one.
	_, contradictions := Derive([]Guess{g("geese", "xgyxx"), g("eerie", "gxxxx")})
	found := false
	for _, c := range contradictions {
		if c.Code == CodeCountConflict {
			found = true
			if c.Detail != "Letter e requires at least 2 but at most 1" {
				t.Fatalf("unexpected detail %q", c.Detail)
			}
		}
	}
	if !found {
		t.Fatalf("expected count_conflict, got %v", contradictions)
	}
}

func TestDerive_BadGuessWordPerMalformedWord(t *testing.T) {
	guesses := []Guess{
		g("cr4ne", "xxxxx"),
		g("crane", "xxxxx"),
		g("TOAST", "xxxxx"),
		g("toolong", "xxxxx"),
	}
	c, contradictions := Derive(guesses)
	n := 0
	for _, ct := range contradictions {
		if ct.Code == CodeBadGuessWord {
			n++
		}
	}
	if n != 3 {
		t.Fatalf("expected 3 bad_guess_word, got %d (%v)", n, contradictions)
	}
	if _, ok := c.Grays['t']; ok {
		t.Fatalf("malformed guess must not contribute constraints")
	}
	if _, ok := c.Grays['c']; !ok {
		t.Fatalf("valid guess should still be processed")
	}
}

func TestDerive_MonotonicMinCounts(t *testing.T) {
	base := []Guess{g("eerie", "yxxxg")}
	before, _ := Derive(base)
	after, _ := Derive(append(base, g("shelf", "xxyxx")))
	for ch, n := range before.MinCounts {
		if after.MinCounts[ch] < n {
			t.Fatalf("min_counts[%c] decreased from %d to %d", ch, n, after.MinCounts[ch])
		}
	}
	for pos, ch := range before.Greens {
		if after.Greens[pos] != ch {
			t.Fatalf("greens[%d] changed without a new green", pos)
		}
	}
}

func TestSolve_NoCandidates(t *testing.T) {
	cands, _, contradictions := Solve([]string{"crane", "toast"}, []Guess{g("built", "ggggg")})
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %v", cands)
	}
	if diff := cmp.Diff([]Code{CodeNoCandidates}, codes(contradictions)); diff != "" {
		t.Fatalf("contradiction codes mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_NoCandidatesSuppressedByOtherContradiction(t *testing.T) {
	_, _, contradictions := Solve([]string{"crane"}, []Guess{g("about", "gxxxx"), g("bring", "gxxxx")})
	for _, c := range contradictions {
		if c.Code == CodeNoCandidates {
			t.Fatalf("no_candidates must not be added next to other contradictions")
		}
	}
}

func TestMatches(t *testing.T) {
	c, _ := Derive([]Guess{g("crane", "xyxxg")})
	cases := []struct {
		word string
		want bool
	}{
		{"route", true},
		{"prize", false}, // r at forbidden position 1
		{"those", false}, // no r
		{"cream", false}, // e not last
		{"rouge", true},
		{"Route", false},
		{"rout", false},
	}
	for _, tc := range cases {
		if got := Matches(tc.word, c); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestFilter_IdempotentAndOrdered(t *testing.T) {
	dict := []string{"stare", "route", "rouge", "crane", "three"}
	c, _ := Derive([]Guess{g("crane", "xyxxg")})
	first := Filter(dict, c)
	second := Filter(dict, c)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("filter not idempotent:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"route", "rouge", "three"}, first); diff != "" {
		t.Fatalf("unexpected filter result (-want +got):\n%s", diff)
	}
	if dict[0] != "stare" || len(dict) != 5 {
		t.Fatalf("dictionary was modified")
	}
}

func TestPartition(t *testing.T) {
	cands := []string{"route", "rouge", "three", "trope"}
	used := map[string]struct{}{"rouge": {}, "trope": {}, "zzzzz": {}}
	fresh, prev := Partition(cands, used)
	if diff := cmp.Diff([]string{"route", "three"}, fresh); diff != "" {
		t.Fatalf("fresh mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"rouge", "trope"}, prev); diff != "" {
		t.Fatalf("used mismatch (-want +got):\n%s", diff)
	}
	if len(fresh)+len(prev) != len(cands) {
		t.Fatalf("partition lost words")
	}
}

func TestIngest(t *testing.T) {
	raw := []RawGuess{
		{Word: " CRANE ", States: []string{"gray", "Yellow", "gray", "gray", "green"}},
		{Word: "cr4ne", States: []string{"gray", "gray", "gray", "gray", "gray"}},
		{Word: "toast", States: []string{"gray", "gray"}},
		{Word: "built", States: []string{"gray", "gray", "purple", "gray", "gray"}},
		{Word: "route", States: []string{"unknown", "green", "gray", "gray", "green"}},
		{Word: "shelf", States: []string{"gray", "gray", "gray", "gray", "gray"}},
	}
	got := Ingest(raw, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 accepted guesses, got %d: %+v", len(got), got)
	}
	if got[0].Word != "crane" || got[0].States[1] != Yellow {
		t.Fatalf("unexpected first guess %+v", got[0])
	}
	if !got[0].Locked() || got[1].Locked() {
		t.Fatalf("lock state wrong: %v %v", got[0].Locked(), got[1].Locked())
	}
	// shelf is the sixth record and falls beyond the cap.
	if n := len(Locked(got)); n != 1 {
		t.Fatalf("expected 1 locked guess, got %d", n)
	}
}

func TestCellState_TextRoundTrip(t *testing.T) {
	for s := Unknown; s <= Gray; s++ {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", s, err)
		}
		var back CellState
		if err := back.UnmarshalText(b); err != nil || back != s {
			t.Fatalf("round trip %v -> %q -> %v (%v)", s, b, back, err)
		}
	}
	if Gray.Next() != Unknown {
		t.Fatalf("Next should wrap to Unknown")
	}
	var bad CellState
	if err := bad.UnmarshalText([]byte("purple")); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}

func TestConstraints_MarshalJSON(t *testing.T) {
	c, _ := Derive([]Guess{g("crane", "xyxxg"), g("route", "gxxyg")})
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	greens := got["greens"].(map[string]any)
	if greens["0"] != "r" || greens["4"] != "e" {
		t.Fatalf("unexpected greens %v", greens)
	}
	yellows := got["yellows"].(map[string]any)
	if diff := cmp.Diff([]any{float64(1)}, yellows["r"]); diff != "" {
		t.Fatalf("yellows[r] mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "c", "n", "o", "u"}, got["grays"]); diff != "" {
		t.Fatalf("grays mismatch:\n%s", diff)
	}
}
