// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package usecase

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/wordle-assistant/internal/solver"
)

func TestNewResponse_NeedMoreEncodesNullAndEmptyLists(t *testing.T) {
	b, err := json.Marshal(NewResponse(&Result{Locked: 1, NeedMore: 2}, true))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"locked":1,"need_more":2,"remaining":null,"fresh_candidates":[],"used_candidates":[],"duration_ms":0}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestNewResponse_DebugFields(t *testing.T) {
	n := 0
	res := &Result{
		Locked:         3,
		Remaining:      &n,
		Constraints:    solver.NewConstraints(),
		Contradictions: []solver.Contradiction{{Code: solver.CodeNoCandidates, Detail: "No words match"}},
		Stats:          Stats{Duration: 12 * time.Millisecond},
	}

	plain := NewResponse(res, false)
	if plain.Constraints != nil || plain.Contradictions != nil {
		t.Fatalf("debug fields leaked without debug: %+v", plain)
	}

	b, err := json.Marshal(NewResponse(res, true))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"remaining":0`, `"constraints":{`, `"code":"no_candidates"`, `"duration_ms":12`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("missing %s in %s", want, b)
		}
	}
}
