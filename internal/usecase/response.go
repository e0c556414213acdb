// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package usecase

import "github.com/toeirei/wordle-assistant/internal/solver"

// Response is the JSON form of a Result shared by the HTTP API and the
// command line. Remaining is null below the guess threshold and the word
// lists are never null.
type Response struct {
	Locked          int                    `json:"locked"`
	NeedMore        int                    `json:"need_more"`
	Remaining       *int                   `json:"remaining"`
	FreshCandidates []string               `json:"fresh_candidates"`
	UsedCandidates  []string               `json:"used_candidates"`
	Constraints     *solver.Constraints    `json:"constraints,omitempty"`
	Contradictions  []solver.Contradiction `json:"contradictions,omitempty"`
	DurationMs      int64                  `json:"duration_ms"`
}

// NewResponse converts res. Constraints and contradictions are included
// only when debug is set and a deduction was performed.
func NewResponse(res *Result, debug bool) Response {
	out := Response{
		Locked:          res.Locked,
		NeedMore:        res.NeedMore,
		Remaining:       res.Remaining,
		FreshCandidates: nonNil(res.Fresh),
		UsedCandidates:  nonNil(res.Used),
		DurationMs:      res.Stats.Duration.Milliseconds(),
	}
	if debug && res.Remaining != nil {
		out.Constraints = res.Constraints
		out.Contradictions = res.Contradictions
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
