// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package usecase wires the pure solver to its word-list collaborators. It
// applies the locked-guess threshold, fetches the word snapshots and splits
// the candidates into fresh and previously used answers.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/solver"
)

// WordSource provides immutable snapshots of the allowed and used word lists.
// Implementations may cache; callers never modify what they receive.
type WordSource interface {
	AllowedWords(ctx context.Context) ([]string, error)
	UsedWords(ctx context.Context) (map[string]struct{}, error)
}

// ErrWordListUnavailable is returned when the allowed word list cannot be
// loaded. It is a configuration problem, not a contradiction.
var ErrWordListUnavailable = errors.New("allowed word list unavailable")

var errNotConfigured = errors.New("usecase dependency not configured")

// Request is one solve call as received from a front end.
type Request struct {
	Guesses []solver.RawGuess `json:"guesses"`
	Debug   bool              `json:"debug"`
}

// Stats describes the work a solve call performed.
type Stats struct {
	WordsChecked int
	Duration     time.Duration
}

// Result is the outcome of a solve call. Remaining is nil when fewer than
// the required number of guesses were locked; in that case no candidates
// were computed and NeedMore says how many more are required.
type Result struct {
	Locked    int
	NeedMore  int
	Remaining *int
	Fresh     []string
	Used      []string

	Constraints    *solver.Constraints
	Contradictions []solver.Contradiction

	Stats Stats
}

// Service runs solves against a WordSource.
type Service struct {
	Words      WordSource
	MaxGuesses int
	MinLocked  int

	now func() time.Time
}

// NewService returns a Service with the default guess limits.
func NewService(words WordSource) *Service {
	return &Service{
		Words:      words,
		MaxGuesses: solver.DefaultMaxGuesses,
		MinLocked:  solver.DefaultMinLocked,
	}
}

func (u *Service) clock() time.Time {
	if u.now != nil {
		return u.now()
	}
	return time.Now()
}

func (u *Service) minLocked() int {
	if u.MinLocked <= 0 {
		return solver.DefaultMinLocked
	}
	return u.MinLocked
}

// Solve ingests the raw guesses and runs SolveGuesses on them.
func (u *Service) Solve(ctx context.Context, req Request) (*Result, error) {
	return u.SolveGuesses(ctx, solver.Ingest(req.Guesses, u.MaxGuesses), req.Debug)
}

// SolveGuesses runs the pipeline on already typed guesses. Only locked
// guesses are considered. Below the threshold the word source is not
// consulted. Constraints and contradictions are attached only when debug is
// set.
func (u *Service) SolveGuesses(ctx context.Context, guesses []solver.Guess, debug bool) (*Result, error) {
	locked := solver.Locked(guesses)
	res := &Result{Locked: len(locked)}

	if need := u.minLocked() - len(locked); need > 0 {
		res.NeedMore = need
		return res, nil
	}
	if u.Words == nil {
		return nil, errNotConfigured
	}

	start := u.clock()
	allowed, err := u.Words.AllowedWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWordListUnavailable, err)
	}
	used, err := u.Words.UsedWords(ctx)
	if err != nil {
		logging.Warnf("used word list unavailable, treating as empty: %v", err)
		used = nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates, constraints, contradictions := solver.Solve(allowed, locked)
	fresh, prev := solver.Partition(candidates, used)

	remaining := len(candidates)
	res.Remaining = &remaining
	res.Fresh = fresh
	res.Used = prev
	res.Stats = Stats{WordsChecked: len(allowed), Duration: u.clock().Sub(start)}
	if debug {
		res.Constraints = constraints
		res.Contradictions = contradictions
		if res.Contradictions == nil {
			res.Contradictions = []solver.Contradiction{}
		}
	}
	return res, nil
}
