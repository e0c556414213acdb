// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"context"
	"time"

	"github.com/toeirei/wordle-assistant/internal/model"
)

const (
	// DefaultFailsToBan is the number of failures after which an IP is banned.
	DefaultFailsToBan = 3
	// DefaultBanDuration is how long a ban lasts.
	DefaultBanDuration = 24 * time.Hour
)

// AttemptStore persists failure counters per IP. GetLoginAttempt returns
// nil and no error when the IP has no record.
type AttemptStore interface {
	GetLoginAttempt(ctx context.Context, ip string) (*model.LoginAttempt, error)
	SaveLoginAttempt(ctx context.Context, a *model.LoginAttempt) error
	DeleteLoginAttempt(ctx context.Context, ip string) error
}

// Guard bans client IPs after repeated login or registration failures.
// Counters do not decay; they are only cleared by a successful attempt.
type Guard struct {
	Store       AttemptStore
	FailsToBan  int
	BanDuration time.Duration
	Now         func() time.Time
}

// NewGuard returns a Guard with the default thresholds.
func NewGuard(store AttemptStore) *Guard {
	return &Guard{Store: store, FailsToBan: DefaultFailsToBan, BanDuration: DefaultBanDuration}
}

func (g *Guard) now() time.Time {
	if g.Now != nil {
		return g.Now().UTC()
	}
	return time.Now().UTC()
}

// IsBanned reports whether ip is currently banned and until when.
func (g *Guard) IsBanned(ctx context.Context, ip string) (bool, time.Time, error) {
	a, err := g.Store.GetLoginAttempt(ctx, ip)
	if err != nil || a == nil || a.BannedUntil == nil {
		return false, time.Time{}, err
	}
	return a.Banned(g.now()), *a.BannedUntil, nil
}

// RecordFailure increments the counter for ip. Once the counter reaches the
// threshold every further failure extends the ban to now plus BanDuration.
func (g *Guard) RecordFailure(ctx context.Context, ip string) (nowBanned bool, until time.Time, attempts int, err error) {
	now := g.now()
	a, err := g.Store.GetLoginAttempt(ctx, ip)
	if err != nil {
		return false, time.Time{}, 0, err
	}
	if a == nil {
		a = &model.LoginAttempt{IP: ip}
	}
	a.AttemptCount++
	a.LastAttemptAt = now

	fails := g.FailsToBan
	if fails <= 0 {
		fails = DefaultFailsToBan
	}
	ban := g.BanDuration
	if ban <= 0 {
		ban = DefaultBanDuration
	}
	if a.AttemptCount >= fails {
		t := now.Add(ban)
		a.BannedUntil = &t
		nowBanned = true
		until = t
	}
	if err := g.Store.SaveLoginAttempt(ctx, a); err != nil {
		return false, time.Time{}, 0, err
	}
	return nowBanned, until, a.AttemptCount, nil
}

// Clear removes the failure record for ip.
func (g *Guard) Clear(ctx context.Context, ip string) error {
	return g.Store.DeleteLoginAttempt(ctx, ip)
}
