// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the persisted entities shared by the store, the auth
// layer and the front ends.
package model

import (
	"fmt"
	"time"
)

// User is an account allowed to use the web solver.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	IsActive     bool
}

// String returns the username with a marker for disabled accounts.
func (u User) String() string {
	if !u.IsActive {
		return fmt.Sprintf("%s (disabled)", u.Username)
	}
	return u.Username
}

// Invite is a single-use registration code bound to one username. Only the
// SHA-256 hash of the code is stored.
type Invite struct {
	ID               int
	IntendedUsername string
	CodeHash         string
	CreatedAt        time.Time
	ExpiresAt        time.Time
	UsedAt           *time.Time
	UsedByUserID     *int
}

// Redeemable reports whether the invite is unused and not expired at now.
func (i Invite) Redeemable(now time.Time) bool {
	return i.UsedAt == nil && !now.After(i.ExpiresAt)
}

// LoginAttempt tracks failed logins and registrations per client IP.
type LoginAttempt struct {
	IP            string
	AttemptCount  int
	BannedUntil   *time.Time
	LastAttemptAt time.Time
}

// Banned reports whether the IP is banned at now.
func (a LoginAttempt) Banned(now time.Time) bool {
	return a.BannedUntil != nil && now.Before(*a.BannedUntil)
}

// AuditLogEntry is one administrative action.
type AuditLogEntry struct {
	ID        int
	Timestamp time.Time
	Username  string
	Action    string
	Details   string
}

// BackupData is the full database content as written by the backup command.
type BackupData struct {
	SchemaVersion   int
	Users           []User
	Invites         []Invite
	LoginAttempts   []LoginAttempt
	AuditLogEntries []AuditLogEntry
}
