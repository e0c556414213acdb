// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"time"

	"github.com/toeirei/wordle-assistant/internal/model"
	"github.com/uptrace/bun"
)

// UserModel is the Bun mapping for the users table.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`
	ID            int       `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username"`
	PasswordHash  string    `bun:"password_hash"`
	CreatedAt     time.Time `bun:"created_at"`
	IsActive      bool      `bun:"is_active"`
}

// InviteModel is the Bun mapping for the invites table.
type InviteModel struct {
	bun.BaseModel    `bun:"table:invites"`
	ID               int        `bun:"id,pk,autoincrement"`
	IntendedUsername string     `bun:"intended_username"`
	CodeHash         string     `bun:"code_hash"`
	CreatedAt        time.Time  `bun:"created_at"`
	ExpiresAt        time.Time  `bun:"expires_at"`
	UsedAt           *time.Time `bun:"used_at,nullzero"`
	UsedByUserID     *int       `bun:"used_by_user_id,nullzero"`
}

// LoginAttemptModel is the Bun mapping for the login_attempts table.
type LoginAttemptModel struct {
	bun.BaseModel `bun:"table:login_attempts"`
	IP            string     `bun:"ip,pk"`
	AttemptCount  int        `bun:"attempt_count"`
	BannedUntil   *time.Time `bun:"banned_until,nullzero"`
	LastAttemptAt time.Time  `bun:"last_attempt_at"`
}

// AuditLogModel is the Bun mapping for the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Username      string    `bun:"username"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func userModelToModel(m UserModel) model.User {
	return model.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
		IsActive:     m.IsActive,
	}
}

func userToModel(u model.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
		IsActive:     u.IsActive,
	}
}

func inviteModelToModel(m InviteModel) model.Invite {
	return model.Invite{
		ID:               m.ID,
		IntendedUsername: m.IntendedUsername,
		CodeHash:         m.CodeHash,
		CreatedAt:        m.CreatedAt.UTC(),
		ExpiresAt:        m.ExpiresAt.UTC(),
		UsedAt:           utcPtr(m.UsedAt),
		UsedByUserID:     m.UsedByUserID,
	}
}

func inviteToModel(i model.Invite) InviteModel {
	return InviteModel{
		ID:               i.ID,
		IntendedUsername: i.IntendedUsername,
		CodeHash:         i.CodeHash,
		CreatedAt:        i.CreatedAt.UTC(),
		ExpiresAt:        i.ExpiresAt.UTC(),
		UsedAt:           utcPtr(i.UsedAt),
		UsedByUserID:     i.UsedByUserID,
	}
}

func loginAttemptModelToModel(m LoginAttemptModel) model.LoginAttempt {
	return model.LoginAttempt{
		IP:            m.IP,
		AttemptCount:  m.AttemptCount,
		BannedUntil:   utcPtr(m.BannedUntil),
		LastAttemptAt: m.LastAttemptAt.UTC(),
	}
}

func loginAttemptToModel(a model.LoginAttempt) LoginAttemptModel {
	return LoginAttemptModel{
		IP:            a.IP,
		AttemptCount:  a.AttemptCount,
		BannedUntil:   utcPtr(a.BannedUntil),
		LastAttemptAt: a.LastAttemptAt.UTC(),
	}
}

func auditLogModelToModel(m AuditLogModel) model.AuditLogEntry {
	return model.AuditLogEntry{
		ID:        m.ID,
		Timestamp: m.Timestamp.UTC(),
		Username:  m.Username,
		Action:    m.Action,
		Details:   m.Details,
	}
}

func auditLogToModel(e model.AuditLogEntry) AuditLogModel {
	return AuditLogModel{
		ID:        e.ID,
		Timestamp: e.Timestamp.UTC(),
		Username:  e.Username,
		Action:    e.Action,
		Details:   e.Details,
	}
}
