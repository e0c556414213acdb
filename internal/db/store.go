// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/toeirei/wordle-assistant/internal/model"
)

// Store is the persistence contract used by the server and the CLI.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	SetPassword(ctx context.Context, username, passwordHash string) error
	SetUserActive(ctx context.Context, username string, active bool) error
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateInvite(ctx context.Context, inv model.Invite) (int, error)
	GetInviteByHash(ctx context.Context, codeHash string) (*model.Invite, error)
	// RedeemInvite creates the user and marks the invite used in one
	// transaction. It fails with ErrNotFound if the invite was used meanwhile.
	RedeemInvite(ctx context.Context, inviteID int, username, passwordHash string) (int, error)

	GetLoginAttempt(ctx context.Context, ip string) (*model.LoginAttempt, error)
	SaveLoginAttempt(ctx context.Context, a *model.LoginAttempt) error
	DeleteLoginAttempt(ctx context.Context, ip string) error

	LogAction(ctx context.Context, username, action, details string) error
	ListAuditLog(ctx context.Context, limit int) ([]model.AuditLogEntry, error)

	Export(ctx context.Context) (*model.BackupData, error)
	Import(ctx context.Context, data *model.BackupData) error
	Integrate(ctx context.Context, data *model.BackupData) error

	Close() error
}

var _ Store = (*BunStore)(nil)
