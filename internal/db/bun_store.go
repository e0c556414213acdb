// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/toeirei/wordle-assistant/internal/model"
	"github.com/uptrace/bun"
)

// BackupSchemaVersion is written into every export and checked on import.
const BackupSchemaVersion = 1

// BunStore implements Store on top of a long-lived *bun.DB.
type BunStore struct {
	bun    *bun.DB
	dbType string
	now    func() time.Time
}

// BunDB returns the underlying *bun.DB.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

// DBType returns the configured database type.
func (s *BunStore) DBType() string { return s.dbType }

func (s *BunStore) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

// Close releases the underlying connection pool.
func (s *BunStore) Close() error {
	if s == nil || s.bun == nil {
		return nil
	}
	return s.bun.Close()
}

// lastInsertID fills *id from the driver result when the dialect did not
// return the primary key.
func lastInsertID(res sql.Result, id *int) error {
	if *id != 0 {
		return nil
	}
	n, err := res.LastInsertId()
	if err != nil {
		return err
	}
	*id = int(n)
	return nil
}

// CreateUser inserts an active account.
func (s *BunStore) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	return createUser(ctx, s.bun, username, passwordHash, s.clock())
}

func createUser(ctx context.Context, db bun.IDB, username, passwordHash string, now time.Time) (int, error) {
	m := &UserModel{Username: username, PasswordHash: passwordHash, CreatedAt: now, IsActive: true}
	res, err := db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		return 0, MapDBError(err)
	}
	if err := lastInsertID(res, &m.ID); err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}
	return m.ID, nil
}

// GetUserByUsername returns ErrNotFound if no such user exists.
func (s *BunStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var m UserModel
	if err := s.bun.NewSelect().Model(&m).Where("username = ?", username).Limit(1).Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	u := userModelToModel(m)
	return &u, nil
}

func (s *BunStore) userExists(ctx context.Context, username string) error {
	ok, err := s.bun.NewSelect().Model((*UserModel)(nil)).Where("username = ?", username).Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SetPassword replaces the password hash of an existing user.
func (s *BunStore) SetPassword(ctx context.Context, username, passwordHash string) error {
	if err := s.userExists(ctx, username); err != nil {
		return err
	}
	_, err := s.bun.NewUpdate().Model((*UserModel)(nil)).
		Set("password_hash = ?", passwordHash).
		Where("username = ?", username).
		Exec(ctx)
	return err
}

// SetUserActive enables or disables an account.
func (s *BunStore) SetUserActive(ctx context.Context, username string, active bool) error {
	if err := s.userExists(ctx, username); err != nil {
		return err
	}
	_, err := s.bun.NewUpdate().Model((*UserModel)(nil)).
		Set("is_active = ?", active).
		Where("username = ?", username).
		Exec(ctx)
	return err
}

// ListUsers returns all accounts ordered by username.
func (s *BunStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var ms []UserModel
	if err := s.bun.NewSelect().Model(&ms).Order("username ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(ms))
	for _, m := range ms {
		out = append(out, userModelToModel(m))
	}
	return out, nil
}

// CreateInvite stores a new invite. CreatedAt defaults to now.
func (s *BunStore) CreateInvite(ctx context.Context, inv model.Invite) (int, error) {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = s.clock()
	}
	inv.ID = 0
	m := inviteToModel(inv)
	res, err := s.bun.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		return 0, MapDBError(err)
	}
	if err := lastInsertID(res, &m.ID); err != nil {
		return 0, fmt.Errorf("failed to read invite id: %w", err)
	}
	return m.ID, nil
}

// GetInviteByHash returns ErrNotFound if no invite has that code hash.
func (s *BunStore) GetInviteByHash(ctx context.Context, codeHash string) (*model.Invite, error) {
	var m InviteModel
	if err := s.bun.NewSelect().Model(&m).Where("code_hash = ?", codeHash).Limit(1).Scan(ctx); err != nil {
		return nil, MapDBError(err)
	}
	inv := inviteModelToModel(m)
	return &inv, nil
}

// RedeemInvite creates the account and marks the invite used atomically.
func (s *BunStore) RedeemInvite(ctx context.Context, inviteID int, username, passwordHash string) (int, error) {
	now := s.clock()
	var userID int
	err := WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		id, err := createUser(ctx, tx, username, passwordHash, now)
		if err != nil {
			return err
		}
		res, err := tx.NewUpdate().Model((*InviteModel)(nil)).
			Set("used_at = ?", now).
			Set("used_by_user_id = ?", id).
			Where("id = ?", inviteID).
			Where("used_at IS NULL").
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		userID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// GetLoginAttempt returns nil, nil when the IP has no record.
func (s *BunStore) GetLoginAttempt(ctx context.Context, ip string) (*model.LoginAttempt, error) {
	var m LoginAttemptModel
	err := s.bun.NewSelect().Model(&m).Where("ip = ?", ip).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a := loginAttemptModelToModel(m)
	return &a, nil
}

// SaveLoginAttempt replaces the record for a.IP.
func (s *BunStore) SaveLoginAttempt(ctx context.Context, a *model.LoginAttempt) error {
	if a == nil {
		return errors.New("nil login attempt")
	}
	m := loginAttemptToModel(*a)
	return WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*LoginAttemptModel)(nil)).Where("ip = ?", m.IP).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&m).Exec(ctx)
		return err
	})
}

// DeleteLoginAttempt removes the record for ip if present.
func (s *BunStore) DeleteLoginAttempt(ctx context.Context, ip string) error {
	_, err := s.bun.NewDelete().Model((*LoginAttemptModel)(nil)).Where("ip = ?", ip).Exec(ctx)
	return err
}

// LogAction appends an audit log entry.
func (s *BunStore) LogAction(ctx context.Context, username, action, details string) error {
	m := &AuditLogModel{Timestamp: s.clock(), Username: username, Action: action, Details: details}
	_, err := s.bun.NewInsert().Model(m).Exec(ctx)
	return err
}

// ListAuditLog returns the newest entries first. limit <= 0 returns all.
func (s *BunStore) ListAuditLog(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	var ms []AuditLogModel
	q := s.bun.NewSelect().Model(&ms).Order("timestamp DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(ms))
	for _, m := range ms {
		out = append(out, auditLogModelToModel(m))
	}
	return out, nil
}

// Export reads every table into a BackupData.
func (s *BunStore) Export(ctx context.Context) (*model.BackupData, error) {
	data := &model.BackupData{SchemaVersion: BackupSchemaVersion}

	var users []UserModel
	if err := s.bun.NewSelect().Model(&users).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	for _, m := range users {
		data.Users = append(data.Users, userModelToModel(m))
	}

	var invites []InviteModel
	if err := s.bun.NewSelect().Model(&invites).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("export invites: %w", err)
	}
	for _, m := range invites {
		data.Invites = append(data.Invites, inviteModelToModel(m))
	}

	var attempts []LoginAttemptModel
	if err := s.bun.NewSelect().Model(&attempts).Order("ip ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("export login attempts: %w", err)
	}
	for _, m := range attempts {
		data.LoginAttempts = append(data.LoginAttempts, loginAttemptModelToModel(m))
	}

	var entries []AuditLogModel
	if err := s.bun.NewSelect().Model(&entries).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("export audit log: %w", err)
	}
	for _, m := range entries {
		data.AuditLogEntries = append(data.AuditLogEntries, auditLogModelToModel(m))
	}
	return data, nil
}

func checkBackupVersion(data *model.BackupData) error {
	if data == nil {
		return errors.New("nil backup data")
	}
	if data.SchemaVersion != BackupSchemaVersion {
		return fmt.Errorf("unsupported backup schema version %d (want %d)", data.SchemaVersion, BackupSchemaVersion)
	}
	return nil
}

// Import wipes all tables and loads data, keeping the original IDs.
func (s *BunStore) Import(ctx context.Context, data *model.BackupData) error {
	if err := checkBackupVersion(data); err != nil {
		return err
	}
	return WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range []string{"audit_log", "login_attempts", "invites", "users"} {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		if len(data.Users) > 0 {
			ms := make([]UserModel, 0, len(data.Users))
			for _, u := range data.Users {
				ms = append(ms, userToModel(u))
			}
			if _, err := tx.NewInsert().Model(&ms).Exec(ctx); err != nil {
				return fmt.Errorf("import users: %w", err)
			}
		}
		if len(data.Invites) > 0 {
			ms := make([]InviteModel, 0, len(data.Invites))
			for _, i := range data.Invites {
				ms = append(ms, inviteToModel(i))
			}
			if _, err := tx.NewInsert().Model(&ms).Exec(ctx); err != nil {
				return fmt.Errorf("import invites: %w", err)
			}
		}
		if len(data.LoginAttempts) > 0 {
			ms := make([]LoginAttemptModel, 0, len(data.LoginAttempts))
			for _, a := range data.LoginAttempts {
				ms = append(ms, loginAttemptToModel(a))
			}
			if _, err := tx.NewInsert().Model(&ms).Exec(ctx); err != nil {
				return fmt.Errorf("import login attempts: %w", err)
			}
		}
		if len(data.AuditLogEntries) > 0 {
			ms := make([]AuditLogModel, 0, len(data.AuditLogEntries))
			for _, e := range data.AuditLogEntries {
				ms = append(ms, auditLogToModel(e))
			}
			if _, err := tx.NewInsert().Model(&ms).Exec(ctx); err != nil {
				return fmt.Errorf("import audit log: %w", err)
			}
		}
		return s.resetSequences(ctx, tx)
	})
}

// Integrate merges data into the existing tables without deleting anything.
// Users are matched by username, invites by code hash and login attempts by
// IP; existing rows win. Imported rows get fresh IDs.
func (s *BunStore) Integrate(ctx context.Context, data *model.BackupData) error {
	if err := checkBackupVersion(data); err != nil {
		return err
	}
	return WithTx(ctx, s.bun, func(ctx context.Context, tx bun.Tx) error {
		userIDs := make(map[int]int, len(data.Users))
		for _, u := range data.Users {
			var existing UserModel
			err := tx.NewSelect().Model(&existing).Where("username = ?", u.Username).Limit(1).Scan(ctx)
			if err == nil {
				userIDs[u.ID] = existing.ID
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("integrate user %s: %w", u.Username, err)
			}
			m := userToModel(u)
			m.ID = 0
			res, err := tx.NewInsert().Model(&m).Exec(ctx)
			if err != nil {
				return fmt.Errorf("integrate user %s: %w", u.Username, err)
			}
			if err := lastInsertID(res, &m.ID); err != nil {
				return err
			}
			userIDs[u.ID] = m.ID
		}

		for _, inv := range data.Invites {
			ok, err := tx.NewSelect().Model((*InviteModel)(nil)).Where("code_hash = ?", inv.CodeHash).Exists(ctx)
			if err != nil {
				return fmt.Errorf("integrate invite: %w", err)
			}
			if ok {
				continue
			}
			m := inviteToModel(inv)
			m.ID = 0
			if m.UsedByUserID != nil {
				if id, found := userIDs[*m.UsedByUserID]; found {
					m.UsedByUserID = &id
				} else {
					m.UsedByUserID = nil
				}
			}
			if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
				return fmt.Errorf("integrate invite: %w", err)
			}
		}

		for _, a := range data.LoginAttempts {
			ok, err := tx.NewSelect().Model((*LoginAttemptModel)(nil)).Where("ip = ?", a.IP).Exists(ctx)
			if err != nil {
				return fmt.Errorf("integrate login attempt: %w", err)
			}
			if ok {
				continue
			}
			m := loginAttemptToModel(a)
			if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
				return fmt.Errorf("integrate login attempt: %w", err)
			}
		}

		for _, e := range data.AuditLogEntries {
			ok, err := tx.NewSelect().Model((*AuditLogModel)(nil)).
				Where("timestamp = ?", e.Timestamp.UTC()).
				Where("username = ?", e.Username).
				Where("action = ?", e.Action).
				Exists(ctx)
			if err != nil {
				return fmt.Errorf("integrate audit log: %w", err)
			}
			if ok {
				continue
			}
			m := auditLogToModel(e)
			m.ID = 0
			if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
				return fmt.Errorf("integrate audit log: %w", err)
			}
		}
		return nil
	})
}

// resetSequences moves Postgres serial sequences past explicitly inserted IDs.
func (s *BunStore) resetSequences(ctx context.Context, tx bun.Tx) error {
	if s.dbType != "postgres" {
		return nil
	}
	for _, table := range []string{"users", "invites", "audit_log"} {
		q := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s", table, table)
		if _, err := ExecRaw(ctx, tx, q); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
