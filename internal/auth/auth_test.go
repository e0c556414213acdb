// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/toeirei/wordle-assistant/internal/model"
	"github.com/toeirei/wordle-assistant/internal/security"
)

var cheap = Argon2Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

func TestPasswordHashAndVerify(t *testing.T) {
	pw := security.FromString("correct horse battery staple")
	h, err := hashWith(pw, cheap)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(h, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", h)
	}
	if err := VerifyPassword(h, pw); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := VerifyPassword(h, security.FromString("wrong")); !errors.Is(err, ErrMismatchedPassword) {
		t.Fatalf("expected ErrMismatchedPassword, got %v", err)
	}

	h2, _ := hashWith(pw, cheap)
	if h == h2 {
		t.Fatalf("hashes must be salted")
	}
}

func TestHashPassword_DefaultParams(t *testing.T) {
	h, err := HashPassword(security.FromString("a long enough password"))
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(h, "$argon2id$v=19$m=65536,t=3,p=4$") {
		t.Fatalf("unexpected hash %q", h)
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	for _, h := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
	} {
		if err := VerifyPassword(h, security.FromString("x")); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("hash %q: expected ErrInvalidHash, got %v", h, err)
		}
	}
}

func TestCheckPasswordLength(t *testing.T) {
	if err := CheckPasswordLength(security.FromString("short"), 0); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := CheckPasswordLength(security.FromString("exactly15chars!"), 0); err != nil {
		t.Fatalf("15 characters should pass: %v", err)
	}
	if err := CheckPasswordLength(security.FromString("abcd"), 4); err != nil {
		t.Fatalf("custom minimum: %v", err)
	}
}

func TestSessions_SignVerify(t *testing.T) {
	s := Sessions{Key: security.FromString("test-key")}
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	tok, err := s.Sign("alice", now)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	u, err := s.Verify(tok, now.Add(35*time.Hour))
	if err != nil || u != "alice" {
		t.Fatalf("Verify = %q, %v", u, err)
	}
	if _, err := s.Verify(tok, now.Add(37*time.Hour)); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	other := Sessions{Key: security.FromString("other-key")}
	if _, err := other.Verify(tok, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign key, got %v", err)
	}

	tampered := "x" + tok
	if _, err := s.Verify(tampered, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
	for _, bad := range []string{"", ".", "abc", "abc."} {
		if _, err := s.Verify(bad, now); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", bad, err)
		}
	}
}

func TestSessions_RequireKey(t *testing.T) {
	var s Sessions
	if _, err := s.Sign("alice", time.Now()); err == nil {
		t.Fatalf("Sign without key must fail")
	}
}

func TestNewInviteCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-HJ-NP-Z2-9]{4}(-[A-HJ-NP-Z2-9]{4}){3}-[A-HJ-NP-Z2-9]{2}$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		c, err := NewInviteCode()
		if err != nil {
			t.Fatalf("NewInviteCode: %v", err)
		}
		if !re.MatchString(c) {
			t.Fatalf("unexpected code format %q", c)
		}
		if seen[c] {
			t.Fatalf("duplicate code %q", c)
		}
		seen[c] = true
	}
}

func TestHashCodeAndNormalize(t *testing.T) {
	if HashCode(" ABCD-EFGH ") != HashCode("ABCD-EFGH") {
		t.Fatalf("HashCode should ignore surrounding whitespace")
	}
	if len(HashCode("x")) != 64 {
		t.Fatalf("expected hex sha256")
	}
	if NormalizeUsername("  Alice ") != "alice" {
		t.Fatalf("NormalizeUsername failed")
	}
}

type memAttempts struct {
	m map[string]model.LoginAttempt
}

func (s *memAttempts) GetLoginAttempt(_ context.Context, ip string) (*model.LoginAttempt, error) {
	a, ok := s.m[ip]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memAttempts) SaveLoginAttempt(_ context.Context, a *model.LoginAttempt) error {
	s.m[a.IP] = *a
	return nil
}

func (s *memAttempts) DeleteLoginAttempt(_ context.Context, ip string) error {
	delete(s.m, ip)
	return nil
}

func TestGuard_BanAfterThreeFailures(t *testing.T) {
	store := &memAttempts{m: map[string]model.LoginAttempt{}}
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	g := NewGuard(store)
	g.Now = func() time.Time { return now }
	ctx := context.Background()
	ip := "198.51.100.7"

	for i := 1; i <= 2; i++ {
		banned, _, attempts, err := g.RecordFailure(ctx, ip)
		if err != nil || banned || attempts != i {
			t.Fatalf("failure %d: banned=%v attempts=%d err=%v", i, banned, attempts, err)
		}
	}
	banned, until, attempts, err := g.RecordFailure(ctx, ip)
	if err != nil || !banned || attempts != 3 {
		t.Fatalf("third failure: banned=%v attempts=%d err=%v", banned, attempts, err)
	}
	if !until.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("unexpected ban end %v", until)
	}

	isBanned, _, err := g.IsBanned(ctx, ip)
	if err != nil || !isBanned {
		t.Fatalf("IsBanned = %v, %v", isBanned, err)
	}

	now = now.Add(25 * time.Hour)
	isBanned, _, _ = g.IsBanned(ctx, ip)
	if isBanned {
		t.Fatalf("ban should have expired")
	}
	// No decay: the next failure bans again immediately.
	banned, _, attempts, _ = g.RecordFailure(ctx, ip)
	if !banned || attempts != 4 {
		t.Fatalf("expected immediate re-ban, got banned=%v attempts=%d", banned, attempts)
	}

	if err := g.Clear(ctx, ip); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if isBanned, _, _ := g.IsBanned(ctx, ip); isBanned {
		t.Fatalf("Clear should lift the ban")
	}
}
