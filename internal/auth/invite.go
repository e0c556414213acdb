// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// DefaultInviteTTL is how long a fresh invite code stays redeemable.
const DefaultInviteTTL = 48 * time.Hour

// inviteAlphabet leaves out characters that are easy to confuse (0/O, 1/I).
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteBytes = 18

// NewInviteCode returns a random code such as "K7QX-M2PA-...". Codes are
// grouped in fours and separated by dashes.
func NewInviteCode() (string, error) {
	raw := make([]byte, inviteBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	var b strings.Builder
	for i, c := range raw {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		// 256 is a multiple of 32, so the modulo is unbiased.
		b.WriteByte(inviteAlphabet[int(c)%len(inviteAlphabet)])
	}
	return b.String(), nil
}

// HashCode returns the hex SHA-256 of the trimmed code. Only this value is
// persisted.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

// NormalizeUsername trims and lowercases a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
