// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package auth implements password hashing, signed session tokens, invite
// codes and the per-IP brute force guard used by the web front end.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/toeirei/wordle-assistant/internal/security"
)

var (
	// ErrMismatchedPassword is returned when a password does not match its hash.
	ErrMismatchedPassword = errors.New("password does not match")
	// ErrInvalidHash is returned for hashes that are not argon2id PHC strings.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrPasswordTooShort is returned when a new password is below MinPasswordLength.
	ErrPasswordTooShort = errors.New("password too short")
)

// MinPasswordLength is the default minimum length for new passwords.
const MinPasswordLength = 15

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultArgon2Params are the cost parameters used for new hashes.
var DefaultArgon2Params = Argon2Params{
	Memory:  64 * 1024,
	Time:    3,
	Threads: 4,
	SaltLen: 16,
	KeyLen:  32,
}

var b64 = base64.RawStdEncoding

// HashPassword hashes pw with argon2id and returns a PHC formatted string:
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>.
func HashPassword(pw security.Secret) (string, error) {
	return hashWith(pw, DefaultArgon2Params)
}

func hashWith(pw security.Secret, p Argon2Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey(pw, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// VerifyPassword checks pw against an encoded hash produced by HashPassword
// (or any argon2id PHC string). It returns nil on a match.
func VerifyPassword(encoded string, pw security.Secret) error {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return err
	}
	got := argon2.IDKey(pw, salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatchedPassword
	}
	return nil
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrInvalidHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrInvalidHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}

// CheckPasswordLength returns ErrPasswordTooShort when pw has fewer than min
// characters. A min of zero or less means MinPasswordLength.
func CheckPasswordLength(pw security.Secret, min int) error {
	if min <= 0 {
		min = MinPasswordLength
	}
	if len([]rune(string(pw))) < min {
		return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, min)
	}
	return nil
}
