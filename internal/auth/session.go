// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/toeirei/wordle-assistant/internal/security"
)

var (
	// ErrInvalidToken is returned for tokens that are malformed or carry a bad signature.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken is returned for correctly signed tokens older than the TTL.
	ErrExpiredToken = errors.New("session token expired")
)

// DefaultSessionTTL is how long a signed session stays valid.
const DefaultSessionTTL = 36 * time.Hour

// Sessions signs and verifies session tokens with an HMAC-SHA256 key.
// Tokens have the form base64url(payload) "." base64url(mac).
type Sessions struct {
	Key security.Secret
	TTL time.Duration
}

type sessionPayload struct {
	User     string `json:"u"`
	IssuedAt int64  `json:"t"`
}

var tokenEncoding = base64.RawURLEncoding

func (s Sessions) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

func (s Sessions) mac(data []byte) []byte {
	m := hmac.New(sha256.New, s.Key)
	m.Write(data)
	return m.Sum(nil)
}

// Sign returns a token for username issued at now.
func (s Sessions) Sign(username string, now time.Time) (string, error) {
	if s.Key.Empty() {
		return "", errors.New("session key not configured")
	}
	body, err := json.Marshal(sessionPayload{User: username, IssuedAt: now.Unix()})
	if err != nil {
		return "", err
	}
	enc := tokenEncoding.EncodeToString(body)
	return enc + "." + tokenEncoding.EncodeToString(s.mac([]byte(enc))), nil
}

// Verify checks the signature and age of token and returns the username.
func (s Sessions) Verify(token string, now time.Time) (string, error) {
	if s.Key.Empty() {
		return "", ErrInvalidToken
	}
	enc, sig, ok := strings.Cut(token, ".")
	if !ok || enc == "" || sig == "" {
		return "", ErrInvalidToken
	}
	gotMAC, err := tokenEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal(gotMAC, s.mac([]byte(enc))) {
		return "", ErrInvalidToken
	}
	body, err := tokenEncoding.DecodeString(enc)
	if err != nil {
		return "", ErrInvalidToken
	}
	var p sessionPayload
	if err := json.Unmarshal(body, &p); err != nil || p.User == "" {
		return "", ErrInvalidToken
	}
	issued := time.Unix(p.IssuedAt, 0)
	if now.Sub(issued) > s.ttl() {
		return "", ErrExpiredToken
	}
	return p.User, nil
}
