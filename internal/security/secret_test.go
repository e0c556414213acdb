// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestSecretRedactionAndJSON(t *testing.T) {
	s := FromString("supersecret")
	for _, verb := range []string{"%v", "%s", "%#v", "%q", "%x"} {
		if got := fmt.Sprintf(verb, s); got != "[SECRET]" {
			t.Fatalf("verb %s leaked: %q", verb, got)
		}
	}
	b, err := json.Marshal(struct {
		Key Secret `json:"key"`
	}{s})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(b) != `{"key":"[SECRET]"}` {
		t.Fatalf("unexpected json marshal: %s", string(b))
	}
}

func TestSecretZero(t *testing.T) {
	s := FromString("abc123")
	(&s).Zero()
	for i, c := range s {
		if c != 0 {
			t.Fatalf("expected zeroed byte at index %d, got %d", i, c)
		}
	}
}

func TestSecretEqualAndCopies(t *testing.T) {
	raw := []byte("hunter2hunter2hunter2")
	s := FromBytes(raw)
	raw[0] = 'X'
	if !s.Equal(FromString("hunter2hunter2hunter2")) {
		t.Fatalf("FromBytes must copy its input")
	}
	if s.Equal(FromString("hunter2")) {
		t.Fatalf("different secrets compared equal")
	}
	b := s.Bytes()
	b[1] = 'Y'
	if s[1] != 'u' {
		t.Fatalf("Bytes must return a copy")
	}
	if !Secret(nil).Empty() || s.Len() != 21 {
		t.Fatalf("Empty/Len wrong")
	}
}
