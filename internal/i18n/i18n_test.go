// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}
	if diff := cmp.Diff([]string{"de", "en"}, Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	if name := GetAvailableLocales()["de"]; name != "Deutsch" {
		t.Fatalf("unexpected display name %q", name)
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	if got := T("web.login.failed"); got != "Login failed" {
		t.Fatalf("expected 'Login failed', got %q", got)
	}
	if got := T("solve.need_more", 3, 1); got != "Enter at least 3 complete guesses (1 more needed)." {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer SetLang("en")
	if got := T("web.login.failed"); got != "Anmeldung fehlgeschlagen" {
		t.Fatalf("expected German translation, got %q", got)
	}
	if got := TLang("en", "web.logout"); got != "Sign out" {
		t.Fatalf("TLang should not depend on the active language, got %q", got)
	}
}

func TestT_UnknownIDAndLanguage(t *testing.T) {
	Init("xx")
	if GetLang() != "en" {
		t.Fatalf("unknown language should fall back to en, got %q", GetLang())
	}
	if got := T("no.such.key"); got != "no.such.key" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}

func TestLocales_SameKeys(t *testing.T) {
	keys := func(name string) []string {
		data, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		var m map[string]string
		if err := yaml.Unmarshal(data, &m); err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		var out []string
		for k := range m {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}
	if diff := cmp.Diff(keys("en.yaml"), keys("de.yaml")); diff != "" {
		t.Fatalf("locale keys differ (-en +de):\n%s", diff)
	}
}
