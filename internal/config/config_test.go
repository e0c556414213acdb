// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	cfg "github.com/toeirei/wordle-assistant/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	wd, _ := os.Getwd()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := cfg.Load(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Database.Type != "sqlite" || c.Language != "en" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Server.SessionTTL != 36*time.Hour || c.Security.BanDuration != 24*time.Hour || c.Security.InviteTTL != 48*time.Hour {
		t.Fatalf("durations not decoded: %+v", c)
	}
	if c.Solver.MaxGuesses != 5 || c.Solver.MinLocked != 3 || c.Security.FailsToBan != 3 || c.Security.PasswordMinLen != 15 {
		t.Fatalf("unexpected numeric defaults: %+v", c)
	}
}

func TestLoad_ExplicitFileEnvAndFlags(t *testing.T) {
	tmp := isolate(t)
	yaml := "database:\n  type: postgres\n  dsn: postgres://u@/db\nlanguage: de\nserver:\n  trusted_proxies: [\"10.0.0.1\"]\n  session_ttl: 2h\n"
	file := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("WORDLE_ASSISTANT_SERVER_SECRET_KEY", "from-env")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "", "")
	if err := cmd.Flags().Set("language", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c, err := cfg.Load(cmd, &file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Database.Type != "postgres" || c.Database.Dsn != "postgres://u@/db" {
		t.Fatalf("file values not applied: %+v", c.Database)
	}
	if c.Server.SecretKey != "from-env" {
		t.Fatalf("env not applied: %q", c.Server.SecretKey)
	}
	if c.Language != "en" {
		t.Fatalf("flag should win over file, got %q", c.Language)
	}
	if c.Server.SessionTTL != 2*time.Hour {
		t.Fatalf("session_ttl = %v", c.Server.SessionTTL)
	}
	if diff := cmp.Diff([]string{"10.0.0.1"}, c.Server.TrustedProxies); diff != "" {
		t.Fatalf("trusted_proxies mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "bad.yaml")
	if err := os.WriteFile(file, []byte("database: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cfg.Load(&cobra.Command{}, &file); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	isolate(t)
	c, err := cfg.Load(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Server.SecretKey = "s3cret"
	c.Language = "de"
	if err := cfg.WriteConfigFile(&c, false); err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}
	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", st.Mode().Perm())
	}

	again, err := cfg.Load(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Server.SecretKey != "s3cret" || again.Language != "de" {
		t.Fatalf("written values not picked up: %+v", again)
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	c, _ := cfg.Load(&cobra.Command{}, nil)
	if err := c.Validate(); !errors.Is(err, cfg.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	c.Server.AuthEnabled = false
	if err := c.Validate(); err != nil {
		t.Fatalf("auth disabled should not need a secret: %v", err)
	}
	c.Solver.MinLocked = 9
	if err := c.Validate(); err == nil {
		t.Fatalf("expected min_locked range error")
	}
}
