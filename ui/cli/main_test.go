// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/toeirei/wordle-assistant/internal/db"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/solver"
	"github.com/toeirei/wordle-assistant/internal/usecase"
)

var dbSeq atomic.Int64

// setupCLI isolates a test from the user's config files and working
// directory and points the database at a fresh shared in-memory SQLite
// database. The returned store keeps that database alive for the test.
func setupCLI(t *testing.T) (dir string, store *db.BunStore) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	dsn := fmt.Sprintf("file:cli_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	t.Setenv("WORDLE_ASSISTANT_DATABASE_TYPE", "sqlite")
	t.Setenv("WORDLE_ASSISTANT_DATABASE_DSN", dsn)
	t.Setenv("WORDLE_ASSISTANT_LANGUAGE", "en")

	store, err := db.New("sqlite", dsn)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = logging.Configure(logging.Options{Output: os.Stderr})
	})
	return dir, store
}

// executeCommand runs a fresh root command and returns what it printed to
// stdout and stderr.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	if stdin != nil {
		root.SetIn(stdin)
	}
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func mustExecute(t *testing.T, stdin io.Reader, args ...string) string {
	t.Helper()
	out, errOut, err := executeCommand(t, stdin, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\nstderr: %s", args, err, errOut)
	}
	return out
}

func writeWordFiles(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "words"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "words", "allowed.txt"), []byte("built\ncrane\nquilt\nbluff\ntulip\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "words", "used.json"), []byte(`{"used":["tulip"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseGuessSpec(t *testing.T) {
	g, err := parseGuessSpec(" CRANE =gy-?b")
	if err != nil {
		t.Fatalf("parseGuessSpec: %v", err)
	}
	want := solver.RawGuess{Word: "crane", States: []string{"green", "yellow", "gray", "unknown", "gray"}}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("guess mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"crane", "cran=gggg", "crane=gggg", "cr4ne=ggggg", "crane=ggggz"} {
		if _, err := parseGuessSpec(bad); err == nil {
			t.Errorf("parseGuessSpec(%q) succeeded, want error", bad)
		}
	}
}

func TestSolveCmd_JSON(t *testing.T) {
	dir, _ := setupCLI(t)
	writeWordFiles(t, dir)

	out := mustExecute(t, nil, "solve", "-g", "crane=xxxxx", "-g", "shame=xxxxx", "-g", "wordy=xxxxx", "--json")
	var resp usecase.Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp.Remaining == nil || *resp.Remaining != 4 {
		t.Fatalf("remaining = %v, want 4", resp.Remaining)
	}
	if diff := cmp.Diff([]string{"built", "quilt", "bluff"}, resp.FreshCandidates); diff != "" {
		t.Fatalf("fresh (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"tulip"}, resp.UsedCandidates); diff != "" {
		t.Fatalf("used (-want +got):\n%s", diff)
	}
	if resp.Constraints != nil {
		t.Fatalf("constraints present without --debug")
	}
}

func TestSolveCmd_TextAndNeedMore(t *testing.T) {
	dir, _ := setupCLI(t)
	writeWordFiles(t, dir)

	out := mustExecute(t, nil, "solve", "-g", "crane=xxxxx")
	if !strings.Contains(out, "Enter at least 3 complete guesses (2 more needed).") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out = mustExecute(t, nil, "solve", "-g", "crane=xxxxx", "-g", "shame=xxxxx", "-g", "wordy=xxxxx", "--debug")
	for _, want := range []string{"4 candidates remain", "built quilt bluff", "Already used as answers (1)", "Derived constraints"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSolveCmd_MissingWordList(t *testing.T) {
	setupCLI(t)
	_, _, err := executeCommand(t, nil, "solve", "-g", "crane=xxxxx", "-g", "shame=xxxxx", "-g", "wordy=xxxxx")
	if err == nil || !strings.Contains(err.Error(), "words-sync") {
		t.Fatalf("expected a hint to run words-sync, got %v", err)
	}
}

func TestRootCmd_StartsTUI(t *testing.T) {
	setupCLI(t)
	t.Setenv("WORDLE_ASSISTANT_SOLVER_MAX_GUESSES", "6")

	orig := runTUI
	t.Cleanup(func() { runTUI = orig })
	var got *usecase.Service
	runTUI = func(svc *usecase.Service) error {
		got = svc
		return nil
	}

	mustExecute(t, nil)
	if got == nil {
		t.Fatalf("TUI was not started")
	}
	if got.MaxGuesses != 6 || got.MinLocked != 3 {
		t.Fatalf("service thresholds = %d/%d, want 6/3", got.MaxGuesses, got.MinLocked)
	}
}

func TestVersionCmd(t *testing.T) {
	setupCLI(t)
	out := mustExecute(t, nil, "version")
	if !strings.HasPrefix(out, "version: ") || !strings.Contains(out, "\ncommit: ") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}

func TestGetConfigPathFromCli_FlagNotSet(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil path when flag not set, got %v", *p)
	}
}

func TestGetConfigPathFromCli_WithValidFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(name, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	if err := cmd.Flags().Set("config", name); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || *p != name {
		t.Fatalf("expected path %s, got %v", name, p)
	}
}

func TestGetConfigPathFromCli_MissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := getConfigPathFromCli(cmd); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestConfigFlag_OverridesDefaults(t *testing.T) {
	dir, _ := setupCLI(t)
	writeWordFiles(t, dir)
	cfg := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(cfg, []byte("solver:\n  min_locked: 1\n  max_guesses: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out := mustExecute(t, nil, "--config", cfg, "solve", "-g", "crane=xxxxx")
	if !strings.Contains(out, "candidates remain") {
		t.Fatalf("min_locked from the config file was not applied:\n%s", out)
	}
}
