// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"
)

func TestRunMigrationsSqlite_Idempotent(t *testing.T) {
	dbConn, err := sql.Open("sqlite", "file:test_migrations?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() { _ = dbConn.Close() }()

	for i := 0; i < 2; i++ {
		if err := RunMigrations(dbConn, "sqlite"); err != nil {
			t.Fatalf("RunMigrations run %d failed: %v", i+1, err)
		}
	}

	var count int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = '0001_init'").Scan(&count); err != nil {
		t.Fatalf("query schema_migrations failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected migration recorded once, got %d", count)
	}

	for _, table := range []string{"users", "invites", "login_attempts", "audit_log"} {
		var name string
		err := dbConn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestRunMigrations_UnknownDialect(t *testing.T) {
	dbConn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = dbConn.Close() }()
	if err := RunMigrations(dbConn, "oracle"); err == nil {
		t.Fatalf("expected error for dialect without migrations")
	}
}

func TestEmbeddedMigrations_AllDialects(t *testing.T) {
	for _, d := range SupportedTypes {
		data, err := embeddedMigrations.ReadFile("migrations/" + d + "/0001_init.up.sql")
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if n := len(splitStatements(string(data))); n < 4 {
			t.Fatalf("%s: expected at least 4 statements, got %d", d, n)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	script := "-- header\nCREATE TABLE a (\n  id INT\n);\n\nCREATE INDEX i ON a (id);\nSELECT 1"
	got := splitStatements(script)
	want := []string{"CREATE TABLE a (\n  id INT\n);", "CREATE INDEX i ON a (id);", "SELECT 1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("splitStatements mismatch (-want +got):\n%s", diff)
	}
}

func TestDriverName(t *testing.T) {
	if driverName("postgres") != "pgx" || driverName("sqlite") != "sqlite" || driverName("mysql") != "mysql" {
		t.Fatalf("unexpected driver mapping")
	}
	if _, err := New("oracle", "x"); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}
