// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// fixture lays out a minimal repository with two locales.
func fixture(t *testing.T, en, de string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, localesDir, "en.yaml"), en)
	writeFile(t, filepath.Join(root, localesDir, "de.yaml"), de)
	writeFile(t, filepath.Join(root, "ui", "a.go"), `package ui
func f(active bool) {
	_ = i18n.T("cli.hello", "bob")
	msg := "cli.disabled"
	if active {
		msg = "cli.enabled"
	}
	_ = i18n.T(msg)
	_ = i18n.TLang("de", "cli.bye")
	_ = viperKey("log.level")
}`)
	writeFile(t, filepath.Join(root, "ui", "a_test.go"), `package ui
var _ = i18n.T("test.only")`)
	writeFile(t, filepath.Join(root, "web", "page.tmpl"), `<h1>{{T "web.title"}}</h1>`)
	return root
}

const enKeys = `cli.hello: "Hello %s"
cli.disabled: "off"
cli.enabled: "on"
cli.bye: "Bye"
web.title: "Title"
`

func TestFlattenYAMLAndLoadKeys(t *testing.T) {
	keys := make(map[string]struct{})
	flattenYAML("", map[string]interface{}{
		"top":      map[string]interface{}{"sub": "value"},
		"flat.key": "v",
	}, keys)
	for _, k := range []string{"top.sub", "flat.key"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("expected %s in %v", k, keys)
		}
	}

	p := filepath.Join(t.TempDir(), "x.yaml")
	writeFile(t, p, enKeys)
	got, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 keys, got %v", got)
	}
}

func TestScanSources(t *testing.T) {
	root := fixture(t, enKeys, enKeys)
	called, mentioned, err := scanSources(root)
	if err != nil {
		t.Fatalf("scanSources: %v", err)
	}
	for _, k := range []string{"cli.hello", "cli.bye", "web.title"} {
		if _, ok := called[k]; !ok {
			t.Errorf("expected %s as a translation call", k)
		}
	}
	if _, ok := called["log.level"]; ok {
		t.Errorf("log.level is not a translation call")
	}
	if _, ok := called["test.only"]; ok {
		t.Errorf("test files must be skipped")
	}
	if _, ok := mentioned["cli.disabled"]; !ok {
		t.Errorf("expected cli.disabled to be mentioned")
	}
	if loc := called["cli.hello"][0]; loc.Line != 3 {
		t.Errorf("cli.hello line = %d, want 3", loc.Line)
	}
}

func TestRun_Consistent(t *testing.T) {
	root := fixture(t, enKeys, enKeys)
	var out bytes.Buffer
	if code := run(&out, root); code != 0 {
		t.Fatalf("exit %d:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "All translation files are consistent") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRun_ReportsProblems(t *testing.T) {
	en := strings.Replace(enKeys, "cli.bye: \"Bye\"\n", "", 1) + "cli.unused: \"x\"\n"
	de := "cli.hello: \"Hallo %s\"\ncli.extra: \"?\"\n"
	root := fixture(t, en, de)

	var out bytes.Buffer
	if code := run(&out, root); code != 1 {
		t.Fatalf("exit %d, want 1:\n%s", code, out.String())
	}
	for _, want := range []string{
		"Undefined: cli.bye",
		"Missing: cli.enabled",
		"Not in primary: cli.extra",
		"Orphaned: cli.unused",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
