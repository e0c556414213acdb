// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation files against the code. It fails when
// a key passed to i18n.T, i18n.TLang or the {{T "..."}} template function is
// missing from the primary locale, or when another locale lacks a key of the
// primary one. Keys that nothing references are reported as warnings.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found key.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	// Keys passed directly to a translation call.
	callRe = regexp.MustCompile(`(?:i18n\.T|i18n\.TLang\([^,]+,|\{\{-?\s*T)\s*\(?\s*"([a-z_]+(?:\.[a-z0-9_]+)+)"`)
	// Any string literal shaped like a key, e.g. a message ID kept in a variable.
	literalRe = regexp.MustCompile(`"([a-z_]+(?:\.[a-z0-9_]+)+)"`)
)

func main() {
	os.Exit(run(os.Stdout, projectRoot))
}

// run lints the tree at root and returns the process exit code.
func run(out io.Writer, root string) int {
	fmt.Fprintln(out, "🔍 Running i18n linter...")

	called, mentioned, err := scanSources(root)
	if err != nil {
		fmt.Fprintf(out, "❌ Error scanning sources: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "✅ Found %d translation calls.\n", len(called))

	dir := filepath.Join(root, localesDir)
	primary, err := loadKeysFromLocale(filepath.Join(dir, primaryLocale))
	if err != nil {
		fmt.Fprintf(out, "❌ Error loading primary locale '%s': %v\n", primaryLocale, err)
		return 1
	}
	fmt.Fprintf(out, "✅ Loaded %d keys from %s.\n\n", len(primary), primaryLocale)

	failed := false

	fmt.Fprintln(out, "--- Keys used in code but missing from the primary locale ---")
	undefined := sortedKeys(called, func(k string) bool { _, ok := primary[k]; return !ok })
	for _, k := range undefined {
		loc := called[k][0]
		fmt.Fprintf(out, "  - Undefined: %s (%s:%d)\n", k, loc.Filepath, loc.Line)
	}
	if len(undefined) == 0 {
		fmt.Fprintln(out, "  ✨ None found.")
	}
	failed = failed || len(undefined) > 0
	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Keys missing from other locales ---")
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		fmt.Fprintf(out, "❌ Error finding locale files: %v\n", err)
		return 1
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		fmt.Fprintf(out, "Checking %s:\n", filepath.Base(file))
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Fprintf(out, "  - ❌ Error loading: %v\n", err)
			failed = true
			continue
		}
		missing := sortedKeys(primary, func(k string) bool { _, ok := keys[k]; return !ok })
		for _, k := range missing {
			fmt.Fprintf(out, "  - Missing: %s\n", k)
		}
		extra := sortedKeys(keys, func(k string) bool { _, ok := primary[k]; return !ok })
		for _, k := range extra {
			fmt.Fprintf(out, "  - Not in primary: %s\n", k)
		}
		if len(missing) == 0 && len(extra) == 0 {
			fmt.Fprintln(out, "  ✨ All keys present.")
		}
		failed = failed || len(missing) > 0 || len(extra) > 0
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Orphaned keys (never referenced) ---")
	orphaned := sortedKeys(primary, func(k string) bool {
		_, c := called[k]
		_, m := mentioned[k]
		return !c && !m
	})
	for _, k := range orphaned {
		fmt.Fprintf(out, "  - Orphaned: %s\n", k)
	}
	if len(orphaned) == 0 {
		fmt.Fprintln(out, "  ✨ None found.")
	}

	fmt.Fprintln(out, "\n--- Linter Finished ---")
	switch {
	case failed:
		fmt.Fprintln(out, "❌ Found issues that need to be addressed.")
		return 1
	case len(orphaned) > 0:
		fmt.Fprintln(out, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(out, "✅ All translation files are consistent!")
	}
	return 0
}

func sortedKeys[V any](m map[string]V, keep func(string) bool) []string {
	var out []string
	for k := range m {
		if keep(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// scanSources walks the non-test Go files and templates under root. called
// holds keys passed to a translation call, mentioned every key-shaped string
// literal.
func scanSources(root string) (called map[string][]Location, mentioned map[string]struct{}, err error) {
	called = map[string][]Location{}
	mentioned = map[string]struct{}{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || name == "_examples" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		isGo := strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")
		isTmpl := strings.HasSuffix(path, ".tmpl")
		if !isGo && !isTmpl {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range callRe.FindAllStringSubmatch(line, -1) {
				called[m[1]] = append(called[m[1]], Location{Filepath: path, Line: i + 1})
			}
			for _, m := range literalRe.FindAllStringSubmatch(line, -1) {
				mentioned[m[1]] = struct{}{}
			}
		}
		return nil
	})
	return called, mentioned, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into dot-separated keys. Flat files with
// dotted keys come out unchanged.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
