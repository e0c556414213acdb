// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package words loads, caches and synchronises the allowed and used word
// lists the solver runs against.
package words

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toeirei/wordle-assistant/internal/solver"
)

// ErrAllowedWordsMissing is returned when the allowed word file does not exist.
var ErrAllowedWordsMissing = errors.New("allowed word list missing")

// UsedFile is the on-disk shape of the used word list.
type UsedFile struct {
	LastSyncedUTC string   `json:"last_synced_utc"`
	Source        string   `json:"source"`
	Used          []string `json:"used"`
}

// LoadAllowed reads one word per line from path. Lines are trimmed and
// lowercased; anything that is not five letters a-z is skipped. File order
// is preserved.
func LoadAllowed(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run: wordle-assistant words-sync)", ErrAllowedWordsMissing, path)
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseAllowed(f)
}

// ParseAllowed is LoadAllowed on an already open reader.
func ParseAllowed(r io.Reader) ([]string, error) {
	out := make([]string, 0, 16384)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := solver.NormalizeWord(sc.Text())
		if solver.ValidWord(w) {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read allowed words: %w", err)
	}
	return out, nil
}

// LoadUsed reads the used word JSON file. A missing file yields an empty set
// and no error. Entries that are not valid words are skipped.
func LoadUsed(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]struct{}{}, nil
		}
		return nil, err
	}
	var uf UsedFile
	if err := json.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make(map[string]struct{}, len(uf.Used))
	for _, w := range uf.Used {
		w = solver.NormalizeWord(w)
		if solver.ValidWord(w) {
			out[w] = struct{}{}
		}
	}
	return out, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
