// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package words

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toeirei/wordle-assistant/internal/logging"
)

// FileSource serves the word lists from disk. Snapshots are loaded on first
// use and kept until Invalidate is called or Watch sees the files change.
// The returned slice and map are shared between callers and must not be
// modified.
type FileSource struct {
	AllowedPath string
	UsedPath    string

	mu      sync.RWMutex
	allowed []string
	used    map[string]struct{}

	debounce time.Duration
}

// NewFileSource returns a FileSource for the given paths.
func NewFileSource(allowedPath, usedPath string) *FileSource {
	return &FileSource{
		AllowedPath: allowedPath,
		UsedPath:    usedPath,
		debounce:    300 * time.Millisecond,
	}
}

// AllowedWords returns the cached allowed list, loading it if needed.
func (s *FileSource) AllowedWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	cached := s.allowed
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	words, err := LoadAllowed(s.AllowedPath)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.allowed = words
	s.mu.Unlock()
	logging.Debugf("loaded %d allowed words from %s", len(words), s.AllowedPath)
	return words, nil
}

// UsedWords returns the cached used set, loading it if needed.
func (s *FileSource) UsedWords(ctx context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	cached := s.used
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	used, err := LoadUsed(s.UsedPath)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.used = used
	s.mu.Unlock()
	logging.Debugf("loaded %d used words from %s", len(used), s.UsedPath)
	return used, nil
}

// Invalidate drops both cached snapshots.
func (s *FileSource) Invalidate() {
	s.mu.Lock()
	s.allowed = nil
	s.used = nil
	s.mu.Unlock()
}

// Watch blocks until ctx is done, invalidating the cache whenever either
// word file is created, written, renamed or removed. Bursts of events are
// collapsed into one invalidation.
func (s *FileSource) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	targets := map[string]struct{}{}
	dirs := map[string]struct{}{}
	for _, p := range []string{s.AllowedPath, s.UsedPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	// Watch directories rather than files: atomic replacement swaps the inode.
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
		logging.Debugf("watching %s for word list changes", d)
	}

	debounce := s.debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; !ok {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warnf("word list watcher: %v", err)
		case <-timer.C:
			s.Invalidate()
			logging.Infof("word lists changed on disk, cache invalidated")
		}
	}
}
