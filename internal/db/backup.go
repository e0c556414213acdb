// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/wordle-assistant/internal/model"
)

// WriteBackup streams data as indented JSON through a zstd encoder.
func WriteBackup(w io.Writer, data *model.BackupData) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	encoder := json.NewEncoder(zw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	// Close flushes the final frame.
	if err := zw.Close(); err != nil {
		return fmt.Errorf("could not finish zstd stream: %w", err)
	}
	return nil
}

// ReadBackup decodes a backup written by WriteBackup.
func ReadBackup(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return &data, nil
}

// Migrate copies everything from src into a freshly migrated target
// database, replacing whatever the target held.
func Migrate(ctx context.Context, src Store, targetType, targetDSN string) error {
	data, err := src.Export(ctx)
	if err != nil {
		return fmt.Errorf("export from source failed: %w", err)
	}
	target, err := New(targetType, targetDSN)
	if err != nil {
		return fmt.Errorf("failed to open target database: %w", err)
	}
	defer func() { _ = target.Close() }()
	if err := target.Import(ctx, data); err != nil {
		return fmt.Errorf("import into target failed: %w", err)
	}
	return nil
}
