// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/words"
)

func newWordsSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words-sync",
		Short: "Download the list of allowed guesses",
		Long:  `Downloads the allowed word list from words.allowed_url and writes the valid five-letter words to words.allowed_path.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return syncAllowed(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func newUsedSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "used-sync",
		Short: "Download the list of past answers",
		Long:  `Scrapes the past answers page at words.used_url and writes the answers to words.used_path.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return syncUsed(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run words-sync and used-sync concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &lockedWriter{w: cmd.OutOrStdout()}
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return syncAllowed(ctx, out) })
			g.Go(func() error { return syncUsed(ctx, out) })
			return g.Wait()
		},
	}
}

func syncAllowed(ctx context.Context, out io.Writer) error {
	url, path := appConfig.Words.AllowedURL, appConfig.Words.AllowedPath
	logging.Infof("downloading allowed words from %s", url)
	n, err := words.SyncAllowed(ctx, httpClient, url, path)
	if err != nil {
		return fmt.Errorf("words-sync: %w", err)
	}
	logging.Event("words_sync", "type", "words", "list", "allowed", "count", n, "path", path)
	fmt.Fprintln(out, i18n.T("cli.words_synced", n, path))
	return nil
}

func syncUsed(ctx context.Context, out io.Writer) error {
	url, path := appConfig.Words.UsedURL, appConfig.Words.UsedPath
	logging.Infof("fetching used answers from %s", url)
	n, err := words.SyncUsed(ctx, httpClient, url, path, time.Now())
	if err != nil {
		return fmt.Errorf("used-sync: %w", err)
	}
	logging.Event("words_sync", "type", "words", "list", "used", "count", n, "path", path)
	fmt.Fprintln(out, i18n.T("cli.used_synced", n, path))
	return nil
}
