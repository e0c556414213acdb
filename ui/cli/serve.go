// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/toeirei/wordle-assistant/internal/auth"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/security"
	"github.com/toeirei/wordle-assistant/internal/server"
	"github.com/toeirei/wordle-assistant/internal/usecase"
	"github.com/toeirei/wordle-assistant/internal/words"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Long: `Serves the solve page and its JSON API. With server.auth_enabled (the
default) only users created through invites can sign in, and
server.secret_key must be set.

The word files are re-read when they change on disk, so words-sync and
used-sync can run while the server is up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
	cmd.Flags().String("server.addr", "127.0.0.1:8000", "Listen address")
	cmd.Flags().Bool("server.auth_enabled", true, "Require sign-in")
	return cmd
}

// runServe blocks until ctx is cancelled or the server fails.
func runServe(ctx context.Context) error {
	if err := appConfig.Validate(); err != nil {
		return err
	}

	src := words.NewFileSource(appConfig.Words.AllowedPath, appConfig.Words.UsedPath)
	svc := usecase.NewService(src)
	svc.MaxGuesses = appConfig.Solver.MaxGuesses
	svc.MinLocked = appConfig.Solver.MinLocked

	var (
		accounts server.Accounts
		guard    *auth.Guard
	)
	if appConfig.Server.AuthEnabled {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		accounts = st
		guard = auth.NewGuard(st)
		if appConfig.Security.FailsToBan > 0 {
			guard.FailsToBan = appConfig.Security.FailsToBan
		}
		if appConfig.Security.BanDuration > 0 {
			guard.BanDuration = appConfig.Security.BanDuration
		}
	}

	srv, err := server.New(server.Config{
		Addr:              appConfig.Server.Addr,
		AuthEnabled:       appConfig.Server.AuthEnabled,
		CookieSecure:      appConfig.Server.CookieSecure,
		TrustedProxies:    appConfig.Server.TrustedProxies,
		SessionTTL:        appConfig.Server.SessionTTL,
		ReadHeaderTimeout: appConfig.Server.ReadHeaderTimeout,
		PasswordMinLen:    appConfig.Security.PasswordMinLen,
	}, svc, accounts, auth.Sessions{Key: security.FromString(appConfig.Server.SecretKey)}, guard)
	if err != nil {
		return err
	}

	if !appConfig.Server.AuthEnabled {
		logging.Warnf("authentication is disabled; anyone who can reach %s can use the solver", appConfig.Server.Addr)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	if appConfig.Words.Watch {
		g.Go(func() error {
			if err := src.Watch(ctx); err != nil {
				// The server still works without live reloads.
				logging.Warnf("word list watcher stopped: %v", err)
			}
			return nil
		})
	}
	return g.Wait()
}
