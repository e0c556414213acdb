// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package server is the web front end: the solve page, its JSON API and the
// invite-only account flow.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/toeirei/wordle-assistant/internal/auth"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/model"
	"github.com/toeirei/wordle-assistant/internal/security"
	"github.com/toeirei/wordle-assistant/internal/usecase"
)

// Accounts is the subset of the store the server needs.
type Accounts interface {
	auth.AttemptStore
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetInviteByHash(ctx context.Context, codeHash string) (*model.Invite, error)
	RedeemInvite(ctx context.Context, inviteID int, username, passwordHash string) (int, error)
}

// Config holds the HTTP facing settings.
type Config struct {
	Addr              string
	AuthEnabled       bool
	CookieSecure      bool
	TrustedProxies    []string
	SessionTTL        time.Duration
	ReadHeaderTimeout time.Duration
	PasswordMinLen    int
}

// Server serves the web UI and API.
type Server struct {
	cfg      Config
	solver   *usecase.Service
	accounts Accounts
	sessions auth.Sessions
	guard    *auth.Guard
	tmpl     *template.Template
	trusted  map[string]struct{}
	now      func() time.Time

	// hashPassword is swapped in tests for a cheaper hash.
	hashPassword func(pw security.Secret) (string, error)
}

// New builds a Server. accounts may be nil only when authentication is
// disabled.
func New(cfg Config, svc *usecase.Service, accounts Accounts, sessions auth.Sessions, guard *auth.Guard) (*Server, error) {
	if svc == nil {
		return nil, errors.New("server: solve service is required")
	}
	if cfg.AuthEnabled {
		if accounts == nil || guard == nil {
			return nil, errors.New("server: accounts and guard are required when auth is enabled")
		}
		if sessions.Key.Empty() {
			return nil, errors.New("server: session key is required when auth is enabled")
		}
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = auth.DefaultSessionTTL
	}
	if cfg.PasswordMinLen <= 0 {
		cfg.PasswordMinLen = auth.MinPasswordLength
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	sessions.TTL = cfg.SessionTTL

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	trusted := make(map[string]struct{}, len(cfg.TrustedProxies))
	for _, p := range cfg.TrustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			trusted[p] = struct{}{}
		}
	}

	return &Server{
		cfg:      cfg,
		solver:   svc,
		accounts: accounts,
		sessions: sessions,
		guard:    guard,
		tmpl:     tmpl,
		trusted:  trusted,
		now:      time.Now,

		hashPassword: auth.HashPassword,
	}, nil
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(staticFS())))
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /solve", s.requireUser(s.handleSolvePage))
	mux.HandleFunc("POST /solve", s.requireUser(s.handleSolveSubmit))
	mux.HandleFunc("POST /api/solve", s.requireUserAPI(s.handleAPISolve))
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLoginSubmit)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.HandleFunc("POST /register", s.handleRegisterSubmit)

	return s.withUser(s.requestLogger(securityHeaders(mux)))
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Infof("server stopped")
	return nil
}
