// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/toeirei/wordle-assistant/internal/auth"
	"github.com/toeirei/wordle-assistant/internal/db"
	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/security"
)

type registerPageData struct {
	pageData
	Code     string
	Username string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.AuthEnabled {
		http.Redirect(w, r, "/solve", http.StatusSeeOther)
		return
	}
	data := s.page(r, i18n.T("web.login.heading"))
	if r.URL.Query().Get("registered") != "" {
		data.Notice = i18n.T("web.register.success")
	}
	s.render(w, http.StatusOK, "login.tmpl", data)
}

func (s *Server) loginFailed(w http.ResponseWriter, r *http.Request) {
	data := s.page(r, i18n.T("web.login.heading"))
	data.Error = i18n.T("web.login.failed")
	s.render(w, http.StatusOK, "login.tmpl", data)
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.AuthEnabled {
		http.Redirect(w, r, "/solve", http.StatusSeeOther)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	username := auth.NormalizeUsername(r.PostFormValue("username"))
	password := security.FromString(r.PostFormValue("password"))
	defer password.Zero()
	ip := s.clientIP(r)

	banned, until, err := s.guard.IsBanned(ctx, ip)
	if err != nil {
		logging.Errorf("ban lookup for %s: %v", ip, err)
		s.loginFailed(w, r)
		return
	}
	if banned {
		logging.Security("login", ip, "blocked", "user", username, "reason", "ip_banned", "banned_until", until.Format(time.RFC3339))
		s.loginFailed(w, r)
		return
	}

	ok := false
	if u, err := s.accounts.GetUserByUsername(ctx, username); err == nil && u.IsActive {
		ok = auth.VerifyPassword(u.PasswordHash, password) == nil
	} else if err != nil && !errors.Is(err, db.ErrNotFound) {
		logging.Errorf("user lookup for %s: %v", username, err)
	}

	if !ok {
		nowBanned, newUntil, attempts, err := s.guard.RecordFailure(ctx, ip)
		if err != nil {
			logging.Errorf("record login failure for %s: %v", ip, err)
		}
		kv := []any{"user", username, "reason", "invalid_credentials", "attempts", attempts}
		if nowBanned {
			kv = append(kv, "banned_until", newUntil.Format(time.RFC3339))
		}
		logging.Security("login", ip, "fail", kv...)
		s.loginFailed(w, r)
		return
	}

	if err := s.guard.Clear(ctx, ip); err != nil {
		logging.Errorf("clear login failures for %s: %v", ip, err)
	}
	logging.Security("login", ip, "success", "user", username)

	if err := s.setSessionCookie(w, username); err != nil {
		logging.Errorf("sign session: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/solve", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	target := "/login"
	if !s.cfg.AuthEnabled {
		target = "/solve"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.AuthEnabled {
		http.Redirect(w, r, "/solve", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "register.tmpl", registerPageData{
		pageData: s.page(r, i18n.T("web.register.heading")),
		Code:     r.URL.Query().Get("code"),
	})
}

func (s *Server) registerFailed(w http.ResponseWriter, r *http.Request, username, msg string) {
	data := registerPageData{pageData: s.page(r, i18n.T("web.register.heading")), Username: username}
	data.Error = msg
	s.render(w, http.StatusOK, "register.tmpl", data)
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.AuthEnabled {
		http.Redirect(w, r, "/solve", http.StatusSeeOther)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	username := auth.NormalizeUsername(r.PostFormValue("username"))
	password := security.FromString(r.PostFormValue("password"))
	defer password.Zero()
	code := r.PostFormValue("code")
	ip := s.clientIP(r)
	generic := i18n.T("web.register.failed")

	fail := func(reason, msg string, kv ...any) {
		_, _, attempts, err := s.guard.RecordFailure(ctx, ip)
		if err != nil {
			logging.Errorf("record register failure for %s: %v", ip, err)
		}
		logging.Security("register", ip, "fail", append([]any{"user", username, "reason", reason, "attempts", attempts}, kv...)...)
		s.registerFailed(w, r, username, msg)
	}

	banned, _, err := s.guard.IsBanned(ctx, ip)
	if err != nil {
		logging.Errorf("ban lookup for %s: %v", ip, err)
		s.registerFailed(w, r, username, generic)
		return
	}
	if banned {
		logging.Security("register", ip, "blocked", "user", username, "reason", "ip_banned")
		s.registerFailed(w, r, username, generic)
		return
	}

	if err := auth.CheckPasswordLength(password, s.cfg.PasswordMinLen); err != nil {
		fail("password_short", i18n.T("web.register.too_short", s.cfg.PasswordMinLen))
		return
	}

	inv, err := s.accounts.GetInviteByHash(ctx, auth.HashCode(code))
	if err != nil || !inv.Redeemable(s.now()) || auth.NormalizeUsername(inv.IntendedUsername) != username {
		fail("invalid_invite", generic)
		return
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		logging.Errorf("hash password: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	userID, err := s.accounts.RedeemInvite(ctx, inv.ID, username, hash)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicate):
			fail("username_taken", generic)
		case errors.Is(err, db.ErrNotFound):
			fail("invalid_invite", generic)
		default:
			logging.Errorf("redeem invite %d: %v", inv.ID, err)
			s.registerFailed(w, r, username, generic)
		}
		return
	}

	if err := s.guard.Clear(ctx, ip); err != nil {
		logging.Errorf("clear failures for %s: %v", ip, err)
	}
	logging.Security("register", ip, "success", "user", username, "user_id", userID, "invite_id", inv.ID)

	if err := s.setSessionCookie(w, username); err != nil {
		logging.Errorf("sign session: %v", err)
		http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/solve", http.StatusSeeOther)
}
