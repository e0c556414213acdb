// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/toeirei/wordle-assistant/internal/auth"
	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/model"
)

func newInviteCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite-create --username NAME",
		Short: "Create a single-use registration link for one username",
		Long: `Creates an invite bound to the given username and prints the registration
link. The link is valid for security.invite_ttl (48 hours by default) and
requires base_url to be configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("username")
			username := auth.NormalizeUsername(name)
			if username == "" {
				return errors.New("--username is required")
			}
			base := strings.TrimRight(strings.TrimSpace(appConfig.BaseURL), "/")
			if base == "" {
				return errors.New(i18n.T("cli.invite_base_url_missing"))
			}
			ttl := appConfig.Security.InviteTTL
			if ttl <= 0 {
				ttl = 48 * time.Hour
			}

			code, err := auth.NewInviteCode()
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			now := time.Now().UTC()
			inv := model.Invite{
				IntendedUsername: username,
				CodeHash:         auth.HashCode(code),
				CreatedAt:        now,
				ExpiresAt:        now.Add(ttl),
			}
			id, err := st.CreateInvite(cmd.Context(), inv)
			if err != nil {
				return fmt.Errorf("create invite: %w", err)
			}
			if err := st.LogAction(cmd.Context(), actor(), "invite_create", fmt.Sprintf("invite_id=%d username=%s", id, username)); err != nil {
				logging.Warnf("audit log: %v", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("cli.invite_created", username, inv.ExpiresAt.Format(time.RFC3339)))
			fmt.Fprintf(out, "%s/register?code=%s\n", base, url.QueryEscape(code))
			return nil
		},
	}
	cmd.Flags().String("username", "", "Username the invite is bound to")
	cmd.Flags().String("base_url", "", "Public base URL of the web front end")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage web users",
	}
	cmd.AddCommand(newUserListCmd(), newUserSetPasswordCmd(), newUserActiveCmd(false), newUserActiveCmd(true))
	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			users, err := st.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				status := "active"
				if !u.IsActive {
					status = "disabled"
				}
				rows = append(rows, []string{strconv.Itoa(u.ID), u.Username, status, u.CreatedAt.UTC().Format(time.RFC3339)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "USERNAME", "STATUS", "CREATED"}, rows))
			return nil
		},
	}
}

func newUserSetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password USERNAME",
		Short: "Set a user's password",
		Long:  `Prompts twice for the new password. When stdin is not a terminal one line per prompt is read.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := auth.NormalizeUsername(args[0])
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if _, err := st.GetUserByUsername(cmd.Context(), username); err != nil {
				return fmt.Errorf("user %s: %w", username, err)
			}

			pr := newPasswordReader(cmd.InOrStdin(), cmd.ErrOrStderr())
			pw, err := pr.read(i18n.T("cli.password_prompt"))
			if err != nil {
				return err
			}
			defer pw.Zero()
			confirm, err := pr.read(i18n.T("cli.password_confirm"))
			if err != nil {
				return err
			}
			defer confirm.Zero()
			if !pw.Equal(confirm) {
				return errors.New(i18n.T("cli.password_mismatch"))
			}
			if err := auth.CheckPasswordLength(pw, appConfig.Security.PasswordMinLen); err != nil {
				return err
			}

			hash, err := auth.HashPassword(pw)
			if err != nil {
				return err
			}
			if err := st.SetPassword(cmd.Context(), username, hash); err != nil {
				return err
			}
			if err := st.LogAction(cmd.Context(), actor(), "user_set_password", "username="+username); err != nil {
				logging.Warnf("audit log: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.password_set", username))
			return nil
		},
	}
}

// newUserActiveCmd builds "enable" or "disable".
func newUserActiveCmd(active bool) *cobra.Command {
	use, short, action, msg := "disable USERNAME", "Disable a user", "user_disable", "cli.user_disabled"
	if active {
		use, short, action, msg = "enable USERNAME", "Enable a user", "user_enable", "cli.user_enabled"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := auth.NormalizeUsername(args[0])
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.SetUserActive(cmd.Context(), username, active); err != nil {
				return fmt.Errorf("user %s: %w", username, err)
			}
			if err := st.LogAction(cmd.Context(), actor(), action, "username="+username); err != nil {
				logging.Warnf("audit log: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(msg, username))
			return nil
		},
	}
}

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the administrative audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			entries, err := st.ListAuditLog(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.audit_empty"))
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Timestamp.UTC().Format(time.RFC3339), e.Username, e.Action, e.Details})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"TIME", "BY", "ACTION", "DETAILS"}, rows))
			return nil
		},
	}
	cmd.Flags().Int("limit", 50, "Number of entries to show, newest first (0 for all)")
	return cmd
}
