// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/toeirei/wordle-assistant/internal/db"
	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/logging"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: "Write a compressed backup of the database",
		Long: `Exports users, invites, login attempts and the audit log to a
zstd-compressed JSON file. Without an argument the file is named
wordle-assistant-backup-YYYY-MM-DD.json.zst.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := fmt.Sprintf("wordle-assistant-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				name = args[0]
			}
			if !strings.HasSuffix(name, ".zst") {
				name += ".zst"
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			data, err := st.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			f, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			if err := db.WriteBackup(f, data); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			logging.Event("backup", "path", name, "users", len(data.Users), "invites", len(data.Invites))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.backup_success", name))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the database from a backup",
		Long: `By default rows from the backup are merged into the database and
existing rows are kept. With --full the database is wiped first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			full, _ := cmd.Flags().GetBool("full")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open backup file: %w", err)
			}
			defer func() { _ = f.Close() }()
			data, err := db.ReadBackup(f)
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if full {
				err = st.Import(cmd.Context(), data)
			} else {
				err = st.Integrate(cmd.Context(), data)
			}
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			if err := st.LogAction(cmd.Context(), actor(), "restore", fmt.Sprintf("file=%s full=%t", args[0], full)); err != nil {
				logging.Warnf("audit log: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.restore_success"))
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "Wipe the database before restoring")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate --type TYPE --dsn DSN",
		Short: "Copy all data into another database",
		Long: `Copies the configured database into the target, which is created and
migrated first. Existing rows in the target are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetType, _ := cmd.Flags().GetString("type")
			targetDSN, _ := cmd.Flags().GetString("dsn")
			if targetType == "" || targetDSN == "" {
				return errors.New("--type and --dsn are required")
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := db.Migrate(cmd.Context(), st, targetType, targetDSN); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.migrate_success"))
			return nil
		},
	}
	cmd.Flags().String("type", "", "Target database type (sqlite, postgres, mysql)")
	cmd.Flags().String("dsn", "", "Target database DSN")
	return cmd
}

func newMaintenanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintenance",
		Short: "Run database maintenance (VACUUM, ANALYZE, OPTIMIZE)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
				return fmt.Errorf("maintenance: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.maintenance_success"))
			return nil
		},
	}
}
