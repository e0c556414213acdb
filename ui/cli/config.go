// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toeirei/wordle-assistant/internal/config"
	"github.com/toeirei/wordle-assistant/internal/i18n"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with a fresh session key",
		Long: `Writes the effective configuration to the user config file (or the
system one with --system). If server.secret_key is empty a random key is
generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetBool("system")
			force, _ := cmd.Flags().GetBool("force")

			path, err := config.GetConfigPath(system)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(i18n.T("cli.config_exists", path))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			c := appConfig
			if c.Server.SecretKey == "" {
				key, err := newSecretKey()
				if err != nil {
					return err
				}
				c.Server.SecretKey = key
			}
			if err := config.WriteConfigFile(&c, system); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config_written", path))
			return nil
		},
	}
	cmd.Flags().Bool("system", false, "Write the system-wide config file")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

// newSecretKey returns 32 random bytes, hex encoded.
func newSecretKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
