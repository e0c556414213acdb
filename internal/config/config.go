// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads wordle-assistant settings from defaults, a YAML file,
// WORDLE_ASSISTANT_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName   = "wordle-assistant"
	envPrefix = "WORDLE_ASSISTANT"
)

// ErrMissingSecret is returned by Validate when authentication is enabled
// without a session signing key.
var ErrMissingSecret = errors.New("server.secret_key must be set when server.auth_enabled is true")

type Database struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file,omitempty"`
}

type Server struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	SecretKey         string        `mapstructure:"secret_key" yaml:"secret_key"`
	AuthEnabled       bool          `mapstructure:"auth_enabled" yaml:"auth_enabled"`
	CookieSecure      bool          `mapstructure:"cookie_secure" yaml:"cookie_secure"`
	TrustedProxies    []string      `mapstructure:"trusted_proxies" yaml:"trusted_proxies"`
	SessionTTL        time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
}

type Words struct {
	AllowedPath string `mapstructure:"allowed_path" yaml:"allowed_path"`
	UsedPath    string `mapstructure:"used_path" yaml:"used_path"`
	AllowedURL  string `mapstructure:"allowed_url" yaml:"allowed_url"`
	UsedURL     string `mapstructure:"used_url" yaml:"used_url"`
	Watch       bool   `mapstructure:"watch" yaml:"watch"`
}

type Solver struct {
	MaxGuesses int `mapstructure:"max_guesses" yaml:"max_guesses"`
	MinLocked  int `mapstructure:"min_locked" yaml:"min_locked"`
}

type Security struct {
	FailsToBan     int           `mapstructure:"fails_to_ban" yaml:"fails_to_ban"`
	BanDuration    time.Duration `mapstructure:"ban_duration" yaml:"ban_duration"`
	PasswordMinLen int           `mapstructure:"password_min_len" yaml:"password_min_len"`
	InviteTTL      time.Duration `mapstructure:"invite_ttl" yaml:"invite_ttl"`
}

// Config is the full application configuration.
type Config struct {
	Database Database `mapstructure:"database" yaml:"database"`
	Language string   `mapstructure:"language" yaml:"language"`
	Log      Log      `mapstructure:"log" yaml:"log"`
	Server   Server   `mapstructure:"server" yaml:"server"`
	Words    Words    `mapstructure:"words" yaml:"words"`
	Solver   Solver   `mapstructure:"solver" yaml:"solver"`
	Security Security `mapstructure:"security" yaml:"security"`
	BaseURL  string   `mapstructure:"base_url" yaml:"base_url"`
}

// Defaults returns the built-in configuration values keyed by viper path.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":              "sqlite",
		"database.dsn":               "./wordle-assistant.db",
		"language":                   "en",
		"log.level":                  "info",
		"log.format":                 "text",
		"log.file":                   "",
		"server.addr":                "127.0.0.1:8000",
		"server.secret_key":          "",
		"server.auth_enabled":        true,
		"server.cookie_secure":       false,
		"server.trusted_proxies":     []string{},
		"server.session_ttl":         "36h",
		"server.read_header_timeout": "10s",
		"words.allowed_path":         "./words/allowed.txt",
		"words.used_path":            "./words/used.json",
		"words.allowed_url":          "https://raw.githubusercontent.com/tabatkins/wordle-list/main/words",
		"words.used_url":             "https://www.fiveforks.com/wordle/block/",
		"words.watch":                true,
		"solver.max_guesses":         5,
		"solver.min_locked":          3,
		"security.fails_to_ban":      3,
		"security.ban_duration":      "24h",
		"security.password_min_len":  15,
		"security.invite_ttl":        "48h",
		"base_url":                   "",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), appName)
		default:
			configDir = filepath.Join("/etc", appName)
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, appName)
	}

	return filepath.Join(configDir, appName+".yaml"), nil
}

// LoadConfig builds T from defaults, the first config file found, the
// environment and the flags of cmd, in increasing order of precedence.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(appName)
	v.SetConfigType("yaml")

	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, a broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Load is LoadConfig for Config with the built-in defaults.
func Load(cmd *cobra.Command, explicitPath *string) (Config, error) {
	return LoadConfig[Config](cmd, Defaults(), explicitPath)
}

// Validate checks settings that must hold before the server starts.
func (c Config) Validate() error {
	if c.Server.AuthEnabled && strings.TrimSpace(c.Server.SecretKey) == "" {
		return ErrMissingSecret
	}
	if c.Solver.MaxGuesses < 1 {
		return fmt.Errorf("solver.max_guesses must be positive, got %d", c.Solver.MaxGuesses)
	}
	if c.Solver.MinLocked < 1 || c.Solver.MinLocked > c.Solver.MaxGuesses {
		return fmt.Errorf("solver.min_locked must be between 1 and %d, got %d", c.Solver.MaxGuesses, c.Solver.MinLocked)
	}
	return nil
}

// WriteConfigFile writes c as YAML to the user or system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file holds the session signing key.
	return os.WriteFile(path, data, 0600)
}
