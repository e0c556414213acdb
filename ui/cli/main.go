// Copyright (c) 2026 ToeiRei
// wordle-assistant - feedback deduction for five-letter word puzzles
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, configuration loading and the shared
// helpers every subcommand relies on.

package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/toeirei/wordle-assistant/buildvars"
	"github.com/toeirei/wordle-assistant/internal/config"
	"github.com/toeirei/wordle-assistant/internal/db"
	"github.com/toeirei/wordle-assistant/internal/i18n"
	"github.com/toeirei/wordle-assistant/internal/logging"
	"github.com/toeirei/wordle-assistant/internal/tui"
	"github.com/toeirei/wordle-assistant/internal/usecase"
	"github.com/toeirei/wordle-assistant/internal/words"
)

const modulePath = "github.com/toeirei/wordle-assistant"

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

var appConfig config.Config

// Test seams.
var (
	newStore = func(dbType, dsn string) (*db.BunStore, error) { return db.New(dbType, dsn) }
	// httpClient is used by the sync commands; nil means the package default.
	httpClient *http.Client
	runTUI     = tui.Run
)

// logFile is the file opened for log.file, closed when the command ends.
var logFile *os.File

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.Load(cmd, path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	out := io.Writer(cmd.ErrOrStderr())
	if appConfig.Log.File != "" {
		f, err := os.OpenFile(appConfig.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = f
	}
	if err := logging.Configure(logging.Options{
		Level:  appConfig.Log.Level,
		Format: appConfig.Log.Format,
		Output: out,
	}); err != nil {
		return err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	i18n.Init(appConfig.Language)
	return nil
}

func closeLogFile(cmd *cobra.Command, args []string) {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// Execute runs the CLI entrypoint.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates and configures a new root cobra command. Every call
// returns an independent command tree, so tests can run commands in
// isolation.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordle-assistant",
		Short: "Deduce the remaining answers of a five-letter word puzzle.",
		Long: `wordle-assistant turns the coloured feedback of your guesses into the
list of answers that are still possible, split into words that have not
been used as an answer yet and words that already were.

Running without a subcommand starts the interactive terminal solver.
Use "serve" for the invite-only web front end.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		PersistentPostRun: closeLogFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(newSolveService())
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging, including SQL statements")
	pf.String("config", "", "config file")
	pf.String("language", "en", `Output language ("en", "de")`)
	pf.String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	pf.String("database.dsn", "./wordle-assistant.db", "Database connection string (DSN)")
	pf.String("log.level", "info", "Log level (debug, info, warn, error)")
	pf.String("log.format", "text", "Log format (text, json, logfmt)")

	cmd.AddCommand(
		newServeCmd(),
		newSolveCmd(),
		newWordsSyncCmd(),
		newUsedSyncCmd(),
		newSyncCmd(),
		newInviteCreateCmd(),
		newUserCmd(),
		newAuditCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newMigrateCmd(),
		newMaintenanceCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// newSolveService wires the solver to the configured word files.
func newSolveService() *usecase.Service {
	svc := usecase.NewService(words.NewFileSource(appConfig.Words.AllowedPath, appConfig.Words.UsedPath))
	svc.MaxGuesses = appConfig.Solver.MaxGuesses
	svc.MinLocked = appConfig.Solver.MinLocked
	return svc
}

// openStore opens the configured database.
func openStore() (*db.BunStore, error) {
	st, err := newStore(appConfig.Database.Type, appConfig.Database.Dsn)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}
	return st, nil
}

// actor names the operator in audit entries.
func actor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return "cli:" + u.Username
	}
	return "cli"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
			return nil
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't contain the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit provided via ldflags.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
