package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/conquista/internal/cli"
	"github.com/julianstephens/conquista/internal/config"
	"github.com/julianstephens/conquista/internal/constants"
	apperrors "github.com/julianstephens/conquista/internal/errors"
	"github.com/julianstephens/conquista/internal/keyring"
	"github.com/julianstephens/conquista/internal/lock"
	"github.com/julianstephens/conquista/internal/logger"
	"github.com/julianstephens/conquista/internal/storage"
	"github.com/julianstephens/conquista/internal/storage/postgres"
	"github.com/julianstephens/conquista/internal/storage/sqlite"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, the session and logs." type:"path" default:"${config_dir}"`
	Database  string `help:"SQLite file path or password-free PostgreSQL URL. Overrides config.yaml." default:""`
	Debug     bool   `help:"Log debug output to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize conquista storage."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Register cli.RegisterCmd `cmd:"" help:"Create an account."`
	Login    cli.LoginCmd    `cmd:"" help:"Log in."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Log out."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the logged-in user."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show streak, level and weekly activity." default:"1"`
	History  cli.HistoryCmd  `cmd:"" help:"Show the completion calendar."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Config   cli.ConfigCmd   `cmd:"" help:"Manage stored database credentials."`
}

// commands that never touch the database
var storeless = []string{"config", "logout"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily habit tracker with streaks, XP and history"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": constants.DefaultConfigDir,
		},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Database != "" {
		if cfg.Database, err = config.ExpandHome(CLI.Database); err != nil {
			apperrors.Fatal(err)
		}
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, lockDir, err := openStore(cfg)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx, err := cli.NewContext(store, cfg)
	if err != nil {
		apperrors.Fatal(err)
	}

	command := ctx.Command()
	if isStoreless(command) {
		apperrors.Fatal(ctx.Run(appCtx))
		return
	}

	lk, err := lock.Acquire(lockDir)
	if err != nil {
		apperrors.Fatal(err)
	}

	err = run(ctx, appCtx, command)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close database", "error", cerr)
	}
	if rerr := lk.Release(); rerr != nil {
		logger.Warn("Failed to release lock", "error", rerr)
	}
	apperrors.Fatal(err)
}

func run(ctx *kong.Context, appCtx *cli.Context, command string) error {
	// init creates the database itself
	if !strings.HasPrefix(command, "init") {
		if err := appCtx.Store.Load(); err != nil {
			return err
		}
		if !strings.HasPrefix(command, "migrate") {
			appCtx.Habits.Reconcile()
		}
	}
	return ctx.Run(appCtx)
}

func isStoreless(command string) bool {
	for _, prefix := range storeless {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

// openStore picks the backend from the database setting and returns the
// directory holding the instance lockfile.
func openStore(cfg config.Config) (storage.Provider, string, error) {
	if postgres.IsConnectionString(cfg.Database) {
		if err := postgres.ValidateConnString(cfg.Database); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w: store the full string with 'conquista config set-connection' or %s instead",
					err, keyring.EnvConnection)
			}
			return nil, "", err
		}
		return postgres.New(cfg.Database), cfg.Dir, nil
	}
	return sqlite.NewStore(cfg.Database), filepath.Dir(cfg.Database), nil
}
