// Package cli holds the kong commands. Each command runs against a Context
// built once in main.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/conquista/internal/analytics"
	"github.com/julianstephens/conquista/internal/auth"
	"github.com/julianstephens/conquista/internal/backup"
	"github.com/julianstephens/conquista/internal/config"
	"github.com/julianstephens/conquista/internal/habits"
	"github.com/julianstephens/conquista/internal/history"
	"github.com/julianstephens/conquista/internal/logger"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/session"
	"github.com/julianstephens/conquista/internal/storage"
	"github.com/julianstephens/conquista/internal/storage/sqlite"
	"github.com/julianstephens/conquista/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Config    config.Config
	Habits    *habits.Service
	Analytics *analytics.Engine
	History   *history.Aggregator
	Auth      *auth.Service

	// Out receives command output. Defaults to stdout.
	Out io.Writer
	// Prompt and Confirm ask for missing input interactively.
	Prompt  Prompter
	Confirm Confirmer
}

// NewContext wires the services over store using the settings in cfg.
func NewContext(store storage.Provider, cfg config.Config) (*Context, error) {
	clock, err := utils.NewClock(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Context{
		Store:     store,
		Config:    cfg,
		Habits:    habits.NewService(store, clock),
		Analytics: analytics.NewEngine(store, clock, cfg.Analytics.Scope, cfg.Locale),
		History:   history.NewAggregator(store),
		Auth:      auth.NewService(store),
		Out:       os.Stdout,
		Prompt:    HuhPrompt,
		Confirm:   HuhConfirm,
	}, nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// CurrentUser returns the logged-in user, checking the account still exists.
func (c *Context) CurrentUser() (models.User, error) {
	sess, err := session.Load(c.Config.Dir)
	if err != nil {
		return models.User{}, err
	}
	user, err := c.Store.GetUser(sess.UserID)
	if err != nil {
		return models.User{}, fmt.Errorf("session user %q is no longer available: %w", sess.Username, err)
	}
	return user, nil
}

// ownedHabit loads a habit and checks it belongs to user.
func (c *Context) ownedHabit(user models.User, habitID int64) (models.Habit, error) {
	habit, err := c.Store.GetHabit(habitID)
	if err != nil || habit.UserID != user.ID {
		return models.Habit{}, fmt.Errorf("habit %d not found", habitID)
	}
	return habit, nil
}

// backupManager is only available for the SQLite backend.
func (c *Context) backupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, errors.New("backups are only supported for SQLite databases")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup snapshots the database before a destructive change
// and never fails the command.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.backupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// resultErr turns a failed Result into an error.
func resultErr(res models.Result) error {
	if res.Success {
		return nil
	}
	return errors.New(res.Message)
}
