// Package session remembers the logged-in user between command invocations.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/models"
)

var ErrNoSession = errors.New("not logged in, run 'conquista login' first")

// Session is persisted as <configdir>/session.yaml.
type Session struct {
	Token     string    `yaml:"token"`
	UserID    int64     `yaml:"user_id"`
	Username  string    `yaml:"username"`
	CreatedAt time.Time `yaml:"created_at"`
}

func Path(dir string) string {
	return filepath.Join(dir, constants.SessionFileName)
}

// Save starts a new session for user, replacing any previous one.
func Save(dir string, user models.User) (Session, error) {
	s := Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return Session{}, fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(Path(dir), data, 0600); err != nil {
		return Session{}, fmt.Errorf("failed to write session: %w", err)
	}
	return s, nil
}

// Load returns the current session or ErrNoSession.
func Load(dir string) (Session, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	if s.UserID <= 0 || s.Token == "" {
		return Session{}, ErrNoSession
	}
	if _, err := uuid.Parse(s.Token); err != nil {
		return Session{}, fmt.Errorf("session token is malformed: %w", err)
	}
	return s, nil
}

// Clear ends the current session. Clearing without a session is not an error.
func Clear(dir string) error {
	if err := os.Remove(Path(dir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
