// Package auth registers and logs in users over the record store.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/julianstephens/conquista/internal/errors"
	"github.com/julianstephens/conquista/internal/logger"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/storage"
)

const (
	msgAccountCreated     = "account created"
	msgInvalidCredentials = "invalid username or password"
)

type Service struct {
	users storage.UserStore
	cost  int
}

func NewService(users storage.UserStore) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// Register creates an account. The password is stored as a bcrypt hash.
func (s *Service) Register(username, password string) models.Result {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Fail("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.Fail("password is too long")
		}
		logger.Error("Failed to hash password", "error", err)
		return models.Fail(err.Error())
	}

	if _, err := s.users.CreateUser(username, string(hash)); err != nil {
		if apperrors.Is(err, apperrors.ErrDuplicateUser) {
			return models.Fail(apperrors.ErrDuplicateUser.Error())
		}
		logger.Error("Failed to register user", "username", username, "error", err)
		return models.Fail(err.Error())
	}

	logger.Info("User registered", "username", username)
	return models.Ok(msgAccountCreated)
}

// Login checks credentials. An unknown user and a wrong password fail with
// the same message.
func (s *Service) Login(username, password string) (models.User, models.Result) {
	user, err := s.users.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to look up user", "username", username, "error", err)
		}
		return models.User{}, models.Fail(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Debug("Password mismatch", "username", user.Username)
		return models.User{}, models.Fail(msgInvalidCredentials)
	}

	user.Password = ""
	return user, models.Ok("welcome back, " + user.Username)
}
