package sqlstore

import (
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/conquista/internal/errors"
	"github.com/julianstephens/conquista/internal/models"
)

func (s *Store) CreateUser(username, passwordHash string) (models.User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, apperrors.Storage("create user", err)
	}
	defer tx.Rollback()

	var exists int
	err = s.queryRow(tx, "SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&exists)
	if err != nil {
		return models.User{}, apperrors.Storage("create user", err)
	}
	if exists > 0 {
		return models.User{}, apperrors.ErrDuplicateUser
	}

	u := models.User{Username: username, Password: passwordHash}
	err = s.queryRow(tx,
		"INSERT INTO users (username, password) VALUES (?, ?) RETURNING id",
		username, passwordHash,
	).Scan(&u.ID)
	if err != nil {
		// a concurrent registration can still win the race past the check above
		if isUniqueViolation(err) {
			return models.User{}, apperrors.ErrDuplicateUser
		}
		return models.User{}, apperrors.Storage("create user", err)
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, apperrors.Storage("create user", err)
	}
	return u, nil
}

func (s *Store) GetUser(id int64) (models.User, error) {
	return s.scanUser(s.queryRow(s.db, "SELECT id, username, password FROM users WHERE id = ?", id))
}

func (s *Store) GetUserByUsername(username string) (models.User, error) {
	return s.scanUser(s.queryRow(s.db, "SELECT id, username, password FROM users WHERE username = ?", username))
}

func (s *Store) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperrors.ErrNotFound
		}
		return models.User{}, apperrors.Storage("get user", err)
	}
	return u, nil
}
