package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/conquista/internal/constants"
	apperrors "github.com/julianstephens/conquista/internal/errors"
	"github.com/julianstephens/conquista/internal/models"
)

const habitColumns = `h.id, h.user_id, h.title, h.icon, h.color, h.frequency, h.category,
	h.goal, h.notes, h.start_date, h.completed`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner, extra ...any) (models.Habit, error) {
	var h models.Habit
	var frequency string
	var startDate sql.NullString

	dest := []any{
		&h.ID, &h.UserID, &h.Title, &h.Icon, &h.Color, &frequency, &h.Category,
		&h.Goal, &h.Notes, &startDate, &h.Completed,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.Habit{}, err
	}

	h.Frequency = constants.Frequency(frequency)
	if startDate.Valid {
		h.StartDate = &startDate.String
	}
	return h, nil
}

func (s *Store) CreateHabit(habit models.Habit) (models.Habit, error) {
	var startDate sql.NullString
	if habit.StartDate != nil {
		startDate = sql.NullString{String: *habit.StartDate, Valid: true}
	}

	err := s.queryRow(s.db, `
		INSERT INTO habits (user_id, title, icon, color, frequency, category, goal, notes, start_date, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		habit.UserID, habit.Title, habit.Icon, habit.Color, string(habit.Frequency), habit.Category,
		habit.Goal, habit.Notes, startDate, false,
	).Scan(&habit.ID)
	if err != nil {
		return models.Habit{}, apperrors.Storage("create habit", err)
	}

	habit.Completed = false
	return habit, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	h, err := scanHabit(s.queryRow(s.db, "SELECT "+habitColumns+" FROM habits h WHERE h.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, apperrors.ErrNotFound
		}
		return models.Habit{}, apperrors.Storage("get habit", err)
	}
	return h, nil
}

func (s *Store) ListActiveHabits(userID int64, asOf string) ([]models.Habit, error) {
	rows, err := s.query(s.db, `
		SELECT `+habitColumns+`
		FROM habits h
		WHERE h.user_id = ? AND (h.start_date IS NULL OR h.start_date <= ?)
		ORDER BY h.id DESC`, userID, asOf)
	if err != nil {
		return nil, apperrors.Storage("list habits", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, apperrors.Storage("list habits", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("list habits", err)
	}
	return habits, nil
}

func (s *Store) ListHabitsForDate(userID int64, date string) ([]models.Habit, error) {
	rows, err := s.query(s.db, `
		SELECT `+habitColumns+`, l.status
		FROM habits h
		LEFT JOIN habit_logs l ON l.habit_id = h.id AND l.date = ?
		WHERE h.user_id = ? AND (h.start_date IS NULL OR h.start_date <= ?)
		ORDER BY h.id DESC`, date, userID, date)
	if err != nil {
		return nil, apperrors.Storage("list habits for date", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var status sql.NullBool
		h, err := scanHabit(rows, &status)
		if err != nil {
			return nil, apperrors.Storage("list habits for date", err)
		}
		// no log for the day means not completed
		h.Completed = status.Valid && status.Bool
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("list habits for date", err)
	}
	return habits, nil
}

func (s *Store) DeleteHabit(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Storage("delete habit", err)
	}
	defer tx.Rollback()

	// logs go first so a failure never strands history behind a missing habit
	if _, err := s.exec(tx, "DELETE FROM habit_logs WHERE habit_id = ?", id); err != nil {
		return apperrors.Storage("delete habit logs", err)
	}

	result, err := s.exec(tx, "DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return apperrors.Storage("delete habit", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Storage("delete habit", err)
	}
	if affected == 0 {
		return fmt.Errorf("habit %d: %w", id, apperrors.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("delete habit", err)
	}
	return nil
}

func (s *Store) GetHabitLog(habitID int64, date string) (models.HabitLog, error) {
	var l models.HabitLog
	err := s.queryRow(s.db,
		"SELECT id, habit_id, date, status FROM habit_logs WHERE habit_id = ? AND date = ?",
		habitID, date,
	).Scan(&l.ID, &l.HabitID, &l.Date, &l.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitLog{}, apperrors.ErrNotFound
		}
		return models.HabitLog{}, apperrors.Storage("get habit log", err)
	}
	return l, nil
}

func (s *Store) CountHabitLogs(habitID int64) (int, error) {
	var count int
	if err := s.queryRow(s.db, "SELECT COUNT(*) FROM habit_logs WHERE habit_id = ?", habitID).Scan(&count); err != nil {
		return 0, apperrors.Storage("count habit logs", err)
	}
	return count, nil
}

func (s *Store) setCompleted(q querier, habitID int64, status bool) error {
	result, err := s.exec(q, "UPDATE habits SET completed = ? WHERE id = ?", status, habitID)
	if err != nil {
		return apperrors.Storage("update completed flag", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit %d: %w", habitID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Store) upsertLog(q querier, habitID int64, date string, status bool) error {
	// (habit_id, date) is UNIQUE, so this is the only row for the pair
	_, err := s.exec(q, `
		INSERT INTO habit_logs (habit_id, date, status) VALUES (?, ?, ?)
		ON CONFLICT (habit_id, date) DO UPDATE SET status = excluded.status`,
		habitID, date, status)
	if err != nil {
		return apperrors.Storage("upsert habit log", err)
	}
	return nil
}

func (s *Store) SetHabitCompleted(habitID int64, status bool) error {
	return s.setCompleted(s.db, habitID, status)
}

func (s *Store) UpsertHabitLog(habitID int64, date string, status bool) error {
	return s.upsertLog(s.db, habitID, date, status)
}

func (s *Store) RecordCompletion(habitID int64, date string, status, writeThrough bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Storage("record completion", err)
	}
	defer tx.Rollback()

	if writeThrough {
		if err := s.setCompleted(tx, habitID, status); err != nil {
			return err
		}
	}
	if err := s.upsertLog(tx, habitID, date, status); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("record completion", err)
	}
	return nil
}

func (s *Store) ReconcileCompletedFlags(today string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, apperrors.Storage("reconcile completed flags", err)
	}
	defer tx.Rollback()

	var changed int64
	for _, target := range []bool{false, true} {
		presence := "NOT EXISTS"
		if target {
			presence = "EXISTS"
		}
		result, err := s.exec(tx, `
			UPDATE habits SET completed = ?
			WHERE completed = ? AND `+presence+` (
				SELECT 1 FROM habit_logs l
				WHERE l.habit_id = habits.id AND l.date = ? AND l.status = ?
			)`, target, !target, today, true)
		if err != nil {
			return 0, apperrors.Storage("reconcile completed flags", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, apperrors.Storage("reconcile completed flags", err)
		}
		changed += n
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.Storage("reconcile completed flags", err)
	}
	return changed, nil
}
