package sqlstore

import (
	apperrors "github.com/julianstephens/conquista/internal/errors"
	"github.com/julianstephens/conquista/internal/models"
)

// completedLogs builds the FROM/WHERE shared by aggregate queries: true logs,
// joined to habits and filtered by owner unless the scope spans all users.
func completedLogs(scope models.Scope) (string, []any) {
	if scope.AllUsers {
		return " FROM habit_logs l WHERE l.status = ?", []any{true}
	}
	return " FROM habit_logs l JOIN habits h ON h.id = l.habit_id WHERE h.user_id = ? AND l.status = ?",
		[]any{scope.UserID, true}
}

func (s *Store) CompletedDates(scope models.Scope) ([]string, error) {
	from, args := completedLogs(scope)
	rows, err := s.query(s.db, "SELECT DISTINCT l.date"+from+" ORDER BY l.date DESC", args...)
	if err != nil {
		return nil, apperrors.Storage("completed dates", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, apperrors.Storage("completed dates", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("completed dates", err)
	}
	return dates, nil
}

func (s *Store) CountCompleted(scope models.Scope) (int, error) {
	from, args := completedLogs(scope)
	var count int
	if err := s.queryRow(s.db, "SELECT COUNT(*)"+from, args...).Scan(&count); err != nil {
		return 0, apperrors.Storage("count completed", err)
	}
	return count, nil
}

func (s *Store) CompletionCounts(scope models.Scope, fromDay, toDay string) (map[string]int, error) {
	from, args := completedLogs(scope)
	query := "SELECT l.date, COUNT(*)" + from
	if fromDay != "" {
		query += " AND l.date >= ?"
		args = append(args, fromDay)
	}
	if toDay != "" {
		query += " AND l.date <= ?"
		args = append(args, toDay)
	}
	query += " GROUP BY l.date"

	rows, err := s.query(s.db, query, args...)
	if err != nil {
		return nil, apperrors.Storage("completion counts", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, apperrors.Storage("completion counts", err)
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("completion counts", err)
	}
	return counts, nil
}

func (s *Store) CountCompletedOn(scope models.Scope, date string) (int, error) {
	from, args := completedLogs(scope)
	var count int
	if err := s.queryRow(s.db, "SELECT COUNT(*)"+from+" AND l.date = ?", append(args, date)...).Scan(&count); err != nil {
		return 0, apperrors.Storage("count completed on", err)
	}
	return count, nil
}

func (s *Store) CompletionHistory(userID int64) (map[string]int, error) {
	return s.CompletionCounts(models.UserScope(userID), "", "")
}

func (s *Store) CountHabits(userID int64) (int, error) {
	var count int
	if err := s.queryRow(s.db, "SELECT COUNT(*) FROM habits WHERE user_id = ?", userID).Scan(&count); err != nil {
		return 0, apperrors.Storage("count habits", err)
	}
	return count, nil
}

func (s *Store) CountCompletedToday(userID int64) (int, error) {
	var count int
	err := s.queryRow(s.db, "SELECT COUNT(*) FROM habits WHERE user_id = ? AND completed = ?", userID, true).Scan(&count)
	if err != nil {
		return 0, apperrors.Storage("count completed today", err)
	}
	return count, nil
}
