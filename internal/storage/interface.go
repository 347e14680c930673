package storage

import "github.com/julianstephens/conquista/internal/models"

// UserStore persists accounts. CreateUser fails with errors.ErrDuplicateUser
// for a taken username; lookups fail with errors.ErrNotFound.
type UserStore interface {
	CreateUser(username, passwordHash string) (models.User, error)
	GetUser(id int64) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
}

// HabitStore persists habits and their per-day logs.
type HabitStore interface {
	CreateHabit(models.Habit) (models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	// ListActiveHabits returns habits with no start date or one on or before
	// asOf, newest first. Completed is the denormalized today flag.
	ListActiveHabits(userID int64, asOf string) ([]models.Habit, error)
	// ListHabitsForDate is ListActiveHabits with Completed read from the log for date.
	ListHabitsForDate(userID int64, date string) ([]models.Habit, error)
	// DeleteHabit removes the habit's logs and then the habit in one transaction.
	DeleteHabit(id int64) error

	GetHabitLog(habitID int64, date string) (models.HabitLog, error)
	CountHabitLogs(habitID int64) (int, error)
	// UpsertHabitLog keeps exactly one log per (habitID, date).
	UpsertHabitLog(habitID int64, date string, status bool) error
	SetHabitCompleted(habitID int64, status bool) error
	// RecordCompletion upserts the (habitID, date) log and, when writeThrough
	// is set, the habit's denormalized completed flag.
	RecordCompletion(habitID int64, date string, status, writeThrough bool) error
	// ReconcileCompletedFlags makes every completed flag match the logs for today.
	ReconcileCompletedFlags(today string) (int64, error)
}

// StatsStore answers the aggregate queries behind analytics and history.
type StatsStore interface {
	// CompletedDates lists distinct days with at least one true log, newest first.
	CompletedDates(scope models.Scope) ([]string, error)
	CountCompleted(scope models.Scope) (int, error)
	// CompletionCounts maps day to number of true logs. Empty bounds are open.
	CompletionCounts(scope models.Scope, from, to string) (map[string]int, error)
	CountCompletedOn(scope models.Scope, date string) (int, error)
	// CompletionHistory maps every day to the number of the user's habits completed on it.
	CompletionHistory(userID int64) (map[string]int, error)
	CountHabits(userID int64) (int, error)
	CountCompletedToday(userID int64) (int, error)
}

// Provider is a complete, openable record store.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	UserStore
	HabitStore
	StatsStore

	// Utils
	GetConfigPath() string
}
