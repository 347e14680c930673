// Package habits is the query and mutation layer between callers and the
// record store. It never returns raw storage errors: lists degrade to empty
// and mutations report a models.Result.
package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/conquista/internal/constants"
	apperrors "github.com/julianstephens/conquista/internal/errors"
	"github.com/julianstephens/conquista/internal/logger"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/storage"
	"github.com/julianstephens/conquista/internal/utils"
)

type Service struct {
	store storage.HabitStore
	clock utils.Clock
}

func NewService(store storage.HabitStore, clock utils.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// Today returns the current day in the service's timezone.
func (s *Service) Today() string {
	return s.clock.Today()
}

// ListActiveHabits returns the user's habits started on or before asOf
// (default today), newest first. Completed is today's flag.
func (s *Service) ListActiveHabits(userID int64, asOf string) []models.Habit {
	if asOf == "" {
		asOf = s.clock.Today()
	}
	if !utils.ValidateDate(asOf) {
		logger.Warn("Invalid date for habit list", "as_of", asOf)
		return []models.Habit{}
	}
	habits, err := s.store.ListActiveHabits(userID, asOf)
	if err != nil {
		logger.Error("Failed to list habits", "user", userID, "as_of", asOf, "error", err)
		return []models.Habit{}
	}
	return habits
}

// ListHabitsForDate is ListActiveHabits with Completed read from the logs of date.
func (s *Service) ListHabitsForDate(userID int64, date string) []models.Habit {
	if date == "" {
		date = s.clock.Today()
	}
	if !utils.ValidateDate(date) {
		logger.Warn("Invalid date for habit list", "date", date)
		return []models.Habit{}
	}
	habits, err := s.store.ListHabitsForDate(userID, date)
	if err != nil {
		logger.Error("Failed to list habits for date", "user", userID, "date", date, "error", err)
		return []models.Habit{}
	}
	return habits
}

// CreateHabit validates fields, applies defaults and stores the habit.
func (s *Service) CreateHabit(userID int64, fields models.HabitFields) models.Result {
	habit, err := s.newHabit(userID, fields)
	if err != nil {
		return models.Fail(err.Error())
	}

	created, err := s.store.CreateHabit(habit)
	if err != nil {
		logger.Error("Failed to create habit", "user", userID, "title", habit.Title, "error", err)
		return models.Fail(err.Error())
	}
	logger.Debug("Habit created", "id", created.ID, "user", userID)
	return models.Ok(fmt.Sprintf("habit %d created", created.ID))
}

func (s *Service) newHabit(userID int64, fields models.HabitFields) (models.Habit, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return models.Habit{}, fmt.Errorf("title is required")
	}

	frequency := constants.DefaultHabitFrequency
	if fields.Frequency != "" {
		f, ok := models.ParseFrequency(string(fields.Frequency))
		if !ok {
			return models.Habit{}, fmt.Errorf("invalid frequency %q (expected Daily, Weekly or Monthly)", fields.Frequency)
		}
		frequency = f
	}

	start := fields.StartDate
	if start == "" {
		start = s.clock.Today()
	} else if !utils.ValidateDate(start) {
		return models.Habit{}, fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", start)
	}

	return models.Habit{
		UserID:    userID,
		Title:     title,
		Icon:      orDefault(fields.Icon, constants.DefaultHabitIcon),
		Color:     orDefault(fields.Color, constants.DefaultHabitColor),
		Frequency: frequency,
		Category:  orDefault(fields.Category, constants.DefaultHabitCategory),
		Goal:      strings.TrimSpace(fields.Goal),
		Notes:     strings.TrimSpace(fields.Notes),
		StartDate: &start,
	}, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// DeleteHabit removes a habit together with its whole log history.
func (s *Service) DeleteHabit(habitID int64) models.Result {
	if err := s.store.DeleteHabit(habitID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return models.Fail(fmt.Sprintf("habit %d not found", habitID))
		}
		logger.Error("Failed to delete habit", "id", habitID, "error", err)
		return models.Fail(err.Error())
	}
	logger.Debug("Habit deleted", "id", habitID)
	return models.Ok(fmt.Sprintf("habit %d deleted", habitID))
}

// ToggleCompletion records !currentStatus for habitID on date (default
// today). The habit's completed flag is written only when date is today.
func (s *Service) ToggleCompletion(habitID int64, currentStatus bool, date string) models.Result {
	today := s.clock.Today()
	if date == "" {
		date = today
	}
	if !utils.ValidateDate(date) {
		return models.Fail(fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", date))
	}

	if _, err := s.store.GetHabit(habitID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return models.Fail(fmt.Sprintf("habit %d not found", habitID))
		}
		logger.Error("Failed to load habit", "id", habitID, "error", err)
		return models.Fail(err.Error())
	}

	status := !currentStatus
	if err := s.store.RecordCompletion(habitID, date, status, date == today); err != nil {
		logger.Error("Failed to toggle habit", "id", habitID, "date", date, "error", err)
		return models.Fail(err.Error())
	}

	state := "not done"
	if status {
		state = "done"
	}
	return models.Ok(fmt.Sprintf("habit %d marked %s for %s", habitID, state, date))
}

// Toggle flips the stored status of habitID on date, reading the current
// status from the log, or from the habit's completed flag when date is
// today and no log exists yet.
func (s *Service) Toggle(habitID int64, date string) models.Result {
	today := s.clock.Today()
	if date == "" {
		date = today
	}
	current := false
	log, err := s.store.GetHabitLog(habitID, date)
	switch {
	case err == nil:
		current = log.Status
	case apperrors.Is(err, apperrors.ErrNotFound):
		if date == today {
			// a missing habit is reported by ToggleCompletion
			if habit, err := s.store.GetHabit(habitID); err == nil {
				current = habit.Completed
			}
		}
	default:
		logger.Error("Failed to read habit log", "id", habitID, "date", date, "error", err)
		return models.Fail(err.Error())
	}
	return s.ToggleCompletion(habitID, current, date)
}

// Reconcile resets every habit's completed flag from today's logs, so a
// flag set yesterday does not survive into a new day.
func (s *Service) Reconcile() int64 {
	today := s.clock.Today()
	changed, err := s.store.ReconcileCompletedFlags(today)
	if err != nil {
		logger.Error("Failed to reconcile completed flags", "today", today, "error", err)
		return 0
	}
	if changed > 0 {
		logger.Info("Reconciled completed flags", "today", today, "changed", changed)
	}
	return changed
}
