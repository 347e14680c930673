// Package analytics derives streaks, XP and weekly activity from completion
// logs. Nothing is cached; every call recomputes from the store.
package analytics

import (
	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/logger"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/storage"
	"github.com/julianstephens/conquista/internal/utils"
)

type Engine struct {
	store  storage.StatsStore
	clock  utils.Clock
	scope  constants.AnalyticsScope
	labels [7]string
}

// NewEngine builds an engine. scope selects whether streak, XP and weekly
// activity read only the user's logs or every log in the store; locale
// picks the weekday labels and falls back to English.
func NewEngine(store storage.StatsStore, clock utils.Clock, scope constants.AnalyticsScope, locale string) *Engine {
	labels, ok := constants.WeekdayLabels[locale]
	if !ok {
		labels = constants.WeekdayLabels[constants.DefaultLocale]
	}
	if scope == "" {
		scope = constants.ScopeUser
	}
	return &Engine{store: store, clock: clock, scope: scope, labels: labels}
}

func (e *Engine) scopeFor(userID int64) models.Scope {
	if e.scope == constants.ScopeGlobal {
		return models.GlobalScope()
	}
	return models.UserScope(userID)
}

// Dashboard computes the metrics bundle for userID. Any storage error
// yields models.EmptyDashboard.
func (e *Engine) Dashboard(userID int64) models.DashboardStats {
	stats, err := e.dashboard(userID)
	if err != nil {
		logger.Error("Failed to compute dashboard stats", "user", userID, "error", err)
		return models.EmptyDashboard()
	}
	return stats
}

func (e *Engine) dashboard(userID int64) (models.DashboardStats, error) {
	today := e.clock.Today()
	scope := e.scopeFor(userID)

	dates, err := e.store.CompletedDates(scope)
	if err != nil {
		return models.DashboardStats{}, err
	}
	total, err := e.store.CountCompleted(scope)
	if err != nil {
		return models.DashboardStats{}, err
	}
	weekly, err := e.weeklyActivity(scope, today)
	if err != nil {
		return models.DashboardStats{}, err
	}

	streak := CurrentStreak(dates, today)
	xp, level, toNext := Progression(total)
	return models.DashboardStats{
		Streak:         streak,
		BestStreak:     max(streak, LongestStreak(dates)),
		Level:          level,
		XP:             xp,
		XPToNextLevel:  toNext,
		WeeklyActivity: weekly,
		WeeklyAverage:  WeeklyAverage(weekly),
		TotalCompleted: total,
	}, nil
}

// weeklyActivity returns one entry per day of the window ending today,
// oldest first.
func (e *Engine) weeklyActivity(scope models.Scope, today string) ([]models.DayActivity, error) {
	from, err := utils.AddDays(today, -(constants.WeeklyWindow - 1))
	if err != nil {
		return nil, err
	}
	counts, err := e.store.CompletionCounts(scope, from, today)
	if err != nil {
		return nil, err
	}

	days := make([]models.DayActivity, 0, constants.WeeklyWindow)
	for i := constants.WeeklyWindow - 1; i >= 0; i-- {
		day, err := utils.AddDays(today, -i)
		if err != nil {
			return nil, err
		}
		t, _ := utils.ParseDate(day)
		days = append(days, models.DayActivity{
			Day:      e.labels[t.Weekday()],
			Count:    counts[day],
			FullDate: day,
		})
	}
	return days, nil
}

// UserStats counts the user's habits and how many are done today.
func (e *Engine) UserStats(userID int64) models.UserStats {
	stats, err := e.userStats(userID)
	if err != nil {
		logger.Error("Failed to count habits", "user", userID, "error", err)
		return models.UserStats{}
	}
	return stats
}

func (e *Engine) userStats(userID int64) (models.UserStats, error) {
	total, err := e.store.CountHabits(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	done, err := e.store.CountCompletedToday(userID)
	if err != nil {
		return models.UserStats{}, err
	}
	return models.UserStats{TotalHabits: total, CompletedToday: done}, nil
}

// DetailedStats backs the statistics view: habit counts plus the best
// streak and weekly series from the dashboard. A failure in either part
// yields the zero bundle.
func (e *Engine) DetailedStats(userID int64) models.DetailedStats {
	empty := models.DetailedStats{WeeklyActivity: []models.DayActivity{}}

	counts, err := e.userStats(userID)
	if err != nil {
		logger.Error("Failed to compute detailed stats", "user", userID, "error", err)
		return empty
	}
	dash, err := e.dashboard(userID)
	if err != nil {
		logger.Error("Failed to compute detailed stats", "user", userID, "error", err)
		return empty
	}

	return models.DetailedStats{
		ActiveHabits:   counts.TotalHabits,
		CompletedToday: counts.CompletedToday,
		TotalCompleted: dash.TotalCompleted,
		BestStreak:     dash.BestStreak,
		WeeklyActivity: dash.WeeklyActivity,
	}
}
