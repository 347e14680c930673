// Package history rolls completion logs up into per-day counts for the
// calendar view.
package history

import (
	"fmt"
	"time"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/logger"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/storage"
	"github.com/julianstephens/conquista/internal/utils"
)

type Aggregator struct {
	store storage.StatsStore
}

func NewAggregator(store storage.StatsStore) *Aggregator {
	return &Aggregator{store: store}
}

// Calendar maps each day to the number of the user's habits completed on
// it. Days without completions are absent. Returns an empty map on failure.
func (a *Aggregator) Calendar(userID int64) map[string]int {
	counts, err := a.store.CompletionHistory(userID)
	if err != nil {
		logger.Error("Failed to load completion history", "user", userID, "error", err)
		return map[string]int{}
	}
	return counts
}

// Month is Calendar restricted to one calendar month.
func (a *Aggregator) Month(userID int64, year int, month time.Month) map[string]int {
	key := fmt.Sprintf("%04d-%02d", year, int(month))
	from, to, err := utils.MonthBounds(key)
	if err != nil {
		logger.Error("Invalid history month", "month", key, "error", err)
		return map[string]int{}
	}

	counts, err := a.store.CompletionCounts(models.UserScope(userID), from, to)
	if err != nil {
		logger.Error("Failed to load month history", "user", userID, "month", key, "error", err)
		return map[string]int{}
	}
	return counts
}

// Day returns how many of the user's habits were completed on day.
func (a *Aggregator) Day(userID int64, day string) int {
	n, err := a.store.CountCompletedOn(models.UserScope(userID), day)
	if err != nil {
		logger.Error("Failed to count completions", "user", userID, "day", day, "error", err)
		return 0
	}
	return n
}

// ParseMonth parses YYYY-MM. An empty string means the month containing today.
func ParseMonth(s, today string) (int, time.Month, error) {
	if s == "" {
		if len(today) < len(constants.MonthFormat) {
			return 0, 0, fmt.Errorf("invalid day %q", today)
		}
		s = today[:len(constants.MonthFormat)]
	}
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}
