package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/utils"
)

// parseDays returns the distinct valid days in ascending order. Malformed
// entries are dropped.
func parseDays(dates []string) []time.Time {
	seen := make(map[string]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		t, err := utils.ParseDate(d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func consecutive(earlier, later time.Time) bool {
	return earlier.AddDate(0, 0, 1).Equal(later)
}

// CurrentStreak counts consecutive completed days ending at the most recent
// one, provided that day is today or yesterday. Days after today are ignored.
func CurrentStreak(dates []string, today string) int {
	now, err := utils.ParseDate(today)
	if err != nil {
		return 0
	}

	days := parseDays(dates)
	for len(days) > 0 && days[len(days)-1].After(now) {
		days = days[:len(days)-1]
	}
	if len(days) == 0 {
		return 0
	}

	last := days[len(days)-1]
	if !last.Equal(now) && !consecutive(last, now) {
		return 0
	}

	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if !consecutive(days[i-1], days[i]) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of consecutive days anywhere in dates.
func LongestStreak(dates []string) int {
	days := parseDays(dates)
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if consecutive(days[i-1], days[i]) {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}

// Progression converts a completion count into XP, level and the XP still
// needed to reach the next level.
func Progression(totalCompleted int) (xp, level, toNext int) {
	xp = totalCompleted * constants.XPPerCompletion
	level = xp/constants.XPPerLevel + 1
	toNext = constants.XPPerLevel - xp%constants.XPPerLevel
	return xp, level, toNext
}

// WeeklyAverage is the rounded mean completions per day over the weekly window.
func WeeklyAverage(days []models.DayActivity) int {
	sum := 0
	for _, d := range days {
		sum += d.Count
	}
	return int(math.Round(float64(sum) / constants.WeeklyWindow))
}
