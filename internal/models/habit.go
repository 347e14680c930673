package models

import (
	"strings"

	"github.com/julianstephens/conquista/internal/constants"
)

// Habit represents a practice a user wants to repeat
type Habit struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"user_id"`
	Title     string              `json:"title"`
	Icon      string              `json:"icon"`
	Color     string              `json:"color"`
	Frequency constants.Frequency `json:"frequency"`
	Category  string              `json:"category"`
	Goal      string              `json:"goal"`
	Notes     string              `json:"notes"`
	StartDate *string             `json:"start_date,omitempty"` // YYYY-MM-DD format, inclusive

	// Completed is today's status only. Historical views read HabitLog.
	Completed bool `json:"completed"`
}

// HabitFields carries user input for a new habit. Empty fields take defaults.
type HabitFields struct {
	Title     string
	Icon      string
	Color     string
	Frequency constants.Frequency
	Category  string
	Goal      string
	Notes     string
	StartDate string
}

// HabitLog is the completion record of a habit on a single day
type HabitLog struct {
	ID      int64  `json:"id"`
	HabitID int64  `json:"habit_id"`
	Date    string `json:"date"` // YYYY-MM-DD format
	Status  bool   `json:"status"`
}

// ParseFrequency maps user input onto a known frequency, case-insensitively.
func ParseFrequency(s string) (constants.Frequency, bool) {
	for _, f := range []constants.Frequency{
		constants.FrequencyDaily,
		constants.FrequencyWeekly,
		constants.FrequencyMonthly,
	} {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, true
		}
	}
	return "", false
}
