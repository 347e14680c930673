package models

// DayActivity is the number of completions on one day of the weekly series
type DayActivity struct {
	Day      string `json:"day"`       // localized weekday label
	Count    int    `json:"count"`     // completions on FullDate
	FullDate string `json:"full_date"` // YYYY-MM-DD format
}

// DashboardStats is the metrics bundle recomputed on every request
type DashboardStats struct {
	Streak         int           `json:"streak"`
	BestStreak     int           `json:"best_streak"`
	Level          int           `json:"level"`
	XP             int           `json:"xp"`
	XPToNextLevel  int           `json:"xp_to_next_level"`
	WeeklyActivity []DayActivity `json:"weekly_activity"`
	WeeklyAverage  int           `json:"weekly_average"`
	TotalCompleted int           `json:"total_completed"`
}

// EmptyDashboard is returned when the metrics cannot be computed.
func EmptyDashboard() DashboardStats {
	return DashboardStats{
		Level:          1,
		XPToNextLevel:  100,
		WeeklyActivity: []DayActivity{},
	}
}

// UserStats counts a user's habits and how many are done today
type UserStats struct {
	TotalHabits    int `json:"total_habits"`
	CompletedToday int `json:"completed_today"`
}

// DetailedStats backs the statistics view
type DetailedStats struct {
	ActiveHabits   int           `json:"active_habits"`
	CompletedToday int           `json:"completed_today"`
	TotalCompleted int           `json:"total_completed"`
	BestStreak     int           `json:"best_streak"`
	WeeklyActivity []DayActivity `json:"weekly_activity"`
}

// Scope selects whose completion logs an aggregate reads
type Scope struct {
	UserID   int64
	AllUsers bool
}

// UserScope restricts aggregates to logs of habits owned by userID.
func UserScope(userID int64) Scope {
	return Scope{UserID: userID}
}

// GlobalScope reads every log in the store regardless of owner.
func GlobalScope() Scope {
	return Scope{AllUsers: true}
}
