package constants

// Frequency is how often a habit is meant to be performed
type Frequency string

// AnalyticsScope selects which logs feed streak, XP and weekly activity
type AnalyticsScope string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"

	// Habit defaults applied on creation
	DefaultHabitIcon      = "check-circle"
	DefaultHabitColor     = "#4ade80"
	DefaultHabitFrequency = FrequencyDaily
	DefaultHabitCategory  = "General"

	// Progression
	XPPerCompletion = 10
	XPPerLevel      = 100
	WeeklyWindow    = 7

	ScopeUser   AnalyticsScope = "user"
	ScopeGlobal AnalyticsScope = "global"

	DefaultLocale   = "en"
	DefaultTimezone = "Local"
)

// WeekdayLabels holds short day-of-week labels per locale, indexed by time.Weekday
var WeekdayLabels = map[string][7]string{
	"en":    {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"pt-BR": {"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"},
}
