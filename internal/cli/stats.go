package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/conquista/internal/models"
)

type StatsCmd struct {
	Detailed bool `help:"Show the detailed statistics view."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	if c.Detailed {
		d := ctx.Analytics.DetailedStats(user.ID)
		ctx.println(headerStyle.Render("Statistics for " + user.Username))
		ctx.println(stat("Today", fmt.Sprintf("%d of %d habits", d.CompletedToday, d.ActiveHabits)))
		ctx.println(stat("Best streak", days(d.BestStreak)))
		ctx.println(stat("Total", fmt.Sprintf("%d completed", d.TotalCompleted)))
		ctx.println()
		ctx.printWeekly(d.WeeklyActivity)
		return nil
	}

	s := ctx.Analytics.Dashboard(user.ID)
	ctx.println(headerStyle.Render("Progress for " + user.Username))
	ctx.println(stat("Streak", days(s.Streak)))
	ctx.println(stat("Best streak", days(s.BestStreak)))
	ctx.println(stat("Level", fmt.Sprintf("%d (%d XP to next)", s.Level, s.XPToNextLevel)))
	ctx.println(stat("XP", s.XP))
	ctx.println(stat("Completed", s.TotalCompleted))
	ctx.println(stat("Weekly average", fmt.Sprintf("%d per day", s.WeeklyAverage)))
	ctx.println()
	ctx.printWeekly(s.WeeklyActivity)
	return nil
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func (c *Context) printWeekly(week []models.DayActivity) {
	c.println(headerStyle.Render("Last 7 days"))
	if len(week) == 0 {
		c.println(mutedStyle.Render("No activity available."))
		return
	}
	for _, d := range week {
		bar := mutedStyle.Render("·")
		if d.Count > 0 {
			bar = barStyle.Render(strings.Repeat("█", d.Count))
		}
		c.printf("%-4s %s %s %s\n", d.Day, mutedStyle.Render(d.FullDate), bar, valueStyle.Render(fmt.Sprint(d.Count)))
	}
}
