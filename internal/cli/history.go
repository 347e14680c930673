package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/history"
	"github.com/julianstephens/conquista/internal/utils"
)

type HistoryCmd struct {
	Month string `help:"Month to show in YYYY-MM format (default: current month)." default:""`
	Date  string `help:"Show the completion count for a single day (YYYY-MM-DD)." default:""`
	All   bool   `help:"List every day with completions, newest first."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	if c.Date != "" {
		if !utils.ValidateDate(c.Date) {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
		ctx.printf("%s: %d habit(s) completed\n", c.Date, ctx.History.Day(user.ID, c.Date))
		return nil
	}

	if c.All {
		ctx.printAllHistory(ctx.History.Calendar(user.ID))
		return nil
	}

	year, month, err := history.ParseMonth(c.Month, ctx.Habits.Today())
	if err != nil {
		return err
	}
	counts := ctx.History.Month(user.ID, year, month)
	ctx.printCalendar(year, month, counts)
	return nil
}

// printAllHistory lists each day with completions, newest first.
func (c *Context) printAllHistory(counts map[string]int) {
	c.println(headerStyle.Render("Completion history"))
	if len(counts) == 0 {
		c.println(mutedStyle.Render("No completions yet."))
		return
	}
	days := make([]string, 0, len(counts))
	total := 0
	for day, n := range counts {
		days = append(days, day)
		total += n
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	for _, day := range days {
		c.printf("%s %s %s\n", mutedStyle.Render(day),
			barStyle.Render(strings.Repeat("█", counts[day])), valueStyle.Render(fmt.Sprint(counts[day])))
	}
	c.printf("\n%d completion(s) over %d day(s)\n", total, len(days))
}

// printCalendar renders a month grid, Sunday first, with per-day counts.
func (c *Context) printCalendar(year int, month time.Month, counts map[string]int) {
	labels, ok := constants.WeekdayLabels[c.Config.Locale]
	if !ok {
		labels = constants.WeekdayLabels[constants.DefaultLocale]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	c.println(headerStyle.Render(first.Format("January 2006")))

	header := make([]string, len(labels))
	for i, l := range labels {
		header[i] = fmt.Sprintf("%-5s", l)
	}
	c.println(mutedStyle.Render(strings.TrimRight(strings.Join(header, ""), " ")))

	var line strings.Builder
	line.WriteString(strings.Repeat("     ", int(first.Weekday())))
	total := 0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		n := counts[d.Format(constants.DateFormat)]
		total += n
		cell := fmt.Sprintf("%2d", d.Day())
		if n > 0 {
			cell = doneStyle.Render(cell) + barStyle.Render(fmt.Sprintf("%-3s", "•"+fmt.Sprint(n)))
		} else {
			cell = pendingStyle.Render(cell) + "   "
		}
		line.WriteString(cell)
		if d.Weekday() == time.Saturday {
			c.println(strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	if line.Len() > 0 {
		c.println(strings.TrimRight(line.String(), " "))
	}
	c.printf("\n%d completion(s) in %s\n", total, first.Format(constants.MonthFormat))
}
