package cli

import (
	"fmt"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/models"
	"github.com/julianstephens/conquista/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List active habits." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done for a day."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Icon      string `help:"Icon name." default:""`
	Color     string `help:"Color as #RRGGBB." default:""`
	Frequency string `help:"Daily, Weekly or Monthly." default:""`
	Category  string `help:"Category." default:""`
	Goal      string `help:"Goal description." default:""`
	Notes     string `help:"Free-form notes." default:""`
	Start     string `help:"Start date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	res := ctx.Habits.CreateHabit(user.ID, models.HabitFields{
		Title:     c.Title,
		Icon:      c.Icon,
		Color:     c.Color,
		Frequency: constants.Frequency(c.Frequency),
		Category:  c.Category,
		Goal:      c.Goal,
		Notes:     c.Notes,
		StartDate: c.Start,
	})
	if err := resultErr(res); err != nil {
		return err
	}
	ctx.printf("%s Added habit %q (%s)\n", doneStyle.Render("✓"), c.Title, res.Message)
	return nil
}

type HabitListCmd struct {
	Date string `help:"Show completion for a past day (YYYY-MM-DD) instead of today." default:""`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	day := c.Date
	var list []models.Habit
	if day == "" {
		day = ctx.Habits.Today()
		list = ctx.Habits.ListActiveHabits(user.ID, day)
	} else {
		if !utils.ValidateDate(day) {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
		}
		list = ctx.Habits.ListHabitsForDate(user.ID, day)
	}

	ctx.println(headerStyle.Render("Habits for " + day))
	if len(list) == 0 {
		ctx.println(mutedStyle.Render("No habits found. Add one with 'conquista habit add'."))
		return nil
	}
	for _, h := range list {
		mark := pendingStyle.Render("[ ]")
		if h.Completed {
			mark = doneStyle.Render("[x]")
		}
		ctx.printf("%s %4d  %s %s\n", mark, h.ID, h.Title,
			mutedStyle.Render(fmt.Sprintf("(%s, %s)", h.Category, h.Frequency)))
	}
	return nil
}

type HabitToggleCmd struct {
	ID   int64  `arg:"" help:"Habit ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if _, err := ctx.ownedHabit(user, c.ID); err != nil {
		return err
	}

	res := ctx.Habits.Toggle(c.ID, c.Date)
	if err := resultErr(res); err != nil {
		return err
	}
	ctx.printf("%s %s\n", doneStyle.Render("✓"), res.Message)
	return nil
}

type HabitDeleteCmd struct {
	ID  int64 `arg:"" help:"Habit ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	habit, err := ctx.ownedHabit(user, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its whole history?", habit.Title))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	res := ctx.Habits.DeleteHabit(c.ID)
	if err := resultErr(res); err != nil {
		return err
	}
	ctx.printf("%s Deleted habit %q\n", doneStyle.Render("✓"), habit.Title)
	return nil
}
