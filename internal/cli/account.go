package cli

import (
	"errors"
	"strings"

	"github.com/julianstephens/conquista/internal/session"
)

type RegisterCmd struct {
	Username string `help:"Account name (prompted when omitted)."`
	Password string `help:"Account password (prompted when omitted)." env:"CONQUISTA_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	username, err := ctx.ask(strings.TrimSpace(c.Username), "Username", false)
	if err != nil {
		return err
	}
	password, err := ctx.ask(c.Password, "Password", true)
	if err != nil {
		return err
	}

	res := ctx.Auth.Register(username, password)
	if err := resultErr(res); err != nil {
		return err
	}
	ctx.printf("%s %s. Log in with 'conquista login --username %s'.\n", doneStyle.Render("✓"), res.Message, strings.TrimSpace(username))
	return nil
}

type LoginCmd struct {
	Username string `help:"Account name (prompted when omitted)."`
	Password string `help:"Account password (prompted when omitted)." env:"CONQUISTA_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	username, err := ctx.ask(strings.TrimSpace(c.Username), "Username", false)
	if err != nil {
		return err
	}
	password, err := ctx.ask(c.Password, "Password", true)
	if err != nil {
		return err
	}

	user, res := ctx.Auth.Login(username, password)
	if err := resultErr(res); err != nil {
		return err
	}
	if _, err := session.Save(ctx.Config.Dir, user); err != nil {
		return err
	}
	ctx.printf("%s %s\n", doneStyle.Render("✓"), res.Message)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := session.Clear(ctx.Config.Dir); err != nil {
		return err
	}
	ctx.println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			ctx.println("Not logged in.")
			return nil
		}
		return err
	}
	stats := ctx.Analytics.UserStats(user.ID)
	ctx.printf("%s (id %d), %d habit(s), %d done today\n",
		valueStyle.Render(user.Username), user.ID, stats.TotalHabits, stats.CompletedToday)
	return nil
}
