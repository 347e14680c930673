package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/conquista/internal/config"
	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/keyring"
	"github.com/julianstephens/conquista/internal/storage/postgres"
)

type ConfigCmd struct {
	Set             ConfigSetCmd             `cmd:"" help:"Change timezone, locale or analytics scope in config.yaml."`
	SetConnection   ConfigSetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	ClearConnection ConfigClearConnectionCmd `cmd:"" help:"Remove the stored PostgreSQL connection string."`
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string, password included."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	// the keyring is encrypted, so an embedded password is expected here
	if err := postgres.ValidateConnString(c.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	ctx.printf("%s Connection string stored in the OS keyring\n", doneStyle.Render("✓"))
	ctx.println("  Point 'database' in config.yaml at a password-free postgres:// URL to use it.")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	ctx.printf("%s Connection string deleted from the OS keyring\n", doneStyle.Render("✓"))
	return nil
}

type ConfigSetCmd struct {
	Timezone string `help:"IANA timezone used for \"today\", or Local." default:""`
	Locale   string `help:"Weekday label locale (en, pt-BR)." default:""`
	Scope    string `help:"Analytics scope: user or global." default:""`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	if c.Timezone == "" && c.Locale == "" && c.Scope == "" {
		return errors.New("nothing to set: pass --timezone, --locale or --scope")
	}
	cfg, err := config.Update(ctx.Config.Dir, func(cfg *config.Config) {
		if c.Timezone != "" {
			cfg.Timezone = c.Timezone
		}
		if c.Locale != "" {
			cfg.Locale = c.Locale
		}
		if c.Scope != "" {
			cfg.Analytics.Scope = constants.AnalyticsScope(c.Scope)
		}
	})
	if err != nil {
		return err
	}
	ctx.printf("%s Saved %s\n", doneStyle.Render("✓"), config.Path(cfg.Dir))
	ctx.println(stat("Timezone", cfg.Timezone))
	ctx.println(stat("Locale", cfg.Locale))
	ctx.println(stat("Scope", cfg.Analytics.Scope))
	return nil
}
