package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/conquista/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != filepath.Join(dir, constants.DefaultDBName) {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.Locale != constants.DefaultLocale {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.Analytics.Scope != constants.ScopeUser {
		t.Errorf("Analytics.Scope = %q", cfg.Analytics.Scope)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := `database: /tmp/habits.db
timezone: America/Sao_Paulo
locale: pt-BR
analytics:
  scope: global
`
	if err := os.WriteFile(Path(dir), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "/tmp/habits.db" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.Locale != "pt-BR" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.Analytics.Scope != constants.ScopeGlobal {
		t.Errorf("Analytics.Scope = %q", cfg.Analytics.Scope)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.Locale != constants.DefaultLocale || cfg.Analytics.Scope != constants.ScopeUser {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("database: /from/file.db\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDatabase, "/from/env.db")
	t.Setenv(EnvTimezone, "UTC")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "/from/env.db" {
		t.Errorf("Database = %q, want env value", cfg.Database)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Debug should be set from env")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "database: [unterminated\n", "failed to parse"},
		{"bad timezone", "timezone: Mars/Olympus\n", "invalid timezone"},
		{"bad locale", "locale: klingon\n", "unsupported locale"},
		{"bad scope", "analytics:\n  scope: team\n", "invalid analytics scope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := Default(dir)
	cfg.Locale = "pt-BR"
	cfg.Analytics.Scope = constants.ScopeGlobal

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Locale != "pt-BR" || loaded.Analytics.Scope != constants.ScopeGlobal {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.config/conquista")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".config", "conquista") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got, _ := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user form should be left alone: %q", got)
	}
}

func TestUpdateSkipsEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvTimezone, "Asia/Tokyo")

	cfg, err := Update(dir, func(c *Config) {
		c.Locale = "pt-BR"
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, env override should not be saved", cfg.Timezone)
	}

	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Asia/Tokyo") {
		t.Errorf("config file carries env override:\n%s", data)
	}

	if _, err := Update(dir, func(c *Config) { c.Analytics.Scope = "team" }); err == nil {
		t.Error("expected invalid scope to be rejected")
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Locale != "pt-BR" || loaded.Analytics.Scope != constants.ScopeUser {
		t.Errorf("loaded = %+v", loaded)
	}
}
