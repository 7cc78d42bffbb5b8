package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8081" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("expected redis cache disabled without an address")
	}
	if got := cfg.Planner.CalendarCacheTTL; got != 24*time.Hour {
		t.Fatalf("expected calendar ttl 24h, got %v", got)
	}
	if cfg.Planner.BudgetFitPasses != 4 {
		t.Fatalf("expected 4 fit passes, got %d", cfg.Planner.BudgetFitPasses)
	}
	if cfg.DB.DSN() != "/tmp/plan.db?_foreign_keys=on&_journal_mode=WAL" {
		t.Fatalf("unexpected dsn %q", cfg.DB.DSN())
	}
}

func TestLoad_RedisAndPlannerOverrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRedisAddr, "localhost:6379")
	t.Setenv(EnvCalendarTTL, "30m")
	t.Setenv(EnvCORSOrigins, "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("expected redis cache enabled")
	}
	if cfg.Planner.CalendarCacheTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.Planner.CalendarCacheTTL)
	}
	if len(cfg.App.CORSOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.App.CORSOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsZeroFitPasses(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvFitPasses, "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid fit passes to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvDBPath, "/tmp/plan.db")
	t.Setenv(EnvRedisAddr, "")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func TestDBConfigDSNKeepsExplicitQuery(t *testing.T) {
	cfg := DBConfig{Path: "file::memory:?cache=shared"}
	if cfg.DSN() != "file::memory:?cache=shared" {
		t.Fatalf("unexpected dsn %q", cfg.DSN())
	}
}
