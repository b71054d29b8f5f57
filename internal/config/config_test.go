package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Name != "schedman" {
		t.Errorf("App.Name = %q, want schedman", cfg.App.Name)
	}
	if cfg.App.Port != 7015 {
		t.Errorf("App.Port = %d, want 7015", cfg.App.Port)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.Engine.StandardWeeklyHours != 40.0 {
		t.Errorf("Engine.StandardWeeklyHours = %f, want 40", cfg.Engine.StandardWeeklyHours)
	}
	if cfg.Engine.MinRestHours != 8.0 {
		t.Errorf("Engine.MinRestHours = %f, want 8", cfg.Engine.MinRestHours)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics defaults: %+v", cfg.Metrics)
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("Database.ConnMaxLifetime = %v, want 5m", cfg.Database.ConnMaxLifetime)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("ENGINE_MIN_REST_HOURS", "11.5")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("APP_ENV=production should be reflected")
	}
	if cfg.App.Port != 8080 {
		t.Errorf("App.Port = %d, want 8080", cfg.App.Port)
	}
	if cfg.Engine.MinRestHours != 11.5 {
		t.Errorf("Engine.MinRestHours = %f, want 11.5", cfg.Engine.MinRestHours)
	}
	if cfg.Metrics.Enabled {
		t.Error("METRICS_ENABLED=false should disable metrics")
	}
	if cfg.Database.ConnMaxLifetime != 90*time.Second {
		t.Errorf("Database.ConnMaxLifetime = %v, want 90s", cfg.Database.ConnMaxLifetime)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("ENGINE_MIN_REST_HOURS", "eleven")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.App.Port != 7015 {
		t.Errorf("invalid APP_PORT should fall back to 7015, got %d", cfg.App.Port)
	}
	if cfg.Engine.MinRestHours != 8.0 {
		t.Errorf("invalid ENGINE_MIN_REST_HOURS should fall back to 8, got %f", cfg.Engine.MinRestHours)
	}
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: 5433,
		Name: "schedman", User: "svc", Password: "secret", SSLMode: "require",
	}
	want := "host=db.internal port=5433 user=svc password=secret dbname=schedman sslmode=require"
	if got := db.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
