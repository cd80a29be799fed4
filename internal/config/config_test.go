package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 8080
database:
  dsn: "host=localhost user=auth dbname=auth"
redis:
  addr: "localhost:6379"
jwt:
  secret: "file-secret"
  issuer: "admingate"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.IntermediateTTL != 10*time.Minute {
		t.Errorf("intermediate TTL default = %v", cfg.IntermediateTTL)
	}
	if cfg.AccessTTL != 7*24*time.Hour {
		t.Errorf("access TTL default = %v", cfg.AccessTTL)
	}
	if cfg.CodeTTL != 5*time.Minute || cfg.CodeLength != 6 {
		t.Errorf("code defaults = %v / %d", cfg.CodeTTL, cfg.CodeLength)
	}
	if cfg.LoginLimit.Max != 100 || cfg.LoginLimit.Window != 15*time.Minute {
		t.Errorf("login limit defaults = %+v", cfg.LoginLimit)
	}
	if cfg.ResetLimit.Max != 3 || cfg.ResetLimit.Window != time.Hour {
		t.Errorf("reset limit defaults = %+v", cfg.ResetLimit)
	}
	if cfg.MinSecretLength != 6 {
		t.Errorf("min secret length = %d", cfg.MinSecretLength)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("jwt secret = %s", cfg.JWTSecret)
	}
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
app:
  port: 9090
  gin_mode: release
jwt:
  secret: "s"
  intermediate_ttl: "15m"
  access_ttl: "24h"
code:
  ttl: "2m"
  length: 8
rate_limit:
  reset:
    window: "30m"
    max: 5
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" || cfg.GinMode != "release" {
		t.Errorf("app settings = %s / %s", cfg.Port, cfg.GinMode)
	}
	if cfg.IntermediateTTL != 15*time.Minute || cfg.AccessTTL != 24*time.Hour {
		t.Errorf("token TTLs = %v / %v", cfg.IntermediateTTL, cfg.AccessTTL)
	}
	if cfg.CodeTTL != 2*time.Minute || cfg.CodeLength != 8 {
		t.Errorf("code settings = %v / %d", cfg.CodeTTL, cfg.CodeLength)
	}
	if cfg.ResetLimit.Window != 30*time.Minute || cfg.ResetLimit.Max != 5 {
		t.Errorf("reset limit = %+v", cfg.ResetLimit)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "file-secret"
database:
  dsn: "file-dsn"
bootstrap:
  admin_email: "file@example.com"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "env-dsn")
	t.Setenv("ADMIN_EMAIL", "env@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("jwt secret = %s", cfg.JWTSecret)
	}
	if cfg.DSN != "env-dsn" {
		t.Errorf("dsn = %s", cfg.DSN)
	}
	if cfg.AdminEmail != "env@example.com" {
		t.Errorf("admin email = %s", cfg.AdminEmail)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yml"))
		if _, err := Load(); err == nil {
			t.Error("expected an error for a missing config file")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeConfigFile(t, `
jwt:
  intermediate_ttl: "not-a-duration"
`)
		t.Setenv("CONFIG_PATH", path)
		if _, err := Load(); err == nil {
			t.Error("expected an error for a malformed duration")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeConfigFile(t, "app: [unclosed")
		t.Setenv("CONFIG_PATH", path)
		if _, err := Load(); err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
}
