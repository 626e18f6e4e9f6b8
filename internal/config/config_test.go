package config

import (
	"strings"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "JWT_EXPIRY_MINUTES", "CORS_ALLOWED_ORIGINS", "DB_AUTO_MIGRATE", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.JWTExpiryMinutes != 10080 {
		t.Fatalf("JWTExpiryMinutes = %d, want 7 days", env.JWTExpiryMinutes)
	}
	if env.DBAutoMigrate {
		t.Fatalf("auto migrate should default to off")
	}
	if env.JWTSecret == "" {
		t.Fatalf("JWT secret should fall back to a development default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "not-a-number")

	env := LoadEnv()
	if env.AppAddr != ":9000" || !env.DBAutoMigrate {
		t.Fatalf("unexpected env %+v", env)
	}
	if len(env.CORSAllowedOrigins) != 2 || env.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", env.CORSAllowedOrigins)
	}
	if env.LoginRatePerMinute != 10 {
		t.Fatalf("invalid int should keep default, got %d", env.LoginRatePerMinute)
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(Env{DBUser: "fleet", DBPassword: "pw", DBHost: "db", DBPort: "3307", DBName: "fleetops"})
	if !strings.HasPrefix(dsn, "fleet:pw@tcp(db:3307)/fleetops?") {
		t.Fatalf("dsn = %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn must enable parseTime: %s", dsn)
	}
}
