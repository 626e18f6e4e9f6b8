package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBAutoMigrate bool

	JWTSecret        string
	JWTExpiryMinutes int

	CORSAllowedOrigins []string
	LoginRatePerMinute int

	AdminUsername string
	AdminPassword string
}

// LoadEnv reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	env := Env{
		AppAddr: getString("APP_ADDR", ":8080"),
		GinMode: getString("GIN_MODE", ""),

		DBHost:        getString("DB_HOST", "127.0.0.1"),
		DBPort:        getString("DB_PORT", "3306"),
		DBUser:        getString("DB_USER", "root"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getString("DB_NAME", "fleetops"),
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", false),

		JWTSecret:        getString("JWT_SECRET", ""),
		JWTExpiryMinutes: getInt("JWT_EXPIRY_MINUTES", 10080),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),

		AdminUsername: getString("ADMIN_USERNAME", ""),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if env.JWTSecret == "" {
		env.JWTSecret = "change-me-in-production"
		log.Printf("[CONFIG] JWT_SECRET not set, using development default")
	}
	return env
}

func getString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[CONFIG] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
