package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port          string // listen port
	DBPath        string // SQLite database file
	TemplateDir   string // server-rendered view templates
	StaticDir     string // static assets
	SecureCookies bool   // set Secure on session cookies (behind TLS)
	AdminUser     string // optional user bootstrapped at startup
	AdminPassword string
}

// Load reads configuration from the environment. Precedence:
// environment variables > .env file > defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "timekeep.db"),
		TemplateDir:   get("TEMPLATE_DIR", "web/templates"),
		StaticDir:     get("STATIC_DIR", "web/static"),
		SecureCookies: os.Getenv("SECURE_COOKIES") == "true",
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
