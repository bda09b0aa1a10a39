// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Server
	Env        string
	Debug      bool
	Port       string
	TLSDomains []string

	// SignupRedirect is where the signup form sends the browser after success.
	SignupRedirect string

	// MySQL – used only by cmd/migrate to import legacy users.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "signup")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "signup")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", ":9000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("SIGNUP_REDIRECT", "/welcome")

	cfg := &Config{
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		Env:            strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Debug:          v.GetBool("DEBUG"),
		Port:           v.GetString("PORT"),
		TLSDomains:     splitTrimmed(v.GetString("TLS_DOMAINS")),
		SignupRedirect: v.GetString("SIGNUP_REDIRECT"),
		MySQLDSN:       v.GetString("MYSQL_DSN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// Production reports whether the app runs in production mode.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("config: APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if !strings.HasPrefix(c.SignupRedirect, "/") {
		return fmt.Errorf("config: SIGNUP_REDIRECT must be a local path, got %q", c.SignupRedirect)
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
