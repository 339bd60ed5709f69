// Package config loads runtime settings from the environment (optionally
// seeded from a .env file) and validates them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Word source backends.
const (
	SourceList   = "list"
	SourceDaily  = "daily"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// Config holds the server's runtime configuration.
type Config struct {
	Port     string
	LogLevel string
	Env      string // "production" enables secure cookies and JSON logs
	DBPath   string

	ClientOrigin   string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string

	WordSource     string
	WordAPIURL     string
	WordAPITimeout time.Duration
	DailySalt      string
	AnswersFile    string
	AllowedFile    string
	StrictGuesses  bool

	SessionCapacity int
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads .env (if present) and the process environment, applies
// defaults, and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	var problems []string

	cfg := &Config{
		Port:         envStr("PORT", "5175"),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		Env:          envStr("APP_ENV", envStr("NODE_ENV", "development")),
		DBPath:       envStr("DB_PATH", "./data/app.db"),
		ClientOrigin: envStr("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:    envStr("JWT_SECRET", "dev_secret_change_me"),
		CookieName:   envStr("COOKIE_NAME", "wordle_token"),
		WordSource:   strings.ToLower(envStr("WORD_SOURCE", SourceList)),
		WordAPIURL:   envStr("WORD_API_URL", "https://random-word-api.herokuapp.com/word?length=5"),
		DailySalt:    envStr("DAILY_SALT", "local_dev_salt"),
		AnswersFile:  os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:  os.Getenv("WORDS_ALLOWED_FILE"),
	}

	var err error
	if cfg.JWTExpiresDays, err = envInt("JWT_EXPIRES_DAYS", 14); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.SessionCapacity, err = envInt("SESSION_CAPACITY", 10000); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.WordAPITimeout, err = envDuration("WORD_API_TIMEOUT", 5*time.Second); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.StrictGuesses, err = envBool("STRICT_GUESSES", true); err != nil {
		problems = append(problems, err.Error())
	}

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func (c *Config) validate() []string {
	var problems []string
	switch c.WordSource {
	case SourceList, SourceDaily, SourceSQLite, SourceHTTP:
	default:
		problems = append(problems, fmt.Sprintf("WORD_SOURCE %q must be one of list, daily, sqlite, http", c.WordSource))
	}
	if c.WordSource == SourceHTTP && c.WordAPIURL == "" {
		problems = append(problems, "WORD_API_URL is required when WORD_SOURCE=http")
	}
	if c.JWTExpiresDays <= 0 {
		problems = append(problems, "JWT_EXPIRES_DAYS must be positive")
	}
	if c.SessionCapacity <= 0 {
		problems = append(problems, "SESSION_CAPACITY must be positive")
	}
	if c.Production() && c.JWTSecret == "dev_secret_change_me" {
		problems = append(problems, "JWT_SECRET must be set in production")
	}
	return problems
}

// envStr returns the value of k or def if unset/empty.
func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", k, v)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", k, v)
	}
	return b, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", k, v)
	}
	return d, nil
}
