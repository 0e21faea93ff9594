package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr      string
	AllowedOrigin string

	// Auth / Security
	JWTSecret       string
	SessionTokenTTL time.Duration
	VerifyTokenTTL  time.Duration
	ResetTokenTTL   time.Duration
	BcryptCost      int

	// Public base URL used to construct verification / reset links
	AppBaseURL string

	// Infrastructure
	DBAddr string

	// Mail transport
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPTimeout  time.Duration
	SMTPInsecure bool

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Load reads configuration from the environment, failing fast on anything
// the service cannot run without. In dev a .env file is honored.
func Load() (*Config, error) {
	// best effort; absent .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Env:           getEnv("ENV", "dev"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg.AppBaseURL = os.Getenv("APP_BASE_URL")
	if cfg.AppBaseURL == "" {
		return nil, fmt.Errorf("missing required env var: APP_BASE_URL")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// optional with defaults
	ttl, err := getDuration("SESSION_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTokenTTL = ttl

	vtl, err := getDuration("VERIFY_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.VerifyTokenTTL = vtl

	rtl, err := getDuration("RESET_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.ResetTokenTTL = rtl

	cost, err := getInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = cost

	// Mail transport. Host is required outside dev; dev falls back to the
	// fake sender when unset.
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" && cfg.Env != "dev" {
		return nil, fmt.Errorf("missing required env var: SMTP_HOST")
	}
	port, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPUser)
	st, err := getDuration("SMTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.SMTPTimeout = st
	cfg.SMTPInsecure = getEnv("SMTP_INSECURE", "false") == "true"

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
