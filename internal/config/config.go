package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env      string         `yaml:"env"`
	LogLevel string         `yaml:"log_level"`
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Sessions SessionsConfig `yaml:"sessions"`
	Workouts WorkoutsConfig `yaml:"workouts"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr"`
	SlowRequestMs int    `yaml:"slow_request_ms"`
}

type SecurityConfig struct {
	// CSRFKey is 64 hex characters (32 bytes).
	CSRFKey            string   `yaml:"csrf_key"`
	TrustedOrigins     []string `yaml:"trusted_origins"`
	RateLimitPerSecond int      `yaml:"rate_limit_per_second"`
}

type SessionsConfig struct {
	TTL time.Duration `yaml:"ttl"`
	// Max caps the live page sessions; the least recently seen is evicted first.
	Max int `yaml:"max"`
}

type WorkoutsConfig struct {
	FreeGenerations int `yaml:"free_generations"`
}

// Defaults shared with the page session store and the workout generator.
const (
	DefaultSessionTTL      = 2 * time.Hour
	DefaultMaxSessions     = 10000
	DefaultFreeGenerations = 2
)

// defaultLogLevel is the level used when log_level is not set.
func defaultLogLevel(env string) string {
	if env == EnvProduction {
		return "info"
	}
	return "debug"
}

// Default returns the development configuration.
func Default() *Config {
	return &Config{
		Env:      EnvDevelopment,
		LogLevel: defaultLogLevel(EnvDevelopment),
		Server: ServerConfig{
			Addr:          ":8080",
			SlowRequestMs: 200,
		},
		Security: SecurityConfig{
			TrustedOrigins:     []string{"localhost:8080", "127.0.0.1:8080"},
			RateLimitPerSecond: 10,
		},
		Sessions: SessionsConfig{TTL: DefaultSessionTTL, Max: DefaultMaxSessions},
		Workouts: WorkoutsConfig{FreeGenerations: DefaultFreeGenerations},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then a .env file in the working directory (if present),
// then environment variables. Env vars use the prefix STUDIO_:
//
//	STUDIO_ENV, STUDIO_LOG_LEVEL, STUDIO_ADDR, STUDIO_SLOW_REQUEST_MS,
//	STUDIO_CSRF_KEY, STUDIO_TRUSTED_ORIGINS (comma-separated),
//	STUDIO_RATE_LIMIT, STUDIO_SESSION_TTL, STUDIO_SESSION_MAX,
//	STUDIO_FREE_GENERATIONS
//
// An unset log level follows the final env: info in production, debug otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.LogLevel = ""

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	applyEnvOverrides(cfg)
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel(cfg.Env)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STUDIO_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("STUDIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STUDIO_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("STUDIO_SLOW_REQUEST_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.SlowRequestMs = n
		}
	}
	if v := os.Getenv("STUDIO_CSRF_KEY"); v != "" {
		cfg.Security.CSRFKey = v
	}
	if v := os.Getenv("STUDIO_TRUSTED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Security.TrustedOrigins = origins
	}
	if v := os.Getenv("STUDIO_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.RateLimitPerSecond = n
		}
	}
	if v := os.Getenv("STUDIO_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sessions.TTL = d
		}
	}
	if v := os.Getenv("STUDIO_SESSION_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sessions.Max = n
		}
	}
	if v := os.Getenv("STUDIO_FREE_GENERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workouts.FreeGenerations = n
		}
	}
}

func (c *Config) validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Security.CSRFKey == "" && c.IsProduction() {
		return fmt.Errorf("security.csrf_key is required in production")
	}
	if c.Security.CSRFKey != "" {
		if _, err := decodeKey(c.Security.CSRFKey); err != nil {
			return err
		}
	}
	if c.Security.RateLimitPerSecond <= 0 {
		return fmt.Errorf("security.rate_limit_per_second must be positive")
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("sessions.ttl must be positive")
	}
	if c.Sessions.Max <= 0 {
		return fmt.Errorf("sessions.max must be positive")
	}
	if c.Workouts.FreeGenerations < 0 {
		return fmt.Errorf("workouts.free_generations cannot be negative")
	}
	return nil
}

// IsProduction reports whether the site runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

// CSRFKeyBytes returns the CSRF secret. Outside production an unset key
// yields a random one, so form tokens won't survive a restart.
func (c *Config) CSRFKeyBytes() ([]byte, error) {
	if c.Security.CSRFKey != "" {
		return decodeKey(c.Security.CSRFKey)
	}
	if c.IsProduction() {
		return nil, fmt.Errorf("security.csrf_key is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating CSRF key: %w", err)
	}
	slog.Warn("random_csrf_key", "hint", "set STUDIO_CSRF_KEY so form tokens survive restarts")
	return key, nil
}

func decodeKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, fmt.Errorf("security.csrf_key must be 64 hex characters (32 bytes)")
	}
	return key, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}
