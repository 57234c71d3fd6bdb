package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable Load reads.
const EnvPrefix = "TASKPAD_"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultLoginTimeout bounds a login request.
const DefaultLoginTimeout = 5 * time.Second

// Config defines server and client configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	API       APIConfig       `yaml:"api"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Backend   string `yaml:"backend"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path is a log file, or a directory that receives taskpad-<backend>.log.
	// Empty logs to the console.
	Path string `yaml:"path"`
}

// SlogLevel parses Level. Validate has already rejected unknown names.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type APIConfig struct {
	// BaseURL is empty to serve the API in-process.
	BaseURL      string        `yaml:"base_url"`
	LoginTimeout time.Duration `yaml:"login_timeout"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend:   BackendSQLite,
			Path:      "taskpad.db",
			RedisAddr: "localhost:6379",
			KeyPrefix: "taskpad:",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		API: APIConfig{
			LoginTimeout: DefaultLoginTimeout,
		},
		RateLimit: RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file, an optional
// .env file in the working directory and environment variables, in that
// order. Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values and non-positive limits.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("invalid store backend %q", c.Store.Backend)
	}
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.API.LoginTimeout <= 0 {
		return fmt.Errorf("invalid api login timeout %s", c.API.LoginTimeout)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv(EnvPrefix + "SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if err := envInt("SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if backend := os.Getenv(EnvPrefix + "STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	// DB_PATH is accepted for the sqlite path as well.
	if path := os.Getenv(EnvPrefix + "DB_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if path := os.Getenv(EnvPrefix + "STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if addr := os.Getenv(EnvPrefix + "STORE_REDIS_ADDR"); addr != "" {
		cfg.Store.RedisAddr = addr
	}
	if err := envInt("STORE_REDIS_DB", &cfg.Store.RedisDB); err != nil {
		return err
	}
	if prefix, ok := os.LookupEnv(EnvPrefix + "STORE_KEY_PREFIX"); ok {
		cfg.Store.KeyPrefix = prefix
	}
	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv(EnvPrefix + "LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if mode := os.Getenv(EnvPrefix + "TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if baseURL, ok := os.LookupEnv(EnvPrefix + "API_BASE_URL"); ok {
		cfg.API.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if raw := os.Getenv(EnvPrefix + "API_LOGIN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %sAPI_LOGIN_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.API.LoginTimeout = d
	}
	if raw := os.Getenv(EnvPrefix + "RATE_LIMIT_RPS"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %sRATE_LIMIT_RPS: %w", EnvPrefix, err)
		}
		cfg.RateLimit.RPS = rps
	}
	if err := envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst); err != nil {
		return err
	}
	if raw := os.Getenv(EnvPrefix + "CORS_ALLOWED_ORIGINS"); raw != "" {
		cfg.CORS.AllowedOrigins = splitList(raw)
	}
	return nil
}

func envInt(name string, dst *int) error {
	raw := os.Getenv(EnvPrefix + name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
