package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverJSON     = "json"
	DriverMemory   = "memory"
)

type Config struct {
	Addr    string        `yaml:"addr"`
	Debug   bool          `yaml:"debug"`
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver"`
	SQLitePath   string        `yaml:"sqlite_path"`
	JSONPath     string        `yaml:"json_path"`
	PostgresDSN  string        `yaml:"postgres_dsn"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// MaxLogBodyBytes caps how much of each response body is logged in debug mode.
	MaxLogBodyBytes int `yaml:"max_log_body_bytes"`
}

func Default() Config {
	return Config{
		Addr: ":8080",
		Storage: StorageConfig{
			Driver:       DriverSQLite,
			SQLitePath:   "sheet.db",
			JSONPath:     "sheet.json",
			WriteTimeout: 2 * time.Second,
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeout: 5 * time.Second,
			MaxLogBodyBytes:   512,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path (or
// SHEET_CONFIG when path is empty), then environment variables. A .env file in the
// working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("SHEET_CONFIG")
	}
	if strings.TrimSpace(path) != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverJSON, DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.PostgresDSN) == "" {
			return errors.New("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.WriteTimeout <= 0 {
		return errors.New("storage.write_timeout must be positive")
	}
	if c.HTTP.MaxLogBodyBytes < 0 {
		return errors.New("http.max_log_body_bytes must not be negative")
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Addr = getEnv("SHEET_ADDR", cfg.Addr)
	cfg.Storage.Driver = strings.ToLower(getEnv("SHEET_STORAGE_DRIVER", cfg.Storage.Driver))
	cfg.Storage.SQLitePath = getEnv("SHEET_SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.JSONPath = getEnv("SHEET_JSON_PATH", cfg.Storage.JSONPath)
	cfg.Storage.PostgresDSN = getEnv("SHEET_POSTGRES_DSN", cfg.Storage.PostgresDSN)

	if value, ok := os.LookupEnv("SHEET_DEBUG"); ok {
		cfg.Debug = value == "1" || strings.EqualFold(value, "true")
	}

	var err error
	if cfg.Storage.WriteTimeout, err = durationEnv("SHEET_WRITE_TIMEOUT", cfg.Storage.WriteTimeout); err != nil {
		return err
	}
	if cfg.HTTP.ReadHeaderTimeout, err = durationEnv("SHEET_READ_HEADER_TIMEOUT", cfg.HTTP.ReadHeaderTimeout); err != nil {
		return err
	}
	if value, ok := os.LookupEnv("SHEET_MAX_LOG_BODY_BYTES"); ok {
		parsed, convErr := strconv.Atoi(strings.TrimSpace(value))
		if convErr != nil {
			return fmt.Errorf("SHEET_MAX_LOG_BODY_BYTES: %w", convErr)
		}
		cfg.HTTP.MaxLogBodyBytes = parsed
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}
