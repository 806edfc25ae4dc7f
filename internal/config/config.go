// Package config loads server configuration from defaults, an optional YAML
// file, a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config holds server settings.
type Config struct {
	Environment       string        `yaml:"environment"`
	Port              int           `yaml:"port"`
	DatabaseDriver    string        `yaml:"database_driver"`
	DatabaseURL       string        `yaml:"database_url"`
	DatabasePort      int           `yaml:"database_port"`
	DatabaseName      string        `yaml:"database_name"`
	SQLitePath        string        `yaml:"sqlite_path"`
	LogLevel          string        `yaml:"log_level"`
	ImagesDirectory   string        `yaml:"images_directory"`
	MaxFileSizeMB     int           `yaml:"max_file_size_mb"`
	AllowedExtensions []string      `yaml:"extensions_file_list"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Environment:       "development",
		Port:              8000,
		DatabaseDriver:    DriverMongo,
		DatabaseURL:       "localhost",
		DatabasePort:      27017,
		DatabaseName:      "realStateCompany",
		SQLitePath:        defaultSQLitePath(),
		LogLevel:          "info",
		ImagesDirectory:   "app/images",
		MaxFileSizeMB:     5,
		AllowedExtensions: []string{"jpg", "jpeg", "png", "gif"},
		RequestTimeout:    30 * time.Second,
	}
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "realstate.db"
	}
	return filepath.Join(home, ".realstate", "realstate.db")
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. A .env file in the working directory is read if present and
// never overrides variables already set in the environment.
func Load(path string) (Config, error) {
	return load(path, ".env", os.LookupEnv)
}

func load(path, envFile string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
	}
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	if err := applyEnv(&cfg, get); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, get func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := get(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", key, v)
		}
		*dst = n
		return nil
	}

	str("ENVIRONMENT", &cfg.Environment)
	str("DATABASE_DRIVER", &cfg.DatabaseDriver)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("DATABASE_NAME", &cfg.DatabaseName)
	str("SQLITE_PATH", &cfg.SQLitePath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("IMAGES_DIRECTORY", &cfg.ImagesDirectory)

	if err := num("PORT", &cfg.Port); err != nil {
		return err
	}
	if err := num("DATABASE_PORT", &cfg.DatabasePort); err != nil {
		return err
	}
	if err := num("MAX_FILE_SIZE_MB", &cfg.MaxFileSizeMB); err != nil {
		return err
	}

	if v, ok := get("EXTENSIONS_FILE_LIST"); ok {
		cfg.AllowedExtensions = splitList(v)
	}
	if v, ok := get("REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// splitList parses "jpg, png" and `["jpg","png"]` style lists.
func splitList(v string) []string {
	v = strings.Trim(strings.TrimSpace(v), "[]")
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var problems []string

	switch c.DatabaseDriver {
	case DriverMongo:
		if c.DatabaseURL == "" {
			problems = append(problems, "database_url is required for the mongo driver")
		}
		if c.DatabaseName == "" {
			problems = append(problems, "database_name is required for the mongo driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "sqlite_path is required for the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown database driver %q", c.DatabaseDriver))
	}

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", c.Port))
	}
	if !isURI(c.DatabaseURL) && c.DatabaseDriver == DriverMongo && (c.DatabasePort <= 0 || c.DatabasePort > 65535) {
		problems = append(problems, fmt.Sprintf("database_port %d out of range", c.DatabasePort))
	}
	if c.MaxFileSizeMB <= 0 {
		problems = append(problems, "max_file_size_mb must be positive")
	}
	if len(c.AllowedExtensions) == 0 {
		problems = append(problems, "extensions_file_list must not be empty")
	}
	if c.ImagesDirectory == "" {
		problems = append(problems, "images_directory is required")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// MongoURI returns the connection string for the mongo driver.
func (c Config) MongoURI() string {
	if isURI(c.DatabaseURL) {
		return c.DatabaseURL
	}
	return fmt.Sprintf("mongodb://%s:%d", c.DatabaseURL, c.DatabasePort)
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func isURI(s string) bool {
	return strings.HasPrefix(s, "mongodb://") || strings.HasPrefix(s, "mongodb+srv://")
}
