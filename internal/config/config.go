package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is the dotenv file LoadConfig reads when present
const DefaultEnvFile = ".env"

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string `yaml:"port" env:"SERVER_PORT"`
	Mode           string `yaml:"mode" env:"SERVER_MODE"`
	ReadTimeout    string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout   string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout    string `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// StorageConfig holds file storage settings
type StorageConfig struct {
	AvatarsDir string `yaml:"avatars_dir" env:"STORAGE_AVATARS_DIR"`
}

// LoggingConfig holds logger settings. File is optional; when set, logs are also
// written there with size-based rotation.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
	Compress   bool   `yaml:"compress" env:"LOG_COMPRESS"`
}

// WorkersConfig sizes background worker pools
type WorkersConfig struct {
	PrintPoolSize int `yaml:"print_pool_size" env:"WORKERS_PRINT_POOL_SIZE"`
}

// SeedConfig controls loading of default data at startup
type SeedConfig struct {
	Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
}

// MigrationsConfig locates the SQL migration files
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"MIGRATIONS_DIR"`
}

// Config structure represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Workers    WorkersConfig    `yaml:"workers"`
	Seed       SeedConfig       `yaml:"seed"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// LoadConfig loads configuration from a file, the default .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	return Load(configPath, DefaultEnvFile)
}

// Load builds the configuration from defaults, then the YAML file at configPath, then
// envFile, then the process environment. Missing files are skipped. Variables already
// set in the environment win over envFile.
func Load(configPath, envFile string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"
	config.Server.IdleTimeout = "60s"
	config.Server.MaxUploadBytes = 10 << 20

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "school"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Storage.AvatarsDir = "avatars"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.MaxSizeMB = 100
	config.Logging.MaxBackups = 3
	config.Logging.MaxAgeDays = 28

	config.Workers.PrintPoolSize = 2
	config.Seed.Enabled = true
	config.Migrations.Dir = "migrations"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	for name, value := range map[string]string{
		"server read timeout":          config.Server.ReadTimeout,
		"server write timeout":         config.Server.WriteTimeout,
		"server idle timeout":          config.Server.IdleTimeout,
		"database connection lifetime": config.Database.ConnMaxLifetime,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server max upload bytes must be positive")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Storage.AvatarsDir == "" {
		return fmt.Errorf("storage avatars directory is required")
	}

	if config.Workers.PrintPoolSize <= 0 {
		return fmt.Errorf("workers print pool size must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// ReadTimeoutDuration returns the parsed server read timeout
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns the parsed server write timeout
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.WriteTimeout)
	return d
}

// IdleTimeoutDuration returns the parsed server idle timeout
func (s ServerConfig) IdleTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.IdleTimeout)
	return d
}
