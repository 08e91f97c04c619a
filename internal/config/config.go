package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath     = "gormcrud.yml"
	DefaultListenAddr     = "0.0.0.0:8080"
	DefaultMigrationTable = "_gormcrud_migrations"
	DefaultReadBufferSize = 1024
	DefaultReadTimeout    = 30 * time.Second
)

type Config struct {
	DatabaseURL    string        `yaml:"database_url"`
	ListenAddr     string        `yaml:"listen_addr"`
	MigrationTable string        `yaml:"migration_table"`
	ReadBufferSize int           `yaml:"read_buffer_size"` // product server: bytes taken from the single socket read
	ReadTimeout    time.Duration `yaml:"read_timeout"`     // product server: wait for that read, 0 disables
	Logging        LogConfig     `yaml:"logging"`
}

// LogConfig contains settings for logging
type LogConfig struct {
	Debug       bool   `yaml:"debug"`
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"` // megabytes
	MaxBackups  int    `yaml:"max_backups"`
	MaxAge      int    `yaml:"max_age"` // days
	Compress    bool   `yaml:"compress"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		ListenAddr:     DefaultListenAddr,
		MigrationTable: DefaultMigrationTable,
		ReadBufferSize: DefaultReadBufferSize,
		ReadTimeout:    DefaultReadTimeout,
		Logging: LogConfig{
			LogFilePath: "gormcrud.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// An explicit empty value in the file still falls back to the default
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.MigrationTable == "" {
		cfg.MigrationTable = DefaultMigrationTable
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = DefaultReadBufferSize
	}

	return cfg, nil
}

// Load builds the runtime configuration. A .env file in the working directory
// is loaded first, then the config file if it exists, then the environment.
func Load(configPath string) (*Config, error) {
	// godotenv never overrides variables that are already set
	_ = godotenv.Load()

	cfg := Default()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			loaded, err := LoadConfig(configPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file values with DATABASE_URL, LISTEN_ADDR and LOG_DEBUG
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("LOG_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = debug
		}
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required (set DATABASE_URL)")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.ReadBufferSize <= 0 {
		return fmt.Errorf("read_buffer_size must be positive, got %d", c.ReadBufferSize)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read_timeout must not be negative, got %s", c.ReadTimeout)
	}
	return nil
}
