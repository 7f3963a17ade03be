// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"parcelas/internal/models"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "PARCELAS"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Storage struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		Directory  string `mapstructure:"directory" yaml:"directory"`
		SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
		Key        string `mapstructure:"key" yaml:"key"`
		LegacyKey  string `mapstructure:"legacy_key" yaml:"legacy_key"`
	} `mapstructure:"storage" yaml:"storage"`

	Backup struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	} `mapstructure:"backup" yaml:"backup"`

	Report struct {
		Format    string `mapstructure:"format" yaml:"format"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"report" yaml:"report"`

	Display struct {
		Currency   string `mapstructure:"currency" yaml:"currency"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	} `mapstructure:"display" yaml:"display"`
}

// SQLitePath returns the configured database path, defaulting to
// parcelas.db inside the storage directory.
func (c *Config) SQLitePath() string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(c.Storage.Directory, "parcelas.db")
}

// DefaultDataDirectory is where purchases are stored when storage.directory
// is not set.
func DefaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".parcelas", "data")
	}
	return filepath.Join(home, ".parcelas", "data")
}

// LoadConfig initializes viper with hierarchical loading: defaults, config
// file, then environment. An empty path searches the default locations,
// where a missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.parcelas")
		v.AddConfigPath(".parcelas")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.directory", DefaultDataDirectory())
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("storage.key", models.StorageKeyCurrent)
	v.SetDefault("storage.legacy_key", models.StorageKeyLegacy)

	v.SetDefault("backup.directory", ".")
	v.SetDefault("backup.prefix", models.BackupFilePrefix)

	v.SetDefault("report.format", "json")
	v.SetDefault("report.delimiter", ",")

	v.SetDefault("display.currency", "BRL")
	v.SetDefault("display.date_format", "DD/MM/YYYY")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'sqlite' or 'memory')", config.Storage.Backend)
	}

	if config.Storage.Backend == "file" && config.Storage.Directory == "" {
		return fmt.Errorf("storage.directory is required for the file backend")
	}

	if config.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}

	if config.Storage.Key == config.Storage.LegacyKey {
		return fmt.Errorf("storage.legacy_key must differ from storage.key")
	}

	if config.Backup.Prefix == "" {
		return fmt.Errorf("backup.prefix must not be empty")
	}

	switch config.Report.Format {
	case "json", "yaml", "csv":
	default:
		return fmt.Errorf("invalid report format: %s (must be 'json', 'yaml' or 'csv')", config.Report.Format)
	}

	if len(config.Report.Delimiter) != 1 {
		return fmt.Errorf("report delimiter must be a single character, got: %s", config.Report.Delimiter)
	}

	if config.Display.Currency == "" {
		return fmt.Errorf("display.currency must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
