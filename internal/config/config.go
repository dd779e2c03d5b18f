// Package config loads application settings from flags, environment
// variables, an optional .env file and an optional YAML config file.
//
// Precedence (highest first): explicit viper overrides (bound flags),
// NOTES_* environment variables, the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = ".notes"
	envPrefix  = "NOTES"

	// DefaultStorageKey is the storage key the task list lives under.
	DefaultStorageKey = "todo"
)

// Config holds every setting the binaries need.
type Config struct {
	// Backend selects the storage backend: json, sqlite, postgres or mysql.
	Backend string `mapstructure:"backend" validate:"oneof=json sqlite postgres mysql"`

	// DataDir is the base directory for file-based backends.
	DataDir string `mapstructure:"data_dir" validate:"required"`

	// JSONDir optionally overrides the directory of the json backend.
	// It must resolve inside DataDir.
	JSONDir string `mapstructure:"json_dir"`

	// SQLitePath optionally overrides the SQLite database file.
	// It must resolve inside DataDir.
	SQLitePath string `mapstructure:"sqlite_path"`

	PostgresDSN string `mapstructure:"postgres_dsn" validate:"required_if=Backend postgres"`
	MySQLDSN    string `mapstructure:"mysql_dsn" validate:"required_if=Backend mysql"`

	// StorageKey names the blob holding the task list.
	StorageKey string `mapstructure:"storage_key" validate:"required"`

	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Locale   string `mapstructure:"locale" validate:"oneof=en ru"`

	// Addr is the listen address of the HTTP API.
	Addr string `mapstructure:"addr" validate:"required"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	v.SetDefault("backend", "json")
	v.SetDefault("data_dir", filepath.Join(home, ".notes"))
	v.SetDefault("json_dir", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("mysql_dsn", "")
	v.SetDefault("storage_key", DefaultStorageKey)
	v.SetDefault("log_level", "warn")
	v.SetDefault("locale", "en")
	v.SetDefault("addr", "127.0.0.1:8080")
}

// Load reads configuration into a validated Config.
//
// cfgFile, when non-empty, names the config file explicitly and must exist.
// Otherwise ./.notes.yaml and $HOME/.notes.yaml are searched, and a missing
// file is not an error. A .env file in the working directory is loaded into
// the environment first when present.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
