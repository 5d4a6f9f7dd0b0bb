// Package config loads prepiz settings from defaults, an optional YAML
// file, an optional .env file and PREPIZ_* environment variables, in
// increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "PREPIZ"

// Config is the process-wide configuration.
type Config struct {
	DBPath    string          `mapstructure:"db_path"`
	AssetsDir string          `mapstructure:"assets_dir"`
	Log       LogConfig       `mapstructure:"log"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// QuizConfig holds the defaults of the setup screen.
type QuizConfig struct {
	QuestionCount int           `mapstructure:"question_count" validate:"gte=1,lte=100"`
	Duration      time.Duration `mapstructure:"duration" validate:"gte=1s"`
	WeakThreshold float64       `mapstructure:"weak_threshold" validate:"gte=0,lte=100"`
}

// DashboardConfig bounds the dashboard lists.
type DashboardConfig struct {
	RecentLimit   int `mapstructure:"recent_limit" validate:"gte=1"`
	WeakLimit     int `mapstructure:"weak_limit" validate:"gte=1"`
	UpcomingLimit int `mapstructure:"upcoming_limit" validate:"gte=1"`
	ActivityLimit int `mapstructure:"activity_limit" validate:"gte=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")
	v.SetDefault("assets_dir", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("quiz.question_count", 15)
	v.SetDefault("quiz.duration", "30m")
	v.SetDefault("quiz.weak_threshold", 60.0)
	v.SetDefault("dashboard.recent_limit", 5)
	v.SetDefault("dashboard.weak_limit", 3)
	v.SetDefault("dashboard.upcoming_limit", 5)
	v.SetDefault("dashboard.activity_limit", 10)
}

// Load builds a Config. When path is empty, config.yaml is looked up in
// DefaultDir and its absence is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("db_path", "PREPIZ_DB", "PREPIZ_DB_PATH")
	v.BindEnv("assets_dir", "PREPIZ_ASSETS", "PREPIZ_ASSETS_DIR")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultDir returns $XDG_CONFIG_HOME/prepiz, falling back to ~/.config/prepiz.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "prepiz"), nil
}

// DefaultLogPath returns $XDG_STATE_HOME/prepiz/prepiz.log, falling back
// to ~/.local/state/prepiz/prepiz.log.
func DefaultLogPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "prepiz", "prepiz.log"), nil
}
