// Package config loads application configuration from an optional
// config.yaml, environment variables (LINGODESK_ prefix), and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Window   WindowConfig   `mapstructure:"window"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig locates the local SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// WindowConfig holds the initial desktop window geometry.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// Load reads configuration from file and environment variables.
// Environment variables use the LINGODESK_ prefix with nested keys joined
// by underscores (database.path -> LINGODESK_DATABASE_PATH).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("LINGODESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "data/lingodesk.db")

	v.SetDefault("window.title", "LingoDesk")
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
