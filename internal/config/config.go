// Package config loads mail-delivery settings from an optional config file,
// a .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default SMTP submission settings.
const (
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

// SMTP holds mail submission settings. User and Password are expected to
// come from the environment (DIRREPORT_SMTP_USER, DIRREPORT_SMTP_PASSWORD)
// rather than the config file.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Config represents the application configuration.
type Config struct {
	SMTP SMTP
}

// Load reads configuration, in increasing precedence:
// defaults, ~/.config/dirreport/config.yaml, .env file, environment
// variables prefixed with DIRREPORT_.
func Load() (*Config, error) {
	// A missing .env file is fine; it only seeds the environment.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "dirreport"))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "dirreport"))
	}

	v.SetEnvPrefix("DIRREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("smtp.host", DefaultSMTPHost)
	v.SetDefault("smtp.port", DefaultSMTPPort)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is acceptable; defaults and env apply
	}

	cfg := &Config{
		SMTP: SMTP{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			User:     v.GetString("smtp.user"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	return cfg, nil
}
