package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirreport/internal/config"
)

func TestLoad(t *testing.T) {
	// Keep the loader away from any real user config or .env file.
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, config.DefaultSMTPHost, cfg.SMTP.Host)
		assert.Equal(t, config.DefaultSMTPPort, cfg.SMTP.Port)
		assert.Empty(t, cfg.SMTP.User)
		assert.Empty(t, cfg.SMTP.Password)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DIRREPORT_SMTP_HOST", "mail.example.com")
		t.Setenv("DIRREPORT_SMTP_PORT", "2525")
		t.Setenv("DIRREPORT_SMTP_USER", "reporter@example.com")
		t.Setenv("DIRREPORT_SMTP_PASSWORD", "hunter2")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
		assert.Equal(t, 2525, cfg.SMTP.Port)
		assert.Equal(t, "reporter@example.com", cfg.SMTP.User)
		assert.Equal(t, "hunter2", cfg.SMTP.Password)
	})

	t.Run("from falls back to user", func(t *testing.T) {
		t.Setenv("DIRREPORT_SMTP_USER", "reporter@example.com")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "reporter@example.com", cfg.SMTP.From)
	})

	t.Run("explicit from wins", func(t *testing.T) {
		t.Setenv("DIRREPORT_SMTP_USER", "reporter@example.com")
		t.Setenv("DIRREPORT_SMTP_FROM", "noreply@example.com")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "noreply@example.com", cfg.SMTP.From)
	})
}
