package mailer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirreport/internal/config"
	"github.com/idelchi/dirreport/internal/mailer"
)

func TestSend(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(reportPath, []byte("report"), 0o644))

	t.Run("missing credentials", func(t *testing.T) {
		smtp := config.SMTP{Host: "smtp.example.com", Port: 587}

		err := mailer.Send(context.Background(), smtp, "to@example.com", reportPath, "/data")

		assert.ErrorIs(t, err, mailer.ErrMissingCredentials)
	})

	t.Run("missing report file", func(t *testing.T) {
		smtp := config.SMTP{
			Host:     "smtp.example.com",
			Port:     587,
			User:     "user@example.com",
			Password: "secret",
			From:     "user@example.com",
		}

		err := mailer.Send(context.Background(), smtp, "to@example.com",
			filepath.Join(t.TempDir(), "missing.txt"), "/data")

		require.Error(t, err)
		assert.NotErrorIs(t, err, mailer.ErrMissingCredentials)
	})

	t.Run("invalid recipient address", func(t *testing.T) {
		smtp := config.SMTP{
			Host:     "smtp.example.com",
			Port:     587,
			User:     "user@example.com",
			Password: "secret",
			From:     "user@example.com",
		}

		err := mailer.Send(context.Background(), smtp, "not-an-address", reportPath, "/data")

		assert.ErrorContains(t, err, "recipient")
	})
}
