// Package mailer sends the generated report as an email attachment over
// SMTP submission with STARTTLS.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/wneessen/go-mail"

	"github.com/idelchi/dirreport/internal/config"
)

// ErrMissingCredentials indicates that SMTP user or password are unset.
var ErrMissingCredentials = errors.New(
	"email credentials not set (DIRREPORT_SMTP_USER, DIRREPORT_SMTP_PASSWORD)")

// body renders the plain-text email body.
func body(target string) string {
	return heredoc.Docf(`
		Hello,

		Attached is the folder analysis report for:

		  %s

		This is an automated message from dirreport.
	`, target)
}

// Send mails the report at reportPath to recipient. target is the scanned
// directory, used for the subject line and body.
func Send(ctx context.Context, smtp config.SMTP, recipient, reportPath, target string) error {
	if smtp.User == "" || smtp.Password == "" {
		return ErrMissingCredentials
	}

	msg := mail.NewMsg()

	if err := msg.From(smtp.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", smtp.From, err)
	}

	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", recipient, err)
	}

	msg.Subject(fmt.Sprintf("Analysis Report: %s", filepath.Base(target)))
	msg.SetBodyString(mail.TypeTextPlain, body(target))

	if _, err := os.Stat(reportPath); err != nil {
		return fmt.Errorf("report file %q: %w", reportPath, err)
	}

	msg.AttachFile(reportPath)

	client, err := mail.NewClient(smtp.Host,
		mail.WithPort(smtp.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover),
		mail.WithUsername(smtp.User),
		mail.WithPassword(smtp.Password),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email to %s: %w", recipient, err)
	}

	return nil
}
