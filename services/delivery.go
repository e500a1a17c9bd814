package services

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/mail.v2"
)

// ReportDelivery hands a rendered report to its destination.
type ReportDelivery interface {
	Deliver(rendered *models.RenderedReport) error
}

// ConsoleDelivery prints the report to stdout. It is the dry-run path for
// checking scrape output before wiring real recipients.
type ConsoleDelivery struct {
	out io.Writer
}

// NewConsoleDelivery creates a delivery that writes to stdout.
func NewConsoleDelivery() *ConsoleDelivery {
	return &ConsoleDelivery{out: os.Stdout}
}

// Deliver writes the subject and text body to the console.
func (d *ConsoleDelivery) Deliver(rendered *models.RenderedReport) error {
	fmt.Fprintln(d.out, rendered.Subject)
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, rendered.Text)
	return nil
}

// EmailSettings holds the SMTP parameters for report delivery.
type EmailSettings struct {
	Host        string
	Port        int
	SenderEmail string
	SenderPass  string
	Recipients  []string
}

// EmailDelivery sends the report over SMTP with STARTTLS. The message always
// carries a plain text part; when the HTML renderer ran, the HTML part rides
// along as a multipart alternative.
type EmailDelivery struct {
	settings EmailSettings
}

// NewEmailDelivery creates an SMTP-backed delivery.
func NewEmailDelivery(settings EmailSettings) *EmailDelivery {
	return &EmailDelivery{settings: settings}
}

// Deliver sends the rendered report to every configured recipient.
func (d *EmailDelivery) Deliver(rendered *models.RenderedReport) error {
	logger := logrus.WithFields(logrus.Fields{
		"component":  "EmailDelivery",
		"method":     "Deliver",
		"smtp_host":  d.settings.Host,
		"recipients": len(d.settings.Recipients),
	})
	logger.Info("Sending report email")

	message := d.buildMessage(rendered)

	dialer := gomail.NewDialer(d.settings.Host, d.settings.Port, d.settings.SenderEmail, d.settings.SenderPass)
	dialer.StartTLSPolicy = gomail.MandatoryStartTLS
	dialer.Timeout = 30 * time.Second

	if err := dialer.DialAndSend(message); err != nil {
		category := shared.ErrorCategoryNetwork
		code := "EMAIL_SEND_FAILED"
		retryable := true

		if isAuthError(err) {
			category = shared.ErrorCategoryAuthentication
			code = "SMTP_AUTH_FAILED"
			retryable = false
		}

		wrappedError := shared.NewServiceError(
			category,
			code,
			"Failed to send report email",
			"EmailDelivery",
			"Deliver",
			retryable,
			err,
		)
		wrappedError.LogError()
		return wrappedError
	}

	logger.WithField("subject", rendered.Subject).Info("Report email sent")
	return nil
}

// buildMessage assembles the MIME message for the rendered report.
func (d *EmailDelivery) buildMessage(rendered *models.RenderedReport) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", d.settings.SenderEmail)
	message.SetHeader("To", d.settings.Recipients...)
	message.SetHeader("Subject", rendered.Subject)

	message.SetBody("text/plain", rendered.Text)
	if rendered.HTML != "" {
		message.AddAlternative("text/html", rendered.HTML)
	}

	return message
}

// isAuthError sniffs SMTP authentication failures out of transport errors,
// since the dialer returns both through one error value.
func isAuthError(err error) bool {
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "535") || strings.Contains(message, "auth")
}
